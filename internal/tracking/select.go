package tracking

import (
	"errors"
	"fmt"
	"io"

	"bargain-buddy/internal/config"
)

// FromConfig builds the tracker named by cfg.Tracker. The returned closer
// releases broker connections and is never nil.
func FromConfig(cfg config.Config) (Tracker, io.Closer, error) {
	switch cfg.Tracker {
	case "", "none", "noop":
		return Noop{}, nopCloser{}, nil
	case "voicelabs":
		if cfg.VoiceLabsURL == "" {
			return Noop{}, nopCloser{}, errors.New("tracking: voicelabs tracker needs VOICELABS_URL")
		}
		return NewVoiceLabs(cfg.VoiceLabsURL, cfg.VoiceLabsToken), nopCloser{}, nil
	case "amqp":
		a, err := DialAMQP(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			return Noop{}, nopCloser{}, err
		}
		return a, a, nil
	default:
		return Noop{}, nopCloser{}, fmt.Errorf("tracking: unknown tracker %q", cfg.Tracker)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
