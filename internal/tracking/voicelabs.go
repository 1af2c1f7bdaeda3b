package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bargain-buddy/internal/httpx"
)

// VoiceLabs posts events to a VoiceLabs-style insights endpoint.
type VoiceLabs struct {
	URL   string
	Token string
	HTTP  *http.Client
}

func NewVoiceLabs(url, token string) *VoiceLabs {
	return &VoiceLabs{
		URL:   url,
		Token: token,
		HTTP: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type voiceLabsPayload struct {
	AppToken string `json:"app_token"`
	Event
}

func (v *VoiceLabs) Track(ctx context.Context, ev Event) error {
	if v.Token == "" {
		return errors.New("voicelabs: missing app token (VI_TOKEN)")
	}

	b, err := json.Marshal(voiceLabsPayload{AppToken: v.Token, Event: ev})
	if err != nil {
		return err
	}

	if _, err := httpx.PostJSON(ctx, v.HTTP, v.URL, b, nil); err != nil {
		return fmt.Errorf("voicelabs: track %s: %w", ev.Intent, err)
	}
	return nil
}
