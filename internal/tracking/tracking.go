// Package tracking reports skill usage to an analytics sink. Tracking is
// best effort: callers never wait for it and its errors are only logged.
package tracking

import (
	"context"
	"log/slog"
	"time"
)

// Event is one handled intent.
type Event struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Intent    string    `json:"intent"`
	Slot      string    `json:"slot,omitempty"`
	Time      time.Time `json:"time"`
}

type Tracker interface {
	Track(ctx context.Context, ev Event) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Track(context.Context, Event) error { return nil }

// Fire runs t.Track in its own goroutine with the given timeout. The returned
// channel is closed once tracking finished; request handling does not wait on it.
func Fire(ctx context.Context, log *slog.Logger, t Tracker, ev Event, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if t == nil {
		close(done)
		return done
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}

	// detached from the request so a finished response does not cancel it
	base := context.WithoutCancel(ctx)

	go func() {
		defer close(done)

		tctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()

		if err := t.Track(tctx, ev); err != nil {
			log.Warn("usage tracking failed", "intent", ev.Intent, "session", ev.SessionID, "error", err)
		}
	}()
	return done
}
