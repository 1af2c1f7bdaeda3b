package skill

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"bargain-buddy/internal/catalog"
	"bargain-buddy/internal/domain"
	"bargain-buddy/internal/httpx"
	"bargain-buddy/internal/render"
	"bargain-buddy/internal/tracking"
)

// Intent names the voice model sends.
const (
	IntentMeh    = "GetMehIntent"
	IntentWoot   = "GetWootIntent"
	IntentHelp   = "AMAZON.HelpIntent"
	IntentStop   = "AMAZON.StopIntent"
	IntentCancel = "AMAZON.CancelIntent"

	// SlotService carries the spoken woot category.
	SlotService = "Service"
)

const (
	launchSpeech   = "What daily deal would you like me to look up? Try saying \"tell me the Home Woot\" or \"tell me today's Meh deal\"."
	launchReprompt = "Say something like 'the Woot deal', or say 'help' for a list of available daily deal merchants."
	goodbyeSpeech  = "O.K."
)

// Session identifies the conversation a request belongs to.
type Session struct {
	SessionID string
	UserID    string
	RequestID string
	New       bool
}

type Intent struct {
	Name  string
	Slots map[string]string
}

// Slot returns the trimmed slot value, or "" when absent.
func (i Intent) Slot(name string) string {
	return strings.TrimSpace(i.Slots[name])
}

// Response is what the voice platform should say and show. CardTitle is
// empty when no card is attached.
type Response struct {
	Speech     string
	CardTitle  string
	CardText   string
	Reprompt   string
	EndSession bool
}

// EventHandler receives the voice platform's request lifecycle callbacks.
type EventHandler interface {
	OnSessionStarted(ctx context.Context, s Session)
	OnLaunch(ctx context.Context, s Session) Response
	OnIntent(ctx context.Context, s Session, in Intent) Response
	OnSessionEnded(ctx context.Context, s Session, reason string)
}

// DealSource looks up the current deal of a merchant. providers.Registry
// implements it.
type DealSource interface {
	CurrentDeal(ctx context.Context, m domain.Merchant) (domain.Deal, error)
}

// Skill answers daily deal questions.
type Skill struct {
	AppName         string
	Deals           DealSource
	Tracker         tracking.Tracker
	TrackingTimeout time.Duration
	// Log defaults to slog.Default() when nil.
	Log *slog.Logger
}

var _ EventHandler = (*Skill)(nil)

func (k *Skill) OnSessionStarted(_ context.Context, s Session) {
	k.logger().Info("session started", "request_id", s.RequestID, "session_id", s.SessionID)
}

func (k *Skill) OnLaunch(_ context.Context, s Session) Response {
	k.logger().Info("launch", "request_id", s.RequestID, "session_id", s.SessionID)
	return Response{Speech: launchSpeech, Reprompt: launchReprompt}
}

func (k *Skill) OnSessionEnded(_ context.Context, s Session, reason string) {
	k.logger().Info("session ended", "request_id", s.RequestID, "session_id", s.SessionID, "reason", reason)
}

func (k *Skill) OnIntent(ctx context.Context, s Session, in Intent) Response {
	slot := in.Slot(SlotService)

	tracking.Fire(ctx, k.logger(), k.Tracker, tracking.Event{
		SessionID: s.SessionID,
		UserID:    s.UserID,
		Intent:    in.Name,
		Slot:      slot,
	}, k.trackingTimeout())

	switch in.Name {
	case IntentMeh:
		m, _ := catalog.Lookup("meh")
		return k.dealResponse(ctx, m)
	case IntentWoot:
		return k.dealResponse(ctx, catalog.Resolve(slot))
	case IntentHelp:
		return helpResponse()
	case IntentStop, IntentCancel:
		return Response{Speech: goodbyeSpeech, EndSession: true}
	default:
		k.logger().Warn("unsupported intent", "intent", in.Name, "request_id", s.RequestID)
		return helpResponse()
	}
}

// Answer runs the deal pipeline for one merchant: one fetch, parse, render.
func (k *Skill) Answer(ctx context.Context, m domain.Merchant) domain.Utterance {
	deal, err := k.Deals.CurrentDeal(ctx, m)
	if err != nil {
		attrs := []any{"merchant", m.ID, "error", err}
		var herr *httpx.HTTPError
		if errors.As(err, &herr) {
			attrs = append(attrs, "status", herr.StatusCode, "body", httpx.Snippet(herr.Body))
		}
		k.logger().Warn("deal lookup failed", attrs...)
		return render.Render(m, nil, err)
	}
	return render.Render(m, &deal, nil)
}

func (k *Skill) dealResponse(ctx context.Context, m domain.Merchant) Response {
	u := k.Answer(ctx, m)
	return Response{
		Speech:     u.SpokenText,
		CardTitle:  k.AppName,
		CardText:   u.CardText,
		EndSession: true,
	}
}

func (k *Skill) logger() *slog.Logger {
	if k.Log == nil {
		return slog.Default()
	}
	return k.Log
}

func (k *Skill) trackingTimeout() time.Duration {
	if k.TrackingTimeout <= 0 {
		return 2 * time.Second
	}
	return k.TrackingTimeout
}

func helpResponse() Response {
	return Response{
		Speech:   "I can tell you the current deal from " + catalog.SpokenList() + ". Which would you like?",
		Reprompt: launchReprompt,
	}
}
