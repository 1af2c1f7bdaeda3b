// Package main asks the skill one question from the command line and prints
// what it would say.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"bargain-buddy/internal/config"
	"bargain-buddy/internal/logger"
	"bargain-buddy/internal/providers"
	"bargain-buddy/internal/skill"
	"bargain-buddy/internal/tracking"
)

func main() {
	var (
		intent   = flag.String("intent", "woot", "intent to send: launch, meh, woot, help, stop")
		category = flag.String("category", "", "spoken woot category, e.g. \"home\" or \"shirt\"")
		showCard = flag.Bool("card", false, "also print the card text")
	)
	flag.Parse()

	cfg := config.Load()

	sk := &skill.Skill{
		AppName: cfg.AppName,
		Deals:   providers.FromConfig(cfg),
		// the CLI never reports usage
		Tracker: tracking.Noop{},
		Log:     logger.New(cfg.LogLevel),
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FeedTimeout+2*time.Second)
	defer cancel()

	if err := run(ctx, os.Stdout, sk, *intent, *category, *showCard); err != nil {
		log.Fatal(err)
	}
}

// run sends one request to h and writes the speech (and optionally the card).
func run(ctx context.Context, w io.Writer, h skill.EventHandler, intent, category string, showCard bool) error {
	s := skill.Session{SessionID: "cli", UserID: "cli", RequestID: "cli", New: true}

	var resp skill.Response
	if strings.EqualFold(strings.TrimSpace(intent), "launch") {
		resp = h.OnLaunch(ctx, s)
	} else {
		in, err := buildIntent(intent, category)
		if err != nil {
			return err
		}
		resp = h.OnIntent(ctx, s, in)
	}

	if _, err := fmt.Fprintln(w, resp.Speech); err != nil {
		return err
	}
	if showCard && resp.CardTitle != "" {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", resp.CardTitle, resp.CardText); err != nil {
			return err
		}
	}
	return nil
}

// buildIntent maps a short CLI name to the intent the voice model would send.
func buildIntent(name, category string) (skill.Intent, error) {
	var in skill.Intent
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "meh":
		in.Name = skill.IntentMeh
	case "woot", "":
		in.Name = skill.IntentWoot
		in.Slots = map[string]string{skill.SlotService: category}
	case "help":
		in.Name = skill.IntentHelp
	case "stop":
		in.Name = skill.IntentStop
	case "cancel":
		in.Name = skill.IntentCancel
	default:
		return skill.Intent{}, fmt.Errorf("unknown intent %q (use launch, meh, woot, help, stop or cancel)", name)
	}
	return in, nil
}
