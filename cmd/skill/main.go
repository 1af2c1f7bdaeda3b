// Package main serves the daily deal skill over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bargain-buddy/internal/config"
	"bargain-buddy/internal/logger"
	"bargain-buddy/internal/providers"
	"bargain-buddy/internal/server"
	"bargain-buddy/internal/skill"
	"bargain-buddy/internal/tracking"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	tracker, closer, err := tracking.FromConfig(cfg)
	if err != nil {
		log.Warn("usage tracking disabled", "tracker", cfg.Tracker, "error", err)
	}
	defer closer.Close()

	sk := &skill.Skill{
		AppName:         cfg.AppName,
		Deals:           providers.FromConfig(cfg),
		Tracker:         tracker,
		TrackingTimeout: cfg.TrackingTimeout,
		Log:             log,
	}
	api := &server.Server{Handler: sk, AppID: cfg.AppID, Log: log}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// one feed fetch plus rendering
		WriteTimeout: cfg.FeedTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("http listen", "addr", cfg.HTTPAddr, "tracker", cfg.Tracker)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	log.Info("shutdown signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http shutdown error", "error", err)
	}
	log.Info("skill stopped")
}
