// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/router"
	"github.com/danielhkuo/quickly-survey/service"
	"github.com/danielhkuo/quickly-survey/sweeper"
)

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("Error configuring logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if cfg.IssueTokenFor != "" {
		token, err := auth.IssueOwnerToken(cfg.IssueTokenFor, cfg.TokenSecret, cfg.TokenTTL)
		if err != nil {
			slog.Error("token issue failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the store and apply migrations
	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Database ready", "driver", store.Driver())

	svc := service.New(store, cfg.DefaultSurveyTTL, cfg.DuplicateWindow)
	if cfg.SweepInterval > 0 {
		go sweeper.Run(ctx, cfg.SweepInterval, svc.Surveys, svc.Submissions)
	}

	server := &http.Server{
		Handler:           router.NewRouter(svc, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}
