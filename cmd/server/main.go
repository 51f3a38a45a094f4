package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/text/language"

	"github.com/mmynk/roomieboard/internal/activity"
	"github.com/mmynk/roomieboard/internal/auth"
	"github.com/mmynk/roomieboard/internal/config"
	"github.com/mmynk/roomieboard/internal/metrics"
	"github.com/mmynk/roomieboard/internal/money"
	"github.com/mmynk/roomieboard/internal/server"
	"github.com/mmynk/roomieboard/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	formatter, err := money.NewFormatter(cfg.Currency, language.AmericanEnglish)
	if err != nil {
		return err
	}

	var notifiers []activity.Notifier
	if cfg.DiscordWebhookURL != "" {
		discord, err := activity.NewDiscordNotifier(cfg.DiscordWebhookURL)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, discord)
		slog.Info("Relaying activity to Discord")
	}
	recorder := activity.NewRecorder(store, notifiers...)
	defer recorder.Wait()

	staticPath := cfg.StaticPath
	if staticPath != "" {
		if staticPath, err = filepath.Abs(staticPath); err != nil {
			return err
		}
		slog.Info("Serving static files", "path", staticPath)
	}

	srv := server.New(store, server.Options{
		JWT:         auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Money:       formatter,
		Recorder:    recorder,
		CORSOrigins: cfg.CORSOrigins,
		StaticPath:  staticPath,
	})
	return srv.ListenAndServe(ctx, cfg.Addr)
}
