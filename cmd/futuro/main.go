package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/futurolabs/futuro/config"
	"github.com/futurolabs/futuro/internal/adapters/auth"
	"github.com/futurolabs/futuro/internal/adapters/catalog"
	"github.com/futurolabs/futuro/internal/adapters/insight"
	"github.com/futurolabs/futuro/internal/adapters/notify"
	"github.com/futurolabs/futuro/internal/adapters/storage"
	"github.com/futurolabs/futuro/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("futuro starting",
		"storage", cfg.Storage.DSN,
		"session_key", cfg.Account.SessionKey,
		"insight_model", cfg.Insight.Model,
		"insight_credential", cfg.Insight.APIKey != "",
	)

	store, err := storage.NewSQLiteStore(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	analyst, err := insight.NewGemini(ctx, cfg.Insight.APIKey, cfg.Insight.Model)
	if err != nil {
		slog.Error("failed to init insight generator", "err", err)
		os.Exit(1)
	}

	authenticator := auth.NewMockGoogle(auth.Template{
		Name:           cfg.Account.Name,
		Email:          cfg.Account.Email,
		InitialBalance: cfg.Account.InitialBalance,
	})

	session, err := app.New(ctx,
		catalog.NewFile(cfg.Catalog.Path),
		store,
		authenticator,
		analyst,
		notify.NewConsole(),
		cfg.Account.SessionKey,
		os.Stdin,
		os.Stdout,
	)
	if err != nil {
		slog.Error("failed to start session", "err", err)
		os.Exit(1)
	}

	if err := session.Run(ctx); err != nil {
		slog.Error("session exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("futuro stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
