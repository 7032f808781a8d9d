package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/dinedash/internal/app"
	"github.com/kailas-cloud/dinedash/internal/config"
	logpkg "github.com/kailas-cloud/dinedash/internal/logger"
	"github.com/kailas-cloud/dinedash/internal/repository/store"
	"github.com/kailas-cloud/dinedash/internal/tui"
	"github.com/kailas-cloud/dinedash/internal/usecase/session"
	viewuc "github.com/kailas-cloud/dinedash/internal/usecase/view"
	"github.com/kailas-cloud/dinedash/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dinedash-tui:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal owns stdout; logs go to a file or nowhere.
	logger, err := logpkg.NewFileLogger(env, cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dinedash terminal client",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("source_driver", cfg.Source.Driver),
	)

	ctx := context.Background()
	src, closeSource, err := app.BuildSource(ctx, cfg.Source, logger)
	if err != nil {
		return fmt.Errorf("create record source: %w", err)
	}
	defer closeSource()

	records := store.New(src, logger)
	app.LoadStore(ctx, records, time.Duration(cfg.Source.LoadTimeoutSec)*time.Second, logger)

	views := viewuc.New(records, viewuc.NewEngine(language.English))
	sessions := session.NewManager(views, session.Config{
		SearchDebounce: time.Duration(cfg.Dashboard.SearchDebounceMs) * time.Millisecond,
	}, logger)
	defer sessions.CloseAll()

	footer := version.String()
	if err := records.LoadError(); err != nil {
		footer += " • data unavailable: " + err.Error()
	}

	return tui.Run(sessions.Create(), views, tui.Options{
		SweepInterval: time.Duration(cfg.Dashboard.SweepIntervalMs) * time.Millisecond,
		TopLimit:      cfg.Dashboard.TopLimit,
		Footer:        footer,
		Logger:        logger,
	})
}
