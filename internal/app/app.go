package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"foundermatch/internal/config"
	"foundermatch/internal/domain"
	"foundermatch/internal/infrastructure/auth"
	"foundermatch/internal/infrastructure/llm"
	"foundermatch/internal/infrastructure/scheduler"
	"foundermatch/internal/infrastructure/storage"
	"foundermatch/internal/infrastructure/telegram"
	"foundermatch/internal/infrastructure/voice"
	"foundermatch/internal/logging"
	"foundermatch/internal/ports"
	"foundermatch/internal/transport/httpapi"
	"foundermatch/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sql.DB
	backfill *usecase.TaglineBackfill
	handler  http.Handler
	cron     ports.Scheduler
}

// New builds the full dependency graph.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repository := storage.NewPostgresRepository(db)
	gateway := llm.NewGatewayClient(cfg.Gateway)
	broker := voice.NewElevenLabsBroker(cfg.Voice)
	verifier := auth.NewVerifier(cfg.Auth, db)

	var notifier ports.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	decoder := usecase.NewEmailDecoder(gateway, logging.Component(baseLogger, "decoder"))
	voiceSession := usecase.NewVoiceSession(broker)
	backfill := usecase.NewTaglineBackfill(repository, gateway, notifier, logging.Component(baseLogger, "backfill"))
	profiles := usecase.NewProfileService(repository)

	server := httpapi.NewServer(httpapi.Deps{
		Decoder:  decoder,
		Voice:    voiceSession,
		Backfill: backfill,
		Profiles: profiles,
		Verifier: verifier,
		Logger:   logging.Component(baseLogger, "http"),
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		db:       db,
		backfill: backfill,
		handler:  server.Routes(),
		cron:     scheduler.NewCronScheduler(cfg.Backfill.CronExpression),
	}, nil
}

// Run serves HTTP and, when configured, the scheduled backfill until the
// context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	job := func(trigger time.Time) {
		a.logger.Info("scheduled backfill starting", "trigger", trigger)
		if _, err := a.backfill.Run(ctx); err != nil {
			a.logger.Error("scheduled backfill failed", "error", err)
		}
	}
	if err := a.cron.Start(ctx, job); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		a.logger.Info("http server listening", "addr", a.cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.cron.Stop(shutdownCtx); err != nil {
			a.logger.Warn("scheduler stop", "error", err)
		}
		return srv.Shutdown(shutdownCtx)
	})

	err := group.Wait()

	if closeErr := a.db.Close(); closeErr != nil {
		a.logger.Warn("close database", "error", closeErr)
	}

	return err
}

// RunBackfill executes a single tagline backfill pass and returns its counts.
func (a *Application) RunBackfill(ctx context.Context) (domain.BackfillResult, error) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close database", "error", err)
		}
	}()

	return a.backfill.Run(ctx)
}
