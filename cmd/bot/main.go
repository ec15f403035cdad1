// Package main contains the entrypoint for the halal checker Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/halalbot/internal/bot"
	"github.com/edgard/halalbot/internal/bot/handlers"
	"github.com/edgard/halalbot/internal/bot/tasks"
	"github.com/edgard/halalbot/internal/config"
	"github.com/edgard/halalbot/internal/conversation"
	"github.com/edgard/halalbot/internal/database"
	"github.com/edgard/halalbot/internal/errs"
	"github.com/edgard/halalbot/internal/gemini"
	"github.com/edgard/halalbot/internal/interaction"
	"github.com/edgard/halalbot/internal/logger"
	"github.com/edgard/halalbot/internal/session"
	"github.com/edgard/halalbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires all components, blocks until shutdown and returns the process
// exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err, "code", errs.Code(err))
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	store, err := database.NewInteractionStore(ctx, cfg.Database, log)
	if err != nil {
		log.Error("Failed to initialize interaction store", "backend", database.Kind(cfg.Database.ConnectionString), "error", err)
		return 1
	}

	sessions, closeSessions, err := newSessionStore(ctx, cfg.Session, log)
	if err != nil {
		log.Error("Failed to initialize session store", "backend", cfg.Session.Backend, "error", err)
		return 1
	}
	defer closeSessions()

	gemClient, err := gemini.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error("Failed to initialize Gemini client", "error", err)
		return 1
	}

	recorder := interaction.NewRecorder(store, interaction.NewProductTypeExtractor(), log)
	machine := conversation.NewMachine(sessions, gemClient, recorder, conversation.Options{
		MediaDir:        cfg.Media.Dir,
		AnalysisTimeout: cfg.Gemini.Timeout,
	}, log)

	hDeps := handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Dispatcher: machine,
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	if _, err := handlers.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Waiting for pending interaction records...")
	machine.Wait()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}

// newSessionStore builds the configured session store and its cleanup func.
func newSessionStore(ctx context.Context, cfg config.SessionConfig, log *slog.Logger) (session.Store, func(), error) {
	if cfg.Backend != "redis" {
		log.Info("Using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	}

	rs, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.KeyPrefix, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Using Redis session store", "key_prefix", cfg.KeyPrefix)
	return rs, func() {
		if err := rs.Close(); err != nil {
			log.Warn("Failed to close Redis session store", "error", err)
		}
	}, nil
}
