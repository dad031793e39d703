package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bowerhall/courier/internal/archive"
	"github.com/bowerhall/courier/internal/backend"
	"github.com/bowerhall/courier/internal/bot"
	"github.com/bowerhall/courier/internal/config"
	"github.com/bowerhall/courier/internal/history"
	"github.com/bowerhall/courier/internal/logger"
	"github.com/bowerhall/courier/internal/queue"
	"github.com/bowerhall/courier/internal/report"
	"github.com/bowerhall/courier/internal/router"
	"github.com/bowerhall/courier/internal/trigger"
)

func init() {
	godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	be, err := backend.New(backend.Config{
		Provider:    cfg.Backend.Provider,
		APIKey:      cfg.Backend.APIKey,
		Model:       cfg.Backend.Model,
		BaseURL:     cfg.Backend.BaseURL,
		Prompt:      cfg.Backend.Prompt,
		GroupPrompt: cfg.Backend.GroupPrompt,
	})
	if err != nil {
		logger.Fatal("failed to create backend", "error", err)
	}

	hist, err := history.Open(cfg.HistoryPath, cfg.HistoryMax)
	if err != nil {
		logger.Fatal("failed to open history", "error", err)
	}

	defer hist.Close()

	b, err := bot.New(bot.Config{
		Provider:          cfg.Bot.Provider,
		Token:             cfg.Bot.Token,
		OwnerConversation: cfg.Bot.OwnerConversation,
	})
	if err != nil {
		logger.Fatal("failed to create bot", "error", err)
	}

	classifier := trigger.New(trigger.Config{
		NameAliases:     cfg.Trigger.NameAliases,
		IDAliases:       cfg.Trigger.IDAliases,
		CommandPrefixes: cfg.Trigger.CommandPrefixes,
	})

	r := router.New(classifier, queue.New(), be, b)
	r.SetTimeout(time.Duration(cfg.Backend.TimeoutSeconds) * time.Second)
	r.SetHistory(hist)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Archive.Enabled {
		arc, err := archive.NewClient(archive.Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err != nil {
			logger.Error("failed to create archive client", "error", err)
		} else {
			initCtx, initCancel := context.WithTimeout(ctx, 10*time.Second)
			if err := arc.Init(initCtx); err != nil {
				logger.Error("failed to init archive bucket", "error", err)
			} else {
				r.SetArchive(arc)
				logger.Info("media archive enabled", "endpoint", cfg.Archive.Endpoint)
			}
			initCancel()
		}
	}

	b.SetHandler(r.HandleInbound)

	if cfg.Bot.OwnerConversation != "" {
		owner := cfg.Bot.OwnerConversation
		rep := report.New(r, cfg.Report.Schedule, func(text string) error {
			return b.Deliver(owner, text)
		})
		if err := rep.Start(); err != nil {
			logger.Fatal("failed to start reporter", "error", err)
		}
		defer rep.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig)
		cancel()
	}()

	logger.Info("courier started", "bot", cfg.Bot.Provider, "backend", cfg.Backend.Provider)

	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("bot stopped", "error", err)
	}
}
