package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/uzagro/omborbot/internal/config"
	"github.com/uzagro/omborbot/internal/repository/agroapi"
	"github.com/uzagro/omborbot/internal/repository/mongodb"
	"github.com/uzagro/omborbot/internal/repository/sheets"
	"github.com/uzagro/omborbot/internal/scheduler"
	"github.com/uzagro/omborbot/internal/server/handlers"
	"github.com/uzagro/omborbot/internal/server/router"
	botsvc "github.com/uzagro/omborbot/internal/service/bot"
	"github.com/uzagro/omborbot/internal/service/navigation"
	telegramclient "github.com/uzagro/omborbot/pkg/clients/telegram"
	"github.com/uzagro/omborbot/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid reporting timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}

	var sheetsRepo sheets.Repository
	if cfg.SheetsEnabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Info("spreadsheet mirror disabled")
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	apiClient := agroapi.NewClient(cfg.API)
	telegramClient := telegramclient.NewClient(cfg.Telegram)
	sessions := navigation.NewSessionStore()

	bot := botsvc.NewService(apiClient, telegramClient, sessions, location, logger.Named(baseLogger, "svc.bot"))
	webhookHandler := handlers.NewWebhookHandler(bot, cfg.Telegram.SecretToken, logger.Named(baseLogger, "handlers.telegram"))
	engine := router.New(webhookHandler, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(*cfg, apiClient, bot, mongoRepo, sheetsRepo, location, logger.Named(baseLogger, "scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
