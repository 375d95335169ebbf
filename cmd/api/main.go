package main

import (
	"context"

	"github.com/workielk/workie-api/internal/app"
	"github.com/workielk/workie-api/internal/config"
	"github.com/workielk/workie-api/internal/db"
	"github.com/workielk/workie-api/internal/events"
	"github.com/workielk/workie-api/internal/logger"
	"github.com/workielk/workie-api/internal/services"
)

func main() {
	logger.Initialize()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}

	database, err := db.New(cfg.DB)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services.RegisterNotificationHandlers()
	events.Start(ctx)

	server := app.NewApp(database)
	logger.Infof("listening on %s", cfg.ListenAddr)
	if err := server.Listen(cfg.ListenAddr); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
