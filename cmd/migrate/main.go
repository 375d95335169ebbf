package main

import (
	"github.com/workielk/workie-api/internal/config"
	"github.com/workielk/workie-api/internal/db"
	"github.com/workielk/workie-api/internal/logger"
)

func main() {
	logger.Initialize()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}

	// db.New runs the schema migrations on connect.
	if _, err := db.New(cfg.DB); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	logger.Info("migrations applied")
}
