package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	"evrental-backend/internal/config"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository/postgres"
	"evrental-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	dataFile := flag.String("file", "", "Path to the inventory CSV (defaults to the configured data file)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	path := *dataFile
	if path == "" {
		path = cfg.Inventory.DataFile
	}
	if path == "" {
		log.Fatal("No inventory file given: pass -file or set inventory.data_file in the config")
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db)
	inventorySvc := service.NewInventoryService(store.VehicleRepository)

	created, updated, err := inventorySvc.LoadFromCSV(context.Background(), path)
	if err != nil {
		log.Fatalf("Inventory load failed: %v", err)
	}
	logger.Info("Successfully loaded inventory", "file", path, "created", created, "updated", updated)
}
