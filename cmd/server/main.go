package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"evrental-backend/internal/agent"
	httpapi "evrental-backend/internal/api/http"
	"evrental-backend/internal/config"
	"evrental-backend/internal/jobs"
	"evrental-backend/internal/llm"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository/postgres"
	"evrental-backend/internal/scheduler"
	"evrental-backend/internal/security"
	"evrental-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EV Rental Agent backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
	logger.Info("LLM configuration", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Repositories
	store := postgres.NewStore(db)

	// Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// LLM gateway
	var gateway llm.Gateway
	switch cfg.LLM.Provider {
	case "openai":
		logger.Info("Using OpenAI-compatible LLM gateway", "endpoint", cfg.LLM.Endpoint)
		gateway = llm.NewOpenAIClient(cfg.LLM.Endpoint, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.TimeoutSeconds)
	default:
		logger.Info("Using mock LLM gateway")
		gateway = llm.NewMockGateway()
	}

	// Agent
	dispatcher := agent.NewDispatcher(
		store.UserRepository,
		store.ProfileRepository,
		store.VehicleRepository,
		store.TransactionRepository,
	)
	agentRunner := agent.NewAgent(gateway, dispatcher, cfg.LLM.MaxToolSteps)

	// Email
	var emailSvc service.EmailService
	if cfg.Email.Enabled {
		logger.Info("Using SendGrid email service", "from", cfg.Email.FromEmail)
		emailSvc = service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	} else {
		logger.Info("Email disabled")
		emailSvc = service.NewNoopEmailService()
	}

	// Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	chatSvc := service.NewChatService(
		store.ChatRepository,
		store.TransactionRepository,
		store.VehicleRepository,
		agentRunner,
	)
	txnSvc := service.NewTransactionService(
		store.TransactionRepository,
		store.ProfileRepository,
		store.VehicleRepository,
		store.UserRepository,
		emailSvc,
	)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository)
	inventorySvc := service.NewInventoryService(store.VehicleRepository)

	// Scheduled jobs
	jobRunner := jobs.NewJobRunner(
		store.UserRepository,
		store.ProfileRepository,
		store.VehicleRepository,
		store.TransactionRepository,
		store.ChatRepository,
		inventorySvc,
		emailSvc,
		cfg,
	)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// HTTP server
	router := httpapi.NewRouter(tokenManager, authSvc, chatSvc, txnSvc, vehicleSvc)
	logger.Info("EV Rental Agent backend listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Server stopped", "error", err)
		log.Fatal(err)
	}
}
