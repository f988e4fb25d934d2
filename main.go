package main

import (
	"log"

	api "emailsmart-backend/cmd/api"
	reportdomain "emailsmart-backend/internal/report/domain"
	reportRepo "emailsmart-backend/internal/report/repository"
	reportScheduler "emailsmart-backend/internal/report/scheduler"
	reportUsecase "emailsmart-backend/internal/report/usecase"
	"emailsmart-backend/pkg/config"
	"emailsmart-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&reportdomain.Report{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	reportRepository := reportRepo.NewGormReportRepository(db)

	// Initialize use cases
	reportUsecaseInstance := reportUsecase.NewReportUsecase(reportRepository, cfg)

	// Start the lapsed-snooze sweeper
	sweeper := reportScheduler.NewSnoozeSweeper(reportRepository, cfg.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(reportUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
