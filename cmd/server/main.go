package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/coachdesk/onboard/internal/config"
	"github.com/coachdesk/onboard/internal/database"
	"github.com/coachdesk/onboard/internal/handlers"
	"github.com/coachdesk/onboard/internal/middleware"
	"github.com/coachdesk/onboard/internal/services"
	"github.com/coachdesk/onboard/internal/storage"
	"github.com/coachdesk/onboard/internal/types"

	_ "github.com/coachdesk/onboard/docs/api" // Swagger docs
)

// @title Onboard API
// @version 1.0.0
// @description Client onboarding data service: form configurations, submissions, and document uploads
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/coachdesk/onboard
// @contact.email engineering@coachdesk.io

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Object storage. The bucket name "memory" selects the in-process store
	// for local development without a storage backend.
	var store storage.ObjectStore
	if cfg.StorageBucket == "memory" {
		store = storage.NewMemoryStore()
	} else {
		gcs, err := storage.NewGCSStore(context.Background(), cfg.StorageBucket)
		if err != nil {
			log.Fatalf("Failed to open storage bucket %s: %v", cfg.StorageBucket, err)
		}
		defer gcs.Close()
		store = gcs
	}

	// Optional demo configuration seeding
	if cfg.SeedDemo {
		if err := services.EnsureSeedConfiguration(db); err != nil {
			log.Fatalf("Failed to seed demo configuration: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("onboard")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Health
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db, store)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Create handlers
	configHandler := &handlers.ConfigurationHandler{DB: db}
	submissionHandler := &handlers.SubmissionHandler{DB: db}
	documentHandler := &handlers.DocumentHandler{DB: db, Store: store}

	secret := cfg.JWTSecret

	// Form configuration routes (any authenticated role reads, admin writes)
	api.Get("/form-configurations", middleware.AuthAny(secret), configHandler.ListConfigurations)
	api.Get("/form-configurations/:configId", middleware.AuthAny(secret), configHandler.GetConfiguration)
	api.Post("/form-configurations", middleware.AuthAdmin(secret), configHandler.CreateConfiguration)
	api.Put("/form-configurations/:configId", middleware.AuthAdmin(secret), configHandler.UpdateConfiguration)
	api.Delete("/form-configurations/:configId", middleware.AuthAdmin(secret), configHandler.DeleteConfiguration)
	api.Post("/form-configurations/:configId/clone", middleware.AuthAdmin(secret), configHandler.CloneConfiguration)

	// Form submission routes
	api.Post("/form-submissions", middleware.AuthClient(secret), submissionHandler.CreateSubmission)
	api.Get("/form-submissions", middleware.AuthAny(secret), submissionHandler.ListSubmissions)
	api.Get("/form-submissions/:id", middleware.AuthAny(secret), submissionHandler.GetSubmission)
	api.Put("/form-submissions/:id", middleware.AuthClient(secret), submissionHandler.SaveDraft)
	api.Post("/form-submissions/:id/submit", middleware.AuthClient(secret), submissionHandler.Submit)
	api.Post("/form-submissions/:id/review", middleware.AuthCoach(secret), submissionHandler.Review)
	api.Post("/form-submissions/:id/decision", middleware.AuthCoach(secret), submissionHandler.Decide)
	api.Delete("/form-submissions/:id", middleware.AuthClient(secret), submissionHandler.DeleteSubmission)

	// Document routes
	api.Get("/form-submissions/:id/documents", middleware.AuthAny(secret), documentHandler.ListDocuments)
	api.Get("/form-submissions/:id/documents/status", middleware.AuthAny(secret), documentHandler.GetDocumentStatus)
	api.Post("/form-submissions/:id/documents/:documentId/upload", middleware.AuthAny(secret), documentHandler.UploadDocument)
	api.Get("/documents/:recordId/download", middleware.AuthAny(secret), documentHandler.GetDownloadURL)
	api.Post("/documents/:recordId/verify", middleware.AuthCoach(secret), documentHandler.VerifyDocument)
	api.Delete("/documents/:recordId", middleware.AuthAny(secret), documentHandler.DeleteDocument)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check if it's a typed application error (authorization failures)
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
