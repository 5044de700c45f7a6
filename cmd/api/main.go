package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ameer-511/ai-cv-analysis/internal/config"
	"github.com/ameer-511/ai-cv-analysis/internal/handlers"
	"github.com/ameer-511/ai-cv-analysis/internal/repositories"
	"github.com/ameer-511/ai-cv-analysis/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	cvRepo := repositories.NewCVRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	modelClient := services.NewOpenAIClient(cfg.OpenAI)
	analyzer := services.NewAnalyzer(extractor, modelClient)
	log.Println("✅ Services initialized successfully")

	processor := services.NewAnalysisProcessor(
		cvRepo,
		analysisRepo,
		storageService,
		analyzer,
	)

	interviewService := services.NewInterviewService(
		interviewRepo,
		analysisRepo,
		modelClient,
		cfg.Interview.QuestionCount,
	)
	log.Println("✅ Analysis pipeline initialized")

	// Initialize worker
	worker := services.NewWorker(
		cvRepo,
		processor,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		cvRepo,
		storageService,
		worker,
		cfg.Storage.MaxFileSize,
	)
	resultHandler := handlers.NewResultHandler(cvRepo, analysisRepo)
	interviewHandler := handlers.NewInterviewHandler(
		interviewService,
		interviewRepo,
		cvRepo,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI CV Analysis API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/cvs", uploadHandler.HandleUpload)
	api.Get("/cvs", resultHandler.HandleListCVs)
	api.Get("/cvs/:id", resultHandler.HandleGetCV)
	api.Get("/cvs/:id/analysis", resultHandler.HandleGetAnalysis)
	api.Post("/cvs/:id/interviews", interviewHandler.HandleStartInterview)
	api.Get("/interviews/:id", interviewHandler.HandleGetInterview)
	api.Post("/interviews/:id/answers", interviewHandler.HandleSubmitAnswer)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI CV Analysis API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/cvs",
				"GET /api/v1/cvs",
				"GET /api/v1/cvs/:id",
				"GET /api/v1/cvs/:id/analysis",
				"POST /api/v1/cvs/:id/interviews",
				"GET /api/v1/interviews/:id",
				"POST /api/v1/interviews/:id/answers",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
