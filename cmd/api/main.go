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

	"alfredoptarigan/smart-ats/internal/config"
	"alfredoptarigan/smart-ats/internal/handlers"
	"alfredoptarigan/smart-ats/internal/repositories"
	"alfredoptarigan/smart-ats/internal/services"
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
	userRepo := repositories.NewUserRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfExtractor := services.NewPDFExtractorService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini, cfg.Analyzer.Temperature)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize analyzer
	analyzerService := services.NewAnalyzerService(
		geminiService,
		cfg.Analyzer.MaxRetries,
		cfg.Analyzer.RetryDelay,
	)
	log.Println("✅ Analyzer service initialized")

	// Initialize auth services
	tokenService := services.NewTokenService(cfg.Auth)
	authService := services.NewAuthService(userRepo)

	// Initialize review indexer
	indexer := services.NewIndexer(
		reviewRepo,
		geminiService,
		qdrantService,
		cfg.Indexer.Concurrency,
	)

	ctx := context.Background()
	indexer.Start(ctx)
	log.Println("✅ Indexer started successfully")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		analyzerService,
		pdfExtractor,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	authHandler := handlers.NewAuthHandler(authService, tokenService, reviewRepo)
	reviewHandler := handlers.NewReviewHandler(
		reviewRepo,
		userRepo,
		geminiService,
		qdrantService,
		indexer,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Smart ATS API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
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
	authRequired := handlers.NewAuthMiddleware(tokenService)

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "up"
		if sqlDB, dbErr := db.DB(); dbErr != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}

		qdrantStatus := "up"
		if pingErr := qdrantService.Ping(c.Context()); pingErr != nil {
			qdrantStatus = "down"
		}

		status := "healthy"
		if dbStatus != "up" || qdrantStatus != "up" {
			status = "degraded"
		}

		return c.JSON(fiber.Map{
			"status":   status,
			"database": dbStatus,
			"qdrant":   qdrantStatus,
			"time":     time.Now(),
		})
	})

	// Analysis
	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.HandleSignup)
	auth.Post("/login", authHandler.HandleLogin)
	auth.Post("/refresh", authHandler.HandleRefresh)
	auth.Post("/logout", authRequired, authHandler.HandleLogout)
	auth.Get("/verify", authRequired, authHandler.HandleVerify)
	auth.Get("/profile", authRequired, authHandler.HandleGetProfile)
	auth.Put("/profile", authRequired, authHandler.HandleUpdateProfile)
	auth.Get("/stats", authRequired, authHandler.HandleGetStats)

	// Reviews
	reviews := api.Group("/reviews", authRequired)
	reviews.Post("", reviewHandler.HandleCreate)
	reviews.Get("", reviewHandler.HandleList)
	reviews.Get("/stats", reviewHandler.HandleStats)
	reviews.Get("/search", reviewHandler.HandleSearch)
	reviews.Get("/similar", reviewHandler.HandleSimilar)
	reviews.Get("/trending-keywords", reviewHandler.HandleTrendingKeywords)
	reviews.Get("/export", reviewHandler.HandleExport)
	reviews.Get("/:id", reviewHandler.HandleGet)
	reviews.Put("/:id", reviewHandler.HandleUpdate)
	reviews.Delete("/:id", reviewHandler.HandleDelete)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Smart ATS API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"POST /api/v1/auth/signup",
				"POST /api/v1/auth/login",
				"GET /api/v1/reviews",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		indexer.Stop()
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
