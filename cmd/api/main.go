package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ocr-translate-api/cmd/configs"
	"ocr-translate-api/internal/handlers"
	"ocr-translate-api/internal/middleware"
	"ocr-translate-api/pkg/dependency_injection"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	envPaths := []string{
		"../../.env", // From cmd/api/ to the repository root
		".env",       // Current directory
	}

	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("Loaded .env from: %s", path)
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := configs.LoadConfig()

	// Initialize dependencies. OCR and translation engines are created once here
	// and shared by every request.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := dependency_injection.NewContainer(startCtx, cfg)
	cancelStart()
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer container.Close()

	// Setup router
	router := setupRouter(cfg, container.Handlers)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func setupRouter(cfg *configs.Config, h *handlers.Handlers) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ErrorMiddleware())
	router.Use(middleware.BodyLimit(cfg.Server.MaxUploadMB << 20))

	// Health check
	router.GET("/health", h.Health.Health)

	// Pipeline
	router.POST("/process-image/", h.Image.ProcessImage)
	router.POST("/upload-translated-image/", h.Upload.UploadTranslatedImage)
	router.POST("/translate-text/", h.Translate.TranslateText)

	// Job lookup
	router.GET("/jobs/:id", h.Image.GetJob)

	return router
}
