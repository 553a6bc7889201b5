package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/otterc137/GuessAnime/internal/catalog"
	"github.com/otterc137/GuessAnime/internal/config"
	"github.com/otterc137/GuessAnime/internal/database"
	"github.com/otterc137/GuessAnime/internal/game"
	"github.com/otterc137/GuessAnime/internal/handlers"
	"github.com/otterc137/GuessAnime/internal/jikan"
	"github.com/otterc137/GuessAnime/internal/repository"
	"github.com/otterc137/GuessAnime/internal/security"
	"github.com/otterc137/GuessAnime/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed bad words filter for leaderboard names
	if err := db.SeedBadWords(); err != nil {
		log.Printf("Warning: Failed to seed bad words filter: %v", err)
	}

	// Initialize repositories and services
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, db, cfg.StaticFilesPath, cfg.AvatarMaxSize)

	jikanClient := jikan.NewClient(cfg.JikanBaseURL)
	builder := game.NewBuilder(jikanClient)
	gameService := service.NewGameService(builder, catalog.All(), cfg.SessionTTL)
	gameService.StartCleanupRoutine()

	// Initialize handlers
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(limiter, cfg.AdminTokenSecret)
	gameHandler := handlers.NewGameHandler(gameService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	adminHandler := handlers.NewAdminHandler(leaderboardService, cfg.AdminPasswordHash, cfg.AdminTokenSecret, security.IssueAdminToken)

	// Setup routes
	mux := http.NewServeMux()

	// Static files (frontend assets and uploaded avatars)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Game routes
	mux.HandleFunc("POST /api/game/start", middleware.WithPlayer(gameHandler.Start))
	mux.HandleFunc("GET /api/game/status", middleware.WithPlayer(gameHandler.Status))
	mux.HandleFunc("GET /api/game/state", middleware.WithPlayer(gameHandler.State))
	mux.HandleFunc("POST /api/game/reveal", middleware.WithPlayer(gameHandler.Reveal))
	mux.HandleFunc("POST /api/game/guess", middleware.WithPlayer(gameHandler.Guess))
	mux.HandleFunc("POST /api/game/giveup", middleware.WithPlayer(gameHandler.GiveUp))
	mux.HandleFunc("POST /api/game/next", middleware.WithPlayer(gameHandler.Next))
	mux.HandleFunc("GET /api/game/results", middleware.WithPlayer(gameHandler.Results))

	// Leaderboard routes
	mux.HandleFunc("GET /api/leaderboard", leaderboardHandler.Get)
	mux.HandleFunc("POST /api/leaderboard", middleware.RateLimit(leaderboardHandler.Submit))

	// Admin routes
	mux.HandleFunc("POST /admin/login", middleware.RateLimit(adminHandler.Login))
	mux.HandleFunc("GET /admin/leaderboard", middleware.RequireAdmin(adminHandler.Leaderboard))
	mux.HandleFunc("POST /admin/leaderboard/{id}/delete", middleware.RequireAdmin(adminHandler.DeleteEntry))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
