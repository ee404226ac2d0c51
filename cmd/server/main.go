package main

import (
	"log/slog"
	"net/http"
	"os"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/middleware"
	"freelancer-server/internal/save"
	"freelancer-server/internal/server"
	"freelancer-server/internal/shared/config"
	"freelancer-server/internal/shared/database"
	"freelancer-server/internal/shared/logger"
	"freelancer-server/internal/shared/redis"
	"freelancer-server/internal/universe"
	"freelancer-server/internal/user"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	logger.Init()
	log := slog.With("component", "main")
	log.Info("Starting Freelancer server",
		"environment", config.GlobalConfig.Server.Environment,
		"game_version", config.GlobalConfig.Game.Version,
	)

	db, err := database.Connect()
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.Connect()
	if err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	userRepo := user.NewRepository(db.DB, slog.Default())
	saveRepo := save.NewRepository(db.DB, slog.Default())
	universeRepo := universe.NewRepository(db.DB, slog.Default())

	revocation := auth.NewRevocationStore(redisClient, slog.Default())
	authService := auth.NewService(userRepo, slog.Default())
	saveService := save.NewService(saveRepo, config.GlobalConfig.Game, slog.Default())
	universeService := universe.NewService(universeRepo, slog.Default())

	routes := server.NewRoutes(db, authService, saveService, universeService, userRepo, revocation, slog.Default())
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: config.GlobalConfig.RateLimit.RequestsPerSecond,
		BurstSize:         config.GlobalConfig.RateLimit.BurstSize,
		Enabled:           config.GlobalConfig.RateLimit.Enabled,
		TrustProxy:        config.GlobalConfig.Server.Environment == "production",
	})

	handler := middleware.NewCORS().Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + config.GlobalConfig.Server.Port,
		Handler:      handler,
		ReadTimeout:  config.GlobalConfig.Server.ReadTimeout,
		WriteTimeout: config.GlobalConfig.Server.WriteTimeout,
		IdleTimeout:  config.GlobalConfig.Server.IdleTimeout,
	}

	log.Info("Server listening", "port", config.GlobalConfig.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
