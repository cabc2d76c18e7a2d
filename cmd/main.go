package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dstasiak/cs2-tracker/config"
	"github.com/dstasiak/cs2-tracker/db"
	"github.com/dstasiak/cs2-tracker/handlers"
	"github.com/dstasiak/cs2-tracker/live"
	"github.com/dstasiak/cs2-tracker/repositories"
	"github.com/dstasiak/cs2-tracker/routes"
	"github.com/dstasiak/cs2-tracker/services"
	"github.com/dstasiak/cs2-tracker/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Uploads are optional: without R2 configuration the uploader stays
	// nil and the upload endpoints report 501.
	var uploader storage.FileUploader
	if cfg.UploadsEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2Bucket,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("object storage not configured, uploads disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("ranking feed hub started")

	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	participationRepo := repositories.NewPostgresParticipationRepository(dbConn)
	performanceRepo := repositories.NewPostgresPerformanceRepository(dbConn)

	teamService := services.NewTeamService(teamRepo, uploader)
	playerService := services.NewPlayerService(playerRepo, teamRepo, uploader)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, participationRepo, hub)
	performanceService := services.NewPerformanceService(performanceRepo, hub)
	rankingService := services.NewRankingService(playerRepo, performanceRepo, participationRepo, uploader)
	dataOpsService := services.NewDataOpsService(dbConn, teamRepo, playerRepo, tournamentRepo, participationRepo, performanceRepo, hub)

	router := routes.InitRoutes(routes.Handlers{
		Team:        handlers.NewTeamHandler(teamService),
		Player:      handlers.NewPlayerHandler(playerService),
		Tournament:  handlers.NewTournamentHandler(tournamentService),
		Performance: handlers.NewPerformanceHandler(performanceService),
		Ranking:     handlers.NewRankingHandler(rankingService),
		DataOps:     handlers.NewDataOpsHandler(dataOpsService),
		WebSocket:   handlers.NewWebSocketHandler(hub),
		Views:       handlers.NewViewsHandler(teamService, playerService, tournamentService, rankingService),
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
