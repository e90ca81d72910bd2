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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/szl-run/szl-backend/config"
	"github.com/szl-run/szl-backend/db"
	"github.com/szl-run/szl-backend/handlers"
	"github.com/szl-run/szl-backend/live"
	"github.com/szl-run/szl-backend/repositories"
	api "github.com/szl-run/szl-backend/routes"
	"github.com/szl-run/szl-backend/services"
	"github.com/szl-run/szl-backend/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Bool("donation_aggregation", cfg.DonationAggregation))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Загрузчик файлов (Cloudflare R2) опционален: без него сервис
	// работает, но ручки загрузки логотипов отвечают 503.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("Cloudflare R2 not configured, file uploads disabled")
	}

	// Live-фид кругов
	hub := live.NewHub()
	go hub.Run()
	logger.Info("live feed hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	tagRepo := repositories.NewPostgresTagRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	runnerRepo := repositories.NewPostgresRunnerRepository(dbConn)
	categoryRepo := repositories.NewPostgresCategoryRepository(dbConn)
	participateRepo := repositories.NewPostgresParticipateRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	donationRepo := repositories.NewPostgresDonationRepository(dbConn)
	giftRepo := repositories.NewPostgresGiftRepository(dbConn)
	receiveRepo := repositories.NewPostgresReceiveRepository(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo)
	eventService := services.NewEventService(dbConn, eventRepo, uploader)
	tagService := services.NewTagService(tagRepo)
	teamService := services.NewTeamService(teamRepo)
	runnerService := services.NewRunnerService(runnerRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	participateService := services.NewParticipateService(participateRepo)
	roundService := services.NewRoundService(dbConn, roundRepo, participateRepo, hub)
	donationService := services.NewDonationService(dbConn, donationRepo, cfg.DonationAggregation)
	giftService := services.NewGiftService(giftRepo)
	receiveService := services.NewReceiveService(receiveRepo)
	dashboardService := services.NewDashboardService(
		eventRepo,
		runnerRepo,
		teamRepo,
		participateRepo,
		roundRepo,
		donationRepo,
	)
	logger.Info("services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Event:       handlers.NewEventHandler(eventService),
		Tag:         handlers.NewTagHandler(tagService),
		Participate: handlers.NewParticipateHandler(participateService),
		Donation:    handlers.NewDonationHandler(donationService),
		Round:       handlers.NewRoundHandler(roundService),
		Team:        handlers.NewTeamHandler(teamService),
		Runner:      handlers.NewRunnerHandler(runnerService),
		Category:    handlers.NewCategoryHandler(categoryService),
		Gift:        handlers.NewGiftHandler(giftService),
		Receive:     handlers.NewReceiveHandler(receiveService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		WebSocket:   handlers.NewWebSocketHandler(hub, eventService),
	}, cfg.JWTSecretKey)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
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

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
