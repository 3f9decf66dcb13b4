package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"newsroom/docs"
	"newsroom/internal/auth"
	"newsroom/internal/cache"
	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/handler"
	"newsroom/internal/logging"
	"newsroom/internal/repository"
	"newsroom/internal/router"
	"newsroom/internal/scheduler"
	"newsroom/internal/service"
)

// @title Newsroom API
// @version 1.0
// @description News publishing API with users, papers, articles, reviews, likes and JWT authentication.
// @host localhost:3000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, logins will fail until it is set")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("database init", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient != nil {
		if err := cacheClient.Ping(context.Background()); err != nil {
			logger.Warn("redis unreachable, caching and token revocation degraded", slog.Any("error", err))
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)
	paperRepo := repository.NewPaperRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	likeRepo := repository.NewArticleLikeRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry())
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, reviewRepo, cacheClient)
	articleService := service.NewArticleService(articleRepo, paperRepo, cacheClient)
	paperService := service.NewPaperService(paperRepo, cacheClient)
	reviewService := service.NewReviewService(reviewRepo, articleRepo, cacheClient)
	likeService := service.NewLikeService(likeRepo, articleRepo, cacheClient)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, jwtService, tokenStore, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Article: handler.NewArticleHandler(articleService),
		Review:  handler.NewReviewHandler(reviewService),
		Like:    handler.NewLikeHandler(likeService),
		Paper:   handler.NewPaperHandler(paperService),
	})

	jobs, err := scheduler.New(logger, scheduler.Config{
		EditionName:      cfg.EditionName,
		EditionPublisher: cfg.EditionPublisher,
	}, paperService, articleRepo, userRepo)
	if err != nil {
		logger.Error("scheduler init", slog.Any("error", err))
		os.Exit(1)
	}
	jobs.Start()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	logger.Info("swagger documentation available", slog.String("url", swaggerURL(cfg)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("api listening", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	jobs.Stop(shutdownCtx)
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}

func swaggerURL(cfg *config.Config) string {
	switch {
	case cfg.SwaggerHost == "":
		return "http://localhost:" + cfg.ServerPort + "/api-docs/index.html"
	case strings.HasPrefix(cfg.SwaggerHost, "http://"), strings.HasPrefix(cfg.SwaggerHost, "https://"):
		return cfg.SwaggerHost + "/api-docs/index.html"
	default:
		return "http://" + cfg.SwaggerHost + "/api-docs/index.html"
	}
}
