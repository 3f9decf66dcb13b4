package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"newsroom/internal/config"
	"newsroom/internal/logging"
	"newsroom/internal/web"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	app := web.NewApp(
		web.NewClient(cfg.APIURL, 10*time.Second),
		web.NewSessionManager(cfg.SessionLifetime()),
		logger,
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(logging.RequestLogger(logger))
	app.Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.WebPort
		logger.Info("front end listening", slog.String("addr", addr), slog.String("api", cfg.APIURL))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}
