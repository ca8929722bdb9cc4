package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rkundra/farecalendar/internal/calendar"
	"github.com/rkundra/farecalendar/internal/config"
	"github.com/rkundra/farecalendar/internal/handler"
	"github.com/rkundra/farecalendar/internal/provider"
	"github.com/rkundra/farecalendar/internal/retry"
	"github.com/rkundra/farecalendar/internal/scheduler"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		panic("cannot read config: " + err.Error())
	}

	log := setupLogger(cfg.LogLevel)
	defer func() {
		_ = log.Sync()
	}()

	amadeus := provider.NewAmadeusClient(provider.AmadeusConfig{
		BaseURL:           cfg.Amadeus.BaseURL,
		APIKey:            cfg.Amadeus.APIKey,
		APISecret:         cfg.Amadeus.APISecret,
		Currency:          cfg.Amadeus.Currency,
		MaxResults:        cfg.Amadeus.MaxResults,
		Timeout:           cfg.Amadeus.Timeout,
		RequestsPerSecond: cfg.Amadeus.RequestsPerSecond,
		Burst:             cfg.Amadeus.Burst,
	}, log)
	if !amadeus.Configured() {
		log.Warn("amadeus credentials missing; calendar requests will fail until AMADEUS_API_KEY and AMADEUS_API_SECRET are set")
	}

	engine := calendar.New(
		amadeus,
		retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			Delay:       cfg.Retry.Delay,
			Retryable:   retry.IsTransient,
		},
		scheduler.Config{
			BatchSize:       cfg.Scheduler.BatchSize,
			InterBatchPause: cfg.Scheduler.InterBatchPause,
		},
		log,
	)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	calendarHandler := handler.NewCalendarHandler(engine)

	api := e.Group("/api")
	api.POST("/flights/price-calendar-45day", calendarHandler.FortyFiveDay)
	api.POST("/flights/price-calendar-15day", calendarHandler.FifteenDay)
	e.GET("/health", handler.HealthHandler)

	go func() {
		log.Info("starting price calendar server", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func setupLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLogLevel(level))

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
