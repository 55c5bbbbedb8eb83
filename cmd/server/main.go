package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/banquet-calendar/internal/app"
	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
	"github.com/nekogravitycat/banquet-calendar/internal/config"
	"github.com/nekogravitycat/banquet-calendar/internal/db"
	"github.com/nekogravitycat/banquet-calendar/internal/logger"
	"github.com/nekogravitycat/banquet-calendar/internal/metrics"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	metrics.Register()

	// Booking API client, optionally behind the redis cache
	repo := booking.NewHTTPRepository(booking.ClientConfig{
		BaseURL:  cfg.BookingAPIURL,
		ListPath: cfg.BookingListPath,
		Timeout:  cfg.BookingAPITimeout,
		RPS:      cfg.BookingAPIRPS,
		Burst:    cfg.BookingAPIBurst,
	}, zl)

	if cfg.RedisAddr != "" {
		client, err := db.NewRedisClient(ctx, db.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			zl.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()

		repo = booking.NewCachedRepository(repo, booking.NewRedisCache(client, "banquet:"), cfg.CacheTTL, zl)
		zl.Info("booking cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	container := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		JWTSecret:    cfg.JWTSecret,
		BookingRepo:  repo,
		Calendar: calendar.Options{
			FirstDay:       cfg.FirstDayOfWeek,
			ShowAuspicious: cfg.ShowAuspicious,
			BadgeCap:       cfg.BadgeCap,
		},
		MobileBreakpoint: cfg.MobileBreakpoint,
		Logger:           zl,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zl.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Warn("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}
