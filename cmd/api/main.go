package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/rental-analyzer/internal/config"
	"github.com/Dan9191/rental-analyzer/internal/handler"
	"github.com/Dan9191/rental-analyzer/internal/integrations/cbr"
	"github.com/Dan9191/rental-analyzer/internal/repository"
	"github.com/Dan9191/rental-analyzer/internal/service"
	"github.com/Dan9191/rental-analyzer/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	cbrClient := cbr.NewClient(cfg.CBRURL, cfg.RateMargin, logger)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, cbrClient, sender, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Refresh the reference rate on startup and on schedule
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := svc.RefreshReferenceRate(ctx); err != nil {
			logger.Errorf("Reference rate refresh failed: %v", err)
		}
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RateRefreshSpec, refresh); err != nil {
		logger.Fatalf("Invalid RATE_REFRESH_SPEC %q: %v", cfg.RateRefreshSpec, err)
	}
	scheduler.Start()
	go refresh()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	<-scheduler.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
}
