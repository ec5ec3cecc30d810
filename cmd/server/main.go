package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/intuition/internal/analytics"
	"github.com/vytor/intuition/internal/api"
	"github.com/vytor/intuition/internal/config"
	"github.com/vytor/intuition/internal/db"
	"github.com/vytor/intuition/internal/jobs"
	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/repository/sqlite"
	"github.com/vytor/intuition/internal/services"
	"github.com/vytor/intuition/internal/worker"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Intuition Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("event_worker_count=%d", cfg.EventWorkerCount)
	log.Debug("event_queue_size=%d", cfg.EventQueueSize)
	log.Debug("session_ttl=%s", cfg.SessionTTL)
	log.Debug("max_active_sessions=%d", cfg.MaxActiveSessions)
	log.Debug("cors_allowed_origins=%v", cfg.CORSAllowedOrigins)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	eventPool := worker.NewPool(cfg.EventWorkerCount, cfg.EventQueueSize)
	jobQueue := jobs.NewWorkerQueue(eventPool, analytics.NewLogTracker())

	profileRepo := sqlite.NewProfileRepository(database.DB)
	runRepo := sqlite.NewRunRepository(database.DB)
	difficultyRepo := sqlite.NewDifficultyRepository(database.DB)

	progressService := services.NewProgressService(runRepo, difficultyRepo)
	sessionService := services.NewSessionService(
		services.SessionServiceConfig{TTL: cfg.SessionTTL, MaxActive: cfg.MaxActiveSessions},
		runRepo, difficultyRepo, progressService, jobQueue,
	)

	srv := &api.Server{
		ProfileService:  services.NewProfileService(profileRepo),
		GameService:     services.NewGameService(difficultyRepo),
		SessionService:  sessionService,
		ProgressService: progressService,
		DB:              database,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	}

	ctx, cancel := context.WithCancel(context.Background())
	eventPool.Start(ctx)
	go sweepSessions(ctx, sessionService, log)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain queued analytics events before cancelling the workers.
	log.Debug("stopping event pool")
	eventPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("Intuition Server Stopped")
	log.Info("===========================================")
}

func sweepSessions(ctx context.Context, sessions services.SessionService, log *logger.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				log.Debug("expired %d idle sessions, %d active", n, sessions.ActiveSessions())
			}
		}
	}
}
