// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/princevibe/books-backend/internal/api"
	"github.com/princevibe/books-backend/internal/cache"
	"github.com/princevibe/books-backend/internal/config"
	"github.com/princevibe/books-backend/internal/gateway"
	"github.com/princevibe/books-backend/internal/repository"
	"github.com/princevibe/books-backend/internal/repository/localstore"
	"github.com/princevibe/books-backend/internal/repository/mongodb"
	"github.com/princevibe/books-backend/internal/repository/postgres"
	"github.com/princevibe/books-backend/internal/service"
	"github.com/princevibe/books-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	probeTimeout := time.Duration(cfg.Remote.ProbeTimeoutSeconds) * time.Second

	local, err := localstore.New(cfg.Local.DataDir)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open local store")
	}

	remote := newRemoteStore(cfg, probeTimeout)

	// Initialize the gateway: probe remote, pick a backing store, load.
	gw := gateway.New(remote, local, probeTimeout)
	if err := gw.Init(context.Background()); err != nil {
		logger.Log.Fatal().Err(err).Msg("Gateway initialization failed")
	}
	state := gw.State()
	logger.Log.Info().
		Str("backing", string(state.Backing)).
		Msg("Persistence gateway ready")

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, running without cache")
		reportCache = cache.NewNoopReportCache()
	}

	reportService := service.NewReportService(gw, reportCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Reader:  gw,
		Reports: reportService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// newRemoteStore builds the configured remote store. Construction failures
// are not fatal: a nil remote just sends the gateway to the local fallback.
func newRemoteStore(cfg *config.Config, probeTimeout time.Duration) repository.Books {
	switch cfg.Remote.Driver {
	case "mongo":
		if cfg.Remote.Mongo.URI == "" {
			logger.Log.Warn().Msg("Mongo driver selected but MONGO_URI is empty")
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		repo, err := mongodb.NewBooksRepository(ctx, cfg.Remote.Mongo.URI, cfg.Remote.Mongo.DBName)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Mongo remote store unavailable")
			return nil
		}
		return repo
	case "postgres":
		db, err := postgres.NewDB(&cfg.Remote.Postgres)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Postgres remote store unavailable")
			return nil
		}
		return postgres.NewBooksRepository(db)
	default:
		logger.Log.Warn().Str("driver", cfg.Remote.Driver).Msg("Unknown remote driver")
		return nil
	}
}
