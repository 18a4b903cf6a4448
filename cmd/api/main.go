package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	"github.com/BruksfildServices01/room-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/room-booking/internal/db"
	"github.com/BruksfildServices01/room-booking/internal/infra/cache"
	"github.com/BruksfildServices01/room-booking/internal/infra/storage"
	"github.com/BruksfildServices01/room-booking/internal/logger"
	"github.com/BruksfildServices01/room-booking/internal/middleware"
	"github.com/BruksfildServices01/room-booking/internal/routes"
)

func main() {

	cfg := config.Load()
	logger.Init("booking-api", cfg.Env, cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	// --------------------------------------------------
	// Cache
	// --------------------------------------------------
	var c cache.Cache = cache.Noop{}
	if cfg.CacheEnabled() {
		rc, err := cache.NewRedis(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without cache")
		} else {
			defer rc.Close()
			c = rc
		}
	}

	// --------------------------------------------------
	// Image storage
	// --------------------------------------------------
	var images storage.ImageStore = storage.Disabled{}
	if cfg.StorageEnabled() {
		images = storage.NewS3Store(cfg)
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Cache:  c,
		Images: images,
		Audit:  auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
