package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/medifind/internal/audit"
	"github.com/BruksfildServices01/medifind/internal/cache"
	"github.com/BruksfildServices01/medifind/internal/config"
	dbpkg "github.com/BruksfildServices01/medifind/internal/db"
	"github.com/BruksfildServices01/medifind/internal/logger"
	"github.com/BruksfildServices01/medifind/internal/metrics"
	"github.com/BruksfildServices01/medifind/internal/routes"
	"github.com/BruksfildServices01/medifind/internal/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: "medifind",
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx := context.Background()

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := dbpkg.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal("failed to seed admin", zap.Error(err))
		}
		log.Info("admin account ready", zap.String("email", cfg.AdminEmail))
	}

	dispatcher := audit.NewDispatcher(audit.New(db))
	defer dispatcher.Close()

	opts := routes.Options{
		Audit:   dispatcher,
		Metrics: metrics.New("medifind"),
	}

	if cfg.CacheEnabled() {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		opts.Cache = cache.NewPharmacyCache(client, cfg.CacheTTL)
		log.Info("pharmacy cache enabled", zap.Duration("ttl", cfg.CacheTTL))
	}

	if cfg.ImageStorageEnabled() {
		store, err := storage.NewS3Store(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal("failed to configure image storage", zap.Error(err))
		}
		opts.Images = store
		log.Info("image storage enabled", zap.String("bucket", cfg.S3Bucket))
	}

	if cfg.VerifyEmailDomain {
		opts.Resolver = net.DefaultResolver
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, opts)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
