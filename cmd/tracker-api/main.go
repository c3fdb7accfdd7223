package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/octa-services/plant-tracker/api/swagger"
	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/handler"
	"github.com/octa-services/plant-tracker/internal/models"
	"github.com/octa-services/plant-tracker/internal/repository"
	"github.com/octa-services/plant-tracker/internal/server"
	"github.com/octa-services/plant-tracker/internal/service"
	"github.com/octa-services/plant-tracker/pkg/cache"
	"github.com/octa-services/plant-tracker/pkg/config"
	"github.com/octa-services/plant-tracker/pkg/database"
	"github.com/octa-services/plant-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Plant Tracker API
// @version 1.0.0
// @description Maintenance problem tracking for production lines
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.ReadinessCheck{}
	metrics := service.NewMetricsService()

	sheet, db, err := openSheet(ctx, cfg)
	if err != nil {
		logr.Fatal("failed to open record store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	if db != nil {
		defer db.Close()
		checks["store"] = db.PingContext
	}

	store := repository.NewRecordStore(sheet, metrics, logr)
	for _, site := range cfg.Store.Sites {
		if err := store.EnsureSchema(ctx, site); err != nil {
			logr.Fatal("failed to prepare site sheet", zap.String("site", site), zap.Error(err))
		}
	}

	var cacheRepo service.CacheRepository
	if cfg.Stats.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, stats cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			cacheRepo = repository.NewStatsCache(client, logr)
			checks["cache"] = redisCheck(client)
		}
	}
	statsCache := service.NewCacheService(cacheRepo, metrics, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled && cacheRepo != nil)

	lines := cfg.Tracker.Lines
	if len(lines) == 0 {
		lines = models.DefaultLines
	}
	validate := service.NewTrackerValidator(lines, cfg.Tracker.Engineers)

	composer := service.NewComposerService(cfg.Composer.DraftTTL, logr)
	problems := service.NewProblemService(service.ProblemServiceParams{
		Store:     store,
		Drafts:    composer,
		Cache:     statsCache,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
		Config: service.ProblemServiceConfig{
			Lines:               lines,
			ZeroFillUnknownDays: cfg.Stats.ZeroFillUnknownDays,
		},
	})
	exports := service.NewExportService(logr, nil, nil)

	opts := server.Options{
		APIPrefix:      cfg.APIPrefix,
		Sites:          cfg.Store.Sites,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		Logger:         logr,
		Metrics:        metrics,
		Problems:       handler.NewProblemHandler(problems),
		Dashboard:      handler.NewDashboardHandler(problems, exports),
		Drafts:         handler.NewDraftHandler(composer),
		SiteList: handler.NewSiteHandler(dto.SitesResponse{
			Sites:          cfg.Store.Sites,
			Lines:          lines,
			Priorities:     models.Priorities,
			Statuses:       models.Statuses,
			ActiveStatuses: models.ActiveStatuses,
			Engineers:      cfg.Tracker.Engineers,
		}),
		Ops: handler.NewMetricsHandler(metrics.Handler(), checks),
	}
	if cfg.Auth.Enabled {
		auth := service.NewAuthService(nil, logr, service.AuthConfig{
			AccessTokenSecret: cfg.JWT.Secret,
			AccessTokenExpiry: cfg.JWT.Expiration,
			Issuer:            cfg.JWT.Issuer,
			Accounts:          cfg.Auth.Accounts,
		})
		opts.Auth = auth
		opts.Login = handler.NewAuthHandler(auth)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting",
			zap.String("addr", httpServer.Addr),
			zap.String("env", cfg.Env),
			zap.String("store", cfg.Store.Driver),
			zap.Strings("sites", cfg.Store.Sites),
			zap.Bool("stats_cache", statsCache.Enabled()),
			zap.Bool("auth", cfg.Auth.Enabled),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown failed", zap.Error(err))
	}
}

func openSheet(ctx context.Context, cfg *config.Config) (repository.Sheet, *sqlx.DB, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return repository.NewMemorySheet(), nil, nil
	default:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		sheet := repository.NewPostgresSheet(db)
		if err := sheet.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sheet, db, nil
	}
}

func redisCheck(client *redis.Client) handler.ReadinessCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
