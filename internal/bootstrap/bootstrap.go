package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/GregMSThompson/serrano-dashboard/internal/config"
	"github.com/GregMSThompson/serrano-dashboard/internal/metrics"
	"github.com/GregMSThompson/serrano-dashboard/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Metrics   *metrics.Metrics
	Firestore *firestore.Client
	// Firebase is nil when authentication is disabled.
	Firebase *auth.Client
	// Secrets is nil unless a database password secret is configured.
	Secrets *secretmanager.Client
	DB      *gorm.DB
	// Redis is nil when no address is configured; KPIs are then uncached.
	Redis *redis.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Metrics = metrics.New()

	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	if cfg.AuthEnabled {
		bs.Firebase, err = InitFirebase(applicationCtx)
		if err != nil {
			return bs, err
		}
	}

	dsn := cfg.DatabaseURL
	if cfg.DatabasePasswordSecret != "" {
		bs.Secrets, err = InitSecretManager(applicationCtx)
		if err != nil {
			return bs, err
		}
		dsn, err = resolveDSN(applicationCtx, bs.Secrets, cfg.DatabaseURL, cfg.DatabasePasswordSecret)
		if err != nil {
			return bs, err
		}
	}
	bs.DB, err = InitPostgres(dsn)
	if err != nil {
		return bs, err
	}

	if cfg.RedisAddr != "" {
		bs.Redis, err = InitRedis(applicationCtx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return bs, err
		}
	}

	return bs, nil
}

// Close releases every client that was opened. Safe on a partial bootstrap.
func (bs *Bootstrap) Close() {
	if bs.Redis != nil {
		if err := bs.Redis.Close(); err != nil {
			bs.Log.Warn("redis close failed", "error", err)
		}
	}
	if bs.DB != nil {
		if sqlDB, err := bs.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if bs.Secrets != nil {
		_ = bs.Secrets.Close()
	}
	if bs.Firestore != nil {
		_ = bs.Firestore.Close()
	}
}
