package bootstrap

import (
	"context"
	"net/url"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GregMSThompson/serrano-dashboard/internal/store"
)

func InitPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func InitSecretManager(ctx context.Context) (*secretmanager.Client, error) {
	return secretmanager.NewClient(ctx)
}

// resolveDSN replaces the DSN password with the payload of secretName.
func resolveDSN(ctx context.Context, client *secretmanager.Client, dsn, secretName string) (string, error) {
	password, err := store.NewSecretStore(client).Access(ctx, secretName)
	if err != nil {
		return "", err
	}
	return withPassword(dsn, strings.TrimSpace(password)), nil
}

// withPassword handles both URL and key=value DSNs.
func withPassword(dsn, password string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err == nil {
			user := ""
			if u.User != nil {
				user = u.User.Username()
			}
			u.User = url.UserPassword(user, password)
			return u.String()
		}
	}
	return strings.TrimSpace(dsn) + " password='" + strings.ReplaceAll(password, "'", `\'`) + "'"
}
