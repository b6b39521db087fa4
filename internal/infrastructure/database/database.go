package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/Pratham9108106876/farm/internal/pkg/config"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM connection. Schema initialization runs at
// most once per process; concurrent first requests block on the same
// guard instead of racing migrations.
type Database struct {
	DB     *gorm.DB
	logger *slog.Logger

	initOnce sync.Once
	initErr  error
}

// New opens a connection using the configured driver
func New(cfg *config.Config, appLogger *slog.Logger) (*Database, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.IsDevelopment() {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	gormCfg := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	default:
		db, err = gorm.Open(postgres.Open(cfg.GetDatabaseURL()), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	appLogger.Info("database connection established",
		slog.String("driver", cfg.DBDriver),
		slog.String("database", cfg.DBName),
	)

	return &Database{
		DB:     db,
		logger: appLogger,
	}, nil
}

// Initialize migrates the schema and seeds the catalog when the crops
// table is empty. Safe to call from every request path; only the first
// call does work and later calls observe its outcome.
func (d *Database) Initialize(ctx context.Context) error {
	d.initOnce.Do(func() {
		d.logger.Info("initializing database schema")

		if err := d.DB.WithContext(ctx).AutoMigrate(
			&domain.Crop{},
			&domain.Disease{},
			&domain.Diagnosis{},
		); err != nil {
			d.initErr = fmt.Errorf("failed to run migrations: %w", err)
			return
		}

		if err := seedCatalog(ctx, d.DB, d.logger); err != nil {
			d.initErr = fmt.Errorf("failed to seed catalog: %w", err)
			return
		}

		d.logger.Info("database schema ready")
	})
	return d.initErr
}

// Close closes the database connection
func (d *Database) Close() error {
	d.logger.Info("closing database connection")
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks if the database is reachable
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Health returns health status of the database
func (d *Database) Health(ctx context.Context) map[string]interface{} {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return map[string]interface{}{
			"status": "down",
			"error":  err.Error(),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return map[string]interface{}{
			"status": "down",
			"error":  err.Error(),
		}
	}

	stats := sqlDB.Stats()

	return map[string]interface{}{
		"status":           "up",
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration":    stats.WaitDuration.String(),
	}
}
