package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"goodwill-valuation/config"
	"goodwill-valuation/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB is a wrapper around the gorm.DB client.
type DB struct {
	*gorm.DB
	log *logger.Logger
}

// PostgresDSN builds the key/value DSN understood by the pgx driver.
func PostgresDSN(cfg config.Database) string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)
	if cfg.TimeZone != "" {
		dsn += fmt.Sprintf(" TimeZone=%s", cfg.TimeZone)
	}
	return dsn
}

// PostgresURL builds the URL form used by golang-migrate.
func PostgresURL(cfg config.Database) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

func dialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		return postgres.Open(PostgresDSN(cfg)), nil
	case DriverSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "Silent":
		return gormlogger.Silent
	case "Error":
		return gormlogger.Error
	case "Warn":
		return gormlogger.Warn
	case "Info":
		return gormlogger.Info
	default:
		return gormlogger.Warn // Default to Warn
	}
}

// NewDB opens the configured database, retrying with exponential backoff
// until cfg.ConnectTimeout elapses so the API can start before the database.
func NewDB(ctx context.Context, cfg config.Database, log *logger.Logger) (*DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	var retry backoff.BackOff = &backoff.StopBackOff{}
	if cfg.ConnectTimeout > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.MaxElapsedTime = cfg.ConnectTimeout
		retry = exp
	}

	var db *gorm.DB
	connect := func() error {
		var openErr error
		db, openErr = gorm.Open(dial, gormConfig)
		if openErr != nil {
			return openErr
		}
		sqlDB, openErr := db.DB()
		if openErr != nil {
			return backoff.Permanent(openErr)
		}
		if openErr = sqlDB.PingContext(ctx); openErr != nil {
			_ = sqlDB.Close()
			return openErr
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("Database not ready, retrying",
			zap.String("driver", cfg.Driver),
			zap.Duration("wait", wait),
			zap.Error(err))
	}
	if err := backoff.RetryNotify(connect, backoff.WithContext(retry, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime != "" {
		duration, err := time.ParseDuration(cfg.ConnMaxLifetime)
		if err != nil {
			// Attempt to close the connection if parsing fails to prevent resource leaks
			_ = sqlDB.Close()
			return nil, fmt.Errorf("invalid connection max lifetime format '%s': %w", cfg.ConnMaxLifetime, err)
		}
		sqlDB.SetConnMaxLifetime(duration)
	}

	return &DB{DB: db, log: log}, nil
}

// Ping checks the connection pool is still usable.
func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
// For GORM, this typically closes the underlying *sql.DB connection pool.
func (d *DB) Close() error {
	if d.DB != nil {
		sqlDB, err := d.DB.DB()
		d.log.Info("Closing database connection")
		if err != nil {
			return fmt.Errorf("failed to get underlying sql.DB from GORM for closing: %w", err)
		}
		return sqlDB.Close()
	}
	return nil
}
