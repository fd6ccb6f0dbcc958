package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"goodwill-valuation/config"
	"goodwill-valuation/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_SQLite(t *testing.T) {
	cfg := config.Database{
		Driver:          DriverSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "goodwill.db"),
		MaxOpenConns:    1,
		ConnMaxLifetime: "1m",
		LogLevel:        "Silent",
		ConnectTimeout:  time.Second,
	}

	db, err := NewDB(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping(context.Background()))
}

func TestNewDB_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Database
		want string
	}{
		{
			name: "unsupported driver",
			cfg:  config.Database{Driver: "oracle"},
			want: `unsupported database driver "oracle"`,
		},
		{
			name: "bad max lifetime",
			cfg: config.Database{
				Driver:          DriverSQLite,
				SQLitePath:      filepath.Join(t.TempDir(), "goodwill.db"),
				ConnMaxLifetime: "forever",
			},
			want: "invalid connection max lifetime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDB(context.Background(), tt.cfg, logger.NewNop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := config.Database{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		DBName: "goodwill", SSLMode: "disable", TimeZone: "Asia/Seoul",
	}

	assert.Equal(t,
		"host=db user=app password=secret dbname=goodwill port=5432 sslmode=disable TimeZone=Asia/Seoul",
		PostgresDSN(cfg))
}

func TestPostgresURL(t *testing.T) {
	cfg := config.Database{
		Host: "db", Port: 5432, User: "app", Password: "p@ss",
		DBName: "goodwill", SSLMode: "require",
	}

	assert.Equal(t, "postgres://app:p%40ss@db:5432/goodwill?sslmode=require", PostgresURL(cfg))
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormLogLevel("Warn"), gormLogLevel("unknown"))
	assert.NotEqual(t, gormLogLevel("Silent"), gormLogLevel("Info"))
}
