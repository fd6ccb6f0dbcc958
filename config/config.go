package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log    Logger   `mapstructure:"logger"`
	DB     Database `mapstructure:"database"`
	API    API      `mapstructure:"api"`
	Cache  Cache    `mapstructure:"cache"`
	Kafka  Kafka    `mapstructure:"kafka"`
	Client Client   `mapstructure:"client"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	TimeZone        string        `mapstructure:"time_zone"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime string        `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type API struct {
	Port            int           `mapstructure:"port"`
	BasePath        string        `mapstructure:"base_path"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	RateExpiresIn   time.Duration `mapstructure:"rate_expires_in"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

type Cache struct {
	Driver            string        `mapstructure:"driver"`
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr         string        `mapstructure:"redis_addr"`
	RedisPassword     string        `mapstructure:"redis_password"`
	RedisDB           int           `mapstructure:"redis_db"`
	KeyPrefix         string        `mapstructure:"key_prefix"`
}

type Kafka struct {
	Brokers    []string `mapstructure:"brokers"`
	Topic      string   `mapstructure:"topic"`
	QueueSize  int      `mapstructure:"queue_size"`
	Partitions int      `mapstructure:"partitions"`
}

type Client struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether lifecycle events should be sent to Kafka.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "goodwill")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.sqlite_path", "goodwill.db")
	v.SetDefault("database.log_level", "Warn")
	v.SetDefault("database.connect_timeout", 30*time.Second)

	v.SetDefault("api.port", 8080)
	v.SetDefault("api.base_path", "/api/valuations")
	v.SetDefault("api.rate_limit", 10)
	v.SetDefault("api.rate_burst", 30)
	v.SetDefault("api.rate_expires_in", 3*time.Minute)
	v.SetDefault("api.shutdown_timeout", 10*time.Second)
	v.SetDefault("api.request_timeout", 30*time.Second)

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.default_expiration", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.key_prefix", "goodwill:")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "valuation-events")
	v.SetDefault("kafka.queue_size", 1000)
	v.SetDefault("kafka.partitions", 3)

	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", 10*time.Second)
}

// Load reads config.yaml (optional) from configPath or the working directory,
// then overlays environment variables such as DATABASE_HOST or API_PORT.
func Load(configPath string) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}
