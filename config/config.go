package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App               AppConfig
	HTTP              ServerConfig
	GRPC              ServerConfig
	MySQL             MySQLConfig
	Log               LogConfig
	InternalEndpoints InternalEndpointsConfig
	Redis             RedisConfig
	Queue             QueueConfig
	Cache             CacheConfig
	Jobs              JobsConfig
}

type AppConfig struct {
	ServiceName string
	APIKey      string
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type InternalEndpointsConfig struct {
	AuthGRPCAddr string
}

type RedisConfig struct {
	URL string
}

type QueueConfig struct {
	Key               string
	MaxAttempts       int
	WorkerConcurrency int
	PollTimeout       time.Duration
}

type CacheConfig struct {
	Driver      string
	Prefix      string
	TotalSumTTL time.Duration
}

type JobsConfig struct {
	// RecomputeSchedule is a robfig/cron expression for the recompute sweep.
	RecomputeSchedule string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "services-billing"),
			APIKey:      getEnv("APP_API_KEY", ""),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		GRPC: ServerConfig{
			Host: getEnv("GRPC_HOST", "0.0.0.0"),
			Port: getEnv("GRPC_PORT", "9090"),
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		InternalEndpoints: InternalEndpointsConfig{
			AuthGRPCAddr: getEnv("AUTH_SERVICE_GRPC_ADDR", "localhost:9090"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Queue: QueueConfig{
			Key:               getEnv("QUEUE_KEY", "billing:jobs"),
			MaxAttempts:       getIntEnv("QUEUE_MAX_ATTEMPTS", 5),
			WorkerConcurrency: getIntEnv("WORKER_CONCURRENCY", 4),
			PollTimeout:       getSecondsEnv("WORKER_POLL_TIMEOUT_SECONDS", 5*time.Second),
		},
		Cache: CacheConfig{
			Driver:      getEnv("CACHE_DRIVER", "redis"),
			Prefix:      getEnv("CACHE_PREFIX", "services-billing:"),
			TotalSumTTL: getDurationEnv("TOTAL_SUM_CACHE_TTL_MINUTES", 5*time.Minute),
		},
		Jobs: JobsConfig{
			RecomputeSchedule: getEnv("RECOMPUTE_SCHEDULE", "@every 1h"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
