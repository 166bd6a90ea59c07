package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	AppURL                 string
	StorageDriver          string
	DatabaseDSN            string
	RedisAddr              string
	RedisNamespace         string
	SessionSecret          string
	RefreshIntervalSeconds int
	RateLimit              int
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		StorageDriver:          getEnv("STORAGE_DRIVER", DriverSQLite),
		DatabaseDSN:            getEnv("DATABASE_DSN", "taskdeck.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisNamespace:         getEnv("REDIS_NAMESPACE", "taskdeck"),
		SessionSecret:          getEnv("SESSION_SECRET", "dev-only-secret"),
		RefreshIntervalSeconds: getEnvAsInt("REFRESH_INTERVAL_SECONDS", 300),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	switch cfg.StorageDriver {
	case DriverSQLite, DriverRedis, DriverMemory:
	default:
		log.Fatal("STORAGE_DRIVER must be one of sqlite, redis, memory")
	}
	if cfg.StorageDriver == DriverSQLite && cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET must not be empty")
	}
	if cfg.RefreshIntervalSeconds <= 0 {
		log.Fatal("REFRESH_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
