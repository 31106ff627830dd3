// Package config reads process configuration from the environment. A .env
// file in the working directory is loaded first when present; variables
// already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SlotMemory   = "memory"
	SlotFile     = "file"
	SlotPostgres = "postgres"
	SlotS3       = "s3"
	SlotRedis    = "redis"
)

type Config struct {
	Port            string
	BaseURL         string
	WebDir          string
	MediaOrigins    []string
	LoginLatency    time.Duration
	LogLevel        string
	CatalogPath     string
	CatalogObject   string
	SlotBackend     string
	SlotDir         string
	DatabaseURL     string
	S3Endpoint      string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Region        string
	S3Prefix        string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisPrefix     string
	ShutdownTimeout time.Duration
	EnableDocs      bool
}

// Load reads envFile (if it exists) and then the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		WebDir:          os.Getenv("WEB_DIR"),
		MediaOrigins:    splitList(os.Getenv("MEDIA_ORIGINS")),
		LoginLatency:    getEnvDuration("LOGIN_LATENCY", time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		CatalogObject:   os.Getenv("CATALOG_OBJECT"),
		SlotBackend:     getEnv("SLOT_BACKEND", SlotFile),
		SlotDir:         getEnv("SLOT_DIR", "data"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Bucket:        getEnv("S3_BUCKET", "videoshare"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3Region:        getEnv("S3_REGION", "eu-central-1"),
		S3Prefix:        getEnv("S3_PREFIX", "slots/"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         int(getEnvInt64("REDIS_DB", 0)),
		RedisPrefix:     getEnv("REDIS_PREFIX", "videoshare:"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		EnableDocs:      getEnv("API_DOCS_ENABLED", "false") == "true",
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.SlotBackend {
	case SlotMemory, SlotFile, SlotS3, SlotRedis:
	case SlotPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when SLOT_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown SLOT_BACKEND %q", c.SlotBackend)
	}
	if c.CatalogObject != "" && c.SlotBackend == SlotMemory {
		return errors.New("CATALOG_OBJECT needs a persistent SLOT_BACKEND")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
