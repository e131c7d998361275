package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server       ServerConfig
	MongoDB      MongoDBConfig
	Redis        RedisConfig
	Firebase     FirebaseConfig
	AuthDisabled bool
	Import       ImportConfig
	S3           S3Config
	OTEL         OTELConfig
	Log          LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port          string
	MaxBodySizeMB int64
}

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration // remote store timeout
}

// RedisConfig holds the local cache configuration
type RedisConfig struct {
	Addr              string
	Password          string
	CacheBackend      string // "redis" or "memory"
	MemoryCacheSizeMB int
	CacheVersion      string
}

// FirebaseConfig holds Firebase Admin SDK configuration
type FirebaseConfig struct {
	ProjectID   string
	PrivateKey  string // Base64 encoded
	ClientEmail string
}

// ImportConfig holds the workout log import defaults
type ImportConfig struct {
	SessionsPerWeek float64
	BreakWeeks      int
	IdempotencyTTL  time.Duration
}

// S3Config holds the import archive bucket. Archiving is off without an endpoint.
type S3Config struct {
	Endpoint string
	Region   string
	Bucket   string
}

// OTELConfig holds OpenTelemetry export configuration
type OTELConfig struct {
	Enabled        bool
	Endpoint       string
	InstanceID     string
	Token          string
	ServiceName    string
	ServiceVersion string
	Environment    string
}

type LogConfig struct {
	Level      string
	FormatJSON bool
	File       string
	ToStdout   bool
}

const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// Load reads configuration from environment variables
// It attempts to load from .env file first, then falls back to system env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "8080"),
			MaxBodySizeMB: getEnvAsInt64("MAX_BODY_SIZE_MB", 2),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "liftlog"),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Addr:              getEnv("REDIS_ADDR", "localhost:6379"),
			Password:          getEnv("REDIS_PASSWORD", ""),
			CacheBackend:      strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendRedis)),
			MemoryCacheSizeMB: int(getEnvAsInt64("MEMORY_CACHE_SIZE_MB", 32)),
			CacheVersion:      getEnv("CACHE_VERSION", "3"),
		},
		Firebase: FirebaseConfig{
			ProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),
			PrivateKey:  getEnv("FIREBASE_PRIVATE_KEY", ""),
			ClientEmail: getEnv("FIREBASE_CLIENT_EMAIL", ""),
		},
		AuthDisabled: getEnvAsBool("AUTH_DISABLED", false),
		Import: ImportConfig{
			SessionsPerWeek: getEnvAsFloat("IMPORT_SESSIONS_PER_WEEK", 3.5),
			BreakWeeks:      int(getEnvAsInt64("IMPORT_BREAK_WEEKS", 2)),
			IdempotencyTTL:  getEnvAsDuration("IMPORT_IDEMPOTENCY_TTL", 10*time.Minute),
		},
		S3: S3Config{
			Endpoint: getEnv("S3_ENDPOINT", ""),
			Region:   getEnv("S3_REGION", "us-east-1"),
			Bucket:   getEnv("S3_BUCKET", "liftlog-imports"),
		},
		OTEL: OTELConfig{
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			InstanceID:     getEnv("OTEL_INSTANCE_ID", ""),
			Token:          getEnv("OTEL_TOKEN", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "liftlog-api"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Environment:    getEnv("OTEL_ENVIRONMENT", "development"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			FormatJSON: getEnvAsBool("LOG_FORMAT_JSON", false),
			File:       getEnv("LOG_FILE", ""),
			ToStdout:   getEnvAsBool("LOG_TO_STDOUT", true),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if !c.AuthDisabled {
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required")
		}
		if c.Firebase.PrivateKey == "" {
			return fmt.Errorf("FIREBASE_PRIVATE_KEY is required")
		}
		if c.Firebase.ClientEmail == "" {
			return fmt.Errorf("FIREBASE_CLIENT_EMAIL is required")
		}
	}
	if c.Redis.CacheBackend != CacheBackendRedis && c.Redis.CacheBackend != CacheBackendMemory {
		return fmt.Errorf("CACHE_BACKEND must be %q or %q", CacheBackendRedis, CacheBackendMemory)
	}
	if c.Redis.CacheBackend == CacheBackendMemory && c.Redis.MemoryCacheSizeMB <= 0 {
		return fmt.Errorf("MEMORY_CACHE_SIZE_MB must be positive")
	}
	if c.Import.SessionsPerWeek <= 0 {
		return fmt.Errorf("IMPORT_SESSIONS_PER_WEEK must be positive")
	}
	if c.Import.BreakWeeks < 0 {
		return fmt.Errorf("IMPORT_BREAK_WEEKS must not be negative")
	}
	if c.S3.Endpoint != "" && c.S3.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when S3_ENDPOINT is set")
	}
	if c.OTEL.Enabled && c.OTEL.Endpoint == "" {
		return fmt.Errorf("OTEL_ENDPOINT is required when OTEL_ENABLED is true")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations such as "10s" or "5m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
