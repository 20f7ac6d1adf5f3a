package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Content store backends.
const (
	BackendMinIO   = "minio"
	BackendGateway = "gateway"
)

// ContentStoreConfig selects where KYC documents are archived.
// With the gateway backend, files are posted to an external storage service.
type ContentStoreConfig struct {
	Backend        string
	Prefix         string
	GatewayURL     string
	GatewayTimeout time.Duration
	PresignExpiry  time.Duration
}

// RedisConfig holds settings for the content index shared between instances.
// An empty URL disables Redis and falls back to a process-local index.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	IndexTTL     time.Duration
}

// KYCConfig holds the intake rules that are tunable per deployment.
type KYCConfig struct {
	UploadConcurrency int
	StrictFilenames   bool
	CR12MaxAgeDays    int
	MaxUploadMB       int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost      string
	Port         string
	Timezone     string
	LogLevel     string
	Database     DatabaseConfig
	MinIO        MinIOConfig
	ContentStore ContentStoreConfig
	Redis        RedisConfig
	KYC          KYCConfig
}

// Location resolves Timezone, falling back to UTC when it is empty or unknown.
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		ContentStore: ContentStoreConfig{
			Backend:        getEnv("CONTENT_STORE_BACKEND", BackendMinIO),
			Prefix:         getEnv("CONTENT_STORE_PREFIX", "kyc"),
			GatewayURL:     getEnv("STORAGE_GATEWAY_URL", ""),
			GatewayTimeout: getEnvDuration("STORAGE_GATEWAY_TIMEOUT", 60*time.Second),
			PresignExpiry:  getEnvDuration("CONTENT_PRESIGN_EXPIRY", 15*time.Minute),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			IndexTTL:     getEnvDuration("CONTENT_INDEX_TTL", 0),
		},
		KYC: KYCConfig{
			UploadConcurrency: getEnvInt("KYC_UPLOAD_CONCURRENCY", 4),
			StrictFilenames:   getEnvBool("KYC_STRICT_FILENAMES", false),
			CR12MaxAgeDays:    getEnvInt("KYC_CR12_MAX_AGE_DAYS", 90),
			MaxUploadMB:       getEnvInt("KYC_MAX_UPLOAD_MB", 100),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
