package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DevJWTSecret is the signing secret used outside production when JWT_SECRET is unset.
const DevJWTSecret = "dev-only-secret-change-me-before-deploying"

// Storage and revocation backends.
const (
	StorageS3        = "s3"
	StorageMinIO     = "minio"
	RevocationDynamo = "dynamo"
	RevocationRedis  = "redis"
)

// ErrMissingJWTSecret is returned by Load when production runs without a real secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set to a non-placeholder value in production")

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	StorageBackend string
	MediaBucket    string
	ImagesBucket   string
	PublicBaseURL  string // overrides the derived public object URL prefix
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool

	RevocationBackend string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	JWTSecret string
	JWTExpiry time.Duration

	UploadDir     string
	MaxMediaBytes int64
	MaxImageBytes int64

	LogLevel string
	LogDev   bool

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Media         string
	Images        string
	RevokedTokens string
}

// Load reads all configuration from environment variables.
// It fails when the process is configured for production without a signing secret.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort: getEnv("APP_PORT", "1000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Media:         getEnv("DYNAMO_TABLE_MEDIA", "media"),
			Images:        getEnv("DYNAMO_TABLE_IMAGES", "user_images"),
			RevokedTokens: getEnv("DYNAMO_TABLE_REVOKED_TOKENS", "revoked_tokens"),
		},

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageS3)),
		MediaBucket:    getEnv("MEDIA_BUCKET", "media"),
		ImagesBucket:   getEnv("IMAGES_BUCKET", "images"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		RevocationBackend: strings.ToLower(getEnv("REVOCATION_BACKEND", RevocationDynamo)),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: getEnvDuration("TOKEN_EXPIRY", time.Hour),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxMediaBytes: int64(getEnvInt("MAX_MEDIA_MB", 100)) << 20,
		MaxImageBytes: int64(getEnvInt("MAX_IMAGE_MB", 10)) << 20,

		LogLevel: getEnv("LOG_LEVEL", ""),
		LogDev:   getEnv("LOG_DEV", "") == "1",

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == DevJWTSecret {
		if cfg.IsProduction() {
			return nil, ErrMissingJWTSecret
		}
		cfg.JWTSecret = DevJWTSecret
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "production" || env == "prod"
}

// UsesDevSecret reports whether tokens are signed with the development placeholder.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

// StorageConfigured reports whether an object storage target is set up.
func (c *Config) StorageConfigured() bool {
	if c.MediaBucket == "" || c.ImagesBucket == "" {
		return false
	}
	switch c.StorageBackend {
	case StorageMinIO:
		return c.MinIOEndpoint != ""
	case StorageS3:
		return c.AWSRegion != ""
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
