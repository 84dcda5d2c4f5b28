package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Mongo      MongoConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
	Uploads    UploadConfig
	Validation ValidationConfig
	Cache      CacheConfig
	Audit      AuditConfig
	Seed       SeedConfig
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
	// RetryAttempts of zero keeps retrying until the process stops.
	RetryAttempts int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// UploadConfig controls multipart intake limits and where files land on disk.
type UploadConfig struct {
	Dir         string
	PublicPath  string
	MaxFileSize int64
	MaxFiles    int
}

// ValidationConfig toggles how strictly query strings are validated.
type ValidationConfig struct {
	StrictQuery bool
}

// CacheConfig governs cache TTLs for public lookups and the submission guard.
type CacheConfig struct {
	TTL                time.Duration
	SubmissionGuardTTL time.Duration
}

// AuditConfig points the audit trail at a PostgreSQL database.
type AuditConfig struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	// Workers write entries in the background. Zero writes inline.
	Workers    int
	BufferSize int
}

// SeedConfig holds the bootstrap super admin used by cmd/seed.
type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// IsProduction reports whether error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c != nil && c.Env == EnvProduction
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Mongo = MongoConfig{
		URI:            v.GetString("MONGODB_URI"),
		Database:       v.GetString("MONGODB_DATABASE"),
		ConnectTimeout: parseDuration(v.GetString("MONGO_CONNECT_TIMEOUT"), 10*time.Second),
		RetryInitial:   parseDuration(v.GetString("MONGO_RETRY_INITIAL"), time.Second),
		RetryMax:       parseDuration(v.GetString("MONGO_RETRY_MAX"), 30*time.Second),
		RetryAttempts:  v.GetInt("MONGO_RETRY_ATTEMPTS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxFileSize := v.GetInt64("UPLOAD_MAX_FILE_SIZE")
	if maxFileSize <= 0 {
		maxFileSize = 2 * 1024 * 1024
	}
	maxFiles := v.GetInt("UPLOAD_MAX_FILES")
	if maxFiles <= 0 {
		maxFiles = 4
	}
	cfg.Uploads = UploadConfig{
		Dir:         v.GetString("UPLOAD_DIR"),
		PublicPath:  v.GetString("UPLOAD_PUBLIC_PATH"),
		MaxFileSize: maxFileSize,
		MaxFiles:    maxFiles,
	}

	cfg.Validation = ValidationConfig{StrictQuery: v.GetBool("STRICT_QUERY_VALIDATION")}

	cfg.Cache = CacheConfig{
		TTL:                parseDuration(v.GetString("CACHE_TTL"), 10*time.Minute),
		SubmissionGuardTTL: parseDuration(v.GetString("SUBMISSION_GUARD_TTL"), 10*time.Second),
	}

	cfg.Audit = AuditConfig{
		Enabled:      v.GetBool("AUDIT_ENABLED"),
		Host:         v.GetString("AUDIT_DB_HOST"),
		Port:         v.GetInt("AUDIT_DB_PORT"),
		User:         v.GetString("AUDIT_DB_USER"),
		Password:     v.GetString("AUDIT_DB_PASSWORD"),
		Name:         v.GetString("AUDIT_DB_NAME"),
		SSLMode:      v.GetString("AUDIT_DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("AUDIT_DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("AUDIT_DB_MAX_IDLE_CONNS"),
		Workers:      v.GetInt("AUDIT_WORKERS"),
		BufferSize:   v.GetInt("AUDIT_BUFFER_SIZE"),
	}

	cfg.Seed = SeedConfig{
		AdminName:     v.GetString("SEED_ADMIN_NAME"),
		AdminEmail:    v.GetString("SEED_ADMIN_EMAIL"),
		AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if strings.TrimSpace(c.Mongo.URI) == "" {
		missing = append(missing, "MONGODB_URI")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("MONGODB_DATABASE", "goal")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("MONGO_RETRY_INITIAL", "1s")
	v.SetDefault("MONGO_RETRY_MAX", "30s")
	v.SetDefault("MONGO_RETRY_ATTEMPTS", 0)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_PUBLIC_PATH", "/uploads")
	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 2*1024*1024)
	v.SetDefault("UPLOAD_MAX_FILES", 4)

	v.SetDefault("STRICT_QUERY_VALIDATION", true)

	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("SUBMISSION_GUARD_TTL", "10s")

	v.SetDefault("AUDIT_ENABLED", false)
	v.SetDefault("AUDIT_DB_HOST", "localhost")
	v.SetDefault("AUDIT_DB_PORT", 5432)
	v.SetDefault("AUDIT_DB_USER", "postgres")
	v.SetDefault("AUDIT_DB_PASSWORD", "postgres")
	v.SetDefault("AUDIT_DB_NAME", "goal_audit")
	v.SetDefault("AUDIT_DB_SSL_MODE", "disable")
	v.SetDefault("AUDIT_DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("AUDIT_DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("AUDIT_WORKERS", 0)
	v.SetDefault("AUDIT_BUFFER_SIZE", 256)

	v.SetDefault("SEED_ADMIN_NAME", "Super Admin")
	v.SetDefault("SEED_ADMIN_EMAIL", "")
	v.SetDefault("SEED_ADMIN_PASSWORD", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
