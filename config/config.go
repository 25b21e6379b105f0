package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Session backends understood by session.Open
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQL    = "sql"
	BackendS3     = "s3"
)

// Config holds all configuration for the client and the dev server
type Config struct {
	Env Environment

	// Backend API
	APIURL      string
	HTTPTimeout time.Duration

	// Session persistence
	SessionBackend string
	SessionPath    string
	SessionTTL     time.Duration
	SessionDSN     string

	// Redis session backend
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// S3 session backend
	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3Prefix   string

	LogLevel string

	// Dev server
	ServerHost  string
	ServerPort  string
	JWTSecret   string
	CORSOrigins []string
	DevDSN      string

	// Per-user recipe generation limit, enforced through Redis when set
	GenerateLimit  int
	GenerateWindow time.Duration
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Env:            env,
		APIURL:         strings.TrimRight(v.GetString("API_URL"), "/"),
		HTTPTimeout:    v.GetDuration("HTTP_TIMEOUT"),
		SessionBackend: strings.ToLower(v.GetString("SESSION_BACKEND")),
		SessionPath:    v.GetString("SESSION_PATH"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		SessionDSN:     v.GetString("SESSION_DSN"),
		RedisHost:      v.GetString("REDIS_HOST"),
		RedisPort:      v.GetString("REDIS_PORT"),
		RedisDB:        v.GetInt("REDIS_DB"),
		RedisURL:       v.GetString("REDIS_URL"),
		S3Bucket:       v.GetString("S3_BUCKET_NAME"),
		S3Region:       v.GetString("AWS_REGION"),
		S3Endpoint:     v.GetString("S3_ENDPOINT"),
		S3Prefix:       v.GetString("S3_PREFIX"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		ServerHost:     v.GetString("SERVER_HOST"),
		ServerPort:     v.GetString("SERVER_PORT"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		DevDSN:         v.GetString("DEVSERVER_DSN"),
		GenerateLimit:  v.GetInt("GENERATE_RATE_LIMIT"),
		GenerateWindow: v.GetDuration("GENERATE_RATE_WINDOW"),
	}

	// Secrets come from the environment in CI and from Docker secrets elsewhere
	if env.SecretsFromEnv() {
		cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	} else {
		cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD")
		cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET")
	}

	if cfg.SessionBackend == BackendFile && cfg.SessionPath == "" {
		path, err := defaultSessionPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve session path: %w", err)
		}
		cfg.SessionPath = path
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_URL", "http://localhost:3000")
	v.SetDefault("HTTP_TIMEOUT", time.Duration(0))
	v.SetDefault("SESSION_BACKEND", BackendFile)
	v.SetDefault("SESSION_TTL", time.Duration(0))
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("S3_BUCKET_NAME", "fridge-sessions")
	v.SetDefault("S3_PREFIX", "sessions/")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_HOST", "localhost")
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3001")
	v.SetDefault("DEVSERVER_DSN", "sqlite://fridge-dev.db")
	v.SetDefault("GENERATE_RATE_LIMIT", 0)
	v.SetDefault("GENERATE_RATE_WINDOW", time.Hour)
}

// defaultSessionPath mirrors the browser's per-profile local storage
func defaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fridge", "session.json"), nil
}

// secretOrEnv prefers a Docker secret and falls back to the environment
func secretOrEnv(secret, envVar string) string {
	if value := readSecret(secret); value != "" {
		return value
	}
	return os.Getenv(envVar)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
