package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// backendRequirements lists the settings each session backend cannot run without
var backendRequirements = map[string][]string{
	BackendMemory: {},
	BackendFile:   {"SESSION_PATH"},
	BackendRedis:  {"REDIS_HOST|REDIS_URL"},
	BackendSQL:    {"SESSION_DSN"},
	BackendS3:     {"S3_BUCKET_NAME", "AWS_REGION"},
}

// ValidateConfig checks that the configuration is usable for the current environment
func ValidateConfig(cfg *Config) error {
	var errors []string

	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{Field: "API_URL", Message: fmt.Sprintf("invalid URL %q", cfg.APIURL)}.Error())
	} else if cfg.Env == Production && u.Scheme != "https" {
		errors = append(errors, ValidationError{Field: "API_URL", Message: "must use https in production"}.Error())
	}

	reqs, ok := backendRequirements[cfg.SessionBackend]
	if !ok {
		errors = append(errors, ValidationError{Field: "SESSION_BACKEND", Message: fmt.Sprintf("unknown backend %q", cfg.SessionBackend)}.Error())
	}
	for _, req := range reqs {
		if !hasAny(cfg, strings.Split(req, "|")) {
			errors = append(errors, ValidationError{Field: req, Message: fmt.Sprintf("required for %s session backend", cfg.SessionBackend)}.Error())
		}
	}

	if cfg.HTTPTimeout < 0 {
		errors = append(errors, ValidationError{Field: "HTTP_TIMEOUT", Message: "must not be negative"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

func hasAny(cfg *Config, keys []string) bool {
	for _, key := range keys {
		if settingValue(cfg, key) != "" {
			return true
		}
	}
	return false
}

func settingValue(cfg *Config, key string) string {
	switch key {
	case "SESSION_PATH":
		return cfg.SessionPath
	case "SESSION_DSN":
		return cfg.SessionDSN
	case "REDIS_HOST":
		return cfg.RedisHost
	case "REDIS_URL":
		return cfg.RedisURL
	case "S3_BUCKET_NAME":
		return cfg.S3Bucket
	case "AWS_REGION":
		return cfg.S3Region
	}
	return ""
}

// DevJWTSecret signs dev server tokens when JWT_SECRET is unset outside
// production.
const DevJWTSecret = "fridge-dev-secret"

// ValidateServerConfig checks the settings the dev server needs and fills
// development defaults.
func ValidateServerConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		if cfg.Env == Production {
			errors = append(errors, ValidationError{Field: "JWT_SECRET", Message: "required in production"}.Error())
		} else {
			cfg.JWTSecret = DevJWTSecret
		}
	}
	if cfg.ServerPort == "" {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: "required"}.Error())
	}
	if cfg.DevDSN == "" {
		errors = append(errors, ValidationError{Field: "DEVSERVER_DSN", Message: "required"}.Error())
	}
	if cfg.GenerateLimit < 0 {
		errors = append(errors, ValidationError{Field: "GENERATE_RATE_LIMIT", Message: "must not be negative"}.Error())
	}
	if cfg.GenerateLimit > 0 && cfg.GenerateWindow <= 0 {
		errors = append(errors, ValidationError{Field: "GENERATE_RATE_WINDOW", Message: "must be positive when a limit is set"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("server configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return nil
}
