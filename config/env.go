package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV, case-insensitively. CI=true always means CI.
// Anything unrecognised is development.
func GetEnvironment() Environment {
	if ci, _ := strconv.ParseBool(os.Getenv("CI")); ci {
		return CI
	}
	env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))))
	if env.Valid() && env != CI {
		return env
	}
	return Development
}

// Valid reports whether e is one of the known environments
func (e Environment) Valid() bool {
	switch e {
	case Development, Test, CI, Production:
		return true
	}
	return false
}

// SecretsFromEnv reports whether secrets are read from plain environment
// variables instead of Docker secret files
func (e Environment) SecretsFromEnv() bool {
	return e == CI
}
