// Package logger configures the structured logger shared by the client,
// the CLI and the dev server.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a logger at the given level ("debug", "info", "warn",
// "error", or "off"). If out is nil, os.Stderr is used. Unknown levels fall
// back to info.
func New(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "off", "none", "silent":
		log.SetOutput(io.Discard)
	case "":
		log.SetLevel(logrus.InfoLevel)
	default:
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		log.SetLevel(lvl)
	}

	return log
}

// Discard returns a logger that drops everything. Useful as a default for
// components constructed without one.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
