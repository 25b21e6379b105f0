package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"WARN":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"verbose": logrus.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, New(in, nil).GetLevel(), "level %q", in)
	}
}

func TestNewWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)

	log.WithField("resource", "recipes").Debug("hidden")
	log.WithField("resource", "recipes").Info("request done")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "request done")
	assert.Contains(t, out, "resource=recipes")
}

func TestOffDiscards(t *testing.T) {
	var buf bytes.Buffer
	log := New("off", &buf)
	log.Error("nothing")
	assert.Empty(t, buf.String())
}
