package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge/config"
	"github.com/pageza/fridge/internal/logger"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.Config
		want any
	}{
		{"memory", config.Config{SessionBackend: config.BackendMemory}, &MemoryKV{}},
		{"file", config.Config{SessionBackend: config.BackendFile, SessionPath: filepath.Join(dir, "s.json")}, &FileKV{}},
		{"sql", config.Config{SessionBackend: config.BackendSQL, SessionDSN: filepath.Join(dir, "s.db")}, &SQLKV{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, closer, err := Open(context.Background(), &tt.cfg, logger.Discard())
			require.NoError(t, err)
			defer closer.Close()
			assert.IsType(t, tt.want, kv)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{SessionBackend: "etcd"}, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session backend")
}

func TestOpenSQLMigrationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.db")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	cfg := &config.Config{SessionBackend: config.BackendSQL, SessionDSN: "file:" + path + "?mode=ro"}
	kv, closer, err := Open(context.Background(), cfg, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to migrate session table")
	assert.Nil(t, kv)
	assert.Nil(t, closer)
}
