package session

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge/config"
	"github.com/pageza/fridge/internal/database"
)

// Open builds the key-value backend selected by cfg.SessionBackend. The
// returned closer releases backend connections and is never nil.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (KeyValue, io.Closer, error) {
	log = log.WithField("backend", cfg.SessionBackend)

	switch cfg.SessionBackend {
	case config.BackendMemory:
		return NewMemoryKV(), nopCloser{}, nil

	case config.BackendFile:
		log.WithField("path", cfg.SessionPath).Debug("using file session store")
		return NewFileKV(cfg.SessionPath), nopCloser{}, nil

	case config.BackendRedis:
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("addr", client.Options().Addr).Debug("connected to Redis session store")
		kv := NewRedisKV(client, "fridge:session:", cfg.SessionTTL)
		return kv, kv, nil

	case config.BackendSQL:
		db, err := database.Open(cfg.SessionDSN)
		if err != nil {
			return nil, nil, err
		}
		kv, err := NewSQLKV(db)
		if err != nil {
			if closeErr := database.Close(db); closeErr != nil {
				log.WithError(closeErr).Warn("failed to close session database")
			}
			return nil, nil, err
		}
		log.WithField("dialect", db.Dialector.Name()).Debug("opened SQL session store")
		return kv, kv, nil

	case config.BackendS3:
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		log.WithField("bucket", s3Cfg.BucketName).Debug("using S3 session store")
		return NewS3KV(s3Cfg), nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
