package store

import (
	"context"
	"fmt"

	"github.com/matzehuels/jsoncanvas/pkg/config"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
)

// Open creates the backend selected by cfg.Backend, instrumented with the
// store hooks.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case config.BackendFile:
		s, err = NewFileStore(cfg.Dir)
	case config.BackendMemory:
		s = NewMemoryStore()
	case config.BackendRedis:
		s, err = NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case config.BackendMongo:
		s, err = NewMongoStore(ctx, MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, cerrors.New(cerrors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	return Instrument(cfg.Backend, s), nil
}
