//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

// These tests need live servers:
//
//	JSONCANVAS_REDIS_ADDR=localhost:6379 \
//	JSONCANVAS_MONGO_URI=mongodb://localhost:27017 \
//	go test -tags integration ./pkg/store/

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("JSONCANVAS_REDIS_ADDR")
	if addr == "" {
		t.Skip("JSONCANVAS_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "jsoncanvas-test:" + uuid.NewString() + ":"})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() {
		names, _ := s.List(ctx)
		for _, n := range names {
			_ = s.Delete(ctx, n)
		}
		s.Close()
	})
	testStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("JSONCANVAS_MONGO_URI")
	if uri == "" {
		t.Skip("JSONCANVAS_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoConfig{
		URI:        uri,
		Database:   "jsoncanvas_test",
		Collection: "canvases_" + uuid.NewString()[:8],
	})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	t.Cleanup(func() {
		_ = s.coll.Drop(ctx)
		s.Close()
	})
	testStore(t, s)
}
