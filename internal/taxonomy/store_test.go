package taxonomy

import (
	"context"
	"errors"
	"testing"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/types"
)

type fakeCache struct {
	data []byte
	dels int
}

func (c *fakeCache) Get(ctx context.Context) ([]byte, error)   { return c.data, nil }
func (c *fakeCache) Set(ctx context.Context, raw []byte) error { c.data = raw; return nil }
func (c *fakeCache) Del(ctx context.Context) error             { c.data = nil; c.dels++; return nil }

func okSources(levels []types.Level) Sources {
	return Sources{
		Levels:   func(ctx context.Context) ([]types.Level, error) { return levels, nil },
		Grades:   func(ctx context.Context) ([]types.Grade, error) { return nil, nil },
		Units:    func(ctx context.Context) ([]types.Unit, error) { return nil, nil },
		SubUnits: func(ctx context.Context) ([]types.SubUnit, error) { return nil, nil },
		Concepts: func(ctx context.Context) ([]types.Concept, error) { return nil, nil },
	}
}

func TestStoreLoadAll(t *testing.T) {
	log, _ := logger.New("dev")
	store := NewStore(log, okSources([]types.Level{{ID: 1, Name: "고등"}}), nil)

	snap, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if snap.Level(1) == nil {
		t.Fatal("expected level 1 in loaded snapshot")
	}
	if store.Snapshot() != snap {
		t.Error("Snapshot() should return the freshly installed snapshot")
	}
}

func TestStoreKeepsPreviousSnapshotOnFailure(t *testing.T) {
	log, _ := logger.New("dev")
	sources := okSources([]types.Level{{ID: 1, Name: "고등"}})
	store := NewStore(log, sources, nil)

	if _, err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	prev := store.Snapshot()

	sources.Grades = func(ctx context.Context) ([]types.Grade, error) {
		return nil, errors.New("db down")
	}
	store.sources = sources

	if _, err := store.LoadAll(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if store.Snapshot() != prev {
		t.Error("failed load must not replace the previous snapshot")
	}
}

func TestStoreCacheRoundTrip(t *testing.T) {
	log, _ := logger.New("dev")
	cache := &fakeCache{}

	store := NewStore(log, okSources([]types.Level{{ID: 1, Name: "고등"}}), cache)
	if _, err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(cache.data) == 0 {
		t.Fatal("expected snapshot written to cache")
	}

	// a second store warm-starts from the cache without touching sources
	cold := NewStore(log, Sources{}, cache)
	if !cold.WarmFromCache(context.Background()) {
		t.Fatal("expected warm start from cache")
	}
	if cold.Snapshot().Level(1) == nil {
		t.Error("warm-started snapshot missing level 1")
	}
}

func TestStoreInvalidateDropsCache(t *testing.T) {
	log, _ := logger.New("dev")
	cache := &fakeCache{}
	store := NewStore(log, okSources(nil), cache)

	if _, err := store.Invalidate(context.Background()); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if cache.dels != 1 {
		t.Errorf("expected 1 cache delete, got %d", cache.dels)
	}
}
