package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/types"
)

// Sources supplies the five flat collections. In production these are backed
// by the repos; tests hand in plain functions.
type Sources struct {
	Levels   func(ctx context.Context) ([]types.Level, error)
	Grades   func(ctx context.Context) ([]types.Grade, error)
	Units    func(ctx context.Context) ([]types.Unit, error)
	SubUnits func(ctx context.Context) ([]types.SubUnit, error)
	Concepts func(ctx context.Context) ([]types.Concept, error)
}

// SnapshotCache persists a serialized snapshot outside the process. Optional.
type SnapshotCache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, raw []byte) error
	Del(ctx context.Context) error
}

// Store holds the current taxonomy snapshot. Loads fan out in parallel and
// replace the snapshot atomically; any single fetch failure aborts the whole
// load and the previous snapshot stays in place (stale but available).
type Store struct {
	log     *logger.Logger
	sources Sources
	cache   SnapshotCache

	mu   sync.RWMutex
	snap *Snapshot
}

func NewStore(log *logger.Logger, sources Sources, cache SnapshotCache) *Store {
	return &Store{
		log:     log.With("service", "TaxonomyStore"),
		sources: sources,
		cache:   cache,
		snap:    NewSnapshot(nil, nil, nil, nil, nil),
	}
}

// Snapshot returns the current snapshot. Never nil.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

type snapshotWire struct {
	Levels   []types.Level   `json:"levels"`
	Grades   []types.Grade   `json:"grades"`
	Units    []types.Unit    `json:"units"`
	SubUnits []types.SubUnit `json:"subUnits"`
	Concepts []types.Concept `json:"concepts"`
}

// LoadAll fetches the five collections concurrently and installs a fresh
// snapshot. The first error cancels the remaining fetches.
func (s *Store) LoadAll(ctx context.Context) (*Snapshot, error) {
	var wire snapshotWire

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wire.Levels, err = s.sources.Levels(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		wire.Grades, err = s.sources.Grades(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		wire.Units, err = s.sources.Units(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		wire.SubUnits, err = s.sources.SubUnits(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		wire.Concepts, err = s.sources.Concepts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("Taxonomy load failed, keeping previous snapshot", "error", err)
		return nil, fmt.Errorf("taxonomy load: %w", err)
	}

	snap := NewSnapshot(wire.Levels, wire.Grades, wire.Units, wire.SubUnits, wire.Concepts)
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if s.cache != nil {
		if raw, err := json.Marshal(wire); err == nil {
			if err := s.cache.Set(ctx, raw); err != nil {
				s.log.Debug("Snapshot cache write failed", "error", err)
			}
		}
	}

	return snap, nil
}

// WarmFromCache tries to install a snapshot from the external cache before
// the first database load. A miss or decode failure is not an error.
func (s *Store) WarmFromCache(ctx context.Context) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx)
	if err != nil || len(raw) == 0 {
		return false
	}
	var wire snapshotWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		s.log.Debug("Snapshot cache decode failed", "error", err)
		return false
	}
	snap := NewSnapshot(wire.Levels, wire.Grades, wire.Units, wire.SubUnits, wire.Concepts)
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return true
}

// Invalidate drops the cached copy and reloads. Called after any taxonomy
// mutation.
func (s *Store) Invalidate(ctx context.Context) (*Snapshot, error) {
	if s.cache != nil {
		if err := s.cache.Del(ctx); err != nil {
			s.log.Debug("Snapshot cache delete failed", "error", err)
		}
	}
	return s.LoadAll(ctx)
}
