package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workouts"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	snapshotCacheExpire = 60 // seconds
	cacheSize           = 4 * 1024 * 1024
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=stats_test

type workoutsSource interface {
	All(ctx context.Context) ([]workouts.Workout, error)
}

// Service serves snapshots from a short lived cache.
type Service struct {
	source workoutsSource
	cache  *freecache.Cache
	now    func() time.Time

	// bumped by Invalidate, a snapshot computed across a bump is not cached
	mu         sync.Mutex
	generation uint64
}

func NewService(source workoutsSource) *Service {
	return &Service{
		source: source,
		cache:  freecache.NewCache(cacheSize),
		now:    time.Now,
	}
}

func (s *Service) Snapshot(ctx context.Context) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.service.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.now()
	// keyed by day, so the windows move at midnight even with a warm cache
	cacheKey := []byte(fmt.Sprintf("snapshot::%s", now.Format(workouts.DateLayout)))
	if cached, err := s.cache.Get(cacheKey); err == nil {
		snapshot := &Snapshot{}
		if err := json.Unmarshal(cached, snapshot); err == nil {
			log.Tracef("stats snapshot served from cache")
			return snapshot, nil
		} else {
			log.Errorf("failed to unmarshal cached stats snapshot: %s", err)
		}
	}

	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	list, err := s.source.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("get workouts: %w", err)
	}

	snapshot := Compute(list, now)

	snapshotJson, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		log.Tracef("workouts changed while computing stats, snapshot not cached")
		return &snapshot, nil
	}
	if err := s.cache.Set(cacheKey, snapshotJson, snapshotCacheExpire); err != nil {
		log.Errorf("failed to cache stats snapshot: %s", err)
	}

	return &snapshot, nil
}

// Invalidate drops cached snapshots, called after every add.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.cache.Clear()
}
