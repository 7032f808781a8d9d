package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedash/internal/domain"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedash/internal/metrics"
)

// Source produces the full record set in one call.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]restaurant.Record, error)
}

// State is the lifecycle of the one-time load.
type State string

// Load states.
const (
	StatePending State = "pending"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Store holds the restaurant records. It is populated at most once and is
// read-only afterwards.
type Store struct {
	source Source
	logger *zap.Logger

	mu      sync.RWMutex
	state   State
	records []restaurant.Record
	gen     uint64
	loadErr error
}

// New creates an empty store backed by src.
func New(src Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{source: src, logger: logger, state: StatePending}
}

// Load fetches the records once. A failure is logged and leaves the store
// empty for the rest of its life; there is no retry.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePending {
		return domain.ErrAlreadyLoaded
	}

	records, err := s.source.Load(ctx)
	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		metrics.RecordLoadsTotal.WithLabelValues(s.source.Name(), "error").Inc()
		s.logger.Error("record load failed, dashboard stays empty",
			zap.String("source", s.source.Name()),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}

	s.records = slices.Clip(records)
	s.state = StateLoaded
	s.gen++
	metrics.RecordLoadsTotal.WithLabelValues(s.source.Name(), "ok").Inc()
	metrics.RecordsLoaded.Set(float64(len(records)))
	s.logger.Info("records loaded",
		zap.String("source", s.source.Name()),
		zap.Int("count", len(records)),
	)
	return nil
}

// Records returns the loaded records in source order.
// The slice is shared; callers must not modify it.
func (s *Store) Records() []restaurant.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Loaded reports whether the one-time load succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateLoaded
}

// Generation is 0 until a successful load and 1 afterwards.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// State returns the load lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LoadError returns the error of a failed load, or nil.
func (s *Store) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Ping reports readiness: nil once records are loaded.
func (s *Store) Ping(_ context.Context) error {
	if !s.Loaded() {
		return domain.ErrStoreNotLoaded
	}
	return nil
}
