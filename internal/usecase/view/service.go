package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedash/internal/domain/query"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	logpkg "github.com/kailas-cloud/dinedash/internal/logger"
	"github.com/kailas-cloud/dinedash/internal/metrics"
)

// Result is a computed view plus the context a renderer needs around it.
type Result struct {
	View       View
	Loaded     bool
	Suggestion string
}

// Service answers view and aggregate requests against the record store.
type Service struct {
	records RecordReader
	engine  *Engine

	mu        sync.Mutex
	cachedGen uint64
	cached    Aggregates
}

// New creates a view service.
func New(records RecordReader, engine *Engine) *Service {
	return &Service{records: records, engine: engine}
}

// Compute runs the filter/sort pipeline for q.
// Before the store is loaded the result is an empty (but computed) view.
func (s *Service) Compute(ctx context.Context, q query.Query) Result {
	start := time.Now()
	sortKey := q.SortOrDefault()

	v := s.engine.Compute(s.records.Records(), q)
	metrics.ViewComputeDuration.WithLabelValues(string(sortKey)).Observe(time.Since(start).Seconds())

	res := Result{View: v, Loaded: s.records.Loaded()}
	if v.Len() == 0 {
		res.Suggestion = s.suggest(q)
	}

	logpkg.FromContext(ctx).Debug("view computed",
		zap.String("sort", string(sortKey)),
		zap.Int("count", v.Len()),
		zap.Bool("loaded", res.Loaded),
	)
	return res
}

// Aggregates returns the aggregate views, recomputed when the store generation changes.
func (s *Service) Aggregates() Aggregates {
	gen := s.records.Generation()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == 0 {
		return Aggregates{Categories: []string{}, Cities: []string{}}
	}
	if s.cachedGen != gen {
		s.cached = Aggregate(s.records.Records())
		s.cachedGen = gen
	}
	return s.cached
}

// Find returns the first record with the given name.
func (s *Service) Find(name string) (restaurant.Record, bool) {
	for _, r := range s.records.Records() {
		if r.Name() == name {
			return r, true
		}
	}
	return restaurant.Record{}, false
}

// suggest proposes a known category or city close to an unmatched filter value.
func (s *Service) suggest(q query.Query) string {
	if !s.records.Loaded() {
		return ""
	}
	agg := s.Aggregates()
	if c, ok := Suggest(agg.Categories, q.Category); ok {
		return c
	}
	if c, ok := Suggest(agg.Cities, q.City); ok {
		return c
	}
	return ""
}
