package store

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/dinedash/internal/domain"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedash/internal/metrics"
)

type mockSource struct {
	name    string
	records []restaurant.Record
	err     error
	calls   int
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Load(context.Context) ([]restaurant.Record, error) {
	m.calls++
	return m.records, m.err
}

func twoRecords() []restaurant.Record {
	return []restaurant.Record{
		restaurant.Reconstruct(restaurant.Params{Name: "A", Status: restaurant.Open, Rank: 1}),
		restaurant.Reconstruct(restaurant.Params{Name: "B", Status: restaurant.Closed}),
	}
}

func TestStore_InitiallyEmpty(t *testing.T) {
	s := New(&mockSource{name: "static"}, nil)
	if s.Loaded() || s.Generation() != 0 || len(s.Records()) != 0 {
		t.Error("new store must be empty and unloaded")
	}
	if s.State() != StatePending {
		t.Errorf("state = %q, want pending", s.State())
	}
	if !errors.Is(s.Ping(context.Background()), domain.ErrStoreNotLoaded) {
		t.Error("Ping should report ErrStoreNotLoaded before load")
	}
}

func TestStore_LoadOnce(t *testing.T) {
	src := &mockSource{name: "unit-ok", records: twoRecords()}
	s := New(src, nil)
	before := testutil.ToFloat64(metrics.RecordLoadsTotal.WithLabelValues("unit-ok", "ok"))

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Loaded() || s.Generation() != 1 || s.State() != StateLoaded {
		t.Errorf("unexpected state after load: loaded=%v gen=%d state=%q", s.Loaded(), s.Generation(), s.State())
	}
	if got := s.Records(); len(got) != 2 || got[0].Name() != "A" || got[1].Name() != "B" {
		t.Errorf("records must keep source order, got %v", got)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping after load: %v", err)
	}
	if got := testutil.ToFloat64(metrics.RecordLoadsTotal.WithLabelValues("unit-ok", "ok")); got != before+1 {
		t.Errorf("record_loads_total ok = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(metrics.RecordsLoaded); got != 2 {
		t.Errorf("records_loaded = %v, want 2", got)
	}

	if err := s.Load(context.Background()); !errors.Is(err, domain.ErrAlreadyLoaded) {
		t.Errorf("second load: expected ErrAlreadyLoaded, got %v", err)
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
}

func TestStore_LoadFailureLeavesEmptyWithoutRetry(t *testing.T) {
	cause := errors.New("boom")
	src := &mockSource{name: "unit-fail", err: cause}
	s := New(src, nil)

	err := s.Load(context.Background())
	if !errors.Is(err, domain.ErrLoadFailed) || !errors.Is(err, cause) {
		t.Fatalf("expected ErrLoadFailed wrapping cause, got %v", err)
	}
	if s.Loaded() || s.State() != StateFailed || len(s.Records()) != 0 {
		t.Error("failed store must stay empty")
	}
	if !errors.Is(s.LoadError(), cause) {
		t.Errorf("LoadError = %v", s.LoadError())
	}
	if got := testutil.ToFloat64(metrics.RecordLoadsTotal.WithLabelValues("unit-fail", "error")); got < 1 {
		t.Errorf("record_loads_total error = %v, want >= 1", got)
	}

	if err := s.Load(context.Background()); !errors.Is(err, domain.ErrAlreadyLoaded) {
		t.Errorf("retry must be refused, got %v", err)
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
}
