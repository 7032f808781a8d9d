package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedash/internal/domain/query"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedash/internal/usecase/view"
)

// fakeTimer is a timer fired by hand.
type fakeTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// fakeClock hands out fakeTimers instead of real ones.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) afterFunc(_ time.Duration, f func()) stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{fn: f}
	c.timers = append(c.timers, t)
	return t
}

// fireActive fires every timer that was neither stopped nor fired.
func (c *fakeClock) fireActive() int {
	c.mu.Lock()
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// mockViews implements Views over a fixed record list.
type mockViews struct {
	mu      sync.Mutex
	records map[string]restaurant.Record
	queries []query.Query
}

func newMockViews(names ...string) *mockViews {
	m := &mockViews{records: make(map[string]restaurant.Record)}
	for i, n := range names {
		m.records[n] = restaurant.Reconstruct(restaurant.Params{Name: n, Status: restaurant.Open, Rank: i + 1})
	}
	return m
}

func (m *mockViews) Compute(_ context.Context, q query.Query) view.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, q)
	var items []restaurant.Record
	for _, r := range m.records {
		items = append(items, r)
	}
	return view.Result{View: view.NewView(items), Loaded: true}
}

func (m *mockViews) Find(name string) (restaurant.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[name]
	return r, ok
}

func newTestSession(views Views) (*Session, *fakeClock) {
	clock := &fakeClock{}
	s := newSession("s-1", views, DefaultSearchDebounce, time.Unix(0, 0), zap.NewNop())
	s.search.afterFunc = clock.afterFunc
	return s, clock
}
