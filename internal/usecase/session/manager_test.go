package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/dinedash/internal/domain"
	"github.com/kailas-cloud/dinedash/internal/metrics"
	"github.com/kailas-cloud/dinedash/internal/usecase/dialog"
)

func TestManager_CreateGetDelete(t *testing.T) {
	m := NewManager(newMockViews(), Config{}, nil)

	s := m.Create()
	if s.ID() == "" {
		t.Fatal("session id must be set")
	}
	got, err := m.Get(s.ID())
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if m.Len() != 1 || testutil.ToFloat64(metrics.SessionsActive) != 1 {
		t.Error("expected one active session")
	}

	if err := m.Delete(s.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(s.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if err := m.Delete(s.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("second delete: expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_DistinctIDs(t *testing.T) {
	m := NewManager(newMockViews(), Config{}, nil)
	a, b := m.Create(), m.Create()
	if a.ID() == b.ID() {
		t.Error("ids must be unique")
	}
}

func TestManager_SweepReconcilesEachSession(t *testing.T) {
	m := NewManager(newMockViews(), Config{}, nil)
	drifted := m.Create()
	clean := m.Create()
	open := m.Create()

	drifted.Page().Show(dialog.RestaurantDetail)
	_ = open.OpenDialog(dialog.RestaurantChart, "")

	res := m.Sweep()
	if res.Reconciled != 1 || res.Evicted != 0 {
		t.Errorf("sweep result = %+v, want 1 reconciled", res)
	}
	if len(drifted.Page().Visible()) != 0 {
		t.Error("drifted session should be healed")
	}
	if !open.Dialogs().IsOpen(dialog.RestaurantChart) {
		t.Error("tracked dialogs must survive the sweep")
	}
	_ = clean
}

func TestManager_SweepEvictsIdle(t *testing.T) {
	now := time.Unix(1000, 0)
	m := NewManager(newMockViews(), Config{IdleTTL: time.Minute}, nil)
	m.now = func() time.Time { return now }

	stale := m.Create()
	now = now.Add(30 * time.Second)
	fresh := m.Create()
	now = now.Add(45 * time.Second)

	res := m.Sweep()
	if res.Evicted != 1 {
		t.Fatalf("evicted = %d, want 1", res.Evicted)
	}
	if _, err := m.Get(stale.ID()); err == nil {
		t.Error("stale session should be gone")
	}
	if _, err := m.Get(fresh.ID()); err != nil {
		t.Errorf("fresh session should survive: %v", err)
	}
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m := NewManager(newMockViews(), Config{SweepInterval: 5 * time.Millisecond}, nil)
	s := m.Create()
	s.Page().Show(dialog.RestaurantDetail)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for len(s.Page().Visible()) != 0 {
		select {
		case <-deadline:
			t.Fatal("sweep loop never reconciled")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestManager_CloseAll(t *testing.T) {
	m := NewManager(newMockViews(), Config{}, nil)
	s := m.Create()
	_ = s.OpenDialog(dialog.RestaurantDetail, "")
	m.CloseAll()
	if m.Len() != 0 {
		t.Error("registry should be empty")
	}
	if len(s.Dialogs().Stack()) != 0 {
		t.Error("sessions should be closed")
	}
}
