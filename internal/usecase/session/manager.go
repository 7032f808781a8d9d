package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedash/internal/domain"
	"github.com/kailas-cloud/dinedash/internal/metrics"
)

// DefaultSweepInterval is the period of the dialog reconciliation sweep.
const DefaultSweepInterval = 5 * time.Second

// Config tunes session timing.
type Config struct {
	SearchDebounce time.Duration
	SweepInterval  time.Duration
	// IdleTTL evicts sessions untouched for this long; 0 keeps them forever.
	IdleTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = DefaultSearchDebounce
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = DefaultSweepInterval
	}
	return c
}

// Manager is the registry of live sessions and owns the sweep loop.
type Manager struct {
	views  Views
	cfg    Config
	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty registry.
func NewManager(views Views, cfg Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		views:    views,
		cfg:      cfg.withDefaults(),
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with a fresh page and default query.
func (m *Manager) Create() *Session {
	s := newSession(uuid.NewString(), m.views, m.cfg.SearchDebounce, m.now(), m.logger)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	m.logger.Debug("session created", zap.String("session_id", s.ID()))
	return s
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	s.touch(m.now())
	return s, nil
}

// Delete closes and forgets a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	s.Close()
	metrics.SessionsActive.Set(float64(n))
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SweepResult summarizes one sweep tick.
type SweepResult struct {
	Reconciled int
	Evicted    int
}

// Sweep reconciles every session's dialogs and evicts idle sessions.
func (m *Manager) Sweep() SweepResult {
	m.mu.RLock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.RUnlock()

	var res SweepResult
	now := m.now()
	for _, s := range live {
		if m.cfg.IdleTTL > 0 && now.Sub(s.idleSince()) > m.cfg.IdleTTL {
			if err := m.Delete(s.ID()); err == nil {
				res.Evicted++
			}
			continue
		}
		if s.Sweep() {
			res.Reconciled++
		}
	}
	if res.Evicted > 0 {
		m.logger.Info("idle sessions evicted", zap.Int("count", res.Evicted))
	}
	return res
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// CloseAll closes every session. Used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	live := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range live {
		s.Close()
	}
	metrics.SessionsActive.Set(0)
}
