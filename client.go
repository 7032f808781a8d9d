package dinedash

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/dinedash/internal/app"
	"github.com/kailas-cloud/dinedash/internal/domain"
	"github.com/kailas-cloud/dinedash/internal/repository/source"
	"github.com/kailas-cloud/dinedash/internal/repository/store"
	"github.com/kailas-cloud/dinedash/internal/usecase/session"
	"github.com/kailas-cloud/dinedash/internal/usecase/view"
)

const (
	defaultSearchDebounce = 300 * time.Millisecond
	defaultLoadTimeout    = 10 * time.Second
)

// Client is the dinedash entry point.
type Client struct {
	store       *store.Store
	views       *view.Service
	sessions    *session.Manager
	obs         *observer
	closeSource func()
}

// New creates a Client and performs the one-time record load.
// A failed load does not fail New: the client serves empty views and
// LoadError reports the cause.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		lang:           language.English,
		searchDebounce: defaultSearchDebounce,
		loadTimeout:    defaultLoadTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	src, closeSource, err := createSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := wireClient(src, cfg, obs)
	c.closeSource = closeSource

	loadCtx, cancel := context.WithTimeout(ctx, cfg.loadTimeout)
	defer cancel()
	start := time.Now()
	err = c.store.Load(loadCtx)
	c.obs.observe("load", start, err)

	return c, nil
}

func createSource(ctx context.Context, cfg *clientConfig) (store.Source, func(), error) {
	if cfg.records != nil {
		return source.NewStatic(cfg.records), func() {}, nil
	}
	if cfg.source.Driver == "" {
		return nil, nil, errors.New(
			"dinedash: record source required (use WithFile, WithURL, WithRedis, WithPostgres or WithRecords)",
		)
	}

	sc := cfg.source
	timeoutSec := int(cfg.loadTimeout / time.Second)
	sc.LoadTimeoutSec = timeoutSec
	if sc.Redis.ReadinessTimeout == 0 {
		sc.Redis.ReadinessTimeout = timeoutSec
	}

	src, closeSource, err := app.BuildSource(ctx, sc, zap.NewNop())
	if err != nil {
		return nil, nil, fmt.Errorf("dinedash: %w", err)
	}
	return src, closeSource, nil
}

func wireClient(src store.Source, cfg *clientConfig, obs *observer) *Client {
	st := store.New(src, zap.NewNop())
	views := view.New(st, view.NewEngine(cfg.lang))
	sessions := session.NewManager(views, session.Config{
		SearchDebounce: cfg.searchDebounce,
	}, zap.NewNop())

	return &Client{
		store:       st,
		views:       views,
		sessions:    sessions,
		obs:         obs,
		closeSource: func() {},
	}
}

// Close ends every session and releases the record source.
func (c *Client) Close() {
	c.sessions.CloseAll()
	if c.closeSource != nil {
		c.closeSource()
	}
}

// Loaded reports whether the one-time load succeeded.
func (c *Client) Loaded() bool { return c.store.Loaded() }

// LoadError returns the cause of a failed load, or nil.
func (c *Client) LoadError() error { return c.store.LoadError() }

// Ping returns ErrStoreNotLoaded until records are available.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Restaurants filters and sorts the store for q.
func (c *Client) Restaurants(ctx context.Context, q Query) (res Result, err error) {
	defer func(start time.Time) { c.obs.observe("restaurants", start, err) }(time.Now())

	if err := q.Validate(); err != nil {
		return Result{}, fmt.Errorf("restaurants: %w", err)
	}
	return c.views.Compute(ctx, q), nil
}

// Aggregates returns top-by-category, award winners, the closed list and
// the distinct categories and cities.
func (c *Client) Aggregates() Aggregates {
	start := time.Now()
	agg := c.views.Aggregates()
	c.obs.observe("aggregates", start, nil)
	return agg
}

// Find returns the first record with the given name.
func (c *Client) Find(name string) (Record, error) {
	start := time.Now()
	r, ok := c.views.Find(name)
	var err error
	if !ok {
		err = fmt.Errorf("restaurant %q: %w", name, domain.ErrNotFound)
	}
	c.obs.observe("find", start, err)
	return r, err
}

// NewSession starts a dashboard session with a default query and no open dialogs.
func (c *Client) NewSession() *Session {
	return c.sessions.Create()
}

// Session returns a live session by id.
func (c *Client) Session(id string) (*Session, error) {
	s, err := c.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("dinedash: %w", err)
	}
	return s, nil
}

// EndSession force-closes a session's dialogs and forgets it.
func (c *Client) EndSession(id string) error {
	if err := c.sessions.Delete(id); err != nil {
		return fmt.Errorf("dinedash: %w", err)
	}
	return nil
}

// Sweep runs one reconciliation pass over every session and returns how
// many sessions had stray dialog surfaces removed.
func (c *Client) Sweep() int {
	return c.sessions.Sweep().Reconciled
}
