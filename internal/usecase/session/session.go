package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedash/internal/domain"
	"github.com/kailas-cloud/dinedash/internal/domain/query"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedash/internal/surface"
	"github.com/kailas-cloud/dinedash/internal/usecase/dialog"
	"github.com/kailas-cloud/dinedash/internal/usecase/view"
)

// DialogIDs are the dialogs mounted on every session page.
var DialogIDs = []string{dialog.RestaurantDetail, dialog.RestaurantChart}

// Snapshot is what a presentation surface renders for a session.
type Snapshot struct {
	ID            string
	Revision      uint64
	Query         query.Query
	PendingSearch string
	SearchPending bool
	Result        view.Result
	Dialogs       []string
	ScrollLocked  bool
	Selected      *restaurant.Record
}

// Session is one user's dashboard: query state, dialogs and a debounced
// search box. All mutation is serialized by the session lock.
type Session struct {
	id     string
	views  Views
	page   *surface.Page
	dlg    *dialog.Controller
	search *Debouncer
	logger *zap.Logger

	mu            sync.Mutex
	query         query.Query
	pendingSearch string
	selected      *restaurant.Record
	revision      uint64
	lastSeen      time.Time
	onChange      func()
}

func newSession(id string, views Views, debounce time.Duration, now time.Time, logger *zap.Logger) *Session {
	page := surface.NewPage(DialogIDs...)
	logger = logger.With(zap.String("session_id", id))
	return &Session{
		id:       id,
		views:    views,
		page:     page,
		dlg:      dialog.NewController(page, logger),
		search:   NewDebouncer(debounce),
		logger:   logger,
		query:    query.Default(),
		lastSeen: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Page exposes the session's presentation state.
func (s *Session) Page() *surface.Page { return s.page }

// Dialogs exposes the session's dialog controller.
func (s *Session) Dialogs() *dialog.Controller { return s.dlg }

// OnChange registers fn to run after a deferred mutation (a debounced
// search) lands. It runs without the session lock held.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Query returns the current query.
func (s *Session) Query() query.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetFilter applies a filter, sort or search value immediately.
func (s *Session) SetFilter(field query.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.query.With(field, value)
	if err != nil {
		return err
	}
	if field == query.FieldSearch {
		s.search.Cancel()
		s.pendingSearch = value
	}
	s.query = q
	s.revision++
	return nil
}

// TypeSearch records a keystroke in the search box. The query changes only
// once input has been quiet for the debounce window.
func (s *Session) TypeSearch(value string) {
	s.mu.Lock()
	s.pendingSearch = value
	s.mu.Unlock()

	s.search.Trigger(func() { s.applySearch(value) })
}

func (s *Session) applySearch(value string) {
	s.mu.Lock()
	q, err := s.query.With(query.FieldSearch, value)
	if err != nil {
		s.mu.Unlock()
		return
	}
	s.query = q
	s.revision++
	notify := s.onChange
	s.mu.Unlock()

	s.logger.Debug("search applied", zap.String("search", value))
	if notify != nil {
		notify()
	}
}

// Reset restores the default query and drops any pending search.
func (s *Session) Reset() {
	s.search.Cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query.Default()
	s.pendingSearch = ""
	s.revision++
}

// View computes the session's current snapshot.
func (s *Session) View(ctx context.Context) Snapshot {
	s.mu.Lock()
	q := s.query
	snap := Snapshot{
		ID:            s.id,
		Revision:      s.revision,
		Query:         q,
		PendingSearch: s.pendingSearch,
		Selected:      s.selected,
	}
	s.mu.Unlock()

	snap.SearchPending = s.search.Pending()
	snap.Result = s.views.Compute(ctx, q)
	snap.Dialogs = s.dlg.Stack()
	snap.ScrollLocked = s.dlg.ScrollLocked()
	return snap
}

// OpenDialog opens a dialog. For the restaurant detail dialog a non-empty
// name selects the restaurant shown in it.
func (s *Session) OpenDialog(id, restaurantName string) error {
	if restaurantName != "" {
		r, ok := s.views.Find(restaurantName)
		if !ok {
			return fmt.Errorf("restaurant %q: %w", restaurantName, domain.ErrNotFound)
		}
		s.mu.Lock()
		s.selected = &r
		s.mu.Unlock()
	}
	s.dlg.Open(id)
	return nil
}

// CloseDialog closes a dialog by id.
func (s *Session) CloseDialog(id string) {
	s.dlg.Close(id)
	s.clearSelectionIfClosed()
}

// ClickClose activates the close button inside dialog id.
func (s *Session) ClickClose(id string) {
	s.page.ClickClose(id)
	s.clearSelectionIfClosed()
}

// Dismiss handles the dismiss key: the most recent dialog closes.
func (s *Session) Dismiss() {
	s.dlg.HandleDismissKey()
	s.clearSelectionIfClosed()
}

// ActivateOutside handles a click that landed on target.
func (s *Session) ActivateOutside(target string) {
	s.dlg.HandleOutsideActivation(target)
	s.clearSelectionIfClosed()
}

// ForceCloseAll tears down every dialog surface on the session page.
func (s *Session) ForceCloseAll(trigger string) {
	s.dlg.ForceCloseAll(trigger)
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// Remount restores dialog surfaces removed by a force close or a sweep,
// as a page reload would.
func (s *Session) Remount() {
	s.page.Mount(DialogIDs...)
}

// Sweep runs one reconciliation pass over the session page.
func (s *Session) Sweep() bool {
	return s.dlg.Sweep()
}

// Close releases the session: pending search dropped, dialogs torn down.
func (s *Session) Close() {
	s.search.Cancel()
	s.dlg.ForceCloseAll(dialog.TriggerSessionEnd)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) clearSelectionIfClosed() {
	if s.dlg.IsOpen(dialog.RestaurantDetail) {
		return
	}
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}
