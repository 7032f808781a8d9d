// Package tui is the terminal presentation of a dashboard session.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedash/internal/domain/query"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedash/internal/render"
	"github.com/kailas-cloud/dinedash/internal/usecase/dialog"
	"github.com/kailas-cloud/dinedash/internal/usecase/session"
	"github.com/kailas-cloud/dinedash/internal/usecase/view"
)

// Aggregator supplies the aggregate views.
type Aggregator interface {
	Aggregates() view.Aggregates
}

// Options tunes the terminal client.
type Options struct {
	SweepInterval time.Duration
	TopLimit      int
	Footer        string
	Logger        *zap.Logger
}

// ChangedMsg tells the model that the session changed outside Update,
// e.g. a debounced search landed.
type ChangedMsg struct{}

type sweepMsg struct{}

// Model is the bubbletea model of one session.
type Model struct {
	sess   *session.Session
	aggs   Aggregator
	opts   Options
	logger *zap.Logger

	width     int
	height    int
	cursor    int
	searching bool
	searchBuf string
	status    string
	statusErr bool
}

// New creates a model over sess.
func New(sess *session.Session, aggs Aggregator, opts Options) Model {
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = session.DefaultSweepInterval
	}
	if opts.TopLimit <= 0 {
		opts.TopLimit = render.TopLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{sess: sess, aggs: aggs, opts: opts, logger: logger}
}

// Run starts the terminal program and blocks until the user quits.
func Run(sess *session.Session, aggs Aggregator, opts Options) error {
	p := tea.NewProgram(New(sess, aggs, opts), tea.WithAltScreen())
	sess.OnChange(func() { p.Send(ChangedMsg{}) })
	defer sess.OnChange(nil)

	_, err := p.Run()
	return err
}

func sweepTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return sweepMsg{} })
}

// Init schedules the first reconciliation sweep.
func (m Model) Init() tea.Cmd {
	return sweepTick(m.opts.SweepInterval)
}

// Update handles one message. A panic while handling it force-closes
// every dialog and leaves the model running.
func (m Model) Update(msg tea.Msg) (next tea.Model, cmd tea.Cmd) {
	defer func() {
		if rvr := recover(); rvr != nil {
			m.logger.Error("panic recovered",
				zap.Any("panic", rvr),
				zap.Stack("stacktrace"),
			)
			m.sess.ForceCloseAll(dialog.TriggerPanic)
			m.setError("Something went wrong; dialogs were closed.")
			next, cmd = m, nil
		}
	}()
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case sweepMsg:
		if m.sess.Sweep() {
			m.status = "Stray dialogs cleaned up."
			m.statusErr = false
		}
		return m, sweepTick(m.opts.SweepInterval)
	case ChangedMsg:
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyInterrupt:
		return m, tea.Quit
	case keyForceClose:
		m.sess.ForceCloseAll(dialog.TriggerShortcut)
		m.status = "All dialogs closed. ctrl+r reloads them."
		m.statusErr = false
		return m, nil
	}

	if m.searching {
		return m.updateSearch(msg)
	}
	if top, ok := m.sess.Dialogs().Top(); ok {
		return m.updateDialog(msg, top)
	}
	return m.updateMain(msg)
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		return m, tea.Quit
	case keyUp, keyUpAlt:
		if m.cursor > 0 {
			m.cursor--
		}
	case keyDown, keyDownAlt:
		m.cursor++
		m.clampCursor()
	case keyOpen:
		if name, ok := m.current(); ok {
			if err := m.sess.OpenDialog(dialog.RestaurantDetail, name); err != nil {
				m.setError(err.Error())
			}
		}
	case keyChart:
		m.openChart()
	case keySearch:
		m.searching = true
		m.searchBuf = m.sess.View(context.Background()).PendingSearch
	case keyCategory:
		m.cycle(query.FieldCategory, m.aggs.Aggregates().Categories)
	case keyCity:
		m.cycle(query.FieldCity, m.aggs.Aggregates().Cities)
	case keyStatus:
		m.cycle(query.FieldStatus, []string{string(restaurant.Open), string(restaurant.Closed)})
	case keyAwards:
		m.cycle(query.FieldAwards, []string{string(query.AwardsMichelin), string(query.AwardsJamesBeard)})
	case keySort:
		m.cycleSort()
	case keyReset:
		m.sess.Reset()
		m.cursor = 0
		m.status = "Filters cleared."
		m.statusErr = false
	case keyReload:
		m.sess.Remount()
		m.status = "Dialogs reloaded."
		m.statusErr = false
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg, top string) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		return m, tea.Quit
	case keyDismiss:
		m.sess.Dismiss()
	case keyCloseBtn:
		m.sess.ClickClose(top)
	case keyBackdrop:
		m.sess.ActivateOutside(top)
	case keyChart:
		m.openChart()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.searchBuf); len(r) > 0 {
			m.searchBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.searchBuf += " "
	case tea.KeyRunes:
		m.searchBuf += string(msg.Runes)
	default:
		return m, nil
	}
	m.cursor = 0
	m.sess.TypeSearch(m.searchBuf)
	return m, nil
}

func (m *Model) openChart() {
	if err := m.sess.OpenDialog(dialog.RestaurantChart, ""); err != nil {
		m.setError(err.Error())
	}
}

// cycle moves field to the next of options, wrapping through "no filter".
func (m *Model) cycle(field query.Field, options []string) {
	cur := m.sess.Query().Get(field)
	next := ""
	for i, o := range options {
		if o == cur {
			if i+1 < len(options) {
				next = options[i+1]
			}
			break
		}
	}
	if cur == "" && len(options) > 0 {
		next = options[0]
	}
	m.setFilter(field, next)
}

func (m *Model) cycleSort() {
	keys := []query.SortKey{query.SortRank, query.SortRating, query.SortName, query.SortCity}
	cur := m.sess.Query().SortOrDefault()
	next := keys[0]
	for i, k := range keys {
		if k == cur {
			next = keys[(i+1)%len(keys)]
			break
		}
	}
	m.setFilter(query.FieldSort, string(next))
}

func (m *Model) setFilter(field query.Field, value string) {
	if err := m.sess.SetFilter(field, value); err != nil {
		m.setError(err.Error())
		return
	}
	m.cursor = 0
	m.status = ""
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

// current returns the name of the restaurant under the cursor.
func (m Model) current() (string, bool) {
	items := m.sess.View(context.Background()).Result.View.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return "", false
	}
	return items[m.cursor].Name(), true
}

func (m *Model) clampCursor() {
	n := m.sess.View(context.Background()).Result.View.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
