package dialog

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedash/internal/metrics"
)

// Known dialog identifiers.
const (
	RestaurantDetail = "restaurant-detail"
	RestaurantChart  = "restaurant-chart"
)

// Force-close triggers, used as the metric label.
const (
	TriggerShortcut   = "shortcut"
	TriggerPanic      = "panic"
	TriggerAPI        = "api"
	TriggerSessionEnd = "session_end"
)

// Controller owns the dialog stack and the scroll lock.
// Scroll lock is active if and only if the stack is non-empty.
type Controller struct {
	surface Surface
	logger  *zap.Logger

	mu       sync.Mutex
	stack    []string
	bindings map[string]func()
	locked   bool
}

// NewController creates a controller with an empty stack.
func NewController(s Surface, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		surface:  s,
		logger:   logger,
		bindings: make(map[string]func()),
	}
}

// Open pushes id and shows its surface. No-op when id is already open or
// its surface is not mounted.
func (c *Controller) Open(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.Contains(c.stack, id) || !c.surface.Exists(id) {
		return
	}

	c.unbindLocked(id)
	c.stack = append(c.stack, id)
	metrics.DialogsOpen.Inc()
	c.surface.Show(id)
	c.setLockLocked(true)
	c.bindings[id] = c.surface.BindClose(id, func() { c.Close(id) })
}

// Close removes id from the stack and hides its surface. No-op when the
// surface is not mounted; idempotent when id is not open.
func (c *Controller) Close(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked(id)
}

func (c *Controller) closeLocked(id string) {
	if !c.surface.Exists(id) {
		return
	}

	if i := slices.Index(c.stack, id); i >= 0 {
		c.stack = slices.Delete(c.stack, i, i+1)
		metrics.DialogsOpen.Dec()
	}
	c.surface.Hide(id)
	c.unbindLocked(id)
	c.surface.RemoveBackdrops()
	if len(c.stack) == 0 {
		c.setLockLocked(false)
	}
}

// HandleDismissKey closes the most recently opened dialog only.
func (c *Controller) HandleDismissKey() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.stack) == 0 {
		return
	}
	c.closeLocked(c.stack[len(c.stack)-1])
}

// HandleOutsideActivation closes target when the activation landed on an
// open dialog's root surface rather than on content inside it.
func (c *Controller) HandleOutsideActivation(target string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !slices.Contains(c.stack, target) {
		return
	}
	c.closeLocked(target)
}

// ForceCloseAll removes every dialog-related surface regardless of what the
// stack says, then clears the stack and the scroll lock.
func (c *Controller) ForceCloseAll(trigger string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	drifted := c.surface.Visible()
	c.surface.RemoveAll()
	for id := range c.bindings {
		c.unbindLocked(id)
	}
	metrics.DialogsOpen.Sub(float64(len(c.stack)))
	metrics.DialogForceClosesTotal.WithLabelValues(trigger).Inc()

	level := zap.WarnLevel
	if trigger == TriggerSessionEnd {
		level = zap.DebugLevel
	}
	c.logger.Log(level, "dialogs force-closed",
		zap.String("trigger", trigger),
		zap.Strings("stack", c.stack),
		zap.Strings("visible", drifted),
	)
	c.stack = nil
	c.forceUnlockLocked()
}

// Sweep reconciles presentation state with an empty stack: any dialog
// surface still visible is removed and scroll lock is released.
// Reports whether anything had drifted.
func (c *Controller) Sweep() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.stack) > 0 {
		return false
	}

	stray := c.surface.Visible()
	for _, id := range stray {
		c.surface.Remove(id)
	}
	drifted := len(stray) > 0 || c.locked
	c.forceUnlockLocked()

	if drifted {
		metrics.DialogSweepsReconciledTotal.Inc()
		c.logger.Warn("dialog sweep removed stray surfaces", zap.Strings("removed", stray))
	}
	return drifted
}

// Stack returns the open dialog ids, most recent last.
func (c *Controller) Stack() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.stack)
}

// Top returns the most recently opened dialog id.
func (c *Controller) Top() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) == 0 {
		return "", false
	}
	return c.stack[len(c.stack)-1], true
}

// IsOpen reports whether id is on the stack.
func (c *Controller) IsOpen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.stack, id)
}

// ScrollLocked reports the scroll lock state.
func (c *Controller) ScrollLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

func (c *Controller) unbindLocked(id string) {
	if unbind, ok := c.bindings[id]; ok {
		unbind()
		delete(c.bindings, id)
	}
}

func (c *Controller) setLockLocked(locked bool) {
	if c.locked == locked {
		return
	}
	c.locked = locked
	c.surface.SetScrollLock(locked)
}

// forceUnlockLocked re-asserts the unlocked state on the surface even when
// the controller already believes it is unlocked.
func (c *Controller) forceUnlockLocked() {
	c.locked = false
	c.surface.SetScrollLock(false)
}
