package session

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet window before typed search text is applied.
const DefaultSearchDebounce = 300 * time.Millisecond

type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper { return time.AfterFunc(d, f) }

// Debouncer runs only the last function triggered within a quiet window.
// At most one timer is pending at a time.
type Debouncer struct {
	delay     time.Duration
	afterFunc afterFunc

	mu      sync.Mutex
	pending stopper
	seq     uint64
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay, afterFunc: realAfterFunc}
}

// Trigger cancels any pending call and schedules fn after the quiet window.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.seq++
	mine := d.seq
	d.pending = d.afterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that already fired cannot be stopped; the sequence check
		// drops it if a newer trigger replaced it meanwhile.
		if mine != d.seq {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()
		fn()
	})
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.seq++
}
