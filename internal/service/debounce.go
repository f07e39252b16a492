package service

import (
	"sync"
	"time"
)

// Debouncer runs a function after a quiet period, canceling any pending
// run when a new trigger arrives. It models "apply the tag filter after N
// ms of input quiescence" without tying the engine to a UI event loop.
//
// A zero interval runs triggers synchronously, which keeps tests and
// non-interactive callers simple.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Immediate reports whether triggers run synchronously (zero interval).
// Callers whose callbacks take locks they already hold must check this
// before handing the callback to Trigger.
func (d *Debouncer) Immediate() bool {
	return d.interval <= 0
}

// Trigger schedules fn after the quiet period, replacing any pending run.
// With a zero interval fn runs synchronously on the calling goroutine.
func (d *Debouncer) Trigger(fn func()) {
	if d.interval <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		fn := d.pending
		d.pending = nil
		d.timer = nil
		d.mu.Unlock()

		if fn != nil {
			fn()
		}
	})
}

// Cancel drops any pending run.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Flush runs a pending trigger immediately instead of waiting out the
// quiet period.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
