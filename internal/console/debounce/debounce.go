package debounce

import (
	"sync"
	"time"
)

// Debouncer delays invoking a callback until its input has been stable
// for the configured delay. Each Trigger cancels any pending invocation,
// so only the last value in a burst is ever propagated.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// New creates a debouncer with the given settle delay
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the settle delay, cancelling any pending fn
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops any pending invocation without firing it
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Value debounces a single string value. SetNow bypasses the delay.
type Value struct {
	mu        sync.Mutex
	debouncer *Debouncer
	pending   string
	settled   string
	onSettle  func(string)
}

// NewValue creates a debounced value that calls onSettle once the input
// has been stable for the delay
func NewValue(delay time.Duration, onSettle func(string)) *Value {
	return &Value{
		debouncer: New(delay),
		onSettle:  onSettle,
	}
}

// Set updates the input; onSettle fires with the latest value after the
// delay elapses without further Sets
func (v *Value) Set(value string) {
	v.mu.Lock()
	v.pending = value
	v.mu.Unlock()

	v.debouncer.Trigger(func() {
		v.mu.Lock()
		settled := v.pending
		v.settled = settled
		v.mu.Unlock()
		v.onSettle(settled)
	})
}

// SetNow updates the value immediately, cancelling any pending settle
func (v *Value) SetNow(value string) {
	v.debouncer.Cancel()
	v.mu.Lock()
	v.pending = value
	v.settled = value
	v.mu.Unlock()
	v.onSettle(value)
}

// Reset cancels any pending settle and records value without invoking
// onSettle. Used when the caller updates its own state directly and a
// callback would re-enter it.
func (v *Value) Reset(value string) {
	v.debouncer.Cancel()
	v.mu.Lock()
	v.pending = value
	v.settled = value
	v.mu.Unlock()
}

// Settled returns the last settled value
func (v *Value) Settled() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settled
}
