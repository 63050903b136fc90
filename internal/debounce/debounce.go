// Package debounce delays propagation of a rapidly changing value until it
// has settled.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is used when a non-positive delay is given
const DefaultDelay = 500 * time.Millisecond

// Debouncer forwards the most recent value passed to Set once no new value
// has arrived for the configured delay. Superseded values are dropped.
//
// emit runs on a timer goroutine. It must not call Stop or Flush on the same
// Debouncer.
type Debouncer[T comparable] struct {
	delay time.Duration
	emit  func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64 // bumped on every re-arm; a timer only fires for its own generation
	value   T
	pending bool
	stopped bool

	emitMu sync.Mutex // serializes emissions and lets Stop wait for one in flight
}

// New creates a debouncer that calls emit with settled values
func New[T comparable](delay time.Duration, emit func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{delay: delay, emit: emit}
}

// Delay returns the settle delay
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Set records v as the latest value and restarts the settle timer.
// Setting the value that is already pending does not restart the timer.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.pending && d.value == v {
		return
	}

	d.value = v
	d.pending = true
	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Pending reports whether a value is waiting to be emitted
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush emits the pending value immediately, if there is one
func (d *Debouncer[T]) Flush() {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	v := d.value
	d.pending = false
	d.mu.Unlock()

	d.emit(v)
}

// Cancel drops the pending value without emitting it. Unlike Stop, later
// calls to Set work as usual.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.emitMu.Lock()
	d.emitMu.Unlock()
}

// Stop cancels any pending emission. Once Stop returns no further value is
// emitted and later calls to Set are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	// Wait out an emission that already passed its checks
	d.emitMu.Lock()
	d.emitMu.Unlock()
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	if d.stopped || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	d.mu.Unlock()

	d.emit(v)
}
