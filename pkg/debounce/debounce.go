package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDelay is the quiet period used when New receives a non-positive delay.
const DefaultDelay = 500 * time.Millisecond

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(d *Debouncer) {
		if c != nil {
			d.clock = c
		}
	}
}

type pending struct {
	fn    func()
	timer clockwork.Timer
}

// Debouncer schedules keyed functions after a quiet period.
type Debouncer struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	delay   time.Duration
	pending map[string]*pending
	stopped bool
}

func New(delay time.Duration, opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{
		clock:   clockwork.NewRealClock(),
		delay:   delay,
		pending: make(map[string]*pending),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trigger schedules fn for key, replacing any pending run for the same key.
func (d *Debouncer) Trigger(key string, fn func()) error {
	if fn == nil {
		return ErrNilFunc
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return ErrStopped
	}

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}

	p := &pending{fn: fn}
	// The callback takes d.mu, so it cannot observe p before timer is set.
	p.timer = d.clock.AfterFunc(d.delay, func() { d.fire(key, p) })
	d.pending[key] = p
	return nil
}

// fire runs p unless p was replaced or dropped while its timer was firing.
func (d *Debouncer) fire(key string, p *pending) {
	d.mu.Lock()
	if d.pending[key] != p || d.stopped {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	p.fn()
}

// Flush runs the pending function for key immediately, on the caller's
// goroutine. It reports whether anything was pending.
func (d *Debouncer) Flush(key string) bool {
	d.mu.Lock()
	p, ok := d.pending[key]
	if !ok || d.stopped {
		d.mu.Unlock()
		return false
	}
	p.timer.Stop()
	delete(d.pending, key)
	d.mu.Unlock()

	p.fn()
	return true
}

// Cancel drops the pending run for key without executing it.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[key]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(d.pending, key)
	return true
}

// Stop cancels every pending run. Later triggers return ErrStopped.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}
