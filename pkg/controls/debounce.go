package controls

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is how long a control must be quiet before its
// pending value is pushed to the server. One push per control per window
// while a slider is being dragged; the last value always wins.
const DefaultDebounceWindow = 100 * time.Millisecond

// Debouncer coalesces rapid triggers per key into one deferred call.
// Triggering a key with a pending call cancels and replaces it.
type Debouncer struct {
	window time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// Trigger schedules fn to run after the quiet window, replacing any
// pending call for the same key.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending call for key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
}

// Close cancels all pending calls. Further triggers are ignored.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
