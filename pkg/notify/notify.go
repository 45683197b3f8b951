// Package notify carries transient user-visible notifications.
//
// Every backend failure or confirmation surfaces here: entries carry a
// severity, auto-expire after a short TTL, and fan out to subscribers
// without ever blocking the poster.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// DefaultTTL is how long a notification stays active before auto-dismiss.
const DefaultTTL = 3 * time.Second

// Notification is one transient message.
type Notification struct {
	ID       string    `json:"id"`
	Severity Severity  `json:"severity"`
	Text     string    `json:"text"`
	At       time.Time `json:"at"`
}

// EventKind distinguishes subscriber events.
type EventKind int

const (
	// Posted means a notification became active.
	Posted EventKind = iota
	// Expired means a notification was auto-dismissed.
	Expired
)

// Event is delivered to subscribers on post and expiry.
type Event struct {
	Kind         EventKind
	Notification Notification
}

// Center posts and expires notifications.
type Center struct {
	ttl time.Duration

	mu     sync.Mutex
	active []Notification
	timers map[string]*time.Timer
	subs   map[chan Event]struct{}
	closed bool
}

// NewCenter creates a center with the default TTL.
func NewCenter() *Center {
	return NewCenterWith(DefaultTTL)
}

// NewCenterWith creates a center with an explicit TTL (tests shrink it).
func NewCenterWith(ttl time.Duration) *Center {
	return &Center{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
		subs:   make(map[chan Event]struct{}),
	}
}

// Infof-style helpers. Each returns the posted notification.

func (c *Center) Infof(text string) Notification    { return c.Post(Info, text) }
func (c *Center) Successf(text string) Notification { return c.Post(Success, text) }
func (c *Center) Warningf(text string) Notification { return c.Post(Warning, text) }
func (c *Center) Errorf(text string) Notification   { return c.Post(Error, text) }

// Post makes a notification active and schedules its expiry.
func (c *Center) Post(severity Severity, text string) Notification {
	n := Notification{
		ID:       uuid.NewString(),
		Severity: severity,
		Text:     text,
		At:       time.Now(),
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return n
	}
	c.active = append(c.active, n)
	c.timers[n.ID] = time.AfterFunc(c.ttl, func() {
		c.expire(n.ID)
	})
	c.broadcastLocked(Event{Kind: Posted, Notification: n})
	c.mu.Unlock()

	return n
}

// Active returns the notifications that have not yet expired.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Subscribe returns a channel of post/expire events and a cancel func.
// Slow subscribers drop events rather than blocking the poster.
func (c *Center) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)

	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Close expires nothing further and drops all subscribers.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
}

// expire removes a notification and notifies subscribers.
func (c *Center) expire(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	delete(c.timers, id)
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			c.broadcastLocked(Event{Kind: Expired, Notification: n})
			return
		}
	}
}

// broadcastLocked fans an event out to all subscribers; callers hold mu.
func (c *Center) broadcastLocked(ev Event) {
	for ch := range c.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber is too slow; drop rather than block.
		}
	}
}
