package notify

import (
	"testing"
	"time"
)

func TestCenterPostAndExpire(t *testing.T) {
	c := NewCenterWith(30 * time.Millisecond)
	defer c.Close()

	n := c.Errorf("recording failed")
	if n.ID == "" {
		t.Error("notification missing ID")
	}
	if n.Severity != Error {
		t.Errorf("severity = %q, want error", n.Severity)
	}

	if got := len(c.Active()); got != 1 {
		t.Fatalf("active = %d, want 1", got)
	}

	time.Sleep(90 * time.Millisecond)
	if got := len(c.Active()); got != 0 {
		t.Errorf("active after TTL = %d, want 0", got)
	}
}

func TestCenterSubscribe(t *testing.T) {
	c := NewCenterWith(20 * time.Millisecond)
	defer c.Close()

	ch, cancel := c.Subscribe()
	defer cancel()

	posted := c.Successf("snapshot saved")

	ev := <-ch
	if ev.Kind != Posted || ev.Notification.ID != posted.ID {
		t.Errorf("unexpected first event: %+v", ev)
	}

	select {
	case ev = <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for expiry event")
	}
	if ev.Kind != Expired || ev.Notification.ID != posted.ID {
		t.Errorf("unexpected second event: %+v", ev)
	}
}

func TestCenterSeverities(t *testing.T) {
	c := NewCenterWith(time.Minute)
	defer c.Close()

	c.Infof("a")
	c.Successf("b")
	c.Warningf("c")
	c.Errorf("d")

	active := c.Active()
	if len(active) != 4 {
		t.Fatalf("active = %d, want 4", len(active))
	}
	want := []Severity{Info, Success, Warning, Error}
	for i, n := range active {
		if n.Severity != want[i] {
			t.Errorf("severity[%d] = %q, want %q", i, n.Severity, want[i])
		}
	}
}

func TestCenterCancelledSubscriberStopsReceiving(t *testing.T) {
	c := NewCenterWith(time.Minute)
	defer c.Close()

	ch, cancel := c.Subscribe()
	cancel()

	c.Infof("after cancel")

	if _, ok := <-ch; ok {
		t.Error("cancelled subscriber received an event")
	}
}
