package recording

import (
	"testing"
	"time"

	"github.com/picamlabs/go-camdeck/pkg/camera"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{5 * time.Second, "00:05"},
		{65 * time.Second, "01:05"},
		{10 * time.Minute, "10:00"},
		{61 * time.Minute, "61:00"},
		{-3 * time.Second, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRecorderStartStop(t *testing.T) {
	mock := camera.NewMock()
	r := NewRecorder(mock)
	defer r.Close()

	var states []State
	r.OnState = func(s State) { states = append(states, s) }

	if r.State() != Idle {
		t.Fatalf("initial state = %v, want idle", r.State())
	}

	res, err := r.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !res.Success {
		t.Fatal("expected success result")
	}
	if r.State() != Recording {
		t.Errorf("state after start = %v, want recording", r.State())
	}
	if r.Filename() == "" {
		t.Error("expected server-assigned filename")
	}

	if _, err := r.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if r.State() != Idle {
		t.Errorf("state after stop = %v, want idle", r.State())
	}
	if r.Elapsed() != "00:00" {
		t.Errorf("elapsed after stop = %q, want 00:00", r.Elapsed())
	}

	want := []State{Pending, Recording, Pending, Idle}
	if len(states) != len(want) {
		t.Fatalf("state transitions = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, states[i], want[i])
		}
	}
}

func TestRecorderFailedStartStaysIdle(t *testing.T) {
	mock := camera.NewMock()
	mock.FailResult = &camera.CaptureResult{Success: false, Error: "Camera not available"}
	r := NewRecorder(mock)
	defer r.Close()

	_, err := r.Start()
	if err == nil {
		t.Fatal("expected start to fail")
	}
	if r.State() != Idle {
		t.Errorf("state after failed start = %v, want idle", r.State())
	}
}

func TestRecorderFailedStopStaysRecording(t *testing.T) {
	mock := camera.NewMock()
	r := NewRecorder(mock)
	defer r.Close()

	if _, err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	mock.FailResult = &camera.CaptureResult{Success: false, Error: "disk full"}
	if _, err := r.Stop(); err == nil {
		t.Fatal("expected stop to fail")
	}
	if r.State() != Recording {
		t.Errorf("state after failed stop = %v, want recording", r.State())
	}
}

func TestRecorderToggle(t *testing.T) {
	mock := camera.NewMock()
	r := NewRecorder(mock)
	defer r.Close()

	if _, err := r.Toggle(); err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if r.State() != Recording {
		t.Fatalf("state after first toggle = %v, want recording", r.State())
	}

	if _, err := r.Toggle(); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if r.State() != Idle {
		t.Fatalf("state after second toggle = %v, want idle", r.State())
	}
}

func TestRecorderElapsed(t *testing.T) {
	mock := camera.NewMock()
	r := NewRecorder(mock)
	defer r.Close()

	if _, err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Pin the clock 65 seconds past the recorded start.
	started := time.Now()
	r.mu.Lock()
	r.startedAt = started
	r.now = func() time.Time { return started.Add(65 * time.Second) }
	r.mu.Unlock()

	if got := r.Elapsed(); got != "01:05" {
		t.Errorf("Elapsed = %q, want 01:05", got)
	}
}

func TestRecorderStartWhileRecordingFails(t *testing.T) {
	mock := camera.NewMock()
	r := NewRecorder(mock)
	defer r.Close()

	if _, err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := r.Start(); err == nil {
		t.Error("expected second start to be rejected locally")
	}
	// The guard is local: the server never saw a second start.
	if mock.Recording != true {
		t.Error("mock recording flag lost")
	}
}
