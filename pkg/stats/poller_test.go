package stats

import (
	"testing"
	"time"

	"github.com/picamlabs/go-camdeck/pkg/camera"
)

func TestPollerFPS(t *testing.T) {
	mock := camera.NewMock()
	p := NewPollerWith(mock, 2*time.Second)

	var samples []Sample
	p.OnSample = func(s Sample) { samples = append(samples, s) }

	// First poll: no previous frame count, fps unset.
	mock.StatsValue = camera.Stats{FrameCount: 1000, Uptime: "00:00:10"}
	p.Poll()

	// Second poll two (virtual) seconds later: 100 frames / 2s = 50 fps.
	mock.StatsValue = camera.Stats{FrameCount: 1100, Uptime: "00:00:12"}
	p.Poll()

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].HasFPS {
		t.Error("first sample should have no fps")
	}
	if !samples[1].HasFPS || samples[1].FPS != 50 {
		t.Errorf("second sample fps = %d (has=%v), want 50", samples[1].FPS, samples[1].HasFPS)
	}
}

func TestPollerFPSRounds(t *testing.T) {
	mock := camera.NewMock()
	p := NewPollerWith(mock, 2*time.Second)

	mock.StatsValue = camera.Stats{FrameCount: 0}
	p.Poll()
	mock.StatsValue = camera.Stats{FrameCount: 59}
	p.Poll()

	last, ok := p.Last()
	if !ok || !last.HasFPS {
		t.Fatal("expected fps on second sample")
	}
	// 59/2 = 29.5 rounds to 30.
	if last.FPS != 30 {
		t.Errorf("fps = %d, want 30", last.FPS)
	}
}

func TestPollerFrameCountResetSkipsFPS(t *testing.T) {
	mock := camera.NewMock()
	p := NewPollerWith(mock, 2*time.Second)

	mock.StatsValue = camera.Stats{FrameCount: 5000}
	p.Poll()
	// Server restarted: counter went backwards.
	mock.StatsValue = camera.Stats{FrameCount: 40}
	p.Poll()

	last, _ := p.Last()
	if last.HasFPS {
		t.Error("fps should be unset after a counter reset")
	}

	// The baseline recovers on the next poll.
	mock.StatsValue = camera.Stats{FrameCount: 100}
	p.Poll()
	last, _ = p.Last()
	if !last.HasFPS || last.FPS != 30 {
		t.Errorf("fps after recovery = %d (has=%v), want 30", last.FPS, last.HasFPS)
	}
}

func TestPollerErrorKeepsPolling(t *testing.T) {
	mock := camera.NewMock()
	p := NewPollerWith(mock, 2*time.Second)

	var errs int
	p.OnError = func(error) { errs++ }

	mock.Fail = camera.ErrUnreachable
	p.Poll()
	if errs != 1 {
		t.Fatalf("expected 1 error callback, got %d", errs)
	}
	if _, ok := p.Last(); ok {
		t.Error("failed poll should not produce a sample")
	}

	mock.Fail = nil
	mock.StatsValue = camera.Stats{FrameCount: 100}
	p.Poll()
	if _, ok := p.Last(); !ok {
		t.Error("poller did not recover after an error")
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{2345, "2.3K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.0M"},
		{1_500_000, "1.5M"},
	}

	for _, tt := range tests {
		if got := Abbreviate(tt.n); got != tt.want {
			t.Errorf("Abbreviate(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
