// Package stats polls the camera server's runtime statistics and derives
// an instantaneous fps figure from the frame-count delta between samples.
package stats

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/picamlabs/go-camdeck/internal/log"
	"github.com/picamlabs/go-camdeck/pkg/camera"
)

// DefaultInterval is how often the server is polled.
const DefaultInterval = 2 * time.Second

// Service is the slice of the camera API the poller needs.
type Service interface {
	Stats() (camera.Stats, error)
}

// Sample is one poll result with the derived fps.
type Sample struct {
	Stats camera.Stats

	// FPS is the frame rate derived from the previous sample. HasFPS is
	// false on the first sample (no previous exists) and after a
	// frame-count reset.
	FPS    int
	HasFPS bool
}

// Poller fetches stats on a fixed interval.
type Poller struct {
	svc      Service
	interval time.Duration

	mu         sync.Mutex
	prevFrames int
	hasPrev    bool
	last       Sample
	hasLast    bool

	// OnSample is called after every successful poll. Optional.
	OnSample func(Sample)

	// OnError is called when a poll fails; polling continues. Optional.
	OnError func(error)
}

// NewPoller creates a poller with the default interval.
func NewPoller(svc Service) *Poller {
	return NewPollerWith(svc, DefaultInterval)
}

// NewPollerWith creates a poller with an explicit interval.
func NewPollerWith(svc Service, interval time.Duration) *Poller {
	return &Poller{svc: svc, interval: interval}
}

// Run polls until the context is cancelled. The first poll happens
// immediately.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Poll()
		}
	}
}

// Poll fetches one sample and derives fps from the previous one.
func (p *Poller) Poll() {
	st, err := p.svc.Stats()
	if err != nil {
		log.Warn("stats poll failed", "error", err)
		if p.OnError != nil {
			p.OnError(err)
		}
		return
	}

	p.mu.Lock()
	sample := Sample{Stats: st}
	delta := st.FrameCount - p.prevFrames
	switch {
	case !p.hasPrev:
		// First sample: no previous frame count to derive from.
	case delta < 0:
		// Server restarted; reset the baseline without publishing fps.
	default:
		sample.FPS = int(math.Round(float64(delta) / p.interval.Seconds()))
		sample.HasFPS = true
	}
	p.prevFrames = st.FrameCount
	p.hasPrev = true
	p.last = sample
	p.hasLast = true
	p.mu.Unlock()

	if p.OnSample != nil {
		p.OnSample(sample)
	}
}

// Last returns the most recent sample.
func (p *Poller) Last() (Sample, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.hasLast
}

// Abbreviate renders large counters for display: 1500000 -> "1.5M",
// 2300 -> "2.3K", smaller values as plain digits.
func Abbreviate(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}
