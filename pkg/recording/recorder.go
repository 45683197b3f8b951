// Package recording drives the camera server's video recording and the
// elapsed-time readout.
//
// State only advances on a confirmed server response: Idle -> Pending ->
// Recording on a successful start, and back through Pending to Idle on a
// successful stop. A failed request returns to the prior stable state, so
// the controller is never left ambiguous about whether the server is
// recording.
package recording

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/picamlabs/go-camdeck/internal/log"
	"github.com/picamlabs/go-camdeck/pkg/camera"
)

// State is the recorder's lifecycle state.
type State int

const (
	// Idle means no recording is active.
	Idle State = iota
	// Pending means a start or stop request is in flight.
	Pending
	// Recording means the server confirmed an active recording.
	Recording
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Recording:
		return "recording"
	default:
		return "unknown"
	}
}

// ErrBusy is returned when a start or stop is requested while another
// request is still in flight. The server's concurrency semantics are
// unknown, so requests are never stacked.
var ErrBusy = errors.New("recording: request already in flight")

// Service is the slice of the camera API the recorder needs.
type Service interface {
	StartRecording() (camera.CaptureResult, error)
	StopRecording() (camera.CaptureResult, error)
}

// Recorder tracks recording state and publishes the elapsed readout.
type Recorder struct {
	svc Service

	mu        sync.Mutex
	state     State
	startedAt time.Time
	filename  string
	stopTick  chan struct{}

	now func() time.Time

	// OnState is called after every state transition. Optional.
	OnState func(State)

	// OnElapsed is called with the MM:SS readout once per second while
	// recording, and with "00:00" on stop. Optional.
	OnElapsed func(string)
}

// NewRecorder creates a recorder over the given service.
func NewRecorder(svc Service) *Recorder {
	return &Recorder{
		svc: svc,
		now: time.Now,
	}
}

// State returns the current lifecycle state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Filename returns the server-assigned recording filename, if recording.
func (r *Recorder) Filename() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filename
}

// Elapsed returns the current MM:SS readout, "00:00" when not recording.
func (r *Recorder) Elapsed() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Recording {
		return FormatElapsed(0)
	}
	return FormatElapsed(r.now().Sub(r.startedAt))
}

// Toggle starts recording when idle and stops it when recording. While a
// request is in flight it is a no-op returning ErrBusy.
func (r *Recorder) Toggle() (camera.CaptureResult, error) {
	switch r.State() {
	case Recording:
		return r.Stop()
	case Idle:
		return r.Start()
	default:
		return camera.CaptureResult{}, ErrBusy
	}
}

// Start asks the server to begin recording. On success the state becomes
// Recording and the elapsed ticker starts; on failure the state returns
// to Idle and the error describes the single failure.
func (r *Recorder) Start() (camera.CaptureResult, error) {
	r.mu.Lock()
	if r.state != Idle {
		state := r.state
		r.mu.Unlock()
		if state == Recording {
			return camera.CaptureResult{}, errors.New("recording: already recording")
		}
		return camera.CaptureResult{}, ErrBusy
	}
	r.state = Pending
	r.mu.Unlock()
	r.emitState(Pending)

	res, err := r.svc.StartRecording()
	if err != nil || !res.Success {
		r.mu.Lock()
		r.state = Idle
		r.mu.Unlock()
		r.emitState(Idle)
		return res, startFailure(res, err)
	}

	r.mu.Lock()
	r.state = Recording
	r.startedAt = r.now()
	r.filename = res.Filename
	r.stopTick = make(chan struct{})
	stop := r.stopTick
	r.mu.Unlock()

	r.emitState(Recording)
	r.emitElapsed(FormatElapsed(0))
	go r.tick(stop)

	log.Info("recording started", "filename", res.Filename)
	return res, nil
}

// Stop asks the server to end recording. On success the state becomes
// Idle and the readout resets to 00:00; on failure the state returns to
// Recording.
func (r *Recorder) Stop() (camera.CaptureResult, error) {
	r.mu.Lock()
	if r.state != Recording {
		state := r.state
		r.mu.Unlock()
		if state == Idle {
			return camera.CaptureResult{}, errors.New("recording: not recording")
		}
		return camera.CaptureResult{}, ErrBusy
	}
	r.state = Pending
	r.mu.Unlock()
	r.emitState(Pending)

	res, err := r.svc.StopRecording()
	if err != nil || !res.Success {
		r.mu.Lock()
		r.state = Recording
		r.mu.Unlock()
		r.emitState(Recording)
		return res, stopFailure(res, err)
	}

	r.mu.Lock()
	r.state = Idle
	r.filename = ""
	if r.stopTick != nil {
		close(r.stopTick)
		r.stopTick = nil
	}
	r.mu.Unlock()

	r.emitState(Idle)
	r.emitElapsed(FormatElapsed(0))

	log.Info("recording stopped", "filename", res.Filename)
	return res, nil
}

// Close stops the elapsed ticker without touching the server.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopTick != nil {
		close(r.stopTick)
		r.stopTick = nil
	}
}

// tick publishes the elapsed readout once per second until stopped.
func (r *Recorder) tick(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.emitElapsed(r.Elapsed())
		}
	}
}

func (r *Recorder) emitState(s State) {
	if r.OnState != nil {
		r.OnState(s)
	}
}

func (r *Recorder) emitElapsed(text string) {
	if r.OnElapsed != nil {
		r.OnElapsed(text)
	}
}

// FormatElapsed renders a duration as MM:SS. Durations of an hour or more
// keep accumulating minutes.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func startFailure(res camera.CaptureResult, err error) error {
	if err != nil {
		return fmt.Errorf("recording: start failed: %w", err)
	}
	if res.Error != "" {
		return fmt.Errorf("recording: start failed: %s", res.Error)
	}
	return errors.New("recording: start failed")
}

func stopFailure(res camera.CaptureResult, err error) error {
	if err != nil {
		return fmt.Errorf("recording: stop failed: %w", err)
	}
	if res.Error != "" {
		return fmt.Errorf("recording: stop failed: %s", res.Error)
	}
	return errors.New("recording: stop failed")
}
