package controls

import (
	"sync"
	"time"

	"github.com/picamlabs/go-camdeck/internal/log"
	"github.com/picamlabs/go-camdeck/pkg/camera"
)

// Service is the slice of the camera API the synchronizer needs.
type Service interface {
	Controls() (camera.Controls, error)
	ApplyControls(values map[string]any) error
}

// Synchronizer keeps slider display values, their domain equivalents, and
// the server's stored settings consistent.
//
// Readout callbacks fire synchronously on input so the UI never waits on
// the network; server pushes are debounced per control. Selection controls
// push immediately since discrete events are already rate-limited by the
// user.
type Synchronizer struct {
	svc      Service
	registry *Registry
	debounce *Debouncer

	mu      sync.Mutex
	display map[string]float64
	chosen  map[string]string

	// OnReadout is called synchronously whenever a slider's display value
	// or readout text changes. Optional.
	OnReadout func(name string, display float64, readout string)

	// OnSelect is called when a selection control changes. Optional.
	OnSelect func(name, option string)

	// OnError is called when a server push fails. Each push reports its
	// own error; nothing is rolled back. Optional.
	OnError func(name string, err error)
}

// NewSynchronizer creates a synchronizer over the given service using the
// default control registry and debounce window.
func NewSynchronizer(svc Service) *Synchronizer {
	return NewSynchronizerWith(svc, DefaultRegistry(), DefaultDebounceWindow)
}

// NewSynchronizerWith creates a synchronizer with an explicit registry and
// debounce window (tests shrink the window).
func NewSynchronizerWith(svc Service, registry *Registry, window time.Duration) *Synchronizer {
	return &Synchronizer{
		svc:      svc,
		registry: registry,
		debounce: NewDebouncer(window),
		display:  make(map[string]float64),
		chosen:   make(map[string]string),
	}
}

// Registry returns the control registry in use.
func (s *Synchronizer) Registry() *Registry {
	return s.registry
}

// Load fetches the server's current settings and converts each to its
// display value, emitting readouts for every known control.
func (s *Synchronizer) Load() error {
	c, err := s.svc.Controls()
	if err != nil {
		return err
	}

	for name, domain := range sliderValues(c) {
		spec, ok := s.registry.Slider(name)
		if !ok {
			continue
		}
		display := spec.Display.Clamp(ToDisplay(domain, spec.Display, spec.Domain))
		s.mu.Lock()
		s.display[name] = display
		s.mu.Unlock()
		s.emitReadout(spec, display)
	}

	for name, option := range selectValues(c) {
		_, ok := s.registry.Select(name)
		if !ok || option == "" {
			continue
		}
		s.mu.Lock()
		s.chosen[name] = option
		s.mu.Unlock()
		if s.OnSelect != nil {
			s.OnSelect(name, option)
		}
	}
	return nil
}

// SetSlider handles user input on a slider: the readout updates
// synchronously and the domain value is scheduled for a debounced push.
// Unknown controls are ignored.
func (s *Synchronizer) SetSlider(name string, display float64) {
	spec, ok := s.registry.Slider(name)
	if !ok {
		return
	}
	display = spec.Display.Clamp(display)

	s.mu.Lock()
	s.display[name] = display
	s.mu.Unlock()

	s.emitReadout(spec, display)

	domain := ToDomain(display, spec.Display, spec.Domain)
	s.debounce.Trigger(name, func() {
		s.push(name, domain)
	})
}

// SetSelect handles a selection control change: invalid options are
// dropped, valid ones push immediately.
func (s *Synchronizer) SetSelect(name, option string) {
	spec, ok := s.registry.Select(name)
	if !ok || !spec.Valid(option) {
		log.Warn("ignoring invalid selection", "control", name, "option", option)
		return
	}

	s.mu.Lock()
	s.chosen[name] = option
	s.mu.Unlock()

	if s.OnSelect != nil {
		s.OnSelect(name, option)
	}
	s.push(name, option)
}

// Reset restores every resettable slider to its default domain value and
// pushes each as an independent request. A failed push does not roll back
// the others; each reports its own error.
func (s *Synchronizer) Reset() {
	for _, spec := range s.registry.Sliders() {
		if !spec.Resettable {
			continue
		}
		display := ToDisplay(spec.Default, spec.Display, spec.Domain)

		s.mu.Lock()
		s.display[spec.Name] = display
		s.mu.Unlock()

		s.emitReadout(spec, display)
		s.debounce.Cancel(spec.Name)
		s.push(spec.Name, spec.Default)
	}
}

// Display returns the current display value for a slider.
func (s *Synchronizer) Display(name string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.display[name]
	return v, ok
}

// Chosen returns the current option for a selection control.
func (s *Synchronizer) Chosen(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.chosen[name]
	return v, ok
}

// Close cancels all pending pushes.
func (s *Synchronizer) Close() {
	s.debounce.Close()
}

func (s *Synchronizer) emitReadout(spec Slider, display float64) {
	if s.OnReadout != nil {
		s.OnReadout(spec.Name, display, spec.Readout(display))
	}
}

func (s *Synchronizer) push(name string, value any) {
	if err := s.svc.ApplyControls(map[string]any{name: value}); err != nil {
		log.Warn("control push failed", "control", name, "error", err)
		if s.OnError != nil {
			s.OnError(name, err)
		}
	}
}

// sliderValues extracts the numeric settings from a controls response.
func sliderValues(c camera.Controls) map[string]float64 {
	return map[string]float64{
		"brightness": c.Brightness,
		"contrast":   c.Contrast,
		"saturation": c.Saturation,
		"sharpness":  c.Sharpness,
		"zoom":       c.Zoom,
	}
}

// selectValues extracts the discrete settings from a controls response.
func selectValues(c camera.Controls) map[string]string {
	return map[string]string{
		"resolution": c.Resolution,
		"awb_mode":   c.AWBMode,
	}
}
