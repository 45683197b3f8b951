package controls

import (
	"fmt"
	"math"
	"strconv"
)

// Slider describes one numeric camera control.
type Slider struct {
	// Name is the setting name the server expects (e.g. "brightness").
	Name string

	// Display is the range the UI slider exposes.
	Display Range

	// Domain is the range the server expects.
	Domain Range

	// Decimals is the precision of the textual readout.
	Decimals int

	// ReadoutDomain selects which value the readout shows: the domain
	// value (contrast 1.2) or the display value (brightness -50).
	ReadoutDomain bool

	// Default is the domain value Reset restores.
	Default float64

	// Resettable marks controls included in Reset.
	Resettable bool
}

// Readout formats the slider's textual readout for a display value.
func (s Slider) Readout(display float64) string {
	v := display
	if s.ReadoutDomain {
		v = ToDomain(display, s.Display, s.Domain)
	}
	return strconv.FormatFloat(round(v, s.Decimals), 'f', s.Decimals, 64)
}

// Select describes one discrete camera control.
type Select struct {
	Name    string
	Options []string
	Default string
}

// Valid reports whether option is one of the configured choices.
func (s Select) Valid(option string) bool {
	for _, o := range s.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Registry holds the configured controls, keyed by name.
type Registry struct {
	sliders map[string]Slider
	selects map[string]Select
	order   []string
}

// NewRegistry builds a registry, rejecting any control whose display or
// domain range is degenerate (which would divide by zero in MapValue).
func NewRegistry(sliders []Slider, selects []Select) (*Registry, error) {
	r := &Registry{
		sliders: make(map[string]Slider, len(sliders)),
		selects: make(map[string]Select, len(selects)),
	}
	for _, s := range sliders {
		if s.Display.Degenerate() || s.Domain.Degenerate() {
			return nil, fmt.Errorf("control %q has a zero-width range", s.Name)
		}
		r.sliders[s.Name] = s
		r.order = append(r.order, s.Name)
	}
	for _, s := range selects {
		if len(s.Options) == 0 {
			return nil, fmt.Errorf("control %q has no options", s.Name)
		}
		r.selects[s.Name] = s
		r.order = append(r.order, s.Name)
	}
	return r, nil
}

// Slider returns the named slider control.
func (r *Registry) Slider(name string) (Slider, bool) {
	s, ok := r.sliders[name]
	return s, ok
}

// Select returns the named selection control.
func (r *Registry) Select(name string) (Select, bool) {
	s, ok := r.selects[name]
	return s, ok
}

// Sliders returns all slider controls in registration order.
func (r *Registry) Sliders() []Slider {
	out := make([]Slider, 0, len(r.sliders))
	for _, name := range r.order {
		if s, ok := r.sliders[name]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Selects returns all selection controls in registration order.
func (r *Registry) Selects() []Select {
	out := make([]Select, 0, len(r.selects))
	for _, name := range r.order {
		if s, ok := r.selects[name]; ok {
			out = append(out, s)
		}
	}
	return out
}

// DefaultRegistry returns the camera's control set: brightness, the
// proportional settings, zoom, and the discrete resolution and white
// balance controls.
func DefaultRegistry() *Registry {
	proportional := Range{0, 200}
	unit := Range{0, 2}

	r, err := NewRegistry(
		[]Slider{
			{Name: "brightness", Display: Range{-100, 100}, Domain: Range{-1, 1},
				Decimals: 0, Default: 0, Resettable: true},
			{Name: "contrast", Display: proportional, Domain: unit,
				Decimals: 1, ReadoutDomain: true, Default: 1.0, Resettable: true},
			{Name: "saturation", Display: proportional, Domain: unit,
				Decimals: 1, ReadoutDomain: true, Default: 1.0, Resettable: true},
			{Name: "sharpness", Display: proportional, Domain: unit,
				Decimals: 1, ReadoutDomain: true, Default: 1.0, Resettable: true},
			{Name: "zoom", Display: Range{100, 400}, Domain: Range{1, 4},
				Decimals: 1, ReadoutDomain: true, Default: 1.0},
		},
		[]Select{
			{Name: "resolution",
				Options: []string{"640x480", "1280x720", "1920x1080"},
				Default: "1280x720"},
			{Name: "awb_mode",
				Options: []string{"auto", "incandescent", "tungsten",
					"fluorescent", "indoor", "daylight", "cloudy"},
				Default: "auto"},
		},
	)
	if err != nil {
		// Static table above; a failure here is a programming error.
		panic(err)
	}
	return r
}

// round rounds v to the given number of decimals.
func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
