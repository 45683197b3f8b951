// Package controls keeps slider display values, their domain equivalents,
// and the camera server's stored settings consistent.
//
// Every numeric control has a display range (what a slider exposes, e.g.
// -100..100) and a domain range (what the server expects, e.g. -1..1) in a
// fixed affine correspondence. Pushes to the server are debounced per
// control so dragging a slider never floods the API.
package controls

// Range is a closed numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Degenerate reports whether the range cannot be mapped from (zero width).
func (r Range) Degenerate() bool {
	return r.Min == r.Max
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// MapValue linearly maps value from [inMin,inMax] to [outMin,outMax].
// Mapping forward then backward with swapped arguments returns the
// original value up to floating-point rounding. inMin must differ from
// inMax; Registry construction enforces that for every configured control.
func MapValue(value, inMin, inMax, outMin, outMax float64) float64 {
	return (value-inMin)/(inMax-inMin)*(outMax-outMin) + outMin
}

// ToDomain converts a display value to its domain equivalent.
func ToDomain(v float64, display, domain Range) float64 {
	return MapValue(v, display.Min, display.Max, domain.Min, domain.Max)
}

// ToDisplay converts a domain value to its display equivalent.
func ToDisplay(v float64, display, domain Range) float64 {
	return MapValue(v, domain.Min, domain.Max, display.Min, display.Max)
}
