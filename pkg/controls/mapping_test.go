package controls

import (
	"math"
	"testing"
)

func TestMapValue(t *testing.T) {
	tests := []struct {
		name                       string
		value                      float64
		inMin, inMax, outMin, outMax float64
		want                       float64
	}{
		{"brightness midpoint", 0, -100, 100, -1, 1, 0},
		{"brightness negative", -50, -100, 100, -1, 1, -0.5},
		{"brightness max", 100, -100, 100, -1, 1, 1},
		{"proportional default", 100, 0, 200, 0, 2, 1},
		{"zoom", 250, 100, 400, 1, 4, 2.5},
		{"inverted output", 0, 0, 10, 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapValue(tt.value, tt.inMin, tt.inMax, tt.outMin, tt.outMax)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MapValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestMapValueRoundTrip(t *testing.T) {
	// Forward then inverse with swapped argument order is the identity
	// for any value inside the input range.
	ranges := []struct {
		inMin, inMax, outMin, outMax float64
	}{
		{-100, 100, -1, 1},
		{0, 200, 0, 2},
		{100, 400, 1, 4},
		{-1, 1, 50, -50},
	}

	for _, r := range ranges {
		for i := 0; i <= 20; i++ {
			v := r.inMin + (r.inMax-r.inMin)*float64(i)/20
			mapped := MapValue(v, r.inMin, r.inMax, r.outMin, r.outMax)
			back := MapValue(mapped, r.outMin, r.outMax, r.inMin, r.inMax)
			if math.Abs(back-v) > 1e-9 {
				t.Errorf("round trip %v via [%v,%v]->[%v,%v] = %v",
					v, r.inMin, r.inMax, r.outMin, r.outMax, back)
			}
		}
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{-100, 100}

	if got := r.Clamp(150); got != 100 {
		t.Errorf("Clamp(150) = %v, want 100", got)
	}
	if got := r.Clamp(-150); got != -100 {
		t.Errorf("Clamp(-150) = %v, want -100", got)
	}
	if got := r.Clamp(42); got != 42 {
		t.Errorf("Clamp(42) = %v, want 42", got)
	}
}

func TestSliderReadout(t *testing.T) {
	brightness := Slider{Name: "brightness", Display: Range{-100, 100},
		Domain: Range{-1, 1}, Decimals: 0}
	if got := brightness.Readout(-50); got != "-50" {
		t.Errorf("brightness readout = %q, want -50", got)
	}

	contrast := Slider{Name: "contrast", Display: Range{0, 200},
		Domain: Range{0, 2}, Decimals: 1, ReadoutDomain: true}
	if got := contrast.Readout(120); got != "1.2" {
		t.Errorf("contrast readout = %q, want 1.2", got)
	}
	if got := contrast.Readout(100); got != "1.0" {
		t.Errorf("contrast readout = %q, want 1.0", got)
	}
}
