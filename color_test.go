package tint

import (
	"math"
	"testing"
)

// TestHex tests hex color parsing across supported formats.
func TestHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want RGBA
	}{
		{"long form", "#FF0000", RGBA{R: 1, G: 0, B: 0, A: 1}},
		{"no hash", "00FF00", RGBA{R: 0, G: 1, B: 0, A: 1}},
		{"short form", "#00F", RGBA{R: 0, G: 0, B: 1, A: 1}},
		{"with alpha", "#FF000080", RGBA{R: 1, G: 0, B: 0, A: float64(0x80) / 255}},
		{"short alpha", "#F00F", RGBA{R: 1, G: 0, B: 0, A: 1}},
		{"invalid", "xyz", RGBA{R: 0, G: 0, B: 0, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.in)
			if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 ||
				math.Abs(got.B-tt.want.B) > 1e-9 || math.Abs(got.A-tt.want.A) > 1e-9 {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// TestDistance tests the Euclidean RGB distance on the 0-255 scale.
func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b RGBA
		want float64
	}{
		{"identical", Red, Red, 0},
		{"black to white", Black, White, 255},
		{"one channel", Black, Red, 255 / math.Sqrt(3)},
		{"alpha ignored", Red, Red.WithAlpha(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Distance(tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Distance = %v, want %v", got, tt.want)
			}
			// Symmetry.
			if rev := tt.b.Distance(tt.a); math.Abs(rev-got) > 1e-9 {
				t.Errorf("Distance not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

// TestDistanceAlpha tests that the alpha-aware metric separates colors
// the RGB metric conflates.
func TestDistanceAlpha(t *testing.T) {
	opaque := Red
	clear := Red.WithAlpha(0)
	if opaque.Distance(clear) != 0 {
		t.Error("RGB metric should ignore alpha")
	}
	if opaque.DistanceAlpha(clear) == 0 {
		t.Error("alpha metric should separate transparent from opaque")
	}
}

// TestDistance8Consistency tests that the byte-space hot-path metric
// agrees with the float metric's threshold semantics.
func TestDistance8Consistency(t *testing.T) {
	tests := []struct {
		name      string
		a, b      RGBA
		tolerance float64
	}{
		{"just inside", RGB(0.5, 0.5, 0.5), RGB(0.55, 0.5, 0.5), 10},
		{"just outside", RGB(0.5, 0.5, 0.5), RGB(0.8, 0.5, 0.5), 10},
		{"far", Black, White, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantWithin := tt.a.Distance(tt.b) <= tt.tolerance

			toByte := func(v float64) uint8 { return uint8(clamp255(v * 255)) }
			sq := distance8(
				toByte(tt.a.R), toByte(tt.a.G), toByte(tt.a.B),
				toByte(tt.b.R), toByte(tt.b.G), toByte(tt.b.B))
			gotWithin := float64(sq) <= 3*tt.tolerance*tt.tolerance

			if gotWithin != wantWithin {
				t.Errorf("byte metric within=%v, float metric within=%v", gotWithin, wantWithin)
			}
		})
	}
}

// TestLerp tests color interpolation endpoints and midpoint.
func TestLerp(t *testing.T) {
	a, b := Black, White
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v, want %+v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v, want %+v", got, b)
	}
	mid := a.Lerp(b, 0.5)
	if mid.R != 0.5 || mid.G != 0.5 || mid.B != 0.5 {
		t.Errorf("Lerp(0.5) = %+v, want mid gray", mid)
	}
}

// TestPremultiply tests alpha premultiplication.
func TestPremultiply(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: 0, A: 0.5}
	got := c.Premultiply()
	if got.R != 0.5 || got.G != 0.25 || got.B != 0 || got.A != 0.5 {
		t.Errorf("Premultiply = %+v", got)
	}
}
