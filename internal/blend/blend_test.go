package blend

import (
	"testing"
)

// TestSourceOver tests the default alpha compositing operator.
func TestSourceOver(t *testing.T) {
	f := ForMode(SourceOver)

	tests := []struct {
		name                string
		sr, sg, sb, sa      uint8
		dr, dg, db, da      uint8
		wantR, wantG, wantB uint8
		wantA               uint8
	}{
		{"opaque source wins", 255, 0, 0, 255, 0, 0, 255, 255, 255, 0, 0, 255},
		{"transparent source keeps dst", 255, 0, 0, 0, 0, 0, 255, 255, 0, 0, 255, 255},
		{"both transparent", 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := f(tt.sr, tt.sg, tt.sb, tt.sa, tt.dr, tt.dg, tt.db, tt.da)
			if r != tt.wantR || g != tt.wantG || b != tt.wantB || a != tt.wantA {
				t.Errorf("got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

// TestSourceOverHalfAlpha tests 50% coverage over an opaque
// destination.
func TestSourceOverHalfAlpha(t *testing.T) {
	f := ForMode(SourceOver)
	r, g, b, a := f(255, 0, 0, 128, 0, 0, 255, 255)

	if a != 255 {
		t.Errorf("alpha = %d, want 255 (opaque destination stays opaque)", a)
	}
	// Roughly half red, half blue; integer rounding allows slack.
	if r < 120 || r > 136 {
		t.Errorf("r = %d, want ~128", r)
	}
	if b < 119 || b > 135 {
		t.Errorf("b = %d, want ~127", b)
	}
	if g != 0 {
		t.Errorf("g = %d, want 0", g)
	}
}

// TestDestinationOut tests the eraser operator.
func TestDestinationOut(t *testing.T) {
	f := ForMode(DestinationOut)

	tests := []struct {
		name  string
		sa    uint8
		da    uint8
		wantA uint8
	}{
		{"full erase", 255, 255, 0},
		{"no erase", 0, 255, 255},
		{"half erase", 128, 255, 127},
		{"erase nothing", 255, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, a := f(0, 0, 0, tt.sa, 10, 20, 30, tt.da)
			if a != tt.wantA {
				t.Errorf("alpha = %d, want %d", a, tt.wantA)
			}
		})
	}
}

// TestMultiply tests the separable multiply blend.
func TestMultiply(t *testing.T) {
	f := ForMode(Multiply)

	t.Run("white destination preserves source", func(t *testing.T) {
		r, g, b, a := f(200, 100, 50, 255, 255, 255, 255, 255)
		if r != 200 || g != 100 || b != 50 || a != 255 {
			t.Errorf("got (%d,%d,%d,%d), want source unchanged over white", r, g, b, a)
		}
	})

	t.Run("black destination stays black", func(t *testing.T) {
		r, g, b, _ := f(200, 100, 50, 255, 0, 0, 0, 255)
		if r != 0 || g != 0 || b != 0 {
			t.Errorf("got (%d,%d,%d), want black", r, g, b)
		}
	})

	t.Run("transparent source keeps destination", func(t *testing.T) {
		r, g, b, a := f(200, 100, 50, 0, 40, 50, 60, 255)
		if r != 40 || g != 50 || b != 60 || a != 255 {
			t.Errorf("got (%d,%d,%d,%d), want destination unchanged", r, g, b, a)
		}
	})

	t.Run("transparent destination shows source", func(t *testing.T) {
		r, g, b, a := f(200, 100, 50, 255, 0, 0, 0, 0)
		if r != 200 || g != 100 || b != 50 || a != 255 {
			t.Errorf("got (%d,%d,%d,%d), want raw source", r, g, b, a)
		}
	})
}

// TestForModeUnknownFallsBack tests the default operator for unknown
// modes.
func TestForModeUnknownFallsBack(t *testing.T) {
	f := ForMode(Mode(99))
	r, _, _, a := f(255, 0, 0, 255, 0, 0, 0, 255)
	if r != 255 || a != 255 {
		t.Error("unknown mode did not fall back to source-over")
	}
}

// TestMulDiv255 tests the scaled multiply helper at its boundaries.
func TestMulDiv255(t *testing.T) {
	tests := []struct {
		a, b, want uint32
	}{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{128, 255, 128},
		{128, 128, 64},
	}

	for _, tt := range tests {
		if got := mulDiv255(tt.a, tt.b); got != tt.want {
			t.Errorf("mulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
