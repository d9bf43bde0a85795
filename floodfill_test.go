package tint

import (
	"testing"
	"time"
)

// uniformPixmap creates a pixmap filled with a single color.
func uniformPixmap(w, h int, c RGBA) *Pixmap {
	pm := NewPixmap(w, h)
	pm.Clear(c)
	return pm
}

// borderedPixmap creates a white pixmap with a dark rectangular border
// of the given thickness around the inner region.
func borderedPixmap(w, h, thickness int) *Pixmap {
	pm := NewPixmap(w, h)
	pm.Clear(White)
	ink := RGB(0.05, 0.05, 0.05)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < thickness || y < thickness || x >= w-thickness || y >= h-thickness {
				pm.SetPixel(x, y, ink)
			}
		}
	}
	return pm
}

// pixelsCovered sums the pixel count of a region's spans.
func pixelsCovered(spans []Span) int {
	n := 0
	for _, s := range spans {
		n += s.X1 - s.X0 + 1
	}
	return n
}

// TestFillUniformCanvas tests that filling a uniform canvas covers it
// entirely with an exact result.
func TestFillUniformCanvas(t *testing.T) {
	tests := []struct {
		name      string
		downscale int
	}{
		{"full resolution", 1},
		{"downscale 2", 2},
		{"downscale 3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := uniformPixmap(100, 100, White)
			e := NewFillEngine(FillOptions{
				Tolerance:       30,
				MaxDuration:     30 * time.Millisecond,
				DownscaleFactor: tt.downscale,
			})

			res := e.Fill(buf, 50, 50, Red)
			if !res.OK {
				t.Fatalf("Fill failed: reason %v", res.Reason)
			}
			if res.Method != FillExact {
				t.Fatalf("Method = %v, want FillExact", res.Method)
			}
			got := pixelsCovered(res.Region.Spans)
			want := 100 * 100
			// Downsampling may shave a trailing row/column of the
			// working grid; coverage must still be near-total.
			if got < want*95/100 {
				t.Errorf("covered %d pixels, want >= %d", got, want*95/100)
			}
			if res.Region.Bounds.Empty() {
				t.Error("exact fill has empty bounds")
			}
		})
	}
}

// TestFillOutOfBounds tests that out-of-bounds seeds fail cleanly
// without panicking.
func TestFillOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"negative both", -1, -1},
		{"negative x", -5, 10},
		{"negative y", 10, -5},
		{"past width", 100, 50},
		{"past height", 50, 100},
	}

	buf := uniformPixmap(100, 100, White)
	e := NewFillEngine(FillOptions{Tolerance: 30, MaxDuration: 30 * time.Millisecond, DownscaleFactor: 2})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Fill(buf, tt.x, tt.y, Red)
			if res.OK {
				t.Error("Fill succeeded for out-of-bounds seed")
			}
			if res.Reason != ReasonOutOfBounds {
				t.Errorf("Reason = %v, want ReasonOutOfBounds", res.Reason)
			}
		})
	}
}

// TestFillNoOp tests that filling a region already within tolerance of
// the target color is an idempotent no-op: success with empty coverage.
func TestFillNoOp(t *testing.T) {
	buf := uniformPixmap(50, 50, Red)
	e := NewFillEngine(FillOptions{Tolerance: 30, MaxDuration: 30 * time.Millisecond, DownscaleFactor: 1})

	res := e.Fill(buf, 25, 25, Red)
	if !res.OK {
		t.Fatalf("no-op fill failed: reason %v", res.Reason)
	}
	if !res.Region.Empty() {
		t.Errorf("no-op fill produced %d spans, %d circles; want empty coverage",
			len(res.Region.Spans), len(res.Region.Circles))
	}
}

// TestFillZeroBudgetFallback tests that a zero time budget always
// produces an approximate result with a non-empty circle set.
func TestFillZeroBudgetFallback(t *testing.T) {
	seeds := []struct {
		name string
		x, y int
	}{
		{"center", 50, 50},
		{"corner", 1, 1},
		{"edge", 99, 50},
	}

	for _, tt := range seeds {
		t.Run(tt.name, func(t *testing.T) {
			buf := uniformPixmap(100, 100, White)
			e := NewFillEngine(FillOptions{Tolerance: 30, MaxDuration: 0, DownscaleFactor: 2})

			res := e.Fill(buf, tt.x, tt.y, Red)
			if !res.OK {
				t.Fatalf("zero-budget fill failed: reason %v", res.Reason)
			}
			if res.Method != FillApproximate {
				t.Fatalf("Method = %v, want FillApproximate", res.Method)
			}
			if len(res.Region.Circles) == 0 {
				t.Fatal("approximate fill has no circles")
			}
			if !res.Region.Bounds.Contains(Pt(float64(tt.x), float64(tt.y))) {
				t.Errorf("bounds %+v do not contain seed (%d, %d)", res.Region.Bounds, tt.x, tt.y)
			}
		})
	}
}

// TestFillRespectsBorder tests that the fill stays inside a closed ink
// border at full resolution.
func TestFillRespectsBorder(t *testing.T) {
	const size, thickness = 80, 3
	buf := borderedPixmap(size, size, thickness)
	e := NewFillEngine(FillOptions{Tolerance: 40, MaxDuration: 30 * time.Millisecond, DownscaleFactor: 1})

	res := e.Fill(buf, size/2, size/2, Blue)
	if !res.OK || res.Method != FillExact {
		t.Fatalf("Fill = {OK:%v, Method:%v}, want exact success", res.OK, res.Method)
	}
	for _, s := range res.Region.Spans {
		if s.Y < thickness || s.Y >= size-thickness {
			t.Fatalf("span leaked through horizontal border at y=%d", s.Y)
		}
		if s.X0 < thickness || s.X1 >= size-thickness {
			t.Fatalf("span leaked through vertical border: x %d..%d", s.X0, s.X1)
		}
	}
	inner := size - 2*thickness
	if got := pixelsCovered(res.Region.Spans); got != inner*inner {
		t.Errorf("covered %d pixels, want %d", got, inner*inner)
	}
}

// TestFillTermination tests that fills return within the wall-clock
// budget plus scheduling slack, for both generous and tight budgets.
func TestFillTermination(t *testing.T) {
	tests := []struct {
		name   string
		budget time.Duration
	}{
		{"default budget", 30 * time.Millisecond},
		{"tight budget", time.Millisecond},
		{"zero budget", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := uniformPixmap(400, 400, White)
			e := NewFillEngine(FillOptions{Tolerance: 30, MaxDuration: tt.budget, DownscaleFactor: 1})

			start := time.Now()
			res := e.Fill(buf, 200, 200, Green)
			elapsed := time.Since(start)

			if !res.OK {
				t.Fatalf("Fill failed: reason %v", res.Reason)
			}
			// Generous epsilon: the budget check granularity is 64
			// spans and CI schedulers add jitter.
			if limit := tt.budget + 100*time.Millisecond; elapsed > limit {
				t.Errorf("Fill took %v, want <= %v", elapsed, limit)
			}
		})
	}
}

// TestFillToleranceBridgesAntialiasing tests that a soft gray edge
// within tolerance does not stop the fill, while one beyond tolerance
// does.
func TestFillToleranceBridgesAntialiasing(t *testing.T) {
	// White canvas with a single column of light gray simulating a
	// 1px anti-aliased edge remnant.
	buf := uniformPixmap(60, 20, White)
	soft := RGB(0.85, 0.85, 0.85)
	for y := 0; y < 20; y++ {
		buf.SetPixel(30, y, soft)
	}

	t.Run("generous tolerance bridges", func(t *testing.T) {
		e := NewFillEngine(FillOptions{Tolerance: 60, MaxDuration: 30 * time.Millisecond, DownscaleFactor: 1})
		res := e.Fill(buf, 5, 10, Red)
		if res.Region.Bounds.Max.X < 59 {
			t.Errorf("fill stopped at x=%v, want to bridge the soft edge", res.Region.Bounds.Max.X)
		}
	})

	t.Run("strict tolerance stops", func(t *testing.T) {
		e := NewFillEngine(FillOptions{Tolerance: 10, MaxDuration: 30 * time.Millisecond, DownscaleFactor: 1})
		res := e.Fill(buf, 5, 10, Red)
		if res.Region.Bounds.Max.X > 30 {
			t.Errorf("fill reached x=%v, want to stop at the edge", res.Region.Bounds.Max.X)
		}
	})
}

// TestFillDoesNotMutateBuffer tests that the engine only reads the
// input buffer.
func TestFillDoesNotMutateBuffer(t *testing.T) {
	buf := borderedPixmap(60, 60, 2)
	before := append([]uint8(nil), buf.Data()...)

	e := NewFillEngine(FillOptions{Tolerance: 40, MaxDuration: 30 * time.Millisecond, DownscaleFactor: 2})
	e.Fill(buf, 30, 30, Red)

	after := buf.Data()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("buffer mutated at byte %d: %d -> %d", i, before[i], after[i])
		}
	}
}

// BenchmarkFillLargeCanvas benchmarks the exact fill over a large
// uniform canvas.
func BenchmarkFillLargeCanvas(b *testing.B) {
	buf := uniformPixmap(1024, 1024, White)
	e := NewFillEngine(FillOptions{Tolerance: 30, MaxDuration: time.Second, DownscaleFactor: 2})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Fill(buf, 512, 512, Red)
	}
}
