package tint

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// FillMethod distinguishes how a fill region's coverage was computed.
type FillMethod int

const (
	// FillExact means coverage is an exact set of filled pixel spans.
	FillExact FillMethod = iota
	// FillApproximate means the exact algorithm ran out of budget and
	// coverage is a set of overlapping circles around the seed.
	FillApproximate
)

// String returns the method name.
func (m FillMethod) String() string {
	switch m {
	case FillExact:
		return "exact"
	case FillApproximate:
		return "approximate"
	default:
		return "unknown"
	}
}

// FailReason explains a failed fill request.
type FailReason int

const (
	// ReasonNone means the fill did not fail.
	ReasonNone FailReason = iota
	// ReasonOutOfBounds means the seed point lies outside the buffer.
	ReasonOutOfBounds
)

// Span is a horizontal run of filled pixels on row Y, covering columns
// X0 through X1 inclusive.
type Span struct {
	Y, X0, X1 int
}

// FillRegion is the visual result of one fill operation: either exact
// pixel spans or an approximating circle set, plus the color to paint
// them with. Immutable once created; owned by the fill layer until
// undone.
type FillRegion struct {
	ID      uuid.UUID
	Seed    Point
	Color   RGBA
	Spans   []Span
	Circles []Circle
	Bounds  Rect
	Method  FillMethod
}

// Empty reports whether the region carries no coverage at all (the
// idempotent no-op fill).
func (r FillRegion) Empty() bool {
	return len(r.Spans) == 0 && len(r.Circles) == 0
}

// FillStats carries measurements from one fill computation.
type FillStats struct {
	Bounds  Rect
	Elapsed time.Duration
	Spans   int
	Pixels  int
}

// FillResult is the outcome of a fill request.
type FillResult struct {
	OK     bool
	Reason FailReason
	Method FillMethod
	Region FillRegion
	Stats  FillStats
}

// FillOptions tunes the flood fill algorithm.
type FillOptions struct {
	// Tolerance is the maximum color distance (0-255 scale, see
	// RGBA.Distance) for a pixel to join the region. Anti-aliased line
	// edges are 1-2px of partial coverage, so the tolerance must be
	// generous enough to bridge them without leaking through open line
	// gaps. Empirical, not derived.
	Tolerance float64

	// MaxDuration is the hard wall-clock budget. A zero or negative
	// budget forces the approximate fallback immediately.
	MaxDuration time.Duration

	// DownscaleFactor samples the buffer at reduced resolution to bound
	// work on large canvases. Values <= 1 sample at full resolution.
	DownscaleFactor int

	// UseAlpha includes the alpha channel in the color distance, for
	// artwork whose regions are delimited by transparency.
	UseAlpha bool
}

// DefaultFillOptions returns the fill tuning for a device tier.
func DefaultFillOptions(caps Capabilities) FillOptions {
	return FillOptions{
		Tolerance:       32,
		MaxDuration:     caps.FillBudget,
		DownscaleFactor: caps.FillDownscale,
	}
}

// budgetCheckInterval is how many spans are processed between wall-clock
// budget checks.
const budgetCheckInterval = 64

// FillEngine computes flood fills over a borrowed pixel buffer. It never
// mutates the buffer; it returns coverage descriptors for the compositor.
type FillEngine struct {
	opts FillOptions
}

// NewFillEngine creates a fill engine with the given tuning.
func NewFillEngine(opts FillOptions) *FillEngine {
	if opts.DownscaleFactor < 1 {
		opts.DownscaleFactor = 1
	}
	if opts.Tolerance < 0 {
		opts.Tolerance = 0
	}
	return &FillEngine{opts: opts}
}

// Options returns the engine's tuning.
func (e *FillEngine) Options() FillOptions {
	return e.opts
}

// seedStack is the explicit LIFO stack of scanline seeds. Recursion is
// deliberately avoided: large contiguous regions would blow the call
// stack.
type seedPoint struct {
	x, y int
}

// Fill computes the maximal connected region of pixels within tolerance
// of the color under the seed, and returns it painted with target.
//
// The scanline walk runs over a downsampled copy of the buffer and
// checks its wall-clock budget every 64 spans. If the budget is
// exceeded, the result degrades to an approximate circle set around the
// seed rather than failing; the only failure mode is an out-of-bounds
// seed. Filling an area already within tolerance of the target color is
// an idempotent no-op and returns success with empty coverage.
func (e *FillEngine) Fill(buf *Pixmap, seedX, seedY int, target RGBA) FillResult {
	start := time.Now()

	if !buf.InBounds(seedX, seedY) {
		Logger().Warn("fill seed out of bounds",
			slog.Int("x", seedX), slog.Int("y", seedY),
			slog.Int("width", buf.Width()), slog.Int("height", buf.Height()))
		return FillResult{Reason: ReasonOutOfBounds}
	}

	factor := e.opts.DownscaleFactor
	work := buf.Downsample(factor)
	wx := min(seedX/factor, work.Width()-1)
	wy := min(seedY/factor, work.Height()-1)

	sr, sg, sb, sa := work.at8(wx, wy)
	region := FillRegion{
		ID:     uuid.New(),
		Seed:   Pt(float64(seedX), float64(seedY)),
		Color:  target,
		Method: FillExact,
	}

	// Seed already within tolerance of the target: idempotent no-op.
	if e.withinTolerance(sr, sg, sb, sa, target) {
		return FillResult{
			OK:     true,
			Method: FillExact,
			Region: region,
			Stats:  FillStats{Elapsed: time.Since(start)},
		}
	}

	spans, pixels, complete := e.scanlineFill(work, wx, wy, start)

	if !complete {
		circles := e.approximate(work, wx, wy, factor)
		region.Method = FillApproximate
		region.Circles = circles
		region.Bounds = circleBounds(circles).Intersect(canvasRect(buf))
		elapsed := time.Since(start)
		Logger().Warn("fill budget exceeded, using approximate coverage",
			slog.Duration("elapsed", elapsed),
			slog.Duration("budget", e.opts.MaxDuration),
			slog.Int("circles", len(circles)))
		return FillResult{
			OK:     true,
			Method: FillApproximate,
			Region: region,
			Stats:  FillStats{Bounds: region.Bounds, Elapsed: elapsed, Spans: len(spans), Pixels: pixels},
		}
	}

	region.Spans = upscaleSpans(spans, factor, buf.Width(), buf.Height())
	region.Bounds = spanBounds(region.Spans)
	elapsed := time.Since(start)
	Logger().Debug("fill complete",
		slog.Duration("elapsed", elapsed),
		slog.Int("spans", len(region.Spans)),
		slog.Int("pixels", pixels))
	return FillResult{
		OK:     true,
		Method: FillExact,
		Region: region,
		Stats:  FillStats{Bounds: region.Bounds, Elapsed: elapsed, Spans: len(region.Spans), Pixels: pixels},
	}
}

// withinTolerance reports whether a sampled pixel is close enough to the
// target color under the engine's distance metric.
func (e *FillEngine) withinTolerance(r, g, b, a uint8, target RGBA) bool {
	tr := uint8(clamp255(target.R * 255))
	tg := uint8(clamp255(target.G * 255))
	tb := uint8(clamp255(target.B * 255))
	ta := uint8(clamp255(target.A * 255))
	tol := e.opts.Tolerance
	if e.opts.UseAlpha {
		return float64(distance8Alpha(r, g, b, a, tr, tg, tb, ta)) <= 4*tol*tol
	}
	return float64(distance8(r, g, b, tr, tg, tb)) <= 3*tol*tol
}

// scanlineFill runs the span-stack flood fill over the working buffer.
// It returns the collected spans, the filled pixel count, and whether
// the walk ran to completion within the budget.
func (e *FillEngine) scanlineFill(work *Pixmap, sx, sy int, start time.Time) ([]Span, int, bool) {
	w, h := work.Width(), work.Height()
	sr, sg, sb, sa := work.at8(sx, sy)

	// Squared-distance threshold in the scale distance8 reports.
	tol := e.opts.Tolerance
	var limit uint32
	if e.opts.UseAlpha {
		limit = uint32(4 * tol * tol)
	} else {
		limit = uint32(3 * tol * tol)
	}

	matches := func(x, y int) bool {
		r, g, b, a := work.at8(x, y)
		if e.opts.UseAlpha {
			return distance8Alpha(r, g, b, a, sr, sg, sb, sa) <= limit
		}
		return distance8(r, g, b, sr, sg, sb) <= limit
	}

	// Visited mask, one bit per working pixel.
	mask := make([]uint8, (w*h+7)/8)
	visited := func(i int) bool { return mask[i>>3]&(1<<(uint(i)&7)) != 0 }
	visit := func(i int) { mask[i>>3] |= 1 << (uint(i) & 7) }

	budget := e.opts.MaxDuration
	stack := make([]seedPoint, 0, 256)
	stack = append(stack, seedPoint{sx, sy})

	var spans []Span
	pixels := 0

	for len(stack) > 0 {
		// Budget check every budgetCheckInterval spans. A zero budget
		// trips on the first check, before any span is emitted.
		if len(spans)%budgetCheckInterval == 0 && time.Since(start) >= budget {
			return spans, pixels, false
		}

		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := s.y*w + s.x
		if visited(idx) || !matches(s.x, s.y) {
			continue
		}

		// Expand the contiguous matching span on this row.
		x0 := s.x
		for x0 > 0 && !visited(s.y*w+x0-1) && matches(x0-1, s.y) {
			x0--
		}
		x1 := s.x
		for x1 < w-1 && !visited(s.y*w+x1+1) && matches(x1+1, s.y) {
			x1++
		}

		for x := x0; x <= x1; x++ {
			visit(s.y*w + x)
		}
		spans = append(spans, Span{Y: s.y, X0: x0, X1: x1})
		pixels += x1 - x0 + 1

		// Push seeds for the rows directly above and below the span.
		for _, ny := range [2]int{s.y - 1, s.y + 1} {
			if ny < 0 || ny >= h {
				continue
			}
			for x := x0; x <= x1; x++ {
				i := ny*w + x
				if visited(i) || !matches(x, ny) {
					continue
				}
				stack = append(stack, seedPoint{x, ny})
				// Skip the rest of this contiguous run; one seed
				// re-expands it.
				for x+1 <= x1 && !visited(ny*w+x+1) && matches(x+1, ny) {
					x++
				}
			}
		}
	}

	return spans, pixels, true
}

// approximate builds the fallback circle set: one disc on the seed plus
// four symmetric offsets, sized from 8-ray probes toward the nearest
// non-matching pixel so the fallback adapts to the local cavity.
func (e *FillEngine) approximate(work *Pixmap, sx, sy, factor int) []Circle {
	r := float64(e.probeRadius(work, sx, sy) * factor)

	// Lower bound keeps the fallback visible even in tight corners;
	// upper bound keeps a degenerate probe from flooding the canvas.
	const minRadius, maxRadius = 6.0, 160.0
	if r < minRadius {
		r = minRadius
	}
	if r > maxRadius {
		r = maxRadius
	}

	cx := float64(sx * factor)
	cy := float64(sy * factor)
	off := r * 0.5
	return []Circle{
		{Center: Pt(cx, cy), Radius: r * 0.9},
		{Center: Pt(cx-off, cy), Radius: r * 0.6},
		{Center: Pt(cx+off, cy), Radius: r * 0.6},
		{Center: Pt(cx, cy-off), Radius: r * 0.6},
		{Center: Pt(cx, cy+off), Radius: r * 0.6},
	}
}

// probeRadius marches 8 rays out from the seed until each hits a
// non-matching pixel or the probe cap, and returns the average hit
// distance in working-buffer pixels.
func (e *FillEngine) probeRadius(work *Pixmap, sx, sy int) int {
	w, h := work.Width(), work.Height()
	sr, sg, sb, sa := work.at8(sx, sy)

	const probeCap = 96
	dirs := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}

	total := 0
	for _, d := range dirs {
		steps := 0
		x, y := sx, sy
		for steps < probeCap {
			x += d[0]
			y += d[1]
			if x < 0 || x >= w || y < 0 || y >= h {
				break
			}
			if !e.matchesSeed(work, x, y, sr, sg, sb, sa) {
				break
			}
			steps++
		}
		total += steps
	}
	return total / len(dirs)
}

// matchesSeed tests one working pixel against the seed color.
func (e *FillEngine) matchesSeed(work *Pixmap, x, y int, sr, sg, sb, sa uint8) bool {
	r, g, b, a := work.at8(x, y)
	tol := e.opts.Tolerance
	if e.opts.UseAlpha {
		return float64(distance8Alpha(r, g, b, a, sr, sg, sb, sa)) <= 4*tol*tol
	}
	return float64(distance8(r, g, b, sr, sg, sb)) <= 3*tol*tol
}

// upscaleSpans maps working-buffer spans back to full-resolution pixel
// spans, clamped to the canvas.
func upscaleSpans(spans []Span, factor, width, height int) []Span {
	if factor <= 1 {
		return spans
	}
	out := make([]Span, 0, len(spans)*factor)
	for _, s := range spans {
		x0 := s.X0 * factor
		x1 := (s.X1+1)*factor - 1
		if x1 >= width {
			x1 = width - 1
		}
		for dy := 0; dy < factor; dy++ {
			y := s.Y*factor + dy
			if y >= height {
				break
			}
			out = append(out, Span{Y: y, X0: x0, X1: x1})
		}
	}
	return out
}

// spanBounds returns the bounding box of a span set.
func spanBounds(spans []Span) Rect {
	if len(spans) == 0 {
		return Rect{}
	}
	b := Rect{
		Min: Pt(float64(spans[0].X0), float64(spans[0].Y)),
		Max: Pt(float64(spans[0].X1+1), float64(spans[0].Y+1)),
	}
	for _, s := range spans[1:] {
		b = b.Union(Rect{
			Min: Pt(float64(s.X0), float64(s.Y)),
			Max: Pt(float64(s.X1+1), float64(s.Y+1)),
		})
	}
	return b
}

// circleBounds returns the bounding box of a circle set.
func circleBounds(circles []Circle) Rect {
	if len(circles) == 0 {
		return Rect{}
	}
	b := circles[0].BoundingBox()
	for _, c := range circles[1:] {
		b = b.Union(c.BoundingBox())
	}
	return b
}

// canvasRect returns a pixmap's bounds as a Rect.
func canvasRect(p *Pixmap) Rect {
	return Rect{Max: Pt(float64(p.Width()), float64(p.Height()))}
}
