package tint

import (
	"github.com/google/uuid"
)

// StrokePoint is one point of a stroke with its pressure-derived
// rendering modifiers.
type StrokePoint struct {
	X, Y         float64
	WidthScale   float64 // [0.5, 2.0], 1.0 when pressure is disabled
	OpacityScale float64 // [0.3, 1.0], 1.0 when pressure is disabled
}

// BrushStroke is one continuous pointer-down-to-pointer-up interaction.
// Immutable once finalized by StrokeBuilder.End; safe to share across
// goroutines by reference.
type BrushStroke struct {
	ID       uuid.UUID
	Points   []StrokePoint
	Color    RGBA
	Width    float64 // base width in pixels
	Opacity  float64 // base opacity [0, 1]
	Hardness float64 // edge hardness [0, 1]; 1 is a crisp disc
	Eraser   bool
}

// BoundingBox returns the stroke's bounding box including brush radius.
func (s BrushStroke) BoundingBox() Rect {
	var b Rect
	for _, p := range s.Points {
		r := s.Width * p.WidthScale / 2
		b = b.Union(Circle{Center: Pt(p.X, p.Y), Radius: r}.BoundingBox())
	}
	return b
}

const (
	// neutralPressure substitutes for missing pressure samples.
	neutralPressure = 0.5

	// pressureSmoothing is the exponential weight decay applied across
	// the smoothing window to suppress input jitter.
	pressureSmoothing = 0.7

	// pressureWindow is how many recent samples the smoother considers.
	pressureWindow = 3

	// minPointDistance coalesces micro-segments: samples closer than
	// this to the previous recorded point are dropped.
	minPointDistance = 1.5

	widthScaleMin   = 0.5
	widthScaleMax   = 2.0
	opacityScaleMin = 0.3
	opacityScaleMax = 1.0
)

// StrokeBuilder accumulates pointer samples into a BrushStroke. It is a
// stateful builder exclusively owned by the current gesture: Start,
// AddPoint*, End, in that order. Calling AddPoint or End before Start is
// a contract violation and panics; the tool dispatcher must guarantee
// ordering.
type StrokeBuilder struct {
	color    RGBA
	width    float64
	opacity  float64
	hardness float64
	eraser   bool

	pressureEnabled bool

	active bool
	points []StrokePoint
	last   Point
	window []float64 // recent normalized pressure samples, newest last
}

// NewStrokeBuilder creates a stroke builder. Pressure response follows
// the device capabilities: on tiers without pressure support the width
// and opacity scales stay pinned to 1.0.
func NewStrokeBuilder(caps Capabilities) *StrokeBuilder {
	return &StrokeBuilder{
		width:           caps.BrushSize.Min + (caps.BrushSize.Max-caps.BrushSize.Min)/4,
		opacity:         1.0,
		hardness:        0.7,
		color:           Black,
		pressureEnabled: caps.SupportsPressure,
	}
}

// SetBrush configures the brush for subsequent strokes. Has no effect on
// a stroke already in progress.
func (b *StrokeBuilder) SetBrush(color RGBA, width, opacity, hardness float64) {
	if b.active {
		return
	}
	b.color = color
	b.width = width
	b.opacity = clamp01(opacity)
	b.hardness = clamp01(hardness)
}

// SetEraser switches the builder between paint and eraser strokes.
func (b *StrokeBuilder) SetEraser(eraser bool) {
	if b.active {
		return
	}
	b.eraser = eraser
}

// SetPressureEnabled overrides the capability-derived pressure setting,
// for the user preference toggle.
func (b *StrokeBuilder) SetPressureEnabled(enabled bool) {
	b.pressureEnabled = enabled
}

// Active reports whether a stroke is in progress.
func (b *StrokeBuilder) Active() bool {
	return b.active
}

// Start begins a new stroke at the given point. A missing pressure
// sample records neutral pressure.
func (b *StrokeBuilder) Start(p Point, pressure ...float64) {
	b.Reset()
	b.active = true
	b.appendPoint(p, b.normalize(pressure))
}

// AddPoint extends the in-progress stroke. Samples closer than the
// minimum point distance to the previous recorded point are coalesced.
func (b *StrokeBuilder) AddPoint(p Point, pressure ...float64) {
	if !b.active {
		panic("tint: StrokeBuilder.AddPoint called before Start")
	}
	if p.Distance(b.last) < minPointDistance {
		return
	}
	b.appendPoint(p, b.normalize(pressure))
}

// End finalizes the stroke at the given point and returns the immutable
// BrushStroke. The end point is always recorded, even inside the
// coalescing distance, so the stroke lands exactly where the pointer
// lifted.
func (b *StrokeBuilder) End(p Point, pressure ...float64) BrushStroke {
	if !b.active {
		panic("tint: StrokeBuilder.End called before Start")
	}
	if p.Distance(b.last) >= minPointDistance || len(b.points) == 1 {
		b.appendPoint(p, b.normalize(pressure))
	}

	stroke := BrushStroke{
		ID:       uuid.New(),
		Points:   append([]StrokePoint(nil), b.points...),
		Color:    b.color,
		Width:    b.width,
		Opacity:  b.opacity,
		Hardness: b.hardness,
		Eraser:   b.eraser,
	}
	b.Reset()
	return stroke
}

// Preview returns a snapshot of the in-progress stroke for live
// rendering, or false when no stroke is active.
func (b *StrokeBuilder) Preview() (BrushStroke, bool) {
	if !b.active || len(b.points) == 0 {
		return BrushStroke{}, false
	}
	return BrushStroke{
		Points:   append([]StrokePoint(nil), b.points...),
		Color:    b.color,
		Width:    b.width,
		Opacity:  b.opacity,
		Hardness: b.hardness,
		Eraser:   b.eraser,
	}, true
}

// Reset discards any in-progress stroke and clears smoothing state.
func (b *StrokeBuilder) Reset() {
	b.active = false
	b.points = b.points[:0]
	b.window = b.window[:0]
}

// normalize extracts an optional raw pressure sample, clamped to [0, 1],
// defaulting to neutral.
func (b *StrokeBuilder) normalize(pressure []float64) float64 {
	if len(pressure) == 0 {
		return neutralPressure
	}
	return clamp01(pressure[0])
}

// appendPoint smooths the pressure sample and records the point with
// its derived modifiers.
func (b *StrokeBuilder) appendPoint(p Point, raw float64) {
	b.window = append(b.window, raw)
	if len(b.window) > pressureWindow {
		b.window = b.window[1:]
	}

	smoothed := b.smoothedPressure()
	eased := easeInOut(smoothed)

	width, opacity := 1.0, 1.0
	if b.pressureEnabled {
		width = widthScaleMin + eased*(widthScaleMax-widthScaleMin)
		opacity = opacityScaleMin + eased*(opacityScaleMax-opacityScaleMin)
	}

	b.points = append(b.points, StrokePoint{
		X:            p.X,
		Y:            p.Y,
		WidthScale:   width,
		OpacityScale: opacity,
	})
	b.last = p
}

// smoothedPressure averages the window with exponentially decaying
// weights, newest sample heaviest.
func (b *StrokeBuilder) smoothedPressure() float64 {
	weight := 1.0
	sum, total := 0.0, 0.0
	for i := len(b.window) - 1; i >= 0; i-- {
		sum += b.window[i] * weight
		total += weight
		weight *= pressureSmoothing
	}
	if total == 0 {
		return neutralPressure
	}
	return sum / total
}

// easeInOut maps smoothed pressure through a quadratic ease-in-out
// curve so the perceptual width/opacity response feels natural:
// quadratic ease-in below 0.5, quadratic ease-out above.
func easeInOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	u := 1 - t
	return 1 - 2*u*u
}
