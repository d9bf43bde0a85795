package tint

// BlendMode selects how a layer is composited onto the content below it.
type BlendMode int

const (
	// BlendNormal is standard source-over alpha blending.
	BlendNormal BlendMode = iota
	// BlendMultiply darkens the content below; fills use it so color
	// sits visually underneath the ink lines.
	BlendMultiply
	// BlendClear removes coverage below; eraser strokes use it.
	BlendClear
)

// fillLayerOpacity is the fixed opacity fills are composited at, so line
// art stays legible through the color.
const fillLayerOpacity = 0.8

// FillLayer is the ordered, append-only sequence of committed fill
// regions together with the blend parameters the compositor applies.
type FillLayer struct {
	Mode    BlendMode
	Opacity float64
	Regions []FillRegion
}

// NewFillLayer creates an empty fill layer with the standard multiply
// blend at reduced opacity.
func NewFillLayer() FillLayer {
	return FillLayer{Mode: BlendMultiply, Opacity: fillLayerOpacity}
}

// Append adds a committed fill region to the top of the layer.
func (l *FillLayer) Append(region FillRegion) {
	l.Regions = append(l.Regions, region)
}

// Replace swaps the layer contents for a historical state. The slice is
// copied so the layer never aliases a snapshot.
func (l *FillLayer) Replace(regions []FillRegion) {
	l.Regions = append(l.Regions[:0:0], regions...)
}

// StrokeLayer is the ordered, append-only sequence of committed brush
// and eraser strokes.
type StrokeLayer struct {
	Mode    BlendMode
	Opacity float64
	Strokes []BrushStroke
}

// NewStrokeLayer creates an empty stroke layer with normal blending at
// full opacity.
func NewStrokeLayer() StrokeLayer {
	return StrokeLayer{Mode: BlendNormal, Opacity: 1.0}
}

// Append adds a finalized stroke to the top of the layer.
func (l *StrokeLayer) Append(stroke BrushStroke) {
	l.Strokes = append(l.Strokes, stroke)
}

// Replace swaps the layer contents for a historical state. The slice is
// copied so the layer never aliases a snapshot.
func (l *StrokeLayer) Replace(strokes []BrushStroke) {
	l.Strokes = append(l.Strokes[:0:0], strokes...)
}
