package tint

import (
	"math"

	"github.com/tintbox/tint/internal/blend"
)

// previewOpacity is the factor applied to an in-progress stroke so live
// feedback reads as tentative until the gesture commits.
const previewOpacity = 0.7

// Compositor renders the fixed three-layer stack into a frame:
// background line art, then the fill layer with a multiply-style blend
// at reduced opacity so color sits underneath the ink lines, then the
// stroke layer with normal alpha blending (erasers clear within the
// stroke layer only), then an optional in-progress preview at reduced
// opacity.
//
// The render order is a deliberate invariant: a fill never visually
// overwrites a brush stroke committed before it, and fills meeting
// anti-aliased line edges do not produce seams.
//
// Render is a pure function of its inputs; the compositor owns no
// mutable state and identical inputs produce bit-identical frames.
type Compositor struct{}

// NewCompositor creates a compositor.
func NewCompositor() Compositor {
	return Compositor{}
}

// Render composites the layer stack over the background and returns the
// frame. The background is not mutated. preview may be nil.
func (Compositor) Render(background *Pixmap, fills FillLayer, strokes StrokeLayer, preview *BrushStroke) *Pixmap {
	out := background.Clone()
	w, h := out.Width(), out.Height()

	// Fill layer: regions rendered in commit order into a scratch
	// buffer, composited once with the layer's blend and opacity.
	fillBuf := NewPixmap(w, h)
	for _, region := range fills.Regions {
		renderRegion(fillBuf, region)
	}
	composite(out, fillBuf, blendMode(fills.Mode), fills.Opacity)

	// Stroke layer: paint strokes blend over, eraser strokes clear, in
	// commit order, all inside the scratch buffer so erasing never
	// touches fills or line art. An eraser preview also runs here so
	// the child sees what will disappear.
	strokeBuf := NewPixmap(w, h)
	for _, s := range strokes.Strokes {
		renderStroke(strokeBuf, s, 1.0)
	}
	if preview != nil && preview.Eraser {
		renderStroke(strokeBuf, *preview, previewOpacity)
	}
	composite(out, strokeBuf, blendMode(strokes.Mode), strokes.Opacity)

	// Paint preview: rendered last over everything.
	if preview != nil && !preview.Eraser {
		previewBuf := NewPixmap(w, h)
		renderStroke(previewBuf, *preview, 1.0)
		composite(out, previewBuf, blend.SourceOver, previewOpacity)
	}

	return out
}

// blendMode maps a layer blend mode to its compositing operator.
func blendMode(m BlendMode) blend.Mode {
	switch m {
	case BlendMultiply:
		return blend.Multiply
	case BlendClear:
		return blend.DestinationOut
	default:
		return blend.SourceOver
	}
}

// composite blends src onto dst in place with the given mode, scaling
// source alpha by opacity. Fully transparent source pixels are skipped.
func composite(dst, src *Pixmap, mode blend.Mode, opacity float64) {
	f := blend.ForMode(mode)
	opacity = clamp01(opacity)
	sd := src.Data()
	dd := dst.Data()
	for i := 0; i < len(sd); i += 4 {
		sa := sd[i+3]
		if sa == 0 {
			continue
		}
		if opacity < 1 {
			sa = uint8(float64(sa) * opacity)
			if sa == 0 {
				continue
			}
		}
		r, g, b, a := f(sd[i], sd[i+1], sd[i+2], sa, dd[i], dd[i+1], dd[i+2], dd[i+3])
		dd[i], dd[i+1], dd[i+2], dd[i+3] = r, g, b, a
	}
}

// renderRegion paints a fill region's coverage primitives into the
// layer scratch buffer. Both primitive kinds render as flat colored
// coverage; later regions blend over earlier ones.
func renderRegion(dst *Pixmap, region FillRegion) {
	cr := uint8(clamp255(region.Color.R * 255))
	cg := uint8(clamp255(region.Color.G * 255))
	cb := uint8(clamp255(region.Color.B * 255))
	ca := uint8(clamp255(region.Color.A * 255))

	data := dst.Data()
	w, h := dst.Width(), dst.Height()

	for _, s := range region.Spans {
		if s.Y < 0 || s.Y >= h {
			continue
		}
		x0, x1 := s.X0, s.X1
		if x0 < 0 {
			x0 = 0
		}
		if x1 >= w {
			x1 = w - 1
		}
		for x := x0; x <= x1; x++ {
			i := (s.Y*w + x) * 4
			r, g, b, a := blendSourceOver8(cr, cg, cb, ca, data[i], data[i+1], data[i+2], data[i+3])
			data[i], data[i+1], data[i+2], data[i+3] = r, g, b, a
		}
	}

	for _, c := range region.Circles {
		renderCircle(dst, c, region.Color, 1.0, 1.0)
	}
}

// renderCircle paints an anti-aliased disc with a hardness-controlled
// edge falloff. hardness 1.0 leaves only the half-pixel AA rim.
func renderCircle(dst *Pixmap, c Circle, color RGBA, hardness, alphaScale float64) {
	w, h := dst.Width(), dst.Height()
	r := c.Radius
	if r <= 0 {
		return
	}
	inner := r * clamp01(hardness)

	x0 := int(math.Floor(c.Center.X - r - 1))
	x1 := int(math.Ceil(c.Center.X + r + 1))
	y0 := int(math.Floor(c.Center.Y - r - 1))
	y1 := int(math.Ceil(c.Center.Y + r + 1))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= w {
		x1 = w - 1
	}
	if y1 >= h {
		y1 = h - 1
	}

	cr := uint8(clamp255(color.R * 255))
	cg := uint8(clamp255(color.G * 255))
	cb := uint8(clamp255(color.B * 255))
	baseA := clamp01(color.A * alphaScale)
	data := dst.Data()

	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - c.Center.Y
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - c.Center.X
			d := math.Sqrt(dx*dx + dy*dy)
			cov := clamp01((r - d + 0.5) / (r - inner + 0.5))
			if cov <= 0 {
				continue
			}
			sa := uint8(clamp255(cov * baseA * 255))
			if sa == 0 {
				continue
			}
			i := (y*w + x) * 4
			pr, pg, pb, pa := blendSourceOver8(cr, cg, cb, sa, data[i], data[i+1], data[i+2], data[i+3])
			data[i], data[i+1], data[i+2], data[i+3] = pr, pg, pb, pa
		}
	}
}

// renderStroke rasterizes a stroke into the stroke layer scratch
// buffer. Coverage is accumulated per pixel with a max combine so
// overlapping stamps within one stroke do not darken into beads, then
// applied in a single blend pass: source-over for paint, destination-out
// for erasers.
func renderStroke(dst *Pixmap, stroke BrushStroke, alphaScale float64) {
	if len(stroke.Points) == 0 {
		return
	}

	w, h := dst.Width(), dst.Height()
	bb := stroke.BoundingBox().Intersect(canvasRect(dst))
	if bb.Empty() {
		return
	}

	bx0 := int(math.Floor(bb.Min.X))
	by0 := int(math.Floor(bb.Min.Y))
	bx1 := int(math.Ceil(bb.Max.X))
	by1 := int(math.Ceil(bb.Max.Y))
	if bx1 > w {
		bx1 = w
	}
	if by1 > h {
		by1 = h
	}
	bw := bx1 - bx0
	bh := by1 - by0
	if bw <= 0 || bh <= 0 {
		return
	}

	cov := make([]float64, bw*bh)
	stamp := func(cx, cy, radius, alpha float64) {
		stampCoverage(cov, bx0, by0, bw, bh, cx, cy, radius, stroke.Hardness, alpha)
	}

	// Stamp every recorded point, then interpolated stamps along each
	// segment at quarter-radius spacing.
	for i, p := range stroke.Points {
		radius := stroke.Width * p.WidthScale / 2
		alpha := clamp01(stroke.Opacity * p.OpacityScale * alphaScale)
		stamp(p.X, p.Y, radius, alpha)

		if i+1 >= len(stroke.Points) {
			break
		}
		q := stroke.Points[i+1]
		dist := Pt(p.X, p.Y).Distance(Pt(q.X, q.Y))
		spacing := math.Max(0.75, radius/4)
		steps := int(dist / spacing)
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps+1)
			r2 := stroke.Width * (p.WidthScale + (q.WidthScale-p.WidthScale)*t) / 2
			a2 := clamp01(stroke.Opacity * (p.OpacityScale + (q.OpacityScale-p.OpacityScale)*t) * alphaScale)
			stamp(p.X+(q.X-p.X)*t, p.Y+(q.Y-p.Y)*t, r2, a2)
		}
	}

	cr := uint8(clamp255(stroke.Color.R * 255))
	cg := uint8(clamp255(stroke.Color.G * 255))
	cb := uint8(clamp255(stroke.Color.B * 255))
	data := dst.Data()
	eraser := blend.ForMode(blend.DestinationOut)

	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			c := cov[y*bw+x]
			if c <= 0 {
				continue
			}
			sa := uint8(clamp255(c * 255))
			if sa == 0 {
				continue
			}
			i := ((y+by0)*w + (x + bx0)) * 4
			var pr, pg, pb, pa uint8
			if stroke.Eraser {
				pr, pg, pb, pa = eraser(0, 0, 0, sa, data[i], data[i+1], data[i+2], data[i+3])
			} else {
				pr, pg, pb, pa = blendSourceOver8(cr, cg, cb, sa, data[i], data[i+1], data[i+2], data[i+3])
			}
			data[i], data[i+1], data[i+2], data[i+3] = pr, pg, pb, pa
		}
	}
}

// stampCoverage adds one brush stamp to the coverage accumulator with a
// max combine.
func stampCoverage(cov []float64, bx0, by0, bw, bh int, cx, cy, radius, hardness, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	inner := radius * clamp01(hardness)

	x0 := int(math.Floor(cx-radius-1)) - bx0
	x1 := int(math.Ceil(cx+radius+1)) - bx0
	y0 := int(math.Floor(cy-radius-1)) - by0
	y1 := int(math.Ceil(cy+radius+1)) - by0
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= bw {
		x1 = bw - 1
	}
	if y1 >= bh {
		y1 = bh - 1
	}

	for y := y0; y <= y1; y++ {
		dy := float64(y+by0) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x+bx0) + 0.5 - cx
			d := math.Sqrt(dx*dx + dy*dy)
			c := clamp01((radius-d+0.5)/(radius-inner+0.5)) * alpha
			if c > cov[y*bw+x] {
				cov[y*bw+x] = c
			}
		}
	}
}

// blendSourceOver8 is a local shortcut for the source-over operator.
var blendSourceOver8 = blend.ForMode(blend.SourceOver)
