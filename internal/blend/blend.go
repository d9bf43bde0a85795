// Package blend implements the compositing operators used by the layer
// compositor.
//
// All operations work on straight (non-premultiplied) RGBA bytes in the
// range 0-255, matching the Pixmap storage format. Only the three modes
// the coloring pipeline actually composites with are implemented:
// source-over for paint, destination-out for erasing, and multiply for
// settling fills underneath the line art.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode represents a compositing operation.
type Mode uint8

const (
	// SourceOver is the default alpha blending mode (S + D*(1-Sa)).
	SourceOver Mode = iota
	// DestinationOut keeps destination where source is transparent
	// (D*(1-Sa)); the eraser mode.
	DestinationOut
	// Multiply darkens the destination by the source (S*D), then
	// alpha-composites the result over the destination.
	Multiply
)

// Func is the signature for blend operations. Source and destination are
// straight-alpha RGBA bytes; the result is the composited pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da uint8) (r, g, b, a uint8)

// ForMode returns the blend function for the given mode.
// Returns sourceOver for unknown modes.
func ForMode(mode Mode) Func {
	switch mode {
	case SourceOver:
		return sourceOver
	case DestinationOut:
		return destinationOut
	case Multiply:
		return multiply
	default:
		return sourceOver
	}
}

// mulDiv255 computes a*b/255 with rounding.
func mulDiv255(a, b uint32) uint32 {
	t := a*b + 128
	return (t + (t >> 8)) >> 8
}

// sourceOver blends source over destination using alpha compositing.
func sourceOver(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	if sa == 255 || da == 0 {
		return sr, sg, sb, sa
	}
	if sa == 0 {
		return dr, dg, db, da
	}

	srcA := uint32(sa)
	dstA := mulDiv255(uint32(da), 255-srcA)
	outA := srcA + dstA
	if outA == 0 {
		return 0, 0, 0, 0
	}

	r := (uint32(sr)*srcA + uint32(dr)*dstA) / outA
	g := (uint32(sg)*srcA + uint32(dg)*dstA) / outA
	b := (uint32(sb)*srcA + uint32(db)*dstA) / outA
	return uint8(r), uint8(g), uint8(b), uint8(outA)
}

// destinationOut attenuates the destination by the inverse source alpha.
// Source color channels are irrelevant; only coverage erases.
func destinationOut(_, _, _, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	outA := mulDiv255(uint32(da), 255-uint32(sa))
	return dr, dg, db, uint8(outA)
}

// multiply computes the separable multiply blend channel (S*D) and
// composites it over the destination with the source alpha. Where the
// destination is transparent the source shows through unchanged, per the
// W3C separable blend definition.
func multiply(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	// Blend channel in destination space.
	br := uint8(mulDiv255(uint32(sr), uint32(dr)))
	bg := uint8(mulDiv255(uint32(sg), uint32(dg)))
	bb := uint8(mulDiv255(uint32(sb), uint32(db)))

	// Where the destination has partial coverage, mix the blended
	// channel back toward the raw source before compositing.
	if da < 255 {
		inv := 255 - uint32(da)
		br = uint8(mulDiv255(uint32(br), uint32(da)) + mulDiv255(uint32(sr), inv))
		bg = uint8(mulDiv255(uint32(bg), uint32(da)) + mulDiv255(uint32(sg), inv))
		bb = uint8(mulDiv255(uint32(bb), uint32(da)) + mulDiv255(uint32(sb), inv))
	}

	return sourceOver(br, bg, bb, sa, dr, dg, db, da)
}
