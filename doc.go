// Package tint implements an interactive raster coloring engine for
// line-art images.
//
// # Overview
//
// tint is a Pure Go engine for touch-driven coloring apps: it turns
// pointer input into pressure-modulated brush strokes, flood-fills
// enclosed regions of anti-aliased line art within a hard time budget,
// composites the result over the original artwork, and keeps a bounded
// undo/redo history. The engine is deliberately synchronous and
// single-threaded: every operation completes inside the input event that
// triggered it, and the flood fill's internal time budget is the only
// admission control needed to stay under a 16ms frame.
//
// # Quick Start
//
//	import "github.com/tintbox/tint"
//
//	art := tint.FromImage(lineArt) // background line art, read-only
//	caps := tint.DetectCapabilities()
//	s := tint.NewSession(art, tint.WithCapabilities(caps))
//
//	// Fill the region under a tap.
//	s.SetTool(tint.ToolFill)
//	s.SetColor(tint.Hex("#FF5733"))
//	s.HandlePointer(tint.PointerSample{Phase: tint.PhaseBegin, X: 120, Y: 80})
//
//	// Render and save the composited frame.
//	frame := s.Render()
//	frame.SavePNG("colored.png")
//
// # Architecture
//
// The engine is organized into:
//   - Public API: Session, FillEngine, StrokeBuilder, Compositor, History
//   - Value types: Pixmap, RGBA, Point, Rect, FillRegion, BrushStroke
//   - Internal: blend (byte-level compositing operators)
//
// The surrounding UI shell owns gesture recognition, tool palettes and
// persistence; it feeds PointerSample values in and displays the
// composited Pixmap out.
//
// # Coordinate System
//
// Standard raster coordinates: origin (0,0) at top-left, X increases
// right, Y increases down. All positions are in background-pixel units.
//
// # Performance
//
// Engine parameters (history depth, brush size range, pressure response)
// scale with a device tier detected once per session; see
// DetectCapabilities. The flood fill degrades to a geometric
// approximation rather than blowing its budget on low-end hardware.
package tint

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
