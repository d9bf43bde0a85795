package tint

import (
	"io"
	"log/slog"
)

// ToolSelection identifies which tool the next gesture drives.
type ToolSelection int

const (
	// ToolBrush paints pressure-modulated strokes.
	ToolBrush ToolSelection = iota
	// ToolFill flood-fills the region under the pointer.
	ToolFill
	// ToolEraser erases stroke-layer content.
	ToolEraser
)

// String returns the tool name.
func (t ToolSelection) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolFill:
		return "fill"
	case ToolEraser:
		return "eraser"
	default:
		return "unknown"
	}
}

// PointerPhase is the lifecycle phase of a pointer sample.
type PointerPhase int

const (
	// PhaseBegin starts a gesture.
	PhaseBegin PointerPhase = iota
	// PhaseMove continues a gesture.
	PhaseMove
	// PhaseEnd finishes a gesture at the sample position.
	PhaseEnd
	// PhaseCancel finishes a gesture at the last known position; the
	// engine treats it as End so history stays consistent.
	PhaseCancel
)

// PointerSample is one element of the typed pointer stream the shell
// delivers at device-native gesture cadence.
type PointerSample struct {
	Phase       PointerPhase
	X, Y        float64
	Pressure    float64 // raw pressure, meaningful only if HasPressure
	HasPressure bool
	TimestampMs int64
}

// Session is the engine's boundary with the UI shell: it routes pointer
// input to the brush, fill, or eraser based on the current tool,
// serializes gestures (at most one active stroke, fills synchronous),
// snapshots history on gesture end, and renders composited frames.
//
// A session is single-threaded by design: every operation completes
// inside the call that delivers the input event.
type Session struct {
	caps       Capabilities
	background *Pixmap

	fillLayer   FillLayer
	strokeLayer StrokeLayer

	engine     *FillEngine
	builder    *StrokeBuilder
	compositor Compositor
	history    *History

	tool         ToolSelection
	color        RGBA
	brushWidth   float64
	brushOpacity float64
	hardness     float64

	gestureActive bool
	lastPoint     Point
}

// NewSession creates a session over a background line-art pixmap. The
// background is borrowed read-only for the session's lifetime. Without
// options the session detects capabilities itself.
func NewSession(background *Pixmap, opts ...SessionOption) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}

	caps := o.caps
	if !o.capsSet {
		caps = DetectCapabilities()
	}
	fillOpts := o.fillOpts
	if !o.fillOptsSet {
		fillOpts = DefaultFillOptions(caps)
	}
	historyDepth := o.historyDepth
	if historyDepth <= 0 {
		historyDepth = caps.MaxHistorySteps
	}

	s := &Session{
		caps:         caps,
		background:   background,
		fillLayer:    NewFillLayer(),
		strokeLayer:  NewStrokeLayer(),
		engine:       NewFillEngine(fillOpts),
		builder:      NewStrokeBuilder(caps),
		compositor:   NewCompositor(),
		history:      NewHistory(historyDepth),
		tool:         ToolBrush,
		color:        Black,
		brushOpacity: 1.0,
		hardness:     0.7,
	}
	s.brushWidth = caps.ClampBrushWidth(caps.BrushSize.Min + (caps.BrushSize.Max-caps.BrushSize.Min)/4)
	return s
}

// Capabilities returns the session's immutable device configuration.
func (s *Session) Capabilities() Capabilities {
	return s.caps
}

// SetTool selects the tool for subsequent gestures. Ignored while a
// gesture is active; the shell supplies tool selection before each
// gesture begins.
func (s *Session) SetTool(tool ToolSelection) {
	if s.gestureActive {
		return
	}
	s.tool = tool
}

// Tool returns the current tool selection.
func (s *Session) Tool() ToolSelection {
	return s.tool
}

// SetColor selects the paint color for fills and brush strokes.
func (s *Session) SetColor(c RGBA) {
	s.color = c
}

// SetBrushWidth sets the base brush width, clamped to the tier's range.
func (s *Session) SetBrushWidth(width float64) {
	s.brushWidth = s.caps.ClampBrushWidth(width)
}

// SetBrushOpacity sets the base brush opacity in [0, 1].
func (s *Session) SetBrushOpacity(opacity float64) {
	s.brushOpacity = clamp01(opacity)
}

// SetBrushHardness sets the brush edge hardness in [0, 1].
func (s *Session) SetBrushHardness(hardness float64) {
	s.hardness = clamp01(hardness)
}

// HandlePointer feeds one pointer sample through the tool dispatcher.
// Out-of-bounds samples are recovered locally as no-ops; they are never
// surfaced as errors during a gesture.
func (s *Session) HandlePointer(sample PointerSample) {
	switch s.tool {
	case ToolFill:
		s.handleFill(sample)
	default:
		s.handleStroke(sample)
	}
}

// handleFill runs a synchronous fill on gesture begin. Move samples are
// ignored; a fill either completes exactly or falls back approximately
// within its budget, so there is nothing to track mid-gesture.
func (s *Session) handleFill(sample PointerSample) {
	if sample.Phase != PhaseBegin {
		return
	}

	result := s.engine.Fill(s.background, int(sample.X), int(sample.Y), s.color)
	if !result.OK {
		// Out-of-bounds seed: recovered as a no-op, already logged.
		return
	}
	if result.Region.Empty() {
		// Idempotent no-op fill; nothing to commit.
		return
	}

	s.fillLayer.Append(result.Region)
	s.history.Record(s.fillLayer.Regions, s.strokeLayer.Strokes)
}

// handleStroke drives the stroke builder through a brush or eraser
// gesture and commits the finalized stroke on pointer up.
func (s *Session) handleStroke(sample PointerSample) {
	p := Pt(sample.X, sample.Y)
	inBounds := s.background.InBounds(int(sample.X), int(sample.Y))

	switch sample.Phase {
	case PhaseBegin:
		if s.gestureActive {
			// The dispatcher contract forbids overlapping gestures;
			// recover by finishing the previous one where it stood.
			s.finishStroke(s.lastPoint, sample)
		}
		if !inBounds {
			Logger().Warn("stroke began out of bounds",
				slog.Float64("x", sample.X), slog.Float64("y", sample.Y))
			return
		}
		s.builder.SetEraser(s.tool == ToolEraser)
		s.builder.SetBrush(s.color, s.brushWidth, s.brushOpacity, s.hardness)
		s.gestureActive = true
		s.lastPoint = p
		s.startOrAdd(true, p, sample)

	case PhaseMove:
		if !s.gestureActive {
			return
		}
		if !inBounds {
			// Recovered locally; the stroke resumes if the pointer
			// comes back.
			return
		}
		s.lastPoint = p
		s.startOrAdd(false, p, sample)

	case PhaseEnd:
		if !s.gestureActive {
			return
		}
		end := p
		if !inBounds {
			end = s.lastPoint
		}
		s.finishStroke(end, sample)

	case PhaseCancel:
		if !s.gestureActive {
			return
		}
		// Cancel ends the stroke at the last known point rather than
		// abandoning the builder silently.
		s.finishStroke(s.lastPoint, sample)
	}
}

// startOrAdd forwards a sample to the builder with or without pressure.
func (s *Session) startOrAdd(start bool, p Point, sample PointerSample) {
	if start {
		if sample.HasPressure {
			s.builder.Start(p, sample.Pressure)
		} else {
			s.builder.Start(p)
		}
		return
	}
	if sample.HasPressure {
		s.builder.AddPoint(p, sample.Pressure)
	} else {
		s.builder.AddPoint(p)
	}
}

// finishStroke finalizes the active stroke, commits it to the stroke
// layer, and snapshots history.
func (s *Session) finishStroke(end Point, sample PointerSample) {
	var stroke BrushStroke
	if sample.HasPressure && sample.Phase == PhaseEnd {
		stroke = s.builder.End(end, sample.Pressure)
	} else {
		stroke = s.builder.End(end)
	}
	s.gestureActive = false

	if len(stroke.Points) == 0 {
		return
	}
	s.strokeLayer.Append(stroke)
	s.history.Record(s.fillLayer.Regions, s.strokeLayer.Strokes)
}

// Undo steps back one snapshot and applies it to the layers. Returns
// false when there is nothing to undo.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.applySnapshot(snap)
	return true
}

// Redo steps forward one snapshot and applies it to the layers. Returns
// false when there is nothing to redo.
func (s *Session) Redo() bool {
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.applySnapshot(snap)
	return true
}

// CanUndo reports whether Undo would succeed, for UI affordances.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would succeed, for UI affordances.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Clear wipes both mutable layers and records the cleared state as a
// new snapshot, so clearing itself is undoable.
func (s *Session) Clear() {
	s.fillLayer.Replace(nil)
	s.strokeLayer.Replace(nil)
	s.history.Record(nil, nil)
}

// applySnapshot replaces the layer contents with a historical state.
func (s *Session) applySnapshot(snap Snapshot) {
	s.fillLayer.Replace(snap.Fills)
	s.strokeLayer.Replace(snap.Strokes)
}

// Render composites the current layer stack, including the live preview
// of any in-progress stroke, and returns the frame.
func (s *Session) Render() *Pixmap {
	var preview *BrushStroke
	if pv, ok := s.builder.Preview(); ok {
		preview = &pv
	}
	return s.compositor.Render(s.background, s.fillLayer, s.strokeLayer, preview)
}

// Export writes the current composited frame to w as PNG. This is the
// engine's only filesystem-adjacent boundary; the shell owns where the
// bytes go.
func (s *Session) Export(w io.Writer) error {
	return s.Render().EncodePNG(w)
}
