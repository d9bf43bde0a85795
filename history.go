package tint

// Snapshot is an immutable capture of both mutable layers at one point
// in edit history. Undo and redo hand snapshots back to the caller,
// which applies the layer contents directly; nothing is recomputed.
type Snapshot struct {
	Fills   []FillRegion
	Strokes []BrushStroke
}

// History records layer snapshots in a bounded ring with a cursor,
// implementing linear (non-branching) undo/redo.
//
// Recording truncates any redo tail, appends, and evicts from the
// oldest end once the depth bound is exceeded; evicted undo history is
// irrecoverably lost by design. Undo and redo only move the cursor and
// never mutate prior snapshots. The cursor always addresses a valid
// snapshot, so the reachable "no further undo" state is the oldest
// retained snapshot, not an empty history.
type History struct {
	snaps  []Snapshot
	cursor int
	max    int
}

// NewHistory creates a history bounded to maxSteps snapshots, seeded
// with an empty snapshot representing the blank canvas. maxSteps values
// below 1 are clamped to 1.
func NewHistory(maxSteps int) *History {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &History{
		snaps: []Snapshot{{}},
		max:   maxSteps,
	}
}

// Record captures the current layer contents as a new snapshot. The
// slices are copied, so callers may keep mutating their layers. After
// Record, CanRedo always reports false.
func (h *History) Record(fills []FillRegion, strokes []BrushStroke) {
	snap := Snapshot{
		Fills:   append([]FillRegion(nil), fills...),
		Strokes: append([]BrushStroke(nil), strokes...),
	}

	// Truncate the redo tail, then append.
	h.snaps = append(h.snaps[:h.cursor+1], snap)
	h.cursor++

	// Evict from the oldest end past the depth bound.
	if len(h.snaps) > h.max {
		over := len(h.snaps) - h.max
		h.snaps = append(h.snaps[:0], h.snaps[over:]...)
		h.cursor -= over
	}
}

// Undo steps the cursor back and returns the previous snapshot. Returns
// ok=false without moving when there is nothing left to undo.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.cursor--
	return h.snaps[h.cursor], true
}

// Redo steps the cursor forward and returns the next snapshot. Returns
// ok=false without moving when there is nothing to redo.
func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.cursor++
	return h.snaps[h.cursor], true
}

// CanUndo reports whether an older snapshot is available.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether an undone snapshot is available.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snaps)-1
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.snaps)
}

// Current returns the snapshot under the cursor.
func (h *History) Current() Snapshot {
	return h.snaps[h.cursor]
}

// Clear discards all history and reseeds the blank-canvas snapshot.
func (h *History) Clear() {
	h.snaps = h.snaps[:0]
	h.snaps = append(h.snaps, Snapshot{})
	h.cursor = 0
}
