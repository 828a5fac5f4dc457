package launchpad

import "math"

// DragSession holds the state of one press-move-release gesture on a sortable
// item. A session exists from the press until the release or cancel that
// ends it, and belongs to exactly one Reorder controller.
type DragSession struct {
	Item      *Node
	PointerID int

	// PointerStart is the press position in scene coordinates.
	PointerStart Vec2
	// GrabOffset is the press position relative to the item's top-left, kept
	// constant so the same spot on the item stays under the pointer.
	GrabOffset Vec2
	// RightHalf is set when the press landed right of the item's center; it
	// flips the direction the item tilts.
	RightHalf bool
	// Crossed becomes true once the pointer has moved past the threshold.
	Crossed bool
	// LastPointerY is the pointer Y of the previous move.
	LastPointerY float64
	// Rotation is the accumulated tilt in degrees.
	Rotation float64
	// Mode is the layout mode seen on the latest move.
	Mode LayoutMode

	floating      bool
	savedZ        int
	originalOrder []*Node
	listeners     []CallbackHandle
}

func newDragSession(item *Node, pointerID int, pointer Vec2, m Measurement, mode LayoutMode) *DragSession {
	grab := pointer.Sub(m.Item.Origin())
	return &DragSession{
		Item:         item,
		PointerID:    pointerID,
		PointerStart: pointer,
		GrabOffset:   grab,
		RightHalf:    grab.X > m.Item.Width/2,
		LastPointerY: pointer.Y,
		Mode:         mode,
	}
}

// pastThreshold reports whether p is more than t away from the press on
// either axis.
func (d *DragSession) pastThreshold(p Vec2, t float64) bool {
	return math.Abs(p.X-d.PointerStart.X) > t || math.Abs(p.Y-d.PointerStart.Y) > t
}

// steer accumulates tilt from the vertical movement since the last move and
// returns the clamped rotation in degrees.
func (d *DragSession) steer(y, sensitivity, limit float64) float64 {
	dy := y - d.LastPointerY
	if !d.RightHalf {
		dy = -dy
	}
	d.Rotation = clampRange(d.Rotation+dy*sensitivity, -limit, limit)
	return d.Rotation
}

// detach removes every scene listener registered for the session. Safe to
// call more than once.
func (d *DragSession) detach() {
	for _, h := range d.listeners {
		h.Remove()
	}
	d.listeners = nil
}
