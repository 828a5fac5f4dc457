package launchpad

import "math"

// Placement says which side of the target the dragged item lands on.
type Placement uint8

const (
	PlaceBefore Placement = iota
	PlaceAfter
)

func (p Placement) String() string {
	if p == PlaceAfter {
		return "after"
	}
	return "before"
}

// Insertion is a decision to move the dragged item next to Target.
type Insertion struct {
	Target    *Node
	Placement Placement
}

// Apply splices dragged into Target's parent on the chosen side. It changes
// child order only; the backing list is untouched.
func (in Insertion) Apply(dragged *Node) {
	container := in.Target.Parent
	if in.Placement == PlaceAfter {
		container.InsertAfter(dragged, in.Target)
		return
	}
	container.InsertBefore(dragged, in.Target)
}

// An InsertionPolicy decides where a dragged item belongs given the pointer
// position and the reorderable siblings in their current order. It reads
// geometry but never mutates anything. ok is false when there is nothing to
// decide.
type InsertionPolicy interface {
	Resolve(pointer Vec2, dragged *Node, candidates []*Node, g Geometry) (in Insertion, ok bool)
}

// PolicyFor returns the insertion policy matching a list layout.
func PolicyFor(mode LayoutMode) InsertionPolicy {
	if mode == LayoutWrap {
		return WrapPolicy{}
	}
	return ScrollPolicy{}
}

// WrapPolicy serves grids whose rows wrap. The candidate whose center is
// nearest the pointer is the target; the pointer's side of that center picks
// before or after. Ties go to the earliest candidate.
type WrapPolicy struct{}

// Resolve implements InsertionPolicy.
func (WrapPolicy) Resolve(pointer Vec2, dragged *Node, candidates []*Node, g Geometry) (Insertion, bool) {
	var (
		best       *Node
		bestCenter Vec2
		bestDist   = math.Inf(1)
	)
	for _, c := range candidates {
		if c == dragged {
			continue
		}
		center := g.Bounds(c).Center()
		if d := math.Hypot(pointer.X-center.X, pointer.Y-center.Y); d < bestDist {
			best, bestCenter, bestDist = c, center, d
		}
	}
	if best == nil {
		return Insertion{}, false
	}
	if pointer.X < bestCenter.X {
		return Insertion{Target: best, Placement: PlaceBefore}, true
	}
	return Insertion{Target: best, Placement: PlaceAfter}, true
}

// ScrollPolicy serves single-column lists. Candidates are scanned top to
// bottom; the dragged item goes after the last one whose center lies above
// the pointer, or before the first candidate if none does.
type ScrollPolicy struct{}

// Resolve implements InsertionPolicy.
func (ScrollPolicy) Resolve(pointer Vec2, dragged *Node, candidates []*Node, g Geometry) (Insertion, bool) {
	var first, after *Node
	for _, c := range candidates {
		if c == dragged {
			continue
		}
		if first == nil {
			first = c
		}
		if g.Bounds(c).Center().Y >= pointer.Y {
			break
		}
		after = c
	}
	switch {
	case after != nil:
		return Insertion{Target: after, Placement: PlaceAfter}, true
	case first != nil:
		return Insertion{Target: first, Placement: PlaceBefore}, true
	default:
		return Insertion{}, false
	}
}

// FloatPosition returns where a floating item's top-left corner goes, in
// container-local coordinates, so the grab point stays under the pointer.
// The result is clamped so the item never leaves the container.
func FloatPosition(pointer, grabOffset Vec2, m Measurement) Vec2 {
	x := pointer.X - grabOffset.X - m.Container.X
	y := pointer.Y - grabOffset.Y - m.Container.Y
	return Vec2{
		X: clampRange(x, 0, m.Container.Width-m.Item.Width),
		Y: clampRange(y, 0, m.Container.Height-m.Item.Height),
	}
}

// clampRange limits v to [lo, hi]. When hi < lo (item larger than its
// container) lo wins.
func clampRange(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
