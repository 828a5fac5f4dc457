package launchpad

// Geometry reports the layout box of a node in scene coordinates. *Scene
// implements it; tests substitute fixed measurements.
type Geometry interface {
	Bounds(n *Node) Rect
}

// GeometryFunc adapts a plain function to Geometry.
type GeometryFunc func(n *Node) Rect

// Bounds calls f(n).
func (f GeometryFunc) Bounds(n *Node) Rect {
	return f(n)
}

// Measurement is a snapshot of a dragged item's box and its container's box,
// both in the same coordinate space.
type Measurement struct {
	Item      Rect
	Container Rect
}

// Measure snapshots item and its parent. Measurements go stale as soon as the
// tree changes, so callers take a fresh one every frame.
//
// Panics if item has no parent.
func Measure(g Geometry, item *Node) Measurement {
	if item.Parent == nil {
		panic("launchpad: cannot measure a node with no parent container")
	}
	return Measurement{
		Item:      g.Bounds(item),
		Container: g.Bounds(item.Parent),
	}
}
