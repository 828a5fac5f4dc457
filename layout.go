package launchpad

// FlowLayout places a container's in-flow children. Children that are
// hidden or positioned (see Node.SetPositioned) are skipped. The container's
// Width is fixed by its owner; its Height always follows the content.
type FlowLayout struct {
	Mode    LayoutMode
	Gap     float64
	Padding float64
}

// SetFlow attaches a flow layout to the node, replacing any previous one.
func (n *Node) SetFlow(f *FlowLayout) {
	n.Flow = f
	n.MarkLayoutDirty()
}

// SetLayoutMode switches the flow mode of a container. No-op without a flow.
func (n *Node) SetLayoutMode(mode LayoutMode) {
	if n.Flow == nil || n.Flow.Mode == mode {
		return
	}
	n.Flow.Mode = mode
	n.MarkLayoutDirty()
}

// SetPositioned takes the node out of its parent's flow (true) or returns it
// to the flow (false). A positioned node keeps whatever X/Y it is given.
func (n *Node) SetPositioned(p bool) {
	if n.positioned == p {
		return
	}
	n.positioned = p
	if n.Parent != nil {
		n.Parent.MarkLayoutDirty()
	}
}

// Positioned reports whether the node is out of flow.
func (n *Node) Positioned() bool {
	return n.positioned
}

// MarkLayoutDirty schedules a reflow of this node's children and tells every
// ancestor that a descendant needs one.
func (n *Node) MarkLayoutDirty() {
	n.layoutDirty = true
	if n.Parent != nil {
		n.Parent.markChildLayoutDirty()
	}
}

// markChildLayoutDirty records that a descendant of n needs layout.
func (n *Node) markChildLayoutDirty() {
	for p := n; p != nil && !p.childLayoutDirty; p = p.Parent {
		p.childLayoutDirty = true
	}
}

// reflow lays out every dirty flow container under n, top-down. A container
// whose height changes dirties its own parent's flow, so the walk repeats
// from the top until the tree is clean.
func reflow(root *Node) {
	for i := 0; i < 8 && (root.layoutDirty || root.childLayoutDirty); i++ {
		reflowNode(root)
	}
}

func reflowNode(n *Node) {
	if n.layoutDirty {
		n.layoutDirty = false
		if n.Flow != nil {
			flowChildren(n)
		}
	}
	if !n.childLayoutDirty {
		return
	}
	n.childLayoutDirty = false
	for _, child := range n.children {
		if child.layoutDirty || child.childLayoutDirty {
			reflowNode(child)
		}
	}
}

// flowChildren places in-flow children of n and resizes n to its content.
func flowChildren(n *Node) {
	f := n.Flow
	pad := f.Padding
	x, y := pad, pad
	rowH := 0.0
	placed := 0

	for _, c := range n.children {
		if !c.Visible || c.positioned {
			continue
		}
		switch f.Mode {
		case LayoutWrap:
			if placed > 0 && x+c.Width > n.Width-pad {
				x = pad
				y += rowH + f.Gap
				rowH = 0
			}
			c.SetPosition(x, y)
			x += c.Width + f.Gap
			if c.Height > rowH {
				rowH = c.Height
			}
		default:
			c.SetPosition(pad, y)
			y += c.Height + f.Gap
		}
		placed++
	}

	var h float64
	switch {
	case placed == 0:
		h = 2 * pad
	case f.Mode == LayoutWrap:
		h = y + rowH + pad
	default:
		h = y - f.Gap + pad
	}
	if h != n.Height {
		n.Height = h
		n.transformDirty = true
		if n.Parent != nil {
			n.Parent.MarkLayoutDirty()
		}
	}
}

// Bounds returns the untransformed layout box of n in scene coordinates,
// after running any pending layout. Rotation and scale are not included,
// matching how a layout engine reports an element's offset box.
func (s *Scene) Bounds(n *Node) Rect {
	top := n
	for top.Parent != nil {
		top = top.Parent
	}
	reflow(top)
	var ox, oy float64
	for p := n; p != nil; p = p.Parent {
		ox += p.X
		oy += p.Y
	}
	return Rect{X: ox, Y: oy, Width: n.Width, Height: n.Height}
}
