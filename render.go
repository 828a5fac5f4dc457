package launchpad

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// labelInset is the offset of a node label from the node's top-left corner.
const labelInset = 6

// whitePixel is a 1x1 white image scaled and tinted to draw every filled box.
var whitePixel *ebiten.Image

func fillImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// geoM converts an affine matrix [a, b, c, d, tx, ty] to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// drawNode paints n and its subtree in ZIndex order. World transforms must
// be current (see Scene.refresh).
func (s *Scene) drawNode(dst *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}

	if n.Fill.A > 0 && n.Width > 0 && n.Height > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Concat(geoM(n.worldTransform))
		// Premultiply at submission time.
		a := n.Fill.A * n.worldAlpha
		op.ColorScale.Scale(float32(n.Fill.R*a), float32(n.Fill.G*a), float32(n.Fill.B*a), float32(a))
		dst.DrawImage(fillImage(), &op)
	}

	if n.Label != "" {
		x, y := n.LocalToWorld(labelInset, labelInset)
		ebitenutil.DebugPrintAt(dst, n.Label, int(x), int(y))
	}

	for _, child := range sortedChildren(n) {
		s.drawNode(dst, child)
	}
}

// sortedChildren returns n's children in paint order. The sort is stable, so
// siblings with equal ZIndex keep their tree order.
func sortedChildren(n *Node) []*Node {
	if len(n.children) < 2 {
		return n.children
	}
	if !n.childrenSorted || len(n.sortedChildren) != len(n.children) {
		rebuildSortedChildren(n)
		n.childrenSorted = true
	}
	return n.sortedChildren
}

// rebuildSortedChildren insertion-sorts a copy of the children by ZIndex.
// Child counts are small and usually already ordered.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
}
