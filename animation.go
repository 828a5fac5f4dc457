package launchpad

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one with a constructor (TweenPosition, TweenAlpha, TweenFill,
// TweenRotation) and either call Update(dt) yourself or hand it to
// Scene.AddTween. The group writes values and marks the node dirty. If the
// target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	// OnDone runs once, on the frame the group finishes.
	OnDone func()
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}

	if g.target != nil {
		g.target.MarkDirty()
	}

	g.Done = allDone
	if g.Done && g.OnDone != nil {
		g.OnDone()
	}
}

// Stop ends the group where it is without writing further values.
func (g *TweenGroup) Stop() {
	g.Done = true
}

func (g *TweenGroup) add(from, to float64, duration float32, fn ease.TweenFunc, field *float64) {
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition animates node.X and node.Y. Only meaningful for positioned
// nodes; flow layout overwrites the position of in-flow children.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(node.X, toX, duration, fn, &node.X)
	g.add(node.Y, toY, duration, fn, &node.Y)
	return g
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(node.Alpha, to, duration, fn, &node.Alpha)
	return g
}

// TweenFill animates the four components of node.Fill.
func TweenFill(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(node.Fill.R, to.R, duration, fn, &node.Fill.R)
	g.add(node.Fill.G, to.G, duration, fn, &node.Fill.G)
	g.add(node.Fill.B, to.B, duration, fn, &node.Fill.B)
	g.add(node.Fill.A, to.A, duration, fn, &node.Fill.A)
	return g
}

// TweenRotation animates node.Rotation (radians).
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(node.Rotation, to, duration, fn, &node.Rotation)
	return g
}

// AddTween registers g with the scene, which advances it every Update and
// drops it once done.
func (s *Scene) AddTween(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	s.tweens = append(s.tweens, g)
}

// updateTweens advances registered tweens and compacts finished ones out.
func (s *Scene) updateTweens(dt float64) {
	if len(s.tweens) == 0 {
		return
	}
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}
