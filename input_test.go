package launchpad

import (
	"math"
	"testing"
)

// newBoxScene returns a scene with one 100x100 box at (x, y).
func newBoxScene(x, y float64) (*Scene, *Node) {
	s := NewScene()
	b := NewBox("b", 100, 100, ColorWhite)
	b.SetPosition(x, y)
	s.Root().AddChild(b)
	return s, b
}

// press, move and release drive pointer 0 directly.
func press(s *Scene, x, y float64)   { s.processPointer(0, x, y, true, MouseButtonLeft, 0) }
func move(s *Scene, x, y float64)    { s.processPointer(0, x, y, true, MouseButtonLeft, 0) }
func release(s *Scene, x, y float64) { s.processPointer(0, x, y, false, MouseButtonLeft, 0) }

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNodeContainsLocal(t *testing.T) {
	box := NewBox("b", 40, 20, ColorWhite)
	if !nodeContainsLocal(box, 39, 19) {
		t.Error("point inside the box should hit")
	}
	if nodeContainsLocal(box, 41, 10) {
		t.Error("point right of the box should miss")
	}

	empty := NewContainer("c")
	if nodeContainsLocal(empty, 0, 0) {
		t.Error("a 0x0 node should never hit")
	}

	box.HitShape = HitCircle{CenterX: 0, CenterY: 0, Radius: 5}
	if nodeContainsLocal(box, 30, 10) {
		t.Error("HitShape should replace the box")
	}
}

// --- Hit testing ---

func TestHitTestTopmostNode(t *testing.T) {
	s := NewScene()
	a := NewBox("a", 100, 100, ColorWhite)
	b := NewBox("b", 100, 100, ColorWhite)
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	if got := s.hitTest(50, 50); got != b {
		t.Errorf("hitTest = %v, want b (later sibling)", got)
	}
	a.SetZIndex(1)
	if got := s.hitTest(50, 50); got != a {
		t.Errorf("hitTest = %v, want a after raising its ZIndex", got)
	}
}

func TestHitTestChildOverParent(t *testing.T) {
	s, card := newBoxScene(0, 0)
	strip := NewBox("strip", 100, 20, ColorWhite)
	strip.SetPosition(0, 80)
	card.AddChild(strip)

	if got := s.hitTest(50, 90); got != strip {
		t.Errorf("hitTest = %v, want strip", got)
	}
	if got := s.hitTest(50, 10); got != card {
		t.Errorf("hitTest = %v, want card", got)
	}
}

func TestHitTestSkipsHiddenAndInert(t *testing.T) {
	s, b := newBoxScene(0, 0)
	b.SetVisible(false)
	if s.hitTest(50, 50) != nil {
		t.Error("invisible node should not be hit")
	}
	b.SetVisible(true)
	b.Interactable = false
	if s.hitTest(50, 50) != nil {
		t.Error("non-interactable node should not be hit")
	}
}

func TestHitTestMiss(t *testing.T) {
	s, _ := newBoxScene(0, 0)
	if got := s.hitTest(150, 150); got != nil {
		t.Errorf("hitTest = %v, want nil", got)
	}
}

func TestHitTestRotatedNode(t *testing.T) {
	s, b := newBoxScene(100, 100)
	b.SetPivot(50, 50)
	b.SetRotation(math.Pi / 4)

	// The corner of the unrotated box falls outside the rotated diamond.
	if s.hitTest(102, 102) != nil {
		t.Error("corner of the unrotated box should miss after rotation")
	}
	if s.hitTest(150, 150) != b {
		t.Error("center should still hit")
	}
}

func TestHitTestFollowsLayout(t *testing.T) {
	s := NewScene()
	list := NewContainer("list")
	list.Width = 100
	list.Interactable = true
	list.SetFlow(&FlowLayout{Mode: LayoutScroll})
	s.Root().AddChild(list)
	a := NewBox("a", 100, 30, ColorWhite)
	b := NewBox("b", 100, 30, ColorWhite)
	list.AddChild(a)
	list.AddChild(b)

	if got := s.hitTest(50, 45); got != b {
		t.Errorf("hitTest = %v, want b in the second slot", got)
	}
}

// --- Dispatch ---

func TestCallbackOrderSceneThenNode(t *testing.T) {
	s, b := newBoxScene(0, 0)

	var order []string
	s.OnPointerDown(func(PointerContext) { order = append(order, "scene") })
	b.OnPointerDown = func(PointerContext) { order = append(order, "node") }

	press(s, 50, 50)
	if len(order) != 2 || order[0] != "scene" || order[1] != "node" {
		t.Errorf("order = %v, want [scene node]", order)
	}
}

func TestPointerDownBubbles(t *testing.T) {
	s, card := newBoxScene(0, 0)
	inner := NewBox("inner", 20, 20, ColorWhite)
	card.AddChild(inner)

	var got []*Node
	card.OnPointerDown = func(ctx PointerContext) { got = append(got, ctx.Node) }
	inner.OnPointerDown = func(ctx PointerContext) { got = append(got, ctx.Node) }

	press(s, 10, 10)
	if len(got) != 2 {
		t.Fatalf("handlers fired %d times, want 2", len(got))
	}
	for i, n := range got {
		if n != inner {
			t.Errorf("call %d ctx.Node = %v, want the hit node", i, n)
		}
	}
}

func TestReleaseOrder(t *testing.T) {
	s, b := newBoxScene(0, 0)
	s.SetDragDeadZone(1)

	var order []string
	b.OnDragEnd = func(DragContext) { order = append(order, "dragend") }
	b.OnPointerUp = func(PointerContext) { order = append(order, "up") }
	b.OnClick = func(ClickContext) { order = append(order, "click") }

	press(s, 10, 10)
	move(s, 20, 20)
	release(s, 20, 20)

	want := []string{"dragend", "up", "click"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestClickRequiresSameNode(t *testing.T) {
	s := NewScene()
	a := NewBox("a", 100, 100, ColorWhite)
	b := NewBox("b", 100, 100, ColorWhite)
	b.SetPosition(200, 0)
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	clicks := 0
	s.OnClick(func(ClickContext) { clicks++ })

	press(s, 50, 50)
	release(s, 250, 50)
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0 when released over another node", clicks)
	}

	press(s, 50, 50)
	release(s, 60, 60)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestClickBubblesToAncestor(t *testing.T) {
	s, card := newBoxScene(0, 0)
	btn := NewBox("btn", 20, 20, ColorWhite)
	card.AddChild(btn)

	var from *Node
	card.OnClick = func(ctx ClickContext) { from = ctx.Node }

	press(s, 5, 5)
	release(s, 5, 5)
	if from != btn {
		t.Errorf("card click ctx.Node = %v, want btn", from)
	}
}

func TestMoveCarriesPressedState(t *testing.T) {
	s, _ := newBoxScene(0, 0)

	var pressed []bool
	s.OnPointerMove(func(ctx PointerContext) { pressed = append(pressed, ctx.Pressed) })

	s.processPointer(0, 10, 10, false, MouseButtonLeft, 0)
	press(s, 10, 10)
	move(s, 12, 10)
	move(s, 12, 10) // unchanged position is not a move
	release(s, 12, 10)

	if len(pressed) != 2 || pressed[0] || !pressed[1] {
		t.Errorf("pressed = %v, want [false true]", pressed)
	}
}

func TestDragDeadZone(t *testing.T) {
	s, b := newBoxScene(0, 0)
	s.SetDragDeadZone(10)

	started := 0
	b.OnDragStart = func(DragContext) { started++ }

	press(s, 10, 10)
	move(s, 15, 10)
	if started != 0 {
		t.Fatal("drag started inside the dead zone")
	}
	move(s, 25, 10)
	if started != 1 {
		t.Errorf("drag starts = %d, want 1", started)
	}
}

func TestHoverEnterLeave(t *testing.T) {
	s, b := newBoxScene(0, 0)

	var events []string
	b.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	b.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	s.processPointer(0, 50, 50, false, MouseButtonLeft, 0)
	s.processPointer(0, 60, 60, false, MouseButtonLeft, 0)
	s.processPointer(0, 150, 50, false, MouseButtonLeft, 0)

	if len(events) != 2 || events[0] != "enter" || events[1] != "leave" {
		t.Errorf("events = %v, want [enter leave]", events)
	}
}

func TestPointerCapture(t *testing.T) {
	s := NewScene()
	a := NewBox("a", 100, 100, ColorWhite)
	b := NewBox("b", 100, 100, ColorWhite)
	b.SetPosition(200, 0)
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	s.CapturePointer(0, b)
	var got *Node
	s.OnPointerDown(func(ctx PointerContext) { got = ctx.Node })
	press(s, 50, 50)
	if got != b {
		t.Errorf("ctx.Node = %v, want captured b", got)
	}

	release(s, 50, 50)
	if s.captured[0] != nil {
		t.Error("release should drop the capture")
	}
}

// --- Cancel ---

func TestCancelPointer(t *testing.T) {
	s, b := newBoxScene(0, 0)

	var events []string
	s.OnPointerCancel(func(ctx PointerContext) {
		events = append(events, "cancel")
		if ctx.Node != b {
			t.Errorf("cancel ctx.Node = %v, want the pressed node", ctx.Node)
		}
	})
	s.OnPointerUp(func(PointerContext) { events = append(events, "up") })
	s.OnClick(func(ClickContext) { events = append(events, "click") })

	press(s, 50, 50)
	s.cancelPointer(0)
	release(s, 50, 50)

	if len(events) != 1 || events[0] != "cancel" {
		t.Errorf("events = %v, want [cancel]", events)
	}
}

func TestCancelPointerNotDown(t *testing.T) {
	s := NewScene()
	fired := false
	s.OnPointerCancel(func(PointerContext) { fired = true })
	s.cancelAllPointers()
	if fired {
		t.Error("cancel fired for a pointer that was not down")
	}
}

// --- Handles ---

func TestCallbackHandleRemove(t *testing.T) {
	s, _ := newBoxScene(0, 0)

	count := 0
	h := s.OnPointerDown(func(PointerContext) { count++ })
	press(s, 50, 50)
	release(s, 50, 50)

	h.Remove()
	h.Remove()
	press(s, 50, 50)
	if count != 1 {
		t.Errorf("count = %d, want 1 after Remove", count)
	}

	var zero CallbackHandle
	zero.Remove()
}

func TestRemoveDuringDispatch(t *testing.T) {
	s, _ := newBoxScene(0, 0)

	var second CallbackHandle
	firstCalls, secondCalls, thirdCalls := 0, 0, 0
	first := s.OnPointerUp(func(PointerContext) {
		firstCalls++
		second.Remove()
	})
	second = s.OnPointerUp(func(PointerContext) { secondCalls++ })
	s.OnPointerUp(func(PointerContext) { thirdCalls++ })

	press(s, 50, 50)
	release(s, 50, 50)

	if firstCalls != 1 || secondCalls != 0 || thirdCalls != 1 {
		t.Errorf("calls = %d/%d/%d, want 1/0/1", firstCalls, secondCalls, thirdCalls)
	}
	first.Remove()
}

func TestAddDuringDispatchWaitsForNextEvent(t *testing.T) {
	s, _ := newBoxScene(0, 0)

	late := 0
	s.OnPointerDown(func(PointerContext) {
		s.OnPointerDown(func(PointerContext) { late++ })
	})
	press(s, 50, 50)
	if late != 0 {
		t.Errorf("handler added during dispatch ran %d times in the same event", late)
	}
}

// --- ECS bridge ---

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(ev InteractionEvent) {
	r.events = append(r.events, ev)
}

func TestECSBridge(t *testing.T) {
	s, b := newBoxScene(0, 0)
	rec := &recordingStore{}
	s.SetEntityStore(rec)

	press(s, 50, 50)
	if len(rec.events) != 0 {
		t.Fatalf("events = %d, want 0 for a node without an entity", len(rec.events))
	}

	b.EntityID = 42
	release(s, 50, 50)
	press(s, 50, 50)
	if len(rec.events) == 0 {
		t.Fatal("no events forwarded")
	}
	last := rec.events[len(rec.events)-1]
	if last.Type != EventPointerDown || last.EntityID != 42 {
		t.Errorf("last event = %+v, want pointer down for entity 42", last)
	}
}
