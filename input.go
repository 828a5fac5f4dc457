package launchpad

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type handler[C any] struct {
	id uint32
	fn func(C)
}

type handlerRegistry struct {
	pointerDown   []handler[PointerContext]
	pointerUp     []handler[PointerContext]
	pointerMove   []handler[PointerContext]
	pointerEnter  []handler[PointerContext]
	pointerLeave  []handler[PointerContext]
	pointerCancel []handler[PointerContext]
	click         []handler[ClickContext]
	dragStart     []handler[DragContext]
	drag          []handler[DragContext]
	dragEnd       []handler[DragContext]
	nextID        uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice,
// or removing a zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removeHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removeHandler(h.reg.pointerLeave, h.id)
	case EventPointerCancel:
		h.reg.pointerCancel = removeHandler(h.reg.pointerCancel, h.id)
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case EventDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeHandler(h.reg.dragEnd, h.id)
	}
}

// removeHandler deletes the entry with id, clearing the vacated slot so the
// backing array does not retain the closure.
func removeHandler[C any](s []handler[C], id uint32) []handler[C] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[C]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func addHandler[C any](reg *handlerRegistry, list *[]handler[C], event EventType, fn func(C)) CallbackHandle {
	reg.nextID++
	id := reg.nextID
	*list = append(*list, handler[C]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: reg, event: event}
}

// dispatch calls every handler registered when dispatch began, skipping any
// that an earlier handler removed.
func dispatch[C any](list *[]handler[C], ctx C) {
	if len(*list) == 0 {
		return
	}
	snapshot := slices.Clone(*list)
	for _, h := range snapshot {
		live := slices.ContainsFunc(*list, func(x handler[C]) bool { return x.id == h.id })
		if live {
			h.fn(ctx)
		}
	}
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events,
// both hover moves and moves with a button held (ctx.Pressed).
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired when the pointer moves over a new node (or from nil to a node).
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnPointerCancel registers a scene-level callback fired when a held pointer
// is abandoned without a release: window focus loss or a vanished touch.
func (s *Scene) OnPointerCancel(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerCancel, EventPointerCancel, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.click, EventClick, fn)
}

// OnDragStart registers a scene-level callback for drag start events.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.dragStart, EventDragStart, fn)
}

// OnDrag registers a scene-level callback for drag events.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.drag, EventDrag, fn)
}

// OnDragEnd registers a scene-level callback for drag end events.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.dragEnd, EventDragEnd, fn)
}

// CapturePointer routes all events for pointerID to the given node.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// SetDragDeadZone sets the minimum movement in pixels before drag events
// start. The reorder controller applies its own, smaller threshold.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's box. Containers with no
// HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}

	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}

	if len(n.children) == 0 {
		return buf
	}

	for _, child := range sortedChildren(n) {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.refresh()
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Update() to handle all mouse and touch
// input. A queued synthetic event replaces real input for that frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	mods := readModifiers()
	s.processMousePointer(mods)
	s.processTouchPointers(mods)
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	// If the pointer is already down, the stored button wins so the
	// interaction cannot change buttons midway.
	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9). A touch that
// disappears while held is released at its last position.
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, mods)
	}

	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
//
// Release ordering follows the browser model: drag end, then pointer up,
// then click. Click fires whenever press and release land on the same node,
// dragged or not; listeners that must suppress it read their own state.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]

	var target *Node
	if s.captured[pointerID] != nil {
		target = s.captured[pointerID]
	} else {
		target = s.hitTest(wx, wy)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointer(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button, ps.down, mods)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, pointerID, wx, wy, button, ps.down, mods)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false

		s.firePointer(EventPointerDown, target, pointerID, wx, wy, ps.button, true, mods)

	case !pressed && ps.down:
		hit := ps.hitNode
		if ps.dragging {
			s.fireDrag(EventDragEnd, hit, pointerID, wx, wy, ps.startX, ps.startY,
				wx-ps.lastX, wy-ps.lastY, ps.button, mods)
		}
		btn := ps.button

		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = wx, wy

		s.firePointer(EventPointerUp, target, pointerID, wx, wy, btn, false, mods)
		if hit != nil && hit == target {
			s.fireClick(target, pointerID, wx, wy, btn, mods)
		}

	case pressed && ps.down:
		if wx != ps.lastX || wy != ps.lastY {
			s.firePointer(EventPointerMove, target, pointerID, wx, wy, ps.button, true, mods)
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDrag(EventDragStart, ps.hitNode, pointerID, wx, wy, ps.startX, ps.startY,
						wx-ps.startX, wy-ps.startY, ps.button, mods)
				}
			}
			if ps.dragging {
				s.fireDrag(EventDrag, ps.hitNode, pointerID, wx, wy, ps.startX, ps.startY,
					wx-ps.lastX, wy-ps.lastY, ps.button, mods)
			}
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		if wx != ps.lastX || wy != ps.lastY {
			s.firePointer(EventPointerMove, target, pointerID, wx, wy, button, false, mods)
			ps.lastX, ps.lastY = wx, wy
		}
	}
}

// cancelPointer abandons a held pointer: no drag end, no pointer up, no click.
func (s *Scene) cancelPointer(pointerID int) {
	ps := &s.pointers[pointerID]
	if !ps.down {
		return
	}
	hit := ps.hitNode
	btn := ps.button
	s.captured[pointerID] = nil
	ps.down = false
	ps.hitNode = nil
	ps.dragging = false
	s.firePointer(EventPointerCancel, hit, pointerID, ps.lastX, ps.lastY, btn, false, 0)
}

// cancelAllPointers cancels every held pointer. Called on window focus loss.
func (s *Scene) cancelAllPointers() {
	for i := range s.pointers {
		s.cancelPointer(i)
	}
}

// --- Event dispatch ---

func (s *Scene) firePointer(ev EventType, node *Node, pointerID int, wx, wy float64, button MouseButton, pressed bool, mods KeyModifiers) {
	ctx := PointerContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID, Pressed: pressed, Modifiers: mods,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	}

	// Scene-level handlers first, then the node (bubbling for down/up).
	switch ev {
	case EventPointerDown:
		dispatch(&s.handlers.pointerDown, ctx)
		for n := node; n != nil; n = n.Parent {
			if n.OnPointerDown != nil {
				n.OnPointerDown(ctx)
			}
		}
	case EventPointerUp:
		dispatch(&s.handlers.pointerUp, ctx)
		for n := node; n != nil; n = n.Parent {
			if n.OnPointerUp != nil {
				n.OnPointerUp(ctx)
			}
		}
	case EventPointerMove:
		dispatch(&s.handlers.pointerMove, ctx)
		if node != nil && node.OnPointerMove != nil {
			node.OnPointerMove(ctx)
		}
	case EventPointerEnter:
		dispatch(&s.handlers.pointerEnter, ctx)
		if node != nil && node.OnPointerEnter != nil {
			node.OnPointerEnter(ctx)
		}
	case EventPointerLeave:
		dispatch(&s.handlers.pointerLeave, ctx)
		if node != nil && node.OnPointerLeave != nil {
			node.OnPointerLeave(ctx)
		}
	case EventPointerCancel:
		dispatch(&s.handlers.pointerCancel, ctx)
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: ev, GlobalX: wx, GlobalY: wy, LocalX: ctx.LocalX, LocalY: ctx.LocalY,
		Button: button, Modifiers: mods,
	}, node)
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := ClickContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	}
	dispatch(&s.handlers.click, ctx)
	for n := node; n != nil; n = n.Parent {
		if n.OnClick != nil {
			n.OnClick(ctx)
		}
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: EventClick, GlobalX: wx, GlobalY: wy, LocalX: ctx.LocalX, LocalY: ctx.LocalY,
		Button: button, Modifiers: mods,
	}, node)
}

func (s *Scene) fireDrag(ev EventType, node *Node, pointerID int, wx, wy, startX, startY, deltaX, deltaY float64, button MouseButton, mods KeyModifiers) {
	ctx := DragContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		StartX: startX, StartY: startY, DeltaX: deltaX, DeltaY: deltaY,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	}
	var fn func(DragContext)
	switch ev {
	case EventDragStart:
		dispatch(&s.handlers.dragStart, ctx)
		if node != nil {
			fn = node.OnDragStart
		}
	case EventDrag:
		dispatch(&s.handlers.drag, ctx)
		if node != nil {
			fn = node.OnDrag
		}
	case EventDragEnd:
		dispatch(&s.handlers.dragEnd, ctx)
		if node != nil {
			fn = node.OnDragEnd
		}
	}
	if fn != nil {
		fn(ctx)
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: ev, GlobalX: wx, GlobalY: wy, LocalX: ctx.LocalX, LocalY: ctx.LocalY,
		Button: button, Modifiers: mods,
		StartX: startX, StartY: startY, DeltaX: deltaX, DeltaY: deltaY,
	}, node)
}
