package launchpad

import (
	"log/slog"
	"math"
	"slices"
)

// GestureState is the phase of a Reorder controller's current gesture.
type GestureState uint8

const (
	GestureIdle     GestureState = iota // no session
	GesturePressed                      // pressed, threshold not crossed yet
	GestureDragging                     // threshold crossed, item follows the pointer
)

func (s GestureState) String() string {
	switch s {
	case GesturePressed:
		return "pressed"
	case GestureDragging:
		return "dragging"
	default:
		return "idle"
	}
}

const (
	defaultDragThreshold       = 1.0
	defaultRotationLimit       = 5.0
	defaultRotationSensitivity = 0.2

	// dragZIndex lifts the dragged item above its siblings.
	dragZIndex = 1 << 20
)

// ReorderConfig configures a Reorder controller. Zero values select defaults.
type ReorderConfig struct {
	// Threshold is how far, in pixels on either axis, the pointer must move
	// before a press becomes a drag. Default 1.
	Threshold float64
	// RotationLimit bounds the tilt, in degrees. Default 5.
	RotationLimit float64
	// RotationSensitivity converts vertical pixels to degrees. Default 0.2.
	RotationSensitivity float64

	// Geometry measures boxes. Defaults to the scene.
	Geometry Geometry
	// LayoutMode is queried on press and on every move. Defaults to the
	// container's flow mode.
	LayoutMode func() LayoutMode
	// Candidates lists the items the dragged one may be placed next to, in
	// order. Defaults to the container's visible sortable children.
	Candidates func(container, dragged *Node) []*Node
	// Persist receives the committed key order, once per completed drag.
	// Errors are logged; the visual order stays as dropped.
	Persist func(keys []string) error
	// OnDrop runs after Persist with the item that was dropped.
	OnDrop func(item *Node)

	Logger *slog.Logger
}

// Reorder turns presses on attached items into drag-to-reorder gestures over
// their parent container. It owns at most one DragSession at a time.
type Reorder struct {
	scene *Scene
	cfg   ReorderConfig
	log   *slog.Logger

	session     *DragSession
	justDragged *Node
	items       map[*Node]struct{}
	candBuf     []*Node
}

// NewReorder creates a controller bound to scene.
func NewReorder(scene *Scene, cfg ReorderConfig) *Reorder {
	if cfg.Threshold <= 0 {
		cfg.Threshold = defaultDragThreshold
	}
	if cfg.RotationLimit <= 0 {
		cfg.RotationLimit = defaultRotationLimit
	}
	if cfg.RotationSensitivity <= 0 {
		cfg.RotationSensitivity = defaultRotationSensitivity
	}
	if cfg.Geometry == nil {
		cfg.Geometry = scene
	}
	log := cfg.Logger
	if log == nil {
		log = scene.Logger()
	}
	return &Reorder{
		scene: scene,
		cfg:   cfg,
		log:   log.With("component", "reorder"),
		items: make(map[*Node]struct{}),
	}
}

// Attach makes item draggable within its parent. Attaching an item again
// replaces its press binding, so one physical gesture is handled once.
func (r *Reorder) Attach(item *Node) {
	item.OnPointerDown = func(ctx PointerContext) {
		r.press(item, ctx)
	}
	item.AddClass(ClassSortable)
	item.Interactable = true
	r.items[item] = struct{}{}
}

// Detach stops item from being draggable, cancelling its gesture if active.
func (r *Reorder) Detach(item *Node) {
	if _, ok := r.items[item]; !ok {
		return
	}
	if r.session != nil && r.session.Item == item {
		r.Cancel()
	}
	if r.justDragged == item {
		r.justDragged = nil
	}
	item.OnPointerDown = nil
	item.RemoveClass(ClassSortable)
	delete(r.items, item)
}

// State reports the phase of the current gesture.
func (r *Reorder) State() GestureState {
	switch {
	case r.session == nil:
		return GestureIdle
	case r.session.Crossed:
		return GestureDragging
	default:
		return GesturePressed
	}
}

// Session returns the active session, or nil. Callers must not modify it.
func (r *Reorder) Session() *DragSession {
	return r.session
}

// ConsumeDragCompleted reports whether item was just dropped after a drag,
// and clears the signal. Click handlers call it to skip the click that
// follows a drop.
func (r *Reorder) ConsumeDragCompleted(item *Node) bool {
	if item == nil || r.justDragged != item {
		return false
	}
	r.justDragged = nil
	return true
}

// Cancel abandons the active gesture, if any: the item's visuals and the
// sibling order revert to how they were at the press, and nothing is
// persisted.
func (r *Reorder) Cancel() {
	s := r.session
	if s == nil {
		return
	}
	if s.Crossed {
		r.restoreVisuals(s)
		restoreOrder(s.Item.Parent, s.originalOrder)
	}
	r.teardown()
	r.log.Debug("drag cancelled", "key", s.Item.Key)
}

func (r *Reorder) press(item *Node, ctx PointerContext) {
	if ctx.Button != MouseButtonLeft || insideNoDrag(ctx.Node, item) {
		return
	}
	if r.session != nil {
		r.log.Debug("tearing down stale drag session", "key", r.session.Item.Key)
		r.Cancel()
	}
	r.justDragged = nil

	pointer := Vec2{ctx.GlobalX, ctx.GlobalY}
	m := Measure(r.cfg.Geometry, item)
	s := newDragSession(item, ctx.PointerID, pointer, m, r.layoutMode(item))
	s.listeners = append(s.listeners,
		r.scene.OnPointerMove(r.onMove),
		r.scene.OnPointerUp(r.onUp),
		r.scene.OnPointerCancel(r.onCancel),
	)
	r.session = s
	r.log.Debug("press", "key", item.Key, "mode", s.Mode, "rightHalf", s.RightHalf)
}

func (r *Reorder) onMove(ctx PointerContext) {
	s := r.session
	if s == nil || ctx.PointerID != s.PointerID {
		return
	}
	p := Vec2{ctx.GlobalX, ctx.GlobalY}
	if !s.Crossed {
		if !s.pastThreshold(p, r.cfg.Threshold) {
			s.LastPointerY = p.Y
			return
		}
		r.beginDrag(s)
	}
	r.dragTo(s, p)
	s.LastPointerY = p.Y
}

func (r *Reorder) onUp(ctx PointerContext) {
	s := r.session
	if s == nil || ctx.PointerID != s.PointerID {
		return
	}
	if !s.Crossed {
		r.teardown()
		return
	}
	r.commit(s, ctx)
}

func (r *Reorder) onCancel(ctx PointerContext) {
	if s := r.session; s != nil && ctx.PointerID == s.PointerID {
		r.Cancel()
	}
}

// beginDrag switches the item into its dragging presentation.
func (r *Reorder) beginDrag(s *DragSession) {
	item := s.Item
	s.Crossed = true
	s.originalOrder = slices.Clone(item.Parent.Children())
	s.savedZ = item.ZIndex
	item.AddClass(ClassDragging)
	item.SetZIndex(dragZIndex)
	item.SetPivot(item.Width/2, item.Height/2)
	if s.Mode == LayoutWrap {
		r.float(s)
	}
	r.log.Debug("drag started", "key", item.Key, "mode", s.Mode)
}

// dragTo runs one frame of an active drag with the pointer at p.
func (r *Reorder) dragTo(s *DragSession, p Vec2) {
	item := s.Item

	if mode := r.layoutMode(item); mode != s.Mode {
		s.Mode = mode
		switch {
		case mode == LayoutWrap && !s.floating:
			r.float(s)
		case mode != LayoutWrap && s.floating:
			r.unfloat(s)
		}
	}

	m := Measure(r.cfg.Geometry, item)
	if s.floating {
		pos := FloatPosition(p, s.GrabOffset, m)
		item.SetPosition(pos.X, pos.Y)
	}

	cands := r.candidates(item.Parent, item)
	if in, ok := PolicyFor(s.Mode).Resolve(p, item, cands, r.cfg.Geometry); ok {
		in.Apply(item)
	}

	deg := s.steer(p.Y, r.cfg.RotationSensitivity, r.cfg.RotationLimit)
	item.SetRotation(deg * math.Pi / 180)
}

// commit ends a drag: the dropped order is read back from the tree and
// handed to Persist.
func (r *Reorder) commit(s *DragSession, ctx PointerContext) {
	item := s.Item
	container := item.Parent
	r.restoreVisuals(s)
	keys := sortableKeys(container)
	r.teardown()
	r.justDragged = item

	r.log.Debug("drag committed", "key", item.Key, "order", keys)
	if r.cfg.Persist != nil {
		if err := r.cfg.Persist(keys); err != nil {
			r.log.Warn("persist reorder failed", "err", err, "order", keys)
		}
	}
	if r.cfg.OnDrop != nil {
		r.cfg.OnDrop(item)
	}
	r.scene.emitInteractionEvent(InteractionEvent{
		Type:    EventReorder,
		GlobalX: ctx.GlobalX,
		GlobalY: ctx.GlobalY,
		Button:  ctx.Button,
		Keys:    keys,
	}, item)
}

// float takes the item out of flow at its current on-screen box.
func (r *Reorder) float(s *DragSession) {
	m := Measure(r.cfg.Geometry, s.Item)
	s.Item.SetPositioned(true)
	s.Item.SetPosition(m.Item.X-m.Container.X, m.Item.Y-m.Container.Y)
	s.floating = true
}

func (r *Reorder) unfloat(s *DragSession) {
	s.Item.SetPositioned(false)
	s.floating = false
}

func (r *Reorder) restoreVisuals(s *DragSession) {
	item := s.Item
	item.RemoveClass(ClassDragging)
	item.SetZIndex(s.savedZ)
	if s.floating {
		r.unfloat(s)
	}
	item.SetRotation(0)
}

// teardown drops the session and its listeners.
func (r *Reorder) teardown() {
	if r.session == nil {
		return
	}
	r.session.detach()
	r.session = nil
}

func (r *Reorder) layoutMode(item *Node) LayoutMode {
	if r.cfg.LayoutMode != nil {
		return r.cfg.LayoutMode()
	}
	if item.Parent != nil && item.Parent.Flow != nil {
		return item.Parent.Flow.Mode
	}
	return LayoutScroll
}

func (r *Reorder) candidates(container, dragged *Node) []*Node {
	if r.cfg.Candidates != nil {
		return r.cfg.Candidates(container, dragged)
	}
	r.candBuf = r.candBuf[:0]
	for _, c := range container.Children() {
		if c != dragged && c.Visible && c.HasClass(ClassSortable) && !c.HasClass(ClassDragging) {
			r.candBuf = append(r.candBuf, c)
		}
	}
	return r.candBuf
}

// insideNoDrag reports whether hit, or an ancestor of it below item, is
// marked ClassNoDrag.
func insideNoDrag(hit, item *Node) bool {
	for n := hit; n != nil && n != item; n = n.Parent {
		if n.HasClass(ClassNoDrag) {
			return true
		}
	}
	return item.HasClass(ClassNoDrag)
}

// sortableKeys lists the keys of container's visible sortable children in
// tree order.
func sortableKeys(container *Node) []string {
	var keys []string
	for _, c := range container.Children() {
		if c.Visible && c.Key != "" && c.HasClass(ClassSortable) {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// restoreOrder puts the children listed in order back in that order. Nodes
// that have since left the container are skipped.
func restoreOrder(container *Node, order []*Node) {
	i := 0
	for _, c := range order {
		if c.Parent != container {
			continue
		}
		container.SetChildIndex(c, i)
		i++
	}
}
