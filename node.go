package launchpad

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Node      *Node // hit node (the original target while bubbling)
	EntityID  uint32
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Pressed   bool // pointer button held at the time of the event
	Modifiers KeyModifiers
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	EntityID  uint32
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// DragContext carries drag event data.
type DragContext struct {
	Node      *Node
	EntityID  uint32
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// --- ID counter ---

// nodeIDCounter is a plain counter; the scene is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene graph element. Every visible part of the panel (the list,
// each card, each button) is a Node.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType
	// Key is the backing-list identifier of a sortable item.
	Key string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Box, in the parent's coordinate space. X and Y are the top-left corner
	// of the untransformed box; flow layout writes them for in-flow children.
	X, Y          float64
	Width, Height float64

	// Transform applied around the pivot (box-local coordinates).
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed (unexported, updated during traversal)
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Ordering
	ZIndex int

	// Appearance
	Fill  Color
	Label string

	// Layout
	Flow             *FlowLayout
	positioned       bool
	layoutDirty      bool
	childLayoutDirty bool

	classes []string

	// Metadata
	UserData any
	EntityID uint32

	// Hit testing
	HitShape HitShape

	// Per-node callbacks (nil by default). Down, up and click bubble from the
	// hit node to its ancestors.
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnClick        func(ClickContext)
	OnDragStart    func(DragContext)
	OnDrag         func(DragContext)
	OnDragEnd      func(DragContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewBox creates a filled, interactable rectangle of the given size.
func NewBox(name string, width, height float64, fill Color) *Node {
	n := &Node{Name: name, Type: NodeTypeBox, Width: width, Height: height, Fill: fill}
	nodeDefaults(n)
	n.Interactable = true
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.insertChild(child, -1)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if index < 0 || index > len(n.children) {
		panic("launchpad: child index out of range")
	}
	n.insertChild(child, index)
}

// InsertBefore places child immediately before ref, which must be a child of
// this node. No-op if child already sits there.
func (n *Node) InsertBefore(child, ref *Node) {
	if ref == nil || ref.Parent != n {
		panic("launchpad: reference node is not a child of this node")
	}
	if child == ref {
		return
	}
	if child.Parent == n {
		if i := n.IndexOf(child); i+1 < len(n.children) && n.children[i+1] == ref {
			return
		}
	}
	n.detachForInsert(child)
	n.insertChild(child, n.IndexOf(ref))
}

// InsertAfter places child immediately after ref, which must be a child of
// this node. No-op if child already sits there.
func (n *Node) InsertAfter(child, ref *Node) {
	if ref == nil || ref.Parent != n {
		panic("launchpad: reference node is not a child of this node")
	}
	if child == ref {
		return
	}
	if child.Parent == n {
		if i := n.IndexOf(child); i > 0 && n.children[i-1] == ref {
			return
		}
	}
	n.detachForInsert(child)
	n.insertChild(child, n.IndexOf(ref)+1)
}

// detachForInsert removes child from n so that ref's index can be looked up
// afterwards without the shift caused by child's own slot.
func (n *Node) detachForInsert(child *Node) {
	if child.Parent == n {
		n.removeChildByPtr(child)
		child.Parent = nil
	}
}

func (n *Node) insertChild(child *Node, index int) {
	if child == nil {
		panic("launchpad: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("launchpad: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	if index < 0 || index >= len(n.children) {
		n.children = append(n.children, child)
	} else {
		n.children = append(n.children, nil)
		copy(n.children[index+1:], n.children[index:])
		n.children[index] = child
	}
	n.childrenSorted = false
	n.MarkLayoutDirty()
	if child.layoutDirty || child.childLayoutDirty {
		n.markChildLayoutDirty()
	}
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("launchpad: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	n.MarkLayoutDirty()
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.childrenSorted = true
	n.MarkLayoutDirty()
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns the index of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("launchpad: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("launchpad: child index out of range")
	}
	oldIndex := n.IndexOf(child)
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
	n.childrenSorted = false
	n.MarkLayoutDirty()
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// SetVisible shows or hides the node. Hidden nodes leave the flow.
func (n *Node) SetVisible(v bool) {
	if n.Visible == v {
		return
	}
	n.Visible = v
	if n.Parent != nil {
		n.Parent.MarkLayoutDirty()
	}
}

// --- Classes ---

// AddClass tags the node with class. Duplicate adds are ignored.
func (n *Node) AddClass(class string) {
	if n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

// RemoveClass removes class from the node, if present.
func (n *Node) RemoveClass(class string) {
	for i, c := range n.classes {
		if c == class {
			n.classes = append(n.classes[:i], n.classes[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the node carries class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.Flow = nil
	n.classes = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnClick = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
