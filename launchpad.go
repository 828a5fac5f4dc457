package launchpad

import (
	"fmt"
	"image/color"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to an 8-bit non-premultiplied color for ebiten fills.
func (c Color) toRGBA() color.NRGBA {
	clamp := func(v float64) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// Vec2 is a 2D vector used for pointer positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Vec2 {
	return Vec2{r.X, r.Y}
}

// LayoutMode selects how a list container flows its items and which
// insertion policy a drag gesture uses over it.
type LayoutMode uint8

const (
	LayoutScroll LayoutMode = iota // single vertical column
	LayoutWrap                     // rows that wrap at the container width
)

// String returns the settings/config spelling of the mode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutScroll:
		return "scroll"
	case LayoutWrap:
		return "wrap"
	default:
		return fmt.Sprintf("LayoutMode(%d)", uint8(m))
	}
}

// ParseLayoutMode parses "scroll" or "wrap" (case-insensitive).
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scroll", "":
		return LayoutScroll, nil
	case "wrap":
		return LayoutWrap, nil
	default:
		return LayoutScroll, fmt.Errorf("unknown layout mode %q", s)
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node; draws only its Fill, if any
	NodeTypeBox                       // filled rectangle with an optional label
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown   EventType = iota // fires when a pointer button is pressed
	EventPointerUp                      // fires when a pointer button is released
	EventPointerMove                    // fires whenever the pointer moves, pressed or not
	EventClick                          // fires on press then release over the same node
	EventDragStart                      // fires when movement exceeds the drag dead zone
	EventDrag                           // fires each frame while dragging
	EventDragEnd                        // fires when the pointer is released after dragging
	EventPointerEnter                   // fires when the pointer enters a node's bounds
	EventPointerLeave                   // fires when the pointer leaves a node's bounds
	EventPointerCancel                  // fires when a held pointer is abandoned (blur, touch loss)
	EventReorder                        // fires once when a reorder gesture commits
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Node classes understood by the package. Classes are free-form strings;
// these are the ones the reorder controller and the panel act on.
const (
	ClassSortable = "sortable" // item takes part in drag reordering
	ClassDragging = "dragging" // item is the subject of an active drag
	ClassNoDrag   = "no-drag"  // presses inside this subtree never start a drag
)
