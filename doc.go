// Package launchpad is a launcher panel for [Ebitengine] games: a small
// retained-mode scene graph with flow layout, pointer input, and a
// drag-to-reorder gesture for lists of cards.
//
// # Quick start
//
// [Run] opens a window and drives a scene:
//
//	scene := launchpad.NewScene()
//	// ... add nodes ...
//	launchpad.Run(scene, launchpad.RunConfig{
//		Title: "Launcher", Width: 800, Height: 600,
//	})
//
// To own the loop, implement [ebiten.Game] and call [Scene.Update] and
// [Scene.Draw] directly.
//
// # Scene graph
//
// Every visible element is a [Node], created with [NewContainer] or
// [NewBox]. Nodes form a tree rooted at [Scene.Root]; children inherit their
// parent's transform and alpha. A container with a [FlowLayout] places its
// children either in a single column ([LayoutScroll]) or in rows that wrap
// at the container width ([LayoutWrap]).
//
//	list := launchpad.NewContainer("pinned")
//	list.Width = 520
//	list.SetFlow(&launchpad.FlowLayout{Mode: launchpad.LayoutWrap, Gap: 8})
//	scene.Root().AddChild(list)
//
// # Reordering
//
// A [Reorder] controller makes the children of a list draggable. Pressing an
// attached item and moving past a small threshold starts a drag; the item
// tilts with vertical motion and, in wrap mode, follows the pointer out of
// flow. An [InsertionPolicy] matching the layout picks where the item lands
// on each move. Releasing commits the order and hands the item keys to
// [ReorderConfig.Persist]; a pointer cancel or window blur restores the
// order from before the press.
//
// Nodes marked with [ClassNoDrag] (and their descendants) never start a
// drag, which keeps buttons inside a card clickable.
//
// # Panel
//
// [Panel] ties it together with the settings store in the store package: it
// shows the pinned entries of a library group as cards, persists the
// dragged order and the chosen layout, opens entries on click, and unpins
// them from a per-card action strip.
//
// Tweens come from [gween]; an optional ECS bridge lives in the ecs module
// ([Donburi]).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package launchpad
