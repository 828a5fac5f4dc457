package launchpad

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
	// Keys is the committed item order (valid for EventReorder).
	Keys []string
}

// Scene is the top-level object that owns the node tree, input state and
// running tweens.
type Scene struct {
	root   *Node
	store  EntityStore
	debug  bool
	logger *slog.Logger

	// ClearColor fills the screen before drawing. Zero leaves it untouched.
	ClearColor Color

	// OnUpdate, when set, runs at the end of every Update with the frame
	// delta in seconds.
	OnUpdate func(dt float64)

	// Input state
	handlers     handlerRegistry
	captured     [maxPointers]*Node
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	focused      bool
	injectQueue  []syntheticPointerEvent
	testRunner   *TestRunner

	tweens []*TweenGroup
	stats  statsOverlay

	// ScreenshotDir receives the PNGs requested with Screenshot.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		logger:        slog.Default(),
		dragDeadZone:  defaultDragDeadZone,
		focused:       true,
		ScreenshotDir: defaultScreenshotDir,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetLogger replaces the scene's logger. A nil logger restores slog.Default.
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *slog.Logger {
	return s.logger
}

// refresh runs pending flow layout and recomputes dirty world transforms.
func (s *Scene) refresh() {
	reflow(s.root)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
}

// Update advances one frame: scripted input, pointer input, tweens, then the
// OnUpdate hook. Losing window focus cancels every held pointer.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())
	s.update(dt, ebiten.IsFocused())
}

func (s *Scene) update(dt float64, focused bool) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.refresh()

	if focused != s.focused {
		s.focused = focused
		if !focused {
			s.logger.Debug("window lost focus, cancelling pointers")
			s.cancelAllPointers()
		}
	}
	s.processInput()
	s.updateTweens(dt)
	if s.debug {
		s.stats.update(dt, ebitenRates)
	}

	if s.OnUpdate != nil {
		s.OnUpdate(dt)
	}
}

// Draw paints the scene onto screen, then saves any requested screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.refresh()
	s.drawNode(screen, s.root)
	if s.debug {
		s.stats.draw(screen)
	}
	s.flushScreenshots(screen)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree depth and child count warnings are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	debugLogger = s.logger
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// emitInteractionEvent forwards ev to the EntityStore if the node carries an
// entity ID.
func (s *Scene) emitInteractionEvent(ev InteractionEvent, node *Node) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	ev.EntityID = node.EntityID
	s.store.EmitEvent(ev)
}
