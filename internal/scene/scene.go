package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventSink receives interaction events from the scene. When set, every
// dispatched event that hit a node is also published to the sink, letting
// application code observe interactions without registering per-node
// callbacks.
type EventSink interface {
	Emit(event Event)
}

// Event carries interaction data for the EventSink bridge.
type Event struct {
	Type    EventType
	NodeID  uint32
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	Button  MouseButton
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
}

// Scene is the top-level object that owns the node tree, input state, and
// draw traversal. All methods must be called from the game loop goroutine.
type Scene struct {
	root  *Node
	sink  EventSink
	debug bool

	// Frame clock in seconds, advanced by Update. Drives double-click timing.
	clock float64

	// Input state
	handlers         handlerRegistry
	captured         *Node
	pointer          pointerState
	hitBuf           []*Node
	dragDeadZone     float64
	doubleClickDelay float64
	lastClickNode    *Node
	lastClickTime    float64
	injectQueue      []syntheticPointerEvent

	// Screenshot state
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:             root,
		dragDeadZone:     defaultDragDeadZone,
		doubleClickDelay: defaultDoubleClickDelay,
		ScreenshotDir:    "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update advances the scene by dt seconds: refreshes world transforms, runs
// per-node OnUpdate hooks, and processes pointer input. Injected events take
// priority over device input; one injected event is consumed per frame.
func (s *Scene) Update(dt float64) {
	s.advance(dt)
	if !s.processInjectedInput() {
		s.readDeviceInput()
	}
}

// advance performs the device-independent part of a frame step. Tests drive
// this directly and feed processPointer by hand.
func (s *Scene) advance(dt float64) {
	s.clock += dt

	// Refresh world transforms first so hit testing and OnUpdate hooks see
	// accurate positions this frame.
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	runUpdateHooks(s.root, dt)
}

// runUpdateHooks calls OnUpdate on every visible node, depth-first.
func runUpdateHooks(n *Node, dt float64) {
	if !n.Visible {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		runUpdateHooks(child, dt)
	}
}

// Draw renders the node tree to the given screen image in painter order,
// then flushes any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	drawn := s.drawNode(screen, s.root, identityTransform, 1.0, false, 0)

	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.drawCallCount = drawn
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetEventSink sets the optional event bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are printed, and per-frame draw stats
// are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
