package scene

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultDragDeadZone     = 4.0 // pixels
	defaultDoubleClickDelay = 0.4 // seconds between clicks on the same node
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

// --- Pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node under the pointer (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type handlerRegistry struct {
	pointerDown  []pointerHandler
	pointerUp    []pointerHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []clickHandler
	doubleClick  []clickHandler
	dragStart    []dragHandler
	drag         []dragHandler
	dragEnd      []dragHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removePointerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removeClickHandler(h.reg.click, h.id)
	case EventDoubleClick:
		h.reg.doubleClick = removeClickHandler(h.reg.doubleClick, h.id)
	case EventDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired when the pointer moves over a new node (or from nil to a node).
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerEnter = append(s.handlers.pointerEnter, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerEnter}
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
// Fired when the pointer leaves a node (moves to a different node or to empty space).
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerLeave = append(s.handlers.pointerLeave, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerLeave}
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// OnDoubleClick registers a scene-level callback for double-click events.
// A double click also fires the two underlying click events.
func (s *Scene) OnDoubleClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.doubleClick = append(s.handlers.doubleClick, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDoubleClick}
}

// OnDragStart registers a scene-level callback for drag start events.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.dragStart = append(s.handlers.dragStart, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragStart}
}

// OnDrag registers a scene-level callback for drag events.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.drag = append(s.handlers.drag, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDrag}
}

// OnDragEnd registers a scene-level callback for drag end events.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.dragEnd = append(s.handlers.dragEnd, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragEnd}
}

// CapturePointer routes all pointer events to the given node until release.
func (s *Scene) CapturePointer(node *Node) {
	s.captured = node
}

// ReleasePointer stops routing events to a captured node.
func (s *Scene) ReleasePointer() {
	s.captured = nil
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// SetDoubleClickDelay sets the maximum time in seconds between two clicks on
// the same node for them to count as a double click.
func (s *Scene) SetDoubleClickDelay(seconds float64) {
	s.doubleClickDelay = seconds
}

// --- Hit testing ---

// nodeDimensions returns the node's logical size for AABB hit testing.
func nodeDimensions(n *Node) (w, h float64) {
	switch n.Type {
	case NodeTypeSprite:
		return n.W, n.H
	case NodeTypeText:
		if n.Text != nil {
			return n.Text.Measure()
		}
	}
	return 0, 0
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives an AABB from node dimensions.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable leaf nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}

	// Add this node if it's potentially hit-testable (has shape or dimensions).
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}

	if len(n.children) == 0 {
		return buf
	}

	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
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

// InteractableAt reports whether any interactable node covers the given
// world position. Used to decide window mouse passthrough.
func (s *Scene) InteractableAt(x, y float64) bool {
	return s.hitTest(x, y) != nil
}

// --- Input processing ---

// readDeviceInput reads the mouse state and feeds it through the pointer
// state machine. Called from Update when no injected events are pending.
func (s *Scene) readDeviceInput() {
	mx, my := ebiten.CursorPosition()
	wx, wy := float64(mx), float64(my)

	// Detect which button is pressed. If the pointer is already down, the
	// stored button wins so the interaction can't change buttons midway.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(wx, wy, pressed, button)
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointer

	// Determine target node: captured node or hit test.
	var target *Node
	if s.captured != nil {
		target = s.captured
	} else {
		target = s.hitTest(wx, wy)
	}

	// Fire hover enter/leave when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointerLeave(ps.hoverNode, wx, wy, button)
		}
		if target != nil {
			s.firePointerEnter(target, wx, wy, button)
		}
		ps.hoverNode = target
	}

	if pressed && !ps.down {
		// Just pressed; the button is captured for the whole interaction.
		ps.down = true
		ps.button = button
		ps.startX = wx
		ps.startY = wy
		ps.lastX = wx
		ps.lastY = wy
		ps.hitNode = target
		ps.dragging = false

		s.firePointerDown(target, wx, wy, ps.button)
	} else if !pressed && ps.down {
		// Just released; use the button from press start.
		if ps.dragging {
			s.fireDragEnd(ps.hitNode, wx, wy, ps.startX, ps.startY,
				wx-ps.lastX, wy-ps.lastY, ps.button)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, wx, wy, ps.button)
		}

		s.firePointerUp(target, wx, wy, ps.button)

		// Auto-release capture.
		s.captured = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
	} else if pressed && ps.down {
		// Held down, possibly moved; use the button from press start.
		if wx != ps.lastX || wy != ps.lastY {
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDragStart(ps.hitNode, wx, wy, ps.startX, ps.startY,
						wx-ps.startX, wy-ps.startY, ps.button)
				}
			}
			if ps.dragging {
				s.fireDrag(ps.hitNode, wx, wy, ps.startX, ps.startY,
					wx-ps.lastX, wy-ps.lastY, ps.button)
			}
		}
		ps.lastX = wx
		ps.lastY = wy
	} else if !pressed && !ps.down {
		// Hover move.
		if wx != ps.lastX || wy != ps.lastY {
			s.firePointerMove(target, wx, wy, button)
			ps.lastX = wx
			ps.lastY = wy
		}
	}
}

// --- Event dispatch ---

func pointerCtx(node *Node, wx, wy float64, button MouseButton) PointerContext {
	var lx, ly float64
	var userData any
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
		userData = node.UserData
	}
	return PointerContext{
		Node: node, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button,
	}
}

func (s *Scene) firePointerDown(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerCtx(node, wx, wy, button)
	// Scene-level handlers first.
	for _, h := range s.handlers.pointerDown {
		h.fn(ctx)
	}
	// Per-node callback.
	if node != nil && node.OnPointerDown != nil {
		node.OnPointerDown(ctx)
	}
	s.emit(EventPointerDown, node, wx, wy, ctx.LocalX, ctx.LocalY, button, DragContext{})
}

func (s *Scene) firePointerUp(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerCtx(node, wx, wy, button)
	for _, h := range s.handlers.pointerUp {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerUp != nil {
		node.OnPointerUp(ctx)
	}
	s.emit(EventPointerUp, node, wx, wy, ctx.LocalX, ctx.LocalY, button, DragContext{})
}

func (s *Scene) firePointerMove(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerCtx(node, wx, wy, button)
	for _, h := range s.handlers.pointerMove {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerMove != nil {
		node.OnPointerMove(ctx)
	}
	s.emit(EventPointerMove, node, wx, wy, ctx.LocalX, ctx.LocalY, button, DragContext{})
}

func (s *Scene) firePointerEnter(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerCtx(node, wx, wy, button)
	for _, h := range s.handlers.pointerEnter {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerEnter != nil {
		node.OnPointerEnter(ctx)
	}
	s.emit(EventPointerEnter, node, wx, wy, ctx.LocalX, ctx.LocalY, button, DragContext{})
}

func (s *Scene) firePointerLeave(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerCtx(node, wx, wy, button)
	for _, h := range s.handlers.pointerLeave {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerLeave != nil {
		node.OnPointerLeave(ctx)
	}
	s.emit(EventPointerLeave, node, wx, wy, ctx.LocalX, ctx.LocalY, button, DragContext{})
}

func (s *Scene) fireClick(node *Node, wx, wy float64, button MouseButton) {
	var lx, ly float64
	var userData any
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
		userData = node.UserData
	}
	ctx := ClickContext{
		Node: node, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button,
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emit(EventClick, node, wx, wy, lx, ly, button, DragContext{})

	// Double-click detection: a second click on the same node with the same
	// button within the delay window. Consumes the click pair, so a triple
	// click is a double click followed by a single click.
	if button == MouseButtonLeft && node != nil && node == s.lastClickNode &&
		s.clock-s.lastClickTime <= s.doubleClickDelay {
		s.lastClickNode = nil
		s.fireDoubleClick(ctx)
		return
	}
	s.lastClickNode = node
	s.lastClickTime = s.clock
}

func (s *Scene) fireDoubleClick(ctx ClickContext) {
	for _, h := range s.handlers.doubleClick {
		h.fn(ctx)
	}
	if ctx.Node != nil && ctx.Node.OnDoubleClick != nil {
		ctx.Node.OnDoubleClick(ctx)
	}
	s.emit(EventDoubleClick, ctx.Node, ctx.GlobalX, ctx.GlobalY, ctx.LocalX, ctx.LocalY, ctx.Button, DragContext{})
}

func dragCtx(node *Node, wx, wy, startX, startY, deltaX, deltaY float64, button MouseButton) DragContext {
	var lx, ly float64
	var userData any
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
		userData = node.UserData
	}
	return DragContext{
		Node: node, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		StartX: startX, StartY: startY, DeltaX: deltaX, DeltaY: deltaY,
		Button: button,
	}
}

func (s *Scene) fireDragStart(node *Node, wx, wy, startX, startY, deltaX, deltaY float64, button MouseButton) {
	ctx := dragCtx(node, wx, wy, startX, startY, deltaX, deltaY, button)
	for _, h := range s.handlers.dragStart {
		h.fn(ctx)
	}
	if node != nil && node.OnDragStart != nil {
		node.OnDragStart(ctx)
	}
	s.emit(EventDragStart, node, wx, wy, ctx.LocalX, ctx.LocalY, button, ctx)
}

func (s *Scene) fireDrag(node *Node, wx, wy, startX, startY, deltaX, deltaY float64, button MouseButton) {
	ctx := dragCtx(node, wx, wy, startX, startY, deltaX, deltaY, button)
	for _, h := range s.handlers.drag {
		h.fn(ctx)
	}
	if node != nil && node.OnDrag != nil {
		node.OnDrag(ctx)
	}
	s.emit(EventDrag, node, wx, wy, ctx.LocalX, ctx.LocalY, button, ctx)
}

func (s *Scene) fireDragEnd(node *Node, wx, wy, startX, startY, deltaX, deltaY float64, button MouseButton) {
	ctx := dragCtx(node, wx, wy, startX, startY, deltaX, deltaY, button)
	for _, h := range s.handlers.dragEnd {
		h.fn(ctx)
	}
	if node != nil && node.OnDragEnd != nil {
		node.OnDragEnd(ctx)
	}
	s.emit(EventDragEnd, node, wx, wy, ctx.LocalX, ctx.LocalY, button, ctx)
}

// --- Event sink bridge ---

func (s *Scene) emit(eventType EventType, node *Node, wx, wy, lx, ly float64,
	button MouseButton, drag DragContext) {
	if s.sink == nil || node == nil {
		return
	}
	s.sink.Emit(Event{
		Type:    eventType,
		NodeID:  node.ID,
		Node:    node,
		GlobalX: wx,
		GlobalY: wy,
		LocalX:  lx,
		LocalY:  ly,
		Button:  button,
		StartX:  drag.StartX,
		StartY:  drag.StartY,
		DeltaX:  drag.DeltaX,
		DeltaY:  drag.DeltaY,
	})
}
