package scene

// syntheticPointerEvent represents a single injected pointer event.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// InjectPress queues a pointer press event at the given coordinates
// (left button). The event is consumed on the next frame's Update call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move event at the given coordinates with the
// button held down. Use this between InjectPress and InjectRelease to
// simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectRightClick queues a right-button press and release at the same
// coordinates. Consumes two frames.
func (s *Scene) InjectRightClick(x, y float64) {
	s.injectQueue = append(s.injectQueue,
		syntheticPointerEvent{x: x, y: y, pressed: true, button: MouseButtonRight},
		syntheticPointerEvent{x: x, y: y, pressed: false, button: MouseButtonRight},
	)
}

// InjectDoubleClick queues two click pairs at the same coordinates. The
// second click lands within the double-click delay as long as frames run at
// typical rates, and fires the double-click event. Consumes four frames.
func (s *Scene) InjectDoubleClick(x, y float64) {
	s.InjectClick(x, y)
	s.InjectClick(x, y)
}

/// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// HasPendingInput reports whether injected events are still queued.
func (s *Scene) HasPendingInput() bool {
	return len(s.injectQueue) > 0
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (device
// input should be skipped for the frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(evt.x, evt.y, evt.pressed, evt.button)
	return true
}
