package launchpad

// syntheticPointerEvent represents a single injected pointer event in scene
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	cancel  bool
	button  MouseButton
}

// InjectPress queues a left-button press at (x, y). The event is consumed on
// the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.InjectButtonPress(x, y, MouseButtonLeft)
}

// InjectButtonPress queues a press of the given button at (x, y).
func (s *Scene) InjectButtonPress(x, y float64, button MouseButton) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: true, button: button,
	})
}

// InjectMove queues a pointer move to (x, y) with the button held down.
// Use this between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: true, button: MouseButtonLeft,
	})
}

// InjectHover queues a pointer move to (x, y) with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, button: MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, button: MouseButtonLeft,
	})
}

// InjectCancel queues a pointer cancel, as if the window lost focus while
// the button was held.
func (s *Scene) InjectCancel() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{cancel: true})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
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
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// PendingInput reports how many injected events are still queued.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it to
// pointer 0. Returns true if an event was consumed (real input is skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.cancel {
		s.cancelPointer(0)
		return true
	}
	s.processPointer(0, evt.x, evt.y, evt.pressed, evt.button, 0)
	return true
}
