package dom

import "slices"

// Event is dispatched through the tree with DispatchEvent.
type Event struct {
	Type    string
	Detail  any
	Bubbles bool
	// Composed events cross shadow boundaries to the host.
	Composed bool

	Target        *Node
	CurrentTarget *Node

	stopped          bool
	stoppedImmediate bool
	defaultPrevented bool
}

// NewEvent creates a bubbling event carrying detail.
func NewEvent(typ string, detail any) *Event {
	return &Event{Type: typ, Detail: detail, Bubbles: true}
}

// StopPropagation prevents the event from reaching further nodes.
func (e *Event) StopPropagation() { e.stopped = true }

// StopImmediatePropagation also skips the remaining listeners on the current
// node.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.stoppedImmediate = true
}

// PreventDefault marks the default action as cancelled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// ListenerOptions configure AddEventListenerWithOptions.
type ListenerOptions struct {
	Capture bool
	Once    bool
}

type listener struct {
	fn      func(*Event)
	capture bool
	once    bool
	removed bool
}

// AddEventListener registers a bubble-phase listener and returns a function
// that removes it.
func (n *Node) AddEventListener(typ string, fn func(*Event)) func() {
	return n.AddEventListenerWithOptions(typ, fn, ListenerOptions{})
}

// AddEventListenerWithOptions registers a listener with the given options and
// returns a function that removes it.
func (n *Node) AddEventListenerWithOptions(typ string, fn func(*Event), opts ListenerOptions) func() {
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn, capture: opts.Capture, once: opts.Once}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() { n.removeListener(typ, l) }
}

func (n *Node) removeListener(typ string, l *listener) {
	l.removed = true
	n.listeners[typ] = slices.DeleteFunc(n.listeners[typ], func(x *listener) bool { return x == l })
	if len(n.listeners[typ]) == 0 {
		delete(n.listeners, typ)
	}
}

// DispatchEvent dispatches ev with n as the target: capture listeners from
// the root down, then target listeners, then bubble listeners back up when
// ev.Bubbles is set. It returns false when a listener called PreventDefault.
func (n *Node) DispatchEvent(ev *Event) bool {
	ev.Target = n
	path := eventPath(n, ev.Composed)

	for i := len(path) - 1; i > 0 && !ev.stopped; i-- {
		path[i].invoke(ev, phaseCapture)
	}
	if !ev.stopped {
		n.invoke(ev, phaseTarget)
	}
	if ev.Bubbles {
		for _, node := range path[1:] {
			if ev.stopped {
				break
			}
			node.invoke(ev, phaseBubble)
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

type phase int

const (
	phaseCapture phase = iota
	phaseTarget
	phaseBubble
)

func (n *Node) invoke(ev *Event, p phase) {
	ev.CurrentTarget = n
	for _, l := range slices.Clone(n.listeners[ev.Type]) {
		if l.removed {
			continue
		}
		switch {
		case p == phaseCapture && !l.capture, p == phaseBubble && l.capture:
			continue
		}
		if l.once {
			n.removeListener(ev.Type, l)
		}
		l.fn(ev)
		if ev.stoppedImmediate {
			return
		}
	}
}

// eventPath returns n followed by its ancestors. Composed paths continue from
// a shadow root to its host.
func eventPath(n *Node, composed bool) []*Node {
	var path []*Node
	for cur := n; cur != nil; {
		path = append(path, cur)
		switch {
		case cur.parent != nil:
			cur = cur.parent
		case composed && cur.host != nil:
			cur = cur.host
		default:
			cur = nil
		}
	}
	return path
}
