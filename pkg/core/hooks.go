package core

// UseListenable subscribes to a listenable and requests a render on every
// notification. The subscription is removed on the next detach, so call it
// from Attached.
//
// Example:
//
//	func (p *Picker) Attached() {
//	    core.UseListenable(p, p.selection)
//	}
func UseListenable(e Element, listenable Listenable) {
	c := e.component()
	c.OnDetach(listenable.AddListener(c.RequestRender))
}

// UseObservable subscribes to an observable and requests a render when it
// changes. Like UseListenable, the subscription lasts until the next
// detach.
//
// Example:
//
//	func (c *Clock) Attached() {
//	    core.UseObservable(c, c.now)
//	}
//
//	func (c *Clock) Render() templ.Component {
//	    return clockView(c.now.Value())
//	}
func UseObservable[T any](e Element, obs *Observable[T]) {
	c := e.component()
	c.OnDetach(obs.AddListener(func(T) {
		c.RequestRender()
	}))
}

// Managed holds a value and requests a render when it changes.
// Unlike Observable, it is tied to a specific component and has no
// listeners of its own.
//
// Managed is NOT thread-safe. To update from a background goroutine, go
// through the event loop:
//
//	go func() {
//	    result := fetch()
//	    doc.Loop().Dispatch(func() {
//	        s.data.Set(result)
//	    })
//	}()
type Managed[T any] struct {
	c     *Component
	value T
}

// NewManaged creates a managed value bound to e.
func NewManaged[T any](e Element, initial T) *Managed[T] {
	return &Managed[T]{c: e.component(), value: initial}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and requests a render.
func (m *Managed[T]) Set(value T) {
	m.value = value
	m.c.RequestRender()
}

// Update applies a transformation to the current value and requests a
// render.
func (m *Managed[T]) Update(transform func(T) T) {
	m.value = transform(m.value)
	m.c.RequestRender()
}
