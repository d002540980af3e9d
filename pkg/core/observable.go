package core

import (
	"reflect"
	"slices"
	"sync"
)

// Listenable is implemented by values that notify listeners when they
// change. AddListener returns a function that removes the listener.
type Listenable interface {
	AddListener(fn func()) func()
}

// Notifier keeps a list of listeners and calls them on NotifyListeners.
// Embed it in controllers that want to be used with UseListenable.
//
// The zero value is ready to use.
type Notifier struct {
	listeners []*func()
}

// AddListener registers fn and returns a function that removes it.
func (n *Notifier) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	entry := &fn
	n.listeners = append(n.listeners, entry)
	return func() {
		if i := slices.Index(n.listeners, entry); i >= 0 {
			n.listeners = slices.Delete(n.listeners, i, i+1)
		}
	}
}

// NotifyListeners calls every registered listener in registration order.
// Listeners added during notification are not called until the next one.
func (n *Notifier) NotifyListeners() {
	for _, fn := range slices.Clone(n.listeners) {
		(*fn)()
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	return len(n.listeners)
}

// Observable holds a single value and notifies listeners when it changes.
// It is safe for concurrent use; listeners run on the goroutine that
// called Set.
type Observable[T any] struct {
	mu        sync.RWMutex
	value     T
	listeners map[int]func(T)
	next      int
	equal     func(a, b T) bool
}

// NewObservable creates an observable holding initial. Set is a no-op when
// the new value is deeply equal to the current one.
func NewObservable[T any](initial T) *Observable[T] {
	return NewObservableWithEquality(initial, func(a, b T) bool {
		return reflect.DeepEqual(a, b)
	})
}

// NewObservableWithEquality creates an observable that uses equal to
// suppress redundant notifications. A nil equal notifies on every Set.
func NewObservableWithEquality[T any](initial T, equal func(a, b T) bool) *Observable[T] {
	return &Observable[T]{
		value:     initial,
		listeners: make(map[int]func(T)),
		equal:     equal,
	}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Set stores value and notifies listeners if it changed.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	if o.equal != nil && o.equal(o.value, value) {
		o.mu.Unlock()
		return
	}
	o.value = value
	fns := make([]func(T), 0, len(o.listeners))
	for i := range o.next {
		if fn, ok := o.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

// AddListener registers fn and returns a function that removes it.
func (o *Observable[T]) AddListener(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.next
	o.next++
	o.listeners[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}

// container is implemented by the observable collections. Values of these
// types stored inside a Store or List are observed through their parent.
type container interface {
	Listenable
	Version() uint64
}

// equalValues compares two stored values. Containers compare by identity so
// that swapping one container for another with equal contents still counts
// as a change.
func equalValues(a, b any) bool {
	_, ac := a.(container)
	_, bc := b.(container)
	if ac || bc {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// link tracks the subscription of a parent to a nested container.
type link struct {
	child  container
	remove func()
}

// Store is an ordered key/value container that notifies on every effective
// write or delete. Writing a key to a value equal to the current one is a
// no-op.
//
// Nested observation is opt-in: a *Store or *List stored as a value is
// linked to its parent the first time it is read through Get, after which
// its own changes notify the parent under the key it is stored at. Other
// values are stored as is and never intercepted.
//
// A Store is not safe for concurrent use.
type Store struct {
	Notifier
	keys     []string
	values   map[string]any
	version  uint64
	onChange []*func(key string)
	links    map[string]link
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]any),
		links:  make(map[string]link),
	}
}

// Get returns the value stored at key.
func (s *Store) Get(key string) (any, bool) {
	v, ok := s.values[key]
	if ok {
		s.link(key, v)
	}
	return v, ok
}

// Has reports whether key is set.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (s *Store) Keys() []string {
	return slices.Clone(s.keys)
}

// Len returns the number of keys.
func (s *Store) Len() int { return len(s.keys) }

// Version returns a counter incremented on every change, including changes
// of linked nested containers.
func (s *Store) Version() uint64 { return s.version }

// Set stores value at key and reports whether anything changed.
func (s *Store) Set(key string, value any) bool {
	old, ok := s.values[key]
	if ok && equalValues(old, value) {
		return false
	}
	if !ok {
		s.keys = append(s.keys, key)
	}
	s.unlink(key)
	s.values[key] = value
	s.changed(key)
	return true
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	s.unlink(key)
	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
	s.changed(key)
	return true
}

// OnChange registers fn to be called with the affected key after every
// change. It returns a function that removes fn.
func (s *Store) OnChange(fn func(key string)) func() {
	entry := &fn
	s.onChange = append(s.onChange, entry)
	return func() {
		if i := slices.Index(s.onChange, entry); i >= 0 {
			s.onChange = slices.Delete(s.onChange, i, i+1)
		}
	}
}

func (s *Store) changed(key string) {
	s.version++
	for _, fn := range slices.Clone(s.onChange) {
		(*fn)(key)
	}
	s.NotifyListeners()
}

func (s *Store) link(key string, v any) {
	c, ok := v.(container)
	if !ok {
		return
	}
	if l, ok := s.links[key]; ok && l.child == c {
		return
	}
	s.unlink(key)
	s.links[key] = link{child: c, remove: c.AddListener(func() { s.changed(key) })}
}

func (s *Store) unlink(key string) {
	if l, ok := s.links[key]; ok {
		l.remove()
		delete(s.links, key)
	}
}

// List is an observable slice. Like Store, it links nested containers on
// first read through At.
//
// A List is not safe for concurrent use.
type List struct {
	Notifier
	items   []any
	links   map[container]func()
	version uint64
}

// NewList creates a list holding items.
func NewList(items ...any) *List {
	return &List{
		items: slices.Clone(items),
		links: make(map[container]func()),
	}
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Version returns a counter incremented on every change.
func (l *List) Version() uint64 { return l.version }

// At returns the item at index i.
func (l *List) At(i int) any {
	v := l.items[i]
	if c, ok := v.(container); ok {
		if _, linked := l.links[c]; !linked {
			l.links[c] = c.AddListener(l.changed)
		}
	}
	return v
}

// Values returns a copy of the items. Nested containers are not linked.
func (l *List) Values() []any {
	return slices.Clone(l.items)
}

// Set replaces the item at index i and reports whether it changed.
func (l *List) Set(i int, v any) bool {
	if equalValues(l.items[i], v) {
		return false
	}
	l.unlink(l.items[i])
	l.items[i] = v
	l.changed()
	return true
}

// Append adds items to the end of the list.
func (l *List) Append(items ...any) {
	if len(items) == 0 {
		return
	}
	l.items = append(l.items, items...)
	l.changed()
}

// Remove deletes the item at index i.
func (l *List) Remove(i int) {
	l.unlink(l.items[i])
	l.items = slices.Delete(l.items, i, i+1)
	l.changed()
}

func (l *List) changed() {
	l.version++
	l.NotifyListeners()
}

func (l *List) unlink(v any) {
	c, ok := v.(container)
	if !ok || l.count(c) > 1 {
		return
	}
	if remove, ok := l.links[c]; ok {
		remove()
		delete(l.links, c)
	}
}

func (l *List) count(c container) int {
	n := 0
	for _, o := range l.items {
		if oc, ok := o.(container); ok && oc == c {
			n++
		}
	}
	return n
}
