package testing

import (
	"fmt"

	"github.com/go-drift/elements/pkg/dom"
)

// Click dispatches a bubbling click event at the first node matched by
// finder. It reports whether no listener called PreventDefault.
func (t *Tester) Click(finder Finder) (bool, error) {
	return t.Fire(finder, dom.NewEvent("click", nil))
}

// Fire dispatches ev at the first node matched by finder.
func (t *Tester) Fire(finder Finder, ev *dom.Event) (bool, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return false, fmt.Errorf("Fire(%s): finder matched no nodes: %s", ev.Type, finder.Description())
	}
	return result.First().DispatchEvent(ev), nil
}

// SetAttribute sets an attribute on every node matched by finder, as a
// script running in one task would. Call Pump to let observers and renders
// catch up.
func (t *Tester) SetAttribute(finder Finder, name, value string) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("SetAttribute(%s): finder matched no nodes: %s", name, finder.Description())
	}
	for _, n := range result.All() {
		n.SetAttribute(name, value)
	}
	return nil
}

// RemoveAttribute removes an attribute from every node matched by finder.
func (t *Tester) RemoveAttribute(finder Finder, name string) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("RemoveAttribute(%s): finder matched no nodes: %s", name, finder.Description())
	}
	for _, n := range result.All() {
		n.RemoveAttribute(name)
	}
	return nil
}
