package core

import (
	"maps"
	"slices"

	"github.com/go-drift/elements/pkg/dom"
)

// DefaultSlot names the bucket of children without a slot attribute.
const DefaultSlot = ""

// Slots partitions a host's content children by slot name. Each bucket
// keeps document order.
type Slots map[string][]*dom.Node

// Names returns the non-empty bucket names, sorted.
func (s Slots) Names() []string {
	names := slices.Collect(maps.Keys(s))
	slices.Sort(names)
	return names
}

func (s Slots) contains(n *dom.Node) bool {
	for _, nodes := range s {
		if slices.Contains(nodes, n) {
			return true
		}
	}
	return false
}

// SlotName returns the slot a node is assigned to.
func SlotName(n *dom.Node) string {
	if !n.IsElement() {
		return DefaultSlot
	}
	return n.Attr("slot")
}

// Slot returns the nodes assigned to the named slot.
func (c *Component) Slot(name string) []*dom.Node {
	return slices.Clone(c.slots[name])
}

// Slots returns a copy of the current assignment.
func (c *Component) Slots() Slots {
	out := make(Slots, len(c.slots))
	for k, v := range c.slots {
		out[k] = slices.Clone(v)
	}
	return out
}

func (c *Component) isOwned(n *dom.Node) bool { return slices.Contains(c.owned, n) }

func (c *Component) isTracked(n *dom.Node) bool { return slices.Contains(c.tracked, n) }

// distribute recomputes the slot assignment. Content already placed into
// render output stays assigned ahead of new direct children.
func (c *Component) distribute() {
	var nodes []*dom.Node
	for _, n := range c.tracked {
		if n.Parent() != c.host && c.host.Contains(n) {
			nodes = append(nodes, n)
		}
	}
	for _, n := range c.host.Children() {
		if !c.isOwned(n) {
			nodes = append(nodes, n)
		}
	}

	slots := Slots{}
	for _, n := range nodes {
		name := SlotName(n)
		slots[name] = append(slots[name], n)
	}
	c.slots = slots
	c.tracked = nodes
	c.stats.Distributions++
}

// needsDistribution reports whether a mutation batch changed the content
// children: a direct child was added that is neither tracked nor render
// output, or a tracked node left the host subtree.
func (c *Component) needsDistribution(records []dom.MutationRecord) bool {
	childList := false
	for _, rec := range records {
		if rec.Type != dom.MutationChildList {
			continue
		}
		childList = true
		for _, n := range rec.AddedNodes {
			if n.Parent() == c.host && !c.isTracked(n) && !c.isOwned(n) {
				return true
			}
		}
	}
	if !childList {
		return false
	}
	for _, n := range c.tracked {
		if !c.host.Contains(n) {
			return true
		}
	}
	return false
}

func (c *Component) onMutations(records []dom.MutationRecord) {
	if c.phase != Attached || !c.needsDistribution(records) {
		return
	}
	c.distribute()
	c.RequestRender()
}
