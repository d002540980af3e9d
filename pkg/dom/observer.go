package dom

import "slices"

// MutationType names the kind of a mutation record.
type MutationType string

const (
	MutationChildList     MutationType = "childList"
	MutationAttributes    MutationType = "attributes"
	MutationCharacterData MutationType = "characterData"
)

// MutationRecord describes a single change to the tree.
type MutationRecord struct {
	Type          MutationType
	Target        *Node
	AddedNodes    []*Node
	RemovedNodes  []*Node
	AttributeName string
	// OldValue is set for attribute records when AttributeOldValue was
	// requested, and for character data records when CharacterDataOldValue
	// was requested. nil means the attribute was absent.
	OldValue *string
}

// ObserveOptions selects which mutations an observer receives.
type ObserveOptions struct {
	ChildList             bool
	Attributes            bool
	AttributeOldValue     bool
	AttributeFilter       []string
	CharacterData         bool
	CharacterDataOldValue bool
	Subtree               bool
}

type registration struct {
	observer *MutationObserver
	opts     ObserveOptions
}

// MutationObserver receives batches of mutation records. Records are
// delivered asynchronously, in a microtask, in the order they happened.
type MutationObserver struct {
	doc      *Document
	callback func([]MutationRecord, *MutationObserver)
	records  []MutationRecord
	targets  []*Node
}

// NewMutationObserver creates an observer bound to doc's event loop.
func NewMutationObserver(doc *Document, callback func([]MutationRecord, *MutationObserver)) *MutationObserver {
	return &MutationObserver{doc: doc, callback: callback}
}

// Observe starts observing target. Observing the same target again replaces
// its options.
func (o *MutationObserver) Observe(target *Node, opts ObserveOptions) {
	for _, reg := range target.observers {
		if reg.observer == o {
			reg.opts = opts
			return
		}
	}
	target.observers = append(target.observers, &registration{observer: o, opts: opts})
	o.targets = append(o.targets, target)
}

// Disconnect stops all observation and drops pending records.
func (o *MutationObserver) Disconnect() {
	for _, t := range o.targets {
		t.observers = slices.DeleteFunc(t.observers, func(r *registration) bool {
			return r.observer == o
		})
	}
	o.targets = nil
	o.records = nil
}

// TakeRecords returns and clears pending records.
func (o *MutationObserver) TakeRecords() []MutationRecord {
	recs := o.records
	o.records = nil
	return recs
}

func (opts ObserveOptions) matches(rec *MutationRecord) bool {
	switch rec.Type {
	case MutationChildList:
		return opts.ChildList
	case MutationAttributes:
		if !opts.Attributes && !opts.AttributeOldValue && len(opts.AttributeFilter) == 0 {
			return false
		}
		return len(opts.AttributeFilter) == 0 || slices.Contains(opts.AttributeFilter, rec.AttributeName)
	case MutationCharacterData:
		return opts.CharacterData || opts.CharacterDataOldValue
	}
	return false
}

// queueMutation hands rec to every interested observer registered on the
// target or, for subtree observers, on an ancestor.
func (n *Node) queueMutation(rec MutationRecord) {
	if n.owner == nil {
		return
	}
	var delivered []*MutationObserver
	for cur := n; cur != nil; cur = cur.parent {
		for _, reg := range cur.observers {
			if cur != n && !reg.opts.Subtree {
				continue
			}
			if !reg.opts.matches(&rec) || slices.Contains(delivered, reg.observer) {
				continue
			}
			delivered = append(delivered, reg.observer)
			out := rec
			if rec.Type == MutationAttributes && !reg.opts.AttributeOldValue {
				out.OldValue = nil
			}
			if rec.Type == MutationCharacterData && !reg.opts.CharacterDataOldValue {
				out.OldValue = nil
			}
			reg.observer.records = append(reg.observer.records, out)
			n.owner.scheduleMutationDelivery(reg.observer)
		}
	}
}
