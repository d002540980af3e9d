// Package css implements the rule-insertable style sheet the runtime
// attaches to documents and shadow roots, a typed rule builder, and the
// check for values the style engine understands natively.
//
// Rules are built, never parsed, on the hot path:
//
//	rule := css.NewRule(`m-box[bg="purple.600"]`).
//	    Set("background", "var(--m-color-purple-600)")
//	sheet.AppendRule(rule)
//
// Static component styles written as CSS text go through Parse, which is
// backed by github.com/aymerick/douceur.
package css

import (
	"fmt"
	"strings"
)

// Sheet is an ordered, rule-insertable style sheet.
//
// Sheet is not safe for concurrent use; like everything else in the runtime
// it is mutated from the event loop only.
type Sheet struct {
	rules     []*Rule
	bySel     map[string]*Rule
	listeners map[int]func(*Rule)
	nextID    int
}

// NewSheet creates an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{bySel: make(map[string]*Rule)}
}

// Len returns the number of top-level rules.
func (s *Sheet) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the top-level rules in order.
func (s *Sheet) Rules() []*Rule {
	out := make([]*Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// FindRule returns the first rule whose selector text equals selector.
func (s *Sheet) FindRule(selector string) *Rule {
	return s.bySel[selector]
}

// Has reports whether a rule with the given selector text exists.
func (s *Sheet) Has(selector string) bool {
	_, ok := s.bySel[selector]
	return ok
}

// InsertRule inserts rule at index, shifting later rules, and returns the
// index. An index outside [0, Len()] is an error.
func (s *Sheet) InsertRule(rule *Rule, index int) (int, error) {
	if rule == nil {
		return 0, fmt.Errorf("css: insert nil rule")
	}
	if index < 0 || index > len(s.rules) {
		return 0, fmt.Errorf("css: insert index %d out of range [0,%d]", index, len(s.rules))
	}
	s.rules = append(s.rules, nil)
	copy(s.rules[index+1:], s.rules[index:])
	s.rules[index] = rule
	s.track(rule)
	s.notify(rule)
	return index, nil
}

// AppendRule adds rule at the end of the sheet and returns its index.
func (s *Sheet) AppendRule(rule *Rule) int {
	idx, _ := s.InsertRule(rule, len(s.rules))
	return idx
}

// DeleteRule removes the rule at index.
func (s *Sheet) DeleteRule(index int) error {
	if index < 0 || index >= len(s.rules) {
		return fmt.Errorf("css: delete index %d out of range [0,%d)", index, len(s.rules))
	}
	s.rules = append(s.rules[:index], s.rules[index+1:]...)
	s.reindex()
	return nil
}

// ReplaceSync replaces every rule with the rules parsed from text.
// On a parse error the sheet is left unchanged.
func (s *Sheet) ReplaceSync(text string) error {
	rules, err := Parse(text)
	if err != nil {
		return err
	}
	s.rules = rules
	s.reindex()
	for _, r := range rules {
		s.notify(r)
	}
	return nil
}

// AppendText parses text and appends the resulting rules.
func (s *Sheet) AppendText(text string) error {
	rules, err := Parse(text)
	if err != nil {
		return err
	}
	for _, r := range rules {
		s.AppendRule(r)
	}
	return nil
}

// OnInsert registers fn to be called with every rule added to the sheet.
// The returned function unregisters it.
func (s *Sheet) OnInsert(fn func(*Rule)) func() {
	if fn == nil {
		return func() {}
	}
	if s.listeners == nil {
		s.listeners = make(map[int]func(*Rule))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// String renders the sheet, one rule per line.
func (s *Sheet) String() string {
	var sb strings.Builder
	for i, r := range s.rules {
		if i > 0 {
			sb.WriteByte('\n')
		}
		r.write(&sb)
	}
	return sb.String()
}

func (s *Sheet) track(rule *Rule) {
	key := rule.SelectorText()
	if _, exists := s.bySel[key]; !exists {
		s.bySel[key] = rule
	}
}

func (s *Sheet) reindex() {
	s.bySel = make(map[string]*Rule, len(s.rules))
	for _, r := range s.rules {
		s.track(r)
	}
}

func (s *Sheet) notify(rule *Rule) {
	for _, fn := range s.listeners {
		fn(rule)
	}
}
