package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/elements/pkg/dom"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the mounted tree and the synthesized style rules.
type Snapshot struct {
	Tree  []*NodeSnapshot `json:"tree"`
	Rules []string        `json:"rules,omitempty"`
}

// NodeSnapshot is a serialized node. Elements carry Tag and Attrs, text
// nodes carry Text.
type NodeSnapshot struct {
	Tag      string          `json:"tag,omitempty"`
	Attrs    [][2]string     `json:"attrs,omitempty"`
	Text     string          `json:"text,omitempty"`
	Shadow   []*NodeSnapshot `json:"shadow,omitempty"`
	Children []*NodeSnapshot `json:"children,omitempty"`
}

// CaptureSnapshot captures the body's children and the rules of the
// tester's style registry, in insertion order.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	for _, c := range t.doc.Body().Children() {
		if n := captureNode(c); n != nil {
			snap.Tree = append(snap.Tree, n)
		}
	}
	for _, r := range t.styles.Sheet().Rules() {
		snap.Rules = append(snap.Rules, r.String())
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// ELEMENTS_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("ELEMENTS_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: ELEMENTS_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s (-expected +actual)\n%s\n\nTo update: ELEMENTS_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns the difference between other (expected) and this snapshot.
// Returns empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	return cmp.Diff(other, s)
}

func captureNode(n *dom.Node) *NodeSnapshot {
	switch n.Type {
	case dom.TextNode:
		return &NodeSnapshot{Text: n.Data()}
	case dom.ElementNode:
	default:
		return nil
	}
	out := &NodeSnapshot{Tag: n.Tag()}
	for _, a := range n.Attributes() {
		out.Attrs = append(out.Attrs, [2]string{a.Name, a.Value})
	}
	if root := n.ShadowRoot(); root != nil {
		for _, c := range root.Children() {
			if cn := captureNode(c); cn != nil {
				out.Shadow = append(out.Shadow, cn)
			}
		}
	}
	for _, c := range n.Children() {
		if cn := captureNode(c); cn != nil {
			out.Children = append(out.Children, cn)
		}
	}
	return out
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
