package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTheme(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCSSCommand(t *testing.T) {
	theme := writeTheme(t, "theme.yaml", "version: 1.0.0\n")

	out, err := run(t, "--theme", theme, "css", "--tag", "m-box", "p=small", "bg=purple.600", "column")
	require.NoError(t, err)

	assert.Contains(t, out, `m-box[bg="purple.600"] > :first-child {`)
	assert.Contains(t, out, "background")
	assert.Contains(t, out, ": var(--m-color-purple-600);")
	assert.Contains(t, out, `m-box[p="small"] > :first-child {`)
	assert.NotContains(t, out, `m-box[column=""] > :first-child {`)
}

func TestCSSCommandNoGhost(t *testing.T) {
	theme := writeTheme(t, "theme.yaml", "version: 1.0.0\n")

	out, err := run(t, "--theme", theme, "css", "--tag", "x-panel", "--no-ghost", "bg=purple.600")
	require.NoError(t, err)
	assert.Contains(t, out, `x-panel[bg="purple.600"] {`)
	assert.NotContains(t, out, `x-panel[bg="purple.600"] > :first-child`)
}

func TestCSSCommandFlexAs(t *testing.T) {
	theme := writeTheme(t, "theme.yaml", "version: 1.0.0\n")

	out, err := run(t, "--theme", theme, "css", "--tag", "m-flex", "--as", "section", "gap=large")
	require.NoError(t, err)
	assert.Contains(t, out, "m-flex[as] {")
	assert.Contains(t, out, "display")
	assert.Contains(t, out, ": contents;")
}

func TestCSSCommandThemePrefix(t *testing.T) {
	theme := writeTheme(t, "theme.toml", "version = \"1.0.0\"\nprefix = \"ui\"\n")

	out, err := run(t, "--theme", theme, "css", "bg=purple.600")
	require.NoError(t, err)
	assert.Contains(t, out, ": var(--ui-color-purple-600);")
}

func TestCSSCommandInvalidTag(t *testing.T) {
	theme := writeTheme(t, "theme.yaml", "version: 1.0.0\n")

	_, err := run(t, "--theme", theme, "css", "--tag", "box", "p=small")
	assert.Error(t, err)
}

func TestResolveCommand(t *testing.T) {
	theme := writeTheme(t, "theme.yaml", "version: 1.0.0\n")

	out, err := run(t, "--theme", theme, "resolve", "radius=8", "bg-hover=purple.600", "data-id=7")
	require.NoError(t, err)
	assert.Contains(t, out, "radius=8")
	assert.Contains(t, out, "border-radius")
	assert.Contains(t, out, ": 8px;")
	assert.Contains(t, out, "on :hover")
	assert.Contains(t, out, ": var(--m-color-purple-600);")
	assert.Contains(t, out, "(not a style attribute)")
}

func TestResolveCommandRequiresArgs(t *testing.T) {
	theme := writeTheme(t, "theme.yaml", "version: 1.0.0\n")

	_, err := run(t, "--theme", theme, "resolve")
	assert.Error(t, err)
}

func TestInvalidTheme(t *testing.T) {
	theme := writeTheme(t, "theme.yaml", "version: 2.0.0\n")

	_, err := run(t, "--theme", theme, "version")
	assert.ErrorContains(t, err, "is not a v1 semantic version")
}

func TestVersionCommand(t *testing.T) {
	theme := writeTheme(t, "theme.yaml", "version: 1.0.0\n")

	out, err := run(t, "--theme", theme, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "elements dev")
	assert.Contains(t, out, "theme: "+theme)
}

func TestParseAttributes(t *testing.T) {
	attrs, err := parseAttributes([]string{"P=small", "column", "title=a=b"})
	require.NoError(t, err)
	assert.Equal(t, []attribute{{"p", "small"}, {"column", ""}, {"title", "a=b"}}, attrs)

	_, err = parseAttributes([]string{"=x"})
	assert.Error(t, err)
}
