// Package config loads theme files that customize the token catalog.
//
// A theme file is YAML or TOML:
//
//	version: 1.0.0
//	prefix: ui
//	sizes: [small, medium, large]
//	intents: [info, danger]
//	ghost: false
//
// Fields left out keep the built-in catalog's values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/elements/pkg/logging"
	"github.com/go-drift/elements/pkg/theme"
)

// ThemeFile is the theme path relative to the XDG config directories.
const ThemeFile = "elements/theme.yaml"

// ProjectFiles are looked up in the working directory and its parents
// before falling back to ThemeFile.
var ProjectFiles = []string{"elements.yaml", "elements.yml", "elements.toml"}

// File is a parsed theme file.
type File struct {
	Version string   `yaml:"version" toml:"version" validate:"required,themeversion"`
	Prefix  *string  `yaml:"prefix" toml:"prefix" validate:"omitempty,token"`
	Sizes   []string `yaml:"sizes" toml:"sizes" validate:"omitempty,unique,dive,token"`
	Intents []string `yaml:"intents" toml:"intents" validate:"omitempty,unique,dive,token"`
	Ghost   *bool    `yaml:"ghost" toml:"ghost"`
}

// Catalog applies the file on top of base. Empty lists keep base's scale.
func (f *File) Catalog(base *theme.Catalog) *theme.Catalog {
	if base == nil {
		base = theme.Default()
	}
	var sizes, intents []string
	if len(f.Sizes) > 0 {
		sizes = f.Sizes
	}
	if len(f.Intents) > 0 {
		intents = f.Intents
	}
	return base.CopyWith(f.Prefix, sizes, intents, f.Ghost)
}

// Resolved is the outcome of Resolve.
type Resolved struct {
	// Path is the theme file used, or "" when none was found.
	Path    string
	Version string
	Catalog *theme.Catalog
}

// Parse decodes data in the given format ("yaml", "yml" or "toml") and
// validates it. Unknown fields are rejected.
func Parse(data []byte, format string) (*File, error) {
	var f File
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse theme: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse theme: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported theme format %q", format)
	}
	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the theme file at path. The format follows the
// extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadOptional reads path if it exists. A missing file yields nil, nil.
func LoadOptional(path string) (*File, error) {
	f, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return f, err
}

// Resolve loads the theme at path, or when path is empty the first theme
// found by Find starting at dir. Without any theme file the built-in
// catalog is returned.
func Resolve(path, dir string) (*Resolved, error) {
	if path == "" {
		path = Find(dir)
	}
	if path == "" {
		return &Resolved{Catalog: theme.Default()}, nil
	}

	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	logging.Get("config").Debug().Str("path", path).Str("version", f.Version).Msg("theme loaded")
	return &Resolved{
		Path:    path,
		Version: f.Version,
		Catalog: f.Catalog(nil),
	}, nil
}

// Find walks up from dir looking for one of ProjectFiles, then searches
// the XDG config directories for ThemeFile. It returns "" when nothing is
// found.
func Find(dir string) string {
	if dir != "" {
		for {
			for _, name := range ProjectFiles {
				candidate := filepath.Join(dir, name)
				if _, err := os.Stat(candidate); err == nil {
					return candidate
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if path, err := xdg.SearchConfigFile(ThemeFile); err == nil {
		return path
	}
	return ""
}
