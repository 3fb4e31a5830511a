// Package fixture loads payload fixtures from YAML or JSON files. A fixture
// file holds one message body, exactly as a dashboard host would send it
// inside a vizData envelope.
package fixture

import (
	"encoding/json"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/infopanel"
	ipjson "github.com/fwojciec/infopanel/json"
	"gopkg.in/yaml.v3"
)

// Fixture is a named message body.
type Fixture struct {
	Name string // file name without extension
	Path string
	Body infopanel.Body
}

// Envelope wraps the fixture body in a data update envelope.
func (f Fixture) Envelope() infopanel.Envelope {
	return infopanel.NewEnvelope(infopanel.DataUpdate{Body: f.Body})
}

// Glob returns the files matching pattern, sorted. The pattern may use **
// and {a,b} alternatives, e.g. "testdata/**/*.{yaml,json}".
func Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	base, pat := doublestar.SplitPattern(filepath.ToSlash(pattern))
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("access %s: %w", base, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", base)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(base), pat, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(filepath.FromSlash(base), filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads a fixture file. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON.
func Load(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var body infopanel.Body
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		body, err = decodeYAML(data)
	default:
		body, err = ipjson.UnmarshalBody(data)
	}
	if err != nil {
		return Fixture{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Fixture{Name: name, Path: path, Body: body}, nil
}

// LoadAll loads every fixture matching pattern, in path order.
func LoadAll(pattern string) ([]Fixture, error) {
	paths, err := Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no fixtures match %s", pattern)
	}
	fixtures := make([]Fixture, 0, len(paths))
	for _, p := range paths {
		f, err := Load(p)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// decodeYAML converts a YAML mapping into a message body by re-encoding each
// top-level value as JSON.
func decodeYAML(data []byte) (infopanel.Body, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	body := make(infopanel.Body, len(doc))
	for k, v := range doc {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		body[k] = raw
	}
	return body, nil
}
