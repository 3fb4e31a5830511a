package fixture

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/infopanel"
	ipjson "github.com/fwojciec/infopanel/json"
	"github.com/tidwall/sjson"
)

// Override replaces one value inside every fixture body. Path uses sjson
// syntax, e.g. "style.headerText.value" or "tables.DEFAULT.0.infoText.0".
type Override struct {
	Path  string
	Value string
}

// ParseOverride parses "path=value".
func ParseOverride(s string) (Override, error) {
	path, value, ok := strings.Cut(s, "=")
	if !ok || path == "" {
		return Override{}, fmt.Errorf("override %q: want path=value: %w", s, infopanel.ErrValidation)
	}
	return Override{Path: path, Value: value}, nil
}

// Apply sets the override in b and returns the result; b is not modified.
// A value that is valid JSON is inserted as JSON, anything else as a string.
func (o Override) Apply(b infopanel.Body) (infopanel.Body, error) {
	if b == nil {
		b = infopanel.Body{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("override %s: %w", o.Path, err)
	}
	raw := []byte(o.Value)
	if json.Valid(raw) {
		data, err = sjson.SetRawBytes(data, o.Path, raw)
	} else {
		data, err = sjson.SetBytes(data, o.Path, o.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("override %s: %w", o.Path, err)
	}
	return ipjson.UnmarshalBody(data)
}

// Overrides is a list of overrides. It implements flag.Value so it can back
// a repeatable -set flag.
type Overrides []Override

func (o *Overrides) String() string {
	parts := make([]string, len(*o))
	for i, ov := range *o {
		parts[i] = ov.Path + "=" + ov.Value
	}
	return strings.Join(parts, ",")
}

func (o *Overrides) Set(s string) error {
	ov, err := ParseOverride(s)
	if err != nil {
		return err
	}
	*o = append(*o, ov)
	return nil
}

// ApplyAll applies every override, in order, to every fixture.
func (o Overrides) ApplyAll(fixtures []Fixture) ([]Fixture, error) {
	if len(o) == 0 {
		return fixtures, nil
	}
	out := make([]Fixture, len(fixtures))
	for i, f := range fixtures {
		for _, ov := range o {
			body, err := ov.Apply(f.Body)
			if err != nil {
				return nil, fmt.Errorf("fixture %s: %w", f.Name, err)
			}
			f.Body = body
		}
		out[i] = f
	}
	return out, nil
}
