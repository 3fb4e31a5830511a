package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fwojciec/infopanel"
)

// stylePropertyDTO is the wire format of a style property.
type stylePropertyDTO struct {
	Value        json.RawMessage `json:"value"`
	DefaultValue json.RawMessage `json:"defaultValue"`
}

// colorDTO is the wire format of a color value.
type colorDTO struct {
	Color json.RawMessage `json:"color"`
}

// DecodePayload decodes a transformed message body into a Payload. It
// satisfies infopanel.PayloadDecoder.
func DecodePayload(b infopanel.Body) (infopanel.Payload, error) {
	var p infopanel.Payload

	tables, err := decodeTables(b["tables"])
	if err != nil {
		return infopanel.Payload{}, fmt.Errorf("tables: %w", err)
	}
	p.Tables = tables

	style, err := decodeStyle(b["style"])
	if err != nil {
		return infopanel.Payload{}, fmt.Errorf("style: %w", err)
	}
	p.Style = style

	p.Fields = b["fields"]
	p.Theme = b["theme"]
	p.Interactions = b["interactions"]
	return p, nil
}

// UnmarshalPayload decodes a JSON object straight into a Payload.
func UnmarshalPayload(data []byte) (infopanel.Payload, error) {
	body, err := UnmarshalBody(data)
	if err != nil {
		return infopanel.Payload{}, err
	}
	return DecodePayload(body)
}

var _ infopanel.PayloadDecoder = DecodePayload

// decodeTables reads the default role strictly and every other role on a
// best-effort basis: a role that is not an array of objects is dropped.
func decodeTables(raw json.RawMessage) (infopanel.Tables, error) {
	if isNull(raw) {
		return nil, nil
	}
	var dto map[string]json.RawMessage
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}
	tables := make(infopanel.Tables, len(dto))
	for role, v := range dto {
		rows, err := decodeRows(v, role == infopanel.DefaultRole)
		if err != nil {
			if role == infopanel.DefaultRole {
				return nil, fmt.Errorf("%s %w", role, err)
			}
			continue
		}
		tables[role] = rows
	}
	return tables, nil
}

func decodeRows(raw json.RawMessage, strict bool) ([]infopanel.Row, error) {
	if isNull(raw) {
		return nil, nil
	}
	var dto []json.RawMessage
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}
	rows := make([]infopanel.Row, 0, len(dto))
	for i, v := range dto {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(v, &fields); err != nil {
			if strict {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			continue
		}
		r := make(infopanel.Row, len(fields))
		for field, fv := range fields {
			if strict && field == infopanel.InfoTextField {
				values, err := decodeValues(fv)
				if err != nil {
					return nil, fmt.Errorf("row %d field %s: %w", i, field, err)
				}
				r[field] = values
				continue
			}
			r[field] = looseValues(fv)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// decodeValues accepts an array of scalars or a single scalar.
func decodeValues(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return nil, nil
	}
	raw = bytes.TrimSpace(raw)
	if raw[0] != '[' {
		s, _, err := scalarText(raw)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	values := make([]string, len(elems))
	for i, e := range elems {
		s, _, err := scalarText(e)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = s
	}
	return values, nil
}

// looseValues is decodeValues for fields rendering never reads. Values that
// are not scalars are kept as compact JSON text.
func looseValues(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	raw = bytes.TrimSpace(raw)
	var elems []json.RawMessage
	if raw[0] != '[' || json.Unmarshal(raw, &elems) != nil {
		elems = []json.RawMessage{raw}
	}
	values := make([]string, len(elems))
	for i, e := range elems {
		values[i] = looseText(e)
	}
	return values
}

func looseText(raw json.RawMessage) string {
	if s, _, err := scalarText(raw); err == nil {
		return s
	}
	var b bytes.Buffer
	if err := json.Compact(&b, raw); err != nil {
		return string(raw)
	}
	return b.String()
}

// decodeStyle reads the declared properties strictly. An undeclared property
// whose shape cannot be read is dropped.
func decodeStyle(raw json.RawMessage) (infopanel.Style, error) {
	if isNull(raw) {
		return nil, nil
	}
	var dto map[string]json.RawMessage
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}
	style := make(infopanel.Style, len(dto))
	for name, v := range dto {
		prop, err := decodeStyleProperty(v)
		if err != nil {
			if infopanel.IsDeclaredStyle(name) {
				return nil, fmt.Errorf("%s %w", name, err)
			}
			continue
		}
		style[name] = prop
	}
	return style, nil
}

func decodeStyleProperty(raw json.RawMessage) (infopanel.StyleProperty, error) {
	var dto stylePropertyDTO
	if !isNull(raw) {
		if err := json.Unmarshal(raw, &dto); err != nil {
			return infopanel.StyleProperty{}, err
		}
	}
	value, err := decodeStyleValue(dto.Value)
	if err != nil {
		return infopanel.StyleProperty{}, fmt.Errorf("value: %w", err)
	}
	def, _, err := scalarText(dto.DefaultValue)
	if err != nil {
		return infopanel.StyleProperty{}, fmt.Errorf("defaultValue: %w", err)
	}
	return infopanel.StyleProperty{Value: value, DefaultValue: def}, nil
}

// decodeStyleValue returns nil when the value counts as unset. Objects
// contribute only their color field.
func decodeStyleValue(raw json.RawMessage) (*infopanel.StyleValue, error) {
	if isNull(raw) {
		return nil, nil
	}
	raw = bytes.TrimSpace(raw)
	if raw[0] == '{' {
		var dto colorDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, err
		}
		color, set, err := scalarText(dto.Color)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		if !set {
			return nil, nil
		}
		return &infopanel.StyleValue{Color: color}, nil
	}
	text, set, err := scalarText(raw)
	if err != nil {
		return nil, err
	}
	if !set {
		return nil, nil
	}
	return &infopanel.StyleValue{Text: text}, nil
}

// scalarText renders a JSON scalar as text and reports whether it counts as
// set: empty strings, zero, false and null do not.
func scalarText(raw json.RawMessage) (string, bool, error) {
	if isNull(raw) {
		return "", false, nil
	}
	raw = bytes.TrimSpace(raw)
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, s != "", nil
	case 't':
		return "true", true, nil
	case 'f':
		return "false", false, nil
	case '{', '[':
		return "", false, fmt.Errorf("expected scalar, got %s: %w", kind(raw[0]), infopanel.ErrValidation)
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return "", false, fmt.Errorf("invalid number %s: %w", raw, infopanel.ErrValidation)
		}
		return string(raw), f != 0, nil
	}
}

func kind(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || string(raw) == "null"
}
