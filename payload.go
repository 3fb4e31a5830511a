package infopanel

import "encoding/json"

// DefaultRole is the table key of the primary data role.
const DefaultRole = "DEFAULT"

// InfoTextField is the row field holding the panel's body text.
const InfoTextField = "infoText"

// Payload is the unit delivered by the host on every data update. A new
// Payload replaces the previous one entirely.
type Payload struct {
	Tables       Tables
	Fields       json.RawMessage // field metadata, unused by rendering
	Style        Style
	Theme        json.RawMessage // unused
	Interactions json.RawMessage // unused
}

// Tables maps a data role name to its ordered rows.
type Tables map[string][]Row

// Default returns the rows of the default role, or nil if absent.
func (t Tables) Default() []Row {
	return t[DefaultRole]
}

// Row is one record of a data table: field name to its values.
type Row map[string][]string

// InfoText returns the row's infoText values.
func (r Row) InfoText() []string {
	return r[InfoTextField]
}

// Body is a message body as received from the host, keyed by top-level field.
// Values are kept raw so transforms can project without decoding.
type Body map[string]json.RawMessage

// payloadFields lists the Body fields that make up a Payload.
var payloadFields = []string{"tables", "fields", "style", "theme", "interactions"}

// ObjectTransform projects a message body down to the payload fields,
// discarding everything else. Absent fields stay absent.
func ObjectTransform(b Body) Body {
	out := make(Body, len(payloadFields))
	for _, name := range payloadFields {
		if v, ok := b[name]; ok {
			out[name] = v
		}
	}
	return out
}

// Identity returns the body unchanged. It is the default Bridge transform.
func Identity(b Body) Body { return b }
