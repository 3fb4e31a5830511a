// Package json implements the wire codec for envelopes exchanged with the
// host and for the payloads they carry.
package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/infopanel"
)

// envelopeDTO is the wire format of a cross-context message.
type envelopeDTO struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message"`
}

// MarshalEnvelope serializes an Envelope. A nil body is written as {}.
func MarshalEnvelope(env infopanel.Envelope) ([]byte, error) {
	body := env.Message
	if body == nil {
		body = infopanel.Body{}
	}
	msg, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	return json.Marshal(envelopeDTO{Type: string(env.Type), Message: msg})
}

// UnmarshalEnvelope deserializes an Envelope. The type is not checked here;
// infopanel.ParseEnvelope decides which types are recognized.
func UnmarshalEnvelope(data []byte) (infopanel.Envelope, error) {
	var dto envelopeDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return infopanel.Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if dto.Type == "" {
		return infopanel.Envelope{}, fmt.Errorf("envelope without type: %w", infopanel.ErrValidation)
	}
	body, err := UnmarshalBody(dto.Message)
	if err != nil {
		return infopanel.Envelope{}, err
	}
	return infopanel.Envelope{Type: infopanel.MessageType(dto.Type), Message: body}, nil
}

// UnmarshalBody deserializes a message body. Empty input and null yield a nil
// Body.
func UnmarshalBody(data []byte) (infopanel.Body, error) {
	if isNull(data) {
		return nil, nil
	}
	var body infopanel.Body
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("unmarshal body: %w", err)
	}
	return body, nil
}
