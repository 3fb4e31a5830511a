package wasm

import (
	"encoding/json"

	"github.com/fwojciec/infopanel"
	ipjson "github.com/fwojciec/infopanel/json"
)

// decodeMessage decodes window message data into an envelope. ok is false
// for messages that are not envelopes; those are dropped without an error.
// An error is returned only for a data update that fails to decode.
func decodeMessage(raw []byte) (env infopanel.Envelope, ok bool, err error) {
	env, err = ipjson.UnmarshalEnvelope(raw)
	if err == nil {
		return env, true, nil
	}
	var head struct {
		Type infopanel.MessageType `json:"type"`
	}
	if json.Unmarshal(raw, &head) != nil || head.Type != infopanel.MessageTypeData {
		return infopanel.Envelope{}, false, nil
	}
	return infopanel.Envelope{}, false, err
}
