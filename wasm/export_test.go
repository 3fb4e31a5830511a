package wasm

import "github.com/fwojciec/infopanel"

// DecodeMessage exports decodeMessage for testing.
func DecodeMessage(raw []byte) (infopanel.Envelope, bool, error) {
	return decodeMessage(raw)
}
