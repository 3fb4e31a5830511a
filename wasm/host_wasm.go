//go:build js && wasm

package wasm

import (
	"errors"
	"log/slog"
	"syscall/js"

	"github.com/fwojciec/infopanel"
	ipjson "github.com/fwojciec/infopanel/json"
)

var _ infopanel.Host = (*Host)(nil)

// Host exchanges envelopes with the embedding page through window messaging.
type Host struct {
	window js.Value
	logger *slog.Logger
	funcs  []js.Func
}

// NewHost creates a Host over the global window.
func NewHost(logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Host{window: js.Global(), logger: logger}
}

// PostMessage posts env to the parent window with target origin "*".
func (h *Host) PostMessage(env infopanel.Envelope) error {
	data, err := ipjson.MarshalEnvelope(env)
	if err != nil {
		return err
	}
	parent := h.window.Get("parent")
	if isNil(parent) {
		return errors.New("no parent window")
	}
	msg := js.Global().Get("JSON").Call("parse", string(data))
	parent.Call("postMessage", msg, "*")
	return nil
}

// AddListener registers fn for every window message that decodes as an
// envelope. Other messages are ignored without logging.
func (h *Host) AddListener(fn func(infopanel.Envelope)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		env, ok, err := decodeEventData(args[0].Get("data"))
		if err != nil {
			h.logger.Warn("malformed data update", "error", err)
		}
		if !ok {
			return nil
		}
		fn(env)
		return nil
	})
	h.funcs = append(h.funcs, f)
	h.window.Call("addEventListener", "message", f)
}

// Close removes every listener and releases its callback.
func (h *Host) Close() {
	for _, f := range h.funcs {
		h.window.Call("removeEventListener", "message", f)
		f.Release()
	}
	h.funcs = nil
}

// decodeEventData accepts both structured-clone objects and JSON strings.
// Data of any other type is not an envelope.
func decodeEventData(data js.Value) (infopanel.Envelope, bool, error) {
	var raw string
	switch data.Type() {
	case js.TypeString:
		raw = data.String()
	case js.TypeObject:
		raw = js.Global().Get("JSON").Call("stringify", data).String()
	default:
		return infopanel.Envelope{}, false, nil
	}
	return decodeMessage([]byte(raw))
}
