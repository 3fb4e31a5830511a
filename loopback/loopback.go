// Package loopback provides an in-process infopanel.Host. Envelopes handed
// to Deliver reach listeners synchronously and in order; envelopes posted by
// the widget are recorded and forwarded to an optional outbox callback.
package loopback

import (
	"sync"

	"github.com/fwojciec/infopanel"
)

var _ infopanel.Host = (*Host)(nil)

// Host is an in-process host. Deliver and PostMessage may be called from
// different goroutines; deliveries are serialized.
type Host struct {
	deliverMu sync.Mutex // serializes Deliver

	mu        sync.Mutex
	listeners []func(infopanel.Envelope)
	posted    []infopanel.Envelope
	outbox    func(infopanel.Envelope)
}

// New creates a Host. outbox, if non-nil, receives every envelope the widget
// posts.
func New(outbox func(infopanel.Envelope)) *Host {
	return &Host{outbox: outbox}
}

// PostMessage records env and forwards it to the outbox.
func (h *Host) PostMessage(env infopanel.Envelope) error {
	h.mu.Lock()
	h.posted = append(h.posted, env)
	outbox := h.outbox
	h.mu.Unlock()
	if outbox != nil {
		outbox(env)
	}
	return nil
}

// AddListener registers fn for every delivered envelope.
func (h *Host) AddListener(fn func(infopanel.Envelope)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Deliver hands env to every listener in registration order and returns when
// all of them have run.
func (h *Host) Deliver(env infopanel.Envelope) {
	h.deliverMu.Lock()
	defer h.deliverMu.Unlock()

	h.mu.Lock()
	listeners := make([]func(infopanel.Envelope), len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(env)
	}
}

// Posted returns a copy of the envelopes posted so far.
func (h *Host) Posted() []infopanel.Envelope {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]infopanel.Envelope, len(h.posted))
	copy(out, h.posted)
	return out
}
