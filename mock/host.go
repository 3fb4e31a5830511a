// Package mock provides test doubles for infopanel interfaces using function
// fields.
package mock

import "github.com/fwojciec/infopanel"

// Interface compliance checks.
var (
	_ infopanel.Host     = (*Host)(nil)
	_ infopanel.Document = (*Document)(nil)
	_ infopanel.Element  = (*Element)(nil)
)

// Host is a test double for infopanel.Host.
// Set the function fields for the methods you need.
type Host struct {
	PostMessageFn func(env infopanel.Envelope) error
	AddListenerFn func(fn func(infopanel.Envelope))
}

// PostMessage delegates to PostMessageFn.
func (h *Host) PostMessage(env infopanel.Envelope) error {
	return h.PostMessageFn(env)
}

// AddListener delegates to AddListenerFn.
func (h *Host) AddListener(fn func(infopanel.Envelope)) {
	h.AddListenerFn(fn)
}
