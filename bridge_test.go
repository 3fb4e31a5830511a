package infopanel_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/infopanel"
	ipjson "github.com/fwojciec/infopanel/json"
	"github.com/fwojciec/infopanel/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHost returns a mock host recording posted envelopes, along with a
// function that delivers an inbound envelope to every registered listener.
func recordingHost(t *testing.T) (*mock.Host, *[]infopanel.Envelope, func(infopanel.Envelope)) {
	t.Helper()
	var (
		posted    []infopanel.Envelope
		listeners []func(infopanel.Envelope)
	)
	h := &mock.Host{
		PostMessageFn: func(env infopanel.Envelope) error {
			posted = append(posted, env)
			return nil
		},
		AddListenerFn: func(fn func(infopanel.Envelope)) {
			listeners = append(listeners, fn)
		},
	}
	deliver := func(env infopanel.Envelope) {
		for _, fn := range listeners {
			fn(env)
		}
	}
	return h, &posted, deliver
}

func dataEnvelope(body string) infopanel.Envelope {
	var b infopanel.Body
	if err := json.Unmarshal([]byte(body), &b); err != nil {
		panic(err)
	}
	return infopanel.Envelope{Type: infopanel.MessageTypeData, Message: b}
}

func TestBridge_SubscribePostsReadyOnce(t *testing.T) {
	t.Parallel()

	h, posted, _ := recordingHost(t)
	b := infopanel.NewBridge(h, ipjson.DecodePayload)

	require.NoError(t, b.Subscribe(func(infopanel.Payload) {}))
	require.Len(t, *posted, 1)
	assert.Equal(t, infopanel.MessageTypeReady, (*posted)[0].Type)
	assert.Empty(t, (*posted)[0].Message)
}

func TestBridge_ReadyPostedAfterListenerAttached(t *testing.T) {
	t.Parallel()

	var events []string
	h := &mock.Host{
		PostMessageFn: func(env infopanel.Envelope) error {
			events = append(events, "post:"+string(env.Type))
			return nil
		},
		AddListenerFn: func(func(infopanel.Envelope)) {
			events = append(events, "listen")
		},
	}
	b := infopanel.NewBridge(h, ipjson.DecodePayload)
	require.NoError(t, b.Subscribe(func(infopanel.Payload) {}))
	assert.Equal(t, []string{"listen", "post:vizReady"}, events)
}

func TestBridge_DeliversDataUpdates(t *testing.T) {
	t.Parallel()

	h, _, deliver := recordingHost(t)
	b := infopanel.NewBridge(h, ipjson.DecodePayload)

	var got []infopanel.Payload
	require.NoError(t, b.Subscribe(func(p infopanel.Payload) { got = append(got, p) }))

	deliver(dataEnvelope(`{"tables":{"DEFAULT":[{"infoText":["first"]}]}}`))
	deliver(dataEnvelope(`{"tables":{"DEFAULT":[{"infoText":["second"]}]}}`))

	require.Len(t, got, 2)
	assert.Equal(t, []string{"first"}, got[0].Tables.Default()[0].InfoText())
	assert.Equal(t, []string{"second"}, got[1].Tables.Default()[0].InfoText())
}

func TestBridge_IgnoresOtherMessages(t *testing.T) {
	t.Parallel()

	h, _, deliver := recordingHost(t)
	var errs []error
	b := infopanel.NewBridge(h, ipjson.DecodePayload)

	calls := 0
	require.NoError(t, b.Subscribe(
		func(infopanel.Payload) { calls++ },
		infopanel.WithErrorHandler(func(err error) { errs = append(errs, err) }),
	))

	deliver(infopanel.Envelope{Type: infopanel.MessageTypeReady})
	deliver(infopanel.Envelope{Type: "somethingElse", Message: infopanel.Body{}})
	deliver(infopanel.Envelope{})

	assert.Zero(t, calls)
	assert.Empty(t, errs)
}

func TestBridge_AppliesTransform(t *testing.T) {
	t.Parallel()

	h, _, deliver := recordingHost(t)
	b := infopanel.NewBridge(h, func(body infopanel.Body) (infopanel.Payload, error) {
		assert.NotContains(t, body, "dataResponse")
		return ipjson.DecodePayload(body)
	})

	var got infopanel.Payload
	require.NoError(t, b.Subscribe(
		func(p infopanel.Payload) { got = p },
		infopanel.WithTransform(infopanel.ObjectTransform),
	))

	deliver(dataEnvelope(`{"style":{"headerText":{"value":"Hi","defaultValue":"Info"}},"dataResponse":{}}`))
	assert.Equal(t, "Hi", got.Style[infopanel.StyleHeaderText].Resolve())
}

func TestBridge_DefaultTransformIsIdentity(t *testing.T) {
	t.Parallel()

	h, _, deliver := recordingHost(t)
	var seen infopanel.Body
	b := infopanel.NewBridge(h, func(body infopanel.Body) (infopanel.Payload, error) {
		seen = body
		return infopanel.Payload{}, nil
	})
	require.NoError(t, b.Subscribe(func(infopanel.Payload) {}))

	deliver(dataEnvelope(`{"extra":1}`))
	assert.Contains(t, seen, "extra")
}

func TestBridge_DecodeErrorSkipsCallback(t *testing.T) {
	t.Parallel()

	h, _, deliver := recordingHost(t)
	b := infopanel.NewBridge(h, ipjson.DecodePayload)

	calls := 0
	var gotErr error
	require.NoError(t, b.Subscribe(
		func(infopanel.Payload) { calls++ },
		infopanel.WithErrorHandler(func(err error) { gotErr = err }),
	))

	deliver(dataEnvelope(`{"tables":[1,2,3]}`))
	assert.Zero(t, calls)
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "decode payload")

	deliver(dataEnvelope(`{"tables":{}}`))
	assert.Equal(t, 1, calls, "later updates still delivered")
}

func TestBridge_SubscribeTwiceAttachesTwoListeners(t *testing.T) {
	t.Parallel()

	h, posted, deliver := recordingHost(t)
	b := infopanel.NewBridge(h, ipjson.DecodePayload)

	calls := 0
	cb := func(infopanel.Payload) { calls++ }
	require.NoError(t, b.Subscribe(cb))
	require.NoError(t, b.Subscribe(cb))

	deliver(dataEnvelope(`{}`))
	assert.Equal(t, 2, calls)
	assert.Len(t, *posted, 2)
}

func TestBridge_PostError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("detached")
	h := &mock.Host{
		PostMessageFn: func(infopanel.Envelope) error { return wantErr },
		AddListenerFn: func(func(infopanel.Envelope)) {},
	}
	b := infopanel.NewBridge(h, ipjson.DecodePayload)
	err := b.Subscribe(func(infopanel.Payload) {})
	require.ErrorIs(t, err, wantErr)
	assert.Contains(t, err.Error(), "post ready signal")
}
