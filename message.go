package infopanel

import "fmt"

// MessageType discriminates envelopes exchanged with the host.
type MessageType string

const (
	// MessageTypeReady is posted to the host once the widget can accept data.
	MessageTypeReady MessageType = "vizReady"
	// MessageTypeData carries a data and style update from the host.
	MessageTypeData MessageType = "vizData"
)

// Envelope is the wire shape of a cross-context message.
type Envelope struct {
	Type    MessageType
	Message Body
}

// Message is a sealed interface representing a typed envelope.
// The unexported marker method prevents external implementations.
type Message interface {
	isMessage()
	Type() MessageType
}

// ReadySignal tells the host the widget can accept data. It has no body.
type ReadySignal struct{}

func (ReadySignal) isMessage() {}

// Type returns MessageTypeReady.
func (ReadySignal) Type() MessageType { return MessageTypeReady }

// DataUpdate carries a raw update body from the host.
type DataUpdate struct {
	Body Body
}

func (DataUpdate) isMessage() {}

// Type returns MessageTypeData.
func (DataUpdate) Type() MessageType { return MessageTypeData }

// Interface compliance checks.
var (
	_ Message = ReadySignal{}
	_ Message = DataUpdate{}
)

// ParseEnvelope converts a wire envelope into a typed Message.
func ParseEnvelope(env Envelope) (Message, error) {
	switch env.Type {
	case MessageTypeReady:
		return ReadySignal{}, nil
	case MessageTypeData:
		return DataUpdate{Body: env.Message}, nil
	default:
		return nil, fmt.Errorf("%q: %w", env.Type, ErrUnknownMessage)
	}
}

// NewEnvelope converts a typed Message into its wire envelope.
func NewEnvelope(msg Message) Envelope {
	switch m := msg.(type) {
	case DataUpdate:
		return Envelope{Type: MessageTypeData, Message: m.Body}
	default:
		return Envelope{Type: msg.Type(), Message: Body{}}
	}
}
