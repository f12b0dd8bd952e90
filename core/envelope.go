package core

import "time"

// MessageType tags the semantic category of an envelope payload. The engine
// treats payload contents as opaque beyond this tag.
type MessageType string

const (
	// MessageConversational carries agent dialogue. Only the current floor
	// holder may send it.
	MessageConversational MessageType = "conversational"
	// MessageDelegation assigns sub-tasks to another agent.
	MessageDelegation MessageType = "delegation"
	// MessageManifest announces or refreshes an agent's manifest.
	MessageManifest MessageType = "manifest"
	// MessageControl carries protocol-level signals.
	MessageControl MessageType = "control"
)

// DeliveryStatus is the terminal outcome of an envelope.
type DeliveryStatus string

const (
	// StatusDelivered marks an envelope that reached its recipient.
	StatusDelivered DeliveryStatus = "delivered"
	// StatusFailed marks an envelope whose recipient was unknown at
	// delivery time. Failed deliveries are not retried.
	StatusFailed DeliveryStatus = "failed"
)

// Envelope is one routed, typed message between two agents. After creation it
// is immutable: the router records each envelope exactly once with its final
// delivery status and never mutates it afterwards.
type Envelope struct {
	ID        string         `json:"id"`
	Sender    AgentID        `json:"sender"`
	Recipient AgentID        `json:"recipient"`
	Type      MessageType    `json:"type"`
	Payload   any            `json:"payload,omitempty"`
	Created   time.Time      `json:"created"`
	Status    DeliveryStatus `json:"status"`
}

// NewEnvelope constructs an envelope with a fresh unique identifier and UTC
// creation timestamp. The caller assigns the terminal delivery status before
// the envelope is recorded.
func NewEnvelope(sender, recipient AgentID, typ MessageType, payload any) Envelope {
	return Envelope{
		ID:        NewID(),
		Sender:    sender,
		Recipient: recipient,
		Type:      typ,
		Payload:   payload,
		Created:   time.Now().UTC(),
	}
}

// EnvelopeFilter narrows History results. Zero-valued fields match every
// envelope.
type EnvelopeFilter struct {
	Sender    AgentID
	Recipient AgentID
	Type      MessageType
}

// Match reports whether the envelope satisfies every non-zero filter field.
func (f EnvelopeFilter) Match(e Envelope) bool {
	if f.Sender != "" && e.Sender != f.Sender {
		return false
	}
	if f.Recipient != "" && e.Recipient != f.Recipient {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	return true
}
