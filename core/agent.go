package core

import "github.com/google/uuid"

// AgentID is the opaque, stable identifier of a conversational participant.
// Identifiers are never reused within a session.
type AgentID string

// Broadcast is the reserved recipient meaning "every currently known agent
// except the sender". It is never a valid sender.
const Broadcast AgentID = "*"

// Participant couples an agent identity with a human-readable display name.
type Participant struct {
	ID          AgentID `json:"id"`
	DisplayName string  `json:"display_name"`
}

// NewID generates a new unique identifier for envelopes and delegations.
//
// This function creates a UUID-based unique identifier that can be used
// for tracking and correlation throughout the engine.
//
// Returns a string representation of a new UUID.
func NewID() string { return uuid.NewString() }
