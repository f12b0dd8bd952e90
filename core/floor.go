package core

import "fmt"

// Priority ranks floor requests. Higher values are more urgent. Only the
// three declared tiers are accepted by the floor manager.
type Priority int

const (
	// PriorityLow is for background or courtesy turns.
	PriorityLow Priority = 1
	// PriorityMedium is the default conversational urgency.
	PriorityMedium Priority = 2
	// PriorityHigh is for urgent interjections.
	PriorityHigh Priority = 3
)

// Valid reports whether p is one of the supported tiers.
func (p Priority) Valid() bool { return p >= PriorityLow && p <= PriorityHigh }

// String returns the lower-case tier name, or a numeric form for
// out-of-range values.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// FloorRequest is a pending claim on the floor. Sequence is assigned at
// enqueue time, is strictly increasing, and is used only to break priority
// ties — never as a priority itself.
type FloorRequest struct {
	Requester AgentID  `json:"requester"`
	Priority  Priority `json:"priority"`
	Sequence  uint64   `json:"sequence"`
}

// FloorSnapshot is a read-only view of floor state taken at one instant.
// Holder is empty while the floor is idle. Queue preserves grant order:
// priority descending, sequence ascending within equal priority.
type FloorSnapshot struct {
	Holder AgentID        `json:"holder,omitempty"`
	Queue  []FloorRequest `json:"queue"`
}

// Held reports whether some agent currently holds the floor.
func (s FloorSnapshot) Held() bool { return s.Holder != "" }
