package core

import "time"

// EventType enumerates the protocol event taxonomy. Every engine transition
// emits exactly one of these kinds.
type EventType string

const (
	// EventFloorRequest records a floor claim that was enqueued.
	EventFloorRequest EventType = "floor_request"
	// EventFloorGranted records the floor passing to a new holder.
	EventFloorGranted EventType = "floor_granted"
	// EventFloorYielded records a holder releasing the floor.
	EventFloorYielded EventType = "floor_yielded"
	// EventEnvelopeCreated records construction of a validated envelope.
	EventEnvelopeCreated EventType = "envelope_created"
	// EventEnvelopeDelivered records an envelope reaching its recipient.
	// Kept distinct from creation so an asynchronous delivery path can be
	// introduced without changing the event contract.
	EventEnvelopeDelivered EventType = "envelope_delivered"
	// EventTaskDelegation records creation of a delegation with its tasks.
	EventTaskDelegation EventType = "task_delegation"
	// EventTaskCompleted records one task transitioning to done.
	EventTaskCompleted EventType = "task_completed"
	// EventManifestPublished records an agent announcing its manifest.
	EventManifestPublished EventType = "manifest_published"
	// EventProcessingError records a non-fatal failure inside a multi-step
	// operation, e.g. a broadcast recipient deregistering mid-expansion.
	EventProcessingError EventType = "processing_error"
)

// EventPayload is the closed set of structured payloads carried by protocol
// events, one variant per EventType. Sealed — only types in this package
// implement it, so observers can switch exhaustively over the variants.
type EventPayload interface {
	// EventType returns the taxonomy tag for this payload variant.
	EventType() EventType

	payloadMarker()
}

// FloorRequested is emitted when a floor claim cannot be granted immediately
// and is enqueued instead.
type FloorRequested struct {
	Request  FloorRequest `json:"request"`
	QueueLen int          `json:"queue_len"`
}

// FloorGranted is emitted when an agent becomes the floor holder, either
// immediately on request or when popped from the queue after a yield.
type FloorGranted struct {
	Holder   AgentID  `json:"holder"`
	Priority Priority `json:"priority"`
}

// FloorYielded is emitted when the holder releases the floor.
type FloorYielded struct {
	Holder AgentID `json:"holder"`
	Reason string  `json:"reason"`
}

// EnvelopeCreated is emitted once per constructed envelope, before its
// delivery event.
type EnvelopeCreated struct {
	Envelope Envelope `json:"envelope"`
}

// EnvelopeDelivered is emitted once per delivered envelope, after its
// creation event.
type EnvelopeDelivered struct {
	EnvelopeID string  `json:"envelope_id"`
	Sender     AgentID `json:"sender"`
	Recipient  AgentID `json:"recipient"`
}

// TaskDelegated is emitted when a delegation is created with all of its
// tasks pending.
type TaskDelegated struct {
	DelegationID string    `json:"delegation_id"`
	Delegator    AgentID   `json:"delegator"`
	TaskCount    int       `json:"task_count"`
	Assignees    []AgentID `json:"assignees"`
}

// TaskCompleted is emitted when a pending task transitions to done.
// DelegationDone is true on the event that completes the whole delegation;
// idempotent re-completions emit nothing.
type TaskCompleted struct {
	DelegationID   string `json:"delegation_id"`
	TaskIndex      int    `json:"task_index"`
	DelegationDone bool   `json:"delegation_done"`
}

// ManifestPublished is emitted when an agent announces (or replaces) its
// manifest.
type ManifestPublished struct {
	Agent    AgentID  `json:"agent"`
	Manifest Manifest `json:"manifest"`
}

// ProcessingError is emitted for a failure inside a multi-step operation
// that did not abort the operation as a whole. Kind carries the sentinel
// error text so observers can classify failures.
type ProcessingError struct {
	Operation string  `json:"operation"`
	Agent     AgentID `json:"agent,omitempty"`
	Kind      string  `json:"kind"`
	Detail    string  `json:"detail,omitempty"`
}

// EventType implementations for each payload variant.

// EventType returns EventFloorRequest.
func (FloorRequested) EventType() EventType { return EventFloorRequest }

// EventType returns EventFloorGranted.
func (FloorGranted) EventType() EventType { return EventFloorGranted }

// EventType returns EventFloorYielded.
func (FloorYielded) EventType() EventType { return EventFloorYielded }

// EventType returns EventEnvelopeCreated.
func (EnvelopeCreated) EventType() EventType { return EventEnvelopeCreated }

// EventType returns EventEnvelopeDelivered.
func (EnvelopeDelivered) EventType() EventType { return EventEnvelopeDelivered }

// EventType returns EventTaskDelegation.
func (TaskDelegated) EventType() EventType { return EventTaskDelegation }

// EventType returns EventTaskCompleted.
func (TaskCompleted) EventType() EventType { return EventTaskCompleted }

// EventType returns EventManifestPublished.
func (ManifestPublished) EventType() EventType { return EventManifestPublished }

// EventType returns EventProcessingError.
func (ProcessingError) EventType() EventType { return EventProcessingError }

// Seal the interface — only core package types can implement EventPayload.
func (FloorRequested) payloadMarker()    {}
func (FloorGranted) payloadMarker()      {}
func (FloorYielded) payloadMarker()      {}
func (EnvelopeCreated) payloadMarker()   {}
func (EnvelopeDelivered) payloadMarker() {}
func (TaskDelegated) payloadMarker()     {}
func (TaskCompleted) payloadMarker()     {}
func (ManifestPublished) payloadMarker() {}
func (ProcessingError) payloadMarker()   {}

// ProtocolEvent is an immutable record of one engine state transition. Seq is
// assigned by the event log at append time and provides the total order;
// Timestamp is informational wall-clock time and may not be strictly
// increasing across process restarts.
type ProtocolEvent struct {
	Seq       uint64       `json:"seq"`
	Type      EventType    `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   EventPayload `json:"payload"`
}
