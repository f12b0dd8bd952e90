package core

// EventSink receives protocol events as components commit transitions. The
// engine hands one shared sink to every component at construction time, so
// ordering is centrally enforced without hidden process-wide state. Emit is
// called only after the originating transition has committed, never
// speculatively, and returns the sequenced record.
type EventSink interface {
	Emit(payload EventPayload) ProtocolEvent
}
