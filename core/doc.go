// Package core provides the foundational domain types and contracts used by
// the OpenFloor coordination engine. It defines the core abstractions for:
//
//   - Agent identity and self-declared capability manifests
//   - Floor requests and the observable floor state
//   - Envelopes (immutable routed messages between agents)
//   - Delegations (task bundles assigned by the floor holder)
//   - Protocol events (the closed, ordered record of every engine transition)
//
// The package intentionally keeps implementation concerns (the floor state
// machine, routing, tracking, the event journal) out of scope, exposing small
// types and one interface (EventSink) so the owning components in sibling
// packages stay decoupled from each other. All exported identifiers include
// concise documentation to aid discoverability and external consumption.
package core
