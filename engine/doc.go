// Package engine wires the floor manager, envelope router, delegation
// tracker, manifest registry and protocol event log into one coordination
// engine with a single command and query surface.
//
// The engine serializes mutating commands so that each logical operation —
// validation, the owning component's state commit, and its event emissions —
// appears atomic to observers, even when it spans components (a send checks
// floor ownership, a delegation issues envelopes). Read-only queries bypass
// the command lock and run concurrently on component snapshots.
package engine
