// Package router houses the envelope router: the component that validates
// and delivers typed messages between agents. Conversational envelopes are
// gated on floor ownership; all envelope types require a known recipient,
// validated against the manifest registry. Broadcast sends expand to one
// envelope per known recipient (excluding the sender) and are best-effort: a
// recipient deregistering mid-expansion produces a failed envelope and a
// processing_error event without aborting the remaining deliveries.
package router
