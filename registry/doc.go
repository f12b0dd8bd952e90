// Package registry houses the manifest registry: the authoritative record of
// which agents are known to the session and what they claim to be able to do.
// Manifests are replaced wholesale on re-announcement, never merged, and every
// publication is recorded on the protocol event log.
//
// The registry is also the recipient authority for the envelope router: an
// agent is a valid recipient exactly while its manifest is registered.
package registry
