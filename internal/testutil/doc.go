// Package testutil provides small fluent helpers for tests: a manifest
// builder and an event recorder that drains a protocol event subscription.
// Test-only; not part of the public API surface.
package testutil
