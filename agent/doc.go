// Package agent contains a minimal participant implementation for driving
// the coordination engine without any external transport or generation
// backend. A ScriptedAgent announces its manifest, requests the floor at a
// configured priority, waits for its grant, sends its scripted envelopes,
// optionally delegates follow-up tasks, and yields.
//
// Scripted agents exist for demos, examples and integration tests; real
// deployments drive the engine from their own transport and generation
// collaborators instead.
package agent
