// Package openfloor provides a high-level façade over the coordination
// engine: floor arbitration, envelope routing, task delegation and
// capability manifests, observed through one append-only protocol event log.
// Most applications interact with this package by:
//  1. Creating a Session via New() (optionally overriding config and logger)
//  2. Publishing a manifest per participating agent
//  3. Driving turns: request the floor, send envelopes, delegate, yield
//  4. Observing everything via Subscribe, Events and Stats
//
// The façade delegates coordination to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; deployments typically supply a structured logger.
package openfloor

import (
	"iter"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/delegation"
	"github.com/hupe1980/openfloor/engine"
	"github.com/hupe1980/openfloor/eventlog"
	"github.com/hupe1980/openfloor/logging"
)

// Options configures the Session instance.
type Options struct {
	// EngineConfig tunes subscriber buffering and the stats window.
	EngineConfig engine.Config

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Session is the high-level façade aggregating the underlying engine. One
// Session corresponds to one conversation: agent identities are never reused
// within it and its event log is its complete observable history.
type Session struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new Session with optional overrides.
func New(optFns ...func(o *Options)) *Session {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	eng := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Logger = opts.Logger
	})

	return &Session{opts: opts, engine: eng}
}

// Engine exposes the underlying engine for callers that need it directly.
func (s *Session) Engine() *engine.Engine { return s.engine }

// PublishManifest announces (or replaces) an agent's capability manifest.
func (s *Session) PublishManifest(id core.AgentID, m core.Manifest) {
	s.engine.PublishManifest(id, m)
}

// Deregister removes an agent's manifest from the session.
func (s *Session) Deregister(id core.AgentID) { s.engine.Deregister(id) }

// RequestFloor claims the floor; returns true when granted immediately.
func (s *Session) RequestFloor(id core.AgentID, priority core.Priority) (bool, error) {
	return s.engine.RequestFloor(id, priority)
}

// YieldFloor releases the floor, passing it atomically to the next waiter.
func (s *Session) YieldFloor(id core.AgentID, reason string) error {
	return s.engine.YieldFloor(id, reason)
}

// Send routes one typed message; recipient may be core.Broadcast.
func (s *Session) Send(sender, recipient core.AgentID, typ core.MessageType, payload any) ([]core.Envelope, error) {
	return s.engine.Send(sender, recipient, typ, payload)
}

// Delegate assigns tasks to other agents on behalf of the floor holder.
func (s *Session) Delegate(delegator core.AgentID, tasks []delegation.TaskSpec) (core.Delegation, error) {
	return s.engine.Delegate(delegator, tasks)
}

// CompleteTask marks one delegated task complete. Idempotent.
func (s *Session) CompleteTask(delegationID string, taskIndex int) error {
	return s.engine.CompleteTask(delegationID, taskIndex)
}

// FloorSnapshot returns the holder and pending queue in grant order.
func (s *Session) FloorSnapshot() core.FloorSnapshot { return s.engine.FloorSnapshot() }

// History returns envelopes in creation order, narrowed by the filter.
func (s *Session) History(filter core.EnvelopeFilter) iter.Seq[core.Envelope] {
	return s.engine.History(filter)
}

// LookupManifest returns an agent's published manifest.
func (s *Session) LookupManifest(id core.AgentID) (core.Manifest, error) {
	return s.engine.LookupManifest(id)
}

// Discover returns manifests matching a capability tag, or all when empty.
func (s *Session) Discover(tag string) map[core.AgentID]core.Manifest {
	return s.engine.Discover(tag)
}

// Events returns protocol events with sequence >= since, optionally
// restricted by type.
func (s *Session) Events(since uint64, types ...core.EventType) iter.Seq[core.ProtocolEvent] {
	return s.engine.Events(since, types...)
}

// Stats derives event log statistics.
func (s *Session) Stats() eventlog.Stats { return s.engine.Stats() }

// Subscribe registers an observer of protocol events in commit order.
func (s *Session) Subscribe() (<-chan core.ProtocolEvent, func()) { return s.engine.Subscribe() }

// Delegations returns all delegations in creation order.
func (s *Session) Delegations() []core.Delegation { return s.engine.Delegations() }
