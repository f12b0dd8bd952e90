package engine

import (
	"iter"
	"sync"
	"time"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/delegation"
	"github.com/hupe1980/openfloor/eventlog"
	"github.com/hupe1980/openfloor/floor"
	"github.com/hupe1980/openfloor/logging"
	"github.com/hupe1980/openfloor/registry"
	"github.com/hupe1980/openfloor/router"
)

// Config defines tuning parameters for the engine's operational behavior.
type Config struct {
	// EventBufferSize sets the channel capacity for each event subscriber.
	// Larger buffers tolerate slower observers at the cost of memory; a
	// subscriber that overruns its buffer misses events rather than
	// blocking engine commits.
	EventBufferSize int

	// StatsWindow bounds the trailing wall-clock window used for the
	// events-per-minute rate in Stats().
	StatsWindow time.Duration
}

// DefaultConfig provides defaults suitable for interactive sessions.
var DefaultConfig = Config{
	EventBufferSize: 100,
	StatsWindow:     time.Minute,
}

// Options configures an Engine instance using the functional options pattern.
type Options struct {
	// Config contains operational parameters for the engine behavior.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Logger provides structured logging for debugging and monitoring.
	// Defaults to NoOp logger if nil to ensure no logging dependencies.
	Logger logging.Logger
}

// Engine is the open-floor coordination engine. It owns nothing itself:
// floor state, envelopes, delegations and manifests each live in their
// single-writer component, and every component writes its transitions
// through the one shared event log, so observers see one totally ordered
// record.
//
// Concurrency model:
//   - Mutating commands are serialized by the engine's command mutex, so a
//     cross-component operation commits as one observable step.
//   - Queries (FloorSnapshot, History, Lookup, Discover, Events, Stats) run
//     concurrently against component snapshots and never block commands for
//     longer than a snapshot copy.
//   - Nothing here blocks on I/O; every operation is in-memory.
type Engine struct {
	mu sync.Mutex // serializes mutating commands

	log      *eventlog.Log
	registry *registry.Registry
	floor    *floor.Manager
	router   *router.Router
	tracker  *delegation.Tracker
	logger   logging.Logger
}

// New creates a fully wired engine. The event log is constructed first and
// handed to every component explicitly; there is no global event registry.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	log := eventlog.New(func(o *eventlog.Options) {
		o.SubscriberBuffer = opts.Config.EventBufferSize
		o.StatsWindow = opts.Config.StatsWindow
		o.Logger = opts.Logger
	})
	reg := registry.New(log, func(o *registry.Options) { o.Logger = opts.Logger })
	fm := floor.New(log, func(o *floor.Options) { o.Logger = opts.Logger })
	rt := router.New(fm, reg, log, func(o *router.Options) { o.Logger = opts.Logger })
	tr := delegation.New(fm, rt, log, func(o *delegation.Options) { o.Logger = opts.Logger })

	return &Engine{
		log:      log,
		registry: reg,
		floor:    fm,
		router:   rt,
		tracker:  tr,
		logger:   opts.Logger,
	}
}

// PublishManifest announces (or wholesale replaces) an agent's manifest.
func (e *Engine) PublishManifest(id core.AgentID, m core.Manifest) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registry.Publish(id, m)
}

// Deregister removes an agent's manifest, making it unknown to subsequent
// deliveries. In-flight broadcast expansions report the lost recipient as a
// processing_error instead of aborting.
func (e *Engine) Deregister(id core.AgentID) {
	e.registry.Deregister(id)
}

// RequestFloor claims the floor for an agent at the given priority. Returns
// true when the floor was granted immediately.
func (e *Engine) RequestFloor(id core.AgentID, priority core.Priority) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.floor.Request(id, priority)
}

// YieldFloor releases the floor held by the given agent, passing it in the
// same atomic step to the highest-priority waiter if any.
func (e *Engine) YieldFloor(id core.AgentID, reason string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.floor.Yield(id, reason)
}

// Send routes one typed message from sender to recipient, or to every other
// known agent when recipient is core.Broadcast. Returns the delivered
// envelopes.
func (e *Engine) Send(sender, recipient core.AgentID, typ core.MessageType, payload any) ([]core.Envelope, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.router.Send(sender, recipient, typ, payload)
}

// Delegate creates a delegation of the given tasks by the current floor
// holder and issues one delegation envelope per distinct assignee.
func (e *Engine) Delegate(delegator core.AgentID, tasks []delegation.TaskSpec) (core.Delegation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Delegate(delegator, tasks)
}

// CompleteTask marks one delegated task complete. Idempotent.
func (e *Engine) CompleteTask(delegationID string, taskIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Complete(delegationID, taskIndex)
}

// FloorSnapshot returns the current holder and the pending queue in grant
// order.
func (e *Engine) FloorSnapshot() core.FloorSnapshot { return e.floor.Snapshot() }

// History returns a lazy, restartable sequence of envelopes in creation
// order, narrowed by the filter.
func (e *Engine) History(filter core.EnvelopeFilter) iter.Seq[core.Envelope] {
	return e.router.History(filter)
}

// LookupManifest returns the published manifest for an agent.
func (e *Engine) LookupManifest(id core.AgentID) (core.Manifest, error) {
	return e.registry.Lookup(id)
}

// Discover returns the manifests declaring the given capability tag, or all
// manifests when tag is empty.
func (e *Engine) Discover(tag string) map[core.AgentID]core.Manifest {
	return e.registry.Discover(tag)
}

// KnownAgents returns every registered agent identity in lexical order.
func (e *Engine) KnownAgents() []core.AgentID { return e.registry.Known() }

// Events returns a lazy, restartable sequence of protocol events with
// sequence number >= since, optionally restricted to the given types.
func (e *Engine) Events(since uint64, types ...core.EventType) iter.Seq[core.ProtocolEvent] {
	return e.log.Query(since, types...)
}

// Stats derives event log statistics: totals, per-type counts, last event
// time and the trailing-window event rate.
func (e *Engine) Stats() eventlog.Stats { return e.log.Stats() }

// Subscribe registers an observer of protocol events in commit order. The
// returned cancel function removes the subscription and closes the channel.
func (e *Engine) Subscribe() (<-chan core.ProtocolEvent, func()) { return e.log.Subscribe() }

// Delegations returns copies of all delegations in creation order.
func (e *Engine) Delegations() []core.Delegation { return e.tracker.List() }

// Delegation returns a copy of one delegation by identifier.
func (e *Engine) Delegation(id string) (core.Delegation, error) { return e.tracker.Get(id) }
