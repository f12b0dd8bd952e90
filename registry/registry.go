package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/logging"
)

// Options holds configuration overrides passed to New().
type Options struct {
	// Logger provides structured logging. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Registry stores published capability manifests keyed by agent identity. It
// is safe for concurrent access: publications are serialized and each one is
// committed together with its manifest_published event, while lookups and
// discovery run concurrently on read locks and return defensive copies.
type Registry struct {
	mu        sync.RWMutex
	manifests map[core.AgentID]core.Manifest
	sink      core.EventSink
	logger    logging.Logger
}

// New constructs an empty registry writing through the given event sink.
func New(sink core.EventSink, optFns ...func(o *Options)) *Registry {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{
		manifests: make(map[core.AgentID]core.Manifest),
		sink:      sink,
		logger:    opts.Logger,
	}
}

// Publish records the manifest for an agent, replacing any prior manifest
// wholesale, and emits manifest_published.
func (r *Registry) Publish(id core.AgentID, m core.Manifest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := m.Clone()
	r.manifests[id] = stored
	r.sink.Emit(core.ManifestPublished{Agent: id, Manifest: stored.Clone()})
	r.logger.Debug("manifest published", "agent_id", string(id), "name", m.Name, "version", m.Version)
}

// Deregister removes an agent's manifest, making it an unknown recipient for
// subsequent deliveries. Removing an unknown agent is a no-op.
func (r *Registry) Deregister(id core.AgentID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.manifests, id)
}

// Lookup returns the agent's manifest or ErrUnknownAgent.
func (r *Registry) Lookup(id core.AgentID) (core.Manifest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.manifests[id]
	if !ok {
		return core.Manifest{}, fmt.Errorf("%w: %s", core.ErrUnknownAgent, id)
	}
	return m.Clone(), nil
}

// Exists reports whether the agent has a published manifest.
func (r *Registry) Exists(id core.AgentID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.manifests[id]
	return ok
}

// Discover returns the manifests declaring the given capability tag, or all
// manifests when tag is empty. The result is a fresh map safe to mutate.
func (r *Registry) Discover(tag string) map[core.AgentID]core.Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[core.AgentID]core.Manifest)
	for id, m := range r.manifests {
		if tag == "" || m.HasCapability(tag) {
			out[id] = m.Clone()
		}
	}
	return out
}

// Known returns every registered agent identity in lexical order, so
// broadcast expansion and display are deterministic.
func (r *Registry) Known() []core.AgentID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]core.AgentID, 0, len(r.manifests))
	for id := range r.manifests {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
