package floor

import (
	"container/heap"
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/logging"
)

// requestQueue implements heap.Interface over pending floor requests,
// ordered by priority descending then sequence ascending.
type requestQueue []core.FloorRequest

func (q requestQueue) Len() int { return len(q) }

func (q requestQueue) Less(i, j int) bool {
	if q[i].Priority != q[j].Priority {
		return q[i].Priority > q[j].Priority
	}
	return q[i].Sequence < q[j].Sequence
}

func (q requestQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *requestQueue) Push(x any) { *q = append(*q, x.(core.FloorRequest)) }

func (q *requestQueue) Pop() any {
	old := *q
	n := len(old)
	req := old[n-1]
	*q = old[:n-1]
	return req
}

// Options holds configuration overrides passed to New().
type Options struct {
	// Logger provides structured logging. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Manager is the single-owner floor arbiter. Its state is exactly one of
// idle or held-by-one-agent, plus the queue of pending requests. All
// transitions are serialized under one mutex and commit together with their
// event emissions.
type Manager struct {
	mu      sync.Mutex
	holder  core.AgentID
	queue   requestQueue
	nextSeq uint64
	sink    core.EventSink
	logger  logging.Logger
}

// New constructs an idle floor manager writing through the given event sink.
func New(sink core.EventSink, optFns ...func(o *Options)) *Manager {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{sink: sink, logger: opts.Logger}
}

// Request claims the floor for an agent. While idle with an empty queue the
// claim is granted immediately (returning true) and floor_granted is
// emitted; otherwise the claim is enqueued with the next arrival sequence
// and floor_request is emitted. A request by the current holder, or by an
// agent already queued, is a no-op so the holder can never also appear in
// the queue.
func (m *Manager) Request(id core.AgentID, priority core.Priority) (bool, error) {
	if !priority.Valid() {
		return false, fmt.Errorf("%w: %d", core.ErrInvalidPriority, int(priority))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.holder == id {
		return true, nil
	}
	for _, req := range m.queue {
		if req.Requester == id {
			return false, nil
		}
	}

	if m.holder == "" && m.queue.Len() == 0 {
		m.holder = id
		m.sink.Emit(core.FloorGranted{Holder: id, Priority: priority})
		m.logger.Debug("floor granted", "agent_id", string(id), "priority", priority.String())
		return true, nil
	}

	req := core.FloorRequest{Requester: id, Priority: priority, Sequence: m.nextSeq}
	m.nextSeq++
	heap.Push(&m.queue, req)
	m.sink.Emit(core.FloorRequested{Request: req, QueueLen: m.queue.Len()})
	m.logger.Debug("floor request queued", "agent_id", string(id), "priority", priority.String(), "queue_len", m.queue.Len())
	return false, nil
}

// Yield releases the floor. Only the current holder may yield; anyone else
// gets ErrNotFloorHolder and the state is untouched. When the queue is
// non-empty the highest-priority earliest-sequence request is granted in the
// same atomic step, so concurrent Snapshot calls never observe an idle floor
// with waiters.
func (m *Manager) Yield(id core.AgentID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.holder != id {
		return fmt.Errorf("%w: %s", core.ErrNotFloorHolder, id)
	}

	m.holder = ""
	m.sink.Emit(core.FloorYielded{Holder: id, Reason: reason})

	if m.queue.Len() > 0 {
		next := heap.Pop(&m.queue).(core.FloorRequest)
		m.holder = next.Requester
		m.sink.Emit(core.FloorGranted{Holder: next.Requester, Priority: next.Priority})
		m.logger.Debug("floor passed", "from", string(id), "to", string(next.Requester))
	}
	return nil
}

// Holder returns the current floor holder, empty while idle.
func (m *Manager) Holder() core.AgentID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.holder
}

// Holds reports whether the given agent currently holds the floor.
func (m *Manager) Holds(id core.AgentID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.holder == id
}

// Snapshot returns the holder plus a copy of the pending queue in grant
// order: priority descending, sequence ascending.
func (m *Manager) Snapshot() core.FloorSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	queue := make([]core.FloorRequest, len(m.queue))
	copy(queue, m.queue)
	sort.Slice(queue, func(i, j int) bool {
		if queue[i].Priority != queue[j].Priority {
			return queue[i].Priority > queue[j].Priority
		}
		return queue[i].Sequence < queue[j].Sequence
	})
	return core.FloorSnapshot{Holder: m.holder, Queue: queue}
}
