package floor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/eventlog"
)

func newManager() (*Manager, *eventlog.Log) {
	log := eventlog.New()
	return New(log), log
}

func TestManager_ImmediateGrantWhenIdle(t *testing.T) {
	m, log := newManager()

	granted, err := m.Request("alice", core.PriorityLow)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, core.AgentID("alice"), m.Holder())

	var types []core.EventType
	for ev := range log.Query(0) {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []core.EventType{core.EventFloorGranted}, types)
}

func TestManager_InvalidPriority(t *testing.T) {
	m, log := newManager()

	for _, p := range []core.Priority{0, 4, -1} {
		granted, err := m.Request("alice", p)
		assert.ErrorIs(t, err, core.ErrInvalidPriority)
		assert.False(t, granted)
	}
	assert.Equal(t, core.AgentID(""), m.Holder())
	assert.Equal(t, 0, log.Len())
}

func TestManager_PriorityOrdering(t *testing.T) {
	m, _ := newManager()

	// Scenario: A requests priority 3 (granted immediately), B requests 1
	// (queued), C requests 2 (queued ahead of B).
	granted, err := m.Request("a", core.PriorityHigh)
	require.NoError(t, err)
	require.True(t, granted)

	granted, err = m.Request("b", core.PriorityLow)
	require.NoError(t, err)
	require.False(t, granted)

	granted, err = m.Request("c", core.PriorityMedium)
	require.NoError(t, err)
	require.False(t, granted)

	snap := m.Snapshot()
	require.Len(t, snap.Queue, 2)
	assert.Equal(t, core.AgentID("c"), snap.Queue[0].Requester)
	assert.Equal(t, core.AgentID("b"), snap.Queue[1].Requester)

	require.NoError(t, m.Yield("a", "done"))
	assert.Equal(t, core.AgentID("c"), m.Holder())

	snap = m.Snapshot()
	require.Len(t, snap.Queue, 1)
	assert.Equal(t, core.AgentID("b"), snap.Queue[0].Requester)

	require.NoError(t, m.Yield("c", "done"))
	assert.Equal(t, core.AgentID("b"), m.Holder())
}

func TestManager_EqualPriorityFIFO(t *testing.T) {
	m, _ := newManager()

	_, err := m.Request("holder", core.PriorityHigh)
	require.NoError(t, err)

	for _, id := range []core.AgentID{"first", "second", "third"} {
		_, err := m.Request(id, core.PriorityMedium)
		require.NoError(t, err)
	}

	for _, want := range []core.AgentID{"first", "second", "third"} {
		require.NoError(t, m.Yield(m.Holder(), "next"))
		assert.Equal(t, want, m.Holder())
	}
}

func TestManager_YieldByNonHolder(t *testing.T) {
	m, log := newManager()

	_, err := m.Request("alice", core.PriorityMedium)
	require.NoError(t, err)
	before := log.Len()

	err = m.Yield("bob", "not mine")
	assert.ErrorIs(t, err, core.ErrNotFloorHolder)
	assert.Equal(t, core.AgentID("alice"), m.Holder())
	assert.Equal(t, before, log.Len(), "failed yield must not emit events")

	// Yield while idle fails the same way.
	m2, _ := newManager()
	assert.ErrorIs(t, m2.Yield("bob", "idle"), core.ErrNotFloorHolder)
}

func TestManager_HolderRerequestIsNoOp(t *testing.T) {
	m, log := newManager()

	_, err := m.Request("alice", core.PriorityMedium)
	require.NoError(t, err)
	before := log.Len()

	granted, err := m.Request("alice", core.PriorityHigh)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Empty(t, m.Snapshot().Queue, "holder must never appear in the queue")
	assert.Equal(t, before, log.Len())
}

func TestManager_QueuedRerequestIsNoOp(t *testing.T) {
	m, _ := newManager()

	_, err := m.Request("alice", core.PriorityMedium)
	require.NoError(t, err)
	_, err = m.Request("bob", core.PriorityLow)
	require.NoError(t, err)
	_, err = m.Request("bob", core.PriorityHigh)
	require.NoError(t, err)

	assert.Len(t, m.Snapshot().Queue, 1)
}

func TestManager_YieldEmitsYieldedThenGranted(t *testing.T) {
	m, log := newManager()

	_, err := m.Request("alice", core.PriorityMedium)
	require.NoError(t, err)
	_, err = m.Request("bob", core.PriorityMedium)
	require.NoError(t, err)

	since := uint64(log.Len())
	require.NoError(t, m.Yield("alice", "handing over"))

	var types []core.EventType
	for ev := range log.Query(since) {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []core.EventType{core.EventFloorYielded, core.EventFloorGranted}, types)
}

// The yield-then-grant step must be atomic: a concurrent poller never
// observes an idle floor while requests are still queued.
func TestManager_NoObservableIdleBetweenYieldAndGrant(t *testing.T) {
	m, _ := newManager()

	_, err := m.Request("a", core.PriorityMedium)
	require.NoError(t, err)
	_, err = m.Request("b", core.PriorityMedium)
	require.NoError(t, err)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			snap := m.Snapshot()
			if !snap.Held() && len(snap.Queue) > 0 {
				t.Error("observed idle floor with non-empty queue")
				return
			}
		}
	}()

	// Ping-pong the floor between a and b; one is always queued when the
	// other yields.
	for i := 0; i < 500; i++ {
		holder := m.Holder()
		require.NoError(t, m.Yield(holder, "pass"))
		_, err := m.Request(holder, core.PriorityMedium)
		require.NoError(t, err)
	}

	close(stop)
	wg.Wait()
}
