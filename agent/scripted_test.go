package agent

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/delegation"
	"github.com/hupe1980/openfloor/engine"
	"github.com/hupe1980/openfloor/internal/testutil"
)

func TestScriptedAgent_SingleTurn(t *testing.T) {
	eng := engine.New()
	a := New("solo",
		testutil.NewManifestBuilder().Name("solo").Build(),
		[]Line{{Recipient: core.Broadcast, Text: "anybody here?"}},
	)
	// Give the broadcast someone to reach.
	eng.PublishManifest("peer", testutil.NewManifestBuilder().Name("peer").Build())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := a.Run(ctx, eng)
	require.NoError(t, err)

	assert.False(t, eng.FloorSnapshot().Held(), "agent must yield after its turn")

	count := 0
	for range eng.History(core.EnvelopeFilter{Sender: "solo", Type: core.MessageConversational}) {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestScriptedAgent_ConcurrentTurnsAllComplete(t *testing.T) {
	eng := engine.New()

	agents := []*ScriptedAgent{
		New("moderator", testutil.NewManifestBuilder().Name("moderator").Build(),
			[]Line{{Recipient: core.Broadcast, Text: "welcome"}},
			func(o *Options) { o.Priority = core.PriorityHigh }),
		New("scout", testutil.NewManifestBuilder().Name("scout").Build(),
			[]Line{{Recipient: core.Broadcast, Text: "findings"}},
			func(o *Options) { o.Priority = core.PriorityMedium }),
		New("critic", testutil.NewManifestBuilder().Name("critic").Build(),
			[]Line{{Recipient: core.Broadcast, Text: "objections"}},
			func(o *Options) { o.Priority = core.PriorityLow }),
	}
	for _, a := range agents {
		a.Announce(eng)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	errs := make(chan error, len(agents))
	for _, a := range agents {
		wg.Add(1)
		go func(a *ScriptedAgent) {
			defer wg.Done()
			if _, err := a.Run(ctx, eng); err != nil {
				errs <- err
			}
		}(a)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.False(t, eng.FloorSnapshot().Held())
	assert.Empty(t, eng.FloorSnapshot().Queue)

	// Each of the three agents broadcast to the other two.
	delivered := 0
	for range eng.History(core.EnvelopeFilter{Type: core.MessageConversational}) {
		delivered++
	}
	assert.Equal(t, 6, delivered)

	stats := eng.Stats()
	assert.Equal(t, 3, stats.ByType[core.EventFloorGranted])
	assert.Equal(t, 3, stats.ByType[core.EventFloorYielded])
}

func TestScriptedAgent_DelegatesDuringTurn(t *testing.T) {
	eng := engine.New()
	eng.PublishManifest("dev", testutil.NewManifestBuilder().Name("dev").Build())

	lead := New("lead", testutil.NewManifestBuilder().Name("lead").Build(), nil,
		func(o *Options) {
			o.Tasks = []delegation.TaskSpec{{Description: "do the thing", Assignee: "dev"}}
			o.YieldReason = "delegated"
		})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	d, err := lead.Run(ctx, eng)
	require.NoError(t, err)
	require.Len(t, d.Tasks, 1)

	require.NoError(t, eng.CompleteTask(d.ID, 0))
	got, err := eng.Delegation(d.ID)
	require.NoError(t, err)
	assert.True(t, got.Complete())
}

func TestScriptedAgent_CancelledWait(t *testing.T) {
	eng := engine.New()
	eng.PublishManifest("peer", testutil.NewManifestBuilder().Name("peer").Build())

	// Occupy the floor so the scripted agent has to wait.
	blockerGranted, err := eng.RequestFloor("blocker", core.PriorityHigh)
	require.NoError(t, err)
	require.True(t, blockerGranted)

	a := New("waiter", testutil.NewManifestBuilder().Name("waiter").Build(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Run(ctx, eng)
	assert.ErrorIs(t, err, context.Canceled)

	// The claim stays queued; a later yield still grants it.
	snap := eng.FloorSnapshot()
	require.Len(t, snap.Queue, 1)
	assert.Equal(t, core.AgentID("waiter"), snap.Queue[0].Requester)
}
