package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/eventlog"
	"github.com/hupe1980/openfloor/internal/testutil"
)

func newRegistry() (*Registry, *eventlog.Log) {
	log := eventlog.New()
	return New(log), log
}

func TestRegistry_PublishAndLookup(t *testing.T) {
	r, log := newRegistry()

	m := testutil.NewManifestBuilder().Name("scout").Version("2.1.0").Capability("search", "summarize").Build()
	r.Publish("scout", m)

	got, err := r.Lookup("scout")
	require.NoError(t, err)
	assert.Equal(t, "scout", got.Name)
	assert.Equal(t, "2.1.0", got.Version)
	assert.Equal(t, []string{"search", "summarize"}, got.Capabilities)

	var types []core.EventType
	for ev := range log.Query(0) {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []core.EventType{core.EventManifestPublished}, types)
}

func TestRegistry_PublishReplacesWholesale(t *testing.T) {
	r, _ := newRegistry()

	r.Publish("scout", testutil.NewManifestBuilder().Name("scout").Description("old").Capability("search").Build())
	r.Publish("scout", testutil.NewManifestBuilder().Name("scout").Version("2.0.0").Build())

	got, err := r.Lookup("scout")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", got.Version)
	assert.Empty(t, got.Description, "replacement must not merge prior fields")
	assert.Empty(t, got.Capabilities)
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r, _ := newRegistry()

	_, err := r.Lookup("ghost")
	assert.ErrorIs(t, err, core.ErrUnknownAgent)
}

func TestRegistry_ReturnedManifestIsACopy(t *testing.T) {
	r, _ := newRegistry()
	r.Publish("scout", testutil.NewManifestBuilder().Name("scout").Capability("search").Build())

	got, err := r.Lookup("scout")
	require.NoError(t, err)
	got.Capabilities[0] = "mutated"

	fresh, err := r.Lookup("scout")
	require.NoError(t, err)
	assert.Equal(t, []string{"search"}, fresh.Capabilities)
}

func TestRegistry_Discover(t *testing.T) {
	r, _ := newRegistry()
	r.Publish("scout", testutil.NewManifestBuilder().Name("scout").Capability("search").Build())
	r.Publish("critic", testutil.NewManifestBuilder().Name("critic").Capability("review").Build())
	r.Publish("writer", testutil.NewManifestBuilder().Name("writer").Capability("review", "draft").Build())

	reviewers := r.Discover("review")
	assert.Len(t, reviewers, 2)
	assert.Contains(t, reviewers, core.AgentID("critic"))
	assert.Contains(t, reviewers, core.AgentID("writer"))

	all := r.Discover("")
	assert.Len(t, all, 3)

	assert.Empty(t, r.Discover("paint"))
}

func TestRegistry_KnownSortedAndDeregister(t *testing.T) {
	r, _ := newRegistry()
	r.Publish("zoe", core.Manifest{Name: "zoe"})
	r.Publish("amy", core.Manifest{Name: "amy"})
	r.Publish("mia", core.Manifest{Name: "mia"})

	assert.Equal(t, []core.AgentID{"amy", "mia", "zoe"}, r.Known())

	r.Deregister("mia")
	assert.Equal(t, []core.AgentID{"amy", "zoe"}, r.Known())
	assert.False(t, r.Exists("mia"))

	// Removing an unknown agent is a no-op.
	r.Deregister("ghost")
	assert.Len(t, r.Known(), 2)
}
