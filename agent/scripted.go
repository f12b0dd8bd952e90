package agent

import (
	"context"
	"fmt"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/delegation"
	"github.com/hupe1980/openfloor/engine"
	"github.com/hupe1980/openfloor/logging"
)

// Line is one scripted utterance: a recipient (core.Broadcast for everyone)
// and opaque text.
type Line struct {
	Recipient core.AgentID
	Text      string
}

// Options holds configuration overrides passed to New().
type Options struct {
	// Priority used when requesting the floor. Defaults to PriorityMedium.
	Priority core.Priority
	// Tasks delegated after the scripted lines are sent, if any.
	Tasks []delegation.TaskSpec
	// YieldReason recorded when the agent releases the floor.
	YieldReason string
	// Logger provides structured logging. Defaults to NoOp if nil.
	Logger logging.Logger
}

// ScriptedAgent is a participant whose whole turn is known up front. Safe to
// run concurrently with other agents against the same engine.
type ScriptedAgent struct {
	id          core.AgentID
	manifest    core.Manifest
	lines       []Line
	priority    core.Priority
	tasks       []delegation.TaskSpec
	yieldReason string
	logger      logging.Logger
}

// New constructs a scripted agent with optional overrides.
func New(id core.AgentID, manifest core.Manifest, lines []Line, optFns ...func(o *Options)) *ScriptedAgent {
	opts := Options{
		Priority:    core.PriorityMedium,
		YieldReason: "turn complete",
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ScriptedAgent{
		id:          id,
		manifest:    manifest,
		lines:       lines,
		priority:    opts.Priority,
		tasks:       opts.Tasks,
		yieldReason: opts.YieldReason,
		logger:      opts.Logger,
	}
}

// ID returns the agent's identity.
func (a *ScriptedAgent) ID() core.AgentID { return a.id }

// Manifest returns the agent's capability manifest.
func (a *ScriptedAgent) Manifest() core.Manifest { return a.manifest }

// Announce publishes the agent's manifest to the engine.
func (a *ScriptedAgent) Announce(eng *engine.Engine) {
	eng.PublishManifest(a.id, a.manifest)
}

// Run performs one full turn: announce, request the floor, wait for the
// grant if queued, send every scripted line, delegate configured tasks, and
// yield. The returned delegation is zero-valued when the agent has no tasks.
// Run blocks until the turn completes or ctx is cancelled; a cancelled wait
// leaves the request queued, which is the protocol's own semantics for a
// claim that was never granted.
func (a *ScriptedAgent) Run(ctx context.Context, eng *engine.Engine) (core.Delegation, error) {
	// Subscribe before requesting so the grant cannot slip past us.
	events, cancel := eng.Subscribe()
	defer cancel()

	a.Announce(eng)

	granted, err := eng.RequestFloor(a.id, a.priority)
	if err != nil {
		return core.Delegation{}, fmt.Errorf("request floor: %w", err)
	}
	if !granted {
		if err := a.awaitGrant(ctx, events); err != nil {
			return core.Delegation{}, err
		}
	}
	a.logger.Debug("turn started", "agent_id", string(a.id))

	for _, line := range a.lines {
		if _, err := eng.Send(a.id, line.Recipient, core.MessageConversational, line.Text); err != nil {
			_ = eng.YieldFloor(a.id, "send failed")
			return core.Delegation{}, fmt.Errorf("send: %w", err)
		}
	}

	var d core.Delegation
	if len(a.tasks) > 0 {
		d, err = eng.Delegate(a.id, a.tasks)
		if err != nil {
			_ = eng.YieldFloor(a.id, "delegation failed")
			return core.Delegation{}, fmt.Errorf("delegate: %w", err)
		}
	}

	if err := eng.YieldFloor(a.id, a.yieldReason); err != nil {
		return d, fmt.Errorf("yield floor: %w", err)
	}
	a.logger.Debug("turn finished", "agent_id", string(a.id))
	return d, nil
}

func (a *ScriptedAgent) awaitGrant(ctx context.Context, events <-chan core.ProtocolEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("event subscription closed while waiting for floor")
			}
			if granted, isGrant := ev.Payload.(core.FloorGranted); isGrant && granted.Holder == a.id {
				return nil
			}
		}
	}
}
