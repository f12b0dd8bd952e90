package delegation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/floor"
	"github.com/hupe1980/openfloor/logging"
	"github.com/hupe1980/openfloor/router"
)

// TaskSpec describes one task to delegate: an opaque description and the
// agent it is assigned to.
type TaskSpec struct {
	Description string
	Assignee    core.AgentID
}

// Notice is the payload carried by delegation envelopes: the delegation
// identifier plus the subset of its tasks assigned to the envelope's
// recipient, with their indices into the delegation's task list.
type Notice struct {
	DelegationID string   `json:"delegation_id"`
	Tasks        []int    `json:"tasks"`
	Descriptions []string `json:"descriptions"`
}

// Options holds configuration overrides passed to New().
type Options struct {
	// Logger provides structured logging. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Tracker records delegations created by floor holders and their completion
// state. It owns the delegation records exclusively; envelope issuance goes
// through the router and floor authority through the floor manager.
type Tracker struct {
	mu          sync.RWMutex
	delegations map[string]*core.Delegation
	order       []string

	floor  *floor.Manager
	router *router.Router
	sink   core.EventSink
	logger logging.Logger
}

// New constructs an empty tracker writing through the given event sink.
func New(fm *floor.Manager, rt *router.Router, sink core.EventSink, optFns ...func(o *Options)) *Tracker {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Tracker{
		delegations: make(map[string]*core.Delegation),
		floor:       fm,
		router:      rt,
		sink:        sink,
		logger:      opts.Logger,
	}
}

// Delegate creates one delegation with every task pending, emits
// task_delegation, then issues one delegation envelope per distinct assignee
// through the router. The delegator must hold the floor (ErrFloorNotHeld
// otherwise) and tasks must be non-empty (ErrEmptyTaskList otherwise).
// Envelope issuance is best-effort: an assignee without a published manifest
// yields a processing_error event while the delegation itself, already
// committed, stands.
func (t *Tracker) Delegate(delegator core.AgentID, tasks []TaskSpec) (core.Delegation, error) {
	if len(tasks) == 0 {
		return core.Delegation{}, core.ErrEmptyTaskList
	}
	if !t.floor.Holds(delegator) {
		return core.Delegation{}, fmt.Errorf("%w: %s", core.ErrFloorNotHeld, delegator)
	}

	d := core.Delegation{
		ID:        core.NewID(),
		Delegator: delegator,
		Created:   time.Now().UTC(),
		Tasks:     make([]core.Task, len(tasks)),
	}
	for i, spec := range tasks {
		d.Tasks[i] = core.Task{Description: spec.Description, Assignee: spec.Assignee}
	}

	t.mu.Lock()
	t.delegations[d.ID] = &d
	t.order = append(t.order, d.ID)
	t.sink.Emit(core.TaskDelegated{
		DelegationID: d.ID,
		Delegator:    delegator,
		TaskCount:    len(d.Tasks),
		Assignees:    d.Assignees(),
	})
	t.mu.Unlock()

	for _, assignee := range d.Assignees() {
		notice := Notice{DelegationID: d.ID}
		for i, task := range d.Tasks {
			if task.Assignee == assignee {
				notice.Tasks = append(notice.Tasks, i)
				notice.Descriptions = append(notice.Descriptions, task.Description)
			}
		}
		if _, err := t.router.Send(delegator, assignee, core.MessageDelegation, notice); err != nil {
			kind := "send failed"
			if errors.Is(err, core.ErrUnknownRecipient) {
				kind = core.ErrUnknownRecipient.Error()
			}
			t.sink.Emit(core.ProcessingError{
				Operation: "delegate",
				Agent:     assignee,
				Kind:      kind,
				Detail:    err.Error(),
			})
			t.logger.Warn("delegation envelope undeliverable", "delegation_id", d.ID, "assignee", string(assignee), "error", err.Error())
		}
	}

	return d.Clone(), nil
}

// Complete marks a single task complete. Completing an already-complete task
// is a no-op, not an error, and emits nothing; otherwise task_completed is
// emitted, flagged with whether this completion finished the delegation.
func (t *Tracker) Complete(delegationID string, taskIndex int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.delegations[delegationID]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrUnknownDelegation, delegationID)
	}
	if taskIndex < 0 || taskIndex >= len(d.Tasks) {
		return fmt.Errorf("%w: %d of %d tasks", core.ErrTaskIndexOutOfRange, taskIndex, len(d.Tasks))
	}
	if d.Tasks[taskIndex].Done {
		return nil
	}

	d.Tasks[taskIndex].Done = true
	done := d.Complete()
	t.sink.Emit(core.TaskCompleted{DelegationID: delegationID, TaskIndex: taskIndex, DelegationDone: done})
	t.logger.Debug("task completed", "delegation_id", delegationID, "task_index", taskIndex, "delegation_done", done)
	return nil
}

// Get returns a copy of one delegation or ErrUnknownDelegation.
func (t *Tracker) Get(delegationID string) (core.Delegation, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.delegations[delegationID]
	if !ok {
		return core.Delegation{}, fmt.Errorf("%w: %s", core.ErrUnknownDelegation, delegationID)
	}
	return d.Clone(), nil
}

// List returns copies of all delegations in creation order.
func (t *Tracker) List() []core.Delegation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]core.Delegation, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.delegations[id].Clone())
	}
	return out
}
