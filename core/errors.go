package core

import "errors"

// Validation failures returned synchronously by engine operations. None are
// fatal to the process and none leave a component's owned state partially
// mutated: every operation validates fully before committing any change.
var (
	// ErrInvalidPriority is returned when a floor request uses a priority
	// outside the supported tiers.
	ErrInvalidPriority = errors.New("invalid floor priority")
	// ErrNotFloorHolder is returned when an agent tries to yield a floor it
	// does not hold.
	ErrNotFloorHolder = errors.New("agent does not hold the floor")
	// ErrFloorNotHeld is returned when a conversational send or a delegation
	// is attempted by an agent that does not hold the floor.
	ErrFloorNotHeld = errors.New("floor not held by sender")
	// ErrUnknownRecipient is returned when an envelope recipient has no
	// published manifest.
	ErrUnknownRecipient = errors.New("unknown recipient")
	// ErrUnknownAgent is returned by manifest lookup for an agent that never
	// announced itself.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrUnknownDelegation is returned for a delegation identifier that was
	// never created.
	ErrUnknownDelegation = errors.New("unknown delegation")
	// ErrTaskIndexOutOfRange is returned when completing a task index the
	// delegation does not have.
	ErrTaskIndexOutOfRange = errors.New("task index out of range")
	// ErrEmptyTaskList is returned when delegating zero tasks.
	ErrEmptyTaskList = errors.New("empty task list")
)
