package core

import "time"

// Task is one delegated unit of work: an opaque description plus the agent it
// is assigned to. Tasks may complete independently and out of order.
type Task struct {
	Description string  `json:"description"`
	Assignee    AgentID `json:"assignee"`
	Done        bool    `json:"done"`
}

// Delegation is a bundle of tasks assigned by the current floor holder. It is
// created atomically with all of its tasks and is complete once every task is
// done. Delegations are never deleted, only completed, for audit purposes.
type Delegation struct {
	ID        string    `json:"id"`
	Delegator AgentID   `json:"delegator"`
	Created   time.Time `json:"created"`
	Tasks     []Task    `json:"tasks"`
}

// Complete reports whether every task is done.
func (d Delegation) Complete() bool {
	for _, t := range d.Tasks {
		if !t.Done {
			return false
		}
	}
	return len(d.Tasks) > 0
}

// Remaining returns the number of unfinished tasks.
func (d Delegation) Remaining() int {
	n := 0
	for _, t := range d.Tasks {
		if !t.Done {
			n++
		}
	}
	return n
}

// Assignees returns the distinct task assignees preserving first-appearance
// order.
func (d Delegation) Assignees() []AgentID {
	seen := make(map[AgentID]bool, len(d.Tasks))
	var out []AgentID
	for _, t := range d.Tasks {
		if !seen[t.Assignee] {
			seen[t.Assignee] = true
			out = append(out, t.Assignee)
		}
	}
	return out
}

// Clone returns a deep copy of the delegation safe for independent mutation.
func (d Delegation) Clone() Delegation {
	tasks := make([]Task, len(d.Tasks))
	copy(tasks, d.Tasks)
	d.Tasks = tasks
	return d
}
