// Package delegation houses the task-delegation tracker. Delegation is a
// speech act: only the current floor holder may create one. A delegation is
// created atomically with all of its tasks pending, then one delegation
// envelope is issued per distinct assignee. Tasks complete independently and
// out of order; completing an already-complete task is a no-op. Delegations
// are never deleted, only marked complete, so the record stays auditable.
package delegation
