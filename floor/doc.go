// Package floor houses the turn-taking arbiter. Exactly one agent may hold
// the floor at a time; contending requests wait in a priority queue ordered
// by priority (descending) then arrival sequence (ascending), so equal
// priorities are served in arrival order and no request can be starved by
// same-or-lower priority arrivals.
//
// A higher-priority request never preempts the current holder — it only
// reorders the queue for the next grant. Yielding and granting the next
// request happen in one atomic step, so no observer ever sees an idle floor
// with a non-empty queue.
package floor
