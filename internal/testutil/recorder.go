package testutil

import (
	"sync"
	"time"

	"github.com/hupe1980/openfloor/core"
)

// EventRecorder drains a protocol event subscription into a slice so tests
// can assert on the observed order. Start it before triggering transitions
// and Stop it (or let the test end) when done.
type EventRecorder struct {
	mu     sync.Mutex
	events []core.ProtocolEvent
	done   chan struct{}
	cancel func()
}

// Record starts draining the given subscription in a goroutine.
func Record(events <-chan core.ProtocolEvent, cancel func()) *EventRecorder {
	r := &EventRecorder{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(r.done)
		for ev := range events {
			r.mu.Lock()
			r.events = append(r.events, ev)
			r.mu.Unlock()
		}
	}()
	return r
}

// Stop cancels the subscription and waits for the drain goroutine to finish,
// so Events() afterwards is complete and race-free.
func (r *EventRecorder) Stop() {
	r.cancel()
	<-r.done
}

// Events returns a copy of everything recorded so far.
func (r *EventRecorder) Events() []core.ProtocolEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.ProtocolEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *EventRecorder) Types() []core.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

// WaitFor polls until at least n events are recorded or the timeout expires,
// returning whether the count was reached. Useful when transitions happen on
// other goroutines.
func (r *EventRecorder) WaitFor(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		count := len(r.events)
		r.mu.Unlock()
		if count >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
