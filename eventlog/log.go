package eventlog

import (
	"iter"
	"sync"
	"time"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/logging"
)

// Options holds configuration overrides passed to New().
type Options struct {
	// SubscriberBuffer sets the channel capacity for each subscriber. A
	// subscriber that falls this far behind misses events rather than
	// blocking the commit path; the log itself stays replayable via Query.
	SubscriberBuffer int
	// StatsWindow bounds the trailing wall-clock window used for the
	// events-per-minute rate in Stats().
	StatsWindow time.Duration
	// Logger provides structured logging. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Stats is a read-side derivation over the log. It is recomputed on demand
// from the recorded events so it can never drift from them.
type Stats struct {
	// Total is the number of events ever appended.
	Total int `json:"total"`
	// ByType maps each event type to its count.
	ByType map[core.EventType]int `json:"by_type"`
	// LastEvent is the timestamp of the most recent event; zero when empty.
	LastEvent time.Time `json:"last_event,omitzero"`
	// EventsPerMinute is the rate over the trailing stats window. An empty
	// log yields zero.
	EventsPerMinute float64 `json:"events_per_minute"`
}

// Log is the append-only protocol event journal. Appends are serialized so
// sequence numbers are strictly increasing and subscribers observe events in
// commit order. Queries iterate over an immutable snapshot and may run
// concurrently with appends.
type Log struct {
	mu      sync.RWMutex
	events  []core.ProtocolEvent
	nextSeq uint64
	subs    map[int]chan core.ProtocolEvent
	nextSub int

	subscriberBuffer int
	statsWindow      time.Duration
	logger           logging.Logger
}

// Compile-time assertion: the Log is the engine's event sink.
var _ core.EventSink = (*Log)(nil)

// New constructs an empty event log with optional overrides.
func New(optFns ...func(o *Options)) *Log {
	opts := Options{
		SubscriberBuffer: 100,
		StatsWindow:      time.Minute,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Log{
		subs:             make(map[int]chan core.ProtocolEvent),
		subscriberBuffer: opts.SubscriberBuffer,
		statsWindow:      opts.StatsWindow,
		logger:           opts.Logger,
	}
}

// Emit implements core.EventSink. It assigns the next sequence number,
// appends the event and notifies subscribers, all under one lock so commit
// order and fan-out order agree. The sequenced record is returned to the
// emitting component.
func (l *Log) Emit(payload core.EventPayload) core.ProtocolEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev := core.ProtocolEvent{
		Seq:       l.nextSeq,
		Type:      payload.EventType(),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	l.nextSeq++
	l.events = append(l.events, ev)

	for id, ch := range l.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber buffer full: drop rather than block the commit.
			l.logger.Warn("event dropped for slow subscriber", "subscriber", id, "seq", ev.Seq, "type", string(ev.Type))
		}
	}
	return ev
}

// Len returns the number of events appended so far.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Query returns a lazy, restartable, order-preserving sequence of events
// with Seq >= since, optionally restricted to the given types. Each
// iteration works on a snapshot taken when the range begins, so re-ranging
// the same sequence observes events appended in between.
func (l *Log) Query(since uint64, types ...core.EventType) iter.Seq[core.ProtocolEvent] {
	var allowed map[core.EventType]bool
	if len(types) > 0 {
		allowed = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			allowed[t] = true
		}
	}
	return func(yield func(core.ProtocolEvent) bool) {
		for _, ev := range l.snapshot() {
			if ev.Seq < since {
				continue
			}
			if allowed != nil && !allowed[ev.Type] {
				continue
			}
			if !yield(ev) {
				return
			}
		}
	}
}

// Stats derives summary statistics without mutating any state.
func (l *Log) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Stats{Total: len(l.events), ByType: make(map[core.EventType]int, 9)}
	if len(l.events) == 0 {
		return s
	}
	for _, ev := range l.events {
		s.ByType[ev.Type]++
	}
	s.LastEvent = l.events[len(l.events)-1].Timestamp

	cutoff := time.Now().UTC().Add(-l.statsWindow)
	recent := 0
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Timestamp.Before(cutoff) {
			break
		}
		recent++
	}
	s.EventsPerMinute = float64(recent) / l.statsWindow.Minutes()
	return s
}

// Subscribe registers an observer and returns its receive channel plus a
// cancel function. Events arrive in commit order; cancel removes the
// subscription and closes the channel.
func (l *Log) Subscribe() (<-chan core.ProtocolEvent, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSub
	l.nextSub++
	ch := make(chan core.ProtocolEvent, l.subscriberBuffer)
	l.subs[id] = ch

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if sub, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// snapshot returns a defensive copy of the event slice for iteration.
func (l *Log) snapshot() []core.ProtocolEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	events := make([]core.ProtocolEvent, len(l.events))
	copy(events, l.events)
	return events
}
