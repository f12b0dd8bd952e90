// Package eventlog houses the append-only protocol event journal. The Log is
// the single ordered record of every engine transition: it assigns monotonic
// sequence numbers at append time, serves lazy order-preserving queries,
// derives statistics purely from the recorded events, and fans appended
// events out to subscribers in commit order.
//
// The Log implements core.EventSink, so the engine can hand one shared Log
// handle to every owning component at construction — there is no hidden
// process-wide registry.
package eventlog
