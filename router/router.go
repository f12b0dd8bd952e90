package router

import (
	"fmt"
	"iter"
	"sync"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/floor"
	"github.com/hupe1980/openfloor/logging"
	"github.com/hupe1980/openfloor/registry"
)

// Options holds configuration overrides passed to New().
type Options struct {
	// Logger provides structured logging. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Router validates and delivers typed envelopes between agents. It owns the
// append-only set of envelopes and their terminal delivery status; envelopes
// are never mutated after being recorded. Delivery is synchronous, but
// creation and delivery are still recorded as two distinct events so an
// asynchronous path can be added later without changing the event contract.
type Router struct {
	mu        sync.RWMutex
	envelopes []core.Envelope

	floor    *floor.Manager
	registry *registry.Registry
	sink     core.EventSink
	logger   logging.Logger
}

// New constructs a router checking floor ownership against fm and recipients
// against reg, writing through the given event sink.
func New(fm *floor.Manager, reg *registry.Registry, sink core.EventSink, optFns ...func(o *Options)) *Router {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{floor: fm, registry: reg, sink: sink, logger: opts.Logger}
}

// Send routes one message. Conversational envelopes require the sender to
// hold the floor (ErrFloorNotHeld otherwise); other types do not. The
// recipient must have a published manifest (ErrUnknownRecipient otherwise)
// unless it is core.Broadcast, which expands to every known agent except the
// sender. Returns the delivered envelopes: one for a direct send, up to N-1
// for a broadcast.
func (r *Router) Send(sender, recipient core.AgentID, typ core.MessageType, payload any) ([]core.Envelope, error) {
	if typ == core.MessageConversational && !r.floor.Holds(sender) {
		return nil, fmt.Errorf("%w: %s", core.ErrFloorNotHeld, sender)
	}

	if recipient == core.Broadcast {
		return r.broadcast(sender, typ, payload, r.registry.Known()), nil
	}

	if !r.registry.Exists(recipient) {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownRecipient, recipient)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	env := r.deliverLocked(sender, recipient, typ, payload)
	return []core.Envelope{env}, nil
}

// broadcast expands a send over the given recipient set. The set is a
// snapshot; each recipient is re-validated at delivery time because the
// registry can shrink concurrently. Failures are per-recipient and do not
// abort the remaining deliveries.
func (r *Router) broadcast(sender core.AgentID, typ core.MessageType, payload any, recipients []core.AgentID) []core.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()

	var delivered []core.Envelope
	for _, recipient := range recipients {
		if recipient == sender {
			continue
		}
		if !r.registry.Exists(recipient) {
			env := core.NewEnvelope(sender, recipient, typ, payload)
			env.Status = core.StatusFailed
			r.envelopes = append(r.envelopes, env)
			r.sink.Emit(core.ProcessingError{
				Operation: "broadcast",
				Agent:     recipient,
				Kind:      core.ErrUnknownRecipient.Error(),
				Detail:    fmt.Sprintf("recipient %s deregistered during expansion", recipient),
			})
			r.logger.Warn("broadcast recipient lost", "sender", string(sender), "recipient", string(recipient))
			continue
		}
		delivered = append(delivered, r.deliverLocked(sender, recipient, typ, payload))
	}
	return delivered
}

// deliverLocked records one delivered envelope and emits envelope_created
// then envelope_delivered. Caller must hold the write lock.
func (r *Router) deliverLocked(sender, recipient core.AgentID, typ core.MessageType, payload any) core.Envelope {
	env := core.NewEnvelope(sender, recipient, typ, payload)
	env.Status = core.StatusDelivered
	r.envelopes = append(r.envelopes, env)
	r.sink.Emit(core.EnvelopeCreated{Envelope: env})
	r.sink.Emit(core.EnvelopeDelivered{EnvelopeID: env.ID, Sender: sender, Recipient: recipient})
	r.logger.Debug("envelope delivered", "envelope_id", env.ID, "sender", string(sender), "recipient", string(recipient), "type", string(typ))
	return env
}

// History returns a lazy, restartable sequence of envelopes in creation
// order, narrowed by the filter. Each iteration works on a snapshot taken
// when the range begins.
func (r *Router) History(filter core.EnvelopeFilter) iter.Seq[core.Envelope] {
	return func(yield func(core.Envelope) bool) {
		for _, env := range r.snapshot() {
			if !filter.Match(env) {
				continue
			}
			if !yield(env) {
				return
			}
		}
	}
}

func (r *Router) snapshot() []core.Envelope {
	r.mu.RLock()
	defer r.mu.RUnlock()
	envelopes := make([]core.Envelope, len(r.envelopes))
	copy(envelopes, r.envelopes)
	return envelopes
}
