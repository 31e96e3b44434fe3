package event

import "time"

// Kind identifies the category of a published event
type Kind string

const (
	KindUserRegistered Kind = "user.registered"
	KindOrderCreated   Kind = "order.created"
	KindWalletUpdated  Kind = "wallet.updated"
	KindProductCreated Kind = "product.created"
)

// Event is a fact broadcast after a state change has been committed.
// Fields carries event-specific details for subscribers and projections.
type Event struct {
	Kind       Kind
	UserID     uint64
	OccurredAt time.Time
	Fields     map[string]any
}

// Handler receives published events. Handlers must not block.
type Handler func(Event)

// Bus delivers committed state changes to in-process subscribers
type Bus interface {
	// Publish broadcasts the event to all subscribers
	Publish(event Event)

	// Subscribe registers a handler for every published event
	Subscribe(handler Handler)
}
