package event

import (
	"sync"

	"github.com/shoppro/storefront/internal/domain/port/event"
)

// MemoryBus is a synchronous in-process event bus. Publish invokes every
// subscriber on the caller's goroutine, so handlers must be fast and must
// not call back into the bus.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers []event.Handler
}

// NewMemoryBus creates an empty in-process bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

// Subscribe registers a handler for every published event
func (b *MemoryBus) Subscribe(handler event.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// Publish broadcasts the event to all subscribers
func (b *MemoryBus) Publish(evt event.Event) {
	b.mu.RLock()
	handlers := make([]event.Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(evt)
	}
}
