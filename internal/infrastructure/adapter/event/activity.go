package event

import (
	"sync"
	"time"

	"github.com/shoppro/storefront/internal/domain/port/event"
)

// DefaultActivityCapacity is the number of recent events retained when
// no explicit capacity is configured.
const DefaultActivityCapacity = 200

// ActivityEntry is one retained event, flattened for the admin console
type ActivityEntry struct {
	Kind       string         `json:"kind"`
	UserID     uint64         `json:"userId"`
	OccurredAt time.Time      `json:"occurredAt"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// ActivityProjection keeps a bounded, newest-first window of published
// events. It replaces per-client push subscriptions: the admin console
// polls Recent instead of holding a live feed open.
type ActivityProjection struct {
	mu       sync.RWMutex
	capacity int
	entries  []ActivityEntry
}

// NewActivityProjection creates a projection retaining up to capacity events
func NewActivityProjection(capacity int) *ActivityProjection {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	return &ActivityProjection{capacity: capacity}
}

// Attach subscribes the projection to the bus
func (p *ActivityProjection) Attach(bus event.Bus) {
	bus.Subscribe(p.record)
}

func (p *ActivityProjection) record(evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry := ActivityEntry{
		Kind:       string(evt.Kind),
		UserID:     evt.UserID,
		OccurredAt: evt.OccurredAt,
		Fields:     evt.Fields,
	}

	p.entries = append(p.entries, entry)
	if len(p.entries) > p.capacity {
		p.entries = p.entries[len(p.entries)-p.capacity:]
	}
}

// Recent returns up to limit retained events, newest first.
// A non-positive limit returns the full window.
func (p *ActivityProjection) Recent(limit int) []ActivityEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if limit <= 0 || limit > len(p.entries) {
		limit = len(p.entries)
	}

	out := make([]ActivityEntry, 0, limit)
	for i := len(p.entries) - 1; i >= len(p.entries)-limit; i-- {
		out = append(out, p.entries[i])
	}
	return out
}
