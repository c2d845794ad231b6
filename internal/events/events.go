// Package events carries change notifications between the repositories that
// write collections and the views that display them.
package events

import "sync"

// Operation names what happened to a collection
type Operation string

const (
	OpCreated  Operation = "created"
	OpUpdated  Operation = "updated"
	OpDeleted  Operation = "deleted"
	OpReplaced Operation = "replaced" // whole collection overwritten (import, cascade)
	OpSelected Operation = "selected" // a pointer such as the current style moved
)

// Event describes one change to one collection. ID is empty when the change
// is not about a single record.
type Event struct {
	Collection string    `json:"collection"`
	Operation  Operation `json:"operation"`
	ID         string    `json:"id,omitempty"`
}

// Bus allows publishing and subscribing to events
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]chan<- Event
	next        int
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{subscribers: make(map[int]chan<- Event)}
}

// Subscribe adds a subscriber and returns a function that removes it.
// The channel is never closed by the bus.
func (b *Bus) Subscribe(ch chan<- Event) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subscribers[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()
		})
	}
}

// Publish sends an event to all subscribers without blocking. A nil bus
// drops the event.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
