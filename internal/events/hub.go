// Package events provides the real-time notification fan-out: a typed
// publish/subscribe hub broadcasting task events to every connected client.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Broadcast event names.
const (
	TaskCreated = "taskCreated"
	TaskUpdated = "task-updated"
)

// Event is the envelope delivered to subscribers.
type Event struct {
	Name    string `json:"name"`
	Payload any    `json:"payload"`
}

// subscriberBuffer bounds how many undelivered events a slow client may hold
// before further events are dropped for it.
const subscriberBuffer = 16

// Hub fans events out to all current subscribers. Delivery is at-most-once
// and best-effort: publishing never blocks, and a subscriber whose buffer is
// full loses the event. There is no replay for late subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]chan Event),
	}
}

// Subscribe registers a new subscriber and returns its id and receive
// channel. The channel is closed by Unsubscribe.
func (h *Hub) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(ch)
}

// Publish broadcasts an event to every subscriber without blocking. Events
// are dropped for subscribers that cannot keep up.
func (h *Hub) Publish(name string, payload any) {
	ev := Event{Name: name, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
