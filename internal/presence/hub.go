// Package presence implements the best-effort "who is editing"
// awareness: an in-process pub/sub hub plus a per-document tracker
// maintaining a roster for the editing badge. There is no conflict
// resolution, locking or merge logic here; concurrent edits remain
// last-write-wins.
package presence

import "sync"

// Message is one presence announcement on a channel.
type Message struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Editing bool   `json:"editing"`
	Context string `json:"context,omitempty"`
}

// ChannelForPrototype names the presence channel of one document.
func ChannelForPrototype(prototypeID string) string {
	return "prototype-presence-" + prototypeID
}

// Hub is a fire-and-forget broadcast channel registry. Delivery is
// best-effort: messages to subscribers with a full buffer are dropped,
// and no ordering is guaranteed across subscribers.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan Message
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan Message)}
}

// Publish broadcasts a message to every subscriber of the channel.
func (h *Hub) Publish(channel string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[channel] {
		select {
		case ch <- msg:
		default:
			// Slow subscriber; drop rather than block the publisher.
		}
	}
}

// Subscribe registers a handler channel on the named channel and
// returns the receive side plus an unsubscribe function. Unsubscribing
// closes the channel.
func (h *Hub) Subscribe(channel string, buffer int) (<-chan Message, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Message, buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[int]chan Message)
	}
	h.subs[channel][id] = ch
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[channel]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.subs, channel)
			}
		}
	}
	return ch, unsubscribe
}

// SubscriberCount returns how many subscribers the channel currently has.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channel])
}
