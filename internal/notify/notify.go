// Package notify delivers store mutation events to registered subscribers.
package notify

import (
	"Drawer/internal/model"
	"sync"
)

// Kind identifies an event topic.
type Kind string

const (
	KindInit      Kind = "clipboard-init"
	KindAppend    Kind = "clipboard-append"
	KindDeleteOld Kind = "clipboard-delete-old"
)

// Event is one notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind    Kind                   `json:"kind"`
	Entries []model.ClipboardEntry `json:"entries,omitempty"`
	Entry   *model.ClipboardEntry  `json:"entry,omitempty"`
	Count   int64                  `json:"count"`
}

// Init builds the startup snapshot event.
func Init(entries []model.ClipboardEntry) Event {
	if entries == nil {
		entries = []model.ClipboardEntry{}
	}
	return Event{Kind: KindInit, Entries: entries}
}

// Append builds the event for a newly stored entry.
func Append(e model.ClipboardEntry) Event {
	return Event{Kind: KindAppend, Entry: &e}
}

// DeleteOld builds the eviction event; it carries only the count removed.
func DeleteOld(n int64) Event {
	return Event{Kind: KindDeleteOld, Count: n}
}

// Handler receives events. It must not block.
type Handler func(Event)

type subscriber struct {
	id uint64
	h  Handler
}

// Hub fans events out to subscribers in registration order.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers h and returns a func that removes it.
func (h *Hub) Subscribe(handler Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscriber{id: id, h: handler})

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every subscriber synchronously.
// Events published sequentially are observed in the same order by every subscriber.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		s.h(e)
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
