// Package live fans out change events to subscribers whose lifetime is bound
// to a context. A subscription is released when its context ends, so a
// client that goes away never leaves a listener behind.
package live

import (
	"context"
	"sync"
)

// Topic names a stream of events, e.g. "recipes" or "notifications:42"
type Topic string

// Topics used by the services
const (
	TopicRecipes Topic = "recipes"
)

// Event is a change notification. Payload is whatever the publisher attached.
type Event struct {
	Topic   Topic
	Kind    string
	Payload interface{}
}

// Hub is an in-process publish/subscribe broker.
type Hub struct {
	mu     sync.Mutex
	subs   map[Topic]map[*subscription]struct{}
	buffer int
}

type subscription struct {
	ch   chan Event
	once sync.Once
}

// NewHub creates a hub whose subscriber channels hold up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[Topic]map[*subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers for events on topic until ctx is done. The returned
// channel is closed after the subscription is removed.
func (h *Hub) Subscribe(ctx context.Context, topic Topic) <-chan Event {
	s := &subscription{ch: make(chan Event, h.buffer)}

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*subscription]struct{})
	}
	h.subs[topic][s] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.remove(topic, s)
	}()
	return s.ch
}

func (h *Hub) remove(topic Topic, s *subscription) {
	h.mu.Lock()
	if set, ok := h.subs[topic]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, topic)
		}
	}
	h.mu.Unlock()
	s.once.Do(func() { close(s.ch) })
}

// Publish delivers ev to every current subscriber of ev.Topic. A subscriber
// whose buffer is full misses the event; publishers never block.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[ev.Topic] {
		select {
		case s.ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions on topic
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}
