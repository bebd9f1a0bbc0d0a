// Package resize fans terminal size changes out to subscribed widgets.
package resize

import "sync"

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// Hub is an observable terminal size. Subscribers are called in
// subscription order on the publishing goroutine.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
	last   Size
}

type subscriber struct {
	id int
	fn func(Size)
}

// NewHub returns an empty hub.
func NewHub() *Hub { return &Hub{} }

// Subscribe registers fn and returns a function removing it. Calling the
// returned function more than once is harmless.
func (h *Hub) Subscribe(fn func(Size)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscriber{id: id, fn: fn})
	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return
		}
	}
}

// Publish records size and notifies every subscriber.
func (h *Hub) Publish(size Size) {
	h.mu.Lock()
	h.last = size
	subs := make([]subscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(size)
	}
}

// Last returns the most recently published size.
func (h *Hub) Last() Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
