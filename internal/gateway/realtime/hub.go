package realtime

import (
	"context"
	"strings"
	"sync"
)

const subscriberBuffer = 16

// Hub fans events out to local subscribers of a session. Slow subscribers
// lose events instead of blocking delivery.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe returns a channel that receives events for sessionID until ctx
// is done, at which point it is closed.
func (h *Hub) Subscribe(ctx context.Context, sessionID string) <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	sessionID = strings.TrimSpace(sessionID)

	h.mu.Lock()
	set, ok := h.subs[sessionID]
	if !ok {
		set = make(map[chan Event]struct{})
		h.subs[sessionID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		defer h.mu.Unlock()
		cur := h.subs[sessionID]
		delete(cur, ch)
		if len(cur) == 0 {
			delete(h.subs, sessionID)
		}
		close(ch)
	}()
	return ch
}

// Deliver hands ev to every subscriber of its session.
func (h *Hub) Deliver(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[ev.SessionID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) subscribers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}
