package session

import "sync"

// Hub fans snapshots out to websocket subscribers of one session.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Snapshot]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Snapshot]struct{})}
}

// Subscribe returns a channel of updates for id. The caller must invoke
// cancel to release it.
func (h *Hub) Subscribe(id string, initial Snapshot) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)
	ch <- initial

	h.mu.Lock()
	if h.subs[id] == nil {
		h.subs[id] = make(map[chan Snapshot]struct{})
	}
	h.subs[id][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id][ch]; ok {
			delete(h.subs[id], ch)
			close(ch)
			if len(h.subs[id]) == 0 {
				delete(h.subs, id)
			}
		}
	}
	return ch, cancel
}

// Publish never blocks: a slow subscriber loses its oldest pending update.
func (h *Hub) Publish(id string, snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[id] {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (h *Hub) Subscribers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[id])
}
