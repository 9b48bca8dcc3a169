package watch

import (
	"sync"

	"github.com/WinterOat/vault_service/internal/dto"
)

const subscriberBuffer = 8

// Hub fans out profile list snapshots to per-owner subscribers. A screen
// holds one subscription for its lifetime and tears it down on exit.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint]map[int]chan []dto.ProfileSummary
	nextID int
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint]map[int]chan []dto.ProfileSummary),
	}
}

// Subscribe registers a listener for ownerID. The returned cancel func
// removes the listener and closes its channel.
func (h *Hub) Subscribe(ownerID uint) (<-chan []dto.ProfileSummary, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[ownerID] == nil {
		h.subs[ownerID] = make(map[int]chan []dto.ProfileSummary)
	}
	id := h.nextID
	h.nextID++

	ch := make(chan []dto.ProfileSummary, subscriberBuffer)
	h.subs[ownerID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if listeners, ok := h.subs[ownerID]; ok {
			if c, ok := listeners[id]; ok {
				delete(listeners, id)
				close(c)
			}
			if len(listeners) == 0 {
				delete(h.subs, ownerID)
			}
		}
	}
	return ch, cancel
}

// Publish pushes a fresh snapshot to every listener of ownerID. Slow
// subscribers are skipped instead of blocking the notifier.
func (h *Hub) Publish(ownerID uint, snapshot []dto.ProfileSummary) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[ownerID] {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// SubscriberCount is used by tests and the health payload.
func (h *Hub) SubscriberCount(ownerID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[ownerID])
}
