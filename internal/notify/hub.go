package notify

import (
	"sync"

	"github.com/google/uuid"

	"github.com/frzip09/absolute-time/internal/logger"
	"github.com/frzip09/absolute-time/internal/settings"
)

// Hub fans settings patches out to attached page contexts. It is the
// cross-context messaging surface: a popup or options page saves settings,
// and every attached context receives the patch and reformats.
type Hub struct {
	logger logger.Logger

	mu      sync.Mutex
	clients map[string]chan settings.Patch
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		logger:  log,
		clients: make(map[string]chan settings.Patch),
	}
}

// Attach registers a new client and returns its id and receive channel.
func (h *Hub) Attach() (string, <-chan settings.Patch) {
	id := uuid.NewString()
	ch := make(chan settings.Patch, 8)

	h.mu.Lock()
	h.clients[id] = ch
	h.mu.Unlock()

	h.logger.Debug("notify client attached", logger.String("client_id", id))
	return id, ch
}

// Detach removes a client and closes its channel. Safe to call twice.
func (h *Hub) Detach(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(ch)
		h.logger.Debug("notify client detached", logger.String("client_id", id))
	}
}

// Broadcast delivers a patch to every attached client. A client whose
// buffer is full misses the patch; it reconverges on its next full load.
func (h *Hub) Broadcast(p settings.Patch) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.clients {
		select {
		case ch <- p:
		default:
			h.logger.Warn("notify client lagging, dropping patch",
				logger.String("client_id", id))
		}
	}
}

// Count returns the number of attached clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close detaches every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.clients {
		delete(h.clients, id)
		close(ch)
	}
}
