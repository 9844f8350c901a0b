package notify

import (
	"context"
	"fmt"

	"github.com/frzip09/absolute-time/internal/logger"
	"github.com/frzip09/absolute-time/internal/settings"
)

// Relay pumps settings change notifications from the persistence backend
// into the hub, bridging storage-level events (redis pub/sub, in-process
// saves) to attached page contexts.
type Relay struct {
	store  *settings.Store
	hub    *Hub
	logger logger.Logger
	stopCh chan struct{}
}

func NewRelay(store *settings.Store, hub *Hub, log logger.Logger) *Relay {
	return &Relay{
		store:  store,
		hub:    hub,
		logger: log,
		stopCh: make(chan struct{}),
	}
}

// Start subscribes to the backend's change feed and begins relaying.
func (r *Relay) Start(ctx context.Context) error {
	patches, err := r.store.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch settings: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stopCh:
				return
			case patch, ok := <-patches:
				if !ok {
					return
				}
				r.logger.Debug("relaying settings patch",
					logger.Int("clients", r.hub.Count()))
				r.hub.Broadcast(patch)
			}
		}
	}()

	return nil
}

// Stop stops the relay.
func (r *Relay) Stop() {
	close(r.stopCh)
}
