package storage

import (
	"context"
	"sync"

	"github.com/frzip09/absolute-time/internal/settings"
)

// MemoryBackend keeps the settings record in process memory. It is the
// fallback when no persistence is configured, and the backend of choice in
// tests.
type MemoryBackend struct {
	mu       sync.RWMutex
	record   settings.Patch
	watchers watcherSet
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(_ context.Context) (settings.Patch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(settings.Patch, len(m.record))
	for k, v := range m.record {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryBackend) Save(_ context.Context, s settings.Settings) error {
	record := settings.Record(s)

	m.mu.Lock()
	m.record = record
	m.mu.Unlock()

	m.watchers.broadcast(record)
	return nil
}

func (m *MemoryBackend) Watch(ctx context.Context) (<-chan settings.Patch, error) {
	return m.watchers.subscribe(ctx), nil
}

func (m *MemoryBackend) Close() error {
	m.watchers.closeAll()
	return nil
}
