package storage

import (
	"context"
	"sync"

	"github.com/frzip09/absolute-time/internal/settings"
)

// watcherSet fans change notifications out to in-process subscribers. The
// memory and file backends have no external notification channel, so their
// Watch is loopback: only saves made through this process are observed.
type watcherSet struct {
	mu    sync.Mutex
	seq   int
	chans map[int]chan settings.Patch
}

func (w *watcherSet) subscribe(ctx context.Context) <-chan settings.Patch {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.chans == nil {
		w.chans = make(map[int]chan settings.Patch)
	}
	id := w.seq
	w.seq++
	ch := make(chan settings.Patch, 8)
	w.chans[id] = ch

	go func() {
		<-ctx.Done()
		w.mu.Lock()
		defer w.mu.Unlock()
		if c, ok := w.chans[id]; ok {
			delete(w.chans, id)
			close(c)
		}
	}()

	return ch
}

func (w *watcherSet) broadcast(p settings.Patch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.chans {
		// A slow subscriber misses a notification rather than blocking the
		// save; the next load recomputes from the stored value anyway.
		select {
		case ch <- p:
		default:
		}
	}
}

func (w *watcherSet) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, ch := range w.chans {
		delete(w.chans, id)
		close(ch)
	}
}
