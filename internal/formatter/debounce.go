package formatter

import (
	"sync"
	"time"
)

// DefaultDebounceDelay coalesces bursts of DOM churn into one pass.
const DefaultDebounceDelay = 250 * time.Millisecond

// Debouncer owns a single cancelable scheduled call. Schedule cancels any
// pending call and arms a new one at the fixed delay, so no matter how
// often it is called there is at most one fire per quiet period.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Schedule arms fn to run after the delay, replacing any pending call.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
