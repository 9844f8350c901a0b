package formatter

import (
	"context"
	"sync"
	"time"

	"github.com/frzip09/absolute-time/internal/dom"
	"github.com/frzip09/absolute-time/internal/logger"
	"github.com/frzip09/absolute-time/internal/settings"
)

// DefaultSettleDelay gives a freshly navigated page time to finish mounting
// before the post-navigation scan.
const DefaultSettleDelay = time.Second

// Options tunes the engine's timing. OnPass, when set, is called after
// every completed pass with the element count.
type Options struct {
	DebounceDelay time.Duration
	SettleDelay   time.Duration
	OnPass        func(count int)
}

// Engine keeps one page's formatting converged with the current settings.
//
// Three inputs feed it: mutation batches (debounced), navigation events
// (delayed by the settle period), and settings patches (immediate). All
// passes run on a single loop goroutine, so the settings snapshot is a
// plain local value threaded through the loop: a patch fully replaces it
// before the pass it triggers, and a pass never observes a stale snapshot.
type Engine struct {
	page      *dom.Page
	store     *settings.Store
	logger    logger.Logger
	opts      Options
	debounce  *Debouncer
	mutations <-chan []dom.Mutation
	navs      <-chan dom.NavigationEvent

	passCh   chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewEngine builds an engine for page. Either event channel may be nil when
// that input is not wired; the corresponding select arm then never fires.
func NewEngine(
	page *dom.Page,
	store *settings.Store,
	log logger.Logger,
	opts Options,
	mutations <-chan []dom.Mutation,
	navs <-chan dom.NavigationEvent,
) *Engine {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	return &Engine{
		page:      page,
		store:     store,
		logger:    log,
		opts:      opts,
		debounce:  NewDebouncer(opts.DebounceDelay),
		mutations: mutations,
		navs:      navs,
		passCh:    make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start loads settings, runs the initial full pass, and begins reacting to
// events. No failure here is fatal: a broken settings load falls back to
// defaults, a broken watch leaves the engine running on events it still has.
func (e *Engine) Start(ctx context.Context) {
	patches, err := e.store.Watch(ctx)
	if err != nil {
		e.logger.Warn("settings watch unavailable, toggles from other surfaces will not apply live",
			logger.Error(err))
		patches = nil
	}

	snap := e.store.Load(ctx)
	e.runPass(snap)

	go e.loop(ctx, snap, patches)
}

// Stop halts the engine and waits for the loop to exit.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.debounce.Stop()
		close(e.stopCh)
	})
	<-e.doneCh
}

func (e *Engine) loop(ctx context.Context, snap settings.Settings, patches <-chan settings.Patch) {
	defer close(e.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopCh:
			return

		case patch, ok := <-patches:
			if !ok {
				patches = nil
				continue
			}
			// Replace the snapshot first, then pass immediately so a
			// toggle feels instantaneous.
			snap = settings.Apply(snap, patch)
			e.runPass(snap)

		case batch, ok := <-e.mutations:
			if !ok {
				e.mutations = nil
				continue
			}
			if AnyFormatRelevant(batch) {
				e.debounce.Schedule(e.enqueuePass)
			}

		case ev, ok := <-e.navs:
			if !ok {
				e.navs = nil
				continue
			}
			if ev.Path != "" {
				e.page.Path = ev.Path
			}
			if snap.Debug {
				e.logger.Debug("navigation event",
					logger.String("event", ev.Name),
					logger.String("path", e.page.Path))
			}
			time.AfterFunc(e.opts.SettleDelay, e.enqueuePass)

		case <-e.passCh:
			e.runPass(snap)
		}
	}
}

// enqueuePass requests a pass on the loop goroutine. The buffer of one
// collapses requests that arrive while a pass is already pending.
func (e *Engine) enqueuePass() {
	select {
	case e.passCh <- struct{}{}:
	default:
	}
}

func (e *Engine) runPass(snap settings.Settings) {
	count := FormatAll(e.page, snap, time.Now())
	if snap.Debug {
		e.logger.Debug("format pass",
			logger.String("path", e.page.Path),
			logger.Bool("enabled", snap.Enabled),
			logger.Int("count", count))
	}
	if e.opts.OnPass != nil {
		e.opts.OnPass(count)
	}
}
