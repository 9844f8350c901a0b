package settings

import (
	"context"

	"github.com/frzip09/absolute-time/internal/logger"
)

// Backend is the persistence capability the store is built on. Adapters
// live in internal/storage; the concrete one is selected once at startup.
type Backend interface {
	// Load returns the raw stored record. Absent fields simply stay out of
	// the returned patch; they imply defaults.
	Load(ctx context.Context) (Patch, error)

	// Save persists the full settings record and notifies watchers.
	Save(ctx context.Context, s Settings) error

	// Watch delivers change notifications as partial patches until ctx is
	// canceled. The channel is closed on cancellation.
	Watch(ctx context.Context) (<-chan Patch, error)

	Close() error
}

// Store wraps a Backend with the coercion and failure semantics callers
// rely on: loads never fail, saves propagate.
type Store struct {
	backend Backend
	logger  logger.Logger
}

func NewStore(backend Backend, log logger.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  log,
	}
}

// Load reads and coerces the stored settings. On any read failure it
// returns Defaults(); the error never reaches the caller.
func (s *Store) Load(ctx context.Context) Settings {
	raw, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Warn("settings load failed, using defaults", logger.Error(err))
		return Defaults()
	}
	return Coerce(raw)
}

// Save writes the full settings value. Failures are the caller's problem;
// the store does not retry.
func (s *Store) Save(ctx context.Context, value Settings) error {
	return s.backend.Save(ctx, value)
}

// Watch exposes the backend's change notifications.
func (s *Store) Watch(ctx context.Context) (<-chan Patch, error) {
	return s.backend.Watch(ctx)
}
