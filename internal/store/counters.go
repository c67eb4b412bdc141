package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/waabox/pipelinedeck/internal/domain"
)

// CounterStore keeps the in-memory counters and their persisted copy in step.
// Every read-modify-write runs under a single lock, so increments are never lost.
type CounterStore struct {
	kv      KV
	logger  *zap.Logger
	mu      sync.Mutex
	current domain.Counters
}

// NewCounterStore wraps kv. A nil logger disables logging.
func NewCounterStore(kv KV, logger *zap.Logger) *CounterStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CounterStore{kv: kv, logger: logger}
}

// Load reads every counter from storage and makes the result the in-memory model.
// Missing, malformed or negative values load as 0; it never fails.
func (s *CounterStore) Load(ctx context.Context) domain.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()

	var loaded domain.Counters
	for _, name := range domain.CounterNames {
		v, err := s.read(ctx, name)
		if err != nil {
			s.logger.Warn("reading counter failed, defaulting to 0",
				zap.String("counter", string(name)), zap.Error(err))
			v = 0
		}
		loaded = loaded.With(name, v)
	}
	s.current = loaded
	return loaded
}

// Save writes all three counters as decimal strings.
// The in-memory model is updated even if a write fails.
func (s *CounterStore) Save(ctx context.Context, c domain.Counters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = c
	for _, name := range domain.CounterNames {
		if err := s.kv.Set(ctx, name.StorageKey(), strconv.Itoa(c.Get(name))); err != nil {
			return fmt.Errorf("saving %s: %w", name, err)
		}
	}
	return nil
}

// Increment adds one to the named counter and returns the new value.
// If storage cannot be read the in-memory value is used as the base; if the write fails the
// in-memory value still advances and the error is returned.
func (s *CounterStore) Increment(ctx context.Context, name domain.CounterName) (int, error) {
	if !name.Valid() {
		return 0, fmt.Errorf("incrementing %q: %w", name, domain.ErrUnknownCounter)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	base, err := s.read(ctx, name)
	if err != nil {
		s.logger.Warn("reading counter failed, using in-memory value",
			zap.String("counter", string(name)), zap.Error(err))
		base = s.current.Get(name)
	}
	next := base + 1
	s.current = s.current.With(name, next)

	if err := s.kv.Set(ctx, name.StorageKey(), strconv.Itoa(next)); err != nil {
		return next, fmt.Errorf("persisting %s: %w", name, err)
	}
	return next, nil
}

// Snapshot returns the in-memory counters.
func (s *CounterStore) Snapshot() domain.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reset deletes every persisted counter and zeroes the in-memory model.
func (s *CounterStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.Counters{}
	for _, name := range domain.CounterNames {
		if err := s.kv.Delete(ctx, name.StorageKey()); err != nil {
			return fmt.Errorf("clearing %s: %w", name, err)
		}
	}
	return nil
}

// read returns the stored value of name. Absent and unparsable values are 0 with no error;
// only backend failures are reported.
func (s *CounterStore) read(ctx context.Context, name domain.CounterName) (int, error) {
	raw, ok, err := s.kv.Get(ctx, name.StorageKey())
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil || v < 0 {
		s.logger.Warn("ignoring malformed counter value",
			zap.String("counter", string(name)), zap.String("raw", raw))
		return 0, nil
	}
	return v, nil
}
