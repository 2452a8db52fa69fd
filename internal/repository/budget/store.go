package budget

import (
	"context"
	"fmt"
	"time"
)

// store is the consumer interface for budget counters (ISP).
type store interface {
	AddToCounter(ctx context.Context, key string, n int64, ttl time.Duration) (int64, error)
	Counter(ctx context.Context, key string) (int64, error)
}

// Store keeps per-period OpenAI token counters. A counter expires ttl after
// the first spend of its period; later spends do not push the expiry out.
type Store struct {
	store store
}

// New creates a budget store.
func New(s store) *Store {
	return &Store{store: s}
}

// Add records tokens spent against the counter at key.
func (s *Store) Add(ctx context.Context, key string, tokens int64, ttl time.Duration) error {
	if _, err := s.store.AddToCounter(ctx, key, tokens, ttl); err != nil {
		return fmt.Errorf("add %d tokens to %s: %w", tokens, key, err)
	}
	return nil
}

// Load returns tokens spent so far in the period. A missing counter is 0.
func (s *Store) Load(ctx context.Context, key string) (int64, error) {
	n, err := s.store.Counter(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("load budget %s: %w", key, err)
	}
	return n, nil
}
