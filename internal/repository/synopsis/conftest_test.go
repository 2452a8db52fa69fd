package synopsis

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/tenderiq/internal/db"
)

// mockDocStore implements the consumer interface for tests.
type mockDocStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	putFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn func(ctx context.Context, key string) error
}

func (m *mockDocStore) GetDocument(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockDocStore) PutDocument(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.putFn != nil {
		return m.putFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockDocStore) DeleteDocument(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockDocStore) {
	t.Helper()
	ms := &mockDocStore{}
	return New(ms, "tenderiq:"), ms
}
