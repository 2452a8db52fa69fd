package tender

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/tenderiq/internal/db"
	domtender "github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putFn    func(ctx context.Context, records []db.Record) error
	getFn    func(ctx context.Context, keys []string) ([]map[string]string, error)
	keysFn   func(ctx context.Context, pattern string) ([]string, error)
	deleteFn func(ctx context.Context, key string) (bool, error)
}

func (m *mockStore) PutRecords(ctx context.Context, records []db.Record) error {
	if m.putFn != nil {
		return m.putFn(ctx, records)
	}
	return nil
}

// GetRecords reports every key as missing unless getFn is set.
func (m *mockStore) GetRecords(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.getFn != nil {
		return m.getFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) RecordKeys(ctx context.Context, pattern string) ([]string, error) {
	if m.keysFn != nil {
		return m.keysFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) DeleteRecord(ctx context.Context, key string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "tenderiq:")
	repo.now = func() time.Time { return time.Unix(0, 1000) }
	return repo, ms
}

func testTender(t *testing.T, id string) domtender.Tender {
	t.Helper()
	td, err := domtender.New(id, domtender.Fields{
		Organization:   "NHAI",
		TDRNumber:      "TDR-" + id,
		Title:          "Highway widening",
		Description:    "Four-laning of NH-48",
		Category:       "Civil Works",
		Location:       "Gujarat",
		TenderValue:    "₹30 Cr",
		Status:         domtender.StatusUnderEvaluation,
		SubmissionDate: "25 Apr 2024",
		AnalysisDate:   time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Starred:        true,
		Progress:       40,
	})
	if err != nil {
		t.Fatalf("testTender: %v", err)
	}
	return td
}
