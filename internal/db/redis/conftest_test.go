package redis

import (
	"errors"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/tenderiq/internal/db"
)

func newMockStore(t *testing.T) (*Store, *mock.Client) {
	t.Helper()
	c := mock.NewClient(gomock.NewController(t))
	return NewStoreForTest(c), c
}

// hashPairs turns "HSET key f1 v1 f2 v2" into {f1: v1, f2: v2}.
func hashPairs(cmd []string) map[string]string {
	out := make(map[string]string)
	for i := 2; i+1 < len(cmd); i += 2 {
		out[cmd[i]] = cmd[i+1]
	}
	return out
}

func assertDBError(t *testing.T, err error, op, key string) {
	t.Helper()
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected *db.Error, got %v", err)
	}
	if dbErr.Op != op || dbErr.Key != key {
		t.Errorf("db.Error = %s %q, want %s %q", dbErr.Op, dbErr.Key, op, key)
	}
}
