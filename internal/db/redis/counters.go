package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/tenderiq/internal/db"
)

// AddToCounter pipelines INCRBY and EXPIRE NX.
func (s *Store) AddToCounter(ctx context.Context, key string, n int64, ttl time.Duration) (int64, error) {
	res := s.client.DoMulti(ctx,
		s.b().Incrby().Key(key).Increment(n).Build(),
		s.b().Expire().Key(key).Seconds(int64(ttl/time.Second)).Nx().Build(),
	)

	total, err := res[0].AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpIncrBy, Key: key, Err: err}
	}
	if err := res[1].Error(); err != nil {
		return total, &db.Error{Op: db.OpExpire, Key: key, Err: err}
	}
	return total, nil
}

// Counter reads a counter written by AddToCounter.
func (s *Store) Counter(ctx context.Context, key string) (int64, error) {
	n, err := s.do(ctx, s.b().Get().Key(key).Build()).AsInt64()
	switch {
	case rueidis.IsRedisNil(err):
		return 0, nil
	case err != nil:
		return 0, &db.Error{Op: db.OpGet, Key: key, Err: err}
	}
	return n, nil
}
