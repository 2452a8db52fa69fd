package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/tenderiq/internal/db"
)

const scanBatch = 100

// PutRecords writes every record as a hash in one DoMulti round trip.
func (s *Store) PutRecords(ctx context.Context, records []db.Record) error {
	if len(records) == 0 {
		return nil
	}

	cmds := make(rueidis.Commands, 0, len(records))
	for _, r := range records {
		hset := s.b().Hset().Key(r.Key).FieldValue()
		for f, v := range r.Fields {
			hset = hset.FieldValue(f, v)
		}
		cmds = append(cmds, hset.Build())
	}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpHSet, Key: records[i].Key, Err: err}
		}
	}
	return nil
}

// GetRecords reads hashes in one DoMulti round trip.
func (s *Store) GetRecords(ctx context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make(rueidis.Commands, len(keys))
	for i, k := range keys {
		cmds[i] = s.b().Hgetall().Key(k).Build()
	}

	out := make([]map[string]string, len(keys))
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		m, err := res.AsStrMap()
		if err != nil {
			return nil, &db.Error{Op: db.OpHGetAll, Key: keys[i], Err: err}
		}
		out[i] = m
	}
	return out, nil
}

// RecordKeys walks the keyspace with SCAN MATCH.
func (s *Store) RecordKeys(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		entry, err := s.do(ctx, s.b().Scan().Cursor(cursor).Match(pattern).Count(scanBatch).Build()).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Key: pattern, Err: err}
		}
		keys = append(keys, entry.Elements...)
		if cursor = entry.Cursor; cursor == 0 {
			return keys, nil
		}
	}
}

// DeleteRecord issues DEL and reports whether a key was removed.
func (s *Store) DeleteRecord(ctx context.Context, key string) (bool, error) {
	n, err := s.del(ctx, key)
	return n > 0, err
}

func (s *Store) del(ctx context.Context, key string) (int64, error) {
	n, err := s.do(ctx, s.b().Del().Key(key).Build()).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpDel, Key: key, Err: err}
	}
	return n, nil
}
