// Package db describes what tenderiq keeps in Valkey/Redis: tender records,
// JSON documents (analysis reports, bid synopses) and spend counters.
package db

import (
	"context"
	"time"
)

// Store is everything the composition root wires. Repositories take the
// slice of it they use.
type Store interface {
	Pinger
	RecordStore
	DocumentStore
	CounterStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Record is a flat field map stored under one key.
type Record struct {
	Key    string
	Fields map[string]string
}

// RecordStore keeps tender records as hashes.
type RecordStore interface {
	// PutRecords writes all records in one round trip.
	PutRecords(ctx context.Context, records []Record) error
	// GetRecords reads records in key order. A missing key yields an empty map.
	GetRecords(ctx context.Context, keys []string) ([]map[string]string, error)
	// RecordKeys lists keys matching a glob pattern.
	RecordKeys(ctx context.Context, pattern string) ([]string, error)
	// DeleteRecord removes a record and reports whether it existed.
	DeleteRecord(ctx context.Context, key string) (bool, error)
}

// DocumentStore keeps opaque encoded documents.
type DocumentStore interface {
	// GetDocument returns ErrKeyNotFound for a missing or expired key.
	GetDocument(ctx context.Context, key string) ([]byte, error)
	// PutDocument overwrites key. ttl <= 0 stores without expiry.
	PutDocument(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteDocument(ctx context.Context, key string) error
}

// CounterStore keeps integer counters that expire with their period.
type CounterStore interface {
	// AddToCounter increments key by n and sets ttl only if the key has none,
	// so the first write of a period fixes its expiry. Returns the new total.
	AddToCounter(ctx context.Context, key string, n int64, ttl time.Duration) (int64, error)
	// Counter returns the current total, 0 for a missing key.
	Counter(ctx context.Context, key string) (int64, error)
}
