package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/db"
	domreport "github.com/kailas-cloud/tenderiq/internal/domain/report"
)

// store is the consumer interface for the report cache (ISP).
type store interface {
	GetDocument(ctx context.Context, key string) ([]byte, error)
	PutDocument(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteDocument(ctx context.Context, key string) error
}

// Repo caches analysis reports as JSON strings under "<prefix>analysis:<tenderID>".
// Cache failures are logged and reported as misses; they never fail a request.
type Repo struct {
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a report cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly. It may be nil.
func New(s store, prefix string, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Repo {
	return &Repo{
		store:      s,
		prefix:     prefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached report of a tender, if any.
func (r *Repo) Get(ctx context.Context, tenderID string) (domreport.Report, bool) {
	key := r.key(tenderID)
	data, err := r.store.GetDocument(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn("Failed to get cached report", zap.String("key", key), zap.Error(err))
		}
		r.incCache("miss")
		return domreport.Report{}, false
	}

	var rep domreport.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		r.logger.Warn("Failed to parse cached report", zap.String("key", key), zap.Error(err))
		r.incCache("miss")
		return domreport.Report{}, false
	}

	r.incCache("hit")
	return rep, true
}

// Put caches a report under its tender ID.
func (r *Repo) Put(ctx context.Context, rep *domreport.Report) {
	key := r.key(rep.TenderID)
	data, err := json.Marshal(rep)
	if err != nil {
		r.logger.Warn("Failed to encode report", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.store.PutDocument(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("Failed to cache report", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the cached report of a tender.
func (r *Repo) Invalidate(ctx context.Context, tenderID string) error {
	if err := r.store.DeleteDocument(ctx, r.key(tenderID)); err != nil {
		return fmt.Errorf("del report %s: %w", tenderID, err)
	}
	return nil
}

func (r *Repo) incCache(result string) {
	if r.cacheTotal != nil {
		r.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (r *Repo) key(tenderID string) string {
	return r.prefix + "analysis:" + tenderID
}
