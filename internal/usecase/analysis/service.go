// Package analysis produces and caches tender analysis reports.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/tenderiq/internal/domain/report"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// Service returns the analysis report of a tender, generating it on a cache miss.
// Concurrent requests for the same tender share one generation.
type Service struct {
	tenders   TenderReader
	cache     ReportCache
	generator Generator
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
	flight    singleflight.Group
	timeout   time.Duration
}

// New creates an analysis service.
func New(tenders TenderReader, cache ReportCache, generator Generator, logger *zap.Logger) *Service {
	return &Service{
		tenders:   tenders,
		cache:     cache,
		generator: generator,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// WithClock overrides the clock used to stamp reports.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithTimeout bounds a shared report generation. Zero means no bound.
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// Get returns the report of a tender, generating it on a cache miss.
// The generation outlives the caller that started it: a cancelled caller returns early
// while concurrent callers for the same tender still receive the report.
func (s *Service) Get(ctx context.Context, tenderID string) (report.Report, error) {
	t, err := s.tenders.Get(ctx, tenderID)
	if err != nil {
		return report.Report{}, fmt.Errorf("get tender: %w", err)
	}

	if cached, hit := s.cache.Get(ctx, tenderID); hit {
		s.logger.Debug("Analysis served from cache", zap.String("tender_id", tenderID))
		return cached, nil
	}

	ch := s.flight.DoChan(tenderID, func() (any, error) {
		gctx, cancel := s.generationContext(ctx)
		defer cancel()
		return s.generate(gctx, &t)
	})

	select {
	case <-ctx.Done():
		return report.Report{}, fmt.Errorf("analyze tender %s: %w", tenderID, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return report.Report{}, res.Err
		}
		if res.Shared {
			s.logger.Debug("Analysis shared with a concurrent request", zap.String("tender_id", tenderID))
		}
		return res.Val.(report.Report), nil
	}
}

// generationContext keeps the request values of ctx but not its cancellation.
func (s *Service) generationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	gctx := context.WithoutCancel(ctx)
	if s.timeout > 0 {
		return context.WithTimeout(gctx, s.timeout)
	}
	return gctx, func() {}
}

func (s *Service) generate(ctx context.Context, t *tender.Tender) (report.Report, error) {
	gen, err := s.generator.Generate(ctx, t)
	if err != nil {
		return report.Report{}, fmt.Errorf("analyze tender %s: %w", t.ID(), err)
	}

	r := gen.Report
	r.ID = s.newID()
	r.TenderID = t.ID()
	r.Status = report.StatusCompleted
	r.AnalyzedAt = s.now().UTC()

	s.cache.Put(ctx, &r)
	return r, nil
}
