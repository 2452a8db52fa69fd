// Package tender lists, groups and summarizes stored tenders.
package tender

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/category"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
	domtender "github.com/kailas-cloud/tenderiq/internal/domain/tender"
	"github.com/kailas-cloud/tenderiq/internal/metrics"
)

// Catalog is the category view of the stored tenders.
type Catalog struct {
	Groups  category.Groups
	Default filter.Selector
}

// DateIndex is the date selector view of the stored tenders.
type DateIndex struct {
	Available []dates.DateCount
	Label     string
}

// Service reads and writes tenders and evaluates filters over them.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// New creates a tender service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithClock overrides the clock used to anchor relative date ranges.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// List returns the stored tenders matching p, in insertion order.
// A zero p.Now is replaced by the service clock.
func (s *Service) List(ctx context.Context, p filter.Params) ([]domtender.Tender, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}
	metrics.TendersStored.Set(float64(len(all)))

	if p.Now.IsZero() {
		p.Now = s.now()
	}
	out := filter.Apply(all, p)
	metrics.TenderFilterResults.Observe(float64(len(out)))

	s.logger.Debug("Tenders filtered",
		zap.Int("total", len(all)),
		zap.Int("matched", len(out)),
	)
	return out, nil
}

// Get returns a tender by ID.
func (s *Service) Get(ctx context.Context, id string) (domtender.Tender, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return domtender.Tender{}, fmt.Errorf("get tender: %w", err)
	}
	return t, nil
}

// Upsert creates or replaces a tender. Returns true if created.
func (s *Service) Upsert(ctx context.Context, t *domtender.Tender) (bool, error) {
	created, err := s.repo.Upsert(ctx, t)
	if err != nil {
		return false, fmt.Errorf("upsert tender: %w", err)
	}
	return created, nil
}

// Import stores a batch of tenders in slice order.
func (s *Service) Import(ctx context.Context, tenders []domtender.Tender) error {
	if err := s.repo.UpsertMany(ctx, tenders); err != nil {
		return fmt.Errorf("import tenders: %w", err)
	}
	s.logger.Info("Tenders imported", zap.Int("count", len(tenders)))
	return nil
}

// Delete removes a tender.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tender: %w", err)
	}
	return nil
}

// Categories groups the tenders matching p by category and picks the default selection
// from all stored tenders.
func (s *Service) Categories(ctx context.Context, p filter.Params) (Catalog, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("list tenders: %w", err)
	}
	if p.Now.IsZero() {
		p.Now = s.now()
	}
	return Catalog{
		Groups:  category.GroupByCategory(filter.Apply(all, p)),
		Default: category.Default(all),
	}, nil
}

// Dates lists the analysis days of all stored tenders and labels the current selection.
func (s *Service) Dates(ctx context.Context, sel dates.Selection) (DateIndex, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return DateIndex{}, fmt.Errorf("list tenders: %w", err)
	}
	return DateIndex{Available: dates.Available(all), Label: sel.Label()}, nil
}

// Stats summarizes the tenders matching p.
func (s *Service) Stats(ctx context.Context, p filter.Params) (domtender.Stats, error) {
	tenders, err := s.List(ctx, p)
	if err != nil {
		return domtender.Stats{}, err
	}
	return domtender.Summarize(tenders), nil
}
