package analysis

import (
	"context"
	"time"

	"github.com/kailas-cloud/tenderiq/internal/domain/report"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// TenderReader loads the tender to analyze.
type TenderReader interface {
	Get(ctx context.Context, id string) (tender.Tender, error)
}

// ReportCache stores finished reports. Cache failures never fail an analysis.
type ReportCache interface {
	Get(ctx context.Context, tenderID string) (report.Report, bool)
	Put(ctx context.Context, r *report.Report)
}

// Generator produces the report sections of a tender.
type Generator interface {
	Generate(ctx context.Context, t *tender.Tender) (report.Generation, error)
}

// BudgetStore persists token counters.
type BudgetStore interface {
	Add(ctx context.Context, key string, tokens int64, ttl time.Duration) error
	Load(ctx context.Context, key string) (int64, error)
}
