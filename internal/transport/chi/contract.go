package chi

import (
	"context"

	"github.com/kailas-cloud/tenderiq/internal/domain/report"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
	domsyn "github.com/kailas-cloud/tenderiq/internal/domain/synopsis"
	domtender "github.com/kailas-cloud/tenderiq/internal/domain/tender"
	healthuc "github.com/kailas-cloud/tenderiq/internal/usecase/health"
	tenderuc "github.com/kailas-cloud/tenderiq/internal/usecase/tender"
	usageuc "github.com/kailas-cloud/tenderiq/internal/usecase/usage"
)

// TenderService serves the tender list, category, date and history views.
type TenderService interface {
	List(ctx context.Context, p filter.Params) ([]domtender.Tender, error)
	Get(ctx context.Context, id string) (domtender.Tender, error)
	Upsert(ctx context.Context, t *domtender.Tender) (bool, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context, p filter.Params) (tenderuc.Catalog, error)
	Dates(ctx context.Context, sel dates.Selection) (tenderuc.DateIndex, error)
	Stats(ctx context.Context, p filter.Params) (domtender.Stats, error)
}

// AnalysisService returns tender analysis reports.
type AnalysisService interface {
	Get(ctx context.Context, tenderID string) (report.Report, error)
}

// SynopsisService saves and loads bid synopses.
type SynopsisService interface {
	Save(ctx context.Context, tenderID string, content []byte) (domsyn.Synopsis, error)
	Load(ctx context.Context, tenderID string) (domsyn.Synopsis, error)
	Export(ctx context.Context, tenderID string) ([]byte, error)
}

// HealthService aggregates dependency checks.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// UsageService reports analysis token usage.
type UsageService interface {
	GetReport(ctx context.Context, period usageuc.Period) usageuc.Report
}
