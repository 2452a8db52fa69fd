package analysis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/domain/report"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
	"github.com/kailas-cloud/tenderiq/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedGenerator wraps a Generator with budget enforcement and logging.
// Request metrics (count, duration, tokens) are recorded by the transport.
type InstrumentedGenerator struct {
	inner    Generator
	provider string
	model    string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumentedGenerator wraps a generator. budget may be nil.
func NewInstrumentedGenerator(
	inner Generator, provider, model string,
	budget BudgetChecker, logger *zap.Logger,
) *InstrumentedGenerator {
	return &InstrumentedGenerator{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		logger:   logger,
	}
}

// Generate checks the budget, delegates to the inner generator and records token usage.
func (g *InstrumentedGenerator) Generate(ctx context.Context, t *tender.Tender) (report.Generation, error) {
	if g.budget != nil {
		if err := g.budget.Check(ctx); err != nil {
			g.logger.Error("Analysis budget exceeded",
				zap.String("provider", g.provider),
				zap.String("tender_id", t.ID()),
				zap.Error(err),
			)
			return report.Generation{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	gen, err := g.inner.Generate(ctx, t)
	duration := time.Since(start)

	if err != nil {
		g.logger.Error("Analysis request failed",
			zap.String("provider", g.provider),
			zap.String("model", g.model),
			zap.String("tender_id", t.ID()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return report.Generation{}, fmt.Errorf("generate: %w", err)
	}

	if g.budget != nil && gen.TotalTokens > 0 {
		g.budget.Record(int64(gen.TotalTokens))
		remaining := metrics.AnalysisBudgetTokensRemaining
		remaining.WithLabelValues(g.provider, "daily").Set(float64(g.budget.RemainingDaily()))
		remaining.WithLabelValues(g.provider, "monthly").Set(float64(g.budget.RemainingMonthly()))
	}

	g.logger.Info("Analysis request completed",
		zap.String("provider", g.provider),
		zap.String("model", g.model),
		zap.String("tender_id", t.ID()),
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", gen.PromptTokens),
		zap.Int("total_tokens", gen.TotalTokens),
	)
	return gen, nil
}
