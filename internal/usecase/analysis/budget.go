package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/domain"
)

// BudgetAction defines behavior when the token budget is exceeded.
type BudgetAction string

const (
	// BudgetActionWarn logs a warning but allows the request.
	BudgetActionWarn BudgetAction = "warn"
	// BudgetActionReject blocks the request.
	BudgetActionReject BudgetAction = "reject"
)

// Counter TTLs outlive their period so late writes still land on the right key.
const (
	dailyTTL   = 48 * time.Hour
	monthlyTTL = 62 * 24 * time.Hour
)

// window is one budget period (a UTC day or month).
type window struct {
	name   string
	limit  int64
	used   int64
	start  time.Time
	layout string
	ttl    time.Duration
	begin  func(time.Time) time.Time
}

func (w *window) roll(now time.Time) {
	if start := w.begin(now); start.After(w.start) {
		w.used = 0
		w.start = start
	}
}

func (w *window) exceeded() bool { return w.limit > 0 && w.used >= w.limit }

func (w *window) remaining() int64 {
	if w.limit <= 0 {
		return -1 // unlimited
	}
	return max(w.limit-w.used, 0)
}

// BudgetTracker enforces daily and monthly token limits on analysis requests.
// Check is in-memory only; Record updates memory first, then writes behind to the store.
type BudgetTracker struct {
	mu       sync.Mutex
	daily    window
	monthly  window
	action   BudgetAction
	provider string
	prefix   string
	store    BudgetStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewBudgetTracker creates a tracker. A zero limit is unlimited.
func NewBudgetTracker(
	provider string, dailyLimit, monthlyLimit int64,
	action BudgetAction, logger *zap.Logger,
) *BudgetTracker {
	b := &BudgetTracker{
		daily:    window{name: "daily", limit: dailyLimit, layout: "2006-01-02", ttl: dailyTTL, begin: startOfDay},
		monthly:  window{name: "monthly", limit: monthlyLimit, layout: "2006-01", ttl: monthlyTTL, begin: startOfMonth},
		action:   action,
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
	b.resetWindows()
	return b
}

// WithClock overrides the clock. Windows restart from the new clock's current period.
func (b *BudgetTracker) WithClock(now func() time.Time) *BudgetTracker {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
	b.resetWindows()
	return b
}

func (b *BudgetTracker) resetWindows() {
	now := b.now().UTC()
	b.daily.start, b.daily.used = startOfDay(now), 0
	b.monthly.start, b.monthly.used = startOfMonth(now), 0
}

// WithStore attaches a persistence store and loads the current counters.
// Counter keys are "<prefix>budget:<provider>:<daily|monthly>:<period>".
func (b *BudgetTracker) WithStore(ctx context.Context, store BudgetStore, prefix string) *BudgetTracker {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store = store
	b.prefix = prefix
	for _, w := range []*window{&b.daily, &b.monthly} {
		val, err := store.Load(ctx, b.key(w))
		if err != nil {
			b.logger.Warn("Failed to load budget from store", zap.String("period", w.name), zap.Error(err))
			continue
		}
		w.used = val
	}

	b.logger.Info("Budget loaded from store",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.daily.used),
		zap.Int64("monthly_used", b.monthly.used),
	)
	return b
}

func (b *BudgetTracker) key(w *window) string {
	return fmt.Sprintf("%sbudget:%s:%s:%s", b.prefix, b.provider, w.name, w.start.Format(w.layout))
}

func (b *BudgetTracker) roll() {
	now := b.now().UTC()
	b.daily.roll(now)
	b.monthly.roll(now)
}

// Check verifies the budget allows a new request.
func (b *BudgetTracker) Check(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.roll()
	if !b.daily.exceeded() && !b.monthly.exceeded() {
		return nil
	}

	if b.action == BudgetActionReject {
		return domain.ErrAnalysisQuotaExceeded
	}

	b.logger.Warn("Analysis token budget exceeded",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.daily.used),
		zap.Int64("daily_limit", b.daily.limit),
		zap.Int64("monthly_used", b.monthly.used),
		zap.Int64("monthly_limit", b.monthly.limit),
	)
	return nil
}

// Record registers tokens consumed by a finished request.
func (b *BudgetTracker) Record(tokens int64) {
	type write struct {
		key string
		ttl time.Duration
	}

	b.mu.Lock()
	b.roll()
	b.daily.used += tokens
	b.monthly.used += tokens
	store := b.store
	writes := []write{{b.key(&b.daily), b.daily.ttl}, {b.key(&b.monthly), b.monthly.ttl}}
	b.mu.Unlock()

	if store == nil {
		return
	}

	// Background context: the caller's request may already be finished.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for _, w := range writes {
		if err := store.Add(ctx, w.key, tokens, w.ttl); err != nil {
			b.logger.Warn("Failed to persist budget", zap.String("key", w.key), zap.Error(err))
		}
	}
}

// RemainingDaily returns tokens left today (-1 if unlimited).
func (b *BudgetTracker) RemainingDaily() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()
	return b.daily.remaining()
}

// RemainingMonthly returns tokens left this month (-1 if unlimited).
func (b *BudgetTracker) RemainingMonthly() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()
	return b.monthly.remaining()
}

// DailyUsed returns tokens consumed today.
func (b *BudgetTracker) DailyUsed() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()
	return b.daily.used
}

// MonthlyUsed returns tokens consumed this month.
func (b *BudgetTracker) MonthlyUsed() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()
	return b.monthly.used
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DailyLimit returns the daily token limit (0 if unlimited).
func (b *BudgetTracker) DailyLimit() int64 { return b.daily.limit }

// MonthlyLimit returns the monthly token limit (0 if unlimited).
func (b *BudgetTracker) MonthlyLimit() int64 { return b.monthly.limit }
