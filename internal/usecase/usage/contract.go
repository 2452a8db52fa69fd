package usage

// BudgetReader is the read side of the analysis token budget.
// Remaining values are -1 for an unlimited window.
type BudgetReader interface {
	DailyLimit() int64
	MonthlyLimit() int64
	DailyUsed() int64
	MonthlyUsed() int64
	RemainingDaily() int64
	RemainingMonthly() int64
}
