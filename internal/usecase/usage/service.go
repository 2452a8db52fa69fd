// Package usage reports analysis token consumption against the configured budget.
package usage

import (
	"context"
	"fmt"
	"time"
)

// Period is a usage reporting window.
type Period string

// Reporting periods.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// ParsePeriod maps the wire form to a period. An empty value selects the day.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodDay:
		return PeriodDay, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("unknown usage period %q (want day or month)", s)
	}
}

// Report is the token usage of one period. A zero Limit means unlimited and Remaining is -1.
type Report struct {
	Period      Period
	PeriodStart time.Time
	PeriodEnd   time.Time
	Provider    string
	TokensUsed  int64
	Limit       int64
	Remaining   int64
	Exhausted   bool
}

// Service handles usage reporting.
type Service struct {
	br       BudgetReader
	provider string
	now      func() time.Time
}

// New creates a Service. br can be nil (unlimited mode).
func New(br BudgetReader, provider string) *Service {
	return &Service{br: br, provider: provider, now: time.Now}
}

// WithClock overrides the clock used to compute period boundaries.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period Period) Report {
	now := s.now().UTC()
	r := Report{Period: period, Provider: s.provider, Remaining: -1}

	switch period {
	case PeriodMonth:
		r.PeriodStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		r.PeriodEnd = r.PeriodStart.AddDate(0, 1, 0)
		if s.br != nil {
			r.Limit, r.TokensUsed, r.Remaining = s.br.MonthlyLimit(), s.br.MonthlyUsed(), s.br.RemainingMonthly()
		}
	default:
		r.Period = PeriodDay
		r.PeriodStart = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		r.PeriodEnd = r.PeriodStart.AddDate(0, 0, 1)
		if s.br != nil {
			r.Limit, r.TokensUsed, r.Remaining = s.br.DailyLimit(), s.br.DailyUsed(), s.br.RemainingDaily()
		}
	}

	r.Exhausted = r.Limit > 0 && r.Remaining <= 0
	return r
}
