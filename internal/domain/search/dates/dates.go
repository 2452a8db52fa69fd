// Package dates selects tenders by analysis date.
package dates

import (
	"fmt"
	"sort"
	"time"

	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// DayLayout is the wire format of a specific day.
const DayLayout = "2006-01-02"

// DisplayLayout is the human format of a day ("15 Mar 2024").
const DisplayLayout = "02 Jan 2006"

// Range is a relative window ending today.
type Range string

// Supported ranges.
const (
	Last1Day   Range = "last_1_day"
	Last5Days  Range = "last_5_days"
	Last7Days  Range = "last_7_days"
	Last30Days Range = "last_30_days"
)

var rangeDays = map[Range]int{
	Last1Day:   1,
	Last5Days:  5,
	Last7Days:  7,
	Last30Days: 30,
}

// Days returns the window length, or 0 for an unknown range.
func (r Range) Days() int { return rangeDays[r] }

// IsValid reports whether r is a supported range.
func (r Range) IsValid() bool { return r.Days() > 0 }

type kind int

const (
	kindAll kind = iota
	kindDay
	kindRange
)

// Selection is one of AllDates, OnDay(day) or Within(range). The zero value selects all dates.
type Selection struct {
	kind kind
	day  time.Time
	rng  Range
}

// AllDates selects every tender.
func AllDates() Selection { return Selection{} }

// OnDay selects tenders analyzed on the calendar day of t (UTC).
func OnDay(t time.Time) Selection {
	return Selection{kind: kindDay, day: truncateDay(t)}
}

// Within selects tenders analyzed in the last r days, today included.
func Within(r Range) (Selection, error) {
	if !r.IsValid() {
		return Selection{}, fmt.Errorf("unknown date range %q", r)
	}
	return Selection{kind: kindRange, rng: r}, nil
}

// Parse builds a selection from the date selector inputs.
// includeAll wins, then a specific date, then a range. No input selects all dates.
func Parse(date, dateRange string, includeAll bool) (Selection, error) {
	switch {
	case includeAll:
		return AllDates(), nil
	case date != "":
		d, err := time.Parse(DayLayout, date)
		if err != nil {
			return Selection{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
		}
		return OnDay(d), nil
	case dateRange != "":
		return Within(Range(dateRange))
	default:
		return AllDates(), nil
	}
}

// IsAll reports whether the selection is inactive.
func (s Selection) IsAll() bool { return s.kind == kindAll }

// Matches reports whether a tender analyzed at t is selected, relative to now.
// Unknown (zero) analysis dates only match AllDates.
func (s Selection) Matches(t, now time.Time) bool {
	if s.kind == kindAll {
		return true
	}
	if t.IsZero() {
		return false
	}
	day := truncateDay(t)
	switch s.kind {
	case kindDay:
		return day.Equal(s.day)
	case kindRange:
		today := truncateDay(now)
		from := today.AddDate(0, 0, -(s.rng.Days() - 1))
		return !day.Before(from) && !day.After(today)
	default:
		return false
	}
}

// Label returns the text shown on the date selector button.
func (s Selection) Label() string {
	switch s.kind {
	case kindDay:
		return s.day.Format(DisplayLayout)
	case kindRange:
		if s.rng.Days() == 1 {
			return "Last 1 Day"
		}
		return fmt.Sprintf("Last %d Days", s.rng.Days())
	default:
		return "All Dates"
	}
}

// DateCount is one selectable day with the number of tenders analyzed on it.
type DateCount struct {
	Date        string
	DateStr     string
	TenderCount int
}

// Available lists the distinct analysis days of tenders, newest first.
func Available(tenders []tender.Tender) []DateCount {
	counts := make(map[time.Time]int)
	for i := range tenders {
		t := tenders[i].AnalysisDate()
		if t.IsZero() {
			continue
		}
		counts[truncateDay(t)]++
	}

	days := make([]time.Time, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	out := make([]DateCount, len(days))
	for i, d := range days {
		out[i] = DateCount{
			Date:        d.Format(DayLayout),
			DateStr:     d.Format(DisplayLayout),
			TenderCount: counts[d],
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
