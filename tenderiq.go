package tenderiq

import (
	"fmt"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/category"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender/value"
	"github.com/kailas-cloud/tenderiq/internal/fixture"
)

type (
	// Tender is an immutable tender record.
	Tender = tender.Tender
	// Fields are the attributes of a tender.
	Fields = tender.Fields
	// Status is the bid status of a tender.
	Status = tender.Status
	// Stats summarizes a tender history.
	Stats = tender.Stats

	// Magnitude is a parsed tender value in crore, or unparseable.
	Magnitude = value.Magnitude
	// Tier is the display class of a tender value.
	Tier = value.Tier

	// Query combines filter predicates with AND. Zero fields are inactive.
	Query = filter.Params
	// Selector is All or a specific value.
	Selector = filter.Selector
	// Range holds optional inclusive value bounds in crore.
	Range = filter.Range

	// DateSelection selects tenders by analysis date.
	DateSelection = dates.Selection
	// DateRange is a relative range ending today.
	DateRange = dates.Range
	// DateCount is a selectable analysis day.
	DateCount = dates.DateCount

	// Group is the tenders of one category.
	Group = category.Group
	// Groups is an ordered association list keyed by category.
	Groups = category.Groups
)

// Tiers.
const (
	TierHigh    = value.TierHigh
	TierMedium  = value.TierMedium
	TierNeutral = value.TierNeutral
)

// Statuses.
const (
	StatusUnderEvaluation  = tender.StatusUnderEvaluation
	StatusSubmitted        = tender.StatusSubmitted
	StatusAnalysisComplete = tender.StatusAnalysisComplete
	StatusBidLost          = tender.StatusBidLost
	StatusWon              = tender.StatusWon
)

// Relative date ranges.
const (
	Last1Day   = dates.Last1Day
	Last5Days  = dates.Last5Days
	Last7Days  = dates.Last7Days
	Last30Days = dates.Last30Days
)

// NewTender validates and creates a tender.
func NewTender(id string, f Fields) (Tender, error) {
	t, err := tender.New(id, f)
	if err != nil {
		return Tender{}, fmt.Errorf("%w: %w", ErrInvalidTender, err)
	}
	return t, nil
}

// ParseValue extracts the crore magnitude of a display value such as "₹52.4 Cr".
func ParseValue(s string) Magnitude { return value.Parse(s) }

// Classify parses s and returns its tier.
func Classify(s string) Tier { return value.Classify(s) }

// All returns the disabled selector.
func All() Selector { return filter.All() }

// Specific selects one value.
func Specific(v string) Selector { return filter.Specific(v) }

// NewRange creates a value range. Either bound may be nil.
func NewRange(minValue, maxValue *float64) Range { return filter.NewRange(minValue, maxValue) }

// Float returns a pointer to v, for Range bounds.
func Float(v float64) *float64 { return &v }

// AllDates disables date filtering.
func AllDates() DateSelection { return dates.AllDates() }

// Within selects the last r days, today included.
func Within(r DateRange) (DateSelection, error) { return dates.Within(r) }

// MustWithin is Within for known ranges. It panics on an unknown range.
func MustWithin(r DateRange) DateSelection {
	s, err := dates.Within(r)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseDates builds a date selection from selector inputs. includeAll wins, then date, then dateRange.
func ParseDates(date, dateRange string, includeAll bool) (DateSelection, error) {
	s, err := dates.Parse(date, dateRange, includeAll)
	if err != nil {
		return DateSelection{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return s, nil
}

// Filter returns the tenders matching q, in input order.
func Filter(tenders []Tender, q Query) []Tender { return filter.Apply(tenders, q) }

// GroupByCategory partitions tenders by category in first-seen order.
func GroupByCategory(tenders []Tender) Groups { return category.GroupByCategory(tenders) }

// DefaultCategory returns the preselected category of tenders.
func DefaultCategory(tenders []Tender) Selector { return category.Default(tenders) }

// AvailableDates lists the analysis days of tenders, newest first.
func AvailableDates(tenders []Tender) []DateCount { return dates.Available(tenders) }

// Summarize computes history statistics.
func Summarize(tenders []Tender) Stats { return tender.Summarize(tenders) }

// LoadFixture reads tenders from a YAML fixture file.
func LoadFixture(path string) ([]Tender, error) {
	ts, err := fixture.Load(path)
	if err != nil {
		return nil, fmt.Errorf("tenderiq: %w", err)
	}
	return ts, nil
}
