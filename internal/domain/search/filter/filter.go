// Package filter narrows tender collections by search text, category, location,
// status, value range and analysis date.
package filter

import (
	"strings"
	"time"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender/value"
)

// AllSentinel is the wire value of a disabled selector.
const AllSentinel = "all"

// Selector is either All (predicate disabled) or Specific(value).
type Selector struct {
	value string
}

// All returns the disabled selector.
func All() Selector { return Selector{} }

// Specific selects a single value. An empty value is equivalent to All.
func Specific(v string) Selector { return Selector{value: v} }

// ParseSelector maps the wire form to a selector: "" and "all" disable the predicate.
func ParseSelector(s string) Selector {
	if s == AllSentinel {
		return All()
	}
	return Specific(s)
}

// IsAll reports whether the selector is disabled.
func (s Selector) IsAll() bool { return s.value == "" }

// Value returns the selected value and whether the selector is specific.
func (s Selector) Value() (string, bool) { return s.value, s.value != "" }

// String returns the wire form.
func (s Selector) String() string {
	if s.IsAll() {
		return AllSentinel
	}
	return s.value
}

// MarshalText implements encoding.TextMarshaler.
func (s Selector) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selector) UnmarshalText(b []byte) error {
	*s = ParseSelector(string(b))
	return nil
}

// Range holds optional inclusive magnitude bounds.
// Bounds are independent: an inverted range is not rejected and simply matches no parseable value.
type Range struct {
	min *float64
	max *float64
}

// NewRange creates a range. Either bound may be nil.
func NewRange(minValue, maxValue *float64) Range {
	return Range{min: copyFloat(minValue), max: copyFloat(maxValue)}
}

// Min returns the lower bound.
func (r Range) Min() *float64 { return r.min }

// Max returns the upper bound.
func (r Range) Max() *float64 { return r.max }

// IsEmpty reports whether neither bound is set.
func (r Range) IsEmpty() bool { return r.min == nil && r.max == nil }

// Contains reports whether m satisfies the bounds. Unparseable magnitudes are always contained.
func (r Range) Contains(m value.Magnitude) bool {
	v, ok := m.Value()
	if !ok {
		return true
	}
	if r.min != nil && v < *r.min {
		return false
	}
	if r.max != nil && v > *r.max {
		return false
	}
	return true
}

// Params is a set of predicates combined with AND. Zero-valued fields are inactive.
type Params struct {
	SearchTerm string
	Category   Selector
	Location   Selector
	Status     Selector
	Value      Range
	Dates      dates.Selection
	// Now anchors relative date ranges.
	Now time.Time
}

// Match reports whether t satisfies every active predicate.
func (p *Params) Match(t *tender.Tender) bool {
	if p.SearchTerm != "" && !matchesSearch(t, strings.ToLower(p.SearchTerm)) {
		return false
	}
	if c, ok := p.Category.Value(); ok && t.Category() != c {
		return false
	}
	if l, ok := p.Location.Value(); ok && !strings.Contains(t.Location(), l) {
		return false
	}
	if s, ok := p.Status.Value(); ok && string(t.Status()) != s {
		return false
	}
	if !p.Value.Contains(t.Magnitude()) {
		return false
	}
	return p.Dates.Matches(t.AnalysisDate(), p.Now)
}

// Apply returns the tenders matching p, in input order. The input slice is not modified.
func Apply(tenders []tender.Tender, p Params) []tender.Tender {
	out := make([]tender.Tender, 0, len(tenders))
	for i := range tenders {
		if p.Match(&tenders[i]) {
			out = append(out, tenders[i])
		}
	}
	return out
}

func matchesSearch(t *tender.Tender, term string) bool {
	return strings.Contains(strings.ToLower(t.Organization()), term) ||
		strings.Contains(strings.ToLower(t.TDRNumber()), term) ||
		strings.Contains(strings.ToLower(t.Description()), term) ||
		strings.Contains(strings.ToLower(t.Category()), term)
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
