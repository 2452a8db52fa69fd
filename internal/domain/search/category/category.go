// Package category groups tenders by category and picks the default category selection.
package category

import (
	"strings"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// DefaultMarker is the substring that makes a category the default preselection.
const DefaultMarker = "Civil"

// Group is the tenders of one category, in input order.
type Group struct {
	Category string
	Tenders  []tender.Tender
}

// Groups is an ordered association list keyed by category, in first-seen order.
type Groups []Group

// GroupByCategory partitions tenders by exact category.
func GroupByCategory(tenders []tender.Tender) Groups {
	idx := make(map[string]int)
	var groups Groups
	for i := range tenders {
		c := tenders[i].Category()
		pos, ok := idx[c]
		if !ok {
			pos = len(groups)
			idx[c] = pos
			groups = append(groups, Group{Category: c})
		}
		groups[pos].Tenders = append(groups[pos].Tenders, tenders[i])
	}
	return groups
}

// Categories returns the group keys in order.
func (g Groups) Categories() []string {
	out := make([]string, len(g))
	for i := range g {
		out[i] = g[i].Category
	}
	return out
}

// Lookup returns the tenders of a category.
func (g Groups) Lookup(name string) ([]tender.Tender, bool) {
	for i := range g {
		if g[i].Category == name {
			return g[i].Tenders, true
		}
	}
	return nil, false
}

// Distinct returns the distinct categories in first-seen order.
func Distinct(tenders []tender.Tender) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range tenders {
		c := tenders[i].Category()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Default returns the first category (first-seen order) containing DefaultMarker, or All.
func Default(tenders []tender.Tender) filter.Selector {
	for _, c := range Distinct(tenders) {
		if strings.Contains(c, DefaultMarker) {
			return filter.Specific(c)
		}
	}
	return filter.All()
}
