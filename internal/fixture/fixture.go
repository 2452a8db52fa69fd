// Package fixture reads tender collections from YAML files.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// record is the YAML form of a tender.
type record struct {
	ID             string `yaml:"id"`
	Organization   string `yaml:"organization"`
	TDRNumber      string `yaml:"tdr_number"`
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	Category       string `yaml:"category"`
	Location       string `yaml:"location"`
	TenderValue    string `yaml:"tender_value"`
	Status         string `yaml:"status"`
	SubmissionDate string `yaml:"submission_date"`
	AnalysisDate   string `yaml:"analysis_date"` // YYYY-MM-DD or RFC 3339
	Starred        bool   `yaml:"starred"`
	Progress       int    `yaml:"progress"`
}

type file struct {
	Tenders []record `yaml:"tenders"`
}

// Load reads and validates the tenders of a fixture file, in file order.
func Load(path string) ([]tender.Tender, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	tenders, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return tenders, nil
}

// Decode parses a fixture document. IDs must be unique.
func Decode(r io.Reader) ([]tender.Tender, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Tenders))
	out := make([]tender.Tender, 0, len(doc.Tenders))
	for i := range doc.Tenders {
		rec := &doc.Tenders[i]
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("tender %d: duplicate id %q", i, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		t, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("tender %d (%s): %w", i, rec.ID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *record) toDomain() (tender.Tender, error) {
	analysisDate, err := parseDate(r.AnalysisDate)
	if err != nil {
		return tender.Tender{}, err
	}
	return tender.New(r.ID, tender.Fields{
		Organization:   r.Organization,
		TDRNumber:      r.TDRNumber,
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		Location:       r.Location,
		TenderValue:    r.TenderValue,
		Status:         tender.Status(r.Status),
		SubmissionDate: r.SubmissionDate,
		AnalysisDate:   analysisDate,
		Starred:        r.Starred,
		Progress:       r.Progress,
	})
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dates.DayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid analysis_date %q (want YYYY-MM-DD or RFC 3339)", s)
	}
	return t.UTC(), nil
}
