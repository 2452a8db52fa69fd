package tender

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kailas-cloud/tenderiq/internal/domain/tender/value"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Tender is a procurement opportunity record (immutable value object).
type Tender struct {
	id             string
	organization   string
	tdrNumber      string
	title          string
	description    string
	category       string
	location       string
	tenderValue    string
	status         Status
	submissionDate string
	analysisDate   time.Time
	starred        bool
	progress       int
}

// Fields carries the attributes of a tender for construction.
type Fields struct {
	Organization   string
	TDRNumber      string
	Title          string
	Description    string
	Category       string
	Location       string
	TenderValue    string
	Status         Status
	SubmissionDate string
	AnalysisDate   time.Time
	Starred        bool
	Progress       int
}

// New validates and creates a Tender.
// ID: ^[a-zA-Z0-9_-]+$, 1-128 chars. TDR number and category are required, progress is 0-100.
func New(id string, f Fields) (Tender, error) {
	if id == "" {
		return Tender{}, fmt.Errorf("tender ID is required")
	}
	if len(id) > 128 {
		return Tender{}, fmt.Errorf("tender ID too long (max 128)")
	}
	if !idRegex.MatchString(id) {
		return Tender{}, fmt.Errorf("tender ID must be alphanumeric with underscores and hyphens")
	}
	if f.TDRNumber == "" {
		return Tender{}, fmt.Errorf("tdr number is required")
	}
	if f.Category == "" {
		return Tender{}, fmt.Errorf("category is required")
	}
	if f.Progress < 0 || f.Progress > 100 {
		return Tender{}, fmt.Errorf("progress must be between 0 and 100, got %d", f.Progress)
	}
	return Reconstruct(id, f), nil
}

// Reconstruct creates a Tender without validation (storage hydration, fixtures in tests).
func Reconstruct(id string, f Fields) Tender {
	return Tender{
		id:             id,
		organization:   f.Organization,
		tdrNumber:      f.TDRNumber,
		title:          f.Title,
		description:    f.Description,
		category:       f.Category,
		location:       f.Location,
		tenderValue:    f.TenderValue,
		status:         f.Status,
		submissionDate: f.SubmissionDate,
		analysisDate:   f.AnalysisDate,
		starred:        f.Starred,
		progress:       f.Progress,
	}
}

// ID returns the tender identifier.
func (t *Tender) ID() string { return t.id }

// Organization returns the issuing organization.
func (t *Tender) Organization() string { return t.organization }

// TDRNumber returns the tender reference number.
func (t *Tender) TDRNumber() string { return t.tdrNumber }

// Title returns the tender title.
func (t *Tender) Title() string { return t.title }

// Description returns the free-text description.
func (t *Tender) Description() string { return t.description }

// Category returns the category label.
func (t *Tender) Category() string { return t.category }

// Location returns the location string.
func (t *Tender) Location() string { return t.location }

// TenderValue returns the free-form value string.
func (t *Tender) TenderValue() string { return t.tenderValue }

// Status returns the bid status.
func (t *Tender) Status() Status { return t.status }

// SubmissionDate returns the submission date as displayed ("25 Apr 2024").
func (t *Tender) SubmissionDate() string { return t.submissionDate }

// AnalysisDate returns when the tender was analyzed. Zero if unknown.
func (t *Tender) AnalysisDate() time.Time { return t.analysisDate }

// Starred reports whether the tender is starred.
func (t *Tender) Starred() bool { return t.starred }

// Progress returns bid preparation progress in percent.
func (t *Tender) Progress() int { return t.progress }

// Magnitude parses the tender value.
func (t *Tender) Magnitude() value.Magnitude { return value.Parse(t.tenderValue) }

// Tier classifies the tender value.
func (t *Tender) Tier() value.Tier { return value.Classify(t.tenderValue) }

// Fields returns a copy of the tender attributes.
func (t *Tender) Fields() Fields {
	return Fields{
		Organization:   t.organization,
		TDRNumber:      t.tdrNumber,
		Title:          t.title,
		Description:    t.description,
		Category:       t.category,
		Location:       t.location,
		TenderValue:    t.tenderValue,
		Status:         t.status,
		SubmissionDate: t.submissionDate,
		AnalysisDate:   t.analysisDate,
		Starred:        t.starred,
		Progress:       t.progress,
	}
}
