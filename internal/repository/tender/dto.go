package tender

import (
	"fmt"
	"strconv"
	"time"

	domtender "github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// Hash field names.
const (
	fieldID             = "id"
	fieldOrganization   = "organization"
	fieldTDRNumber      = "tdr_number"
	fieldTitle          = "title"
	fieldDescription    = "description"
	fieldCategory       = "category"
	fieldLocation       = "location"
	fieldTenderValue    = "tender_value"
	fieldStatus         = "status"
	fieldSubmissionDate = "submission_date"
	fieldAnalysisDate   = "analysis_date"
	fieldStarred        = "starred"
	fieldProgress       = "progress"
	fieldSeq            = "seq"
)

// tenderToHash converts a domain Tender into a flat map for HSET.
func tenderToHash(t *domtender.Tender, seq int64) map[string]string {
	analysisDate := ""
	if !t.AnalysisDate().IsZero() {
		analysisDate = t.AnalysisDate().UTC().Format(time.RFC3339)
	}
	return map[string]string{
		fieldID:             t.ID(),
		fieldOrganization:   t.Organization(),
		fieldTDRNumber:      t.TDRNumber(),
		fieldTitle:          t.Title(),
		fieldDescription:    t.Description(),
		fieldCategory:       t.Category(),
		fieldLocation:       t.Location(),
		fieldTenderValue:    t.TenderValue(),
		fieldStatus:         string(t.Status()),
		fieldSubmissionDate: t.SubmissionDate(),
		fieldAnalysisDate:   analysisDate,
		fieldStarred:        strconv.FormatBool(t.Starred()),
		fieldProgress:       strconv.Itoa(t.Progress()),
		fieldSeq:            strconv.FormatInt(seq, 10),
	}
}

// tenderFromHash hydrates a domain Tender and its insertion sequence from an HGETALL result.
func tenderFromHash(m map[string]string) (domtender.Tender, int64, error) {
	seq, err := strconv.ParseInt(m[fieldSeq], 10, 64)
	if err != nil {
		return domtender.Tender{}, 0, fmt.Errorf("invalid seq: %w", err)
	}

	var analysisDate time.Time
	if s := m[fieldAnalysisDate]; s != "" {
		analysisDate, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return domtender.Tender{}, 0, fmt.Errorf("invalid analysis_date: %w", err)
		}
	}

	progress := 0
	if s := m[fieldProgress]; s != "" {
		if progress, err = strconv.Atoi(s); err != nil {
			return domtender.Tender{}, 0, fmt.Errorf("invalid progress: %w", err)
		}
	}

	starred, _ := strconv.ParseBool(m[fieldStarred])

	t := domtender.Reconstruct(m[fieldID], domtender.Fields{
		Organization:   m[fieldOrganization],
		TDRNumber:      m[fieldTDRNumber],
		Title:          m[fieldTitle],
		Description:    m[fieldDescription],
		Category:       m[fieldCategory],
		Location:       m[fieldLocation],
		TenderValue:    m[fieldTenderValue],
		Status:         domtender.Status(m[fieldStatus]),
		SubmissionDate: m[fieldSubmissionDate],
		AnalysisDate:   analysisDate,
		Starred:        starred,
		Progress:       progress,
	})
	return t, seq, nil
}
