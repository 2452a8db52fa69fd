package report

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/tenderiq/internal/domain"
)

// Generation is a report produced by an analysis provider, with its token usage.
type Generation struct {
	Report       Report
	PromptTokens int
	TotalTokens  int
}

// Parse validates raw provider output against the report schema and decodes it.
// Identity fields (ID, TenderID, Status, AnalyzedAt) are left for the caller to stamp.
func Parse(data []byte) (Report, error) {
	if err := Validate(data); err != nil {
		return Report{}, fmt.Errorf("%w: %w", domain.ErrReportInvalid, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("%w: decode: %w", domain.ErrReportInvalid, err)
	}
	return r, nil
}
