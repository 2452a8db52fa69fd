package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrTenderNotFound signals a missing tender.
	ErrTenderNotFound = errors.New("tender not found")
	// ErrSynopsisNotFound signals that no bid synopsis was saved for a tender.
	ErrSynopsisNotFound = errors.New("bid synopsis not found")
	// ErrInvalidTender signals a tender that fails validation.
	ErrInvalidTender = errors.New("invalid tender")
	// ErrInvalidSynopsis signals a bid synopsis payload that is not a JSON object or is too large.
	ErrInvalidSynopsis = errors.New("invalid bid synopsis")
	// ErrInvalidFilter signals malformed filter parameters (e.g. a non-numeric bound).
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrReportInvalid signals an analysis report that does not match the report schema.
	ErrReportInvalid = errors.New("analysis report invalid")
	// ErrAnalysisProviderError signals an analysis provider failure.
	ErrAnalysisProviderError = errors.New("analysis provider error")
	// ErrAnalysisQuotaExceeded signals an exhausted analysis token budget.
	ErrAnalysisQuotaExceeded = errors.New("analysis quota exceeded")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)
