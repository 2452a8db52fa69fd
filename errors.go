package tenderiq

import "github.com/kailas-cloud/tenderiq/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrTenderNotFound = domain.ErrTenderNotFound
	ErrInvalidTender  = domain.ErrInvalidTender
	ErrInvalidFilter  = domain.ErrInvalidFilter
)
