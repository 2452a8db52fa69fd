package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/domain"
	logpkg "github.com/kailas-cloud/tenderiq/internal/logger"
)

// errorCode is the machine-readable code of an error response.
type errorCode string

const (
	codeBadRequest            errorCode = "bad_request"
	codeUnauthorized          errorCode = "unauthorized"
	codeValidationFailed      errorCode = "validation_failed"
	codeTenderNotFound        errorCode = "tender_not_found"
	codeSynopsisNotFound      errorCode = "synopsis_not_found"
	codeAnalysisQuotaExceeded errorCode = "analysis_quota_exceeded"
	codeAnalysisProviderError errorCode = "analysis_provider_error"
	codeReportInvalid         errorCode = "report_invalid"
	codeNotImplemented        errorCode = "not_implemented"
	codeInternalError         errorCode = "internal_error"
)

// errorResponse is the JSON body of every error.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrTenderNotFound, http.StatusNotFound, codeTenderNotFound),
		sentinelHandler(domain.ErrSynopsisNotFound, http.StatusNotFound, codeSynopsisNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeTenderNotFound),
		validationHandler(domain.ErrInvalidTender),
		validationHandler(domain.ErrInvalidSynopsis),
		validationHandler(domain.ErrInvalidFilter),
		sentinelHandler(domain.ErrAnalysisQuotaExceeded, http.StatusPaymentRequired, codeAnalysisQuotaExceeded),
		sentinelHandler(domain.ErrAnalysisProviderError, http.StatusBadGateway, codeAnalysisProviderError),
		sentinelHandler(domain.ErrReportInvalid, http.StatusBadGateway, codeReportInvalid),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, codeNotImplemented),
	}
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrTenderNotFound,
		domain.ErrSynopsisNotFound,
		domain.ErrNotFound,
		domain.ErrAnalysisQuotaExceeded,
		domain.ErrAnalysisProviderError,
		domain.ErrReportInvalid,
		domain.ErrNotImplemented,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler maps input errors to 400. The full message is returned: it describes client input only.
func validationHandler(sentinel error) errorHandler {
	return func(w http.ResponseWriter, err error, _ string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContextOr(r.Context(), s.logger)
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
