// Package chi exposes the tender API over HTTP with a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	domsyn "github.com/kailas-cloud/tenderiq/internal/domain/synopsis"
	healthuc "github.com/kailas-cloud/tenderiq/internal/usecase/health"
	usageuc "github.com/kailas-cloud/tenderiq/internal/usecase/usage"
)

const maxTenderBodySize = 64 << 10

// Server holds the HTTP handlers of the API.
type Server struct {
	tenders       TenderService
	analysis      AnalysisService
	synopses      SynopsisService
	usage         UsageService
	health        HealthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	tenders TenderService,
	analysis AnalysisService,
	synopses SynopsisService,
	usage UsageService,
	health HealthService,
	logger *zap.Logger,
) *Server {
	return &Server{
		tenders:       tenders,
		analysis:      analysis,
		synopses:      synopses,
		usage:         usage,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts all routes on r. Middlewares must be added to r before.
func (s *Server) Register(r gochi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})
	r.Route("/tenders", func(r gochi.Router) {
		r.Get("/", s.ListTenders)
		r.Post("/", s.UpsertTender)
		r.Get("/categories", s.ListCategories)
		r.Get("/dates", s.ListDates)
		r.Get("/stats", s.GetStats)
		r.Get("/{id}", s.GetTender)
		r.Delete("/{id}", s.DeleteTender)
	})
	r.Get("/tenderiq/analyze/{id}", s.AnalyzeTender)
	r.Get("/bidsynopsis/synopsis/{id}", s.LoadSynopsis)
	r.Put("/bidsynopsis/synopsis/{id}", s.SaveSynopsis)
	r.Post("/bidsynopsis/synopsis/{id}/export", s.ExportSynopsis)
	r.Get("/usage", s.GetUsage)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Handler returns a router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := gochi.NewRouter()
	s.Register(r)
	return r
}

// ListTenders handles GET /tenders.
func (s *Server) ListTenders(w http.ResponseWriter, r *http.Request) {
	p, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	tenders, err := s.tenders.List(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tenderListResponse{Items: tendersToResponse(tenders), Total: len(tenders)})
}

// UpsertTender handles POST /tenders.
func (s *Server) UpsertTender(w http.ResponseWriter, r *http.Request) {
	var req upsertTenderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxTenderBodySize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	t, err := tenderFromRequest(&req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	created, err := s.tenders.Upsert(r.Context(), &t)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, tenderToResponse(&t))
}

// GetTender handles GET /tenders/{id}.
func (s *Server) GetTender(w http.ResponseWriter, r *http.Request) {
	t, err := s.tenders.Get(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tenderToResponse(&t))
}

// DeleteTender handles DELETE /tenders/{id}.
func (s *Server) DeleteTender(w http.ResponseWriter, r *http.Request) {
	if err := s.tenders.Delete(r.Context(), gochi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /tenders/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	p, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	catalog, err := s.tenders.Categories(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogToResponse(&catalog))
}

// ListDates handles GET /tenders/dates.
func (s *Server) ListDates(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionFromQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	idx, err := s.tenders.Dates(r.Context(), sel)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dateIndexToResponse(&idx))
}

// GetStats handles GET /tenders/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	p, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	stats, err := s.tenders.Stats(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

// AnalyzeTender handles GET /tenderiq/analyze/{id}.
func (s *Server) AnalyzeTender(w http.ResponseWriter, r *http.Request) {
	rep, err := s.analysis.Get(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// LoadSynopsis handles GET /bidsynopsis/synopsis/{id}.
func (s *Server) LoadSynopsis(w http.ResponseWriter, r *http.Request) {
	syn, err := s.synopses.Load(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, syn)
}

// SaveSynopsis handles PUT /bidsynopsis/synopsis/{id}.
func (s *Server) SaveSynopsis(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, domsyn.MaxContentSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeValidationFailed, "synopsis too large")
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	syn, err := s.synopses.Save(r.Context(), gochi.URLParam(r, "id"), body)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, syn)
}

// ExportSynopsis handles POST /bidsynopsis/synopsis/{id}/export.
func (s *Server) ExportSynopsis(w http.ResponseWriter, r *http.Request) {
	pdf, err := s.synopses.Export(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period, err := usageuc.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, usageToResponse(s.usage.GetReport(r.Context(), period)))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

