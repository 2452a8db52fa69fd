package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/domain"
	"github.com/kailas-cloud/tenderiq/internal/domain/report"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/category"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
	domsyn "github.com/kailas-cloud/tenderiq/internal/domain/synopsis"
	domtender "github.com/kailas-cloud/tenderiq/internal/domain/tender"
	healthuc "github.com/kailas-cloud/tenderiq/internal/usecase/health"
	tenderuc "github.com/kailas-cloud/tenderiq/internal/usecase/tender"
	usageuc "github.com/kailas-cloud/tenderiq/internal/usecase/usage"
)

// --- mocks ---

type mockTenders struct {
	listFn       func(ctx context.Context, p filter.Params) ([]domtender.Tender, error)
	getFn        func(ctx context.Context, id string) (domtender.Tender, error)
	upsertFn     func(ctx context.Context, t *domtender.Tender) (bool, error)
	deleteFn     func(ctx context.Context, id string) error
	categoriesFn func(ctx context.Context, p filter.Params) (tenderuc.Catalog, error)
	datesFn      func(ctx context.Context, sel dates.Selection) (tenderuc.DateIndex, error)
	statsFn      func(ctx context.Context, p filter.Params) (domtender.Stats, error)
}

func (m *mockTenders) List(ctx context.Context, p filter.Params) ([]domtender.Tender, error) {
	if m.listFn != nil {
		return m.listFn(ctx, p)
	}
	return nil, nil
}

func (m *mockTenders) Get(ctx context.Context, id string) (domtender.Tender, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domtender.Tender{}, domain.ErrTenderNotFound
}

func (m *mockTenders) Upsert(ctx context.Context, t *domtender.Tender) (bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, t)
	}
	return true, nil
}

func (m *mockTenders) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTenders) Categories(ctx context.Context, p filter.Params) (tenderuc.Catalog, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx, p)
	}
	return tenderuc.Catalog{}, nil
}

func (m *mockTenders) Dates(ctx context.Context, sel dates.Selection) (tenderuc.DateIndex, error) {
	if m.datesFn != nil {
		return m.datesFn(ctx, sel)
	}
	return tenderuc.DateIndex{}, nil
}

func (m *mockTenders) Stats(ctx context.Context, p filter.Params) (domtender.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, p)
	}
	return domtender.Stats{}, nil
}

type mockAnalysis struct {
	getFn func(ctx context.Context, tenderID string) (report.Report, error)
}

func (m *mockAnalysis) Get(ctx context.Context, tenderID string) (report.Report, error) {
	return m.getFn(ctx, tenderID)
}

type mockSynopses struct {
	saveFn func(ctx context.Context, tenderID string, content []byte) (domsyn.Synopsis, error)
	loadFn func(ctx context.Context, tenderID string) (domsyn.Synopsis, error)
}

func (m *mockSynopses) Save(ctx context.Context, tenderID string, content []byte) (domsyn.Synopsis, error) {
	return m.saveFn(ctx, tenderID, content)
}

func (m *mockSynopses) Load(ctx context.Context, tenderID string) (domsyn.Synopsis, error) {
	return m.loadFn(ctx, tenderID)
}

func (m *mockSynopses) Export(_ context.Context, _ string) ([]byte, error) {
	return nil, domain.ErrNotImplemented
}

type mockUsage struct {
	getFn func(ctx context.Context, period usageuc.Period) usageuc.Report
}

func (m *mockUsage) GetReport(ctx context.Context, period usageuc.Period) usageuc.Report {
	if m.getFn != nil {
		return m.getFn(ctx, period)
	}
	return usageuc.Report{Period: period, Remaining: -1}
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

// --- helpers ---

type testDeps struct {
	tenders  *mockTenders
	analysis *mockAnalysis
	synopses *mockSynopses
	usage    *mockUsage
	health   *mockHealth
}

func newTestDeps() *testDeps {
	return &testDeps{
		tenders:  &mockTenders{},
		analysis: &mockAnalysis{},
		synopses: &mockSynopses{},
		usage:    &mockUsage{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}},
	}
}

func (d *testDeps) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewServer(d.tenders, d.analysis, d.synopses, d.usage, d.health, zap.NewNop())
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

var analyzedAt = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func sampleTenders() []domtender.Tender {
	return []domtender.Tender{
		domtender.Reconstruct("t1", domtender.Fields{
			Organization: "NHAI", TDRNumber: "NHAI/2024/001", Category: "Civil Works",
			Location: "Delhi", TenderValue: "₹52.4 Cr", Status: domtender.StatusWon, AnalysisDate: analyzedAt,
		}),
		domtender.Reconstruct("t2", domtender.Fields{
			Organization: "PWD", TDRNumber: "PWD/2024/044", Category: "Electrical",
			Location: "Mumbai", TenderValue: "₹3.1 Cr",
		}),
	}
}

// --- tenders ---

func TestListTenders(t *testing.T) {
	d := newTestDeps()
	var got filter.Params
	d.tenders.listFn = func(_ context.Context, p filter.Params) ([]domtender.Tender, error) {
		got = p
		return sampleTenders(), nil
	}

	rr := d.do(t, http.MethodGet, "/tenders?search=nhai&category=all&location=Delhi&min_value=5&date_range=last_7_days", "")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "nhai", got.SearchTerm)
	assert.True(t, got.Category.IsAll())
	loc, ok := got.Location.Value()
	assert.True(t, ok)
	assert.Equal(t, "Delhi", loc)
	require.NotNil(t, got.Value.Min())
	assert.InDelta(t, 5.0, *got.Value.Min(), 1e-9)
	assert.Nil(t, got.Value.Max())
	assert.Equal(t, "Last 7 Days", got.Dates.Label())

	var resp tenderListResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "t1", resp.Items[0].ID)
	assert.Equal(t, "high", resp.Items[0].ValueTier)
	assert.Equal(t, "text-green-600 font-semibold", resp.Items[0].ValueClass)
	assert.Equal(t, "Won", resp.Items[0].Status)
	require.NotNil(t, resp.Items[0].AnalysisDate)
	assert.True(t, analyzedAt.Equal(*resp.Items[0].AnalysisDate))
	assert.Equal(t, "neutral", resp.Items[1].ValueTier)
	assert.Nil(t, resp.Items[1].AnalysisDate)
}

func TestListTenders_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"min not a number", "min_value=ten"},
		{"max not a number", "max_value=1e"},
		{"unknown range", "date_range=last_2_days"},
		{"bad date", "date=15-03-2024"},
		{"bad all_dates", "all_dates=maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			d.tenders.listFn = func(_ context.Context, _ filter.Params) ([]domtender.Tender, error) {
				t.Fatal("service must not be called")
				return nil, nil
			}

			rr := d.do(t, http.MethodGet, "/tenders?"+tt.query, "")
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, codeValidationFailed, decodeError(t, rr).Code)
		})
	}
}

func TestGetTender(t *testing.T) {
	d := newTestDeps()
	d.tenders.getFn = func(_ context.Context, id string) (domtender.Tender, error) {
		if id == "t1" {
			return sampleTenders()[0], nil
		}
		return domtender.Tender{}, domain.ErrTenderNotFound
	}

	rr := d.do(t, http.MethodGet, "/tenders/t1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp tenderResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "NHAI/2024/001", resp.TDRNumber)
	assert.Equal(t, domtender.StatusWon.BadgeClass(), resp.StatusClass)

	rr = d.do(t, http.MethodGet, "/tenders/missing", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	errResp := decodeError(t, rr)
	assert.Equal(t, codeTenderNotFound, errResp.Code)
	assert.Equal(t, domain.ErrTenderNotFound.Error(), errResp.Message)
}

func TestUpsertTender(t *testing.T) {
	d := newTestDeps()
	var stored domtender.Tender
	d.tenders.upsertFn = func(_ context.Context, td *domtender.Tender) (bool, error) {
		stored = *td
		return true, nil
	}

	body := `{"id":"t9","organization":"CPWD","tdr_number":"CPWD/2024/9","category":"Civil Works",` +
		`"tender_value":"₹12 Cr","analysis_date":"2024-03-15T10:00:00+05:30"}`
	rr := d.do(t, http.MethodPost, "/tenders", body)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "t9", stored.ID())
	assert.Equal(t, time.UTC, stored.AnalysisDate().Location())
	assert.Equal(t, 4, stored.AnalysisDate().Hour())

	d.tenders.upsertFn = func(_ context.Context, _ *domtender.Tender) (bool, error) { return false, nil }
	rr = d.do(t, http.MethodPost, "/tenders", body)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpsertTender_Invalid(t *testing.T) {
	d := newTestDeps()

	rr := d.do(t, http.MethodPost, "/tenders", `{"id":"t9","tdr_number":"X"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	errResp := decodeError(t, rr)
	assert.Equal(t, codeValidationFailed, errResp.Code)
	assert.Contains(t, errResp.Message, "category is required")

	rr = d.do(t, http.MethodPost, "/tenders", `{not json`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, codeBadRequest, decodeError(t, rr).Code)
}

func TestDeleteTender(t *testing.T) {
	d := newTestDeps()
	var deleted string
	d.tenders.deleteFn = func(_ context.Context, id string) error {
		deleted = id
		return nil
	}

	rr := d.do(t, http.MethodDelete, "/tenders/t1", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "t1", deleted)
}

func TestListCategories(t *testing.T) {
	d := newTestDeps()
	d.tenders.categoriesFn = func(_ context.Context, _ filter.Params) (tenderuc.Catalog, error) {
		all := sampleTenders()
		return tenderuc.Catalog{Groups: category.GroupByCategory(all), Default: category.Default(all)}, nil
	}

	rr := d.do(t, http.MethodGet, "/tenders/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp categoriesResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Civil Works", resp.DefaultCategory)
	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "Civil Works", resp.Categories[0].Category)
	assert.Equal(t, 1, resp.Categories[0].Count)
	assert.Equal(t, "Electrical", resp.Categories[1].Category)
}

func TestListCategories_NoDefault(t *testing.T) {
	d := newTestDeps()
	d.tenders.categoriesFn = func(_ context.Context, _ filter.Params) (tenderuc.Catalog, error) {
		return tenderuc.Catalog{Default: filter.All()}, nil
	}

	rr := d.do(t, http.MethodGet, "/tenders/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp categoriesResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, filter.AllSentinel, resp.DefaultCategory)
	assert.Empty(t, resp.Categories)
}

func TestListDates(t *testing.T) {
	d := newTestDeps()
	d.tenders.datesFn = func(_ context.Context, sel dates.Selection) (tenderuc.DateIndex, error) {
		return tenderuc.DateIndex{
			Available: dates.Available(sampleTenders()),
			Label:     sel.Label(),
		}, nil
	}

	rr := d.do(t, http.MethodGet, "/tenders/dates?date=2024-03-15", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp datesResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "15 Mar 2024", resp.Label)
	require.Len(t, resp.AvailableDates, 1)
	assert.Equal(t, dateCountResponse{Date: "2024-03-15", DateStr: "15 Mar 2024", TenderCount: 1}, resp.AvailableDates[0])
}

func TestGetStats(t *testing.T) {
	d := newTestDeps()
	d.tenders.statsFn = func(_ context.Context, _ filter.Params) (domtender.Stats, error) {
		return domtender.Summarize(sampleTenders()), nil
	}

	rr := d.do(t, http.MethodGet, "/tenders/stats?status=all", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp statsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.TotalAnalyzed)
	assert.Equal(t, 1, resp.Won)
	assert.Equal(t, "₹55.5 Cr", resp.TotalValueDisplay)
}

// --- analysis ---

func TestAnalyzeTender(t *testing.T) {
	d := newTestDeps()
	d.analysis.getFn = func(_ context.Context, id string) (report.Report, error) {
		return report.Report{ID: "r1", TenderID: id, Status: report.StatusCompleted, AnalyzedAt: analyzedAt}, nil
	}

	rr := d.do(t, http.MethodGet, "/tenderiq/analyze/t1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp report.Report
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, "t1", resp.TenderID)
	assert.Equal(t, report.StatusCompleted, resp.Status)
}

func TestAnalyzeTender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   errorCode
	}{
		{"not found", domain.ErrTenderNotFound, http.StatusNotFound, codeTenderNotFound},
		{"provider", errors.Join(errors.New("upstream 500"), domain.ErrAnalysisProviderError),
			http.StatusBadGateway, codeAnalysisProviderError},
		{"quota", domain.ErrAnalysisQuotaExceeded, http.StatusPaymentRequired, codeAnalysisQuotaExceeded},
		{"invalid report", domain.ErrReportInvalid, http.StatusBadGateway, codeReportInvalid},
		{"unknown", errors.New("redis: connection pool exhausted"), http.StatusInternalServerError, codeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			d.analysis.getFn = func(_ context.Context, _ string) (report.Report, error) {
				return report.Report{}, tt.err
			}

			rr := d.do(t, http.MethodGet, "/tenderiq/analyze/t1", "")
			require.Equal(t, tt.status, rr.Code)
			errResp := decodeError(t, rr)
			assert.Equal(t, tt.code, errResp.Code)
			assert.NotContains(t, errResp.Message, "redis")
			assert.NotContains(t, errResp.Message, "upstream")
		})
	}
}

// --- synopsis ---

func TestSaveAndLoadSynopsis(t *testing.T) {
	d := newTestDeps()
	saved := map[string]domsyn.Synopsis{}
	d.synopses.saveFn = func(_ context.Context, id string, content []byte) (domsyn.Synopsis, error) {
		syn, err := domsyn.New(id, content, analyzedAt)
		if err != nil {
			return domsyn.Synopsis{}, errors.Join(domain.ErrInvalidSynopsis, err)
		}
		saved[id] = syn
		return syn, nil
	}
	d.synopses.loadFn = func(_ context.Context, id string) (domsyn.Synopsis, error) {
		syn, ok := saved[id]
		if !ok {
			return domsyn.Synopsis{}, domain.ErrSynopsisNotFound
		}
		return syn, nil
	}

	rr := d.do(t, http.MethodGet, "/bidsynopsis/synopsis/t1", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, codeSynopsisNotFound, decodeError(t, rr).Code)

	rr = d.do(t, http.MethodPut, "/bidsynopsis/synopsis/t1", `{"bidder":"Acme"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = d.do(t, http.MethodGet, "/bidsynopsis/synopsis/t1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Acme", resp["bidder"])
	assert.Equal(t, "2024-03-15T10:00:00Z", resp["timestamp"])

	rr = d.do(t, http.MethodPut, "/bidsynopsis/synopsis/t1", `[1]`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, codeValidationFailed, decodeError(t, rr).Code)
}

func TestSaveSynopsis_TooLarge(t *testing.T) {
	d := newTestDeps()
	d.synopses.saveFn = func(_ context.Context, _ string, _ []byte) (domsyn.Synopsis, error) {
		t.Fatal("service must not be called")
		return domsyn.Synopsis{}, nil
	}

	body := `{"x":"` + strings.Repeat("a", domsyn.MaxContentSize) + `"}`
	rr := d.do(t, http.MethodPut, "/bidsynopsis/synopsis/t1", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestExportSynopsis_NotImplemented(t *testing.T) {
	d := newTestDeps()

	rr := d.do(t, http.MethodPost, "/bidsynopsis/synopsis/t1/export", "")
	require.Equal(t, http.StatusNotImplemented, rr.Code)
	assert.Equal(t, codeNotImplemented, decodeError(t, rr).Code)
}

// --- usage ---

func TestGetUsage(t *testing.T) {
	d := newTestDeps()
	var gotPeriod usageuc.Period
	d.usage.getFn = func(_ context.Context, p usageuc.Period) usageuc.Report {
		gotPeriod = p
		return usageuc.Report{Period: p, Provider: "openai", TokensUsed: 1200, Limit: 1000, Remaining: 0, Exhausted: true}
	}

	rr := d.do(t, http.MethodGet, "/usage?period=month", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, usageuc.PeriodMonth, gotPeriod)

	var resp usageResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "month", resp.Period)
	assert.Equal(t, int64(1200), resp.TokensUsed)
	assert.True(t, resp.Exhausted)

	rr = d.do(t, http.MethodGet, "/usage?period=year", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- health & routing ---

func TestHealthCheck(t *testing.T) {
	d := newTestDeps()

	rr := d.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp healthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])

	d.health.report = healthuc.Report{
		Status: healthuc.Unhealthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
	}
	rr = d.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rr := newTestDeps().do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestUnknownRoute(t *testing.T) {
	rr := newTestDeps().do(t, http.MethodGet, "/documents", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(zap.NewNop())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tenders", http.NoBody))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	errResp := decodeError(t, rr)
	assert.Equal(t, codeInternalError, errResp.Code)
	assert.Equal(t, "internal error", errResp.Message)
}
