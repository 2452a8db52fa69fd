package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/domain"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
	"github.com/kailas-cloud/tenderiq/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterAnalysisMetrics()
	os.Exit(m.Run())
}

const validReport = `{
  "one_pager": {
    "project_overview": "Construction of a steel bridge",
    "financial_requirements": ["EMD ₹16.4 L"],
    "eligibility_highlights": ["Similar work of ₹4 Cr"],
    "important_dates": ["Bid due 20 Mar 2024"],
    "risk_analysis": {"summary": "Monsoon window"}
  },
  "scope_of_work": {
    "project_details": {"project_name": "Yamuna bridge", "location": "Delhi", "duration": "18 months", "contract_value": "₹8.2 Cr"},
    "work_packages": [{"id": "WP-01", "name": "Foundations", "description": "Piling", "components": [], "estimated_duration": "6 months"}]
  },
  "rfp_sections": {"sections": [{"section_number": "1", "section_name": "Instructions", "summary": "Bid process"}]},
  "data_sheet": {"financial_details": [{"label": "Estimated Cost", "value": "₹8.2 Cr", "highlight": true}]},
  "templates": {"bid_submission_forms": [{"id": "F1", "name": "Letter of bid", "format": "word", "mandatory": true}]}
}`

func chatServer(t *testing.T, content string, check func(req *goopenai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		var req goopenai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if check != nil {
			check(&req)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1710000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 900, "completion_tokens": 2100, "total_tokens": 3000},
		})
	}))
}

func newTestAnalyzer(url string) *Analyzer {
	return NewAnalyzer(&Config{
		APIKey:   "test-key",
		BaseURL:  url,
		Model:    "test-model",
		Provider: "test",
		Logger:   zap.NewNop(),
	})
}

func testTender() tender.Tender {
	return tender.Reconstruct("t1", tender.Fields{
		Organization: "National Highways Authority of India",
		TDRNumber:    "NHAI/BR/2024/003",
		Description:  "Construction of a steel bridge over the Yamuna",
		Category:     "Civil Works",
		Location:     "Delhi",
		TenderValue:  "₹8.2 Cr",
	})
}

func TestAnalyzer_Generate(t *testing.T) {
	server := chatServer(t, validReport, func(req *goopenai.ChatCompletionRequest) {
		if req.Model != "test-model" {
			t.Errorf("unexpected model: %s", req.Model)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != goopenai.ChatCompletionResponseFormatTypeJSONObject {
			t.Errorf("expected json_object response format, got %+v", req.ResponseFormat)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(req.Messages))
		}
		if !strings.Contains(req.Messages[1].Content, "NHAI/BR/2024/003") {
			t.Errorf("user prompt misses the tender number: %q", req.Messages[1].Content)
		}
	})
	defer server.Close()

	td := testTender()
	gen, err := newTestAnalyzer(server.URL).Generate(context.Background(), &td)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if gen.PromptTokens != 900 || gen.TotalTokens != 3000 {
		t.Errorf("unexpected usage %d/%d", gen.PromptTokens, gen.TotalTokens)
	}
	if gen.Report.OnePager.ProjectOverview != "Construction of a steel bridge" {
		t.Errorf("unexpected overview %q", gen.Report.OnePager.ProjectOverview)
	}
	if len(gen.Report.ScopeOfWork.WorkPackages) != 1 || gen.Report.ScopeOfWork.WorkPackages[0].ID != "WP-01" {
		t.Errorf("unexpected work packages %+v", gen.Report.ScopeOfWork.WorkPackages)
	}
	if gen.Report.ID != "" || gen.Report.TenderID != "" {
		t.Error("identity fields must be left for the caller")
	}
}

func TestAnalyzer_InvalidReport(t *testing.T) {
	server := chatServer(t, `{"one_pager": {}}`, nil)
	defer server.Close()

	td := testTender()
	_, err := newTestAnalyzer(server.URL).Generate(context.Background(), &td)
	if !errors.Is(err, domain.ErrReportInvalid) {
		t.Fatalf("expected ErrReportInvalid, got %v", err)
	}
}

func TestAnalyzer_EmptyResponse(t *testing.T) {
	server := chatServer(t, "  ", nil)
	defer server.Close()

	td := testTender()
	_, err := newTestAnalyzer(server.URL).Generate(context.Background(), &td)
	if !errors.Is(err, domain.ErrAnalysisProviderError) {
		t.Fatalf("expected ErrAnalysisProviderError, got %v", err)
	}
}

func TestAnalyzer_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "rate limit exceeded",
				"type":    "rate_limit_error",
			},
		})
	}))
	defer server.Close()

	td := testTender()
	_, err := newTestAnalyzer(server.URL).Generate(context.Background(), &td)
	if !errors.Is(err, domain.ErrAnalysisProviderError) {
		t.Fatalf("expected ErrAnalysisProviderError, got %v", err)
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("expected provider message in error, got %v", err)
	}
}

func TestAnalyzer_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test-model","object":"model"}]}`))
	}))
	defer server.Close()

	if err := newTestAnalyzer(server.URL).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
}

func TestExtractDetail(t *testing.T) {
	if got := extractDetail([]byte(`{"detail":"model not found"}`)); got != "model not found" {
		t.Errorf("got %q", got)
	}
	if got := extractDetail([]byte(`not json`)); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestDescribe_SkipsEmptyFields(t *testing.T) {
	td := tender.Reconstruct("t2", tender.Fields{Organization: "PWD", Category: "Civil Works"})
	got := describe(&td)
	if strings.Contains(got, "Location") {
		t.Errorf("empty fields must be omitted: %q", got)
	}
	if !strings.Contains(got, "Organization: PWD\n") {
		t.Errorf("unexpected prompt %q", got)
	}
}
