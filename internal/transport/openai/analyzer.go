// Package openai generates tender analysis reports with an OpenAI-compatible chat API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/domain"
	"github.com/kailas-cloud/tenderiq/internal/domain/report"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
	"github.com/kailas-cloud/tenderiq/internal/metrics"
)

const systemPrompt = `You are a public procurement analyst. Analyze the tender described by the user and
answer with a single JSON object with the keys "one_pager", "scope_of_work", "rfp_sections",
"data_sheet" and "templates". Use the field names of the report format exactly. Do not wrap
the JSON in markdown. Monetary amounts are in Indian rupees (Cr = crore, L = lakh).`

// Analyzer is a report generator using the OpenAI-compatible chat completions API.
type Analyzer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	user        string
	provider    string
	logger      *zap.Logger
}

// Config holds the analysis provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	User        string
	Provider    string
	Logger      *zap.Logger
}

// NewAnalyzer creates an OpenAI-compatible analysis provider.
func NewAnalyzer(cfg *Config) *Analyzer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Analyzer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		user:        cfg.User,
		provider:    cfg.Provider,
		logger:      cfg.Logger,
	}
}

// Generate asks the model for a report and validates it against the report schema.
func (a *Analyzer) Generate(ctx context.Context, t *tender.Tender) (report.Generation, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describe(t)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		User:        a.user,
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		a.fail("api_error")
		return report.Generation{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		a.fail("empty_response")
		return report.Generation{}, fmt.Errorf("empty analysis response: %w", domain.ErrAnalysisProviderError)
	}

	metrics.AnalysisRequestDuration.WithLabelValues(a.provider, a.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.AnalysisTokensTotal.WithLabelValues(a.provider, a.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.AnalysisTokensTotal.WithLabelValues(a.provider, a.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	r, err := report.Parse([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		a.fail("invalid_report")
		a.logger.Warn("Analysis response rejected",
			zap.String("tender_id", t.ID()),
			zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
			zap.Error(err),
		)
		return report.Generation{}, err
	}

	metrics.AnalysisRequestsTotal.WithLabelValues(a.provider, a.model, "success").Inc()

	return report.Generation{
		Report:       r,
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

func (a *Analyzer) fail(kind string) {
	metrics.AnalysisRequestsTotal.WithLabelValues(a.provider, a.model, "error").Inc()
	metrics.AnalysisErrorsTotal.WithLabelValues(a.provider, a.model, kind).Inc()
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (a *Analyzer) HealthCheck(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// describe renders the tender as the user prompt.
func describe(t *tender.Tender) string {
	var b strings.Builder
	line := func(label, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, v)
		}
	}
	line("Organization", t.Organization())
	line("Tender number", t.TDRNumber())
	line("Title", t.Title())
	line("Description", t.Description())
	line("Category", t.Category())
	line("Location", t.Location())
	line("Tender value", t.TenderValue())
	line("Submission date", t.SubmissionDate())
	return b.String()
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrAnalysisProviderError for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrAnalysisProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("analysis API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("analysis API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("analysis API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("analysis request timed out: %w", wrap)
	}
	return fmt.Errorf("analysis request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
