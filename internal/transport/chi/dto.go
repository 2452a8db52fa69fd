package chi

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kailas-cloud/tenderiq/internal/domain"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
	domtender "github.com/kailas-cloud/tenderiq/internal/domain/tender"
	tenderuc "github.com/kailas-cloud/tenderiq/internal/usecase/tender"
	usageuc "github.com/kailas-cloud/tenderiq/internal/usecase/usage"
)

type tenderResponse struct {
	ID             string     `json:"id"`
	Organization   string     `json:"organization"`
	TDRNumber      string     `json:"tdr_number"`
	Title          string     `json:"title,omitempty"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Location       string     `json:"location"`
	TenderValue    string     `json:"tender_value"`
	ValueTier      string     `json:"value_tier"`
	ValueClass     string     `json:"value_class"`
	Status         string     `json:"status,omitempty"`
	StatusClass    string     `json:"status_class,omitempty"`
	SubmissionDate string     `json:"submission_date,omitempty"`
	AnalysisDate   *time.Time `json:"analysis_date,omitempty"`
	Starred        bool       `json:"starred"`
	Progress       int        `json:"progress"`
}

type tenderListResponse struct {
	Items []tenderResponse `json:"items"`
	Total int              `json:"total"`
}

type upsertTenderRequest struct {
	ID             string     `json:"id"`
	Organization   string     `json:"organization"`
	TDRNumber      string     `json:"tdr_number"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Location       string     `json:"location"`
	TenderValue    string     `json:"tender_value"`
	Status         string     `json:"status"`
	SubmissionDate string     `json:"submission_date"`
	AnalysisDate   *time.Time `json:"analysis_date"`
	Starred        bool       `json:"starred"`
	Progress       int        `json:"progress"`
}

type categoryGroupResponse struct {
	Category string           `json:"category"`
	Count    int              `json:"count"`
	Tenders  []tenderResponse `json:"tenders"`
}

type categoriesResponse struct {
	Categories      []categoryGroupResponse `json:"categories"`
	DefaultCategory string                  `json:"default_category"`
}

type dateCountResponse struct {
	Date        string `json:"date"`
	DateStr     string `json:"date_str"`
	TenderCount int    `json:"tender_count"`
}

type datesResponse struct {
	AvailableDates []dateCountResponse `json:"available_dates"`
	Label          string              `json:"label"`
}

type statsResponse struct {
	TotalAnalyzed     int     `json:"total_analyzed"`
	Won               int     `json:"won"`
	TotalValue        float64 `json:"total_value"`
	TotalValueDisplay string  `json:"total_value_display"`
	PendingResults    int     `json:"pending_results"`
}

type usageResponse struct {
	Period      string    `json:"period"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Provider    string    `json:"provider,omitempty"`
	TokensUsed  int64     `json:"tokens_used"`
	TokensLimit int64     `json:"tokens_limit"`
	Remaining   int64     `json:"tokens_remaining"`
	Exhausted   bool      `json:"is_exhausted"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func tenderToResponse(t *domtender.Tender) tenderResponse {
	tier := t.Tier()
	resp := tenderResponse{
		ID:             t.ID(),
		Organization:   t.Organization(),
		TDRNumber:      t.TDRNumber(),
		Title:          t.Title(),
		Description:    t.Description(),
		Category:       t.Category(),
		Location:       t.Location(),
		TenderValue:    t.TenderValue(),
		ValueTier:      string(tier),
		ValueClass:     tier.DisplayClass(),
		Status:         string(t.Status()),
		SubmissionDate: t.SubmissionDate(),
		Starred:        t.Starred(),
		Progress:       t.Progress(),
	}
	if t.Status() != "" {
		resp.StatusClass = t.Status().BadgeClass()
	}
	if d := t.AnalysisDate(); !d.IsZero() {
		d = d.UTC()
		resp.AnalysisDate = &d
	}
	return resp
}

func tendersToResponse(tenders []domtender.Tender) []tenderResponse {
	out := make([]tenderResponse, len(tenders))
	for i := range tenders {
		out[i] = tenderToResponse(&tenders[i])
	}
	return out
}

func tenderFromRequest(req *upsertTenderRequest) (domtender.Tender, error) {
	f := domtender.Fields{
		Organization:   req.Organization,
		TDRNumber:      req.TDRNumber,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Location:       req.Location,
		TenderValue:    req.TenderValue,
		Status:         domtender.Status(req.Status),
		SubmissionDate: req.SubmissionDate,
		Starred:        req.Starred,
		Progress:       req.Progress,
	}
	if req.AnalysisDate != nil {
		f.AnalysisDate = req.AnalysisDate.UTC()
	}
	t, err := domtender.New(req.ID, f)
	if err != nil {
		return domtender.Tender{}, fmt.Errorf("%w: %w", domain.ErrInvalidTender, err)
	}
	return t, nil
}

func catalogToResponse(c *tenderuc.Catalog) categoriesResponse {
	groups := make([]categoryGroupResponse, len(c.Groups))
	for i, g := range c.Groups {
		groups[i] = categoryGroupResponse{
			Category: g.Category,
			Count:    len(g.Tenders),
			Tenders:  tendersToResponse(g.Tenders),
		}
	}
	return categoriesResponse{Categories: groups, DefaultCategory: c.Default.String()}
}

func dateIndexToResponse(d *tenderuc.DateIndex) datesResponse {
	items := make([]dateCountResponse, len(d.Available))
	for i, dc := range d.Available {
		items[i] = dateCountResponse{Date: dc.Date, DateStr: dc.DateStr, TenderCount: dc.TenderCount}
	}
	return datesResponse{AvailableDates: items, Label: d.Label}
}

func statsToResponse(s domtender.Stats) statsResponse {
	return statsResponse{
		TotalAnalyzed:     s.TotalAnalyzed,
		Won:               s.Won,
		TotalValue:        s.TotalValue,
		TotalValueDisplay: s.FormatTotalValue(),
		PendingResults:    s.PendingResults,
	}
}

func usageToResponse(r usageuc.Report) usageResponse {
	return usageResponse{
		Period:      string(r.Period),
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
		Provider:    r.Provider,
		TokensUsed:  r.TokensUsed,
		TokensLimit: r.Limit,
		Remaining:   r.Remaining,
		Exhausted:   r.Exhausted,
	}
}

// paramsFromQuery builds filter parameters from the list query string.
// Absent and "all" selectors are inactive; bounds must be numbers.
func paramsFromQuery(q url.Values) (filter.Params, error) {
	p := filter.Params{
		SearchTerm: q.Get("search"),
		Category:   filter.ParseSelector(q.Get("category")),
		Location:   filter.ParseSelector(q.Get("location")),
		Status:     filter.ParseSelector(q.Get("status")),
	}

	minValue, err := floatParam(q, "min_value")
	if err != nil {
		return filter.Params{}, err
	}
	maxValue, err := floatParam(q, "max_value")
	if err != nil {
		return filter.Params{}, err
	}
	p.Value = filter.NewRange(minValue, maxValue)

	sel, err := selectionFromQuery(q)
	if err != nil {
		return filter.Params{}, err
	}
	p.Dates = sel
	return p, nil
}

func selectionFromQuery(q url.Values) (dates.Selection, error) {
	allDates := false
	if v := q.Get("all_dates"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return dates.Selection{}, fmt.Errorf("%w: all_dates must be a boolean", domain.ErrInvalidFilter)
		}
		allDates = b
	}
	sel, err := dates.Parse(q.Get("date"), q.Get("date_range"), allDates)
	if err != nil {
		return dates.Selection{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}
	return sel, nil
}

func floatParam(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidFilter, name)
	}
	return &v, nil
}

