package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

type filterFlags struct {
	search    string
	category  string
	location  string
	status    string
	minValue  string
	maxValue  string
	date      string
	dateRange string
	allDates  bool
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.search, "search", "", "case-insensitive text search")
	fs.StringVar(&f.category, "category", filter.AllSentinel, "exact category, or all")
	fs.StringVar(&f.location, "location", filter.AllSentinel, "location substring, or all")
	fs.StringVar(&f.status, "status", filter.AllSentinel, "exact status, or all")
	fs.StringVar(&f.minValue, "min", "", "minimum value in crore")
	fs.StringVar(&f.maxValue, "max", "", "maximum value in crore")
	fs.StringVar(&f.date, "date", "", "analysis day (YYYY-MM-DD)")
	fs.StringVar(&f.dateRange, "date-range", "", "last_1_day, last_5_days, last_7_days or last_30_days")
	fs.BoolVar(&f.allDates, "all-dates", false, "ignore analysis dates")
}

func (f *filterFlags) params(opts *options) (filter.Params, error) {
	minValue, err := parseBound("min", f.minValue)
	if err != nil {
		return filter.Params{}, err
	}
	maxValue, err := parseBound("max", f.maxValue)
	if err != nil {
		return filter.Params{}, err
	}
	sel, err := dates.Parse(f.date, f.dateRange, f.allDates)
	if err != nil {
		return filter.Params{}, err
	}
	now, err := opts.clock()
	if err != nil {
		return filter.Params{}, err
	}
	return filter.Params{
		SearchTerm: f.search,
		Category:   filter.ParseSelector(f.category),
		Location:   filter.ParseSelector(f.location),
		Status:     filter.ParseSelector(f.status),
		Value:      filter.NewRange(minValue, maxValue),
		Dates:      sel,
		Now:        now,
	}, nil
}

func parseBound(name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("--%s must be a number, got %q", name, raw)
	}
	return &v, nil
}

type tenderRow struct {
	ID       string `json:"id"`
	TDR      string `json:"tdr_number"`
	Category string `json:"category"`
	Location string `json:"location"`
	Value    string `json:"tender_value"`
	Tier     string `json:"value_tier"`
	Status   string `json:"status,omitempty"`
}

func toRows(tenders []tender.Tender) []tenderRow {
	rows := make([]tenderRow, len(tenders))
	for i := range tenders {
		t := &tenders[i]
		rows[i] = tenderRow{
			ID:       t.ID(),
			TDR:      t.TDRNumber(),
			Category: t.Category(),
			Location: t.Location(),
			Value:    t.TenderValue(),
			Tier:     string(t.Tier()),
			Status:   string(t.Status()),
		}
	}
	return rows
}

func printRows(w io.Writer, rows []tenderRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTDR\tCATEGORY\tLOCATION\tVALUE\tTIER\tSTATUS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.TDR, r.Category, r.Location, r.Value, r.Tier, r.Status)
	}
	return tw.Flush()
}

func newFilterCmd(opts *options) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List the tenders matching all given filters, in file order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := ff.params(opts)
			if err != nil {
				return err
			}
			tenders, err := opts.load()
			if err != nil {
				return err
			}
			rows := toRows(filter.Apply(tenders, p))
			if opts.json() {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return printRows(cmd.OutOrStdout(), rows)
		},
	}
	ff.bind(cmd)
	return cmd
}
