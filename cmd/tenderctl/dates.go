package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
)

type datesOut struct {
	Label     string          `json:"label"`
	Available []dateCountJSON `json:"available_dates"`
}

type dateCountJSON struct {
	Date        string `json:"date"`
	DateStr     string `json:"date_str"`
	TenderCount int    `json:"tender_count"`
}

func newDatesCmd(opts *options) *cobra.Command {
	var (
		date      string
		dateRange string
		allDates  bool
	)
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List the analysis days of the fixture, newest first, and label a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := dates.Parse(date, dateRange, allDates)
			if err != nil {
				return err
			}
			tenders, err := opts.load()
			if err != nil {
				return err
			}

			avail := dates.Available(tenders)
			out := datesOut{Label: sel.Label(), Available: make([]dateCountJSON, len(avail))}
			for i, d := range avail {
				out.Available[i] = dateCountJSON{Date: d.Date, DateStr: d.DateStr, TenderCount: d.TenderCount}
			}

			if opts.json() {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "selection: %s\n", out.Label)
			for _, d := range out.Available {
				fmt.Fprintf(w, "%s  %s  %d\n", d.Date, d.DateStr, d.TenderCount)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "analysis day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dateRange, "date-range", "", "last_1_day, last_5_days, last_7_days or last_30_days")
	cmd.Flags().BoolVar(&allDates, "all-dates", false, "select all dates")
	return cmd
}
