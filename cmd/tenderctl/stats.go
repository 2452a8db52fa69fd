package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

type statsOut struct {
	TotalAnalyzed  int    `json:"total_analyzed"`
	Won            int    `json:"won"`
	TotalValue     string `json:"total_value"`
	PendingResults int    `json:"pending_results"`
}

func newStatsCmd(opts *options) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the matching tenders as a bid history",
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

			s := tender.Summarize(filter.Apply(tenders, p))
			out := statsOut{
				TotalAnalyzed:  s.TotalAnalyzed,
				Won:            s.Won,
				TotalValue:     s.FormatTotalValue(),
				PendingResults: s.PendingResults,
			}
			if opts.json() {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Total Analyzed   %d\n", out.TotalAnalyzed)
			fmt.Fprintf(w, "Won              %d\n", out.Won)
			fmt.Fprintf(w, "Total Value      %s\n", out.TotalValue)
			fmt.Fprintf(w, "Pending Results  %d\n", out.PendingResults)
			return nil
		},
	}
	ff.bind(cmd)
	return cmd
}
