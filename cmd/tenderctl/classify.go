package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tenderiq/internal/domain/tender/value"
)

type classifyOut struct {
	Input     string   `json:"input"`
	Magnitude *float64 `json:"magnitude"`
	Tier      string   `json:"tier"`
	Class     string   `json:"class"`
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "classify VALUE...",
		Short:   "Parse tender value strings and show their tier",
		Example: `  tenderctl classify "₹52.4 Cr" "₹8.2 Cr" "Ref Document"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]classifyOut, len(args))
			for i, a := range args {
				m := value.Parse(a)
				tier := value.ClassifyMagnitude(m)
				out[i] = classifyOut{Input: a, Tier: string(tier), Class: tier.DisplayClass()}
				if v, ok := m.Value(); ok {
					out[i].Magnitude = &v
				}
			}

			if opts.json() {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INPUT\tMAGNITUDE\tTIER")
			for _, o := range out {
				mag := "-"
				if o.Magnitude != nil {
					mag = strconv.FormatFloat(*o.Magnitude, 'f', -1, 64)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Input, mag, o.Tier)
			}
			return tw.Flush()
		},
	}
}
