package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/dates"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
	"github.com/kailas-cloud/tenderiq/internal/fixture"
	"github.com/kailas-cloud/tenderiq/internal/version"
)

// options are the flags shared by every subcommand.
type options struct {
	file   string
	output string
	now    string
}

func (o *options) load() ([]tender.Tender, error) {
	return fixture.Load(o.file)
}

// clock returns the time relative date ranges are anchored to.
func (o *options) clock() (time.Time, error) {
	if o.now == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(dates.DayLayout, o.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q (want YYYY-MM-DD)", o.now)
	}
	return t, nil
}

func (o *options) json() bool { return o.output == "json" }

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "tenderctl",
		Short:         "Filter, group and classify tender fixtures",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			switch opts.output {
			case "text", "json":
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text or json)", opts.output)
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "data/tenders.yaml", "tender fixture file")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	root.PersistentFlags().StringVar(&opts.now, "now", "", "anchor day for relative date ranges (YYYY-MM-DD, default today)")

	root.AddCommand(
		newFilterCmd(opts),
		newGroupsCmd(opts),
		newClassifyCmd(opts),
		newDatesCmd(opts),
		newStatsCmd(opts),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
