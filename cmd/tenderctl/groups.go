package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tenderiq/internal/domain/search/category"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
)

type groupOut struct {
	Category string      `json:"category"`
	Count    int         `json:"count"`
	Tenders  []tenderRow `json:"tenders"`
}

type groupsOut struct {
	Groups          []groupOut `json:"groups"`
	DefaultCategory string     `json:"default_category"`
}

func newGroupsCmd(opts *options) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Group the matching tenders by category and show the default category",
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

			groups := category.GroupByCategory(filter.Apply(tenders, p))
			out := groupsOut{
				Groups:          make([]groupOut, len(groups)),
				DefaultCategory: category.Default(tenders).String(),
			}
			for i, g := range groups {
				out.Groups[i] = groupOut{Category: g.Category, Count: len(g.Tenders), Tenders: toRows(g.Tenders)}
			}

			if opts.json() {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			for _, g := range out.Groups {
				fmt.Fprintf(w, "%s (%d)\n", g.Category, g.Count)
				for _, r := range g.Tenders {
					fmt.Fprintf(w, "  %s  %s  %s\n", r.ID, r.TDR, r.Value)
				}
			}
			fmt.Fprintf(w, "default: %s\n", out.DefaultCategory)
			return nil
		},
	}
	ff.bind(cmd)
	return cmd
}
