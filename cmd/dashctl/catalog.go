package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List every widget grouped for the picker",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := catalog.Default()
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

			for _, g := range catalog.Groups() {
				var rows int
				for _, def := range c.All() {
					if def.Group != g.Group {
						continue
					}
					if rows == 0 {
						fmt.Fprintf(tw, "%s\n", g.Label)
					}
					rows++
					fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
						def.ID, def.Title, def.Scope, def.DefaultSize, enabledMark(def.DefaultEnabled))
				}
			}
			return tw.Flush()
		},
	}
}

func enabledMark(on bool) string {
	if on {
		return "default"
	}
	return ""
}
