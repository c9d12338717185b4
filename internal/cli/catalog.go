package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func catalogCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the years and countries available in the settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(g, tableFlags{})
			settings, err := s.store.Ensure(s.dir, false)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "YEAR\tCOUNTRIES")
			for _, y := range settings.Years() {
				mark := ""
				if y == settings.DefaultYear {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s%s\t%s\n", y, mark, strings.Join(settings.Catalog.Countries(y), " "))
			}
			return tw.Flush()
		},
	}
}
