package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/evlt/nutstools/internal/domain"
)

func fetchCmd(g *globalFlags) *cobra.Command {
	tf := &tableFlags{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the reference table for the selected year and country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(g, *tf)
			res, err := s.fetch.Execute(cmd.Context(), s.fetchRequest(*tf))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "year:    %s\n", res.Target.Year)
			fmt.Fprintf(out, "country: %s\n", res.Target.Country)
			fmt.Fprintf(out, "url:     %s\n", res.Target.URL)

			if !res.Available {
				return &domain.OpError{
					Op:   "cli.fetch",
					Kind: domain.KindNetwork,
					Path: res.Target.URL,
					Err:  fmt.Errorf("table not available: %w", domain.ErrNetwork),
				}
			}

			size := "unknown size"
			if info, err := os.Stat(res.Target.CachePath); err == nil {
				size = humanize.Bytes(uint64(info.Size()))
			}
			fmt.Fprintf(out, "cached:  %s (%s)\n", res.Target.CachePath, size)
			return nil
		},
	}

	bindTableFlags(cmd, tf)
	return cmd
}
