package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/ui/tui"
	"github.com/evlt/nutstools/internal/usecase"
)

func tuiCmd(g *globalFlags) *cobra.Command {
	tf := &tableFlags{}
	var level int

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive postal code lookup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := domain.Level(level).Validate(); err != nil {
				return err
			}
			s := newSession(g, *tf)
			deps := tui.Deps{
				Prepare: func(ctx context.Context) (usecase.PreparedTable, error) {
					return s.prepareTable(ctx, *tf)
				},
				Level:  level,
				Logger: s.log,
			}
			return tui.Run(deps)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", int(domain.MaxLevel), "Initial NUTS level 0..3")
	bindTableFlags(cmd, tf)
	cmd.Flags().StringVar(&tf.tableFile, "nuts-file", "", "Use this reference table instead of the cached download")
	return cmd
}
