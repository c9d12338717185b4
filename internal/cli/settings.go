package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evlt/nutstools/internal/infra/settingsstore"
	"github.com/evlt/nutstools/internal/usecase"
)

func settingsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or reset the settings file",
	}
	cmd.AddCommand(settingsShowCmd(g), settingsResetCmd(g))
	return cmd
}

func settingsShowCmd(g *globalFlags) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the settings file, or the result of a JSONPath query over it",
		Example: `  nutstools settings show
  nutstools settings show --query '$.DEFAULT_YEAR'
  nutstools settings show --query '$.NUTS_DATA["2021"].files.NL'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(g, tableFlags{})
			settings, err := s.store.Ensure(s.dir, false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if query == "" {
				fmt.Fprintf(out, "# %s\n", settingsstore.Path(s.dir))
				return settingsstore.Encode(out, settings)
			}

			v, err := usecase.NewQuerySettings(settingsstore.Document).Execute(settings, query)
			if err != nil {
				return err
			}
			if str, ok := v.(string); ok {
				fmt.Fprintln(out, str)
				return nil
			}
			b, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "JSONPath expression, e.g. $.DEFAULT_COUNTRY")
	return cmd
}

func settingsResetCmd(g *globalFlags) *cobra.Command {
	tf := &tableFlags{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the settings file with the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(g, *tf)
			settings, err := s.store.Ensure(s.dir, true)
			if err != nil {
				return err
			}
			s.log.Info("settings.reset", "path", settingsstore.Path(s.dir))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (year=%s, country=%s)\n",
				settingsstore.Path(s.dir), settings.DefaultYear, settings.DefaultCountry)
			return nil
		},
	}

	cmd.Flags().StringVar(&tf.year, "year", "", "Default year to persist")
	cmd.Flags().StringVar(&tf.country, "country", "", "Default country to persist")
	return cmd
}
