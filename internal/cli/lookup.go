package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/infra/codefile"
	"github.com/evlt/nutstools/internal/usecase"
)

type lookupFlags struct {
	tableFlags
	postalCodes []string
	inputFile   string
	outputFile  string
	level       int
}

func lookupCmd(g *globalFlags) *cobra.Command {
	f := &lookupFlags{}

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve postal codes to NUTS region codes",
		Example: `  nutstools lookup -p 2675BP
  nutstools lookup -p "8277 AM" -l 2 --country NL --year 2021
  nutstools lookup -i codes.csv -o regions.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := domain.Level(f.level)
			if err := level.Validate(); err != nil {
				return err
			}
			if err := f.validateSource(); err != nil {
				return err
			}

			codes := f.postalCodes
			if f.inputFile != "" {
				var err error
				codes, err = codefile.ReadPostalCodes(f.inputFile)
				if err != nil {
					return err
				}
			}

			s := newSession(g, f.tableFlags)
			prepared, err := s.prepareTable(cmd.Context(), f.tableFlags)
			if err != nil {
				return err
			}

			resolver := usecase.NewResolveCodes(prepared.Table, usecase.WithResolveLogger(s.log))
			results, err := resolver.ResolveMany(codes, level)
			if err != nil {
				return err
			}

			return f.write(cmd.OutOrStdout(), results, level)
		},
	}

	cmd.Flags().StringArrayVarP(&f.postalCodes, "postal-code", "p", nil, "Postal code to resolve (repeatable)")
	cmd.Flags().StringVarP(&f.inputFile, "input-file", "i", "", "CSV file with postal codes in the first column")
	cmd.Flags().StringVarP(&f.outputFile, "output-file", "o", "", "Write results as CSV to this file (\"-\" for stdout)")
	cmd.Flags().IntVarP(&f.level, "level", "l", int(domain.MaxLevel), "NUTS level 0..3")
	bindTableFlags(cmd, &f.tableFlags)
	cmd.Flags().StringVar(&f.tableFile, "nuts-file", "", "Use this reference table instead of the cached download")
	return cmd
}

func (f *lookupFlags) validateSource() error {
	hasCodes := len(f.postalCodes) > 0
	hasFile := strings.TrimSpace(f.inputFile) != ""
	switch {
	case hasCodes && hasFile:
		return errors.New("use either --postal-code or --input-file, not both")
	case !hasCodes && !hasFile:
		return errors.New("one of --postal-code or --input-file is required")
	}
	return nil
}

// write sends single-code lookups to stdout as text. File input defaults
// to a CSV next to the input file.
func (f *lookupFlags) write(out io.Writer, results []domain.Lookup, level domain.Level) error {
	target := f.outputFile
	if target == "" && f.inputFile != "" {
		target = codefile.DefaultOutputPath(f.inputFile, level)
	}

	switch target {
	case "":
		return codefile.WriteText(out, results)
	case "-":
		return codefile.WriteCSV(out, results, level)
	}

	if err := codefile.WriteFile(target, results, level); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d codes to %s\n", len(results), target)
	return nil
}

func bindTableFlags(cmd *cobra.Command, tf *tableFlags) {
	cmd.Flags().StringVar(&tf.year, "year", "", "NUTS year (default from settings)")
	cmd.Flags().StringVar(&tf.country, "country", "", "Country code (default from settings)")
	cmd.Flags().BoolVar(&tf.updateSettings, "update-settings", false, "Rewrite the settings file, persisting --year and --country")
	cmd.Flags().BoolVar(&tf.forceDownload, "force-download", false, "Download the reference table even when cached")
	cmd.Flags().StringVar(&tf.duplicates, "duplicates", string(domain.DuplicateLastWins), "Duplicate postal code policy: last-wins|first-wins|reject")
}
