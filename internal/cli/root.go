package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evlt/nutstools/internal/buildinfo"
	"github.com/evlt/nutstools/internal/infra/logger"
	"github.com/evlt/nutstools/internal/infra/settingsstore"
)

func Execute() {
	cmd, g := buildRootCmd()
	err := cmd.Execute()
	_ = g.closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nutstools: %s\n", userMessage(err))
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	directory string
	verbose   bool
	debug     bool

	cleanup func() error
}

// closeLog releases the log file. Cobra skips post-run hooks when a command
// fails, so callers of Execute close it themselves.
func (g *globalFlags) closeLog() error {
	if g.cleanup == nil {
		return nil
	}
	c := g.cleanup
	g.cleanup = nil
	return c()
}

func newRootCmd() *cobra.Command {
	cmd, _ := buildRootCmd()
	return cmd
}

func buildRootCmd() (*cobra.Command, *globalFlags) {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "nutstools",
		Short:         "Convert postal codes to NUTS region codes using the Eurostat reference tables",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := g.resolveDirectory()
			if err != nil {
				return err
			}
			g.directory = dir

			// Optional; real environment variables win.
			_ = godotenv.Load(filepath.Join(dir, ".env"))

			cfg := logger.Config{Dir: dir, Debug: g.debug}
			if g.verbose || g.debug {
				cfg.Mirror = cmd.ErrOrStderr()
				if g.debug {
					cfg.MirrorLevel = slog.LevelDebug
				}
			}
			c, lerr := logger.Setup(cfg)
			if lerr == nil {
				g.cleanup = c
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&g.directory, "directory", "", "Settings and cache directory (default: per-user data dir)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Mirror info logs to stderr")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging (file and stderr)")

	cmd.AddCommand(
		lookupCmd(g),
		fetchCmd(g),
		catalogCmd(g),
		settingsCmd(g),
		tuiCmd(g),
		versionCmd(),
	)
	return cmd, g
}

func (g *globalFlags) resolveDirectory() (string, error) {
	d := strings.TrimSpace(g.directory)
	if d == "" {
		return settingsstore.DefaultDirectory()
	}
	abs, err := filepath.Abs(d)
	if err != nil {
		return "", fmt.Errorf("invalid directory %q: %w", d, err)
	}
	return abs, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return nil
		},
	}
}
