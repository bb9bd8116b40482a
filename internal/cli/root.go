// Package cli implements the viewgen command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewgen/internal/config"
	"github.com/goliatone/go-viewgen/internal/logging"
)

type app struct {
	cfgFile string
	rootDir string
	cfg     *config.Config
	logger  *slog.Logger

	prompter    Prompter
	interactive func() bool
}

// Execute runs the viewgen command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the viewgen command tree.
func NewRootCmd() *cobra.Command {
	return newApp(surveyPrompter{}, stdinIsTerminal).rootCmd()
}

func newApp(prompter Prompter, interactive func() bool) *app {
	return &app{prompter: prompter, interactive: interactive}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "viewgen",
		Short: "Compile chunk templates into Go view types",
		Long: `viewgen turns template chunk trees into Go source for a view type with one
render method per layout level, then optionally builds and renders it.

Example usage:
  viewgen generate -t page.yaml -t layout.yaml -o home_view.go  # Generate source
  viewgen check -t page.yaml                                    # Syntax-check a view
  viewgen render -t page.yaml --data data.yaml                  # Build as plugin and render`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error

			if a.rootDir == "" {
				a.rootDir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
			}

			if a.cfgFile != "" {
				a.cfg, err = config.Load(a.cfgFile)
			} else {
				a.cfg, err = config.LoadFromDir(a.rootDir)
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			a.logger = logging.New(a.cfg.Logging.Level, a.cfg.Logging.Format, cmd.ErrOrStderr())
			cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./viewgen.yaml)")
	root.PersistentFlags().StringVarP(&a.rootDir, "dir", "d", "", "root directory resource globs resolve against (default is current directory)")

	root.AddCommand(a.generateCmd(), a.checkCmd(), a.renderCmd())
	return root
}
