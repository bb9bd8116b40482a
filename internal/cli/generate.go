package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewgen/pkg/compiler"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		flags  unitFlags
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the Go source of a view",
		Long: `Generate assembles the view type for the given template levels and
resources and writes the formatted Go source.

Examples:
  viewgen generate -t page.yaml -t layout.yaml                     # Print to stdout
  viewgen generate -t page.yaml -r 'resources/**/*.yaml' -o view.go # Write a file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(&flags)
			if err != nil {
				return err
			}

			unit, err := compiler.New(a.compilerOptions(&flags)...).Generate(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to generate view: %w", err)
			}

			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), unit.Source)
				return err
			}

			write, err := a.confirmOverwrite(cmd.Context(), output, force)
			if err != nil {
				return err
			}
			if !write {
				fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %s\n", output)
				return nil
			}
			if err := os.WriteFile(output, []byte(unit.Source), 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s written to %s\n", unit.FullName, output)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite the output file without asking")
	return cmd
}

// confirmOverwrite reports whether path may be written. Existing files are
// only replaced with --force or after an interactive confirmation.
func (a *app) confirmOverwrite(ctx context.Context, path string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to stat output: %w", err)
	}

	if !a.interactive() {
		return false, fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	return a.prompter.Confirm(ctx, fmt.Sprintf("%s exists. Overwrite?", path), false)
}
