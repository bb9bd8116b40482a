package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewgen/pkg/compiler"
)

func (a *app) checkCmd() *cobra.Command {
	var flags unitFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Generate a view and check that its source parses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(&flags)
			if err != nil {
				return err
			}

			unit, err := compiler.New(a.compilerOptions(&flags)...).Generate(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to generate view: %w", err)
			}

			if err := compiler.CheckSyntax(unit.Source); err != nil {
				var compileErr *compiler.CompilationError
				if !errors.As(err, &compileErr) {
					return err
				}
				for _, d := range compileErr.Diagnostics {
					fmt.Fprintln(cmd.ErrOrStderr(), d.String())
				}
				return fmt.Errorf("%s: %d syntax error(s)", unit.FullName, len(compileErr.Diagnostics))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok  %s (%d levels, base %s)\n", unit.FullName, unit.Levels, unit.BaseType)
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}
