package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-viewgen/pkg/backend/goplugin"
	"github.com/goliatone/go-viewgen/pkg/compiler"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		flags    unitFlags
		dataFile string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Build a view as a plugin and render it",
		Long: `Render builds the view with the Go toolchain as a plugin, loads it and
writes the rendered output to stdout. The viewgen binary must be built from
the module configured as plugin.module_dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(&flags)
			if err != nil {
				return err
			}

			data, err := loadViewData(dataFile)
			if err != nil {
				return err
			}

			pc := a.cfg.Plugin
			backend, err := goplugin.New(
				goplugin.WithModuleDir(pc.ModuleDir),
				goplugin.WithGoBinary(pc.GoBinary),
				goplugin.WithWorkDir(pc.WorkDir),
				goplugin.WithCacheSize(pc.CacheSize),
				goplugin.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			options := append(a.compilerOptions(&flags), compiler.WithBackend(backend))
			result, err := compiler.New(options...).Compile(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to compile view: %w", err)
			}

			v := result.New()
			v.SetViewData(data)
			return v.RenderView(cmd.OutOrStdout())
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&dataFile, "data", "", "YAML or JSON file with the view data")
	return cmd
}

func loadViewData(path string) (map[string]any, error) {
	data := make(map[string]any)
	if path == "" {
		return data, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read view data: %w", err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse view data: %w", err)
	}
	return data, nil
}
