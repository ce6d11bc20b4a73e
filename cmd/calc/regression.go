package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"calculators/internal/regression"
	"calculators/pkg/registry"
)

func newRegressionCommand(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:       "regression [suite...]",
		Short:     "Run CSV regression fixtures through the engines",
		Long:      "Run CSV regression fixtures. Without arguments every built-in suite runs; --file replaces the built-in fixtures of a single suite.",
		ValidArgs: regression.Suites(),
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			suites := args
			if len(suites) == 0 {
				suites = regression.Suites()
			}
			if file != "" && len(suites) != 1 {
				return fmt.Errorf("--file needs exactly one suite")
			}

			runner, err := c.app.regressionRunner()
			if err != nil {
				return err
			}

			failed := 0
			for _, name := range suites {
				var rep *regression.Report
				if file != "" {
					rep, err = runner.RunFile(cmd.Context(), name, file)
				} else {
					rep, err = runner.RunBuiltin(cmd.Context(), name)
				}
				if err != nil {
					return err
				}
				text, err := c.app.renderer.RenderRegression(rep)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				if !rep.OK() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d suite(s) did not pass", failed, len(suites))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture CSV to run instead of the built-in one")
	return cmd
}

func newRegistryCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the engine registry",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range c.app.registry.IDs() {
				e, _ := c.app.registry.Lookup(id)
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-10s %s\n", e.ID, e.Category, e.DisplayName)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <engine-id>",
		Short: "Print an engine's registry entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := c.app.registry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown engine %q", args[0])
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(e)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [path]",
		Short: "Check a registry file, or the built-in registry without a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := c.app.registry
			if len(args) == 1 {
				var err error
				if reg, err = registry.LoadRegistry(args[0]); err != nil {
					return fmt.Errorf("failed to load registry: %w", err)
				}
			}
			if err := reg.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d engines.\n", len(reg.Engines))
			return nil
		},
	})
	return cmd
}
