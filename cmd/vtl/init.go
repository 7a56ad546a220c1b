package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-go/vtl/internal/config"
)

func initCmd() *cobra.Command {
	var (
		force  bool
		strict bool
		testID string
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a vtl.yaml with default settings",
		Long: `Write a vtl.yaml with default settings.

The file is picked up by every test below dir that uses the default
harness.

Examples:
  vtl init
  vtl init --strict --testid data-qa ./web`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			out := cmd.OutOrStdout()
			if config.Exists(dir) && !force {
				warn(out, "%s already exists (use --force to overwrite)", filepath.Join(dir, config.ConfigFileName))
				return nil
			}

			cfg := config.New()
			cfg.Render.StrictMode = strict
			if testID != "" {
				cfg.Queries.TestIDAttribute = testID
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			path := filepath.Join(dir, config.ConfigFileName)
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			success(out, "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing vtl.yaml")
	cmd.Flags().BoolVar(&strict, "strict", false, "Render every tree in strict mode")
	cmd.Flags().StringVar(&testID, "testid", "", "Attribute used by test ID queries")

	return cmd
}
