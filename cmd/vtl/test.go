package main

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/vango-go/vtl/internal/config"
)

func testCmd() *cobra.Command {
	var (
		coverage bool
		verbose  bool
		race     bool
		strict   bool
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "test [packages...]",
		Short: "Run tests",
		Long: `Run component tests.

This is a wrapper around 'go test' that passes harness settings to the
tests through VTL_* environment variables.

Examples:
  vtl test
  vtl test ./...
  vtl test --strict --race
  vtl test --log-level debug ./components/...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"./..."}
			}

			goArgs := []string{"test"}
			if verbose {
				goArgs = append(goArgs, "-v")
			}
			if coverage {
				goArgs = append(goArgs, "-cover")
			}
			if race {
				goArgs = append(goArgs, "-race")
			}
			goArgs = append(goArgs, args...)

			env := os.Environ()
			if strict {
				env = append(env, config.EnvStrictMode+"=true")
			}
			if logLevel != "" {
				env = append(env, config.EnvLogLevel+"="+logLevel)
			}

			run := exec.CommandContext(cmd.Context(), "go", goArgs...)
			run.Env = env
			run.Stdout = cmd.OutOrStdout()
			run.Stderr = cmd.ErrOrStderr()
			run.Stdin = os.Stdin
			return run.Run()
		},
	}

	cmd.Flags().BoolVarP(&coverage, "coverage", "c", false, "Show coverage report")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&race, "race", false, "Enable race detector")
	cmd.Flags().BoolVar(&strict, "strict", false, "Render every tree in strict mode")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Harness log level (debug, info, warn, error)")

	return cmd
}
