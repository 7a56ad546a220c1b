package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-go/vtl/internal/config"
	"github.com/vango-go/vtl/pkg/dom"
)

func debugCmd() *cobra.Command {
	var (
		limit    int
		selector string
	)

	cmd := &cobra.Command{
		Use:   "debug <file>",
		Short: "Pretty-print an HTML snapshot",
		Long: `Pretty-print an HTML snapshot the way RenderResult.Debug does.

Use "-" to read from stdin. Output is cut at the configured debug print
limit unless --limit is given; --limit 0 prints everything.

Examples:
  vtl debug snapshot.html
  vtl debug --selector "form" snapshot.html
  curl -s localhost:8080 | vtl debug -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Queries.DebugPrintLimit
			}

			doc, err := loadDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			root := doc.Body()
			if selector != "" {
				n, err := dom.QuerySelector(root, selector)
				if err != nil {
					return err
				}
				if n == nil {
					return fmt.Errorf("no element matches %q", selector)
				}
				root = n
			}
			fmt.Fprintln(cmd.OutOrStdout(), dom.Pretty(root, limit))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", config.DefaultDebugPrintLimit, "Maximum output length (0 for no limit)")
	cmd.Flags().StringVar(&selector, "selector", "", "Print only the first element matching this CSS selector")

	return cmd
}
