package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/vango-go/vtl/internal/config"
	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/query"
)

type queryFlags struct {
	text        string
	testID      string
	role        string
	name        string
	label       string
	placeholder string
	title       string
	exact       bool
	hidden      bool
}

// by builds the query named by the flags. Exactly one kind must be set.
func (f queryFlags) by() (query.By, error) {
	opts := []query.MatchOption{query.Exact(f.exact)}
	var picked []query.By
	if f.text != "" {
		picked = append(picked, query.ByText(f.text, opts...))
	}
	if f.testID != "" {
		picked = append(picked, query.ByTestID(f.testID, opts...))
	}
	if f.label != "" {
		picked = append(picked, query.ByLabelText(f.label, opts...))
	}
	if f.placeholder != "" {
		picked = append(picked, query.ByPlaceholderText(f.placeholder, opts...))
	}
	if f.title != "" {
		picked = append(picked, query.ByTitle(f.title, opts...))
	}
	if f.role != "" {
		ropts := append(opts, query.Hidden(f.hidden))
		if f.name != "" {
			ropts = append(ropts, query.Name(f.name))
		}
		picked = append(picked, query.ByRole(f.role, ropts...))
	}

	switch len(picked) {
	case 0:
		return query.By{}, errors.New("one of --text, --testid, --role, --label, --placeholder or --title is required")
	case 1:
		return picked[0], nil
	default:
		return query.By{}, errors.New("only one query kind may be given")
	}
}

func queryCmd() *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "query <file>",
		Short: "Run a query against an HTML snapshot",
		Long: `Run a query against an HTML snapshot and print every match.

The query uses the same matching rules as the test helpers, including
the test ID attribute from vtl.yaml. Use "-" to read from stdin.

Examples:
  vtl query --role button --name Save snapshot.html
  vtl query --text "Loading" --exact=false snapshot.html
  vtl query --testid sidebar snapshot.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			by, err := f.by()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			qcfg := query.DefaultConfig()
			qcfg.TestIDAttribute = cfg.Queries.TestIDAttribute
			qcfg.DebugPrintLimit = cfg.Queries.DebugPrintLimit
			q := query.Within(doc.Body(), query.WithConfig(qcfg))

			nodes, err := q.GetAll(by)
			if err != nil {
				return err
			}
			printMatches(cmd, by, nodes, cfg.Queries.DebugPrintLimit)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.text, "text", "", "Match elements by text content")
	cmd.Flags().StringVar(&f.testID, "testid", "", "Match elements by test ID attribute")
	cmd.Flags().StringVar(&f.role, "role", "", "Match elements by ARIA role")
	cmd.Flags().StringVar(&f.name, "name", "", "Accessible name filter for --role")
	cmd.Flags().StringVar(&f.label, "label", "", "Match form controls by label text")
	cmd.Flags().StringVar(&f.placeholder, "placeholder", "", "Match elements by placeholder")
	cmd.Flags().StringVar(&f.title, "title", "", "Match elements by title")
	cmd.Flags().BoolVar(&f.exact, "exact", true, "Require full, case-sensitive matches")
	cmd.Flags().BoolVar(&f.hidden, "hidden", false, "Include inaccessible elements in role queries")

	return cmd
}

func printMatches(cmd *cobra.Command, by query.By, nodes []*html.Node, limit int) {
	out := cmd.OutOrStdout()
	success(out, "%d match(es) for %s", len(nodes), by)
	for i, n := range nodes {
		fmt.Fprintf(out, "\n[%d] role=%q name=%q\n", i+1, query.Role(n), query.AccessibleName(n))
		fmt.Fprintln(out, dom.Pretty(n, limit))
	}
}
