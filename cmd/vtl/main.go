package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/dom"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vtl",
		Short: "Testing tools for Vango components",
		Long: `vtl inspects rendered markup the way component tests do.

Use it to pretty-print a DOM snapshot, try out queries against saved
markup before writing them into a test, or run tests with the harness
configured from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		debugCmd(),
		queryCmd(),
		initCmd(),
		testCmd(),
		versionCmd(),
	)
	return root
}

// loadDocument parses the HTML in path ("-" for stdin) into the body of a
// new document.
func loadDocument(in io.Reader, path string) (*dom.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, vtlerrors.New("E070").WithDetail(path).Wrap(err)
	}

	doc := dom.New()
	if err := doc.SetInnerHTML(doc.Body(), string(data)); err != nil {
		return nil, vtlerrors.New("E070").WithDetail(path).Wrap(err)
	}
	return doc, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
