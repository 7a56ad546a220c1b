package query

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/dom"
)

var (
	// ErrNoElement is wrapped by errors of Get variants that match nothing.
	ErrNoElement = vtlerrors.Sentinel("E050")

	// ErrMultipleElements is wrapped by errors of single-element variants
	// that match more than once.
	ErrMultipleElements = vtlerrors.Sentinel("E051")

	// ErrTimeout is wrapped by WaitFor errors when the timeout expires.
	ErrTimeout = vtlerrors.Sentinel("E052")

	// ErrUnknownQuery is returned by Custom for unregistered names.
	ErrUnknownQuery = vtlerrors.Sentinel("E053")
)

// ElementError reports a query that matched the wrong number of elements.
// It includes a dump of the DOM the query ran against.
type ElementError struct {
	// Err is ErrNoElement or ErrMultipleElements.
	Err error

	// Query describes what was searched for.
	Query string

	// DOM is the pretty-printed root, truncated to Config.DebugPrintLimit.
	DOM string
}

func (e *ElementError) Error() string {
	prefix := "Unable to find an element"
	if errors.Is(e.Err, ErrMultipleElements) {
		prefix = "Found multiple elements"
	}
	return fmt.Sprintf("%s %s\n\n%s", prefix, e.Query, e.DOM)
}

func (e *ElementError) Unwrap() error { return e.Err }

func newElementError(kind error, by By, root *html.Node, cfg Config) *ElementError {
	return &ElementError{
		Err:   kind,
		Query: by.desc,
		DOM:   dom.Pretty(root, cfg.DebugPrintLimit),
	}
}
