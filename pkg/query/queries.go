package query

import (
	"context"

	"golang.org/x/net/html"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
)

// CustomQuery is a caller-defined query registered with WithCustomQuery.
type CustomQuery func(root *html.Node, args ...any) ([]*html.Node, error)

// Queries runs queries against the descendants of one root element.
type Queries struct {
	root   *html.Node
	cfg    *Config
	custom map[string]CustomQuery
}

// Option configures a Queries value.
type Option func(*Queries)

// WithConfig makes the Queries use cfg instead of the process-wide
// configuration.
func WithConfig(cfg Config) Option {
	return func(q *Queries) {
		c := cfg.withDefaults()
		q.cfg = &c
	}
}

// WithCustomQuery registers a named query for Custom.
func WithCustomQuery(name string, fn CustomQuery) Option {
	return func(q *Queries) {
		if q.custom == nil {
			q.custom = make(map[string]CustomQuery)
		}
		q.custom[name] = fn
	}
}

// Within returns the queries bound to root.
//
// Example:
//
//	form := query.Within(doc.Body()).GetByRole("form")
//	input, err := query.Within(form).GetByLabelText("Email")
func Within(root *html.Node, opts ...Option) *Queries {
	q := &Queries{root: root}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Root returns the element the queries are bound to.
func (q *Queries) Root() *html.Node { return q.root }

// Config returns the configuration the queries use.
func (q *Queries) Config() Config {
	if q.cfg != nil {
		return *q.cfg
	}
	return GetConfig()
}

// QueryAll returns every match, possibly none.
func (q *Queries) QueryAll(by By) []*html.Node {
	return by.all(q.root, q.Config())
}

// Query returns the only match, or nil when nothing matches. More than one
// match is an error.
func (q *Queries) Query(by By) (*html.Node, error) {
	cfg := q.Config()
	nodes := by.all(q.root, cfg)
	switch len(nodes) {
	case 0:
		return nil, nil
	case 1:
		return nodes[0], nil
	}
	return nil, newElementError(ErrMultipleElements, by, q.root, cfg)
}

// GetAll returns every match. Matching nothing is an error.
func (q *Queries) GetAll(by By) ([]*html.Node, error) {
	cfg := q.Config()
	nodes := by.all(q.root, cfg)
	if len(nodes) == 0 {
		return nil, newElementError(ErrNoElement, by, q.root, cfg)
	}
	return nodes, nil
}

// Get returns the only match. Matching nothing or more than one element is
// an error.
func (q *Queries) Get(by By) (*html.Node, error) {
	n, err := q.Query(by)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, newElementError(ErrNoElement, by, q.root, q.Config())
	}
	return n, nil
}

// Find retries Get until it succeeds or WaitFor gives up.
func (q *Queries) Find(ctx context.Context, by By, opts ...WaitOption) (*html.Node, error) {
	var n *html.Node
	err := waitFor(ctx, q.Config(), func() error {
		var err error
		n, err = q.Get(by)
		return err
	}, opts)
	return n, err
}

// FindAll retries GetAll until it succeeds or WaitFor gives up.
func (q *Queries) FindAll(ctx context.Context, by By, opts ...WaitOption) ([]*html.Node, error) {
	var nodes []*html.Node
	err := waitFor(ctx, q.Config(), func() error {
		var err error
		nodes, err = q.GetAll(by)
		return err
	}, opts)
	return nodes, err
}

// WaitFor is the package WaitFor using the configuration of q.
func (q *Queries) WaitFor(ctx context.Context, cb func() error, opts ...WaitOption) error {
	return waitFor(ctx, q.Config(), cb, opts)
}

// Custom runs the query registered under name.
func (q *Queries) Custom(name string, args ...any) ([]*html.Node, error) {
	fn, ok := q.custom[name]
	if !ok {
		return nil, vtlerrors.New("E053").WithDetail("No query named " + name + " is registered.")
	}
	return fn(q.root, args...)
}

// GetByText is Get(ByText(m, opts...)).
func (q *Queries) GetByText(m any, opts ...MatchOption) (*html.Node, error) {
	return q.Get(ByText(m, opts...))
}

// GetAllByText is GetAll(ByText(m, opts...)).
func (q *Queries) GetAllByText(m any, opts ...MatchOption) ([]*html.Node, error) {
	return q.GetAll(ByText(m, opts...))
}

// QueryByText is Query(ByText(m, opts...)).
func (q *Queries) QueryByText(m any, opts ...MatchOption) (*html.Node, error) {
	return q.Query(ByText(m, opts...))
}

// QueryAllByText is QueryAll(ByText(m, opts...)).
func (q *Queries) QueryAllByText(m any, opts ...MatchOption) []*html.Node {
	return q.QueryAll(ByText(m, opts...))
}

// FindByText is Find(ctx, ByText(m, opts...)).
func (q *Queries) FindByText(ctx context.Context, m any, opts ...MatchOption) (*html.Node, error) {
	return q.Find(ctx, ByText(m, opts...))
}

// GetByTestID is Get(ByTestID(id)).
func (q *Queries) GetByTestID(id any, opts ...MatchOption) (*html.Node, error) {
	return q.Get(ByTestID(id, opts...))
}

// QueryByTestID is Query(ByTestID(id)).
func (q *Queries) QueryByTestID(id any, opts ...MatchOption) (*html.Node, error) {
	return q.Query(ByTestID(id, opts...))
}

// GetAllByTestID is GetAll(ByTestID(id)).
func (q *Queries) GetAllByTestID(id any, opts ...MatchOption) ([]*html.Node, error) {
	return q.GetAll(ByTestID(id, opts...))
}

// FindByTestID is Find(ctx, ByTestID(id)).
func (q *Queries) FindByTestID(ctx context.Context, id any, opts ...MatchOption) (*html.Node, error) {
	return q.Find(ctx, ByTestID(id, opts...))
}

// GetByRole is Get(ByRole(role, opts...)).
func (q *Queries) GetByRole(role string, opts ...MatchOption) (*html.Node, error) {
	return q.Get(ByRole(role, opts...))
}

// GetAllByRole is GetAll(ByRole(role, opts...)).
func (q *Queries) GetAllByRole(role string, opts ...MatchOption) ([]*html.Node, error) {
	return q.GetAll(ByRole(role, opts...))
}

// QueryByRole is Query(ByRole(role, opts...)).
func (q *Queries) QueryByRole(role string, opts ...MatchOption) (*html.Node, error) {
	return q.Query(ByRole(role, opts...))
}

// FindByRole is Find(ctx, ByRole(role, opts...)).
func (q *Queries) FindByRole(ctx context.Context, role string, opts ...MatchOption) (*html.Node, error) {
	return q.Find(ctx, ByRole(role, opts...))
}

// GetByLabelText is Get(ByLabelText(m, opts...)).
func (q *Queries) GetByLabelText(m any, opts ...MatchOption) (*html.Node, error) {
	return q.Get(ByLabelText(m, opts...))
}

// QueryByLabelText is Query(ByLabelText(m, opts...)).
func (q *Queries) QueryByLabelText(m any, opts ...MatchOption) (*html.Node, error) {
	return q.Query(ByLabelText(m, opts...))
}

// GetByPlaceholderText is Get(ByPlaceholderText(m, opts...)).
func (q *Queries) GetByPlaceholderText(m any, opts ...MatchOption) (*html.Node, error) {
	return q.Get(ByPlaceholderText(m, opts...))
}

// GetByAltText is Get(ByAltText(m, opts...)).
func (q *Queries) GetByAltText(m any, opts ...MatchOption) (*html.Node, error) {
	return q.Get(ByAltText(m, opts...))
}

// GetByTitle is Get(ByTitle(m, opts...)).
func (q *Queries) GetByTitle(m any, opts ...MatchOption) (*html.Node, error) {
	return q.Get(ByTitle(m, opts...))
}

// GetByDisplayValue is Get(ByDisplayValue(m, opts...)).
func (q *Queries) GetByDisplayValue(m any, opts ...MatchOption) (*html.Node, error) {
	return q.Get(ByDisplayValue(m, opts...))
}
