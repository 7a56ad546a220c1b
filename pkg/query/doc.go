// Package query finds elements in a dom.Document the way a user would:
// by visible text, label, role, placeholder, alt text, title, display
// value or test ID.
//
// Queries are bound to a root element with Within:
//
//	q := query.Within(doc.Body())
//	button, err := q.GetByRole("button", query.Name("Save"))
//
// Each query comes in six variants:
//
//	Get       exactly one match, or an *ElementError
//	GetAll    one or more matches, or an *ElementError
//	Query     zero or one match; an error only for multiple matches
//	QueryAll  all matches, possibly none
//	Find      Get, retried with WaitFor until it succeeds
//	FindAll   GetAll, retried with WaitFor
//
// # Matchers
//
// Text arguments accept a string (exact match on whitespace-normalized
// text, or a case-insensitive substring with Exact(false)), a
// *regexp.Regexp, or a func(text string, n *html.Node) bool.
//
// # Configuration
//
// Configure changes the process-wide Config. A Queries value can carry its
// own Config with WithConfig. Test harnesses use the wrapper hooks of
// Config to synchronize events and WaitFor with their renderer.
package query
