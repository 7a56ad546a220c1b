package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

const docBase = "https://vango.dev/docs/testing/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Runtime (E001-E019)

	"E001": {
		Category:   CategoryRuntime,
		Message:    "Hook called outside a component render",
		Detail:     "Hooks such as UseState, UseEffect and UseRef keep their state on the rendering component. They can only be called while a component created with vdom.Func renders.",
		Suggestion: "Move the hook call into the component's render function",
		DocURL:     docBase + "E001",
	},
	"E002": {
		Category:   CategoryRuntime,
		Message:    "Hook order changed between renders",
		Detail:     "A component called a different sequence of hooks than on its previous render.",
		Suggestion: "Do not call hooks inside conditions or loops",
		DocURL:     docBase + "E002",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Component render panicked",
		Detail:   "A component's render function panicked. The update was abandoned and the document keeps its last committed state.",
		DocURL:   docBase + "E003",
	},
	"E010": {
		Category:   CategoryRuntime,
		Message:    "An update was not wrapped in Act",
		Detail:     "State changed outside an Act scope while the act environment is enabled. The update is queued and applied at the next flush, so assertions made before then observe stale output.",
		Suggestion: "Wrap code that causes state updates in vtest.Act",
		DocURL:     docBase + "E010",
	},
	"E011": {
		Category:   CategoryRuntime,
		Message:    "Maximum update depth exceeded",
		Detail:     "Flushing kept producing new updates. A component or effect probably sets state unconditionally on every render.",
		Suggestion: "Give the effect a dependency list or guard the state update",
		DocURL:     docBase + "E011",
	},
	"E012": {
		Category: CategoryRuntime,
		Message:  "Root has been unmounted",
		Detail:   "A render was requested on a root whose Unmount has already run.",
		DocURL:   docBase + "E012",
	},

	// Configuration (E020-E039)

	"E020": {
		Category:   CategoryConfig,
		Message:    "LegacyRoot is not supported by this runtime",
		Detail:     "The runtime only provides concurrent roots, so legacy single-shot rendering is unavailable.",
		Suggestion: "Remove the LegacyRoot option, or construct the harness with runtime.NewLegacy when single-shot rendering is required",
		DocURL:     docBase + "E020",
	},
	"E021": {
		Category: CategoryInternal,
		Message:  "Attempted to hydrate a non-hydrateable root. This is a bug in vtl",
		Detail:   "A concurrent root created for client rendering was asked to hydrate existing markup.",
		DocURL:   docBase + "E021",
	},
	"E030": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value could not be parsed or is out of range.",
		DocURL:   docBase + "E030",
	},
	"E031": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be read",
		DocURL:   docBase + "E031",
	},

	// Hydration (E040-E049)

	"E040": {
		Category:   CategoryHydration,
		Message:    "Hydration mismatch",
		Detail:     "The server markup in the container does not match the tree the client rendered. The mismatched subtree was re-created on the client.",
		Suggestion: "Render the same tree on the server and the client",
		DocURL:     docBase + "E040",
	},

	// Queries (E050-E069)

	"E050": {
		Category: CategoryQuery,
		Message:  "Unable to find an element",
		DocURL:   docBase + "E050",
	},
	"E051": {
		Category:   CategoryQuery,
		Message:    "Found multiple elements",
		Suggestion: "Use a GetAll or QueryAll variant if more than one match is expected",
		DocURL:     docBase + "E051",
	},
	"E052": {
		Category: CategoryQuery,
		Message:  "Timed out in WaitFor",
		DocURL:   docBase + "E052",
	},
	"E053": {
		Category:   CategoryQuery,
		Message:    "Unknown custom query",
		Suggestion: "Pass the query to query.Within with query.WithCustomQuery",
		DocURL:     docBase + "E053",
	},

	// CLI (E070-E079)

	"E070": {
		Category: CategoryCLI,
		Message:  "Could not read input document",
		DocURL:   docBase + "E070",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry. It is not safe to
// call concurrently with New.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
