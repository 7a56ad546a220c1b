package vdom

import (
	"fmt"
	"sort"
	"strings"
)

// ResolvedAttr is an attribute as it appears in the document.
type ResolvedAttr struct {
	Name  string
	Value string
}

var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

// IsBooleanAttr reports whether an attribute is an HTML boolean attribute.
func IsBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// AttrName maps a prop key to its HTML attribute name. ok is false for
// props that never reach the document (internal, key, handlers).
func AttrName(key string) (name string, ok bool) {
	switch {
	case key == "" || key == "key" || strings.HasPrefix(key, "_"):
		return "", false
	case key == "className":
		return "class", true
	case key == "htmlFor":
		return "for", true
	}
	return strings.ToLower(key), true
}

// AttrString converts a prop value into attribute text. ok is false when
// the attribute must be absent.
func AttrString(name string, value any) (string, bool) {
	if value == nil {
		return "", false
	}
	if b, isBool := value.(bool); isBool {
		if IsBooleanAttr(name) {
			return "", b
		}
		if b {
			return "true", true
		}
		return "false", true
	}
	switch v := value.(type) {
	case string:
		return v, true
	case int:
		return fmt.Sprintf("%d", v), true
	case int64:
		return fmt.Sprintf("%d", v), true
	case float64:
		return fmt.Sprintf("%g", v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// Attributes resolves an element's props into document attributes, sorted
// by name for deterministic output.
func (v *VNode) Attributes() []ResolvedAttr {
	if v == nil || v.Kind != KindElement || len(v.Props) == 0 {
		return nil
	}
	out := make([]ResolvedAttr, 0, len(v.Props))
	for key, value := range v.Props {
		if IsEventProp(key, value) {
			continue
		}
		name, ok := AttrName(key)
		if !ok {
			continue
		}
		s, ok := AttrString(name, value)
		if !ok {
			continue
		}
		out = append(out, ResolvedAttr{Name: name, Value: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
