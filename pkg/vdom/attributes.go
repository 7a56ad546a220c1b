package vdom

import "strings"

// attr creates an attribute with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Key sets the reconciliation key of an element.
func Key(key string) Attr { return attr("key", key) }

// AttrKV sets an arbitrary attribute.
func AttrKV(key string, value any) Attr { return attr(key, value) }

// Global attributes

func ID(id string) Attr               { return attr("id", id) }
func Class(classes ...string) Attr    { return attr("class", strings.Join(classes, " ")) }
func StyleAttr(style string) Attr     { return attr("style", style) }
func Data(key, value string) Attr     { return attr("data-"+key, value) }
func Hidden() Attr                    { return attr("hidden", true) }
func TitleAttr(title string) Attr     { return attr("title", title) }
func TabIndex(index int) Attr         { return attr("tabindex", index) }
func Lang(lang string) Attr           { return attr("lang", lang) }

// DataTestID sets the data-testid attribute used by query.TestID.
func DataTestID(id string) Attr { return attr("data-testid", id) }

// Accessibility

func Role(role string) Attr             { return attr("role", role) }
func AriaLabel(label string) Attr       { return attr("aria-label", label) }
func AriaLabelledBy(id string) Attr     { return attr("aria-labelledby", id) }
func AriaHidden(hidden bool) Attr       { return attr("aria-hidden", hidden) }
func AriaLevel(level int) Attr          { return attr("aria-level", level) }
func AriaChecked(checked bool) Attr     { return attr("aria-checked", checked) }
func AriaExpanded(expanded bool) Attr   { return attr("aria-expanded", expanded) }

// Links and media

func Href(url string) Attr { return attr("href", url) }
func Src(url string) Attr  { return attr("src", url) }
func Alt(text string) Attr { return attr("alt", text) }

// Forms

func Name(name string) Attr          { return attr("name", name) }
func Value(value string) Attr        { return attr("value", value) }
func Type(t string) Attr             { return attr("type", t) }
func Placeholder(text string) Attr   { return attr("placeholder", text) }
func For(id string) Attr             { return attr("for", id) }
func Disabled() Attr                 { return attr("disabled", true) }
func Checked() Attr                  { return attr("checked", true) }
func Selected() Attr                 { return attr("selected", true) }
func Required() Attr                 { return attr("required", true) }
func Readonly() Attr                 { return attr("readonly", true) }
