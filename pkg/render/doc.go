// Package render renders vdom trees to HTML strings.
//
// vtl uses it to produce server markup for hydration tests: a test renders
// a component to a string, places the markup in a container and then
// hydrates the same component over it.
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	markup, err := renderer.RenderToString(vdom.Mount(App()))
//
// Components run with a throwaway reactive owner, so hooks work but effects
// never fire: server rendering produces markup only. Text and attribute
// values are escaped; KindRaw nodes and the dangerouslySetInnerHTML prop
// are written verbatim and must only carry trusted content.
package render
