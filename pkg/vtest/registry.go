package vtest

import (
	"errors"
	"sync"

	"golang.org/x/net/html"
)

// ErrRootExists is returned by Registry.Add for a container that already
// has a root.
var ErrRootExists = errors.New("vtest: container already has a root")

type registryEntry struct {
	container *html.Node
	root      Root
}

// Registry tracks the roots a Harness created, one per container, in
// creation order.
type Registry struct {
	mu      sync.Mutex
	roots   map[*html.Node]Root
	entries []registryEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{roots: make(map[*html.Node]Root)}
}

// Lookup returns the root of container.
func (r *Registry) Lookup(container *html.Node) (Root, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	root, ok := r.roots[container]
	return root, ok
}

// Add records root for container.
func (r *Registry) Add(container *html.Node, root Root) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roots[container]; ok {
		return ErrRootExists
	}
	r.roots[container] = root
	r.entries = append(r.entries, registryEntry{container: container, root: root})
	return nil
}

// Remove forgets container. It reports whether container was tracked.
func (r *Registry) Remove(container *html.Node) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roots[container]; !ok {
		return false
	}
	delete(r.roots, container)
	for i, e := range r.entries {
		if e.container == container {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of tracked roots.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Containers returns the tracked containers in creation order.
func (r *Registry) Containers() []*html.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*html.Node, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.container
	}
	return out
}

// Clear forgets every root.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roots = make(map[*html.Node]Root)
	r.entries = nil
}

func (r *Registry) snapshot() []registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]registryEntry(nil), r.entries...)
}
