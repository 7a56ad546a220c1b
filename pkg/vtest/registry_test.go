package vtest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/vdom"
)

// sameNode compares nodes by identity.
var sameNode = cmp.Comparer(func(x, y *html.Node) bool { return x == y })

type stubRoot struct{ unmounts int }

func (s *stubRoot) Hydrate(*vdom.VNode) error { return nil }
func (s *stubRoot) Render(*vdom.VNode) error  { return nil }
func (s *stubRoot) Unmount() error            { s.unmounts++; return nil }

func TestRegistryOneRootPerContainer(t *testing.T) {
	doc := dom.New()
	a, b, c := doc.CreateElement("div"), doc.CreateElement("div"), doc.CreateElement("div")
	reg := NewRegistry()

	ra, rb, rc := &stubRoot{}, &stubRoot{}, &stubRoot{}
	for _, add := range []struct {
		container *html.Node
		root      Root
	}{{a, ra}, {b, rb}, {c, rc}} {
		if err := reg.Add(add.container, add.root); err != nil {
			t.Fatal(err)
		}
	}
	if err := reg.Add(b, &stubRoot{}); !errors.Is(err, ErrRootExists) {
		t.Errorf("second Add = %v, want ErrRootExists", err)
	}

	if got, ok := reg.Lookup(b); !ok || got != Root(rb) {
		t.Errorf("Lookup(b) = %v, %v", got, ok)
	}
	if diff := cmp.Diff([]*html.Node{a, b, c}, reg.Containers(), sameNode); diff != "" {
		t.Errorf("Containers (-want +got):\n%s", diff)
	}

	if !reg.Remove(b) {
		t.Error("Remove(b) = false")
	}
	if reg.Remove(b) {
		t.Error("second Remove(b) = true")
	}
	if _, ok := reg.Lookup(b); ok {
		t.Error("b still tracked")
	}
	if got, ok := reg.Lookup(c); !ok || got != Root(rc) {
		t.Errorf("Lookup(c) after Remove(b) = %v, %v", got, ok)
	}
	if diff := cmp.Diff([]*html.Node{a, c}, reg.Containers(), sameNode); diff != "" {
		t.Errorf("Containers after Remove (-want +got):\n%s", diff)
	}

	reg.Clear()
	if reg.Len() != 0 {
		t.Errorf("Len after Clear = %d", reg.Len())
	}
	if err := reg.Add(a, ra); err != nil {
		t.Errorf("Add after Clear: %v", err)
	}
}
