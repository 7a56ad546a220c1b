package reactive

import (
	stderrors "errors"
	"testing"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
)

// render runs fn as one render of owner.
func render(owner *Owner, fn func()) {
	WithOwner(owner, func() {
		owner.StartRender()
		defer owner.EndRender()
		fn()
	})
}

func TestOwnerHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	grandchild := NewOwner(child)

	if child.Parent() != root || grandchild.Parent() != child {
		t.Fatal("parent links not set")
	}

	var order []string
	child.OnCleanup(func() { order = append(order, "child") })
	grandchild.OnCleanup(func() { order = append(order, "grandchild") })
	root.OnCleanup(func() { order = append(order, "root") })

	root.Dispose()
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("children should be disposed with the root")
	}
	want := []string{"grandchild", "child", "root"}
	if len(order) != len(want) {
		t.Fatalf("cleanup order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("cleanup order = %v, want %v", order, want)
		}
	}

	root.Dispose()
	if len(order) != 3 {
		t.Error("Dispose should be idempotent")
	}
}

func TestOnCleanupAfterDispose(t *testing.T) {
	o := NewOwner(nil)
	o.Dispose()
	ran := false
	o.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered on a disposed owner should run immediately")
	}
}

func TestContextValues(t *testing.T) {
	type themeKey struct{}
	root := NewOwner(nil)
	child := NewOwner(root)

	render(root, func() { Provide(themeKey{}, "dark") })

	var got any
	render(child, func() { got = UseContext(themeKey{}) })
	if got != "dark" {
		t.Errorf("UseContext = %v, want dark", got)
	}
	if missing := child.GetValue("missing"); missing != nil {
		t.Errorf("missing key = %v, want nil", missing)
	}
}

func TestHookOrderValidation(t *testing.T) {
	DebugMode = true
	defer func() { DebugMode = false }()

	o := NewOwner(nil)
	render(o, func() {
		UseState(0)
		UseRef("")
	})

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !stderrors.Is(err, vtlerrors.Sentinel("E002")) {
			t.Fatalf("expected E002 panic, got %v", r)
		}
	}()
	render(o, func() {
		UseRef("")
		UseState(0)
	})
}

func TestHookOutsideRender(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !stderrors.Is(err, vtlerrors.Sentinel("E001")) {
			t.Fatalf("expected E001 panic, got %v", r)
		}
		if IsRendering() {
			t.Error("render depth leaked")
		}
	}()
	UseState(0)
}
