package runtime

import (
	"golang.org/x/net/html"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/reactive"
	"github.com/vango-go/vtl/pkg/vdom"
)

// ErrUnmounted is returned by Render on an unmounted root.
var ErrUnmounted = vtlerrors.Sentinel("E012")

// Root renders one tree into one container.
type Root struct {
	rt        *Runtime
	container *html.Node
	seq       uint64

	owner     *reactive.Owner
	fiber     *fiber
	element   *vdom.VNode
	hydrating bool
	unmounted bool
}

func newRoot(rt *Runtime, container *html.Node, hydrate bool, seq uint64) *Root {
	owner := reactive.NewOwner(nil)
	return &Root{
		rt:        rt,
		container: container,
		seq:       seq,
		owner:     owner,
		fiber:     &fiber{kind: kindRoot, node: container, owner: owner},
		hydrating: hydrate,
	}
}

// Container returns the element the root renders into.
func (r *Root) Container() *html.Node {
	return r.container
}

// Render schedules ui to replace the root's tree. The commit happens at the
// next flush, which is when the enclosing Act scope exits.
func (r *Root) Render(ui *vdom.VNode) error {
	if r.unmounted {
		return vtlerrors.New("E012")
	}
	r.element = ui
	r.rt.scheduleRoot(r)
	return nil
}

// Unmount removes the root's tree from the container, runs unmount
// cleanups and releases the root. Unmounting twice is a no-op.
func (r *Root) Unmount() error {
	return r.rt.run(func() error {
		r.unmount()
		return nil
	})
}

func (r *Root) unmount() {
	if r.unmounted {
		return
	}
	r.unmounted = true

	rc := &reconciler{rt: r.rt, root: r, doc: r.rt.doc}
	for _, child := range r.fiber.children {
		rc.remove(child)
	}
	r.fiber.children = nil
	r.owner.Dispose()
	r.rt.untrack(r)
}

// commit reconciles the root's element against its committed tree.
func (r *Root) commit() {
	rc := &reconciler{rt: r.rt, root: r, doc: r.rt.doc}

	var hc *hydrationCursor
	if r.hydrating {
		hc = &hydrationCursor{rc: rc, node: r.container.FirstChild}
	}
	rc.reconcileChildren(r.fiber, single(r.element), hc)
	rc.place(r.container, r.fiber.childHostNodes())
	r.hydrating = false

	r.rt.metrics.commits.Inc()
	r.rt.logger.Debug("root committed", "container", r.container.Data, "renders", rc.renders)
}

// commitNow commits immediately and runs the resulting effects. The caller
// holds the act scope.
func (r *Root) commitNow() (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = recoverRender(p)
		}
	}()
	r.rt.mu.Lock()
	delete(r.rt.dirty, r)
	r.rt.mu.Unlock()

	r.commit()
	r.owner.RunPendingEffects()
	return nil
}

func single(n *vdom.VNode) []*vdom.VNode {
	if n == nil {
		return nil
	}
	return []*vdom.VNode{n}
}
