package runtime

import (
	"sync/atomic"

	"github.com/vango-go/vtl/pkg/reactive"
	"github.com/vango-go/vtl/pkg/vdom"
)

var instanceIDs atomic.Uint64

// instance is a mounted component. It is the reactive listener for the
// signals its render reads.
type instance struct {
	id        uint64
	root      *Root
	owner     *reactive.Owner
	dirty     atomic.Bool
	unmounted atomic.Bool
}

func newInstance(root *Root, parent *reactive.Owner) *instance {
	return &instance{
		id:    instanceIDs.Add(1),
		root:  root,
		owner: reactive.NewOwner(parent),
	}
}

// ID implements reactive.Listener.
func (i *instance) ID() uint64 { return i.id }

// MarkDirty implements reactive.Listener by scheduling the instance's root.
func (i *instance) MarkDirty() {
	if i.unmounted.Load() {
		return
	}
	i.dirty.Store(true)
	i.root.rt.scheduleRoot(i.root)
}

func (i *instance) render(c vdom.Component) (out *vdom.VNode) {
	i.dirty.Store(false)
	i.root.rt.metrics.renders.Inc()
	reactive.WithOwner(i.owner, func() {
		reactive.WithListener(i, func() {
			i.owner.StartRender()
			defer i.owner.EndRender()
			out = c.Render()
		})
	})
	return out
}

func (i *instance) unmount() {
	if i.unmounted.Swap(true) {
		return
	}
	i.owner.Dispose()
}
