package runtime

import (
	"fmt"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
)

// DefaultMaxPasses bounds the number of flush passes of a SyncFlusher.
const DefaultMaxPasses = 50

// ErrMaxUpdateDepth is returned when flushing does not settle. Test with
// errors.Is.
var ErrMaxUpdateDepth = vtlerrors.Sentinel("E011")

// Flusher drains queued work when the outermost Act scope exits.
//
// pass applies everything queued so far: dispatched functions, root renders
// and the effects of the resulting commits. It reports whether new work was
// queued while it ran.
type Flusher interface {
	Flush(pass func() (pending bool, err error)) error
}

// SyncFlusher runs passes back to back on the calling goroutine until no
// work is left.
type SyncFlusher struct {
	// MaxPasses bounds the passes of one flush. Zero means
	// DefaultMaxPasses.
	MaxPasses int
}

// Flush implements Flusher.
func (f SyncFlusher) Flush(pass func() (bool, error)) error {
	max := f.MaxPasses
	if max <= 0 {
		max = DefaultMaxPasses
	}
	for passes := 1; ; passes++ {
		pending, err := pass()
		if err != nil {
			return err
		}
		if !pending {
			return nil
		}
		if passes >= max {
			return vtlerrors.New("E011").
				WithDetail(fmt.Sprintf("Work was still pending after %d flush passes.", max))
		}
	}
}
