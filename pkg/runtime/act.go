package runtime

import (
	"sync"

	"github.com/vango-go/vtl/internal/goid"
)

// actScope is a reentrant lock keyed by goroutine. The goroutine that
// enters first owns the scope until its outermost exit; other goroutines
// wait.
type actScope struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner uint64
	depth int
}

func newActScope() *actScope {
	s := &actScope{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// enter acquires the scope and reports whether this is the outermost entry.
func (s *actScope) enter() bool {
	gid := goid.ID()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.depth > 0 && s.owner == gid {
		s.depth++
		return false
	}
	for s.depth > 0 {
		s.cond.Wait()
	}
	s.owner = gid
	s.depth = 1
	return true
}

func (s *actScope) exit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.depth--
	if s.depth == 0 {
		s.owner = 0
		s.cond.Broadcast()
	}
}

// heldByCurrent reports whether the calling goroutine is inside the scope.
func (s *actScope) heldByCurrent() bool {
	gid := goid.ID()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth > 0 && s.owner == gid
}
