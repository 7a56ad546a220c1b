package reactive

import "sync"

// UseSignal returns a Signal that keeps its identity across renders of the
// calling component. initial is only used on the first render.
func UseSignal[T any](initial T) *Signal[T] {
	owner := mustOwner("UseSignal")
	owner.TrackHook(HookSignal)

	if slot := owner.UseHookSlot(); slot != nil {
		return slot.(*Signal[T])
	}
	s := NewSignal(initial)
	owner.SetHookSlot(s)
	return s
}

// UseState returns the current state value and a setter. Calling the
// setter schedules a re-render of the component when the value changes.
//
// Example:
//
//	n, setN := reactive.UseState(0)
//	return Button(OnClick(func() { setN(n + 1) }), Textf("%d", n))
func UseState[T any](initial T) (T, func(T)) {
	owner := mustOwner("UseState")
	owner.TrackHook(HookState)

	var s *Signal[T]
	if slot := owner.UseHookSlot(); slot != nil {
		s = slot.(*Signal[T])
	} else {
		s = NewSignal(initial)
		owner.SetHookSlot(s)
	}
	return s.Get(), s.Set
}

// Ref holds a mutable value that survives re-renders without triggering
// them. It is safe for concurrent access.
type Ref[T any] struct {
	value T
	isSet bool
	mu    sync.RWMutex
}

// NewRef creates a Ref outside of a component.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{value: initial}
}

// Current returns the current value of the ref.
func (r *Ref[T]) Current() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set sets the ref's value.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
	r.isSet = true
}

// IsSet returns true once Set has been called.
func (r *Ref[T]) IsSet() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSet
}

// UseRef returns a Ref that keeps its identity across renders.
func UseRef[T any](initial T) *Ref[T] {
	owner := mustOwner("UseRef")
	owner.TrackHook(HookRef)

	if slot := owner.UseHookSlot(); slot != nil {
		return slot.(*Ref[T])
	}
	r := NewRef(initial)
	owner.SetHookSlot(r)
	return r
}

// Provide sets a context value visible to the calling component and its
// descendants.
func Provide(key, value any) {
	owner := mustOwner("Provide")
	owner.SetValue(key, value)
}

// UseContext retrieves the nearest context value for key, or nil.
func UseContext(key any) any {
	owner := mustOwner("UseContext")
	owner.TrackHook(HookContext)
	return owner.GetValue(key)
}
