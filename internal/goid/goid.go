// Package goid identifies the calling goroutine.
//
// The reactive tracking context and the runtime's act scope are both keyed
// by goroutine so that a render on one goroutine never observes the owner
// or listener of a render on another.
package goid

import "runtime"

// ID returns the current goroutine's ID by parsing the stack header
// ("goroutine 123 [running]:").
func ID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // Skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}
