package goid

import "testing"

func TestIDStableWithinGoroutine(t *testing.T) {
	a, b := ID(), ID()
	if a == 0 || a != b {
		t.Fatalf("ID() = %d, %d; want equal non-zero values", a, b)
	}
}

func TestIDDiffersAcrossGoroutines(t *testing.T) {
	mine := ID()
	ch := make(chan uint64)
	go func() { ch <- ID() }()
	if other := <-ch; other == mine {
		t.Fatalf("goroutines share ID %d", mine)
	}
}
