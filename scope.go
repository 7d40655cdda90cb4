package main

import (
	"sync"
	"sync/atomic"
)

const PreviewSize = 1024

// Scope is a ring buffer of recent output samples for display.
//
// The audio side writes with TryPush and drops the sample whenever the
// display side holds the lock.
type Scope struct {
	mu      sync.Mutex
	buf     []Smp
	next    int
	dropped atomic.Uint64
}

func NewScope(size int) *Scope {
	if size <= 0 {
		size = PreviewSize
	}
	return &Scope{buf: make([]Smp, size)}
}

func (sc *Scope) Size() int {
	return len(sc.buf)
}

// TryPush records smp unless the buffer is busy. It never blocks.
func (sc *Scope) TryPush(smp Smp) bool {
	if !sc.mu.TryLock() {
		sc.dropped.Add(1)
		return false
	}
	sc.buf[sc.next] = smp
	sc.next = (sc.next + 1) % len(sc.buf)
	sc.mu.Unlock()
	return true
}

// Snapshot copies the buffer into dst, oldest sample first, reusing dst
// when it is large enough.
func (sc *Scope) Snapshot(dst []Smp) []Smp {
	if cap(dst) < len(sc.buf) {
		dst = make([]Smp, len(sc.buf))
	}
	dst = dst[:len(sc.buf)]
	sc.mu.Lock()
	n := copy(dst, sc.buf[sc.next:])
	copy(dst[n:], sc.buf[:sc.next])
	sc.mu.Unlock()
	return dst
}

func (sc *Scope) Dropped() uint64 {
	return sc.dropped.Load()
}
