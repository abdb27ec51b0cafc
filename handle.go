package glcontext

import (
	"sync/atomic"

	"github.com/richinsley/glcontext/graphics"
)

// Handle is a shared reference to a context. It starts with one holder;
// Retain adds holders and Release drops them. The context is destroyed when
// the last holder releases it.
type Handle struct {
	graphics.Context
	refs atomic.Int32
}

func newHandle(ctx graphics.Context) *Handle {
	h := &Handle{Context: ctx}
	h.refs.Store(1)
	return h
}

// Retain adds a holder. It returns false if the context was already
// destroyed, in which case the caller holds nothing.
func (h *Handle) Retain() bool {
	for {
		n := h.refs.Load()
		if n <= 0 {
			return false
		}
		if h.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release drops a holder and destroys the context with the last one. Extra
// releases are ignored.
func (h *Handle) Release() {
	for {
		n := h.refs.Load()
		if n <= 0 {
			return
		}
		if h.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				h.Context.Destroy()
			}
			return
		}
	}
}

// Destroy is Release, so a Handle can be used wherever a graphics.Context
// is expected.
func (h *Handle) Destroy() { h.Release() }

// Refs reports the number of holders.
func (h *Handle) Refs() int { return int(h.refs.Load()) }
