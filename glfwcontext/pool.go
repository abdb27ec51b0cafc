package glfwcontext

import (
	"fmt"
	"sync"

	"github.com/richinsley/glcontext/graphics"
)

// Library is the process-wide windowing library state shared by every window.
type Library interface {
	Init() error
	Terminate()
}

// owner receives the window events a Pool routes back to it.
type owner interface {
	framebufferSize(width, height int)
	cursorPos(x, y float64)
}

// Pool tracks live windowed contexts by native window handle. GLFW callbacks
// carry only the window, so the pool is how they find the owning context.
//
// The library is initialised when the reference count goes from zero to one
// and terminated when it drops back to zero. The lock is never held while
// calling into an owner, so callbacks fired from inside a GLFW call made by
// the owning thread do not deadlock.
type Pool struct {
	mu     sync.Mutex
	lib    Library
	refs   int
	owners map[any]owner
}

// NewPool returns an empty pool managing lib.
func NewPool(lib Library) *Pool {
	return &Pool{
		lib:    lib,
		owners: make(map[any]owner),
	}
}

// Acquire takes a reference on the library, initialising it on first use.
func (p *Pool) Acquire() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refs == 0 {
		if err := p.lib.Init(); err != nil {
			return &graphics.Error{Op: "glfwcontext.Acquire", Call: "glfwInit", Err: err}
		}
	}
	p.refs++
	return nil
}

// Release drops a reference, terminating the library on the last one.
func (p *Pool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refs == 0 {
		return
	}
	p.refs--
	if p.refs == 0 {
		p.lib.Terminate()
	}
}

// Refs reports the number of outstanding library references.
func (p *Pool) Refs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refs
}

// Len reports the number of registered windows.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.owners)
}

func (p *Pool) insert(window any, o owner) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.owners[window]; ok {
		return fmt.Errorf("window %p already registered", window)
	}
	p.owners[window] = o
	return nil
}

// remove unregisters window if o owns it. An entry belonging to another
// owner is left alone.
func (p *Pool) remove(window any, o owner) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.owners[window] == o {
		delete(p.owners, window)
	}
}

// lookup returns the owner of window, or nil if it has none (yet).
func (p *Pool) lookup(window any) owner {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.owners[window]
}

func (p *Pool) dispatchFramebufferSize(window any, width, height int) {
	if o := p.lookup(window); o != nil {
		o.framebufferSize(width, height)
	}
}

func (p *Pool) dispatchCursorPos(window any, x, y float64) {
	if o := p.lookup(window); o != nil {
		o.cursorPos(x, y)
	}
}
