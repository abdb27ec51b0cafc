package glfwcontext

import (
	"errors"
	"sync"
	"testing"

	"github.com/richinsley/glcontext/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLibrary struct {
	mu         sync.Mutex
	inits      int
	terminates int
	err        error
}

func (l *fakeLibrary) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.inits++
	return nil
}

func (l *fakeLibrary) Terminate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.terminates++
}

type fakeOwner struct {
	width, height int
	x, y          float64
}

func (o *fakeOwner) framebufferSize(w, h int) { o.width, o.height = w, h }
func (o *fakeOwner) cursorPos(x, y float64)   { o.x, o.y = x, y }

func TestPoolInitialisesOnceForConcurrentWindows(t *testing.T) {
	lib := &fakeLibrary{}
	p := NewPool(lib)

	const n = 16
	windows := make([]*int, n)
	owners := make([]*fakeOwner, n)
	var wg sync.WaitGroup
	for i := range windows {
		windows[i], owners[i] = new(int), &fakeOwner{}
		wg.Add(1)
		go func(w *int, o *fakeOwner) {
			defer wg.Done()
			assert.NoError(t, p.Acquire())
			assert.NoError(t, p.insert(w, o))
		}(windows[i], owners[i])
	}
	wg.Wait()

	assert.Equal(t, n, p.Len())
	assert.Equal(t, n, p.Refs())
	assert.Equal(t, 1, lib.inits)
	assert.Zero(t, lib.terminates)

	for i, w := range windows {
		wg.Add(1)
		go func(w *int, o *fakeOwner) {
			defer wg.Done()
			p.remove(w, o)
			p.Release()
		}(w, owners[i])
	}
	wg.Wait()

	assert.Zero(t, p.Len())
	assert.Zero(t, p.Refs())
	assert.Equal(t, 1, lib.terminates)
}

func TestPoolReinitialisesAfterTermination(t *testing.T) {
	lib := &fakeLibrary{}
	p := NewPool(lib)

	require.NoError(t, p.Acquire())
	p.Release()
	require.NoError(t, p.Acquire())
	p.Release()

	assert.Equal(t, 2, lib.inits)
	assert.Equal(t, 2, lib.terminates)
}

func TestPoolReleaseWithoutReferences(t *testing.T) {
	lib := &fakeLibrary{}
	p := NewPool(lib)
	p.Release()
	assert.Zero(t, p.Refs())
	assert.Zero(t, lib.terminates)
}

func TestPoolInitFailure(t *testing.T) {
	cause := errors.New("no display")
	p := NewPool(&fakeLibrary{err: cause})

	err := p.Acquire()
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var gerr *graphics.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "glfwInit", gerr.Call)
	assert.Zero(t, p.Refs())
}

func TestPoolRejectsDuplicateWindow(t *testing.T) {
	p := NewPool(&fakeLibrary{})
	w := new(int)
	first, second := &fakeOwner{}, &fakeOwner{}
	require.NoError(t, p.insert(w, first))
	assert.Error(t, p.insert(w, second))
	assert.Equal(t, 1, p.Len())

	// The rejected owner cannot unregister the window it never owned.
	p.remove(w, second)
	assert.Equal(t, 1, p.Len())
	p.dispatchFramebufferSize(w, 8, 6)
	assert.Equal(t, 8, first.width)

	p.remove(w, first)
	assert.Zero(t, p.Len())
}

func TestPoolDispatch(t *testing.T) {
	p := NewPool(&fakeLibrary{})
	w, other := new(int), new(int)
	o := &fakeOwner{}
	require.NoError(t, p.insert(w, o))

	p.dispatchFramebufferSize(w, 1280, 480)
	p.dispatchCursorPos(w, 3.5, 7)
	assert.Equal(t, 1280, o.width)
	assert.Equal(t, 480, o.height)
	assert.Equal(t, 3.5, o.x)
	assert.Equal(t, 7.0, o.y)

	// Events for windows the pool does not know about are dropped.
	p.dispatchFramebufferSize(other, 1, 1)
	assert.Equal(t, 1280, o.width)

	p.remove(w, o)
	p.dispatchCursorPos(w, 0, 0)
	assert.Equal(t, 3.5, o.x)
}

// An owner may call back into the pool while being dispatched to.
func TestPoolDispatchIsReentrant(t *testing.T) {
	p := NewPool(&fakeLibrary{})
	w := new(int)
	o := &reentrantOwner{pool: p}
	require.NoError(t, p.insert(w, o))
	p.dispatchFramebufferSize(w, 10, 10)
	assert.Equal(t, 1, o.seen)
}

type reentrantOwner struct {
	pool *Pool
	seen int
}

func (o *reentrantOwner) framebufferSize(w, h int) { o.seen = o.pool.Len() }
func (o *reentrantOwner) cursorPos(x, y float64)   {}
