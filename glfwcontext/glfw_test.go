//go:build !ios && !android && !noglfw

package glfwcontext

import (
	"runtime"
	"testing"

	"github.com/richinsley/glcontext/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGLFWContext(t *testing.T, pool *Pool, w, h int) *Context {
	t.Helper()
	c, err := New(pool, "", w, h, graphics.ES2)
	if err != nil {
		t.Skipf("no glfw context available: %v", err)
	}
	return c
}

func TestGLFWLifecycle(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := NewPool(GLFW())
	c := newGLFWContext(t, pool, 64, 48)

	assert.True(t, c.IsValid())
	assert.Equal(t, graphics.Windowed, c.Kind())
	assert.False(t, c.HasDisplay())
	assert.Equal(t, 64, c.Geometry().Width)
	assert.Equal(t, 48, c.Geometry().Height)
	assert.Equal(t, 1, pool.Len())
	require.NoError(t, c.MakeCurrent())

	frames := 0
	c.RunLoop(func() bool {
		frames++
		return frames < 3
	})
	assert.Equal(t, 3, frames)

	// Returning from RunLoop leaves the library running.
	assert.Equal(t, 1, pool.Refs())

	c.Destroy()
	c.Destroy()
	assert.False(t, c.IsValid())
	assert.ErrorIs(t, c.MakeCurrent(), graphics.ErrDestroyed)
	assert.Zero(t, pool.Len())
	assert.Zero(t, pool.Refs())
}

func TestGLFWContextsShareLibrary(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := NewPool(GLFW())
	a := newGLFWContext(t, pool, 32, 32)
	b, err := New(pool, "", 32, 32, graphics.ES2)
	require.NoError(t, err)

	assert.Equal(t, 2, pool.Len())
	a.Destroy()
	assert.Equal(t, 1, pool.Refs())
	require.NoError(t, b.MakeCurrent())
	b.Destroy()
	assert.Zero(t, pool.Refs())
}
