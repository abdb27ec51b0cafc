package mobilecontext

import (
	"testing"

	"github.com/richinsley/glcontext/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	failContext bool
	failCurrent bool
	version     string
	status      uint32

	api      int
	current  uintptr
	contexts map[uintptr]bool
	surfaces map[uint32]bool
	next     uint32
	calls    []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		version:  "OpenGL ES 3.0 Apple A12 GPU",
		status:   framebufferComplete,
		contexts: map[uintptr]bool{},
		surfaces: map[uint32]bool{},
	}
}

func (d *fakeDriver) createContext(api int) uintptr {
	d.calls = append(d.calls, "create")
	d.api = api
	if d.failContext {
		return 0
	}
	d.contexts[0xeac1] = true
	return 0xeac1
}

func (d *fakeDriver) makeCurrent(ctx uintptr, fbo uint32) bool {
	if ctx == 0 {
		d.calls = append(d.calls, "clear")
		d.current = 0
		return true
	}
	d.calls = append(d.calls, "current")
	if d.failCurrent {
		return false
	}
	d.current = ctx
	return true
}

func (d *fakeDriver) release(ctx uintptr) {
	d.calls = append(d.calls, "release")
	delete(d.contexts, ctx)
}

func (d *fakeDriver) glVersion() string { return d.version }

func (d *fakeDriver) createSurface(width, height int) (uint32, uint32, uint32) {
	d.calls = append(d.calls, "surface")
	d.next += 2
	fbo, rbo := d.next-1, d.next
	d.surfaces[fbo], d.surfaces[rbo] = true, true
	return fbo, rbo, d.status
}

func (d *fakeDriver) deleteSurface(fbo, rbo uint32) {
	d.calls = append(d.calls, "delete")
	delete(d.surfaces, fbo)
	delete(d.surfaces, rbo)
}

func TestNew(t *testing.T) {
	d := newFakeDriver()
	c, err := newContext(d, 640, 480, graphics.ES3)
	require.NoError(t, err)

	assert.Equal(t, 3, d.api)
	assert.Equal(t, SurfaceCreated, c.State())
	assert.True(t, c.IsValid())
	assert.Equal(t, graphics.Mobile, c.Kind())
	assert.False(t, c.HasDisplay())
	assert.Equal(t, []string{"create", "current", "surface"}, d.calls)

	d.calls = nil
	require.NoError(t, c.MakeCurrent())
	assert.Equal(t, []string{"current"}, d.calls)
}

func TestConstructionFailureUnwinds(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeDriver)
		call  string
	}{
		{"context", func(d *fakeDriver) { d.failContext = true }, "EAGLContext initWithAPI"},
		{"current", func(d *fakeDriver) { d.failCurrent = true }, "EAGLContext setCurrentContext"},
		{"version", func(d *fakeDriver) { d.version = "" }, "glGetString"},
		{"surface", func(d *fakeDriver) { d.status = 0x8CD6 }, "glCheckFramebufferStatus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDriver()
			tt.setup(d)
			c, err := newContext(d, 640, 480, graphics.ES2)
			assert.Nil(t, c)

			var gerr *graphics.Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tt.call, gerr.Call)
			assert.Equal(t, "mobilecontext.New", gerr.Op)
			assert.Empty(t, d.contexts, "EAGLContext leaked")
			assert.Empty(t, d.surfaces, "framebuffer leaked")
			assert.Zero(t, d.current)
		})
	}
}

func TestIncompleteSurfaceReportsStatus(t *testing.T) {
	d := newFakeDriver()
	d.status = 0x8CD6
	_, err := newContext(d, 640, 480, graphics.ES2)
	var gerr *graphics.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 0x8CD6, gerr.Code)
}

func TestDestroy(t *testing.T) {
	d := newFakeDriver()
	c, err := newContext(d, 64, 64, graphics.ES2)
	require.NoError(t, err)

	d.calls = nil
	c.Destroy()
	assert.Equal(t, []string{"current", "delete", "clear", "release"}, d.calls)
	assert.Equal(t, Destroyed, c.State())
	assert.False(t, c.IsValid())
	assert.ErrorIs(t, c.MakeCurrent(), graphics.ErrDestroyed)

	d.calls = nil
	c.Destroy()
	assert.Empty(t, d.calls)
}

func TestRunLoop(t *testing.T) {
	c, err := newContext(newFakeDriver(), 64, 64, graphics.ES2)
	require.NoError(t, err)
	defer c.Destroy()

	n := 0
	c.RunLoop(func() bool { n++; return n < 3 })
	assert.Equal(t, 3, n)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "surface-created", SurfaceCreated.String())
	assert.Equal(t, "State(9)", State(9).String())
}
