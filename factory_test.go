package glcontext

import (
	"sync"
	"testing"

	"github.com/richinsley/glcontext/glfwcontext"
	"github.com/richinsley/glcontext/graphics"
	"github.com/richinsley/glcontext/headless"
	"github.com/richinsley/glcontext/mobilecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRejectsInvalidArguments(t *testing.T) {
	f := NewFactory(nil)
	tests := []struct {
		name          string
		kind          graphics.Kind
		width, height int
		version       graphics.Version
	}{
		{"zero width", graphics.Embedded, 0, 480, graphics.ES2},
		{"negative height", graphics.Embedded, 640, -1, graphics.ES2},
		{"bad version", graphics.Embedded, 640, 480, graphics.Version(7)},
		{"bad kind", graphics.Kind(42), 640, 480, graphics.ES2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := f.Create(tt.kind, "", tt.width, tt.height, tt.version)
			assert.Nil(t, h)
			assert.ErrorIs(t, err, graphics.ErrInvalidArgument)
		})
	}
}

func TestUnavailableKind(t *testing.T) {
	f := NewFactory(glfwcontext.NewPool(glfwcontext.GLFW()))
	for _, kind := range []graphics.Kind{graphics.Windowed, graphics.Mobile, graphics.Embedded} {
		if Available(kind) {
			continue
		}
		t.Run(kind.String(), func(t *testing.T) {
			for i := 0; i < 3; i++ {
				h, err := f.Create(kind, "", 640, 480, graphics.ES2)
				assert.Nil(t, h)
				assert.ErrorIs(t, err, graphics.ErrUnavailable)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, glfwcontext.Supported, Available(graphics.Windowed))
	assert.Equal(t, mobilecontext.Supported, Available(graphics.Mobile))
	assert.Equal(t, headless.Supported, Available(graphics.Embedded))
	assert.Equal(t, Available(AutoKind), Available(graphics.Auto))
	assert.False(t, Available(graphics.Kind(42)))
	assert.NotEqual(t, graphics.Auto, AutoKind)
}

func TestWithDevice(t *testing.T) {
	assert.Equal(t, -1, NewFactory(nil).device)
	assert.Equal(t, 1, NewFactory(nil, WithDevice(1)).device)
}

type fakeContext struct {
	graphics.NoCursor
	destroyed int
}

func (c *fakeContext) Kind() graphics.Kind           { return graphics.Embedded }
func (c *fakeContext) IsValid() bool                 { return c.destroyed == 0 }
func (c *fakeContext) MakeCurrent() error            { return nil }
func (c *fakeContext) HasDisplay() bool              { return false }
func (c *fakeContext) Resize(width, height int)      {}
func (c *fakeContext) RunLoop(f graphics.RenderFunc) {}
func (c *fakeContext) Geometry() graphics.Geometry   { return graphics.NewGeometry(1, 1) }
func (c *fakeContext) Destroy()                      { c.destroyed++ }

func TestHandleDestroysWithLastHolder(t *testing.T) {
	ctx := &fakeContext{}
	h := newHandle(ctx)
	var _ graphics.Context = h

	require.True(t, h.Retain())
	require.True(t, h.Retain())
	assert.Equal(t, 3, h.Refs())

	h.Release()
	h.Destroy()
	assert.Zero(t, ctx.destroyed)
	assert.True(t, h.IsValid())

	h.Release()
	assert.Equal(t, 1, ctx.destroyed)
	assert.Zero(t, h.Refs())

	h.Release()
	assert.False(t, h.Retain())
	assert.Equal(t, 1, ctx.destroyed)
}

func TestHandleConcurrentHolders(t *testing.T) {
	ctx := &fakeContext{}
	h := newHandle(ctx)

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		require.True(t, h.Retain())
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, h.Refs())
	assert.Zero(t, ctx.destroyed)

	h.Release()
	assert.Equal(t, 1, ctx.destroyed)
}
