// Package glcontext creates OpenGL ES contexts for the current target behind
// a single interface. A context is either a GLFW window (desktop), an iOS
// EAGLContext (mobile) or an EGL pbuffer (embedded and headless servers).
//
// Every GL call, including context creation, must happen on a thread locked
// with runtime.LockOSThread. GLFW additionally requires the main thread.
package glcontext

import (
	"fmt"

	"github.com/richinsley/glcontext/glfwcontext"
	"github.com/richinsley/glcontext/graphics"
	"github.com/richinsley/glcontext/headless"
	"github.com/richinsley/glcontext/mobilecontext"
)

// Factory creates contexts. Windowed contexts share the GLFW library through
// the pool the factory was given.
type Factory struct {
	pool   *glfwcontext.Pool
	device int
}

// Option configures a Factory.
type Option func(*Factory)

// WithDevice makes embedded contexts use the EGL device with the given index.
// See headless.WithDevice.
func WithDevice(index int) Option {
	return func(f *Factory) { f.device = index }
}

// NewFactory returns a factory creating windowed contexts through pool. The
// pool may be nil when no windowed context will be requested.
func NewFactory(pool *glfwcontext.Pool, opts ...Option) *Factory {
	f := &Factory{pool: pool, device: -1}
	for _, o := range opts {
		o(f)
	}
	return f
}

// AutoKind is the kind Auto resolves to on this target.
const AutoKind = autoKind

// Available reports whether contexts of kind can be created on this target.
func Available(kind graphics.Kind) bool {
	switch kind {
	case graphics.Auto:
		return Available(autoKind)
	case graphics.Windowed:
		return glfwcontext.Supported
	case graphics.Mobile:
		return mobilecontext.Supported
	case graphics.Embedded:
		return headless.Supported
	}
	return false
}

// Create returns a new context of the given kind, current on the calling
// thread. name is the window title; a windowed context is only shown when
// name is not empty. On failure the returned handle is nil.
func (f *Factory) Create(kind graphics.Kind, name string, width, height int, version graphics.Version) (*Handle, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: context size %dx%d", graphics.ErrInvalidArgument, width, height)
	}
	if !version.Valid() {
		return nil, fmt.Errorf("%w: %v", graphics.ErrInvalidArgument, version)
	}
	if kind == graphics.Auto {
		kind = autoKind
	}
	graphics.Logger().Debug("creating context",
		"kind", kind, "width", width, "height", height, "version", version)

	var (
		ctx graphics.Context
		err error
	)
	switch kind {
	case graphics.Windowed:
		ctx, err = f.newWindowed(name, width, height, version)
	case graphics.Mobile:
		ctx, err = newMobile(width, height, version)
	case graphics.Embedded:
		ctx, err = f.newEmbedded(width, height, version)
	default:
		return nil, fmt.Errorf("%w: %v", graphics.ErrInvalidArgument, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s context: %w", kind, err)
	}
	return newHandle(ctx), nil
}

func newMobile(width, height int, version graphics.Version) (graphics.Context, error) {
	c, err := mobilecontext.New(width, height, version)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (f *Factory) newEmbedded(width, height int, version graphics.Version) (graphics.Context, error) {
	c, err := headless.New(width, height, version, headless.WithDevice(f.device))
	if err != nil {
		return nil, err
	}
	return c, nil
}
