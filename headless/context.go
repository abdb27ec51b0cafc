// Package headless implements the embedded context variant: an OpenGL ES
// context on the default EGL display rendering into an off-screen pbuffer.
package headless

import (
	"fmt"
	"unsafe"

	"github.com/richinsley/glcontext/graphics"
)

// State is a step of the EGL handshake.
type State int

const (
	Uninitialized State = iota
	DisplayAcquired
	Initialized
	ConfigChosen
	SurfaceCreated
	ContextCreated
	Current
	Destroyed
)

var stateNames = [...]string{
	"uninitialized", "display-acquired", "initialized", "config-chosen",
	"surface-created", "context-created", "current", "destroyed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Option configures New.
type Option func(*config)

type config struct {
	device int
}

// WithDevice selects the EGL device with the given index through
// EGL_EXT_device_enumeration instead of EGL_DEFAULT_DISPLAY. A negative
// index keeps the default display.
func WithDevice(index int) Option {
	return func(c *config) { c.device = index }
}

// Context is an EGL pbuffer context.
type Context struct {
	graphics.NoCursor

	drv      driver
	display  unsafe.Pointer
	config   unsafe.Pointer
	surface  unsafe.Pointer
	context  unsafe.Pointer
	state    State
	geometry graphics.Geometry
	version  graphics.Version
}

func newContext(drv driver, width, height int, version graphics.Version, opts ...Option) (*Context, error) {
	cfg := config{device: -1}
	for _, o := range opts {
		o(&cfg)
	}
	c := &Context{
		drv:      drv,
		geometry: graphics.NewGeometry(width, height),
		version:  version,
	}
	if err := c.create(cfg); err != nil {
		c.Destroy()
		return nil, err
	}
	graphics.Logger().Info("headless context created",
		"width", width, "height", height, "version", version)
	return c, nil
}

func (c *Context) create(cfg config) error {
	c.display = c.drv.getDisplay(cfg.device)
	if err := c.check("eglGetDisplay", c.display != nil); err != nil {
		return err
	}
	c.advance(DisplayAcquired)

	major, minor, ok := c.drv.initialize(c.display)
	if err := c.check("eglInitialize", ok); err != nil {
		return err
	}
	graphics.Logger().Info("egl initialized", "major", major, "minor", minor)
	c.advance(Initialized)

	renderable := int32(eglOpenGLES2Bit)
	if c.version == graphics.ES3 {
		renderable = eglOpenGLES3Bit
	}
	configAttribs := []int32{
		eglRenderableType, renderable,
		eglSurfaceType, eglPbufferBit,
		eglRedSize, 8,
		eglGreenSize, 8,
		eglBlueSize, 8,
		eglAlphaSize, 8,
		eglDepthSize, 16,
		eglNone,
	}
	var n int32
	c.config, n, ok = c.drv.chooseConfig(c.display, configAttribs)
	if err := c.check("eglChooseConfig", ok); err != nil {
		return err
	}
	if n == 0 {
		return &graphics.Error{Op: "headless.New", Call: "eglChooseConfig", Err: ErrNoConfig}
	}
	c.advance(ConfigChosen)

	surfaceAttribs := []int32{
		eglWidth, int32(c.geometry.Width),
		eglHeight, int32(c.geometry.Height),
		eglNone,
	}
	c.surface = c.drv.createPbufferSurface(c.display, c.config, surfaceAttribs)
	if err := c.check("eglCreatePbufferSurface", c.surface != nil); err != nil {
		return err
	}
	c.advance(SurfaceCreated)

	contextAttribs := []int32{
		eglContextClientVersion, int32(c.version.Major()),
		eglNone,
	}
	c.context = c.drv.createContext(c.display, c.config, contextAttribs)
	if err := c.check("eglCreateContext", c.context != nil); err != nil {
		return err
	}
	c.advance(ContextCreated)

	ok = c.drv.makeCurrent(c.display, c.surface, c.surface, c.context)
	if err := c.check("eglMakeCurrent", ok); err != nil {
		return err
	}
	c.advance(Current)

	if err := c.drv.loadGL(c.version); err != nil {
		return &graphics.Error{Op: "headless.New", Call: "gles2.Init", Err: err}
	}
	return nil
}

// check reads the EGL error for the construction call that just ran. Both
// the error code and ok must indicate success.
func (c *Context) check(call string, ok bool) error {
	return c.eglError("headless.New", call, ok)
}

// eglError reads the EGL error for call. A call that failed without setting
// an EGL error is reported as ErrInvalidHandle.
func (c *Context) eglError(op, call string, ok bool) error {
	code := c.drv.getError()
	if code == eglSuccess && ok {
		return nil
	}
	if code == eglSuccess {
		return &graphics.Error{Op: op, Call: call, Err: graphics.ErrInvalidHandle}
	}
	return &graphics.Error{Op: op, Call: call, Code: int(code), Err: EGLError(code)}
}

func (c *Context) advance(s State) {
	c.state = s
	graphics.Logger().Debug("egl handshake", "state", s)
}

// State reports how far the handshake got.
func (c *Context) State() State { return c.state }

func (c *Context) Kind() graphics.Kind { return graphics.Embedded }

func (c *Context) IsValid() bool { return c.context != nil }

// MakeCurrent binds the pbuffer and context to the calling thread.
func (c *Context) MakeCurrent() error {
	if !c.IsValid() {
		return graphics.ErrDestroyed
	}
	ok := c.drv.makeCurrent(c.display, c.surface, c.surface, c.context)
	return c.eglError("headless.MakeCurrent", "eglMakeCurrent", ok)
}

// HasDisplay is always false: a pbuffer is never visible.
func (c *Context) HasDisplay() bool { return false }

// Resize is a no-op; the pbuffer size is fixed at construction.
func (c *Context) Resize(width, height int) {}

// RunLoop calls f until it returns false. There is no event source, frame
// pacing or buffer swap.
func (c *Context) RunLoop(f graphics.RenderFunc) {
	for f() {
	}
}

func (c *Context) Geometry() graphics.Geometry { return c.geometry }

// Destroy tears the handshake down in reverse. Each step only runs for the
// handles that exist, so a partially constructed context unwinds safely.
func (c *Context) Destroy() {
	if c.state == Destroyed {
		return
	}
	if c.context != nil {
		if !c.drv.destroyContext(c.display, c.context) {
			graphics.Logger().Warn("eglDestroyContext failed", "err", EGLError(c.drv.getError()))
		}
		c.context = nil
	}
	if c.surface != nil {
		if !c.drv.destroySurface(c.display, c.surface) {
			graphics.Logger().Warn("eglDestroySurface failed", "err", EGLError(c.drv.getError()))
		}
		c.surface = nil
	}
	if c.display != nil {
		c.drv.makeCurrent(c.display, nil, nil, nil)
		if !c.drv.terminate(c.display) {
			graphics.Logger().Warn("eglTerminate failed", "err", EGLError(c.drv.getError()))
		}
		c.display = nil
	}
	c.config = nil
	c.state = Destroyed
	graphics.Logger().Info("headless context destroyed")
}
