// Package mobilecontext implements the mobile context variant: an iOS
// EAGLContext rendering into a framebuffer object.
package mobilecontext

import (
	"fmt"

	"github.com/richinsley/glcontext/graphics"
)

// State is a step of context construction.
type State int

const (
	Uninitialized State = iota
	ContextCreated
	Current
	SurfaceCreated
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case ContextCreated:
		return "context-created"
	case Current:
		return "current"
	case SurfaceCreated:
		return "surface-created"
	case Destroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// driver is the EAGL and GL surface work the context needs.
type driver interface {
	// createContext returns an owned EAGLContext reference, or 0.
	createContext(api int) uintptr
	// makeCurrent binds ctx and the framebuffer fbo. A zero ctx clears the
	// current context.
	makeCurrent(ctx uintptr, fbo uint32) bool
	release(ctx uintptr)
	// glVersion returns the GL_VERSION string of the current context, or ""
	// when GL is not answering.
	glVersion() string
	// createSurface allocates a framebuffer with an RGBA8 colour renderbuffer
	// and returns the names together with the completeness status.
	createSurface(width, height int) (fbo, rbo, status uint32)
	deleteSurface(fbo, rbo uint32)
}

const framebufferComplete = 0x8CD5

// Context is an EAGLContext with an off-screen framebuffer.
type Context struct {
	graphics.NoCursor

	drv      driver
	ctx      uintptr
	fbo, rbo uint32
	state    State
	geometry graphics.Geometry
	version  graphics.Version
}

func newContext(drv driver, width, height int, version graphics.Version) (*Context, error) {
	c := &Context{
		drv:      drv,
		geometry: graphics.NewGeometry(width, height),
		version:  version,
	}
	if err := c.create(); err != nil {
		c.Destroy()
		return nil, err
	}
	graphics.Logger().Info("eagl context created",
		"width", width, "height", height, "version", version)
	return c, nil
}

func (c *Context) create() error {
	const op = "mobilecontext.New"

	c.ctx = c.drv.createContext(c.version.Major())
	if c.ctx == 0 {
		return &graphics.Error{Op: op, Call: "EAGLContext initWithAPI", Err: graphics.ErrInvalidHandle}
	}
	c.state = ContextCreated

	if !c.drv.makeCurrent(c.ctx, 0) {
		return &graphics.Error{Op: op, Call: "EAGLContext setCurrentContext"}
	}
	c.state = Current

	version := c.drv.glVersion()
	if version == "" {
		return &graphics.Error{Op: op, Call: "glGetString", Err: graphics.ErrInvalidHandle}
	}
	graphics.Logger().Debug("eagl context current", "gl", version)

	var status uint32
	c.fbo, c.rbo, status = c.drv.createSurface(c.geometry.Width, c.geometry.Height)
	if status != framebufferComplete {
		return &graphics.Error{Op: op, Call: "glCheckFramebufferStatus", Code: int(status)}
	}
	c.state = SurfaceCreated
	return nil
}

// State reports how far construction got.
func (c *Context) State() State { return c.state }

func (c *Context) Kind() graphics.Kind { return graphics.Mobile }

func (c *Context) IsValid() bool { return c.ctx != 0 }

func (c *Context) MakeCurrent() error {
	if !c.IsValid() {
		return graphics.ErrDestroyed
	}
	if !c.drv.makeCurrent(c.ctx, c.fbo) {
		return &graphics.Error{Op: "mobilecontext.MakeCurrent", Call: "EAGLContext setCurrentContext"}
	}
	return nil
}

func (c *Context) HasDisplay() bool { return false }

func (c *Context) Resize(width, height int) {}

func (c *Context) RunLoop(f graphics.RenderFunc) {
	for f() {
	}
}

func (c *Context) Geometry() graphics.Geometry { return c.geometry }

// Destroy deletes the framebuffer, clears the current context and releases
// the EAGLContext.
func (c *Context) Destroy() {
	if c.state == Destroyed {
		return
	}
	if c.fbo != 0 || c.rbo != 0 {
		// The names belong to c.ctx, which must be current to delete them.
		if c.drv.makeCurrent(c.ctx, 0) {
			c.drv.deleteSurface(c.fbo, c.rbo)
		} else {
			graphics.Logger().Warn("eagl framebuffer leaked", "fbo", c.fbo, "rbo", c.rbo)
		}
		c.fbo, c.rbo = 0, 0
	}
	if c.ctx != 0 {
		c.drv.makeCurrent(0, 0)
		c.drv.release(c.ctx)
		c.ctx = 0
	}
	c.state = Destroyed
	graphics.Logger().Info("eagl context destroyed")
}
