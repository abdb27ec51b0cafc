package glfwcontext

import (
	"errors"
	"fmt"

	"github.com/richinsley/glcontext/graphics"
)

// window is the part of a native window a Context drives. Callbacks receive
// the window they fired for; the pool maps it back to its owner.
type window interface {
	makeCurrent() error
	framebufferSize() (width, height int, err error)
	// setFramebufferSizeCallback installs f. A nil f removes the callback.
	setFramebufferSizeCallback(f func(w window, width, height int))
	setCursorPosCallback(f func(w window, x, y float64))
	show() error
	setSize(width, height int) error
	shouldClose() bool
	swapBuffers() error
	setCursorPos(x, y float64) error
	cursorPos() (x, y float64, err error)
	setCursorVisible(visible bool) error
	destroy() error
}

// system holds the windowing library calls not tied to one window.
type system interface {
	// createWindow creates a hidden window whose context matches version.
	createWindow(name string, width, height int, version graphics.Version) (window, error)
	// loadGL resolves GL entry points for the current context.
	loadGL(version graphics.Version) error
	// events processes pending events, first blocking for one if wait is set.
	events(wait bool) error
	viewport(x, y, width, height int32)
}

// Context is a window and its GL ES context. The window stays hidden unless
// it was given a name.
type Context struct {
	pool     *Pool
	sys      system
	window   window
	geometry graphics.Geometry
	visible  bool
	wait     bool
	acquired bool
	cursor   graphics.CursorFunc
}

func newContext(sys system, pool *Pool, name string, width, height int, version graphics.Version) (*Context, error) {
	if err := pool.Acquire(); err != nil {
		return nil, err
	}
	c := &Context{
		pool:     pool,
		sys:      sys,
		acquired: true,
		geometry: graphics.NewGeometry(width, height),
	}
	if err := c.open(name, version); err != nil {
		c.Destroy()
		return nil, err
	}
	graphics.Logger().Info("glfw context created",
		"name", name, "width", width, "height", height, "version", version)
	return c, nil
}

func (c *Context) open(name string, version graphics.Version) error {
	const op = "glfwcontext.New"
	win, err := c.sys.createWindow(name, c.geometry.Width, c.geometry.Height, version)
	if err != nil {
		return nativeError(op, "glfwCreateWindow", err)
	}
	c.window = win
	if err := c.pool.insert(win, c); err != nil {
		return &graphics.Error{Op: op, Call: "pool insert", Err: err}
	}
	win.setFramebufferSizeCallback(c.pool.onFramebufferSize)

	if err := win.makeCurrent(); err != nil {
		return nativeError(op, "glfwMakeContextCurrent", err)
	}
	if err := c.sys.loadGL(version); err != nil {
		return &graphics.Error{Op: op, Call: "gles2.Init", Err: err}
	}

	// The framebuffer can be larger than the window on high density displays.
	fbw, fbh, err := win.framebufferSize()
	if err != nil {
		return nativeError(op, "glfwGetFramebufferSize", err)
	}
	c.framebufferSize(fbw, fbh)

	if name != "" {
		if err := win.show(); err != nil {
			return nativeError(op, "glfwShowWindow", err)
		}
		c.visible = true
	}
	return nil
}

// nativeError attaches op to a failed window system call. Errors that
// already carry a call name and code keep them.
func nativeError(op, call string, err error) error {
	var gerr *graphics.Error
	if errors.As(err, &gerr) {
		return &graphics.Error{Op: op, Call: gerr.Call, Code: gerr.Code, Err: gerr.Err}
	}
	return &graphics.Error{Op: op, Call: call, Err: err}
}

func warn(err error) {
	if err != nil {
		graphics.Logger().Warn("glfw call failed", "err", err)
	}
}

func (p *Pool) onFramebufferSize(w window, width, height int) {
	p.dispatchFramebufferSize(w, width, height)
}

func (p *Pool) onCursorPos(w window, x, y float64) {
	p.dispatchCursorPos(w, x, y)
}

// framebufferSize letterboxes the logical size into the new framebuffer and
// points the GL viewport at the result.
func (c *Context) framebufferSize(width, height int) {
	c.geometry = c.geometry.Letterbox(width, height)
	graphics.Logger().Debug("framebuffer resized",
		"width", width, "height", height, "scale", c.geometry.Sx, "tx", c.geometry.Tx, "ty", c.geometry.Ty)
	if err := c.MakeCurrent(); err != nil {
		warn(err)
		return
	}
	c.sys.viewport(c.geometry.Viewport())
}

func (c *Context) cursorPos(x, y float64) {
	if c.cursor != nil {
		c.cursor(x, y)
	}
}

func (c *Context) Kind() graphics.Kind { return graphics.Windowed }

func (c *Context) IsValid() bool { return c.window != nil }

// MakeCurrent makes the context current for the calling goroutine's thread.
func (c *Context) MakeCurrent() error {
	if c.window == nil {
		return graphics.ErrDestroyed
	}
	if err := c.window.makeCurrent(); err != nil {
		return nativeError("glfwcontext.MakeCurrent", "glfwMakeContextCurrent", err)
	}
	return nil
}

// HasDisplay reports whether the window was shown.
func (c *Context) HasDisplay() bool { return c.visible }

// Resize changes the window size and the logical geometry. The viewport is
// recomputed when the new framebuffer size is reported.
func (c *Context) Resize(width, height int) {
	if c.window == nil {
		return
	}
	c.geometry = graphics.NewGeometry(width, height)
	if err := c.window.setSize(width, height); err != nil {
		warn(nativeError("glfwcontext.Resize", "glfwSetWindowSize", err))
	}
}

// RunLoop waits for or polls events, calls f and swaps buffers until f
// returns false or the window is asked to close.
func (c *Context) RunLoop(f graphics.RenderFunc) {
	const op = "glfwcontext.RunLoop"
	for ok := true; ok && c.window != nil && !c.window.shouldClose(); {
		if err := c.sys.events(c.wait); err != nil {
			warn(nativeError(op, "glfwPollEvents", err))
			return
		}
		ok = f()
		if c.window == nil {
			return
		}
		if err := c.window.swapBuffers(); err != nil {
			warn(nativeError(op, "glfwSwapBuffers", err))
			return
		}
	}
}

func (c *Context) Geometry() graphics.Geometry { return c.geometry }

// SetCursorCallback installs f as the cursor delegate. A nil f removes it.
func (c *Context) SetCursorCallback(f graphics.CursorFunc) {
	c.cursor = f
	if c.window == nil {
		return
	}
	if f == nil {
		c.window.setCursorPosCallback(nil)
		return
	}
	c.window.setCursorPosCallback(c.pool.onCursorPos)
}

func (c *Context) SetCursor(x, y float64) {
	if c.window == nil {
		return
	}
	if err := c.window.setCursorPos(x, y); err != nil {
		warn(nativeError("glfwcontext.SetCursor", "glfwSetCursorPos", err))
	}
}

func (c *Context) Cursor() (x, y float64) {
	if c.window == nil {
		return 0, 0
	}
	x, y, err := c.window.cursorPos()
	if err != nil {
		warn(nativeError("glfwcontext.Cursor", "glfwGetCursorPos", err))
		return 0, 0
	}
	return x, y
}

func (c *Context) SetCursorVisibility(visible bool) {
	if c.window == nil {
		return
	}
	if err := c.window.setCursorVisible(visible); err != nil {
		warn(nativeError("glfwcontext.SetCursorVisibility", "glfwSetInputMode", err))
	}
}

// SetWait selects between blocking on events and polling in RunLoop.
func (c *Context) SetWait(wait bool) { c.wait = wait }

// Destroy unregisters and destroys the window, then drops the library
// reference. The library is terminated once no window is left.
func (c *Context) Destroy() {
	if c.window != nil {
		c.pool.remove(c.window, c)
		if err := c.window.destroy(); err != nil {
			warn(nativeError("glfwcontext.Destroy", "glfwDestroyWindow", err))
		}
		c.window = nil
		graphics.Logger().Info("glfw context destroyed")
	}
	if c.acquired {
		c.pool.Release()
		c.acquired = false
	}
	c.visible = false
}

func (c *Context) String() string {
	return fmt.Sprintf("glfwcontext(%dx%d visible=%t)", c.geometry.Width, c.geometry.Height, c.visible)
}
