//go:build !ios && !android && !noglfw

package glfwcontext

import (
	"errors"

	"github.com/go-gl/gl/v3.1/gles2"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glcontext/glload"
	"github.com/richinsley/glcontext/graphics"
)

// Supported reports whether the windowed variant is compiled in.
const Supported = true

type glfwLibrary struct{}

// GLFW returns the Library backed by glfw.Init and glfw.Terminate. Like every
// GLFW call, both must run on the main thread.
func GLFW() Library { return glfwLibrary{} }

func (glfwLibrary) Init() error {
	if err := glfw.Init(); err != nil {
		glfw.Terminate()
		return err
	}
	graphics.Logger().Info("glfw initialized")
	return nil
}

func (glfwLibrary) Terminate() {
	glfw.Terminate()
	graphics.Logger().Info("glfw terminated")
}

// New creates a window of the given size through pool and makes its context
// current on the calling thread.
func New(pool *Pool, name string, width, height int, version graphics.Version) (*Context, error) {
	return newContext(glfwSystem{}, pool, name, width, height, version)
}

// guard runs f and turns the panics go-gl raises for GLFW errors into an
// error. Any other panic is re-raised.
func guard(call string, f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		var gerr *glfw.Error
		if !ok || !errors.As(e, &gerr) {
			panic(r)
		}
		err = &graphics.Error{Call: call, Code: int(gerr.Code), Err: e}
	}()
	f()
	return nil
}

type glfwSystem struct{}

func (glfwSystem) createWindow(name string, width, height int, version graphics.Version) (window, error) {
	var win *glfw.Window
	var cerr error
	err := guard("glfwCreateWindow", func() {
		glfw.DefaultWindowHints()
		versionHints(version)
		glfw.WindowHint(glfw.Visible, glfw.False)
		win, cerr = glfw.CreateWindow(width, height, name, nil, nil)
	})
	if err != nil {
		return nil, err
	}
	if cerr != nil {
		return nil, cerr
	}
	return &glfwWindow{win: win}, nil
}

func (glfwSystem) loadGL(version graphics.Version) error {
	return glload.Load(version, glfw.GetProcAddress)
}

func (glfwSystem) events(wait bool) error {
	if wait {
		return guard("glfwWaitEvents", glfw.WaitEvents)
	}
	return guard("glfwPollEvents", glfw.PollEvents)
}

func (glfwSystem) viewport(x, y, width, height int32) {
	gles2.Viewport(x, y, width, height)
}

type glfwWindow struct {
	win *glfw.Window
}

func (w *glfwWindow) makeCurrent() error {
	return guard("glfwMakeContextCurrent", w.win.MakeContextCurrent)
}

func (w *glfwWindow) framebufferSize() (width, height int, err error) {
	err = guard("glfwGetFramebufferSize", func() { width, height = w.win.GetFramebufferSize() })
	return width, height, err
}

func (w *glfwWindow) setFramebufferSizeCallback(f func(w window, width, height int)) {
	if f == nil {
		w.win.SetFramebufferSizeCallback(nil)
		return
	}
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) { f(w, width, height) })
}

func (w *glfwWindow) setCursorPosCallback(f func(w window, x, y float64)) {
	if f == nil {
		w.win.SetCursorPosCallback(nil)
		return
	}
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) { f(w, x, y) })
}

func (w *glfwWindow) show() error {
	return guard("glfwShowWindow", w.win.Show)
}

func (w *glfwWindow) setSize(width, height int) error {
	return guard("glfwSetWindowSize", func() { w.win.SetSize(width, height) })
}

func (w *glfwWindow) shouldClose() bool { return w.win.ShouldClose() }

func (w *glfwWindow) swapBuffers() error {
	return guard("glfwSwapBuffers", w.win.SwapBuffers)
}

func (w *glfwWindow) setCursorPos(x, y float64) error {
	return guard("glfwSetCursorPos", func() { w.win.SetCursorPos(x, y) })
}

func (w *glfwWindow) cursorPos() (x, y float64, err error) {
	err = guard("glfwGetCursorPos", func() { x, y = w.win.GetCursorPos() })
	return x, y, err
}

func (w *glfwWindow) setCursorVisible(visible bool) error {
	mode := glfw.CursorHidden
	if visible {
		mode = glfw.CursorNormal
	}
	return guard("glfwSetInputMode", func() { w.win.SetInputMode(glfw.CursorMode, mode) })
}

func (w *glfwWindow) destroy() error {
	return guard("glfwDestroyWindow", w.win.Destroy)
}
