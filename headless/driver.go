package headless

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/richinsley/glcontext/graphics"
)

// driver is the slice of EGL the context handshake needs. Handles are opaque;
// nil is EGL_NO_DISPLAY, EGL_NO_SURFACE and EGL_NO_CONTEXT alike.
type driver interface {
	// getDisplay returns the default display for device < 0, otherwise the
	// display of the enumerated EGL device with that index.
	getDisplay(device int) unsafe.Pointer
	initialize(dpy unsafe.Pointer) (major, minor int32, ok bool)
	chooseConfig(dpy unsafe.Pointer, attribs []int32) (cfg unsafe.Pointer, n int32, ok bool)
	createPbufferSurface(dpy, cfg unsafe.Pointer, attribs []int32) unsafe.Pointer
	createContext(dpy, cfg unsafe.Pointer, attribs []int32) unsafe.Pointer
	makeCurrent(dpy, draw, read, ctx unsafe.Pointer) bool
	destroyContext(dpy, ctx unsafe.Pointer) bool
	destroySurface(dpy, surf unsafe.Pointer) bool
	terminate(dpy unsafe.Pointer) bool
	getError() int32
	// loadGL resolves the GL ES entry points for the current context.
	loadGL(v graphics.Version) error
}

const (
	eglSuccess = 0x3000

	eglAlphaSize            = 0x3021
	eglBlueSize             = 0x3022
	eglGreenSize            = 0x3023
	eglRedSize              = 0x3024
	eglDepthSize            = 0x3025
	eglSurfaceType          = 0x3033
	eglNone                 = 0x3038
	eglRenderableType       = 0x3040
	eglHeight               = 0x3056
	eglWidth                = 0x3057
	eglContextClientVersion = 0x3098

	eglPbufferBit   = 0x0001
	eglOpenGLES2Bit = 0x0004
	eglOpenGLES3Bit = 0x0040
)

// ErrNoConfig reports that no EGL config matches the requested attributes.
var ErrNoConfig = errors.New("no matching EGL config")

// EGLError is an eglGetError code.
type EGLError int32

var eglErrorNames = map[EGLError]string{
	0x3000: "EGL_SUCCESS",
	0x3001: "EGL_NOT_INITIALIZED",
	0x3002: "EGL_BAD_ACCESS",
	0x3003: "EGL_BAD_ALLOC",
	0x3004: "EGL_BAD_ATTRIBUTE",
	0x3005: "EGL_BAD_CONFIG",
	0x3006: "EGL_BAD_CONTEXT",
	0x3007: "EGL_BAD_CURRENT_SURFACE",
	0x3008: "EGL_BAD_DISPLAY",
	0x3009: "EGL_BAD_MATCH",
	0x300a: "EGL_BAD_NATIVE_PIXMAP",
	0x300b: "EGL_BAD_NATIVE_WINDOW",
	0x300c: "EGL_BAD_PARAMETER",
	0x300d: "EGL_BAD_SURFACE",
	0x300e: "EGL_CONTEXT_LOST",
}

func (e EGLError) Error() string {
	if name, ok := eglErrorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("unknown EGL error 0x%x", int32(e))
}
