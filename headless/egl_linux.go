//go:build linux

package headless

import (
	"unsafe"

	"github.com/richinsley/glcontext/glload"
	"github.com/richinsley/glcontext/graphics"
)

/*
#cgo LDFLAGS: -lEGL
#include <stdlib.h>
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Extension entry points are only reachable through eglGetProcAddress.
static PFNEGLQUERYDEVICESEXTPROC eglQueryDevicesEXT_ptr = NULL;
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglQueryDevicesEXT_ptr = (PFNEGLQUERYDEVICESEXTPROC) eglGetProcAddress("eglQueryDevicesEXT");
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_default_display() {
    return eglGetDisplay(EGL_DEFAULT_DISPLAY);
}

static EGLDisplay get_device_display(EGLint index) {
    EGLint num_devices = 0;
    EGLDeviceEXT *devices;
    EGLDisplay display = EGL_NO_DISPLAY;

    initialize_egl_extension_pointers();
    if (!eglQueryDevicesEXT_ptr || !eglGetPlatformDisplayEXT_ptr) {
        return EGL_NO_DISPLAY;
    }
    if (!eglQueryDevicesEXT_ptr(0, NULL, &num_devices) || index >= num_devices) {
        return EGL_NO_DISPLAY;
    }
    devices = (EGLDeviceEXT *) malloc(sizeof(EGLDeviceEXT) * num_devices);
    if (devices == NULL) {
        return EGL_NO_DISPLAY;
    }
    if (eglQueryDevicesEXT_ptr(num_devices, devices, &num_devices) && index < num_devices) {
        display = eglGetPlatformDisplayEXT_ptr(EGL_PLATFORM_DEVICE_EXT, devices[index], NULL);
    }
    free(devices);
    return display;
}
*/
import "C"

// Supported reports whether the embedded variant is compiled in.
const Supported = true

// New creates a pbuffer context of the given size on the default EGL display
// and makes it current on the calling thread.
func New(width, height int, version graphics.Version, opts ...Option) (*Context, error) {
	return newContext(eglDriver{}, width, height, version, opts...)
}

type eglDriver struct{}

func (eglDriver) getDisplay(device int) unsafe.Pointer {
	if device < 0 {
		return unsafe.Pointer(C.get_default_display())
	}
	graphics.Logger().Debug("egl device display requested", "device", device)
	return unsafe.Pointer(C.get_device_display(C.EGLint(device)))
}

func (eglDriver) initialize(dpy unsafe.Pointer) (int32, int32, bool) {
	var major, minor C.EGLint
	ok := C.eglInitialize(C.EGLDisplay(dpy), &major, &minor) == C.EGL_TRUE
	return int32(major), int32(minor), ok
}

func (eglDriver) chooseConfig(dpy unsafe.Pointer, attribs []int32) (unsafe.Pointer, int32, bool) {
	var config C.EGLConfig
	var n C.EGLint
	ok := C.eglChooseConfig(C.EGLDisplay(dpy), (*C.EGLint)(unsafe.Pointer(&attribs[0])), &config, 1, &n) == C.EGL_TRUE
	return unsafe.Pointer(config), int32(n), ok
}

func (eglDriver) createPbufferSurface(dpy, cfg unsafe.Pointer, attribs []int32) unsafe.Pointer {
	return unsafe.Pointer(C.eglCreatePbufferSurface(C.EGLDisplay(dpy), C.EGLConfig(cfg), (*C.EGLint)(unsafe.Pointer(&attribs[0]))))
}

func (eglDriver) createContext(dpy, cfg unsafe.Pointer, attribs []int32) unsafe.Pointer {
	return unsafe.Pointer(C.eglCreateContext(C.EGLDisplay(dpy), C.EGLConfig(cfg), C.EGLContext(C.EGL_NO_CONTEXT), (*C.EGLint)(unsafe.Pointer(&attribs[0]))))
}

func (eglDriver) makeCurrent(dpy, draw, read, ctx unsafe.Pointer) bool {
	return C.eglMakeCurrent(C.EGLDisplay(dpy), C.EGLSurface(draw), C.EGLSurface(read), C.EGLContext(ctx)) == C.EGL_TRUE
}

func (eglDriver) destroyContext(dpy, ctx unsafe.Pointer) bool {
	return C.eglDestroyContext(C.EGLDisplay(dpy), C.EGLContext(ctx)) == C.EGL_TRUE
}

func (eglDriver) destroySurface(dpy, surf unsafe.Pointer) bool {
	return C.eglDestroySurface(C.EGLDisplay(dpy), C.EGLSurface(surf)) == C.EGL_TRUE
}

func (eglDriver) terminate(dpy unsafe.Pointer) bool {
	return C.eglTerminate(C.EGLDisplay(dpy)) == C.EGL_TRUE
}

func (eglDriver) getError() int32 {
	return int32(C.eglGetError())
}

func (eglDriver) loadGL(v graphics.Version) error {
	return glload.Load(v, getProcAddress)
}

func getProcAddress(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return unsafe.Pointer(C.eglGetProcAddress(cname))
}
