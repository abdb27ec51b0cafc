//go:build ios

package mobilecontext

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework OpenGLES -framework CoreFoundation -framework Foundation
#include "eagl_ios.h"
*/
import "C"

import "github.com/richinsley/glcontext/graphics"

// Supported reports whether the mobile variant is compiled in.
const Supported = true

// New creates an EAGLContext for the API matching version, makes it current
// and attaches a framebuffer of the given size.
//
// GL entry points come from the OpenGLES framework this package links, not
// from a loader, so callers issue GL calls through bindings of their own.
func New(width, height int, version graphics.Version) (*Context, error) {
	return newContext(eaglDriver{}, width, height, version)
}

type eaglDriver struct{}

func (eaglDriver) createContext(api int) uintptr {
	return uintptr(C.glc_createContext(C.int(api)))
}

func (eaglDriver) makeCurrent(ctx uintptr, fbo uint32) bool {
	if C.glc_setCurrentContext(C.CFTypeRef(ctx)) == 0 {
		return false
	}
	if ctx != 0 && fbo != 0 {
		C.glc_bindFramebuffer(C.uint(fbo))
	}
	return true
}

func (eaglDriver) release(ctx uintptr) {
	C.glc_releaseContext(C.CFTypeRef(ctx))
}

func (eaglDriver) glVersion() string {
	v := C.glc_version()
	if v == nil {
		return ""
	}
	return C.GoString(v)
}

func (eaglDriver) createSurface(width, height int) (fbo, rbo, status uint32) {
	var f, r C.uint
	s := C.glc_createSurface(C.int(width), C.int(height), &f, &r)
	return uint32(f), uint32(r), uint32(s)
}

func (eaglDriver) deleteSurface(fbo, rbo uint32) {
	C.glc_deleteSurface(C.uint(fbo), C.uint(rbo))
}
