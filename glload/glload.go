// Package glload initialises the go-gl GL ES bindings for the current
// context.
//
// The bindings cover the whole ES 3.1 API and refuse to load when any core
// entry point is missing, which rules out ES 2.0 and 3.0 drivers as well as
// desktop GL on macOS. Load binds entry points the driver lacks to a stub
// instead and only fails when one this module calls is absent.
package glload

/*
static void glc_unsupported(void) {}
static void *glc_unsupportedProc(void) { return (void *)glc_unsupported; }
*/
import "C"

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.1/gles2"
	"github.com/richinsley/glcontext/graphics"
)

// ProcAddrFunc resolves a GL entry point by name, returning nil when the
// driver does not provide it.
type ProcAddrFunc func(name string) unsafe.Pointer

var es2 = []string{
	"glActiveTexture",
	"glAttachShader",
	"glBindAttribLocation",
	"glBindBuffer",
	"glBindFramebuffer",
	"glBindRenderbuffer",
	"glBindTexture",
	"glBufferData",
	"glCheckFramebufferStatus",
	"glClear",
	"glClearColor",
	"glCompileShader",
	"glCreateProgram",
	"glCreateShader",
	"glDeleteBuffers",
	"glDeleteFramebuffers",
	"glDeleteProgram",
	"glDeleteRenderbuffers",
	"glDeleteShader",
	"glDeleteTextures",
	"glDisableVertexAttribArray",
	"glDrawArrays",
	"glEnableVertexAttribArray",
	"glFramebufferRenderbuffer",
	"glFramebufferTexture2D",
	"glGenBuffers",
	"glGenFramebuffers",
	"glGenRenderbuffers",
	"glGenTextures",
	"glGetError",
	"glGetProgramInfoLog",
	"glGetProgramiv",
	"glGetShaderInfoLog",
	"glGetShaderiv",
	"glGetUniformLocation",
	"glLinkProgram",
	"glPixelStorei",
	"glReadPixels",
	"glRenderbufferStorage",
	"glShaderSource",
	"glTexImage2D",
	"glTexParameteri",
	"glTexSubImage2D",
	"glUniform1i",
	"glUniform4f",
	"glUseProgram",
	"glVertexAttribPointer",
	"glViewport",
}

var es3 = []string{
	"glBindVertexArray",
	"glDeleteVertexArrays",
	"glGenVertexArrays",
	"glMapBufferRange",
	"glUnmapBuffer",
}

// Required returns the entry points a context of version v must provide.
func Required(v graphics.Version) []string {
	names := append([]string(nil), es2...)
	if v == graphics.ES3 {
		names = append(names, es3...)
	}
	return names
}

// Load initialises the gles2 package from proc. It must run with the
// context current.
func Load(v graphics.Version, proc ProcAddrFunc) error {
	resolve, stubbed := resolver(proc, unsafe.Pointer(C.glc_unsupportedProc()))
	if err := gles2.InitWithProcAddrFunc(resolve); err != nil {
		return err
	}
	if names := intersect(Required(v), *stubbed); len(names) > 0 {
		return fmt.Errorf("%w: GL ES %s driver lacks %s", graphics.ErrUnavailable, v, strings.Join(names, ", "))
	}
	if len(*stubbed) > 0 {
		graphics.Logger().Debug("gl entry points unavailable", "version", v, "count", len(*stubbed))
	}
	return nil
}

// resolver wraps proc so that missing entry points resolve to stub. The
// names it substituted are collected in the returned slice.
func resolver(proc ProcAddrFunc, stub unsafe.Pointer) (ProcAddrFunc, *[]string) {
	var stubbed []string
	return func(name string) unsafe.Pointer {
		if p := proc(name); p != nil {
			return p
		}
		stubbed = append(stubbed, name)
		return stub
	}, &stubbed
}

func intersect(want, have []string) []string {
	set := make(map[string]bool, len(have))
	for _, n := range have {
		set[n] = true
	}
	var out []string
	for _, n := range want {
		if set[n] {
			out = append(out, n)
		}
	}
	return out
}
