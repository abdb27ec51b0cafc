// Package gpu moves pixels between the CPU and the current GL ES context:
// textures, framebuffers, pixel pack buffers and the small programs used to
// validate a context end to end.
//
// Every function expects a current context with the gles2 entry points loaded.
package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v3.1/gles2"
	"github.com/richinsley/glcontext/graphics"
)

// GLError is a glGetError code.
type GLError uint32

func (e GLError) Error() string {
	switch e {
	case gles2.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gles2.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gles2.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gles2.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gles2.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("GL error 0x%x", uint32(e))
}

// CheckError drains the GL error queue and reports the first error, if any,
// as a failure of op.
func CheckError(op string) error {
	code := gles2.GetError()
	if code == gles2.NO_ERROR {
		return nil
	}
	for i := 0; i < 8 && gles2.GetError() != gles2.NO_ERROR; i++ {
	}
	return &graphics.Error{Op: op, Call: "glGetError", Code: int(code), Err: GLError(code)}
}
