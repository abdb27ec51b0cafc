//go:build darwin && !ios && !noglfw

package glfwcontext

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glcontext/graphics"
)

// macOS ships no GL ES driver. A forward compatible core profile covers the
// ES3 subset and a legacy 2.1 context covers ES2.
func versionHints(v graphics.Version) {
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	if v == graphics.ES3 {
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 2)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		return
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
}
