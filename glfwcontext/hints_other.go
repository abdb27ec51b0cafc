//go:build !darwin && !ios && !android && !noglfw

package glfwcontext

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glcontext/graphics"
)

func versionHints(v graphics.Version) {
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, v.Major())
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
}
