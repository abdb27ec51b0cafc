//go:build ios || android || noglfw

package glfwcontext

import (
	"fmt"

	"github.com/richinsley/glcontext/graphics"
)

// Supported reports whether the windowed variant is compiled in.
const Supported = false

type noLibrary struct{}

// GLFW returns a Library whose Init always fails on builds without GLFW.
func GLFW() Library { return noLibrary{} }

func (noLibrary) Init() error {
	return fmt.Errorf("glfw: %w", graphics.ErrUnavailable)
}

func (noLibrary) Terminate() {}
