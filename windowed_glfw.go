//go:build !ios && !android && !noglfw

package glcontext

import (
	"fmt"

	"github.com/richinsley/glcontext/glfwcontext"
	"github.com/richinsley/glcontext/graphics"
)

func (f *Factory) newWindowed(name string, width, height int, version graphics.Version) (graphics.Context, error) {
	if f.pool == nil {
		return nil, fmt.Errorf("%w: factory has no glfw pool", graphics.ErrInvalidArgument)
	}
	c, err := glfwcontext.New(f.pool, name, width, height, version)
	if err != nil {
		return nil, err
	}
	return c, nil
}
