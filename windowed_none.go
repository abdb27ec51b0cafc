//go:build ios || android || noglfw

package glcontext

import (
	"fmt"

	"github.com/richinsley/glcontext/graphics"
)

func (f *Factory) newWindowed(name string, width, height int, version graphics.Version) (graphics.Context, error) {
	return nil, fmt.Errorf("glfw: %w", graphics.ErrUnavailable)
}
