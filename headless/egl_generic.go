//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/glcontext/graphics"
)

const Supported = false

func New(width, height int, version graphics.Version, opts ...Option) (*Context, error) {
	return nil, fmt.Errorf("egl headless rendering: %w", graphics.ErrUnavailable)
}
