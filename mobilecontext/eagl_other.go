//go:build !ios

package mobilecontext

import (
	"fmt"

	"github.com/richinsley/glcontext/graphics"
)

const Supported = false

func New(width, height int, version graphics.Version) (*Context, error) {
	return nil, fmt.Errorf("eagl: %w", graphics.ErrUnavailable)
}
