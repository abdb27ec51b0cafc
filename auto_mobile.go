//go:build ios

package glcontext

import "github.com/richinsley/glcontext/graphics"

const autoKind = graphics.Mobile
