//go:build !ios && !android && !(linux && noglfw)

package glcontext

import "github.com/richinsley/glcontext/graphics"

const autoKind = graphics.Windowed
