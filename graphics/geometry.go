package graphics

import "math"

// Geometry is the logical rendering size and the transform that places it
// inside the real framebuffer.
type Geometry struct {
	Width  int
	Height int
	Tx     float32
	Ty     float32
	Sx     float32
	Sy     float32
}

// NewGeometry returns an identity geometry of the given logical size.
func NewGeometry(width, height int) Geometry {
	return Geometry{Width: width, Height: height, Sx: 1, Sy: 1}
}

// Letterbox fits the logical size into a framebufferWidth x framebufferHeight
// framebuffer with a uniform scale and centres the result. Offsets are rounded
// half to even. A zero-sized logical or framebuffer rectangle yields identity.
func (g Geometry) Letterbox(framebufferWidth, framebufferHeight int) Geometry {
	out := NewGeometry(g.Width, g.Height)
	if g.Width <= 0 || g.Height <= 0 || framebufferWidth <= 0 || framebufferHeight <= 0 {
		return out
	}
	ws := float32(framebufferWidth) / float32(g.Width)
	hs := float32(framebufferHeight) / float32(g.Height)
	s := min(ws, hs)

	w := s * float32(g.Width)
	h := s * float32(g.Height)
	out.Sx, out.Sy = s, s
	out.Tx = float32(math.RoundToEven(float64(float32(framebufferWidth)-w) / 2))
	out.Ty = float32(math.RoundToEven(float64(float32(framebufferHeight)-h) / 2))
	return out
}

// Viewport returns the GL viewport rectangle covering the scaled content.
func (g Geometry) Viewport() (x, y, width, height int32) {
	x = int32(g.Tx)
	y = int32(g.Ty)
	width = int32(math.RoundToEven(float64(g.Sx * float32(g.Width))))
	height = int32(math.RoundToEven(float64(g.Sy * float32(g.Height))))
	return
}
