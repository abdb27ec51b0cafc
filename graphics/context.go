// Package graphics defines the uniform surface shared by every GL context
// variant: the Context capability interface, the variant tags, geometry and
// the error taxonomy.
package graphics

// RenderFunc is invoked once per frame by RunLoop. Returning false stops the loop.
type RenderFunc func() bool

// CursorFunc receives cursor positions in window coordinates.
type CursorFunc func(x, y float64)

// Context defines the interface for an OpenGL ES context.
type Context interface {
	// Kind reports which platform variant backs the context.
	Kind() Kind
	// IsValid reports whether the native context object is present.
	IsValid() bool
	// MakeCurrent binds the context and its surface to the calling thread.
	// A failure leaves the context valid.
	MakeCurrent() error
	// HasDisplay reports whether the context renders to a visible window.
	HasDisplay() bool
	Resize(width, height int)
	// RunLoop calls f until it returns false or the platform asks to close.
	RunLoop(f RenderFunc)
	Geometry() Geometry

	SetCursorCallback(f CursorFunc)
	SetCursor(x, y float64)
	Cursor() (x, y float64)
	SetCursorVisibility(visible bool)
	SetWait(wait bool)

	// Destroy releases native resources in reverse order of acquisition.
	// It is safe to call more than once.
	Destroy()
}

// NoCursor implements the cursor operations as no-ops for variants without
// an input system. Embed it to satisfy Context.
type NoCursor struct{}

func (NoCursor) SetCursorCallback(CursorFunc) {}
func (NoCursor) SetCursor(x, y float64)       {}
func (NoCursor) Cursor() (x, y float64)       { return 0, 0 }
func (NoCursor) SetCursorVisibility(bool)     {}
func (NoCursor) SetWait(bool)                 {}
