package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/disintegration/imaging"
	"github.com/go-gl/gl/v3.1/gles2"
)

// Framebuffer is a framebuffer object with a texture as colour attachment 0.
type Framebuffer struct {
	id  uint32
	tex *Texture
}

func NewFramebuffer() *Framebuffer {
	f := &Framebuffer{}
	gles2.GenFramebuffers(1, &f.id)
	return f
}

// Attach makes tex the colour attachment and checks completeness.
func (f *Framebuffer) Attach(tex *Texture) error {
	f.Bind()
	defer f.Unbind()
	gles2.FramebufferTexture2D(gles2.FRAMEBUFFER, gles2.COLOR_ATTACHMENT0, gles2.TEXTURE_2D, tex.ID(), 0)
	if status := gles2.CheckFramebufferStatus(gles2.FRAMEBUFFER); status != gles2.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer is not complete: status 0x%x", status)
	}
	f.tex = tex
	return nil
}

func (f *Framebuffer) Bind()   { gles2.BindFramebuffer(gles2.FRAMEBUFFER, f.id) }
func (f *Framebuffer) Unbind() { gles2.BindFramebuffer(gles2.FRAMEBUFFER, 0) }

// ReadPixels reads the lower left width x height RGBA rectangle. Rows come
// back bottom first, as GL stores them.
func (f *Framebuffer) ReadPixels(width, height int) ([]byte, error) {
	pixels := make([]byte, width*height*4)
	f.Bind()
	gles2.PixelStorei(gles2.PACK_ALIGNMENT, 1)
	gles2.ReadPixels(0, 0, int32(width), int32(height), gles2.RGBA, gles2.UNSIGNED_BYTE, gles2.Ptr(pixels))
	f.Unbind()
	if err := CheckError("gpu.ReadPixels"); err != nil {
		return nil, err
	}
	return pixels, nil
}

// Image reads the framebuffer into a top-down image.
func (f *Framebuffer) Image(width, height int) (*image.NRGBA, error) {
	pixels, err := f.ReadPixels(width, height)
	if err != nil {
		return nil, err
	}
	return toImage(pixels, width, height), nil
}

// toImage wraps bottom-up GL rows and flips them into image order.
func toImage(pixels []byte, width, height int) *image.NRGBA {
	img := &image.NRGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return imaging.FlipV(img)
}

func (f *Framebuffer) Release() {
	if f.id != 0 {
		gles2.DeleteFramebuffers(1, &f.id)
		f.id = 0
	}
	f.tex = nil
}

func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return gles2.Ptr(b)
}
