package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v3.1/gles2"
)

// Texture is an RGBA8 2D texture.
type Texture struct {
	id            uint32
	width, height int
}

// NewTexture allocates a width x height RGBA texture. pixels, when not nil,
// must hold width*height*4 bytes, bottom row first.
func NewTexture(width, height int, pixels []byte) (*Texture, error) {
	if pixels != nil && len(pixels) != width*height*4 {
		return nil, fmt.Errorf("texture %dx%d: got %d bytes, want %d", width, height, len(pixels), width*height*4)
	}
	t := &Texture{width: width, height: height}
	gles2.GenTextures(1, &t.id)
	gles2.BindTexture(gles2.TEXTURE_2D, t.id)
	gles2.PixelStorei(gles2.UNPACK_ALIGNMENT, 1)
	// ES2 requires the internal format to match the pixel format.
	gles2.TexImage2D(gles2.TEXTURE_2D, 0, gles2.RGBA, int32(width), int32(height), 0, gles2.RGBA, gles2.UNSIGNED_BYTE, ptr(pixels))
	gles2.TexParameteri(gles2.TEXTURE_2D, gles2.TEXTURE_MIN_FILTER, gles2.LINEAR)
	gles2.TexParameteri(gles2.TEXTURE_2D, gles2.TEXTURE_MAG_FILTER, gles2.LINEAR)
	gles2.TexParameteri(gles2.TEXTURE_2D, gles2.TEXTURE_WRAP_S, gles2.CLAMP_TO_EDGE)
	gles2.TexParameteri(gles2.TEXTURE_2D, gles2.TEXTURE_WRAP_T, gles2.CLAMP_TO_EDGE)
	gles2.BindTexture(gles2.TEXTURE_2D, 0)
	if err := CheckError("gpu.NewTexture"); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

// Upload replaces the whole texture image.
func (t *Texture) Upload(pixels []byte) error {
	if len(pixels) != t.width*t.height*4 {
		return fmt.Errorf("texture %dx%d: got %d bytes", t.width, t.height, len(pixels))
	}
	gles2.BindTexture(gles2.TEXTURE_2D, t.id)
	gles2.PixelStorei(gles2.UNPACK_ALIGNMENT, 1)
	gles2.TexSubImage2D(gles2.TEXTURE_2D, 0, 0, 0, int32(t.width), int32(t.height), gles2.RGBA, gles2.UNSIGNED_BYTE, gles2.Ptr(pixels))
	gles2.BindTexture(gles2.TEXTURE_2D, 0)
	return CheckError("gpu.Texture.Upload")
}

func (t *Texture) ID() uint32 { return t.id }

func (t *Texture) Size() (width, height int) { return t.width, t.height }

func (t *Texture) Bind()   { gles2.BindTexture(gles2.TEXTURE_2D, t.id) }
func (t *Texture) Unbind() { gles2.BindTexture(gles2.TEXTURE_2D, 0) }

func (t *Texture) Release() {
	if t.id != 0 {
		gles2.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
