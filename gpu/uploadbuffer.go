package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.1/gles2"
)

// UploadBuffer streams texture uploads through a pixel unpack buffer.
// Requires GL ES 3.
type UploadBuffer struct {
	pbo  uint32
	size int
}

func NewUploadBuffer(width, height int) (*UploadBuffer, error) {
	u := &UploadBuffer{size: width * height * 4}
	gles2.GenBuffers(1, &u.pbo)
	gles2.BindBuffer(gles2.PIXEL_UNPACK_BUFFER, u.pbo)
	gles2.BufferData(gles2.PIXEL_UNPACK_BUFFER, u.size, nil, gles2.STREAM_DRAW)
	gles2.BindBuffer(gles2.PIXEL_UNPACK_BUFFER, 0)
	if err := CheckError("gpu.NewUploadBuffer"); err != nil {
		u.Release()
		return nil, err
	}
	return u, nil
}

// Write copies pixels into the buffer and replaces tex's image from it.
func (u *UploadBuffer) Write(tex *Texture, pixels []byte) error {
	if len(pixels) != u.size {
		return fmt.Errorf("upload buffer holds %d bytes, got %d", u.size, len(pixels))
	}
	gles2.BindBuffer(gles2.PIXEL_UNPACK_BUFFER, u.pbo)
	defer gles2.BindBuffer(gles2.PIXEL_UNPACK_BUFFER, 0)

	// Orphan the previous storage so the driver need not wait for it.
	gles2.BufferData(gles2.PIXEL_UNPACK_BUFFER, u.size, nil, gles2.STREAM_DRAW)
	mapped := gles2.MapBufferRange(gles2.PIXEL_UNPACK_BUFFER, 0, u.size, gles2.MAP_WRITE_BIT)
	if mapped == nil {
		if err := CheckError("gpu.UploadBuffer.Write"); err != nil {
			return err
		}
		return errors.New("glMapBufferRange returned nil")
	}
	copy(unsafe.Slice((*byte)(mapped), u.size), pixels)
	gles2.UnmapBuffer(gles2.PIXEL_UNPACK_BUFFER)

	width, height := tex.Size()
	tex.Bind()
	gles2.PixelStorei(gles2.UNPACK_ALIGNMENT, 1)
	gles2.TexSubImage2D(gles2.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gles2.RGBA, gles2.UNSIGNED_BYTE, nil)
	tex.Unbind()
	return CheckError("gpu.UploadBuffer.Write")
}

func (u *UploadBuffer) Release() {
	if u.pbo != 0 {
		gles2.DeleteBuffers(1, &u.pbo)
		u.pbo = 0
	}
}
