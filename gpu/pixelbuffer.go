package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.1/gles2"
)

// ErrNoPendingRead is returned by Finish when no read was started.
var ErrNoPendingRead = errors.New("no pending pixel read")

// PixelBuffer reads framebuffers asynchronously through a ring of pixel pack
// buffers. Start queues a read into the next buffer; Finish maps the oldest
// queued buffer. Keeping more than one read in flight lets the GPU finish a
// transfer while the next frame renders. Requires GL ES 3.
type PixelBuffer struct {
	pbos          []uint32
	width, height int
	size          int
	write         int
	pending       int
}

// NewPixelBuffer allocates n pack buffers for width x height RGBA reads.
func NewPixelBuffer(width, height, n int) (*PixelBuffer, error) {
	if n < 1 {
		return nil, fmt.Errorf("pixel buffer needs at least one PBO, got %d", n)
	}
	p := &PixelBuffer{
		pbos:   make([]uint32, n),
		width:  width,
		height: height,
		size:   width * height * 4,
	}
	gles2.GenBuffers(int32(n), &p.pbos[0])
	for _, pbo := range p.pbos {
		gles2.BindBuffer(gles2.PIXEL_PACK_BUFFER, pbo)
		gles2.BufferData(gles2.PIXEL_PACK_BUFFER, p.size, nil, gles2.STREAM_READ)
	}
	gles2.BindBuffer(gles2.PIXEL_PACK_BUFFER, 0)
	if err := CheckError("gpu.NewPixelBuffer"); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// Start queues a read of fb into the next buffer of the ring.
func (p *PixelBuffer) Start(fb *Framebuffer) error {
	if p.pending == len(p.pbos) {
		return fmt.Errorf("all %d pixel buffers are pending", len(p.pbos))
	}
	fb.Bind()
	gles2.PixelStorei(gles2.PACK_ALIGNMENT, 1)
	gles2.BindBuffer(gles2.PIXEL_PACK_BUFFER, p.pbos[p.write])
	gles2.ReadPixels(0, 0, int32(p.width), int32(p.height), gles2.RGBA, gles2.UNSIGNED_BYTE, nil)
	gles2.BindBuffer(gles2.PIXEL_PACK_BUFFER, 0)
	fb.Unbind()
	if err := CheckError("gpu.PixelBuffer.Start"); err != nil {
		return err
	}
	p.write = (p.write + 1) % len(p.pbos)
	p.pending++
	return nil
}

// Finish maps the oldest pending buffer and copies its pixels out.
func (p *PixelBuffer) Finish() ([]byte, error) {
	if p.pending == 0 {
		return nil, ErrNoPendingRead
	}
	read := (p.write - p.pending + len(p.pbos)) % len(p.pbos)
	p.pending--

	gles2.BindBuffer(gles2.PIXEL_PACK_BUFFER, p.pbos[read])
	defer gles2.BindBuffer(gles2.PIXEL_PACK_BUFFER, 0)
	mapped := gles2.MapBufferRange(gles2.PIXEL_PACK_BUFFER, 0, p.size, gles2.MAP_READ_BIT)
	if mapped == nil {
		if err := CheckError("gpu.PixelBuffer.Finish"); err != nil {
			return nil, err
		}
		return nil, errors.New("glMapBufferRange returned nil")
	}
	pixels := make([]byte, p.size)
	copy(pixels, unsafe.Slice((*byte)(mapped), p.size))
	gles2.UnmapBuffer(gles2.PIXEL_PACK_BUFFER)
	return pixels, nil
}

// Read starts a read of fb and finishes the oldest pending one, which is the
// new read when nothing else was in flight.
func (p *PixelBuffer) Read(fb *Framebuffer) ([]byte, error) {
	if err := p.Start(fb); err != nil {
		return nil, err
	}
	return p.Finish()
}

func (p *PixelBuffer) Release() {
	if len(p.pbos) > 0 && p.pbos[0] != 0 {
		gles2.DeleteBuffers(int32(len(p.pbos)), &p.pbos[0])
	}
	p.pbos = nil
	p.pending = 0
}
