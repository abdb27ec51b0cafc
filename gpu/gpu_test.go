package gpu_test

import (
	"bytes"
	"image/color"
	"runtime"
	"testing"

	"github.com/richinsley/glcontext"
	"github.com/richinsley/glcontext/gpu"
	"github.com/richinsley/glcontext/graphics"
	"github.com/richinsley/glcontext/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

const width, height = 640, 480

// newContext returns an off-screen context, skipping the test when the
// target has no usable EGL display.
func newContext(t *testing.T, version graphics.Version) *glcontext.Handle {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)
	if !glcontext.Available(graphics.Embedded) {
		t.Skip("embedded contexts not available on this target")
	}
	h, err := glcontext.NewFactory(nil).Create(graphics.Embedded, "", width, height, version)
	if err != nil {
		t.Skipf("no EGL context: %v", err)
	}
	t.Cleanup(h.Release)
	return h
}

func flat(c color.NRGBA, n int) []byte {
	return bytes.Repeat([]byte{c.R, c.G, c.B, c.A}, n)
}

func target(t *testing.T) (*gpu.Texture, *gpu.Framebuffer) {
	t.Helper()
	tex, err := gpu.NewTexture(width, height, nil)
	require.NoError(t, err)
	t.Cleanup(tex.Release)
	fb := gpu.NewFramebuffer()
	t.Cleanup(fb.Release)
	require.NoError(t, fb.Attach(tex))
	return tex, fb
}

func TestUploadReadBack(t *testing.T) {
	newContext(t, graphics.ES2)

	want := flat(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, width*height)
	tex, err := gpu.NewTexture(width, height, want)
	require.NoError(t, err)
	defer tex.Release()

	fb := gpu.NewFramebuffer()
	defer fb.Release()
	require.NoError(t, fb.Attach(tex))

	got, err := fb.ReadPixels(width, height)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(want, got), "read back pixels differ")
}

func TestDrawReadBack(t *testing.T) {
	h := newContext(t, graphics.ES2)
	require.NoError(t, h.MakeCurrent())
	_, fb := target(t)

	prog, err := gpu.NewProgram(shader.VertexSource(graphics.ES2), shader.FillSource(graphics.ES2))
	require.NoError(t, err)
	defer prog.Release()
	quad := gpu.NewQuad(graphics.ES2)
	defer quad.Release()

	c := colornames.Magenta
	fb.Bind()
	prog.Use()
	require.GreaterOrEqual(t, prog.UniformLocation("u_color"), int32(0))
	prog.SetColor("u_color", c)
	quad.Draw()
	fb.Unbind()
	require.NoError(t, gpu.CheckError("draw"))

	img, err := fb.Image(width, height)
	require.NoError(t, err)
	for _, p := range [][2]int{{0, 0}, {width - 1, 0}, {width / 2, height / 2}, {0, height - 1}} {
		assert.Equal(t, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, img.NRGBAAt(p[0], p[1]), "pixel %v", p)
	}
}

func TestPixelBuffer(t *testing.T) {
	newContext(t, graphics.ES3)
	tex, fb := target(t)

	pb, err := gpu.NewPixelBuffer(width, height, 2)
	require.NoError(t, err)
	defer pb.Release()

	_, err = pb.Finish()
	assert.ErrorIs(t, err, gpu.ErrNoPendingRead)

	first := flat(color.NRGBA{R: 0xff, A: 0xff}, width*height)
	second := flat(color.NRGBA{B: 0xff, A: 0xff}, width*height)
	require.NoError(t, tex.Upload(first))
	require.NoError(t, pb.Start(fb))
	require.NoError(t, tex.Upload(second))
	require.NoError(t, pb.Start(fb))
	assert.Error(t, pb.Start(fb))

	got, err := pb.Finish()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, got))
	got, err = pb.Finish()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(second, got))
}

func TestUploadBuffer(t *testing.T) {
	newContext(t, graphics.ES3)
	tex, fb := target(t)

	up, err := gpu.NewUploadBuffer(width, height)
	require.NoError(t, err)
	defer up.Release()

	assert.Error(t, up.Write(tex, make([]byte, 4)))

	want := gradient(width, height)
	require.NoError(t, up.Write(tex, want))
	got, err := fb.ReadPixels(width, height)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(want, got), "read back pixels differ")
}

// gradient fills row y with grey level y+1.
func gradient(w, h int) []byte {
	pixels := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		v := byte((y + 1) % 255)
		pixels = append(pixels, bytes.Repeat([]byte{v, v, v, 0xff}, w)...)
	}
	return pixels
}
