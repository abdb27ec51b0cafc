package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v3.1/gles2"
	"github.com/richinsley/glcontext"
	"github.com/richinsley/glcontext/encoder"
	"github.com/richinsley/glcontext/glfwcontext"
	"github.com/richinsley/glcontext/gpu"
	"github.com/richinsley/glcontext/graphics"
	"github.com/richinsley/glcontext/options"
	"github.com/richinsley/glcontext/shader"
	"github.com/richinsley/glcontext/snapshot"
	"golang.org/x/image/colornames"
)

var palette = []color.RGBA{
	colornames.Red,
	colornames.Lime,
	colornames.Blue,
	colornames.White,
	colornames.Black,
	colornames.Yellow,
	colornames.Magenta,
	colornames.Cyan,
}

// roundTrip pushes pixels to the GPU every frame, reads them back and checks
// they survived the round trip.
type roundTrip struct {
	opts          *options.Options
	ctx           *glcontext.Handle
	version       graphics.Version
	width, height int

	tex  *gpu.Texture
	fb   *gpu.Framebuffer
	quad *gpu.Quad
	fill *gpu.Program
	blit *gpu.Program
	up   *gpu.UploadBuffer
	pbo  *gpu.PixelBuffer
	enc  *encoder.FFmpegEncoder

	frame int
	err   error
}

func newRoundTrip(opts *options.Options, ctx *glcontext.Handle, version graphics.Version) (*roundTrip, error) {
	p := &roundTrip{
		opts:    opts,
		ctx:     ctx,
		version: version,
		width:   *opts.Width,
		height:  *opts.Height,
	}
	var err error
	p.tex, err = gpu.NewTexture(p.width, p.height, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}
	p.fb = gpu.NewFramebuffer()
	if err := p.fb.Attach(p.tex); err != nil {
		p.release()
		return nil, err
	}
	p.quad = gpu.NewQuad(version)

	if *opts.Mode == "draw" {
		if p.fill, err = p.fillProgram(); err != nil {
			p.release()
			return nil, err
		}
	}
	if ctx.HasDisplay() {
		if p.blit, err = gpu.NewProgram(shader.VertexSource(version), shader.BlitSource(version, false)); err != nil {
			p.release()
			return nil, fmt.Errorf("failed to create blit program: %w", err)
		}
	}
	if version == graphics.ES3 {
		if p.up, err = gpu.NewUploadBuffer(p.width, p.height); err != nil {
			p.release()
			return nil, err
		}
		if p.pbo, err = gpu.NewPixelBuffer(p.width, p.height, 1); err != nil {
			p.release()
			return nil, err
		}
	}
	if *opts.Record != "" {
		p.enc, err = encoder.NewFFmpegEncoder(encoder.Config{
			Width:      p.width,
			Height:     p.height,
			FPS:        *opts.FPS,
			OutputFile: *opts.Record,
			FFMPEGPath: *opts.FFMPEGPath,
		})
		if err != nil {
			p.release()
			return nil, err
		}
	}
	return p, nil
}

// fillProgram builds the solid colour program. On ES3 the shader goes
// through the translator so the driver compiles translator output.
func (p *roundTrip) fillProgram() (*gpu.Program, error) {
	src := shader.FillSource(p.version)
	var uniforms map[string]string
	if p.version == graphics.ES3 {
		out, err := shader.NewTranslator().Translate(shader.FillSourceWebGL2(), p.version)
		if err != nil {
			log.Printf("Warning: shader translation failed, using source as is: %v", err)
		} else {
			src, uniforms = out.Code, out.Uniforms
		}
	}
	prog, err := gpu.NewProgram(shader.VertexSource(p.version), src)
	if err != nil {
		return nil, fmt.Errorf("failed to create fill program: %w", err)
	}
	prog.Uniforms = uniforms
	return prog, nil
}

// expected returns the pixels frame n should read back.
func (p *roundTrip) expected(n int) []byte {
	pixels := make([]byte, 0, p.width*p.height*4)
	if p.fill != nil {
		c := palette[n%len(palette)]
		return append(pixels, bytes.Repeat([]byte{c.R, c.G, c.B, c.A}, p.width*p.height)...)
	}
	for y := 0; y < p.height; y++ {
		v := byte((y + 1 + n) % 255)
		pixels = append(pixels, bytes.Repeat([]byte{v, v, v, 0xff}, p.width)...)
	}
	return pixels
}

func (p *roundTrip) render(want []byte) error {
	if p.fill == nil {
		if p.up != nil {
			return p.up.Write(p.tex, want)
		}
		return p.tex.Upload(want)
	}
	p.fb.Bind()
	gles2.Viewport(0, 0, int32(p.width), int32(p.height))
	p.fill.Use()
	p.fill.SetColor("u_color", palette[p.frame%len(palette)])
	p.quad.Draw()
	p.fb.Unbind()
	gles2.Viewport(p.ctx.Geometry().Viewport())
	return gpu.CheckError("draw")
}

func (p *roundTrip) readBack() ([]byte, error) {
	if p.pbo != nil {
		return p.pbo.Read(p.fb)
	}
	return p.fb.ReadPixels(p.width, p.height)
}

func (p *roundTrip) present() {
	gles2.BindFramebuffer(gles2.FRAMEBUFFER, 0)
	gles2.Viewport(p.ctx.Geometry().Viewport())
	gles2.ClearColor(0, 0, 0, 1)
	gles2.Clear(gles2.COLOR_BUFFER_BIT)
	p.blit.Use()
	gles2.ActiveTexture(gles2.TEXTURE0)
	p.tex.Bind()
	gles2.Uniform1i(p.blit.UniformLocation("u_texture"), 0)
	p.quad.Draw()
	p.tex.Unbind()
}

// step runs one frame and reports whether the loop should continue.
func (p *roundTrip) step() bool {
	want := p.expected(p.frame)
	if err := p.render(want); err != nil {
		p.err = fmt.Errorf("frame %d: %w", p.frame, err)
		return false
	}
	got, err := p.readBack()
	if err != nil {
		p.err = fmt.Errorf("frame %d: %w", p.frame, err)
		return false
	}
	if i := firstDiff(want, got); i >= 0 {
		p.err = fmt.Errorf("frame %d: pixel %d reads back %v, want %v", p.frame, i/4, got[i&^3:i&^3+4], want[i&^3:i&^3+4])
		return false
	}
	if p.enc != nil {
		p.enc.SendVideo(&encoder.Frame{Pixels: got, PTS: int64(p.frame)})
	}
	if p.blit != nil {
		p.present()
	}
	p.frame++
	return p.frame < *p.opts.Frames
}

func firstDiff(a, b []byte) int {
	if len(a) != len(b) {
		return min(len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return -1
}

func (p *roundTrip) release() {
	if p.pbo != nil {
		p.pbo.Release()
	}
	if p.up != nil {
		p.up.Release()
	}
	if p.blit != nil {
		p.blit.Release()
	}
	if p.fill != nil {
		p.fill.Release()
	}
	if p.quad != nil {
		p.quad.Release()
	}
	if p.fb != nil {
		p.fb.Release()
	}
	p.tex.Release()
}

func run(opts *options.Options, kind graphics.Kind, version graphics.Version) error {
	pool := glfwcontext.NewPool(glfwcontext.GLFW())
	factory := glcontext.NewFactory(pool, glcontext.WithDevice(*opts.Device))

	ctx, err := factory.Create(kind, *opts.Name, *opts.Width, *opts.Height, version)
	if err != nil {
		return fmt.Errorf("failed to create context: %w", err)
	}
	defer ctx.Release()
	log.Printf("Created %s context (%s, %dx%d)", ctx.Kind(), version, *opts.Width, *opts.Height)

	p, err := newRoundTrip(opts, ctx, version)
	if err != nil {
		return err
	}
	defer p.release()

	ctx.RunLoop(p.step)

	if p.enc != nil {
		if err := p.enc.Close(); err != nil && p.err == nil {
			p.err = fmt.Errorf("recording failed: %w", err)
		} else if err == nil {
			log.Printf("Recorded %d frames to %s", p.frame, *opts.Record)
		}
	}
	if p.err != nil {
		return p.err
	}
	if p.frame < *opts.Frames {
		return fmt.Errorf("window closed after %d of %d frames", p.frame, *opts.Frames)
	}
	log.Printf("%d frames round-tripped through the GPU", p.frame)

	if *opts.Snapshot != "" {
		img, err := p.fb.Image(p.width, p.height)
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		if err := snapshot.Write(*opts.Snapshot, img); err != nil {
			return err
		}
		log.Printf("Wrote snapshot to %s", *opts.Snapshot)
	}
	return nil
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("gpu2cpu: GL context pixel round trip check")
		flag.PrintDefaults()
		return
	}
	if *opts.Config != "" {
		if err := opts.Load(flag.CommandLine, *opts.Config); err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	kind, version, err := opts.Validate()
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	if *opts.Verbose {
		graphics.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(opts, kind, version); err != nil {
		log.Fatalf("Round trip failed: %v", err)
	}
}
