// Package encoder pipes read-back RGBA frames into an ffmpeg process.
package encoder

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/richinsley/glcontext/graphics"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame is one frame of RGBA pixels, bottom row first as GL reads them.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Config describes the encoded output.
type Config struct {
	Width, Height int
	FPS           int
	OutputFile    string
	// Codec is an ffmpeg encoder name. It defaults to one chosen from the
	// output file extension.
	Codec      string
	FFMPEGPath string
}

// FFmpegEncoder feeds frames to ffmpeg over its standard input.
type FFmpegEncoder struct {
	cfg       Config
	frameSize int
	frames    chan *Frame
	done      chan error

	closeOnce sync.Once
	closeErr  error
}

func codecFor(output string) string {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".webm":
		return "libvpx-vp9"
	case ".gif":
		return "gif"
	}
	return "libx264"
}

func (cfg Config) args() (inputArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"framerate": cfg.FPS,
	}
	codec := cfg.Codec
	if codec == "" {
		codec = codecFor(cfg.OutputFile)
	}
	// GL rows arrive bottom first.
	outputArgs = ffmpeg.KwArgs{
		"vf":  "vflip",
		"c:v": codec,
	}
	if codec != "gif" {
		outputArgs["pix_fmt"] = "yuv420p"
	}
	return inputArgs, outputArgs
}

func (cfg Config) stream(input io.Reader) *ffmpeg.Stream {
	inputArgs, outputArgs := cfg.args()
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(cfg.OutputFile, outputArgs).
		OverWriteOutput().WithInput(input).ErrorToStdOut()
	if cfg.FFMPEGPath != "" {
		cmd = cmd.SetFfmpegPath(cfg.FFMPEGPath)
	}
	return cmd
}

// NewFFmpegEncoder starts ffmpeg writing to cfg.OutputFile.
func NewFFmpegEncoder(cfg Config) (*FFmpegEncoder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.FPS <= 0 {
		return nil, fmt.Errorf("%w: encoder %dx%d at %d fps", graphics.ErrInvalidArgument, cfg.Width, cfg.Height, cfg.FPS)
	}
	if cfg.OutputFile == "" {
		return nil, fmt.Errorf("%w: encoder output file is empty", graphics.ErrInvalidArgument)
	}
	e := &FFmpegEncoder{
		cfg:       cfg,
		frameSize: cfg.Width * cfg.Height * 4,
		frames:    make(chan *Frame, 3),
		done:      make(chan error, 1),
	}

	pipeReader, pipeWriter := io.Pipe()
	errc := make(chan error, 1)
	go func() {
		err := cfg.stream(pipeReader).Run()
		// Unblock the writer if ffmpeg exits early.
		if err != nil {
			pipeReader.CloseWithError(err)
		} else {
			pipeReader.Close()
		}
		errc <- err
	}()
	go e.run(pipeWriter, errc)

	graphics.Logger().Info("encoder started", "output", cfg.OutputFile,
		"width", cfg.Width, "height", cfg.Height, "fps", cfg.FPS)
	return e, nil
}

func (e *FFmpegEncoder) run(w *io.PipeWriter, errc <-chan error) {
	var werr error
	for frame := range e.frames {
		if werr != nil {
			continue
		}
		if len(frame.Pixels) != e.frameSize {
			werr = fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), e.frameSize)
			w.CloseWithError(werr)
			continue
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			werr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
		}
	}
	w.Close()
	err := <-errc
	if err == nil {
		err = werr
	} else {
		err = fmt.Errorf("ffmpeg failed: %w", err)
	}
	e.done <- err
}

// SendVideo queues a frame. It blocks while ffmpeg is behind.
func (e *FFmpegEncoder) SendVideo(frame *Frame) {
	e.frames <- frame
}

// Close flushes queued frames and waits for ffmpeg to exit. Later calls
// return the same result.
func (e *FFmpegEncoder) Close() error {
	e.closeOnce.Do(func() {
		close(e.frames)
		e.closeErr = <-e.done
	})
	return e.closeErr
}
