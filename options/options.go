package options

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/richinsley/glcontext/graphics"
	"gopkg.in/yaml.v3"
)

// Options configures the gpu2cpu round trip. Fields point at flag values so
// a config file can fill in whatever the command line left unset.
type Options struct {
	Kind       *string
	Name       *string
	Width      *int
	Height     *int
	Version    *string
	Device     *int
	Mode       *string
	Frames     *int
	Snapshot   *string
	Record     *string
	FPS        *int
	FFMPEGPath *string
	Config     *string
	Verbose    *bool
	Help       *bool
}

// Register defines the gpu2cpu flags on fs.
func Register(fs *flag.FlagSet) *Options {
	return &Options{
		Kind:       fs.String("kind", "auto", "Context kind: auto, windowed, mobile or embedded"),
		Name:       fs.String("name", "", "Window title; the window is only shown when set"),
		Width:      fs.Int("width", 640, "Width of the context"),
		Height:     fs.Int("height", 480, "Height of the context"),
		Version:    fs.String("version", "es2", "GL ES version: es2 or es3"),
		Device:     fs.Int("device", -1, "EGL device index for embedded contexts (-1 for the default display)"),
		Mode:       fs.String("mode", "upload", "Round trip mode: upload (texture upload) or draw (shader draw)"),
		Frames:     fs.Int("frames", 1, "Number of frames to round-trip"),
		Snapshot:   fs.String("snapshot", "", "Write the last frame to this image file (.png, .bmp, .tif)"),
		Record:     fs.String("record", "", "Encode every frame to this video file with ffmpeg"),
		FPS:        fs.Int("fps", 30, "Frames per second for recording"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Config:     fs.String("config", "", "YAML file with default option values"),
		Verbose:    fs.Bool("verbose", false, "Log context lifecycle to stderr"),
		Help:       fs.Bool("help", false, "Show help message"),
	}
}

// fileOptions is the YAML form. Nil fields are absent from the file.
type fileOptions struct {
	Kind       *string `yaml:"kind"`
	Name       *string `yaml:"name"`
	Width      *int    `yaml:"width"`
	Height     *int    `yaml:"height"`
	Version    *string `yaml:"version"`
	Device     *int    `yaml:"device"`
	Mode       *string `yaml:"mode"`
	Frames     *int    `yaml:"frames"`
	Snapshot   *string `yaml:"snapshot"`
	Record     *string `yaml:"record"`
	FPS        *int    `yaml:"fps"`
	FFMPEGPath *string `yaml:"ffmpeg"`
	Verbose    *bool   `yaml:"verbose"`
}

// Load reads the YAML file at path and applies every value whose flag was
// not set explicitly on fs.
func (o *Options) Load(fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return o.apply(fs, data)
}

func (o *Options) apply(fs *flag.FlagSet, data []byte) error {
	var f fileOptions
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	setString(set, "kind", o.Kind, f.Kind)
	setString(set, "name", o.Name, f.Name)
	setInt(set, "width", o.Width, f.Width)
	setInt(set, "height", o.Height, f.Height)
	setString(set, "version", o.Version, f.Version)
	setInt(set, "device", o.Device, f.Device)
	setString(set, "mode", o.Mode, f.Mode)
	setInt(set, "frames", o.Frames, f.Frames)
	setString(set, "snapshot", o.Snapshot, f.Snapshot)
	setString(set, "record", o.Record, f.Record)
	setInt(set, "fps", o.FPS, f.FPS)
	setString(set, "ffmpeg", o.FFMPEGPath, f.FFMPEGPath)
	if f.Verbose != nil && !set["verbose"] {
		*o.Verbose = *f.Verbose
	}
	return nil
}

func setString(set map[string]bool, name string, dst, v *string) {
	if v != nil && !set[name] {
		*dst = *v
	}
}

func setInt(set map[string]bool, name string, dst, v *int) {
	if v != nil && !set[name] {
		*dst = *v
	}
}

// Validate checks the option values and returns the parsed kind and version.
func (o *Options) Validate() (graphics.Kind, graphics.Version, error) {
	kind, err := graphics.ParseKind(*o.Kind)
	if err != nil {
		return 0, 0, err
	}
	version, err := graphics.ParseVersion(*o.Version)
	if err != nil {
		return 0, 0, err
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: size %dx%d", graphics.ErrInvalidArgument, *o.Width, *o.Height)
	}
	if *o.Mode != "upload" && *o.Mode != "draw" {
		return 0, 0, fmt.Errorf("%w: unknown mode %q", graphics.ErrInvalidArgument, *o.Mode)
	}
	if *o.Frames < 1 {
		return 0, 0, fmt.Errorf("%w: frames must be at least 1", graphics.ErrInvalidArgument)
	}
	if *o.Record != "" && *o.FPS < 1 {
		return 0, 0, fmt.Errorf("%w: fps must be at least 1", graphics.ErrInvalidArgument)
	}
	return kind, version, nil
}
