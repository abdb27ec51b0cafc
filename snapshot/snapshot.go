// Package snapshot writes read-back frames to image files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Write encodes img to path, choosing the format from the file extension.
func Write(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, err := encoder(ext); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create snapshot: %w", err)
	}
	if err := Encode(f, ext, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes img to w in the format named by ext, e.g. ".png".
func Encode(w io.Writer, ext string, img image.Image) error {
	enc, err := encoder(strings.ToLower(ext))
	if err != nil {
		return err
	}
	return enc(w, img)
}

func encoder(ext string) (func(io.Writer, image.Image) error, error) {
	switch ext {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}
