package gpu

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToImageFlipsRows(t *testing.T) {
	// Two rows, bottom row first as GL returns them.
	pixels := []byte{
		1, 1, 1, 255, 2, 2, 2, 255,
		3, 3, 3, 255, 4, 4, 4, 255,
	}
	img := toImage(pixels, 2, 2)
	assert.Equal(t, color.NRGBA{3, 3, 3, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{4, 4, 4, 255}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{1, 1, 1, 255}, img.NRGBAAt(0, 1))
	assert.Equal(t, color.NRGBA{2, 2, 2, 255}, img.NRGBAAt(1, 1))
}

func TestGLErrorNames(t *testing.T) {
	assert.Equal(t, "GL_INVALID_OPERATION", GLError(0x502).Error())
	assert.Equal(t, "GL_OUT_OF_MEMORY", GLError(0x505).Error())
	assert.Equal(t, "GL error 0x123", GLError(0x123).Error())
}
