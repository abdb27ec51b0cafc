package shader

import (
	"strings"
	"testing"

	"github.com/richinsley/glcontext/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceVersions(t *testing.T) {
	for _, v := range []graphics.Version{graphics.ES2, graphics.ES3} {
		t.Run(v.String(), func(t *testing.T) {
			h := header(v)
			assert.True(t, strings.HasPrefix(VertexSource(v), h))
			assert.True(t, strings.HasPrefix(FillSource(v), h))
			assert.True(t, strings.HasPrefix(BlitSource(v, false), h))
			assert.True(t, strings.HasPrefix(BlitSource(v, true), h))
			assert.Equal(t, 1, strings.Count(FillSource(v), "#version"))
			assert.Contains(t, VertexSource(v), "in_vert")
			assert.Contains(t, FillSource(v), "uniform vec4 u_color;")
		})
	}
	assert.Contains(t, BlitSource(graphics.ES3, true), "1.0 - frag_uv.y")
	assert.NotContains(t, BlitSource(graphics.ES3, false), "1.0 - frag_uv.y")
}

func TestES2PrecisionIsGuarded(t *testing.T) {
	assert.Contains(t, FillSource(graphics.ES2), "#ifdef GL_ES\nprecision mediump float;\n#endif")
}

func TestFillSourceWebGL2(t *testing.T) {
	src := FillSourceWebGL2()
	assert.True(t, strings.HasPrefix(src, "#version 300 es\n"))
	assert.Contains(t, src, "out vec4 fragColor;")
}

func TestTranslateRejectsES2(t *testing.T) {
	_, err := NewTranslator().Translate(FillSourceWebGL2(), graphics.ES2)
	assert.ErrorIs(t, err, graphics.ErrInvalidArgument)
}

func TestTranslateFill(t *testing.T) {
	tr := NewTranslator()
	out, err := tr.Translate(FillSourceWebGL2(), graphics.ES3)
	if err != nil && strings.HasPrefix(err.Error(), "failed to create shader translator") {
		t.Skip(err)
	}
	require.NoError(t, err)
	assert.NotEmpty(t, out.Code)
	assert.Contains(t, out.Uniforms, "u_color")
}
