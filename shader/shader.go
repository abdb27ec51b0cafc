package shader

import "github.com/richinsley/glcontext/graphics"

// ─────────────────────────────────── GLES 2 ─────────────────────────────────────

const vertexShaderSourceES2 = `attribute vec2 in_vert;
varying vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const fillFragmentShaderSourceES2 = `#ifdef GL_ES
precision mediump float;
#endif
uniform vec4 u_color;
void main() { gl_FragColor = u_color; }
`

const blitFragmentShaderSourceES2 = `#ifdef GL_ES
precision mediump float;
#endif
varying vec2 frag_uv;
uniform sampler2D u_texture;
void main() { gl_FragColor = texture2D(u_texture, frag_uv); }
`

const blitFragmentShaderSourceFlipES2 = `#ifdef GL_ES
precision mediump float;
#endif
varying vec2 frag_uv;
uniform sampler2D u_texture;
void main() { gl_FragColor = texture2D(u_texture, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`

// ─────────────────────────────────── GLES 3 ─────────────────────────────────────

const vertexShaderSourceES3 = `in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const fillFragmentShaderSourceES3 = `precision mediump float;
out vec4 fragColor;
uniform vec4 u_color;
void main() { fragColor = u_color; }
`

const blitFragmentShaderSourceES3 = `precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

const blitFragmentShaderSourceFlipES3 = `precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`

// ────────────────────────────────── Public API ─────────────────────────────────

// VertexSource returns the pass-through vertex shader for the full screen quad.
func VertexSource(v graphics.Version) string {
	if v == graphics.ES3 {
		return header(v) + vertexShaderSourceES3
	}
	return header(v) + vertexShaderSourceES2
}

// FillSource returns a fragment shader writing the u_color uniform.
func FillSource(v graphics.Version) string {
	if v == graphics.ES3 {
		return header(v) + fillFragmentShaderSourceES3
	}
	return header(v) + fillFragmentShaderSourceES2
}

// FillSourceWebGL2 returns the fill shader in the form Translator accepts.
func FillSourceWebGL2() string {
	return "#version 300 es\n" + fillFragmentShaderSourceES3
}

// BlitSource returns a fragment shader sampling u_texture, optionally
// flipped vertically.
func BlitSource(v graphics.Version, flip bool) string {
	if v == graphics.ES3 {
		if flip {
			return header(v) + blitFragmentShaderSourceFlipES3
		}
		return header(v) + blitFragmentShaderSourceES3
	}
	if flip {
		return header(v) + blitFragmentShaderSourceFlipES2
	}
	return header(v) + blitFragmentShaderSourceES2
}
