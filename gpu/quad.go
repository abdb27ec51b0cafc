package gpu

import (
	"github.com/go-gl/gl/v3.1/gles2"
	"github.com/richinsley/glcontext/graphics"
)

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// Quad is a vertex buffer holding two triangles that cover clip space.
type Quad struct {
	vbo uint32
	vao uint32
}

// NewQuad uploads the quad. On ES3 the attribute state is kept in a vertex
// array object, which core profile contexts require.
func NewQuad(version graphics.Version) *Quad {
	q := &Quad{}
	gles2.GenBuffers(1, &q.vbo)
	gles2.BindBuffer(gles2.ARRAY_BUFFER, q.vbo)
	gles2.BufferData(gles2.ARRAY_BUFFER, len(quadVertices)*4, gles2.Ptr(quadVertices), gles2.STATIC_DRAW)
	if version == graphics.ES3 {
		gles2.GenVertexArrays(1, &q.vao)
		gles2.BindVertexArray(q.vao)
		gles2.EnableVertexAttribArray(VertexAttrib)
		gles2.VertexAttribPointer(VertexAttrib, 2, gles2.FLOAT, false, 0, nil)
		gles2.BindVertexArray(0)
	}
	gles2.BindBuffer(gles2.ARRAY_BUFFER, 0)
	return q
}

// Draw draws the quad with the bound program into the bound framebuffer.
func (q *Quad) Draw() {
	if q.vao != 0 {
		gles2.BindVertexArray(q.vao)
		gles2.DrawArrays(gles2.TRIANGLES, 0, int32(len(quadVertices)/2))
		gles2.BindVertexArray(0)
		return
	}
	gles2.BindBuffer(gles2.ARRAY_BUFFER, q.vbo)
	gles2.EnableVertexAttribArray(VertexAttrib)
	gles2.VertexAttribPointer(VertexAttrib, 2, gles2.FLOAT, false, 0, nil)
	gles2.DrawArrays(gles2.TRIANGLES, 0, int32(len(quadVertices)/2))
	gles2.DisableVertexAttribArray(VertexAttrib)
	gles2.BindBuffer(gles2.ARRAY_BUFFER, 0)
}

func (q *Quad) Release() {
	if q.vao != 0 {
		gles2.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
	if q.vbo != 0 {
		gles2.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
}
