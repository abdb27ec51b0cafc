package gpu

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/gl/v3.1/gles2"
)

// VertexAttrib is the attribute location the quad vertices are bound to.
const VertexAttrib = 0

// Program is a linked shader program. Uniforms maps source uniform names to
// the names the shader translator gave them, when it renamed any.
type Program struct {
	ID       uint32
	Uniforms map[string]string
}

// NewProgram compiles and links a program. The vertex shader's in_vert
// attribute is bound to VertexAttrib.
func NewProgram(vertexShaderSource, fragmentShaderSource string) (*Program, error) {
	vertexShader, err := compileShader(vertexShaderSource, gles2.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gles2.DeleteShader(vertexShader)
	fragmentShader, err := compileShader(fragmentShaderSource, gles2.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gles2.DeleteShader(fragmentShader)

	program := gles2.CreateProgram()
	gles2.AttachShader(program, vertexShader)
	gles2.AttachShader(program, fragmentShader)
	gles2.BindAttribLocation(program, VertexAttrib, gles2.Str("in_vert\x00"))
	gles2.LinkProgram(program)

	var status int32
	gles2.GetProgramiv(program, gles2.LINK_STATUS, &status)
	if status == gles2.FALSE {
		var logLength int32
		gles2.GetProgramiv(program, gles2.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gles2.GetProgramInfoLog(program, logLength, nil, gles2.Str(log))
		gles2.DeleteProgram(program)
		return nil, fmt.Errorf("failed to link program: %v", log)
	}
	return &Program{ID: program}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gles2.CreateShader(shaderType)
	csources, free := gles2.Strs(source + "\x00")
	gles2.ShaderSource(shader, 1, csources, nil)
	free()
	gles2.CompileShader(shader)

	var status int32
	gles2.GetShaderiv(shader, gles2.COMPILE_STATUS, &status)
	if status == gles2.FALSE {
		var logLength int32
		gles2.GetShaderiv(shader, gles2.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gles2.GetShaderInfoLog(shader, logLength, nil, gles2.Str(logText))
		gles2.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}

// UniformLocation looks a uniform up by its source name.
func (p *Program) UniformLocation(name string) int32 {
	if mapped, ok := p.Uniforms[name]; ok {
		name = mapped
	}
	return gles2.GetUniformLocation(p.ID, gles2.Str(name+"\x00"))
}

// SetColor sets the vec4 uniform name to c in non-premultiplied [0, 1]
// components. The program must be in use.
func (p *Program) SetColor(name string, c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	gles2.Uniform4f(p.UniformLocation(name),
		float32(n.R)/255, float32(n.G)/255, float32(n.B)/255, float32(n.A)/255)
}

func (p *Program) Use() { gles2.UseProgram(p.ID) }

func (p *Program) Release() {
	if p.ID != 0 {
		gles2.DeleteProgram(p.ID)
		p.ID = 0
	}
}
