package shader

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/glcontext/graphics"
	gst "github.com/richinsley/goshadertranslator"
)

// Translation is a translated fragment shader.
type Translation struct {
	Code string
	// Uniforms maps each source uniform name to its name in Code.
	Uniforms map[string]string
}

// Translator turns WebGL2 fragment shaders into source for the current
// driver: GLSL ES 3.00, or GLSL 4.10 where contexts run on desktop GL. The underlying translator is created on first use.
type Translator struct {
	once sync.Once
	t    *gst.ShaderTranslator
	err  error
	mu   sync.Mutex
}

func NewTranslator() *Translator {
	return &Translator{}
}

func (tr *Translator) init() {
	tr.t, tr.err = gst.NewShaderTranslator(context.Background())
	if tr.err == nil {
		graphics.Logger().Debug("shader translator ready")
	}
}

// Translate translates a WebGL2 fragment shader. Only ES3 output is
// supported.
func (tr *Translator) Translate(src string, v graphics.Version) (*Translation, error) {
	if v != graphics.ES3 {
		return nil, fmt.Errorf("%w: shader translation targets es3, not %v", graphics.ErrInvalidArgument, v)
	}
	tr.once.Do(tr.init)
	if tr.err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", tr.err)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()
	fs, err := tr.t.TranslateShader(src, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	out := &Translation{
		Code:     fs.Code,
		Uniforms: make(map[string]string, len(fs.Variables)),
	}
	for name, v := range fs.Variables {
		out.Uniforms[name] = v.MappedName
	}
	return out, nil
}
