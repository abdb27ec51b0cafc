//go:build darwin && !ios

package shader

import (
	"github.com/richinsley/glcontext/graphics"
	gst "github.com/richinsley/goshadertranslator"
)

// Windowed contexts on macOS are desktop GL: a 4.1 core profile stands in
// for ES3 and a 2.1 context for ES2.
var outputFormat = gst.OutputFormatGLSL410

func header(v graphics.Version) string {
	if v == graphics.ES3 {
		return "#version 410 core\n"
	}
	return "#version 120\n"
}
