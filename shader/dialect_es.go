//go:build !darwin || ios

package shader

import (
	"github.com/richinsley/glcontext/graphics"
	gst "github.com/richinsley/goshadertranslator"
)

var outputFormat = gst.OutputFormatESSL

func header(v graphics.Version) string {
	if v == graphics.ES3 {
		return "#version 300 es\n"
	}
	return "#version 100\n"
}
