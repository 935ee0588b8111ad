package renderer

import (
	"github.com/unrolled/render"
)

func New() *render.Render {
	return render.New(render.Options{
		Charset:    "UTF-8",
		IndentJSON: false,
	})
}
