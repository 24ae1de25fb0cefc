package ui

import (
	"image"
	"image/color"
	"log"

	"github.com/go-gl/gl/v2.1/gl"
)

// glTexture is an uploaded image and its size in pixels.
type glTexture struct {
	id   uint32
	w, h int
}

func uploadTexture(img *image.RGBA) glTexture {
	b := img.Bounds()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return glTexture{id: id, w: b.Dx(), h: b.Dy()}
}

func (t glTexture) delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
	}
}

// drawQuad draws t with its top left corner at x, y in window coordinates.
// The orthographic projection must already be set up.
func (t glTexture) drawQuad(x, y float32) {
	w, h := float32(t.w), float32(t.h)

	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.Color4f(1, 1, 1, 1)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(x, y)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(x+w, y)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(x+w, y+h)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(x, y+h)
	gl.End()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.TEXTURE_2D)
}

var (
	labelColor = color.RGBA{220, 230, 255, 255}
	hudFg      = color.RGBA{0, 255, 255, 255}
	hudBg      = color.RGBA{0, 0, 0, 160}
)

// label returns the cached texture for txt, rendering it on first use.
func (ctx *DrawContext) label(txt string) (glTexture, bool) {
	if t, ok := ctx.labels[txt]; ok {
		return t, true
	}

	img, err := ctx.txt.Render(txt, 11, labelColor)
	if err != nil {
		log.Printf(`can't render label %q: %s`, txt, err)
		return glTexture{}, false
	}

	t := uploadTexture(img)
	ctx.labels[txt] = t
	return t, true
}
