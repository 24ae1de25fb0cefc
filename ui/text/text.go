package text

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

type Context struct {
	ft  *freetype.Context
	fnt *truetype.Font
}

// NewContext loads the TrueType font at path. An empty path uses the
// bundled Go Regular face.
func NewContext(path string) (*Context, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, `can't read font`)
		}
	}

	fnt, err := freetype.ParseFont(data)
	if err != nil {
		return nil, errors.Wrapf(err, `can't parse font %q`, path)
	}

	ctx := freetype.NewContext()
	ctx.SetFont(fnt)
	/* XXX: get appropriate DPI for current display */
	ctx.SetDPI(96)

	return &Context{ctx, fnt}, nil
}

func int26_6ToFloat64(i fixed.Int26_6) float64 {
	return float64(i) / 64
}

type nullImage struct{}

func (i nullImage) ColorModel() color.Model {
	return color.RGBAModel
}
func (i nullImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, 1, 1)
}
func (i nullImage) At(x, y int) color.Color {
	return color.Black
}
func (i nullImage) Set(x, y int, c color.Color) {
}

// metrics returns the line height and the ascent in pixels at size points.
func (c *Context) metrics(size float64) (height, ascent int) {
	px := size * 96 / 72
	bnd := c.fnt.Bounds(fixed.Int26_6(px * 64))
	height = int(int26_6ToFloat64(bnd.Max.Y-bnd.Min.Y) + 0.5)
	ascent = int(int26_6ToFloat64(bnd.Max.Y) + 0.5)
	return height, ascent
}

// Render draws txt on a transparent image just large enough to hold it.
func (c *Context) Render(txt string, size float64, col color.Color) (*image.RGBA, error) {
	lh, ascent := c.metrics(size)

	c.ft.SetSrc(image.NewUniform(col))
	c.ft.SetFontSize(size)

	/* Render image to temporary buffer to determine final size */
	tmp := nullImage{}
	c.ft.SetDst(tmp)
	c.ft.SetClip(tmp.Bounds())
	p, err := c.ft.DrawString(txt, freetype.Pt(0, ascent))
	if err != nil {
		return nil, errors.Wrap(err, `can't measure text`)
	}

	w := int(int26_6ToFloat64(p.X) + 0.5)
	if w < 1 {
		w = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, lh))
	c.ft.SetDst(dst)
	c.ft.SetClip(dst.Bounds())

	if _, err := c.ft.DrawString(txt, freetype.Pt(0, ascent)); err != nil {
		return nil, errors.Wrap(err, `can't render text`)
	}

	return dst, nil
}

func (c *Context) RenderMultiline(txt []string, size float64, bg, fg color.Color) (*image.RGBA, error) {
	w, h := 1, 0
	imgs := []*image.RGBA{}

	for _, l := range txt {
		i, err := c.Render(l, size, fg)
		if err != nil {
			return nil, err
		}
		if i.Bounds().Dx() > w {
			w = i.Bounds().Dx()
		}
		h += i.Bounds().Dy()
		imgs = append(imgs, i)
	}
	if h == 0 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	y := 0
	for _, src := range imgs {
		sr := src.Bounds()
		dp := image.Point{0, y}
		r := image.Rectangle{dp, dp.Add(sr.Size())}
		draw.Draw(dst, r, src, sr.Min, draw.Over)
		y += sr.Dy()
	}

	return dst, nil
}
