package text

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func inked(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return true
		}
	}
	return false
}

func TestNewTextContext(t *testing.T) {
	if _, err := NewContext(""); err != nil {
		t.Errorf(`%s`, err)
	}
	if _, err := NewContext(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Errorf(`expected an error for a missing font`)
	}
}

func TestRender(t *testing.T) {
	c, err := NewContext("")
	if err != nil {
		t.Fatalf(`%s`, err)
	}

	gray := color.Gray{128}

	img, err := c.Render("Saturn 9.5 AU", 20, gray)
	if err != nil {
		t.Fatalf(`%s`, err)
	}
	if img.Bounds().Dx() < 50 || img.Bounds().Dy() < 10 {
		t.Errorf(`label too small: %v`, img.Bounds())
	}
	if !inked(img) {
		t.Errorf(`nothing was drawn`)
	}

	short, err := c.Render("Io", 20, gray)
	if err != nil {
		t.Fatalf(`%s`, err)
	}
	if short.Bounds().Dx() >= img.Bounds().Dx() {
		t.Errorf(`shorter text should render narrower`)
	}
	if short.Bounds().Dy() != img.Bounds().Dy() {
		t.Errorf(`line height depends on text: %d vs %d`, short.Bounds().Dy(), img.Bounds().Dy())
	}

	w, err := os.Create(filepath.Join(t.TempDir(), "label.png"))
	if err != nil {
		t.Fatalf(`%s`, err)
	}
	defer w.Close()

	if err := png.Encode(w, img); err != nil {
		t.Errorf(`can't dump image: %s`, err)
	}
}

func TestRenderEmpty(t *testing.T) {
	c, err := NewContext("")
	if err != nil {
		t.Fatalf(`%s`, err)
	}

	img, err := c.Render("", 12, color.White)
	if err != nil {
		t.Fatalf(`%s`, err)
	}
	if img.Bounds().Dx() != 1 {
		t.Errorf(`expected a one pixel wide image, got %v`, img.Bounds())
	}
}

func TestRenderMultiline(t *testing.T) {
	c, err := NewContext("")
	if err != nil {
		t.Fatalf(`%s`, err)
	}

	bg := color.Gray{0}
	fg := color.Gray{127}
	lines := []string{"Jupiter", "Radius 2.2", "Speed 0.08"}

	one, err := c.Render(lines[0], 20, fg)
	if err != nil {
		t.Fatalf(`%s`, err)
	}

	img, err := c.RenderMultiline(lines, 20, bg, fg)
	if err != nil {
		t.Fatalf(`%s`, err)
	}
	if img.Bounds().Dy() != 3*one.Bounds().Dy() {
		t.Errorf(`expected three lines of %d pixels, got %d`, one.Bounds().Dy(), img.Bounds().Dy())
	}
	if r, g, b, a := img.At(0, 0).RGBA(); r != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Errorf(`background not filled`)
	}
}
