// Package resources owns the meshes and textures of one scene. A Manager is
// created with the scene and closed with it; nothing is cached process-wide.
package resources

import (
	"context"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// MaxTextureSize bounds the longer side of a loaded texture.
const MaxTextureSize = 2048

// Loader fetches the source image for a texture key.
type Loader interface {
	Load(key string) (image.Image, error)
}

// DirLoader loads "<dir>/<key>.<ext>" for the first extension that exists.
type DirLoader string

var textureExts = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp"}

func (d DirLoader) Load(key string) (image.Image, error) {
	for _, ext := range textureExts {
		fn := filepath.Join(string(d), key+ext)
		fh, err := os.Open(fn)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, `can't open %s`, fn)
		}

		img, _, err := image.Decode(fh)
		fh.Close()
		if err != nil {
			return nil, errors.Wrapf(err, `can't decode %s`, fn)
		}
		return img, nil
	}

	return nil, errors.Wrapf(os.ErrNotExist, `no texture for %q in %s`, key, string(d))
}

// Texture is either a decoded image or, when loading failed, a flat color.
type Texture struct {
	Key      string
	Image    *image.RGBA
	Fallback colorful.Color
	Err      error
}

func (t *Texture) Loaded() bool {
	return t.Image != nil
}

type textureEntry struct {
	once sync.Once
	tex  *Texture
}

type Manager struct {
	loader   Loader
	fallback func(key string) colorful.Color

	l        sync.Mutex
	meshes   map[meshKey]*Mesh
	textures map[string]*textureEntry
	release  []func()
	closed   bool
}

// New creates a manager. loader may be nil, in which case every texture
// falls back to fallback(key).
func New(loader Loader, fallback func(key string) colorful.Color) *Manager {
	if fallback == nil {
		fallback = func(string) colorful.Color { return colorful.Color{R: 0.6, G: 0.6, B: 0.6} }
	}
	return &Manager{
		loader:   loader,
		fallback: fallback,
		meshes:   map[meshKey]*Mesh{},
		textures: map[string]*textureEntry{},
	}
}

func (m *Manager) mesh(k meshKey, build func() *Mesh) *Mesh {
	m.l.Lock()
	defer m.l.Unlock()

	if mesh, ok := m.meshes[k]; ok {
		return mesh
	}
	mesh := build()
	m.meshes[k] = mesh
	return mesh
}

// Sphere returns the shared unit sphere mesh for a detail level. Callers
// scale it to the body radius when drawing.
func (m *Manager) Sphere(detail int) *Mesh {
	k := meshKey{shape: 's', detail: detail}
	return m.mesh(k, func() *Mesh { return buildSphere(1, detail) })
}

// Ring returns the shared flat annulus mesh. inner and outer are in units of
// the radius it gets scaled by, so they are rounded to a hundredth.
func (m *Manager) Ring(inner, outer float64, segments int) *Mesh {
	k := meshKey{shape: 'r', size: quantize(inner), extra: quantize(outer), detail: segments}
	return m.mesh(k, func() *Mesh { return buildRing(float64(k.size)/100, float64(k.extra)/100, segments) })
}

// MeshCount is the number of distinct meshes built so far.
func (m *Manager) MeshCount() int {
	m.l.Lock()
	defer m.l.Unlock()

	return len(m.meshes)
}

func (m *Manager) entry(key string) *textureEntry {
	m.l.Lock()
	defer m.l.Unlock()

	e, ok := m.textures[key]
	if !ok {
		e = &textureEntry{}
		m.textures[key] = e
	}
	return e
}

// Texture returns the texture for key, loading it on first use. Loads of
// different keys do not wait on each other. A failed load is logged once and
// remembered as a flat-colored fallback.
func (m *Manager) Texture(key string) *Texture {
	e := m.entry(key)
	e.once.Do(func() {
		e.tex = m.load(key)
	})
	return e.tex
}

func (m *Manager) load(key string) *Texture {
	t := &Texture{Key: key, Fallback: m.fallback(key)}

	if m.loader == nil {
		t.Err = errors.Errorf(`no texture loader for %q`, key)
		return t
	}

	img, err := m.loader.Load(key)
	if err != nil {
		t.Err = err
		log.Printf(`texture %s unavailable, using flat color: %s`, key, err)
		return t
	}

	t.Image = toRGBA(img)
	return t
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w > MaxTextureSize || h > MaxTextureSize {
		s := float64(MaxTextureSize) / float64(w)
		if h > w {
			s = float64(MaxTextureSize) / float64(h)
		}
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*s), int(float64(h)*s)))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		return dst
	}

	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Preload loads keys concurrently. A key that fails to load only degrades
// that key. The returned error is non-nil only if ctx ends first.
func (m *Manager) Preload(ctx context.Context, keys []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, key := range keys {
		key := key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m.Texture(key)
			return nil
		})
	}

	return g.Wait()
}

// OnClose registers fn to run when the manager is closed. The GL viewer uses
// it to free its GPU copies.
func (m *Manager) OnClose(fn func()) {
	m.l.Lock()
	defer m.l.Unlock()

	m.release = append(m.release, fn)
}

// Close drops every cached resource and runs the release hooks in reverse
// registration order. Closing twice is a no-op.
func (m *Manager) Close() {
	m.l.Lock()
	if m.closed {
		m.l.Unlock()
		return
	}
	m.closed = true
	release := m.release
	m.release = nil
	m.meshes = map[meshKey]*Mesh{}
	m.textures = map[string]*textureEntry{}
	m.l.Unlock()

	for i := len(release) - 1; i >= 0; i-- {
		release[i]()
	}
}
