package resources

import (
	"math"
)

// Mesh is an indexed triangle list. Vertices and Normals hold three values
// per vertex, UVs two.
type Mesh struct {
	Vertices []float32
	Normals  []float32
	UVs      []float32
	Indices  []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

const (
	minDetail = 10
	maxDetail = 64
)

// DetailFor picks the number of sphere slices for a body of radius r.
func DetailFor(r float64) int {
	d := int(math.Max(minDetail, 5*math.Log(r+1)))
	if d > maxDetail {
		d = maxDetail
	}
	return d
}

type meshKey struct {
	shape        byte
	size, detail int
	extra        int
}

// quantize rounds a ring ratio to a hundredth so nearly equal rings share a
// mesh.
func quantize(v float64) int {
	return int(math.Round(v * 100))
}

func buildSphere(r float64, detail int) *Mesh {
	if detail < 3 {
		detail = 3
	}
	m := &Mesh{}
	for i := 0; i <= detail; i++ {
		lat := math.Pi * (-0.5 + float64(i)/float64(detail))
		y, zr := math.Sincos(lat)

		for j := 0; j <= detail; j++ {
			lng := 2 * math.Pi * float64(j) / float64(detail)
			z, x := math.Sincos(lng)

			nx, ny, nz := x*zr, y, z*zr
			m.Normals = append(m.Normals, float32(nx), float32(ny), float32(nz))
			m.Vertices = append(m.Vertices, float32(nx*r), float32(ny*r), float32(nz*r))
			m.UVs = append(m.UVs, float32(j)/float32(detail), 1-float32(i)/float32(detail))
		}
	}

	row := uint32(detail + 1)
	for i := uint32(0); i < uint32(detail); i++ {
		for j := uint32(0); j < uint32(detail); j++ {
			a := i*row + j
			b := a + row
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}

	return m
}

func buildRing(inner, outer float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	for i := 0; i <= segments; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		u := float32(i) / float32(segments)
		m.Vertices = append(m.Vertices,
			float32(c*inner), 0, float32(s*inner),
			float32(c*outer), 0, float32(s*outer))
		m.Normals = append(m.Normals, 0, 1, 0, 0, 1, 0)
		m.UVs = append(m.UVs, u, 0, u, 1)
	}

	for i := uint32(0); i < uint32(segments); i++ {
		a := 2 * i
		m.Indices = append(m.Indices, a, a+1, a+2, a+2, a+1, a+3)
	}

	return m
}
