// Package geometry holds the static vertex data of the viewer scenes.
//
// Positions are flat xyz triples and texture coordinates flat uv pairs,
// laid out for direct upload into a vertex buffer. Every function returns
// a fresh slice the caller may modify.
package geometry

import (
	"fmt"
	"math"
	"sort"
)

// Primitive is the draw mode a mesh is meant for.
type Primitive string

const (
	Points    Primitive = "points"
	Lines     Primitive = "lines"
	Triangles Primitive = "triangles"
)

// DefaultSphereResolution is the longitude count used by the point sphere.
const DefaultSphereResolution = 32

// Mesh bundles vertex data with how to draw it.
type Mesh struct {
	Name      string    `json:"name"`
	Primitive Primitive `json:"primitive"`
	Positions []float32 `json:"positions"`
	TexCoords []float32 `json:"texcoords,omitempty"`
}

// VertexCount returns the number of xyz vertices.
func (m Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// FrameLines returns the 12 edges of the [-1, 1] cube as line pairs.
func FrameLines() []float32 {
	return []float32{
		-1, -1, -1, 1, -1, -1,
		1, 1, -1, 1, -1, -1,
		1, 1, -1, -1, 1, -1,
		-1, -1, -1, -1, 1, -1,
		1, -1, 1, -1, -1, 1,
		1, 1, 1, 1, -1, 1,
		1, 1, 1, -1, 1, 1,
		-1, 1, 1, -1, -1, 1,
		-1, -1, -1, -1, -1, 1,
		1, -1, 1, 1, -1, -1,
		1, 1, 1, 1, 1, -1,
		-1, 1, 1, -1, 1, -1,
	}
}

// CubeLines is the wireframe cube drawn around the point sphere. It shares
// its edge set with FrameLines.
func CubeLines() []float32 {
	return FrameLines()
}

// CubeTriangles returns the [-1, 1] cube as 12 triangles, two per face.
func CubeTriangles() []float32 {
	return []float32{
		-1, 1, -1, 1, -1, -1, 1, 1, -1,
		-1, 1, -1, -1, -1, -1, 1, -1, -1,
		1, 1, 1, -1, -1, 1, -1, 1, 1,
		1, 1, 1, 1, -1, 1, -1, -1, 1,

		-1, -1, 1, -1, 1, -1, -1, 1, 1,
		-1, -1, 1, -1, -1, -1, -1, 1, -1,
		1, 1, 1, 1, -1, -1, 1, -1, 1,
		1, 1, 1, 1, 1, -1, 1, -1, -1,

		1, -1, -1, -1, -1, 1, 1, -1, 1,
		1, -1, -1, -1, -1, -1, -1, -1, 1,
		1, 1, 1, -1, 1, -1, 1, 1, -1,
		1, 1, 1, -1, 1, 1, -1, 1, -1,
	}
}

// quadTexCoords maps a full texture onto each of n quads made of two
// triangles.
func quadTexCoords(n int) []float32 {
	face := [12]float32{
		0, 0, 1, 1, 1, 0,
		0, 0, 0, 1, 1, 1,
	}
	out := make([]float32, 0, n*len(face))
	for i := 0; i < n; i++ {
		out = append(out, face[:]...)
	}
	return out
}

// CubeTexCoords returns one uv pair per CubeTriangles vertex.
func CubeTexCoords() []float32 {
	return quadTexCoords(6)
}

// Panels returns two parallel unit quads at z = -0.5 and z = 0.5, used
// to show alpha blending of overlapping layers.
func Panels() []float32 {
	return []float32{
		-1, 1, -0.5, 1, -1, -0.5, 1, 1, -0.5,
		-1, 1, -0.5, -1, -1, -0.5, 1, -1, -0.5,
		-1, 1, 0.5, 1, -1, 0.5, 1, 1, 0.5,
		-1, 1, 0.5, -1, -1, 0.5, 1, -1, 0.5,
	}
}

// PanelTexCoords returns one uv pair per Panels vertex.
func PanelTexCoords() []float32 {
	return quadTexCoords(2)
}

// Label returns a half-size quad on the z = -1 face of the cube, where a
// rendered text texture is placed.
func Label() []float32 {
	return []float32{
		-0.5, 0.5, -1,
		0.5, -0.5, -1,
		0.5, 0.5, -1,
		-0.5, 0.5, -1,
		-0.5, -0.5, -1,
		0.5, -0.5, -1,
	}
}

// LabelTexCoords returns one uv pair per Label vertex.
func LabelTexCoords() []float32 {
	return quadTexCoords(1)
}

// SphereSize returns the number of points Sphere(res) produces.
func SphereSize(res int) int {
	half := res / 2
	return (half-1)*res + 2
}

// Sphere returns points on the unit sphere: res meridians, each sampled
// at res/2-1 latitudes excluding the poles, followed by the north and
// south poles. res must be an even number of at least 4.
func Sphere(res int) []float32 {
	half := res / 2
	size := SphereSize(res)
	ret := make([]float32, size*3)

	for i := 0; i < res; i++ {
		lon := math.Pi * float64(i) / float64(half)
		for j := 1; j < half; j++ {
			lat := math.Pi * float64(j) / float64(half)
			r := math.Sin(lat)
			idx := ((half-1)*i + j - 1) * 3
			ret[idx+0] = float32(math.Cos(lon) * r)
			ret[idx+1] = float32(math.Sin(lon) * r)
			ret[idx+2] = float32(math.Cos(lat))
		}
	}

	ret[size*3-4] = 1
	ret[size*3-1] = -1
	return ret
}

// builders maps mesh names to constructors.
var builders = map[string]func() Mesh{
	"frame": func() Mesh {
		return Mesh{Primitive: Lines, Positions: FrameLines()}
	},
	"cube": func() Mesh {
		return Mesh{Primitive: Triangles, Positions: CubeTriangles(), TexCoords: CubeTexCoords()}
	},
	"wirecube": func() Mesh {
		return Mesh{Primitive: Lines, Positions: CubeLines()}
	},
	"panels": func() Mesh {
		return Mesh{Primitive: Triangles, Positions: Panels(), TexCoords: PanelTexCoords()}
	},
	"label": func() Mesh {
		return Mesh{Primitive: Triangles, Positions: Label(), TexCoords: LabelTexCoords()}
	},
	"sphere": func() Mesh {
		return Mesh{Primitive: Points, Positions: Sphere(DefaultSphereResolution)}
	},
}

// Names returns the known mesh names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds the named mesh.
func ByName(name string) (Mesh, error) {
	build, ok := builders[name]
	if !ok {
		return Mesh{}, fmt.Errorf("unknown mesh %q", name)
	}
	m := build()
	m.Name = name
	return m, nil
}
