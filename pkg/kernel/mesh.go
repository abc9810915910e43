package kernel

import (
	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/vmath"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, uvs 2 floats per vertex, indices has
// 3 uint32s per triangle and submeshes one material index per triangle.
type Mesh struct {
	Vertices  []float32 `json:"vertices"`  // [x0,y0,z0, x1,y1,z1, ...]
	Normals   []float32 `json:"normals"`   // [nx0,ny0,nz0, ...]
	UVs       []float32 `json:"uvs"`       // [u0,v0, u1,v1, ...]
	Indices   []uint32  `json:"indices"`   // [i0,i1,i2, ...] triangles
	Submeshes []int     `json:"submeshes"` // material index per triangle
	Name      string    `json:"name"`      // source file or graph id
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// FromGeometry flattens d into render buffers with one vertex per face
// corner. Faces flagged shade_smooth take the averaged vertex normal,
// others the face normal.
func FromGeometry(d *geometry.Data) *Mesh {
	m := &Mesh{}
	if d == nil || d.IsEmpty() {
		return m
	}
	faceNormals := geometry.AttributeOrDefault(d, geometry.AttrNormal, attribute.Face, vmath.Up)
	vertexNormals := geometry.AttributeOrDefault(d, geometry.AttrNormal, attribute.Vertex, vmath.Up)
	smooth := geometry.AttributeOrDefault(d, geometry.AttrShadeSmooth, attribute.Face, false)
	material := geometry.AttributeOrDefault(d, geometry.AttrMaterialIndex, attribute.Face, 0)
	uvs := geometry.AttributeOrDefault(d, geometry.AttrUV, attribute.FaceCorner, vmath.Zero2)
	positions := d.Positions()

	n := 3 * d.FaceCount()
	m.Vertices = make([]float32, 0, 3*n)
	m.Normals = make([]float32, 0, 3*n)
	m.UVs = make([]float32, 0, 2*n)
	m.Indices = make([]uint32, 0, n)
	m.Submeshes = make([]int, 0, d.FaceCount())

	for fi, f := range d.Faces() {
		verts, corners := f.Verts(), f.Corners()
		for k := 0; k < 3; k++ {
			p := positions[verts[k]]
			normal := faceNormals.Get(fi)
			if smooth.Get(fi) {
				normal = vmath.NormalizeSafe(vertexNormals.Get(verts[k]), normal)
			}
			uv := uvs.Get(corners[k])
			m.Indices = append(m.Indices, uint32(len(m.Vertices)/3))
			m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
			m.Normals = append(m.Normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			m.UVs = append(m.UVs, float32(uv.X), float32(uv.Y))
		}
		m.Submeshes = append(m.Submeshes, material.Get(fi))
	}
	return m
}

// Triangle returns the corner positions of triangle i.
func (m *Mesh) Triangle(i int) [3]vmath.Vec3 {
	var tri [3]vmath.Vec3
	for k := 0; k < 3; k++ {
		v := int(m.Indices[3*i+k]) * 3
		tri[k] = vmath.Vec3{X: float64(m.Vertices[v]), Y: float64(m.Vertices[v+1]), Z: float64(m.Vertices[v+2])}
	}
	return tri
}
