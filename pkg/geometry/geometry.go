// Package geometry implements triangle-mesh geometry with explicit topology
// (vertices, edges, faces, face corners) and named per-domain attributes.
//
// A Data value is built from triangles with FromMesh or one of the
// primitives, combined with MergeWith, and never represented as nil: Empty
// returns the canonical zero-element geometry.
package geometry

import (
	"errors"

	"github.com/chazu/geograph/pkg/attribute"
)

// Built-in attribute names.
const (
	AttrPosition      = "position"
	AttrNormal        = "normal"
	AttrMaterialIndex = "material_index"
	AttrShadeSmooth   = "shade_smooth"
	AttrCrease        = "crease"
	AttrUV            = "uv"
)

// Limits applied by primitives and primitive nodes.
const (
	MaxIcosphereSubdivisions  = 5
	MinCircularGeometryPoints = 3
	MaxCircularGeometryPoints = 1024
	MinCircularGeometryRadius = 0.01
	MinGeometryHeight         = 0.01
)

var (
	// ErrBadTopology is returned when triangle indices reference missing vertices.
	ErrBadTopology = errors.New("geometry: triangle references a missing vertex")
	// ErrAttributeLength is returned when an attribute does not match its
	// domain's element count.
	ErrAttributeLength = errors.New("geometry: attribute length does not match domain size")
)

// ---------------------------------------------------------------------------
// Topology
// ---------------------------------------------------------------------------

// Vertex lists the elements incident to a vertex.
type Vertex struct {
	Edges       []int `json:"edges"`
	Faces       []int `json:"faces"`
	FaceCorners []int `json:"faceCorners"`
}

// Edge joins two vertices and borders one or two faces. FaceB is -1 for a
// boundary edge.
type Edge struct {
	VertA     int `json:"vertA"`
	VertB     int `json:"vertB"`
	FaceA     int `json:"faceA"`
	FaceB     int `json:"faceB"`
	SelfIndex int `json:"selfIndex"`
}

// Face is a triangle.
type Face struct {
	VertA         int   `json:"vertA"`
	VertB         int   `json:"vertB"`
	VertC         int   `json:"vertC"`
	FaceCornerA   int   `json:"faceCornerA"`
	FaceCornerB   int   `json:"faceCornerB"`
	FaceCornerC   int   `json:"faceCornerC"`
	EdgeA         int   `json:"edgeA"`
	EdgeB         int   `json:"edgeB"`
	EdgeC         int   `json:"edgeC"`
	AdjacentFaces []int `json:"adjacentFaces"`
}

// Verts returns the face's vertex indices in winding order.
func (f Face) Verts() [3]int { return [3]int{f.VertA, f.VertB, f.VertC} }

// Corners returns the face's corner indices.
func (f Face) Corners() [3]int { return [3]int{f.FaceCornerA, f.FaceCornerB, f.FaceCornerC} }

// EdgeIndices returns the face's edge indices.
func (f Face) EdgeIndices() [3]int { return [3]int{f.EdgeA, f.EdgeB, f.EdgeC} }

// FaceCorner is one corner of one face.
type FaceCorner struct {
	Vert int `json:"vert"`
	Face int `json:"face"`
}

// ---------------------------------------------------------------------------
// Data
// ---------------------------------------------------------------------------

// Data is geometry: topology plus attributes.
type Data struct {
	vertices     []Vertex
	edges        []Edge
	faces        []Face
	faceCorners  []FaceCorner
	submeshCount int
	attributes   [4]map[string]attribute.Attribute
}

func newData() *Data {
	d := &Data{}
	for i := range d.attributes {
		d.attributes[i] = make(map[string]attribute.Attribute)
	}
	return d
}

// Empty returns a new zero-element geometry.
func Empty() *Data {
	return newData()
}

// IsEmpty reports whether d has no vertices. A nil Data is empty.
func (d *Data) IsEmpty() bool {
	return d == nil || len(d.vertices) == 0
}

func (d *Data) Vertices() []Vertex { return d.vertices }
func (d *Data) Edges() []Edge { return d.edges }
func (d *Data) Faces() []Face { return d.faces }
func (d *Data) FaceCorners() []FaceCorner { return d.faceCorners }
func (d *Data) VertexCount() int { return len(d.vertices) }
func (d *Data) EdgeCount() int { return len(d.edges) }
func (d *Data) FaceCount() int { return len(d.faces) }
func (d *Data) FaceCornerCount() int { return len(d.faceCorners) }
func (d *Data) SubmeshCount() int { return d.submeshCount }

// ElementCount returns the number of elements in a domain.
func (d *Data) ElementCount(domain attribute.Domain) int {
	switch domain {
	case attribute.Vertex:
		return len(d.vertices)
	case attribute.Edge:
		return len(d.edges)
	case attribute.Face:
		return len(d.faces)
	case attribute.FaceCorner:
		return len(d.faceCorners)
	}
	return 0
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	c := newData()
	if d == nil {
		return c
	}
	c.submeshCount = d.submeshCount
	c.vertices = make([]Vertex, len(d.vertices))
	for i, v := range d.vertices {
		c.vertices[i] = Vertex{
			Edges:       append([]int(nil), v.Edges...),
			Faces:       append([]int(nil), v.Faces...),
			FaceCorners: append([]int(nil), v.FaceCorners...),
		}
	}
	c.edges = append([]Edge(nil), d.edges...)
	c.faces = make([]Face, len(d.faces))
	for i, f := range d.faces {
		f.AdjacentFaces = append([]int(nil), f.AdjacentFaces...)
		c.faces[i] = f
	}
	c.faceCorners = append([]FaceCorner(nil), d.faceCorners...)
	for i, m := range d.attributes {
		for name, a := range m {
			c.attributes[i][name] = a.Clone()
		}
	}
	return c
}
