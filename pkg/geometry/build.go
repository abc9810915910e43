package geometry

import (
	"fmt"

	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/vmath"
)

// MeshInput describes a triangle mesh to build topology from. Only Positions
// is required. UVs, when present, hold one value per face corner (three per
// triangle); MaterialIndices and ShadeSmooth hold one value per triangle.
type MeshInput struct {
	Positions       []vmath.Vec3
	Triangles       [][3]int
	UVs             []vmath.Vec2
	MaterialIndices []int
	ShadeSmooth     []bool
}

type edgeKey struct{ a, b int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// FromMesh builds geometry with full topology and the built-in attributes
// from a triangle list. Edges are shared between faces that have the same
// two vertices; face normals follow the triangle winding.
func FromMesh(in MeshInput) (*Data, error) {
	nv := len(in.Positions)
	for i, tri := range in.Triangles {
		for _, v := range tri {
			if v < 0 || v >= nv {
				return nil, fmt.Errorf("%w: triangle %d index %d (have %d vertices)", ErrBadTopology, i, v, nv)
			}
		}
	}
	if in.UVs != nil && len(in.UVs) != 3*len(in.Triangles) {
		return nil, fmt.Errorf("%w: %d uvs for %d face corners", ErrAttributeLength, len(in.UVs), 3*len(in.Triangles))
	}
	if in.MaterialIndices != nil && len(in.MaterialIndices) != len(in.Triangles) {
		return nil, fmt.Errorf("%w: %d material indices for %d faces", ErrAttributeLength, len(in.MaterialIndices), len(in.Triangles))
	}
	if in.ShadeSmooth != nil && len(in.ShadeSmooth) != len(in.Triangles) {
		return nil, fmt.Errorf("%w: %d shade flags for %d faces", ErrAttributeLength, len(in.ShadeSmooth), len(in.Triangles))
	}

	d := newData()
	d.vertices = make([]Vertex, nv)
	d.faces = make([]Face, 0, len(in.Triangles))
	d.faceCorners = make([]FaceCorner, 0, 3*len(in.Triangles))
	edgeIndex := make(map[edgeKey]int)

	edgeFor := func(a, b, face int) int {
		key := makeEdgeKey(a, b)
		if idx, ok := edgeIndex[key]; ok {
			e := &d.edges[idx]
			if e.FaceB == -1 && e.FaceA != face {
				e.FaceB = face
			}
			return idx
		}
		idx := len(d.edges)
		d.edges = append(d.edges, Edge{VertA: a, VertB: b, FaceA: face, FaceB: -1, SelfIndex: idx})
		edgeIndex[key] = idx
		return idx
	}

	for fi, tri := range in.Triangles {
		base := len(d.faceCorners)
		for _, v := range tri {
			d.faceCorners = append(d.faceCorners, FaceCorner{Vert: v, Face: fi})
		}
		d.faces = append(d.faces, Face{
			VertA: tri[0], VertB: tri[1], VertC: tri[2],
			FaceCornerA: base, FaceCornerB: base + 1, FaceCornerC: base + 2,
			EdgeA: edgeFor(tri[0], tri[1], fi),
			EdgeB: edgeFor(tri[1], tri[2], fi),
			EdgeC: edgeFor(tri[2], tri[0], fi),
		})
	}

	d.rebuildIncidence()

	d.submeshCount = 0
	if nv > 0 {
		d.submeshCount = 1
	}
	for _, m := range in.MaterialIndices {
		if m+1 > d.submeshCount {
			d.submeshCount = m + 1
		}
	}

	normals := make([]vmath.Vec3, len(d.faces))
	for i, f := range d.faces {
		normals[i] = vmath.TriangleNormal(in.Positions[f.VertA], in.Positions[f.VertB], in.Positions[f.VertC])
	}
	materials := in.MaterialIndices
	if materials == nil {
		materials = make([]int, len(d.faces))
	}
	smooth := in.ShadeSmooth
	if smooth == nil {
		smooth = make([]bool, len(d.faces))
	}
	uvs := in.UVs
	if uvs == nil {
		uvs = make([]vmath.Vec2, len(d.faceCorners))
	}

	d.put(attribute.NewVec3(AttrPosition, attribute.Vertex, in.Positions))
	d.put(attribute.NewVec3(AttrNormal, attribute.Face, normals))
	d.put(attribute.NewInt(AttrMaterialIndex, attribute.Face, materials))
	d.put(attribute.NewBool(AttrShadeSmooth, attribute.Face, smooth))
	d.put(attribute.NewClampedFloat(AttrCrease, attribute.Edge, make([]float64, len(d.edges))))
	d.put(attribute.NewVec2(AttrUV, attribute.FaceCorner, uvs))
	return d, nil
}

// rebuildIncidence recomputes the per-vertex incidence lists and face
// adjacency from edges, faces and face corners.
func (d *Data) rebuildIncidence() {
	for i := range d.vertices {
		d.vertices[i] = Vertex{}
	}
	for i := range d.faces {
		d.faces[i].AdjacentFaces = nil
	}
	for ei, e := range d.edges {
		d.vertices[e.VertA].Edges = append(d.vertices[e.VertA].Edges, ei)
		if e.VertB != e.VertA {
			d.vertices[e.VertB].Edges = append(d.vertices[e.VertB].Edges, ei)
		}
		if e.FaceB != -1 {
			d.faces[e.FaceA].AdjacentFaces = append(d.faces[e.FaceA].AdjacentFaces, e.FaceB)
			d.faces[e.FaceB].AdjacentFaces = append(d.faces[e.FaceB].AdjacentFaces, e.FaceA)
		}
	}
	for fi, f := range d.faces {
		seen := [3]int{-1, -1, -1}
		for k, v := range f.Verts() {
			if v == seen[0] || v == seen[1] {
				continue
			}
			seen[k] = v
			d.vertices[v].Faces = append(d.vertices[v].Faces, fi)
		}
	}
	for ci, c := range d.faceCorners {
		d.vertices[c.Vert].FaceCorners = append(d.vertices[c.Vert].FaceCorners, ci)
	}
}

// Points builds a vertex-only geometry, as used for instancing and curve
// sampling. It has one submesh when it has any vertices.
func Points(positions []vmath.Vec3) *Data {
	d, _ := FromMesh(MeshInput{Positions: positions})
	return d
}
