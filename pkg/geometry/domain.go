package geometry

import (
	"github.com/chazu/geograph/pkg/attribute"
)

// ConvertDomain returns a copy of a moved to domain to. Each destination
// element takes the mean of the source elements incident to it; see
// attribute.Aggregate for the per-type mean.
func (d *Data) ConvertDomain(a attribute.Attribute, to attribute.Domain) attribute.Attribute {
	if a.Domain() == to {
		return a.Clone()
	}
	return attribute.Aggregate(a, to, d.incidence(a.Domain(), to))
}

// incidence returns, for every element of domain to, the indices of the
// elements of domain from that contribute to it.
func (d *Data) incidence(from, to attribute.Domain) [][]int {
	groups := make([][]int, d.ElementCount(to))
	switch from {
	case attribute.Vertex:
		switch to {
		case attribute.Edge:
			for i, e := range d.edges {
				groups[i] = []int{e.VertA, e.VertB}
			}
		case attribute.Face:
			for i, f := range d.faces {
				groups[i] = []int{f.VertA, f.VertB, f.VertC}
			}
		case attribute.FaceCorner:
			for i, c := range d.faceCorners {
				groups[i] = []int{c.Vert}
			}
		}
	case attribute.Edge:
		switch to {
		case attribute.Vertex:
			for i, v := range d.vertices {
				groups[i] = v.Edges
			}
		case attribute.Face:
			for i, f := range d.faces {
				groups[i] = []int{f.EdgeA, f.EdgeB, f.EdgeC}
			}
		case attribute.FaceCorner:
			for i, c := range d.faceCorners {
				groups[i] = d.vertices[c.Vert].Edges
			}
		}
	case attribute.Face:
		switch to {
		case attribute.Vertex:
			for i, v := range d.vertices {
				groups[i] = v.Faces
			}
		case attribute.Edge:
			for i, e := range d.edges {
				groups[i] = edgeFaces(e)
			}
		case attribute.FaceCorner:
			for i, c := range d.faceCorners {
				groups[i] = d.vertices[c.Vert].Faces
			}
		}
	case attribute.FaceCorner:
		switch to {
		case attribute.Vertex:
			for i, v := range d.vertices {
				groups[i] = v.FaceCorners
			}
		case attribute.Edge:
			for i, e := range d.edges {
				var corners []int
				for _, fi := range edgeFaces(e) {
					for _, ci := range d.faces[fi].Corners() {
						if v := d.faceCorners[ci].Vert; v == e.VertA || v == e.VertB {
							corners = append(corners, ci)
						}
					}
				}
				groups[i] = corners
			}
		case attribute.Face:
			for i, f := range d.faces {
				groups[i] = []int{f.FaceCornerA, f.FaceCornerB, f.FaceCornerC}
			}
		}
	}
	return groups
}

func edgeFaces(e Edge) []int {
	if e.FaceB == -1 {
		return []int{e.FaceA}
	}
	return []int{e.FaceA, e.FaceB}
}
