package geometry

import (
	"github.com/samber/lo"

	"github.com/chazu/geograph/pkg/attribute"
)

// MergeWith appends src to d. Every index in src's topology is offset by d's
// pre-merge element counts and src's material indices are offset by d's
// submesh count. Attributes present on both sides are appended (src values
// converted to d's type and domain); attributes present on only one side are
// padded with defaults for the other side's elements.
func (d *Data) MergeWith(src *Data) {
	if src.IsEmpty() {
		return
	}
	vOff, eOff, fOff, cOff := len(d.vertices), len(d.edges), len(d.faces), len(d.faceCorners)
	before := [4]int{vOff, eOff, fOff, cOff}
	after := [4]int{len(src.vertices), len(src.edges), len(src.faces), len(src.faceCorners)}

	for _, domain := range attribute.Domains {
		for _, name := range d.AttributeNames(domain) {
			dst := d.attributes[domain][name]
			other, ok := src.lookup(name)
			if !ok {
				attribute.Append(dst, attribute.NewZero(name, domain, dst.Type(), after[domain]))
				continue
			}
			other = src.ConvertDomain(other, domain)
			if name == AttrMaterialIndex {
				other = offsetInts(other, d.submeshCount)
			}
			attribute.Append(dst, other)
		}
	}
	for _, a := range src.Attributes() {
		if d.HasAttribute(a.Name()) {
			continue
		}
		c := a.Clone()
		if c.Name() == AttrMaterialIndex {
			c = offsetInts(c, d.submeshCount)
		}
		attribute.PrependDefaults(c, before[c.Domain()])
		d.attributes[c.Domain()][c.Name()] = c
	}

	for _, v := range src.vertices {
		d.vertices = append(d.vertices, Vertex{
			Edges:       offset(v.Edges, eOff),
			Faces:       offset(v.Faces, fOff),
			FaceCorners: offset(v.FaceCorners, cOff),
		})
	}
	for _, e := range src.edges {
		e.VertA += vOff
		e.VertB += vOff
		e.FaceA += fOff
		if e.FaceB != -1 {
			e.FaceB += fOff
		}
		e.SelfIndex += eOff
		d.edges = append(d.edges, e)
	}
	for _, f := range src.faces {
		f.VertA += vOff
		f.VertB += vOff
		f.VertC += vOff
		f.FaceCornerA += cOff
		f.FaceCornerB += cOff
		f.FaceCornerC += cOff
		f.EdgeA += eOff
		f.EdgeB += eOff
		f.EdgeC += eOff
		f.AdjacentFaces = offset(f.AdjacentFaces, fOff)
		d.faces = append(d.faces, f)
	}
	for _, c := range src.faceCorners {
		d.faceCorners = append(d.faceCorners, FaceCorner{Vert: c.Vert + vOff, Face: c.Face + fOff})
	}
	d.submeshCount += src.submeshCount
}

// Merge returns a new geometry holding all inputs in order.
func Merge(parts ...*Data) *Data {
	out := Empty()
	for _, p := range parts {
		out.MergeWith(p)
	}
	return out
}

func offset(indices []int, by int) []int {
	return lo.Map(indices, func(i int, _ int) int { return i + by })
}

func offsetInts(a attribute.Attribute, by int) attribute.Attribute {
	ints := attribute.As[int](a)
	return attribute.New(ints.Name(), ints.Domain(), attribute.Int, ints.Yield(func(v int) int { return v + by }))
}
