package geometry

import (
	"math"

	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/vmath"
)

// Positions returns a copy of the vertex positions.
func (d *Data) Positions() []vmath.Vec3 {
	if d.IsEmpty() {
		return nil
	}
	return append([]vmath.Vec3(nil), AttributeOrDefault(d, AttrPosition, attribute.Vertex, vmath.Zero3).Values()...)
}

// BoundingBox returns the axis-aligned bounds of the vertex positions. An
// empty geometry has a zero box.
func (d *Data) BoundingBox() sdf.Box3 {
	positions := d.Positions()
	if len(positions) == 0 {
		return sdf.Box3{}
	}
	lo := vmath.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := vmath.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range positions {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// Transform applies translation, Euler rotation (degrees) and scale to d in
// place. Positions take the full TRS matrix; face normals take rotation and
// scale only and are renormalized.
func (d *Data) Transform(translation, rotation, scale vmath.Vec3) {
	d.TransformMatrix(vmath.TRS(translation, rotation, scale), vmath.RS(rotation, scale))
}

// TransformMatrix applies m to positions and n to normals.
func (d *Data) TransformMatrix(m, n sdf.M44) {
	if d.IsEmpty() {
		return
	}
	if a, ok := d.lookup(AttrPosition, attribute.Vertex); ok {
		p := attribute.As[vmath.Vec3](a)
		d.put(attribute.NewVec3(AttrPosition, attribute.Vertex, p.Yield(m.MulPosition)))
	}
	if a, ok := d.lookup(AttrNormal); ok {
		normals := attribute.As[vmath.Vec3](a)
		d.put(attribute.NewVec3(AttrNormal, normals.Domain(), normals.Yield(func(v vmath.Vec3) vmath.Vec3 {
			return vmath.NormalizeSafe(n.MulPosition(v), v)
		})))
	}
}

// Transformed returns a transformed copy of d.
func Transformed(d *Data, translation, rotation, scale vmath.Vec3) *Data {
	c := d.Clone()
	c.Transform(translation, rotation, scale)
	return c
}
