package curve

import (
	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/vmath"
)

// Point cloud attribute names written by ToPoints.
const (
	AttrTangent  = "tangent"
	AttrNormal   = "normal"
	AttrBinormal = "binormal"
	AttrRotation = "rotation"
)

// Transform returns a copy of c moved by translation, Euler rotation
// (degrees) and scale. Positions take the full matrix; frame vectors take
// rotation and scale and are renormalized.
func Transform(c *Data, translation, rotation, scale vmath.Vec3) *Data {
	out := c.Clone()
	m := vmath.TRS(translation, rotation, scale)
	n := vmath.RS(rotation, scale)
	for i := 0; i < out.Points; i++ {
		out.Position[i] = m.MulPosition(out.Position[i])
		out.Tangent[i] = vmath.NormalizeSafe(n.MulPosition(out.Tangent[i]), out.Tangent[i])
		out.Normal[i] = vmath.NormalizeSafe(n.MulPosition(out.Normal[i]), out.Normal[i])
		out.Binormal[i] = vmath.NormalizeSafe(n.MulPosition(out.Binormal[i]), out.Binormal[i])
	}
	return out
}

// ToPoints converts c into a point cloud with one vertex per curve point.
// The frame is stored as Vertex attributes, and rotation holds the Euler
// angles (degrees) aligning +Z with the tangent and +Y with the normal.
func ToPoints(c *Data) *geometry.Data {
	if c.IsEmpty() {
		return geometry.Empty()
	}
	d := geometry.Points(append([]vmath.Vec3(nil), c.Position...))
	rotations := make([]vmath.Vec3, c.Points)
	for i := range rotations {
		rotations[i] = vmath.EulerFromBasis(c.Tangent[i], c.Normal[i])
	}
	for _, a := range []attribute.Attribute{
		attribute.NewVec3(AttrTangent, attribute.Vertex, append([]vmath.Vec3(nil), c.Tangent...)),
		attribute.NewVec3(AttrNormal, attribute.Vertex, append([]vmath.Vec3(nil), c.Normal...)),
		attribute.NewVec3(AttrBinormal, attribute.Vertex, append([]vmath.Vec3(nil), c.Binormal...)),
		attribute.NewVec3(AttrRotation, attribute.Vertex, rotations),
	} {
		if err := d.StoreAttribute(a); err != nil {
			panic(err)
		}
	}
	return d
}
