package curve

import (
	"fmt"
	"math"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/vmath"
)

// CapUVType selects how cap face corners are mapped to UV space. The values
// are persisted and must not be renumbered.
type CapUVType int

const (
	// CapUVLocal scales each cap to fill the unit square.
	CapUVLocal CapUVType = iota
	// CapUVWorld projects cap positions onto the curve's normal and
	// binormal.
	CapUVWorld
	// CapUVWorldAligned is CapUVWorld shifted so the cap starts at 0,0.
	CapUVWorldAligned
)

var capUVNames = [...]string{"Local Space", "World Space", "World Space Aligned"}

func (t CapUVType) String() string {
	if t < 0 || int(t) >= len(capUVNames) {
		return fmt.Sprintf("CapUVType(%d)", int(t))
	}
	return capUVNames[t]
}

// SweepSettings control Sweep. Rotations are in degrees around the curve
// tangent; IncrementalRotationOffset is added once per curve point.
type SweepSettings struct {
	CloseCaps                 bool
	SeparateMaterialForCaps   bool
	ShadeSmoothCurve          bool
	ShadeSmoothCaps           bool
	RotationOffset            float64
	IncrementalRotationOffset float64
	CapUVType                 CapUVType
}

// Sweep extrudes profile along c. The profile's X axis follows the curve
// normal, Y the tangent and Z the binormal, so a profile drawn in the XZ
// plane sits across the curve. Side faces point away from the curve.
//
// Without a profile the result is the point cloud of ToPoints. Caps are
// only closed on an open curve swept with a closed circle profile; with
// SeparateMaterialForCaps they use material 1.
func Sweep(c, profile *Data, s SweepSettings) *geometry.Data {
	if c.IsEmpty() {
		return geometry.Empty()
	}
	if profile.IsEmpty() {
		return ToPoints(c)
	}

	rings, width := c.Points, profile.Points
	positions := make([]vmath.Vec3, 0, rings*width)
	for i := range rings {
		offset := s.RotationOffset + float64(i)*s.IncrementalRotationOffset
		positions = append(positions, align(c, profile, i, offset)...)
	}

	segments, sides := rings-1, width-1
	if c.Closed {
		segments = rings
	}
	if profile.Closed {
		sides = width
	}

	var (
		tris [][3]int
		uvs  []vmath.Vec2
	)
	for i := range segments {
		next := (i + 1) % rings
		v0, v1 := float64(i)/float64(segments), float64(i+1)/float64(segments)
		for j := range sides {
			k := (j + 1) % width
			a, b, cc, d := i*width+j, i*width+k, next*width+k, next*width+j
			u0, u1 := float64(j)/float64(sides), float64(j+1)/float64(sides)
			tris = append(tris, [3]int{a, b, cc}, [3]int{a, cc, d})
			uvs = append(uvs,
				vmath.Vec2{X: u0, Y: v0}, vmath.Vec2{X: u1, Y: v0}, vmath.Vec2{X: u1, Y: v1},
				vmath.Vec2{X: u0, Y: v0}, vmath.Vec2{X: u1, Y: v1}, vmath.Vec2{X: u0, Y: v1},
			)
		}
	}
	sideFaces := len(tris)

	if s.CloseCaps && !c.Closed && profile.Closed && profile.Type == Circle && width >= 3 && rings >= 2 {
		last := (rings - 1) * width
		startUV := capUVs(c, 0, positions[:width], s.CapUVType)
		endUV := capUVs(c, rings-1, positions[last:], s.CapUVType)
		for k := 1; k < width-1; k++ {
			tris = append(tris, [3]int{0, k + 1, k})
			uvs = append(uvs, startUV[0], startUV[k+1], startUV[k])
		}
		for k := 1; k < width-1; k++ {
			tris = append(tris, [3]int{last, last + k, last + k + 1})
			uvs = append(uvs, endUV[0], endUV[k], endUV[k+1])
		}
	}

	materials := make([]int, len(tris))
	smooth := make([]bool, len(tris))
	for f := range tris {
		smooth[f] = s.ShadeSmoothCurve
		if f >= sideFaces {
			smooth[f] = s.ShadeSmoothCaps
			if s.SeparateMaterialForCaps {
				materials[f] = 1
			}
		}
	}

	d, err := geometry.FromMesh(geometry.MeshInput{
		Positions:       positions,
		Triangles:       tris,
		UVs:             uvs,
		MaterialIndices: materials,
		ShadeSmooth:     smooth,
	})
	if err != nil {
		panic(fmt.Sprintf("curve: sweep: %v", err))
	}
	return d
}

// align places the profile in the frame of curve point i, turned by
// degrees around the tangent.
func align(c, profile *Data, i int, degrees float64) []vmath.Vec3 {
	turn := vmath.Rotation(vmath.Vec3{Y: degrees})
	origin, n, t, b := c.Position[i], c.Normal[i], c.Tangent[i], c.Binormal[i]
	out := make([]vmath.Vec3, profile.Points)
	for k, p := range profile.Position {
		p = turn.MulPosition(p)
		out[k] = origin.Add(n.MulScalar(p.X)).Add(t.MulScalar(p.Y)).Add(b.MulScalar(p.Z))
	}
	return out
}

// capUVs maps the ring at curve point i onto the plane of its normal and
// binormal.
func capUVs(c *Data, i int, ring []vmath.Vec3, typ CapUVType) []vmath.Vec2 {
	out := make([]vmath.Vec2, len(ring))
	lo := vmath.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	hi := vmath.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for k, p := range ring {
		uv := vmath.Vec2{X: p.Dot(c.Normal[i]), Y: p.Dot(c.Binormal[i])}
		lo = vmath.Vec2{X: math.Min(lo.X, uv.X), Y: math.Min(lo.Y, uv.Y)}
		hi = vmath.Vec2{X: math.Max(hi.X, uv.X), Y: math.Max(hi.Y, uv.Y)}
		out[k] = uv
	}
	if typ == CapUVWorld {
		return out
	}
	size := vmath.Vec2{X: 1, Y: 1}
	if typ == CapUVLocal {
		size = vmath.Vec2{X: hi.X - lo.X, Y: hi.Y - lo.Y}
	}
	for k, uv := range out {
		out[k] = vmath.Vec2{X: scaled(uv.X-lo.X, size.X), Y: scaled(uv.Y-lo.Y, size.Y)}
	}
	return out
}

func scaled(v, size float64) float64 {
	if vmath.Approximately(size, 0) {
		return 0
	}
	return v / size
}
