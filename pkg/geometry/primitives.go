package geometry

import (
	"math"

	"github.com/chazu/geograph/pkg/vmath"
)

// ---------------------------------------------------------------------------
// Flat primitives
// ---------------------------------------------------------------------------

// Circle builds a filled disc in the XZ plane facing +Y.
func Circle(radius float64, points int) *Data {
	points = vmath.ClampInt(points, MinCircularGeometryPoints, MaxCircularGeometryPoints)
	radius = vmath.MinClamped(radius, MinCircularGeometryRadius)

	positions := []vmath.Vec3{vmath.Zero3}
	ringUV := []vmath.Vec2{{X: 0.5, Y: 0.5}}
	for i := 0; i < points; i++ {
		c, s := ringPoint(i, points)
		positions = append(positions, vmath.Vec3{X: radius * c, Z: radius * s})
		ringUV = append(ringUV, vmath.Vec2{X: c*0.5 + 0.5, Y: s*0.5 + 0.5})
	}
	var (
		tris [][3]int
		uvs  []vmath.Vec2
	)
	for i := 0; i < points; i++ {
		a, b := 1+i, 1+(i+1)%points
		tris = append(tris, [3]int{0, b, a})
		uvs = append(uvs, ringUV[0], ringUV[b], ringUV[a])
	}
	return mustBuild(MeshInput{Positions: positions, Triangles: tris, UVs: uvs})
}

// Plane builds a grid in the XZ plane centered on the origin, facing +Y.
// Each side is split into subdivisions+1 cells.
func Plane(size vmath.Vec2, subdivisions int) *Data {
	if subdivisions < 0 {
		subdivisions = 0
	}
	cells := subdivisions + 1
	row := cells + 1
	var positions []vmath.Vec3
	var gridUV []vmath.Vec2
	for j := 0; j <= cells; j++ {
		for i := 0; i <= cells; i++ {
			u, v := float64(i)/float64(cells), float64(j)/float64(cells)
			positions = append(positions, vmath.Vec3{X: (u - 0.5) * size.X, Z: (v - 0.5) * size.Y})
			gridUV = append(gridUV, vmath.Vec2{X: u, Y: v})
		}
	}
	var (
		tris [][3]int
		uvs  []vmath.Vec2
	)
	for j := 0; j < cells; j++ {
		for i := 0; i < cells; i++ {
			p00 := j*row + i
			p10 := p00 + 1
			p01 := p00 + row
			p11 := p01 + 1
			tris = append(tris, [3]int{p00, p01, p10}, [3]int{p10, p01, p11})
			uvs = append(uvs, gridUV[p00], gridUV[p01], gridUV[p10], gridUV[p10], gridUV[p01], gridUV[p11])
		}
	}
	return mustBuild(MeshInput{Positions: positions, Triangles: tris, UVs: uvs})
}

// ---------------------------------------------------------------------------
// Solids
// ---------------------------------------------------------------------------

// Cube builds a box of the given size centered on the origin.
func Cube(size vmath.Vec3) *Data {
	h := size.MulScalar(0.5)
	positions := make([]vmath.Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		p := vmath.Vec3{X: -h.X, Y: -h.Y, Z: -h.Z}
		if i&1 != 0 {
			p.X = h.X
		}
		if i&2 != 0 {
			p.Y = h.Y
		}
		if i&4 != 0 {
			p.Z = h.Z
		}
		positions = append(positions, p)
	}
	quads := [][4]int{
		{0, 1, 3, 2}, // -z
		{4, 6, 7, 5}, // +z
		{0, 4, 5, 1}, // -y
		{2, 3, 7, 6}, // +y
		{0, 2, 6, 4}, // -x
		{1, 5, 7, 3}, // +x
	}
	quadUV := [4]vmath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	var (
		tris [][3]int
		uvs  []vmath.Vec2
	)
	for _, q := range quads {
		tris = append(tris, [3]int{q[0], q[1], q[2]}, [3]int{q[0], q[2], q[3]})
		uvs = append(uvs, quadUV[0], quadUV[1], quadUV[2], quadUV[0], quadUV[2], quadUV[3])
	}
	orientOutward(positions, tris, uvs)
	return mustBuild(MeshInput{Positions: positions, Triangles: tris, UVs: uvs})
}

// Cylinder builds a capped cylinder standing on the XZ plane. Vertex 0 is
// the bottom cap center, vertex 1 the top cap center, then bottom and top
// ring vertices alternate. Side faces are shade-smooth.
func Cylinder(bottomRadius, topRadius, height float64, points int) *Data {
	points = vmath.ClampInt(points, MinCircularGeometryPoints, MaxCircularGeometryPoints)
	bottomRadius = vmath.MinClamped(bottomRadius, MinCircularGeometryRadius)
	topRadius = vmath.MinClamped(topRadius, MinCircularGeometryRadius)
	height = vmath.MinClamped(height, MinGeometryHeight)

	positions := []vmath.Vec3{vmath.Zero3, {Y: height}}
	capUV := []vmath.Vec2{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}}
	for i := 0; i < points; i++ {
		c, s := ringPoint(i, points)
		positions = append(positions,
			vmath.Vec3{X: bottomRadius * c, Z: bottomRadius * s},
			vmath.Vec3{X: topRadius * c, Y: height, Z: topRadius * s},
		)
		uv := vmath.Vec2{X: c*0.5 + 0.5, Y: s*0.5 + 0.5}
		capUV = append(capUV, uv, uv)
	}
	bottom := func(i int) int { return 2 + 2*(i%points) }
	top := func(i int) int { return 3 + 2*(i%points) }

	var (
		tris   [][3]int
		uvs    []vmath.Vec2
		smooth []bool
	)
	for i := 0; i < points; i++ {
		b0, b1, t0, t1 := bottom(i), bottom(i+1), top(i), top(i+1)
		u0, u1 := float64(i)/float64(points), float64(i+1)/float64(points)

		tris = append(tris, [3]int{0, b0, b1})
		uvs = append(uvs, capUV[0], capUV[b0], capUV[b1])
		tris = append(tris, [3]int{1, t1, t0})
		uvs = append(uvs, capUV[1], capUV[t1], capUV[t0])
		tris = append(tris, [3]int{b0, t0, b1}, [3]int{t0, t1, b1})
		uvs = append(uvs,
			vmath.Vec2{X: u0}, vmath.Vec2{X: u0, Y: 1}, vmath.Vec2{X: u1},
			vmath.Vec2{X: u0, Y: 1}, vmath.Vec2{X: u1, Y: 1}, vmath.Vec2{X: u1},
		)
		smooth = append(smooth, false, false, true, true)
	}
	return mustBuild(MeshInput{Positions: positions, Triangles: tris, UVs: uvs, ShadeSmooth: smooth})
}

// Cone builds a capped cone standing on the XZ plane with its apex at
// (0, height, 0).
func Cone(radius, height float64, points int) *Data {
	points = vmath.ClampInt(points, MinCircularGeometryPoints, MaxCircularGeometryPoints)
	radius = vmath.MinClamped(radius, MinCircularGeometryRadius)
	height = vmath.MinClamped(height, MinGeometryHeight)

	positions := []vmath.Vec3{vmath.Zero3, {Y: height}}
	capUV := []vmath.Vec2{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}}
	for i := 0; i < points; i++ {
		c, s := ringPoint(i, points)
		positions = append(positions, vmath.Vec3{X: radius * c, Z: radius * s})
		capUV = append(capUV, vmath.Vec2{X: c*0.5 + 0.5, Y: s*0.5 + 0.5})
	}
	ring := func(i int) int { return 2 + i%points }

	var (
		tris   [][3]int
		uvs    []vmath.Vec2
		smooth []bool
	)
	for i := 0; i < points; i++ {
		r0, r1 := ring(i), ring(i+1)
		u0, u1 := float64(i)/float64(points), float64(i+1)/float64(points)
		tris = append(tris, [3]int{0, r0, r1}, [3]int{r0, 1, r1})
		uvs = append(uvs,
			capUV[0], capUV[r0], capUV[r1],
			vmath.Vec2{X: u0}, vmath.Vec2{X: (u0 + u1) / 2, Y: 1}, vmath.Vec2{X: u1},
		)
		smooth = append(smooth, false, true)
	}
	return mustBuild(MeshInput{Positions: positions, Triangles: tris, UVs: uvs, ShadeSmooth: smooth})
}

// ---------------------------------------------------------------------------
// Spheres
// ---------------------------------------------------------------------------

var icosahedronFaces = [][3]int{
	{0, 4, 1}, {0, 9, 4}, {9, 5, 4}, {4, 5, 8}, {4, 8, 1},
	{8, 10, 1}, {8, 3, 10}, {5, 3, 8}, {5, 2, 3}, {2, 7, 3},
	{7, 10, 3}, {7, 6, 10}, {7, 11, 6}, {11, 0, 6}, {0, 1, 6},
	{6, 1, 10}, {9, 0, 11}, {9, 11, 2}, {9, 2, 5}, {7, 2, 11},
}

func icosahedronMesh() ([]vmath.Vec3, [][3]int) {
	const x = 0.525731112119133606
	const z = 0.850650808352039932
	positions := []vmath.Vec3{
		{X: -x, Z: z}, {X: x, Z: z}, {X: -x, Z: -z}, {X: x, Z: -z},
		{Y: z, Z: x}, {Y: z, Z: -x}, {Y: -z, Z: x}, {Y: -z, Z: -x},
		{X: z, Y: x}, {X: -z, Y: x}, {X: z, Y: -x}, {X: -z, Y: -x},
	}
	tris := make([][3]int, len(icosahedronFaces))
	copy(tris, icosahedronFaces)
	orientOutward(positions, tris, nil)
	return positions, tris
}

// Icosahedron builds a unit icosahedron.
func Icosahedron() *Data {
	positions, tris := icosahedronMesh()
	return mustBuild(MeshInput{Positions: positions, Triangles: tris, UVs: sphericalUVs(positions, tris)})
}

// Icosphere builds a sphere by subdividing an icosahedron and projecting it
// onto the sphere of the given radius. All faces are shade-smooth.
func Icosphere(radius float64, subdivisions int) *Data {
	radius = vmath.MinClamped(radius, MinCircularGeometryRadius)
	subdivisions = vmath.ClampInt(subdivisions, 0, MaxIcosphereSubdivisions)

	positions, tris := icosahedronMesh()
	for i := 0; i < subdivisions; i++ {
		positions, tris = subdivide(positions, tris)
	}
	for i, p := range positions {
		positions[i] = vmath.NormalizeSafe(p, vmath.Up).MulScalar(radius)
	}
	smooth := make([]bool, len(tris))
	for i := range smooth {
		smooth[i] = true
	}
	return mustBuild(MeshInput{
		Positions:   positions,
		Triangles:   tris,
		UVs:         sphericalUVs(positions, tris),
		ShadeSmooth: smooth,
	})
}

// subdivide splits every triangle into four, sharing edge midpoints.
func subdivide(positions []vmath.Vec3, tris [][3]int) ([]vmath.Vec3, [][3]int) {
	mid := make(map[edgeKey]int)
	midpoint := func(a, b int) int {
		key := makeEdgeKey(a, b)
		if idx, ok := mid[key]; ok {
			return idx
		}
		idx := len(positions)
		positions = append(positions, positions[a].Add(positions[b]).MulScalar(0.5))
		mid[key] = idx
		return idx
	}
	out := make([][3]int, 0, 4*len(tris))
	for _, t := range tris {
		ab := midpoint(t[0], t[1])
		bc := midpoint(t[1], t[2])
		ca := midpoint(t[2], t[0])
		out = append(out,
			[3]int{t[0], ab, ca},
			[3]int{ab, t[1], bc},
			[3]int{ca, bc, t[2]},
			[3]int{ab, bc, ca},
		)
	}
	return positions, out
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ringPoint(i, points int) (cos, sin float64) {
	angle := 2 * math.Pi * float64(i) / float64(points)
	return math.Cos(angle), math.Sin(angle)
}

// orientOutward flips triangles of a shape centered on the origin so their
// normals point away from it. uvs, if given, are swapped along.
func orientOutward(positions []vmath.Vec3, tris [][3]int, uvs []vmath.Vec2) {
	for i, t := range tris {
		a, b, c := positions[t[0]], positions[t[1]], positions[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Dot(vmath.Centroid(a, b, c)) < 0 {
			tris[i][1], tris[i][2] = t[2], t[1]
			if uvs != nil {
				uvs[3*i+1], uvs[3*i+2] = uvs[3*i+2], uvs[3*i+1]
			}
		}
	}
}

func sphericalUVs(positions []vmath.Vec3, tris [][3]int) []vmath.Vec2 {
	uvs := make([]vmath.Vec2, 0, 3*len(tris))
	for _, t := range tris {
		for _, v := range t {
			p := vmath.NormalizeSafe(positions[v], vmath.Up)
			uvs = append(uvs, vmath.Vec2{
				X: 0.5 + math.Atan2(p.Z, p.X)/(2*math.Pi),
				Y: 0.5 + math.Asin(vmath.Clamp(p.Y, -1, 1))/math.Pi,
			})
		}
	}
	return uvs
}

func mustBuild(in MeshInput) *Data {
	d, err := FromMesh(in)
	if err != nil {
		panic(err)
	}
	return d
}
