// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library, and writes meshes as STL.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/kernel"
	"github.com/chazu/geograph/pkg/vmath"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 64

// weldPrecision is the grid positions are snapped to when merging the
// duplicate corners marching cubes emits.
const weldPrecision = 1e6

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max vmath.Vec3) {
	bb := s.s.BoundingBox()
	return bb.Min, bb.Max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// RoundedBox creates a box centered on the origin. round is clamped to
// [0, half the smallest side].
func (k *SdfxKernel) RoundedBox(size vmath.Vec3, round float64) (kernel.Solid, error) {
	size = vmath.Vec3{
		X: vmath.MinClamped(size.X, geometry.MinGeometryHeight),
		Y: vmath.MinClamped(size.Y, geometry.MinGeometryHeight),
		Z: vmath.MinClamped(size.Z, geometry.MinGeometryHeight),
	}
	round = vmath.Clamp(round, 0, 0.5*math.Min(size.X, math.Min(size.Y, size.Z)))
	s, err := sdf.Box3D(size, round)
	if err != nil {
		return nil, fmt.Errorf("sdfx: rounded box %v: %w", size, err)
	}
	return wrap(s), nil
}

// ToGeometry converts a solid to geometry using marching cubes. Corners
// shared by neighbouring triangles are welded so the result has connected
// topology.
func (k *SdfxKernel) ToGeometry(s kernel.Solid, cells int) (*geometry.Data, error) {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(unwrap(s), renderer)

	type key [3]int64
	snap := func(v vmath.Vec3) key {
		return key{
			int64(math.Round(v.X * weldPrecision)),
			int64(math.Round(v.Y * weldPrecision)),
			int64(math.Round(v.Z * weldPrecision)),
		}
	}
	index := make(map[key]int)
	var positions []vmath.Vec3
	tris := make([][3]int, 0, len(triangles))
	for _, tri := range triangles {
		var t [3]int
		for j := 0; j < 3; j++ {
			v := tri[j]
			kk := snap(v)
			i, ok := index[kk]
			if !ok {
				i = len(positions)
				index[kk] = i
				positions = append(positions, v)
			}
			t[j] = i
		}
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			continue
		}
		tris = append(tris, t)
	}
	if len(tris) == 0 {
		return geometry.Empty(), nil
	}
	d, err := geometry.FromMesh(geometry.MeshInput{Positions: positions, Triangles: tris})
	if err != nil {
		return nil, fmt.Errorf("sdfx: build geometry: %w", err)
	}
	return d, nil
}

// Triangles converts a render mesh to sdfx triangles.
func Triangles(m *kernel.Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		out = append(out, &sdf.Triangle3{tri[0], tri[1], tri[2]})
	}
	return out
}

// SaveSTL writes m as a binary STL file.
func SaveSTL(path string, m *kernel.Mesh) error {
	if m.IsEmpty() {
		return fmt.Errorf("sdfx: save %s: mesh is empty", path)
	}
	if err := render.SaveSTL(path, Triangles(m)); err != nil {
		return fmt.Errorf("sdfx: save %s: %w", path, err)
	}
	return nil
}
