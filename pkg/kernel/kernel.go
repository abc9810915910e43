// Package kernel defines the solid modeling kernel interface used by
// SDF-backed primitive nodes, and the flat render Mesh built from geometry.
// Implementations (sdfx) provide solids behind this interface so the node
// library does not depend on a particular backend.
package kernel

import (
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/vmath"
)

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max vmath.Vec3)
}

// Kernel is the abstract solid modeling interface.
type Kernel interface {
	// RoundedBox creates a box centered on the origin whose edges are
	// rounded by round.
	RoundedBox(size vmath.Vec3, round float64) (Solid, error)

	// ToGeometry tessellates s on a uniform grid with cells cells along
	// its longest side.
	ToGeometry(s Solid, cells int) (*geometry.Data, error)
}
