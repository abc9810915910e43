// Package instance holds instanced geometry: distinct prototype geometries
// each placed with any number of transforms.
package instance

import (
	"iter"

	"github.com/deadsy/sdfx/sdf"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/vmath"
)

// Transform places one instance. EulerRotation is in degrees.
type Transform struct {
	Translation   vmath.Vec3 `json:"translation"`
	EulerRotation vmath.Vec3 `json:"eulerRotation"`
	Scale         vmath.Vec3 `json:"scale"`
}

// Identity is the transform that leaves geometry in place.
var Identity = Transform{Scale: vmath.One3}

// Matrix returns the translation * rotation * scale matrix.
func (t Transform) Matrix() sdf.M44 {
	return vmath.TRS(t.Translation, t.EulerRotation, t.Scale)
}

// NormalMatrix returns the rotation * scale part of the transform.
func (t Transform) NormalMatrix() sdf.M44 {
	return vmath.RS(t.EulerRotation, t.Scale)
}

// Data is instanced geometry. Transforms are stored flattened; counts[i]
// transforms belong to geometries[i], in prototype order.
type Data struct {
	geometries []*geometry.Data
	transforms []Transform
	counts     []int
}

// New builds instanced geometry from prototypes and their transform lists.
// Missing transform lists count as empty; extra ones are ignored.
func New(geometries []*geometry.Data, transforms [][]Transform) *Data {
	d := &Data{
		geometries: make([]*geometry.Data, len(geometries)),
		counts:     make([]int, len(geometries)),
	}
	for i, g := range geometries {
		if g == nil {
			g = geometry.Empty()
		}
		d.geometries[i] = g
		if i < len(transforms) {
			d.counts[i] = len(transforms[i])
			d.transforms = append(d.transforms, transforms[i]...)
		}
	}
	return d
}

// Single builds instanced geometry with one prototype.
func Single(g *geometry.Data, transforms []Transform) *Data {
	return New([]*geometry.Data{g}, [][]Transform{transforms})
}

// Empty returns instanced geometry with no prototypes.
func Empty() *Data {
	return &Data{}
}

// IsEmpty reports whether d has no prototypes. A nil Data is empty.
func (d *Data) IsEmpty() bool {
	return d == nil || len(d.geometries) == 0 || len(d.counts) == 0
}

// GeometryCount returns the number of prototypes.
func (d *Data) GeometryCount() int {
	if d == nil {
		return 0
	}
	return len(d.geometries)
}

// Geometry returns prototype i, or Empty when i is out of range.
func (d *Data) Geometry(i int) *geometry.Data {
	if !d.inRange(i, "Geometry") {
		return geometry.Empty()
	}
	return d.geometries[i]
}

// TransformCount returns the number of transforms of prototype i, or 0 when
// i is out of range.
func (d *Data) TransformCount(i int) int {
	if !d.inRange(i, "TransformCount") {
		return 0
	}
	return d.counts[i]
}

// TransformData returns the transforms of prototype i. The slice aliases
// the flattened list; an out-of-range index logs and returns nil.
func (d *Data) TransformData(i int) []Transform {
	if !d.inRange(i, "TransformData") {
		return nil
	}
	start := lo.Sum(d.counts[:i])
	return d.transforms[start : start+d.counts[i] : start+d.counts[i]]
}

// TotalTransforms returns the length of the flattened transform list.
func (d *Data) TotalTransforms() int {
	if d == nil {
		return 0
	}
	return len(d.transforms)
}

// All yields every prototype with its transforms.
func (d *Data) All() iter.Seq2[*geometry.Data, []Transform] {
	return func(yield func(*geometry.Data, []Transform) bool) {
		for i := 0; i < d.GeometryCount(); i++ {
			if !yield(d.geometries[i], d.TransformData(i)) {
				return
			}
		}
	}
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	if d == nil {
		return Empty()
	}
	return &Data{
		geometries: lo.Map(d.geometries, func(g *geometry.Data, _ int) *geometry.Data { return g.Clone() }),
		transforms: append([]Transform(nil), d.transforms...),
		counts:     append([]int(nil), d.counts...),
	}
}

func (d *Data) inRange(i int, op string) bool {
	if d != nil && i >= 0 && i < len(d.geometries) {
		return true
	}
	zap.L().Error("instance: index out of range",
		zap.String("op", op),
		zap.Int("index", i),
		zap.Int("count", d.GeometryCount()),
	)
	return false
}
