// Package tessellate realizes instanced geometry into a single flat
// geometry, cloning each prototype once per transform.
package tessellate

import (
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/instance"
)

// transformStack accumulates matrices while realizing nested placements.
type transformStack struct {
	positions []sdf.M44
	normals   []sdf.M44
}

func newTransformStack() *transformStack {
	return &transformStack{
		positions: []sdf.M44{sdf.Identity3d()},
		normals:   []sdf.M44{sdf.Identity3d()},
	}
}

// push composes t onto the current top: parent * child.
func (ts *transformStack) push(t instance.Transform) {
	ts.positions = append(ts.positions, ts.position().Mul(t.Matrix()))
	ts.normals = append(ts.normals, ts.normal().Mul(t.NormalMatrix()))
}

func (ts *transformStack) pop() {
	if len(ts.positions) > 1 {
		ts.positions = ts.positions[:len(ts.positions)-1]
		ts.normals = ts.normals[:len(ts.normals)-1]
	}
}

func (ts *transformStack) position() sdf.M44 { return ts.positions[len(ts.positions)-1] }
func (ts *transformStack) normal() sdf.M44   { return ts.normals[len(ts.normals)-1] }

// Realize flattens inst into one geometry. Every instance is placed by root
// followed by its own transform. Prototypes merge in order, and each
// prototype's instances in transform order.
func Realize(inst *instance.Data, root instance.Transform) *geometry.Data {
	out := geometry.Empty()
	if inst.IsEmpty() {
		return out
	}
	ts := newTransformStack()
	ts.push(root)
	for proto, transforms := range inst.All() {
		if proto.IsEmpty() {
			continue
		}
		for _, t := range transforms {
			ts.push(t)
			placed := proto.Clone()
			placed.TransformMatrix(ts.position(), ts.normal())
			out.MergeWith(placed)
			ts.pop()
		}
	}
	ts.pop()
	return out
}

// RealizeAll realizes every input with the identity root and merges the
// results together with plain geometries.
func RealizeAll(geometries []*geometry.Data, instances ...*instance.Data) *geometry.Data {
	out := geometry.Merge(geometries...)
	for _, inst := range instances {
		out.MergeWith(Realize(inst, instance.Identity))
	}
	return out
}
