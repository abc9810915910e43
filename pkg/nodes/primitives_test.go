package nodes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/kernel"
	"github.com/chazu/geograph/pkg/kernel/sdfx"
	"github.com/chazu/geograph/pkg/vmath"
)

func TestPrimitiveDefaults(t *testing.T) {
	tests := []struct {
		name         string
		node         graph.Node
		verts, faces int
	}{
		{"circle", NewCirclePrimitiveNode(""), 9, 8},
		{"plane", NewPlanePrimitiveNode(""), 4, 2},
		{"cube", NewCubePrimitiveNode(""), 8, 12},
		{"cone", NewConePrimitiveNode(""), 10, 16},
		{"cylinder", NewCylinderPrimitiveNode(""), 18, 32},
		{"icosphere", NewIcospherePrimitiveNode(""), 162, 320},
	}
	_, ec := newGraph()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := read[*geometry.Data](t, ec, tt.node, "Result")
			assert.Equal(t, tt.verts, d.VertexCount())
			assert.Equal(t, tt.faces, d.FaceCount())
		})
	}
}

func TestPrimitiveInputsAreClamped(t *testing.T) {
	_, ec := newGraph()

	c := NewCirclePrimitiveNode("")
	c.UpdatePoints(ec, 1)
	c.UpdateRadius(ec, -3)
	assert.Equal(t, geometry.MinCircularGeometryPoints, c.points)
	assert.Equal(t, geometry.MinCircularGeometryRadius, c.radius)

	i := NewIcospherePrimitiveNode("")
	i.UpdateSubdivisions(ec, 99)
	assert.Equal(t, geometry.MaxIcosphereSubdivisions, i.subdivisions)

	cy := NewCylinderPrimitiveNode("")
	cy.UpdateHeight(ec, 0)
	assert.Equal(t, geometry.MinGeometryHeight, cy.height)
}

func TestPrimitiveRecomputesOnInput(t *testing.T) {
	g, ec := newGraph()
	points := add(t, g, NewIntegerValueNode(""))
	cone := add(t, g, NewConePrimitiveNode(""))
	out := add(t, g, NewOutputNode(""))
	connect(t, g, points, "Value", cone, "Points")
	connect(t, g, cone, "Result", out, "Geometry")

	points.UpdateValue(ec, 16)
	res, err := g.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 18, res.Geometry.VertexCount())
	assert.Equal(t, 32, res.Geometry.FaceCount())
}

func TestCylinderCustomDataOrder(t *testing.T) {
	_, ec := newGraph()
	n := NewCylinderPrimitiveNode("")
	n.UpdateTopRadius(ec, 0.5)
	data, err := n.CustomData()
	require.NoError(t, err)
	assert.Equal(t, "[1,0.5,2,8]", data)
}

func TestRoundedCubeNode(t *testing.T) {
	_, ec := newGraph()
	n := NewRoundedCubePrimitiveNode("", sdfx.New())
	n.UpdateResolution(ec, 1)
	assert.Equal(t, MinRoundedCubeResolution, n.resolution)
	n.UpdateSize(ec, vmath.Vec3{X: 2, Y: 1, Z: 1})

	d := read[*geometry.Data](t, ec, n, "Result")
	require.NoError(t, n.Err())
	require.False(t, d.IsEmpty())
	box := d.BoundingBox()
	assert.InDelta(t, 1, box.Max.X, 0.3)
	assert.InDelta(t, 0.5, box.Max.Y, 0.3)
}

type failingKernel struct{}

func (failingKernel) RoundedBox(vmath.Vec3, float64) (kernel.Solid, error) {
	return nil, errors.New("no solids here")
}

func (failingKernel) ToGeometry(kernel.Solid, int) (*geometry.Data, error) {
	return nil, errors.New("unreachable")
}

func TestRoundedCubeKernelFailure(t *testing.T) {
	_, ec := newGraph()
	n := NewRoundedCubePrimitiveNode("", failingKernel{})
	d := read[*geometry.Data](t, ec, n, "Result")
	assert.True(t, d.IsEmpty())
	assert.EqualError(t, n.Err(), "no solids here")

	registry := NewRegistry(failingKernel{})
	built, err := registry.New(TypeRoundedCubePrimitive, "")
	require.NoError(t, err)
	assert.IsType(t, failingKernel{}, built.(*RoundedCubePrimitiveNode).kernel)
}
