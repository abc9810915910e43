package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/instance"
	"github.com/chazu/geograph/pkg/vmath"
)

// instanceGraph scatters cubes along a 4 point line.
func instanceGraph(t *testing.T) (*graph.Graph, *GeometryInstanceNode, *graph.Connection) {
	t.Helper()
	g, ec := newGraph()
	line := add(t, g, NewLineCurveNode(""))
	points := add(t, g, NewCurveToPointsNode(""))
	cube := add(t, g, NewCubePrimitiveNode(""))
	inst := add(t, g, NewGeometryInstanceNode(""))
	line.UpdatePoints(ec, 4)
	line.UpdateEnd(ec, vmath.Vec3{X: 3})
	connect(t, g, line, "Curve", points, "Curve")
	connect(t, g, points, "Points", inst, "Points")
	c := connect(t, g, cube, "Result", inst, "Geometry")
	return g, inst, c
}

func TestGeometryInstanceNode(t *testing.T) {
	g, inst, c := instanceGraph(t)
	ec := g.Context()

	d := read[*instance.Data](t, ec, inst, "Result")
	require.Equal(t, 1, d.GeometryCount())
	require.Equal(t, 4, d.TransformCount(0))
	for i, tr := range d.TransformData(0) {
		assert.InDelta(t, float64(i), tr.Translation.X, 1e-9)
		assert.Equal(t, vmath.One3, tr.Scale)
	}

	g.Disconnect(c)
	assert.True(t, read[*instance.Data](t, ec, inst, "Result").IsEmpty())
}

func TestGeometryInstanceNodeReadsScale(t *testing.T) {
	g, ec := newGraph()
	pts := geometry.Points([]vmath.Vec3{{X: 1}, {X: 2}})
	require.NoError(t, pts.StoreAttribute(attribute.NewVec3(AttrInstanceScale, attribute.Vertex,
		[]vmath.Vec3{{X: 2, Y: 2, Z: 2}, {X: 3, Y: 3, Z: 3}})))
	p := addProperty(t, g, "Points", graph.PropertyGeometryObject)
	require.NoError(t, g.SetPropertyValue(p.ID, pts))

	prop := add(t, g, NewPropertyNode("", TypeGeometryObjectProperty, graph.PropertyGeometryObject))
	ico := add(t, g, NewIcospherePrimitiveNode(""))
	inst := add(t, g, NewGeometryInstanceNode(""))
	connect(t, g, prop, "Property", inst, "Points")
	connect(t, g, ico, "Result", inst, "Geometry")
	prop.SetProperty(ec, p.ID)

	d := read[*instance.Data](t, ec, inst, "Result")
	require.Equal(t, 2, d.TransformCount(0))
	assert.Equal(t, vmath.Vec3{X: 3, Y: 3, Z: 3}, d.TransformData(0)[1].Scale)
}

func TestGeometryInstanceNodeCollection(t *testing.T) {
	g, inst, _ := instanceGraph(t)
	ec := g.Context()

	c := addProperty(t, g, "Shapes", graph.PropertyGeometryCollection)
	shapes := []*geometry.Data{geometry.Cube(vmath.One3), geometry.Icosahedron(), geometry.Circle(1, 8)}
	require.NoError(t, g.SetPropertyValue(c.ID, shapes))
	coll := add(t, g, NewPropertyNode("", TypeGeometryCollectionProperty, graph.PropertyGeometryCollection))
	connect(t, g, coll, "Property", inst, "Collection")
	coll.SetProperty(ec, c.ID)

	inst.UpdateMode(ec, InstanceCollection)
	inst.UpdateSeed(ec, 11)
	d := read[*instance.Data](t, ec, inst, "Result")
	assert.Equal(t, 4, d.TotalTransforms())
	assert.LessOrEqual(t, d.GeometryCount(), 3)
	assert.Zero(t, ec.Rand.Depth())

	// The same seed picks the same prototypes.
	again := NewGeometryInstanceNode("")
	again.points, again.collection = inst.points, inst.collection
	again.UpdateMode(ec, InstanceCollection)
	again.UpdateSeed(ec, 11)
	other := read[*instance.Data](t, ec, again, "Result")
	require.Equal(t, d.GeometryCount(), other.GeometryCount())
	for i := range d.GeometryCount() {
		assert.Equal(t, d.Geometry(i).VertexCount(), other.Geometry(i).VertexCount())
		assert.Equal(t, d.TransformData(i), other.TransformData(i))
	}
}

func TestGeometryInstanceNodeEmptyInputs(t *testing.T) {
	_, ec := newGraph()
	n := NewGeometryInstanceNode("")
	assert.True(t, read[*instance.Data](t, ec, n, "Result").IsEmpty())
	n.UpdateMode(ec, InstanceCollection)
	assert.True(t, read[*instance.Data](t, ec, n, "Result").IsEmpty())
	assert.Equal(t, InstanceCollection, n.Mode())
}

func TestGeometryInstanceNodeCachesEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		mode InstanceMode
	}{
		{"geometry", InstanceGeometry},
		{"collection", InstanceCollection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ec := newGraph()
			n := NewGeometryInstanceNode("")
			n.UpdateMode(ec, tt.mode)

			first := read[*instance.Data](t, ec, n, "Result")
			require.True(t, first.IsEmpty())
			assert.Same(t, first, read[*instance.Data](t, ec, n, "Result"), "an empty result is not recomputed")

			n.UpdateSeed(ec, 3)
			assert.True(t, read[*instance.Data](t, ec, n, "Result").IsEmpty())
		})
	}
}

func TestRealizeInstancesNode(t *testing.T) {
	g, inst, _ := instanceGraph(t)
	ec := g.Context()
	realize := add(t, g, NewRealizeInstancesNode(""))
	out := add(t, g, NewOutputNode(""))
	c := connect(t, g, inst, "Result", realize, "Instances")
	connect(t, g, realize, "Geometry", out, "Geometry")
	connect(t, g, inst, "Result", out, "Instances")

	res, err := g.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 4*8, res.Geometry.VertexCount())
	assert.Equal(t, 4*12, res.Geometry.FaceCount())
	assert.Equal(t, 4, res.Instances.TotalTransforms())
	box := res.Geometry.BoundingBox()
	assert.InDelta(t, -0.5, box.Min.X, 1e-9)
	assert.InDelta(t, 3.5, box.Max.X, 1e-9)

	g.Disconnect(c)
	assert.True(t, read[*geometry.Data](t, ec, realize, "Geometry").IsEmpty())
}
