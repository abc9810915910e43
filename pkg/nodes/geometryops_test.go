package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/vmath"
)

func TestTransformGeometryNode(t *testing.T) {
	g, ec := newGraph()
	cube := add(t, g, NewCubePrimitiveNode(""))
	xf := add(t, g, NewTransformGeometryNode(""))
	assert.True(t, read[*geometry.Data](t, ec, xf, "Result").IsEmpty(), "no input")

	c := connect(t, g, cube, "Result", xf, "Input")
	xf.UpdateScale(ec, vmath.Vec3{X: 2, Y: 1, Z: 1})
	xf.UpdateTranslation(ec, vmath.Vec3{Y: 3})
	box := read[*geometry.Data](t, ec, xf, "Result").BoundingBox()
	assert.InDelta(t, 1, box.Max.X, 1e-9)
	assert.InDelta(t, 3.5, box.Max.Y, 1e-9)

	src := read[*geometry.Data](t, ec, cube, "Result")
	assert.InDelta(t, 0.5, src.BoundingBox().Max.X, 1e-9, "input is not mutated")

	g.Disconnect(c)
	assert.True(t, read[*geometry.Data](t, ec, xf, "Result").IsEmpty())
}

func TestJoinGeometryNode(t *testing.T) {
	g, ec := newGraph()
	cube := add(t, g, NewCubePrimitiveNode(""))
	ico := add(t, g, NewIcospherePrimitiveNode(""))
	join := add(t, g, NewJoinGeometryNode(""))
	assert.True(t, read[*geometry.Data](t, ec, join, "Result").IsEmpty())

	connect(t, g, cube, "Result", join, "Input")
	c := connect(t, g, ico, "Result", join, "Input")
	d := read[*geometry.Data](t, ec, join, "Result")
	assert.Equal(t, 8+162, d.VertexCount())
	assert.Equal(t, 12+320, d.FaceCount())

	ico.UpdateSubdivisions(ec, 0)
	assert.Equal(t, 8+12, read[*geometry.Data](t, ec, join, "Result").VertexCount())

	g.Disconnect(c)
	assert.Equal(t, 8, read[*geometry.Data](t, ec, join, "Result").VertexCount())
}

func TestAttributeFillNode(t *testing.T) {
	g, ec := newGraph()
	cube := add(t, g, NewCubePrimitiveNode(""))
	fill := add(t, g, NewAttributeFillNode(""))
	connect(t, g, cube, "Result", fill, "Geometry")

	assert.True(t, read[*geometry.Data](t, ec, fill, "Result").IsEmpty(), "blank name")

	fill.UpdateAttribute(ec, "weight")
	fill.UpdateFloat(ec, 0.75)
	d := read[*geometry.Data](t, ec, fill, "Result")
	a, ok := d.FindAttribute("weight")
	require.True(t, ok)
	assert.Equal(t, attribute.Vertex, a.Domain())
	assert.Equal(t, attribute.Float, a.Type())
	assert.Equal(t, []float64{0.75, 0.75, 0.75, 0.75, 0.75, 0.75, 0.75, 0.75}, attribute.As[float64](a).Values())

	fill.UpdateDomain(ec, DomainFace)
	fill.UpdateType(ec, FillBoolean)
	fill.UpdateBoolean(ec, true)
	d = read[*geometry.Data](t, ec, fill, "Result")
	a, ok = d.FindAttribute("weight")
	require.True(t, ok)
	assert.Equal(t, attribute.Face, a.Domain())
	assert.Equal(t, attribute.Bool, a.Type())
	assert.Equal(t, 12, a.Len())

	_, ok = read[*geometry.Data](t, ec, cube, "Result").FindAttribute("weight")
	assert.False(t, ok, "input is not mutated")
}

func TestAttributeFillNodeAutoDomainKeepsExisting(t *testing.T) {
	g, ec := newGraph()
	cube := add(t, g, NewCubePrimitiveNode(""))
	first := add(t, g, NewAttributeFillNode(""))
	second := add(t, g, NewAttributeFillNode(""))
	connect(t, g, cube, "Result", first, "Geometry")
	connect(t, g, first, "Result", second, "Geometry")

	first.UpdateAttribute(ec, "id")
	first.UpdateDomain(ec, DomainFaceCorner)
	second.UpdateAttribute(ec, "id")
	second.UpdateType(ec, FillInteger)
	second.UpdateInteger(ec, 3)

	a, ok := read[*geometry.Data](t, ec, second, "Result").FindAttribute("id")
	require.True(t, ok)
	assert.Equal(t, attribute.FaceCorner, a.Domain())
	assert.Equal(t, attribute.Int, a.Type())
	assert.Equal(t, 36, a.Len())
}

func TestAttributeFillNodePerElement(t *testing.T) {
	g, ec := newGraph()
	cube := add(t, g, NewCubePrimitiveNode(""))
	random := add(t, g, NewRandomFloatNode(""))
	fill := add(t, g, NewAttributeFillNode(""))
	connect(t, g, cube, "Result", fill, "Geometry")
	connect(t, g, random, "Value", fill, "Float")
	fill.UpdateAttribute(ec, "r")

	a, ok := read[*geometry.Data](t, ec, fill, "Result").FindAttribute("r")
	require.True(t, ok)
	assert.Equal(t, readN[float64](t, ec, random, "Value", 8), attribute.As[float64](a).Values())

	random.UpdateSeed(ec, 9)
	a, _ = read[*geometry.Data](t, ec, fill, "Result").FindAttribute("r")
	assert.Equal(t, readN[float64](t, ec, random, "Value", 8), attribute.As[float64](a).Values())
}

func TestAttributeConvertNode(t *testing.T) {
	g, ec := newGraph()
	cube := add(t, g, NewCubePrimitiveNode(""))
	fill := add(t, g, NewAttributeFillNode(""))
	conv := add(t, g, NewAttributeConvertNode(""))
	connect(t, g, cube, "Result", fill, "Geometry")
	connect(t, g, fill, "Result", conv, "Geometry")
	fill.UpdateAttribute(ec, "w")
	fill.UpdateFloat(ec, 2.6)

	// Missing names pass the geometry through.
	d := read[*geometry.Data](t, ec, conv, "Result")
	assert.Equal(t, 8, d.VertexCount())
	_, ok := d.FindAttribute("w")
	assert.True(t, ok)

	conv.UpdateAttribute(ec, "w")
	conv.UpdateResultAttribute(ec, "w_int")
	conv.UpdateType(ec, ConvertInteger)
	a, ok := read[*geometry.Data](t, ec, conv, "Result").FindAttribute("w_int")
	require.True(t, ok)
	assert.Equal(t, attribute.Int, a.Type())
	assert.Equal(t, attribute.Vertex, a.Domain())
	assert.Equal(t, 8, a.Len())

	// Auto keeps the source type.
	conv.UpdateType(ec, ConvertAuto)
	conv.UpdateDomain(ec, DomainFace)
	a, ok = read[*geometry.Data](t, ec, conv, "Result").FindAttribute("w_int")
	require.True(t, ok)
	assert.Equal(t, attribute.Float, a.Type())
	assert.Equal(t, attribute.Face, a.Domain())
	assert.Equal(t, 12, a.Len())
	assert.InDelta(t, 2.6, attribute.As[float64](a).Get(0), 1e-9)

	conv.UpdateAttribute(ec, "missing")
	_, ok = read[*geometry.Data](t, ec, conv, "Result").FindAttribute("w_int")
	assert.False(t, ok)
}

func TestAttributeNodesCustomData(t *testing.T) {
	_, ec := newGraph()
	fill := NewAttributeFillNode("")
	fill.UpdateAttribute(ec, "mask")
	fill.UpdateVector(ec, vmath.Up)
	fill.UpdateType(ec, FillVector)
	data, err := fill.CustomData()
	require.NoError(t, err)
	assert.Equal(t, `["mask",0,0,[0,1,0],0,0,2]`, data)

	conv := NewAttributeConvertNode("")
	require.NoError(t, conv.SetCustomData(ec, `["a","b",3,4]`))
	assert.Equal(t, DomainFace, conv.domain)
	assert.Equal(t, ConvertBoolean, conv.targetType)
}
