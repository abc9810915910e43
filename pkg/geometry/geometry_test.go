package geometry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/vmath"
)

func triangle() *Data {
	d, err := FromMesh(MeshInput{
		Positions: []vmath.Vec3{{}, {X: 1}, {Z: 1}},
		Triangles: [][3]int{{0, 2, 1}},
	})
	if err != nil {
		panic(err)
	}
	return d
}

func quad() *Data {
	d, err := FromMesh(MeshInput{
		Positions: []vmath.Vec3{{}, {X: 1}, {X: 1, Z: 1}, {Z: 1}},
		Triangles: [][3]int{{0, 3, 1}, {1, 3, 2}},
	})
	if err != nil {
		panic(err)
	}
	return d
}

func TestFromMeshTopology(t *testing.T) {
	d := quad()
	assert.Equal(t, 4, d.VertexCount())
	assert.Equal(t, 5, d.EdgeCount())
	assert.Equal(t, 2, d.FaceCount())
	assert.Equal(t, 6, d.FaceCornerCount())
	assert.Equal(t, 1, d.SubmeshCount())

	shared := 0
	for _, e := range d.Edges() {
		if e.FaceB != -1 {
			shared++
			assert.ElementsMatch(t, []int{e.VertA, e.VertB}, []int{1, 3})
		}
	}
	assert.Equal(t, 1, shared)
	assert.Equal(t, []int{1}, d.Faces()[0].AdjacentFaces)
	assert.Equal(t, []int{0}, d.Faces()[1].AdjacentFaces)

	n, ok := d.Attribute(AttrNormal, attribute.Face)
	require.True(t, ok)
	for _, v := range attribute.As[vmath.Vec3](n).Values() {
		assert.True(t, vmath.Approximately3(v, vmath.Up), "normal %v", v)
	}
}

func TestFromMeshRejectsBadIndex(t *testing.T) {
	_, err := FromMesh(MeshInput{Positions: []vmath.Vec3{{}}, Triangles: [][3]int{{0, 1, 2}}})
	assert.ErrorIs(t, err, ErrBadTopology)
}

func TestEmpty(t *testing.T) {
	assert.True(t, Empty().IsEmpty())
	var nilData *Data
	assert.True(t, nilData.IsEmpty())
	assert.True(t, nilData.Clone().IsEmpty())
	assert.Equal(t, 0, Empty().SubmeshCount())
}

func TestMergeOffsetsTopology(t *testing.T) {
	dst := triangle()
	src := quad()
	dst.MergeWith(src)

	assert.Equal(t, 7, dst.VertexCount())
	assert.Equal(t, 3, dst.FaceCount())
	assert.Equal(t, 8, dst.EdgeCount())
	assert.Equal(t, 9, dst.FaceCornerCount())
	assert.Equal(t, 2, dst.SubmeshCount())

	f := dst.Faces()[1]
	assert.Equal(t, [3]int{3, 6, 4}, f.Verts())
	assert.Equal(t, [3]int{3, 4, 5}, f.Corners())
	assert.Equal(t, []int{2}, f.AdjacentFaces)
	for _, e := range dst.Edges()[3:] {
		assert.GreaterOrEqual(t, e.VertA, 3)
		if e.FaceB != -1 {
			assert.GreaterOrEqual(t, e.FaceB, 1)
		}
	}
	for i, e := range dst.Edges() {
		assert.Equal(t, i, e.SelfIndex)
	}

	m, ok := dst.Attribute(AttrMaterialIndex, attribute.Face)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 1}, attribute.As[int](m).Values())

	for _, a := range dst.Attributes() {
		assert.Equal(t, dst.ElementCount(a.Domain()), a.Len(), a.Name())
	}
}

func TestMergePadsMissingAttributes(t *testing.T) {
	dst := triangle()
	src := quad()
	require.NoError(t, src.StoreAttribute(attribute.NewFloat("weight", attribute.Vertex, []float64{1, 2, 3, 4})))
	require.NoError(t, dst.StoreAttribute(attribute.NewBool("selected", attribute.Face, []bool{true})))

	dst.MergeWith(src)

	w, ok := dst.Attribute("weight", attribute.Vertex)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 0, 1, 2, 3, 4}, attribute.As[float64](w).Values())

	s, ok := dst.Attribute("selected", attribute.Face)
	require.True(t, ok)
	assert.Equal(t, []bool{true, false, false}, attribute.As[bool](s).Values())
}

func TestMergeEmpty(t *testing.T) {
	d := triangle()
	d.MergeWith(Empty())
	assert.Equal(t, 3, d.VertexCount())

	out := Merge(Empty(), triangle(), nil)
	assert.Equal(t, 3, out.VertexCount())
	assert.Equal(t, 1, out.SubmeshCount())
}

func TestConvertDomain(t *testing.T) {
	d := quad()
	weights := attribute.NewFloat("w", attribute.Vertex, []float64{0, 1, 2, 3})

	faces := attribute.As[float64](d.ConvertDomain(weights, attribute.Face))
	assert.Equal(t, attribute.Face, faces.Domain())
	assert.InDelta(t, 4.0/3, faces.Get(0), 1e-9)
	assert.InDelta(t, 2.0, faces.Get(1), 1e-9)

	corners := attribute.As[float64](d.ConvertDomain(weights, attribute.FaceCorner))
	assert.Equal(t, []float64{0, 3, 1, 1, 3, 2}, corners.Values())

	back := attribute.As[float64](d.ConvertDomain(faces, attribute.Vertex))
	assert.InDelta(t, 4.0/3, back.Get(0), 1e-9)
	assert.InDelta(t, (4.0/3+2)/2, back.Get(1), 1e-9)
}

func TestRequestAttribute(t *testing.T) {
	d := quad()
	a, ok := d.RequestAttribute(AttrPosition, attribute.Float, attribute.Vertex)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1, 1, 0}, attribute.As[float64](a).Values())

	// The result is a copy.
	attribute.As[float64](a).Set(0, 42)
	p, _ := d.Attribute(AttrPosition, attribute.Vertex)
	assert.Equal(t, 0.0, attribute.As[vmath.Vec3](p).Get(0).X)

	_, ok = d.RequestAttribute("missing", attribute.Float, attribute.Vertex)
	assert.False(t, ok)
}

func TestStoreAttribute(t *testing.T) {
	d := quad()
	err := d.StoreAttribute(attribute.NewFloat("w", attribute.Vertex, []float64{1}))
	assert.ErrorIs(t, err, ErrAttributeLength)

	require.NoError(t, d.StoreAttribute(attribute.NewFloat("w", attribute.Vertex, []float64{1, 2, 3, 4})))
	require.NoError(t, d.StoreAttributeAs(attribute.NewFloat("w", attribute.Vertex, []float64{1, 2, 3, 4}), attribute.Face))
	assert.False(t, d.HasAttribute("w", attribute.Vertex))
	assert.True(t, d.HasAttribute("w", attribute.Face))

	assert.True(t, d.RemoveAttribute("w"))
	assert.False(t, d.HasAttribute("w"))
}

func TestPrimitiveCounts(t *testing.T) {
	tests := []struct {
		name                string
		d                   *Data
		verts, faces, edges int
	}{
		{"circle", Circle(1, 8), 9, 8, 16},
		{"plane", Plane(vmath.One2, 0), 4, 2, 5},
		{"plane subdivided", Plane(vmath.One2, 1), 9, 8, 16},
		{"cube", Cube(vmath.One3), 8, 12, 18},
		{"cone", Cone(1, 2, 8), 10, 16, 24},
		{"cylinder", Cylinder(1, 1, 2, 8), 18, 32, 48},
		{"icosahedron", Icosahedron(), 12, 20, 30},
		{"icosphere", Icosphere(1, 1), 42, 80, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.verts, tt.d.VertexCount())
			assert.Equal(t, tt.faces, tt.d.FaceCount())
			assert.Equal(t, tt.edges, tt.d.EdgeCount())
			assert.Equal(t, 3*tt.faces, tt.d.FaceCornerCount())
			assert.Equal(t, 1, tt.d.SubmeshCount())
		})
	}
}

func TestPrimitiveClamps(t *testing.T) {
	assert.Equal(t, 2+2*MinCircularGeometryPoints, Cylinder(1, 1, 1, 0).VertexCount())
	assert.Equal(t, 1+MaxCircularGeometryPoints, Circle(1, 5000).VertexCount())

	box := Cylinder(0, 0, 0, 8).BoundingBox()
	assert.InDelta(t, MinGeometryHeight, box.Max.Y, 1e-9)
	assert.InDelta(t, MinCircularGeometryRadius, box.Max.X, 1e-9)
}

func TestClosedSolidsFaceOutward(t *testing.T) {
	for name, d := range map[string]*Data{
		"cube":      Cube(vmath.One3),
		"icosphere": Icosphere(1, 2),
		"cylinder":  Cylinder(1, 0.5, 2, 12),
		"cone":      Cone(1, 2, 12),
	} {
		center := vmath.Centroid(d.Positions()...)
		n, _ := d.Attribute(AttrNormal, attribute.Face)
		normals := attribute.As[vmath.Vec3](n)
		p := d.Positions()
		for i, f := range d.Faces() {
			c := vmath.Centroid(p[f.VertA], p[f.VertB], p[f.VertC])
			assert.Greater(t, normals.Get(i).Dot(c.Sub(center)), 0.0, "%s face %d", name, i)
		}
		for _, e := range d.Edges() {
			assert.NotEqual(t, -1, e.FaceB, "%s is not closed", name)
		}
	}
}

func TestTransform(t *testing.T) {
	d := triangle()
	d.Transform(vmath.Vec3{Y: 5}, vmath.Vec3{X: 90}, vmath.Vec3{X: 2, Y: 2, Z: 2})

	p := d.Positions()
	assert.InDelta(t, 2, p[1].X, 1e-9)
	assert.InDelta(t, 5, p[1].Y, 1e-9)

	n, _ := d.Attribute(AttrNormal, attribute.Face)
	normal := attribute.As[vmath.Vec3](n).Get(0)
	assert.InDelta(t, 1, normal.Length(), 1e-9)
	assert.InDelta(t, 1, normal.Z, 1e-9)
}

func TestBoundingBox(t *testing.T) {
	box := Cube(vmath.Vec3{X: 2, Y: 4, Z: 6}).BoundingBox()
	assert.True(t, vmath.Approximately3(vmath.Vec3{X: -1, Y: -2, Z: -3}, box.Min))
	assert.True(t, vmath.Approximately3(vmath.Vec3{X: 1, Y: 2, Z: 3}, box.Max))
	assert.Equal(t, vmath.Zero3, Empty().BoundingBox().Max)
}

func TestJSONRoundTrip(t *testing.T) {
	d := Cylinder(1, 0.5, 2, 6)
	b, err := json.Marshal(d)
	require.NoError(t, err)

	var out Data
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, d.VertexCount(), out.VertexCount())
	assert.Equal(t, d.Edges(), out.Edges())
	assert.Equal(t, d.SubmeshCount(), out.SubmeshCount())
	for _, a := range d.Attributes() {
		got, ok := out.Attribute(a.Name(), a.Domain())
		require.True(t, ok, a.Name())
		assert.Equal(t, a.Len(), got.Len())
		assert.Equal(t, a.Type(), got.Type())
	}
}
