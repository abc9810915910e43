package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/vmath"
)

func TestSanitizeReferenceName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Radius", "Radius"},
		{"Outer Radius", "Outer_Radius"},
		{"  spaced  ", "spaced"},
		{"3D Size", "_3D_Size"},
		{"a-b.c", "a_b_c"},
		{"", "_"},
		{"héllo", "h_llo"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeReferenceName(tt.in))
		})
	}
}

func TestAddPropertyUniqueReferenceNames(t *testing.T) {
	g := New()
	a := NewProperty("Size", PropertyFloat)
	b := NewProperty("Size", PropertyInteger)
	c := NewProperty("Size", PropertyVector)
	for _, p := range []*Property{a, b, c} {
		require.NoError(t, g.AddProperty(p))
	}
	assert.Equal(t, "Size", a.ReferenceName)
	assert.Equal(t, "Size_1", b.ReferenceName)
	assert.Equal(t, "Size_2", c.ReferenceName)
	assert.Same(t, b, g.FindProperty("Size_1"))
	assert.ErrorIs(t, g.AddProperty(a), ErrDuplicate)
	assert.Len(t, g.Properties(), 3)
}

func TestGetValueOrDefault(t *testing.T) {
	p := NewProperty("Count", PropertyInteger)
	assert.Equal(t, 0, GetValueOrDefault(p, 9), "default payload wins over caller default")

	p.Default.Int = 4
	assert.Equal(t, 4, GetValueOrDefault(p, 9))

	p.Value = 7
	assert.Equal(t, 7, GetValueOrDefault(p, 9))

	assert.Equal(t, 9, GetValueOrDefault[int](nil, 9))
	assert.Equal(t, "x", GetValueOrDefault(p, "x"), "wrong type falls back to caller default")

	geo := NewProperty("Mesh", PropertyGeometryObject)
	assert.Nil(t, geo.Default.Value())
	empty := geometry.Empty()
	assert.Same(t, empty, GetValueOrDefault(geo, empty))
}

func TestNewDefault(t *testing.T) {
	d, err := NewDefault(PropertyFloat, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d.Value())

	d, err = NewDefault(PropertyVector, vmath.One3)
	require.NoError(t, err)
	assert.Equal(t, vmath.One3, d.Value())

	_, err = NewDefault(PropertyString, 1.5)
	assert.Error(t, err)

	d, err = NewDefault(PropertyGeometryCollection, "ignored")
	require.NoError(t, err)
	assert.Nil(t, d.Value())
}

func TestSetPropertyValueNotifiesConsumers(t *testing.T) {
	g := New()
	prop := NewProperty("Height", PropertyFloat)
	require.NoError(t, g.AddProperty(prop))

	bound := add(t, g, newRecorderNode("").(*recorderNode))
	bound.property = prop.ID
	other := add(t, g, newRecorderNode("").(*recorderNode))

	require.NoError(t, g.SetPropertyValue(prop.ID, 2))
	assert.Equal(t, 2.0, prop.Value, "integers are widened for float properties")
	assert.Equal(t, 1, bound.binds)
	assert.Same(t, prop, bound.bound)
	assert.Zero(t, other.binds)

	assert.Error(t, g.SetPropertyValue(prop.ID, "tall"))
	assert.ErrorIs(t, g.SetPropertyValue("missing", 1.0), ErrPropertyNotFound)

	require.NoError(t, g.RemoveProperty(prop.ID))
	assert.Equal(t, 2, bound.binds)
	assert.Nil(t, bound.bound)
	assert.Nil(t, g.Property(prop.ID))
	assert.ErrorIs(t, g.RemoveProperty(prop.ID), ErrPropertyNotFound)
}

func TestSetGeometryProperty(t *testing.T) {
	g := New()
	obj := NewProperty("Mesh", PropertyGeometryObject)
	coll := NewProperty("Meshes", PropertyGeometryCollection)
	require.NoError(t, g.AddProperty(obj))
	require.NoError(t, g.AddProperty(coll))

	cube := geometry.Cube(vmath.One3)
	require.NoError(t, g.SetPropertyValue(obj.ID, cube))
	assert.Same(t, cube, GetValueOrDefault(obj, geometry.Empty()))

	require.NoError(t, g.SetPropertyValue(coll.ID, []*geometry.Data{cube}))
	assert.Error(t, g.SetPropertyValue(coll.ID, cube))
}

func TestPropertyHashCode(t *testing.T) {
	a := &Property{ID: "a", ReferenceName: "A", Type: PropertyFloat}
	b := &Property{ID: "b", ReferenceName: "B", Type: PropertyFloat}

	g1 := New()
	require.NoError(t, g1.AddProperty(a))
	require.NoError(t, g1.AddProperty(b))

	g2 := New()
	require.NoError(t, g2.AddProperty(&Property{ID: "b", ReferenceName: "B", Type: PropertyFloat}))
	require.NoError(t, g2.AddProperty(&Property{ID: "a", ReferenceName: "A", Type: PropertyFloat}))
	assert.Equal(t, g1.PropertyHashCode(), g2.PropertyHashCode(), "order independent")

	before := g1.PropertyHashCode()
	a.ReferenceName = "Renamed"
	assert.NotEqual(t, before, g1.PropertyHashCode())

	assert.Zero(t, New().PropertyHashCode())
}

func TestResolveMissingPropertyIsNil(t *testing.T) {
	g := New()
	assert.Nil(t, g.Context().ResolveProperty("nope"))
	assert.Nil(t, g.Context().ResolveProperty(""))
}

func TestParsePropertyType(t *testing.T) {
	for _, pt := range []PropertyType{
		PropertyGeometryObject, PropertyGeometryCollection, PropertyInteger,
		PropertyFloat, PropertyVector, PropertyString,
	} {
		got, err := ParsePropertyType(pt.String())
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}
	got, err := ParsePropertyType("float")
	require.NoError(t, err)
	assert.Equal(t, PropertyFloat, got)
	_, err = ParsePropertyType("Color")
	assert.Error(t, err)
	assert.Equal(t, PortCollection, PropertyGeometryCollection.PortType())
}
