package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geograph/pkg/vmath"
)

func TestClampedFloatInvariant(t *testing.T) {
	src := NewFloat("f", Vertex, []float64{-50, 0.3, 200})

	clamped := Into(src, ClampedFloat).(*Of[float64])
	assert.Equal(t, []float64{0, 0.3, 1}, clamped.Values())
	assert.Equal(t, ClampedFloat, clamped.Type())

	direct := NewClampedFloat("c", Vertex, []float64{-1, 0.5, 7})
	assert.Equal(t, []float64{0, 0.5, 1}, direct.Values())

	direct.Set(1, 3)
	assert.Equal(t, 1.0, direct.Get(1))

	fromInts := Into(NewInt("i", Vertex, []int{-4, 0, 1, 9}), ClampedFloat).(*Of[float64])
	assert.Equal(t, []float64{0, 0, 1, 1}, fromInts.Values())
}

func TestConversionMatrix(t *testing.T) {
	tests := []struct {
		name string
		src  Attribute
		to   Type
		want any
	}{
		{"bool to int", NewBool("a", Vertex, []bool{true, false}), Int, []int{1, 0}},
		{"bool to float", NewBool("a", Vertex, []bool{true, false}), Float, []float64{1, 0}},
		{"bool to vec2", NewBool("a", Vertex, []bool{true, false}), Vec2, []vmath.Vec2{{X: 1, Y: 1}, {}}},
		{"bool to vec3", NewBool("a", Vertex, []bool{true, false}), Vec3, []vmath.Vec3{{X: 1, Y: 1, Z: 1}, {}}},
		{"int to bool", NewInt("a", Vertex, []int{0, 3, -1}), Bool, []bool{false, true, true}},
		{"int to vec3", NewInt("a", Vertex, []int{2}), Vec3, []vmath.Vec3{{X: 2, Y: 2, Z: 2}}},
		{"float to int truncates", NewFloat("a", Vertex, []float64{2.9, -2.9}), Int, []int{2, -2}},
		{"float to vec2", NewFloat("a", Vertex, []float64{0.5}), Vec2, []vmath.Vec2{{X: 0.5, Y: 0.5}}},
		{"clamped to int", NewClampedFloat("a", Vertex, []float64{1, 0.99, 0.2}), Int, []int{1, 0, 0}},
		{"vec3 to float takes x", NewVec3("a", Vertex, []vmath.Vec3{{X: 2, Y: 5, Z: 9}}), Float, []float64{2}},
		{"vec3 to int takes x", NewVec3("a", Vertex, []vmath.Vec3{{X: 3.7, Y: 5, Z: 9}}), Int, []int{3}},
		{"vec3 to clamped takes x", NewVec3("a", Vertex, []vmath.Vec3{{X: 2, Y: 0.5}}), ClampedFloat, []float64{1}},
		{"vec3 to bool", NewVec3("a", Vertex, []vmath.Vec3{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1}}), Bool, []bool{true, false}},
		{"vec3 to vec2 drops z", NewVec3("a", Vertex, []vmath.Vec3{{X: 1, Y: 2, Z: 3}}), Vec2, []vmath.Vec2{{X: 1, Y: 2}}},
		{"vec2 to vec3 adds zero z", NewVec2("a", Vertex, []vmath.Vec2{{X: 1, Y: 2}}), Vec3, []vmath.Vec3{{X: 1, Y: 2}}},
		{"vec2 to bool", NewVec2("a", Vertex, []vmath.Vec2{{X: 1, Y: 2}, {X: 0, Y: 2}}), Bool, []bool{true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Into(tt.src, tt.to)
			assert.Equal(t, tt.to, out.Type())
			assert.Equal(t, tt.src.Name(), out.Name())
			assert.Equal(t, tt.src.Domain(), out.Domain())
			switch want := tt.want.(type) {
			case []int:
				assert.Equal(t, want, out.(*Of[int]).Values())
			case []float64:
				assert.Equal(t, want, out.(*Of[float64]).Values())
			case []bool:
				assert.Equal(t, want, out.(*Of[bool]).Values())
			case []vmath.Vec2:
				assert.Equal(t, want, out.(*Of[vmath.Vec2]).Values())
			case []vmath.Vec3:
				assert.Equal(t, want, out.(*Of[vmath.Vec3]).Values())
			}
		})
	}
}

func TestIntoNeverFailsOnEmpty(t *testing.T) {
	for _, to := range Types {
		out := Into(NewVec3("e", Face, nil), to)
		assert.Equal(t, 0, out.Len())
		assert.Equal(t, Face, out.Domain())
	}
	assert.Equal(t, 0, Into(nil, Float).Len())
}

func TestYieldWithLengthLaw(t *testing.T) {
	a := NewFloat("a", Vertex, []float64{1, 2, 3, 4, 5})
	b := NewInt("b", Vertex, []int{10, 20, 30})

	sum := a.YieldWith(b, func(x, y float64) float64 { return x + y })
	require.Len(t, sum, 5)
	assert.Equal(t, []float64{11, 22, 33, 4, 5}, sum)

	short := NewFloat("s", Vertex, []float64{1, 2, 3})
	long := NewVec3("l", Vertex, []vmath.Vec3{{X: 1}, {X: 2}, {X: 3}, {X: 4}, {X: 5}})
	prod := short.YieldWith(long, func(x, y float64) float64 { return x * y })
	assert.Equal(t, []float64{1, 4, 9, 0, 0}, prod)
}

func TestYield(t *testing.T) {
	a := NewVec3("p", Vertex, []vmath.Vec3{{X: 1}, {Y: 2}})
	out := a.Yield(func(v vmath.Vec3) vmath.Vec3 { return v.MulScalar(2) })
	assert.Equal(t, []vmath.Vec3{{X: 2}, {Y: 4}}, out)
}

func TestAppendAndPrepend(t *testing.T) {
	dst := NewInt("m", Face, []int{1, 2})
	Append(dst, NewFloat("m", Face, []float64{3.5}))
	assert.Equal(t, []int{1, 2, 3}, dst.Values())

	PrependDefaults(dst, 2)
	assert.Equal(t, []int{0, 0, 1, 2, 3}, dst.Values())
}

func TestAggregate(t *testing.T) {
	groups := [][]int{{0, 1}, {}, {2}}

	f := Aggregate(NewFloat("f", Vertex, []float64{1, 2, 6}), Face, groups).(*Of[float64])
	assert.Equal(t, []float64{1.5, 0, 6}, f.Values())
	assert.Equal(t, Face, f.Domain())

	i := Aggregate(NewInt("i", Vertex, []int{1, 2, 6}), Face, groups).(*Of[int])
	assert.Equal(t, []int{1, 0, 6}, i.Values())

	b := Aggregate(NewBool("b", Vertex, []bool{true, false, false}), Face, [][]int{{0, 1, 2}, {0}}).(*Of[bool])
	assert.Equal(t, []bool{false, true}, b.Values())

	v := Aggregate(NewVec3("v", Vertex, []vmath.Vec3{{X: 2}, {Y: 2}, {}}), Edge, [][]int{{0, 1}}).(*Of[vmath.Vec3])
	assert.Equal(t, []vmath.Vec3{{X: 1, Y: 1}}, v.Values())
}

func TestAs(t *testing.T) {
	a := NewInt("i", Vertex, []int{1, 2})
	assert.Same(t, a, As[int](a))
	f := As[float64](a)
	assert.Equal(t, []float64{1, 2}, f.Values())
}

func TestSerializationRoundTrip(t *testing.T) {
	attrs := []Attribute{
		NewBool("b", Face, []bool{true, false}),
		NewInt("i", Face, []int{1, -2, 3}),
		NewFloat("f", Edge, []float64{0.25, 7}),
		NewClampedFloat("crease", Edge, []float64{0.5}),
		NewVec2("uv", FaceCorner, []vmath.Vec2{{X: 0.5, Y: 1}}),
		NewVec3("position", Vertex, []vmath.Vec3{{X: 1, Y: 2, Z: 3}}),
		NewVec3("empty", Vertex, nil),
	}
	for _, a := range attrs {
		t.Run(a.Name(), func(t *testing.T) {
			s, err := Serialize(a)
			require.NoError(t, err)
			back, err := Deserialize(s)
			require.NoError(t, err)
			assert.Equal(t, a.Name(), back.Name())
			assert.Equal(t, a.Domain(), back.Domain())
			assert.Equal(t, a.Type(), back.Type())
			require.Equal(t, a.Len(), back.Len())
			for i := 0; i < a.Len(); i++ {
				assert.Equal(t, a.At(i), back.At(i))
			}
		})
	}
}

func TestDeserializeUnknownType(t *testing.T) {
	_, err := Deserialize(Serialized{Type: "QuaternionAttribute"})
	assert.Error(t, err)
}
