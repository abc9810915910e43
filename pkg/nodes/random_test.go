package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/noise"
	"github.com/chazu/geograph/pkg/vmath"
)

func TestRandomFloatNodeSeeded(t *testing.T) {
	_, ec := newGraph()
	n := NewRandomFloatNode("")

	a := read[float64](t, ec, n, "Value")
	assert.Equal(t, a, read[float64](t, ec, n, "Value"), "same seed, same value")
	assert.GreaterOrEqual(t, a, 0.0)
	assert.Less(t, a, 1.0)

	n.UpdateSeed(ec, 42)
	assert.NotEqual(t, a, read[float64](t, ec, n, "Value"))

	vals := readN[float64](t, ec, n, "Value", 4)
	require.Len(t, vals, 4)
	assert.Equal(t, vals, readN[float64](t, ec, n, "Value", 4))
	assert.Equal(t, vals[0], read[float64](t, ec, n, "Value"), "the single value leads the sequence")
	assert.Zero(t, ec.Rand.Depth(), "seed pushes are balanced")
}

func TestRandomFloatNodeSeedInput(t *testing.T) {
	g, ec := newGraph()
	seed := add(t, g, NewIntegerValueNode(""))
	r := add(t, g, NewRandomFloatNode(""))
	connect(t, g, seed, "Value", r, "Seed")

	seed.UpdateValue(ec, 7)
	direct := NewRandomFloatNode("")
	direct.UpdateSeed(ec, 7)
	assert.Equal(t, read[float64](t, ec, direct, "Value"), read[float64](t, ec, r, "Value"))

	data, err := r.CustomData()
	require.NoError(t, err)
	assert.Equal(t, "[7]", data)
}

func TestRandomIntegerNode(t *testing.T) {
	tests := []struct {
		name     string
		seed     int
		min, max int
	}{
		{"defaults", 0, 0, 100},
		{"negative range", 3, -10, -5},
		{"single value", 8, 4, 5},
		{"collapsed range", 1, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ec := newGraph()
			n := NewRandomIntegerNode("")
			n.UpdateSeed(ec, tt.seed)
			n.UpdateMin(ec, tt.min)
			n.UpdateMax(ec, tt.max)

			vals := readN[int](t, ec, n, "Value", 20)
			require.Len(t, vals, 20)
			assert.Equal(t, vals, readN[int](t, ec, n, "Value", 20))
			assert.Equal(t, vals[0], read[int](t, ec, n, "Value"), "the single value leads the sequence")
			for _, v := range vals {
				assert.GreaterOrEqual(t, v, tt.min)
				if tt.max > tt.min {
					assert.Less(t, v, tt.max)
				} else {
					assert.Equal(t, tt.min, v)
				}
			}
			assert.Zero(t, ec.Rand.Depth())
		})
	}
}

func TestRandomIntegerNodeInputs(t *testing.T) {
	g, ec := newGraph()
	seed := add(t, g, NewIntegerValueNode(""))
	r := add(t, g, NewRandomIntegerNode(""))
	fill := add(t, g, NewAttributeFillNode(""))
	cube := add(t, g, NewCubePrimitiveNode(""))
	connect(t, g, seed, "Value", r, "Seed")
	connect(t, g, r, "Value", fill, "Integer")
	connect(t, g, cube, "Result", fill, "Geometry")
	fill.UpdateAttribute(ec, "id")
	fill.UpdateType(ec, FillInteger)

	for s := 1; s <= 5; s++ {
		seed.UpdateValue(ec, s)
		a, ok := read[*geometry.Data](t, ec, fill, "Result").FindAttribute("id")
		require.True(t, ok)
		assert.Equal(t, readN[int](t, ec, r, "Value", 8), attribute.As[int](a).Values(), "seed %d", s)
	}

	r.UpdateMax(ec, 10)
	data, err := r.CustomData()
	require.NoError(t, err)
	assert.Equal(t, "[5,0,10]", data)
	restored := NewRandomIntegerNode("")
	require.NoError(t, restored.SetCustomData(ec, data))
	assert.Equal(t, read[int](t, ec, r, "Value"), read[int](t, ec, restored, "Value"))
}

func TestNoiseNodeSingleValue(t *testing.T) {
	_, ec := newGraph()
	n := NewNoiseNode("")
	p := vmath.Vec3{X: 0.3, Y: 1.7, Z: -2.2}
	n.UpdatePosition(ec, p)

	assert.Equal(t, noise.Simplex3(p, 1, 4, 2, 0.5), read[float64](t, ec, n, "Result"))
	assert.Equal(t, noise.Simplex3X3(p, 1, 4, 2, 0.5), read[vmath.Vec3](t, ec, n, "ResultVector"))
}

func TestNoiseNodeClampsSettings(t *testing.T) {
	_, ec := newGraph()
	n := NewNoiseNode("")
	n.UpdateOctaves(ec, 100)
	n.UpdateLacunarity(ec, -1)
	n.UpdatePersistence(ec, -1)
	assert.Equal(t, noise.MaxOctaves, n.octaves)
	assert.Equal(t, noise.MinLacunarity, n.lacunarity)
	assert.Equal(t, noise.MinPersistence, n.persistence)
}

func TestNoiseNodePerElementCache(t *testing.T) {
	g, ec := newGraph()
	seq := add(t, g, NewRandomFloatNode(""))
	pos := add(t, g, NewVectorValueNode(""))
	n := add(t, g, NewNoiseNode(""))
	connect(t, g, seq, "Value", pos, "X")
	connect(t, g, pos, "Vector", n, "Position")

	first := readN[float64](t, ec, n, "Result", 3)
	require.Len(t, first, 3)
	assert.False(t, n.floatDirty)
	assert.Equal(t, first, readN[float64](t, ec, n, "Result", 3))

	n.UpdateScale(ec, 2)
	assert.True(t, n.floatDirty)
	assert.True(t, n.vectorDirty)
	second := readN[float64](t, ec, n, "Result", 3)
	assert.NotEqual(t, first, second)

	// A different count invalidates the cache too.
	assert.Len(t, readN[float64](t, ec, n, "Result", 5), 5)
}

func TestNoiseNodeWhileSerializing(t *testing.T) {
	_, ec := newGraph()
	n := NewNoiseNode("")
	n.UpdatePosition(ec, vmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	done := ec.Serializing()
	assert.Equal(t, 0.0, read[float64](t, ec, n, "Result"))
	assert.Equal(t, vmath.Zero3, read[vmath.Vec3](t, ec, n, "ResultVector"))
	assert.Equal(t, []float64{0, 0, 0}, readN[float64](t, ec, n, "Result", 3))
	assert.True(t, n.floatDirty, "placeholders are not cached")
	done()

	assert.NotEqual(t, 0.0, read[float64](t, ec, n, "Result"))
}

func TestNoiseNodeTypeDoesNotAffectSampling(t *testing.T) {
	tests := []struct {
		name string
		typ  NoiseType
	}{
		{"scalar", NoiseScalar},
		{"vector", NoiseVector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ec := newGraph()
			n := add(t, g, NewNoiseNode(""))
			m := add(t, g, NewMathFloatNode(""))
			connect(t, g, n, "Result", m, "X")
			n.UpdatePosition(ec, vmath.Vec3{X: 0.4, Y: 1.1, Z: 2.5})
			scalar := read[float64](t, ec, n, "Result")
			vector := read[vmath.Vec3](t, ec, n, "ResultVector")
			readN[float64](t, ec, n, "Result", 3)

			n.UpdateType(ec, tt.typ)
			assert.Equal(t, tt.typ, n.NoiseType())
			assert.False(t, n.floatDirty, "cached samples stay valid")
			assert.Equal(t, scalar, read[float64](t, ec, n, "Result"))
			assert.Equal(t, vector, read[vmath.Vec3](t, ec, n, "ResultVector"))
			assert.Equal(t, scalar, read[float64](t, ec, m, "Result"))
		})
	}
}

func TestNoiseNodeCustomData(t *testing.T) {
	_, ec := newGraph()
	n := NewNoiseNode("")
	n.UpdatePosition(ec, vmath.Vec3{X: 1, Y: 2, Z: 3})
	n.UpdateOctaves(ec, 6)
	n.UpdateType(ec, NoiseVector)

	data, err := n.CustomData()
	require.NoError(t, err)
	assert.Equal(t, "[[1,2,3],1,6,2,0.5,1]", data)

	restored := NewNoiseNode("")
	require.NoError(t, restored.SetCustomData(ec, data))
	assert.Equal(t, n.position, restored.position)
	assert.Equal(t, 6, restored.octaves)
	assert.Equal(t, NoiseVector, restored.noiseType)

	assert.Error(t, restored.SetCustomData(ec, "[1,2]"))
	assert.Error(t, restored.SetCustomData(ec, "{"))
}

var _ graph.ValuesProvider = (*NoiseNode)(nil)
