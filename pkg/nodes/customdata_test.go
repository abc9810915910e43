package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geograph/pkg/vmath"
)

func TestEncodeSettings(t *testing.T) {
	data, err := encodeSettings(1.5, 3, true, false, vmath.Vec3{X: 1, Y: -2, Z: 0.5}, "name", OpSine)
	require.NoError(t, err)
	assert.Equal(t, `[1.5,3,1,0,[1,-2,0.5],"name",26]`, data)
}

func TestDecodeSettings(t *testing.T) {
	var (
		f  float64
		i  int
		b  bool
		v  vmath.Vec3
		s  string
		op MathOperation
	)
	require.NoError(t, decodeSettings(`[1.5,3,1,[1,-2,0.5],"name",26]`, &f, &i, &b, &v, &s, &op))
	assert.Equal(t, 1.5, f)
	assert.Equal(t, 3, i)
	assert.True(t, b)
	assert.Equal(t, vmath.Vec3{X: 1, Y: -2, Z: 0.5}, v)
	assert.Equal(t, "name", s)
	assert.Equal(t, OpSine, op)

	// Extra trailing values are ignored.
	require.NoError(t, decodeSettings(`[2,9]`, &f))
	assert.Equal(t, 2.0, f)
}

func TestDecodeSettingsEmptyLeavesTargets(t *testing.T) {
	f := 4.0
	require.NoError(t, decodeSettings("", &f))
	require.NoError(t, decodeSettings("   ", &f))
	assert.Equal(t, 4.0, f)
}

func TestDecodeSettingsErrors(t *testing.T) {
	var (
		f float64
		v vmath.Vec3
	)
	tests := []struct {
		name, data string
	}{
		{"not json", `[1,`},
		{"not an array", `{"a":1}`},
		{"too short", `[1]`},
		{"wrong type", `["x",[0,0,0]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeSettings(tt.data, &f, &v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "nodes: decode custom data")
		})
	}
}
