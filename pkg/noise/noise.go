// Package noise provides multi-octave 3D simplex noise.
package noise

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/chazu/geograph/pkg/vmath"
)

// MaxOctaves is the largest octave count accepted by Simplex3.
const MaxOctaves = 8

// Minimum lacunarity and persistence.
const (
	MinLacunarity  = 0.001
	MinPersistence = 0.001
)

// Offsets applied to the sample position for the three components of
// Simplex3X3.
var (
	offsetX = vmath.Vec3{X: 84032.7825}
	offsetY = vmath.Vec3{Y: 36672.8438}
	offsetZ = vmath.Vec3{Z: 54892.5638}
)

var source = opensimplex.New(0)

func snoise(p vmath.Vec3) float64 {
	return source.Eval3(p.X, p.Y, p.Z)
}

// Simplex3 samples noise at pos*scale. With one octave the raw noise value
// is returned; otherwise octaves are summed with frequency multiplied by
// lacunarity and amplitude by persistence each step, and the sum is
// normalized by the total amplitude. Octaves are clamped to [1, MaxOctaves].
func Simplex3(pos vmath.Vec3, scale float64, octaves int, lacunarity, persistence float64) float64 {
	octaves = vmath.ClampInt(octaves, 1, MaxOctaves)
	p := pos.MulScalar(scale)
	if octaves == 1 {
		return snoise(p)
	}
	lacunarity = vmath.MinClamped(lacunarity, MinLacunarity)
	persistence = vmath.MinClamped(persistence, MinPersistence)

	var total, maxValue float64
	frequency, amplitude := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		total += snoise(p.MulScalar(frequency)) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return total / maxValue
}

// Simplex3X3 samples three decorrelated noise values, one per component.
func Simplex3X3(pos vmath.Vec3, scale float64, octaves int, lacunarity, persistence float64) vmath.Vec3 {
	return vmath.Vec3{
		X: Simplex3(pos.Add(offsetX), scale, octaves, lacunarity, persistence),
		Y: Simplex3(pos.Add(offsetY), scale, octaves, lacunarity, persistence),
		Z: Simplex3(pos.Add(offsetZ), scale, octaves, lacunarity, persistence),
	}
}
