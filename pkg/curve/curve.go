// Package curve holds sampled curves: positions with a tangent, normal and
// binormal frame per point, and the parametric primitives that produce them.
package curve

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/chazu/geograph/pkg/vmath"
)

// Type identifies how a curve was generated.
type Type int

const (
	Line Type = iota
	Circle
	QuadraticBezier
	CubicBezier
	Helix
	None
	Unknown
)

var typeNames = [...]string{"Line", "Circle", "QuadraticBezier", "CubicBezier", "Helix", "None", "Unknown"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Resolution limits.
const (
	MaxCurveResolution       = 1024
	MinLineCurveResolution   = 1
	MinCircleCurveResolution = 3
	MinBezierCurveResolution = 1
	MinHelixCurveResolution  = 1
	MinCircularCurveRadius   = 0.01
)

// ErrLengthMismatch is returned by New when a frame sequence does not hold
// exactly one value per point.
var ErrLengthMismatch = errors.New("curve: sequence length does not match point count")

// Data is a sampled curve. Position, Tangent, Normal and Binormal always hold
// Points values each.
type Data struct {
	Type     Type         `json:"type"`
	Points   int          `json:"points"`
	Closed   bool         `json:"closed"`
	Position []vmath.Vec3 `json:"position"`
	Tangent  []vmath.Vec3 `json:"tangent"`
	Normal   []vmath.Vec3 `json:"normal"`
	Binormal []vmath.Vec3 `json:"binormal"`
}

var sequenceNames = [...]string{"position", "tangent", "normal", "binormal"}

// New validates and builds a curve.
func New(typ Type, points int, closed bool, position, tangent, normal, binormal []vmath.Vec3) (*Data, error) {
	// Checked in a fixed order so the error always names the first
	// mismatched sequence.
	for i, seq := range [...][]vmath.Vec3{position, tangent, normal, binormal} {
		if len(seq) != points {
			return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrLengthMismatch, sequenceNames[i], len(seq), points)
		}
	}
	return &Data{
		Type:     typ,
		Points:   points,
		Closed:   closed,
		Position: position,
		Tangent:  tangent,
		Normal:   normal,
		Binormal: binormal,
	}, nil
}

// Empty returns a curve with no points.
func Empty() *Data {
	return &Data{
		Type:     None,
		Position: []vmath.Vec3{},
		Tangent:  []vmath.Vec3{},
		Normal:   []vmath.Vec3{},
		Binormal: []vmath.Vec3{},
	}
}

// IsEmpty reports whether c has no points. A nil curve is empty.
func (c *Data) IsEmpty() bool {
	return c == nil || c.Points == 0
}

// Clone returns a deep copy of c. A nil curve clones to Empty.
func (c *Data) Clone() *Data {
	if c == nil {
		return Empty()
	}
	out := &Data{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("curve: clone: %v", err))
	}
	return out
}

// Validate reports whether c's sequences match its point count.
func (c *Data) Validate() error {
	_, err := New(c.Type, c.Points, c.Closed, c.Position, c.Tangent, c.Normal, c.Binormal)
	return err
}
