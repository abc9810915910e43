package nodes

import (
	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/curve"
	"github.com/chazu/geograph/pkg/graph"
)

// MathOperation selects what MathFloatNode computes. The values are
// persisted and must not be renumbered.
type MathOperation int

const (
	OpAdd MathOperation = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpLogarithm
	OpSquareRoot
	OpInverseSquareRoot
	OpAbsolute
	OpExponent

	OpMinimum
	OpMaximum
	OpLessThan
	OpGreaterThan
	OpSign
	OpCompare
	OpSmoothMinimum
	OpSmoothMaximum

	OpRound
	OpFloor
	OpCeil
	OpTruncate
	OpFraction
	OpModulo
	OpWrap
	OpSnap

	OpSine
	OpCosine
	OpTangent
	OpArcsine
	OpArccosine
	OpArctangent
	OpAtan2

	OpToRadians
	OpToDegrees

	OpLerp
)

func (op MathOperation) String() string { return graph.DisplayName("MathOperation", int(op)) }

// NoiseType selects whether a NoiseNode is presented as scalar or vector
// noise. Both outputs are always available.
type NoiseType int

const (
	NoiseScalar NoiseType = iota
	NoiseVector
)

func (t NoiseType) String() string { return graph.DisplayName("NoiseType", int(t)) }

// InstanceMode selects the prototype source of a GeometryInstanceNode.
type InstanceMode int

const (
	InstanceGeometry InstanceMode = iota
	InstanceCollection
)

func (m InstanceMode) String() string { return graph.DisplayName("InstanceMode", int(m)) }

// TargetDomain is the domain setting of the attribute nodes. DomainAuto
// keeps the domain of an existing attribute.
type TargetDomain int

const (
	DomainAuto TargetDomain = iota
	DomainVertex
	DomainEdge
	DomainFace
	DomainFaceCorner
)

func (d TargetDomain) String() string { return graph.DisplayName("TargetDomain", int(d)) }

// Domain returns the attribute domain for a fixed setting. It reports false
// for DomainAuto.
func (d TargetDomain) Domain() (attribute.Domain, bool) {
	switch d {
	case DomainVertex:
		return attribute.Vertex, true
	case DomainEdge:
		return attribute.Edge, true
	case DomainFace:
		return attribute.Face, true
	case DomainFaceCorner:
		return attribute.FaceCorner, true
	}
	return attribute.Vertex, false
}

// FillType is the value type written by AttributeFillNode.
type FillType int

const (
	FillFloat FillType = iota
	FillInteger
	FillVector
	FillBoolean
)

func (t FillType) String() string { return graph.DisplayName("FillType", int(t)) }

// TargetType is the type setting of AttributeConvertNode. ConvertAuto keeps
// the type of an existing attribute.
type TargetType int

const (
	ConvertAuto TargetType = iota
	ConvertFloat
	ConvertInteger
	ConvertVector
	ConvertBoolean
)

func (t TargetType) String() string { return graph.DisplayName("TargetType", int(t)) }

// Type returns the attribute type for a fixed setting. It reports false for
// ConvertAuto.
func (t TargetType) Type() (attribute.Type, bool) {
	switch t {
	case ConvertFloat:
		return attribute.Float, true
	case ConvertInteger:
		return attribute.Int, true
	case ConvertVector:
		return attribute.Vec3, true
	case ConvertBoolean:
		return attribute.Bool, true
	}
	return attribute.Float, false
}

func init() {
	graph.RegisterDisplayNames("MathOperation", map[int]string{
		int(OpAdd): "Add", int(OpSubtract): "Subtract", int(OpMultiply): "Multiply",
		int(OpDivide): "Divide", int(OpPower): "Power", int(OpLogarithm): "Logarithm",
		int(OpSquareRoot): "Square Root", int(OpInverseSquareRoot): "Inverse Square Root",
		int(OpAbsolute): "Absolute", int(OpExponent): "Exponent",
		int(OpMinimum): "Minimum", int(OpMaximum): "Maximum", int(OpLessThan): "Less Than",
		int(OpGreaterThan): "Greater Than", int(OpSign): "Sign", int(OpCompare): "Compare",
		int(OpSmoothMinimum): "Smooth Minimum", int(OpSmoothMaximum): "Smooth Maximum",
		int(OpRound): "Round", int(OpFloor): "Floor", int(OpCeil): "Ceil",
		int(OpTruncate): "Truncate", int(OpFraction): "Fraction", int(OpModulo): "Modulo",
		int(OpWrap): "Wrap", int(OpSnap): "Snap",
		int(OpSine): "Sine", int(OpCosine): "Cosine", int(OpTangent): "Tangent",
		int(OpArcsine): "Arcsine", int(OpArccosine): "Arccosine", int(OpArctangent): "Arctangent",
		int(OpAtan2): "Atan2",
		int(OpToRadians): "To Radians", int(OpToDegrees): "To Degrees",
		int(OpLerp): "Lerp",
	})
	graph.RegisterDisplayNames("NoiseType", map[int]string{
		int(NoiseScalar): "Scalar", int(NoiseVector): "Vector",
	})
	graph.RegisterDisplayNames("InstanceMode", map[int]string{
		int(InstanceGeometry): "Geometry", int(InstanceCollection): "Collection",
	})
	graph.RegisterDisplayNames("TargetDomain", map[int]string{
		int(DomainAuto): "Auto", int(DomainVertex): "Vertex", int(DomainEdge): "Edge",
		int(DomainFace): "Face", int(DomainFaceCorner): "Face Corner",
	})
	graph.RegisterDisplayNames("FillType", map[int]string{
		int(FillFloat): "Float", int(FillInteger): "Integer",
		int(FillVector): "Vector", int(FillBoolean): "Boolean",
	})
	graph.RegisterDisplayNames("CapUVType", map[int]string{
		int(curve.CapUVLocal): curve.CapUVLocal.String(), int(curve.CapUVWorld): curve.CapUVWorld.String(),
		int(curve.CapUVWorldAligned): curve.CapUVWorldAligned.String(),
	})
	graph.RegisterDisplayNames("TargetType", map[int]string{
		int(ConvertAuto): "Auto", int(ConvertFloat): "Float", int(ConvertInteger): "Integer",
		int(ConvertVector): "Vector", int(ConvertBoolean): "Boolean",
	})
}
