// Package nodes implements the node kinds of the geometry graph and the
// default registry that builds them by type name.
//
// Every node follows the same shape: ports are created in the constructor
// in a fixed order, scalar inputs have Update setters guarded by
// graph.Update, OnPortValueChanged pulls the new value, clamps it and
// recomputes only when it changed, and CustomData stores the scalar inputs
// and settings as a positional JSON array. Inputs read per element always
// recompute, since their source can change without its single value
// changing.
package nodes

import (
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/kernel"
	"github.com/chazu/geograph/pkg/kernel/sdfx"
)

// Registered node type names.
const (
	TypeOutput = "OutputNode"

	TypeIntegerProperty            = "IntegerPropertyNode"
	TypeFloatProperty              = "FloatPropertyNode"
	TypeVectorProperty             = "VectorPropertyNode"
	TypeStringProperty             = "StringPropertyNode"
	TypeGeometryObjectProperty     = "GeometryObjectPropertyNode"
	TypeGeometryCollectionProperty = "GeometryCollectionPropertyNode"

	TypeFloatValue    = "FloatValueNode"
	TypeIntegerValue  = "IntegerValueNode"
	TypeVectorValue   = "VectorValueNode"
	TypeClampFloat    = "ClampFloatNode"
	TypeMathFloat     = "MathFloatNode"
	TypeMapRangeFloat = "MapRangeFloatNode"
	TypeRandomFloat   = "RandomFloatNode"
	TypeRandomInteger = "RandomIntegerNode"
	TypeNoise         = "NoiseNode"
	TypeGetPosition   = "GetPositionNode"

	TypeCirclePrimitive      = "CirclePrimitiveNode"
	TypePlanePrimitive       = "PlanePrimitiveNode"
	TypeCubePrimitive        = "CubePrimitiveNode"
	TypeConePrimitive        = "ConePrimitiveNode"
	TypeCylinderPrimitive    = "CylinderPrimitiveNode"
	TypeIcospherePrimitive   = "IcospherePrimitiveNode"
	TypeRoundedCubePrimitive = "RoundedCubePrimitiveNode"

	TypeTransformGeometry = "TransformGeometryNode"
	TypeJoinGeometry      = "JoinGeometryNode"
	TypeAttributeFill     = "AttributeFillNode"
	TypeAttributeConvert  = "AttributeConvertNode"

	TypeLineCurve            = "LinePrimitiveCurveNode"
	TypeCircleCurve          = "CirclePrimitiveCurveNode"
	TypeQuadraticBezierCurve = "QuadraticBezierCurveNode"
	TypeCubicBezierCurve     = "CubicBezierCurveNode"
	TypeHelixCurve           = "HelixCurveNode"
	TypeTransformCurve       = "TransformCurveNode"
	TypeCurveToPoints        = "CurveToPointsNode"
	TypeCurveToGeometry      = "CurveToGeometryNode"

	TypeGeometryInstance = "GeometryInstanceNode"
	TypeRealizeInstances = "RealizeInstancesNode"
)

// Registry returns a registry holding every node kind, with SDF nodes
// backed by the sdfx kernel.
func Registry() *graph.Registry {
	return NewRegistry(sdfx.New())
}

// NewRegistry returns a registry holding every node kind, with SDF nodes
// backed by k.
func NewRegistry(k kernel.Kernel) *graph.Registry {
	r := graph.NewRegistry()
	Register(r, k)
	return r
}

// factory adapts a constructor returning a concrete node to graph.Factory.
func factory[N graph.Node](f func(graph.NodeID) N) graph.Factory {
	return func(id graph.NodeID) graph.Node { return f(id) }
}

// Register adds every node kind to r.
func Register(r *graph.Registry, k kernel.Kernel) {
	r.Register(TypeOutput, factory(NewOutputNode))

	r.Register(TypeIntegerProperty, propertyFactory(TypeIntegerProperty, graph.PropertyInteger))
	r.Register(TypeFloatProperty, propertyFactory(TypeFloatProperty, graph.PropertyFloat))
	r.Register(TypeVectorProperty, propertyFactory(TypeVectorProperty, graph.PropertyVector))
	r.Register(TypeStringProperty, propertyFactory(TypeStringProperty, graph.PropertyString))
	r.Register(TypeGeometryObjectProperty, propertyFactory(TypeGeometryObjectProperty, graph.PropertyGeometryObject))
	r.Register(TypeGeometryCollectionProperty, propertyFactory(TypeGeometryCollectionProperty, graph.PropertyGeometryCollection))

	r.Register(TypeFloatValue, factory(NewFloatValueNode))
	r.Register(TypeIntegerValue, factory(NewIntegerValueNode))
	r.Register(TypeVectorValue, factory(NewVectorValueNode))
	r.Register(TypeClampFloat, factory(NewClampFloatNode))
	r.Register(TypeMathFloat, factory(NewMathFloatNode))
	r.Register(TypeMapRangeFloat, factory(NewMapRangeFloatNode))
	r.Register(TypeRandomFloat, factory(NewRandomFloatNode))
	r.Register(TypeRandomInteger, factory(NewRandomIntegerNode))
	r.Register(TypeNoise, factory(NewNoiseNode))
	r.Register(TypeGetPosition, factory(NewGetPositionNode))

	r.Register(TypeCirclePrimitive, factory(NewCirclePrimitiveNode))
	r.Register(TypePlanePrimitive, factory(NewPlanePrimitiveNode))
	r.Register(TypeCubePrimitive, factory(NewCubePrimitiveNode))
	r.Register(TypeConePrimitive, factory(NewConePrimitiveNode))
	r.Register(TypeCylinderPrimitive, factory(NewCylinderPrimitiveNode))
	r.Register(TypeIcospherePrimitive, factory(NewIcospherePrimitiveNode))
	r.Register(TypeRoundedCubePrimitive, func(id graph.NodeID) graph.Node {
		return NewRoundedCubePrimitiveNode(id, k)
	})

	r.Register(TypeTransformGeometry, factory(NewTransformGeometryNode))
	r.Register(TypeJoinGeometry, factory(NewJoinGeometryNode))
	r.Register(TypeAttributeFill, factory(NewAttributeFillNode))
	r.Register(TypeAttributeConvert, factory(NewAttributeConvertNode))

	r.Register(TypeLineCurve, factory(NewLineCurveNode))
	r.Register(TypeCircleCurve, factory(NewCircleCurveNode))
	r.Register(TypeQuadraticBezierCurve, factory(NewQuadraticBezierCurveNode))
	r.Register(TypeCubicBezierCurve, factory(NewCubicBezierCurveNode))
	r.Register(TypeHelixCurve, factory(NewHelixCurveNode))
	r.Register(TypeTransformCurve, factory(NewTransformCurveNode))
	r.Register(TypeCurveToPoints, factory(NewCurveToPointsNode))
	r.Register(TypeCurveToGeometry, factory(NewCurveToGeometryNode))

	r.Register(TypeGeometryInstance, factory(NewGeometryInstanceNode))
	r.Register(TypeRealizeInstances, factory(NewRealizeInstancesNode))
}
