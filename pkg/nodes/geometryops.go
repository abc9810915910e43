package nodes

import (
	"strings"

	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/vmath"
)

// TransformGeometryNode translates, rotates (Euler degrees) and scales its
// input geometry.
type TransformGeometryNode struct {
	*graph.Base
	geometryResult
	input                        *geometry.Data
	translation, rotation, scale vmath.Vec3

	inputPort, translationPort, rotationPort, scalePort *graph.Port
}

func NewTransformGeometryNode(id graph.NodeID) *TransformGeometryNode {
	n := &TransformGeometryNode{
		Base:  graph.NewBase(id, TypeTransformGeometry),
		input: geometry.Empty(),
		scale: vmath.One3,
	}
	n.inputPort = n.AddPort("Input", graph.PortGeometry, graph.Input)
	n.translationPort = n.AddPort("Translation", graph.PortVector, graph.Input)
	n.rotationPort = n.AddPort("Rotation", graph.PortVector, graph.Input)
	n.scalePort = n.AddPort("Scale", graph.PortVector, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *TransformGeometryNode) calculate() {
	if n.input.IsEmpty() {
		n.result = geometry.Empty()
		return
	}
	n.result = geometry.Transformed(n.input, n.translation, n.rotation, n.scale)
}

func (n *TransformGeometryNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *TransformGeometryNode) UpdateTranslation(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.translation, v) {
		n.changed(ec)
	}
}

func (n *TransformGeometryNode) UpdateRotation(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.rotation, v) {
		n.changed(ec)
	}
}

func (n *TransformGeometryNode) UpdateScale(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.scale, v) {
		n.changed(ec)
	}
}

func (n *TransformGeometryNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *TransformGeometryNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.inputPort:
		n.input = geometryInput(ec, conn)
		changed = true
	case n.translationPort:
		changed = pull(ec, conn, &n.translation)
	case n.rotationPort:
		changed = pull(ec, conn, &n.rotation)
	case n.scalePort:
		changed = pull(ec, conn, &n.scale)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *TransformGeometryNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port != n.inputPort {
		return
	}
	n.input = geometry.Empty()
	n.result = geometry.Empty()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *TransformGeometryNode) CustomData() (string, error) {
	return encodeSettings(n.translation, n.rotation, n.scale)
}

func (n *TransformGeometryNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.translation, &n.rotation, &n.scale); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// JoinGeometryNode merges every geometry connected to its Input port in
// connection order.
type JoinGeometryNode struct {
	*graph.Base
	geometryResult

	inputPort *graph.Port
}

func NewJoinGeometryNode(id graph.NodeID) *JoinGeometryNode {
	n := &JoinGeometryNode{Base: graph.NewBase(id, TypeJoinGeometry)}
	n.inputPort = n.AddPort("Input", graph.PortGeometry, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *JoinGeometryNode) calculate(ec *graph.EvaluationContext) {
	var parts []*geometry.Data
	for _, g := range graph.GetPortValues[*geometry.Data](ec, n.inputPort, nil) {
		if g != nil {
			parts = append(parts, g)
		}
	}
	n.result = geometry.Merge(parts...)
}

func (n *JoinGeometryNode) changed(ec *graph.EvaluationContext) {
	n.calculate(ec)
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *JoinGeometryNode) GetValueForPort(ec *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, func() { n.calculate(ec) })
}

func (n *JoinGeometryNode) OnPortValueChanged(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port == n.inputPort {
		n.changed(ec)
	}
}

func (n *JoinGeometryNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port == n.inputPort {
		n.changed(ec)
	}
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// AttributeFillNode writes a value into a named attribute on every element
// of the target domain. Per-element sources connected to the value ports
// give each element its own value.
type AttributeFillNode struct {
	*graph.Base
	geometryResult
	geometry     *geometry.Data
	attribute    string
	floatValue   float64
	integerValue int
	vectorValue  vmath.Vec3
	booleanValue bool
	domain       TargetDomain
	fillType     FillType

	geometryPort, attributePort                     *graph.Port
	floatPort, integerPort, vectorPort, booleanPort *graph.Port
}

func NewAttributeFillNode(id graph.NodeID) *AttributeFillNode {
	n := &AttributeFillNode{Base: graph.NewBase(id, TypeAttributeFill), geometry: geometry.Empty()}
	n.geometryPort = n.AddPort("Geometry", graph.PortGeometry, graph.Input)
	n.attributePort = n.AddPort("Attribute", graph.PortString, graph.Input)
	n.floatPort = n.AddPort("Float", graph.PortFloat, graph.Input)
	n.integerPort = n.AddPort("Integer", graph.PortInteger, graph.Input)
	n.vectorPort = n.AddPort("Vector", graph.PortVector, graph.Input)
	n.booleanPort = n.AddPort("Boolean", graph.PortBoolean, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *AttributeFillNode) targetDomain() attribute.Domain {
	if d, ok := n.domain.Domain(); ok {
		return d
	}
	if a, ok := n.geometry.FindAttribute(n.attribute); ok {
		return a.Domain()
	}
	return attribute.Vertex
}

func (n *AttributeFillNode) calculate(ec *graph.EvaluationContext) {
	if isBlank(n.attribute) {
		n.result = geometry.Empty()
		return
	}
	domain := n.targetDomain()
	res := n.geometry.Clone()
	res.RemoveAttribute(n.attribute)
	count := res.ElementCount(domain)

	var a attribute.Attribute
	switch n.fillType {
	case FillInteger:
		a = attribute.NewInt(n.attribute, domain, collect(ec, n.integerPort, count, n.integerValue))
	case FillVector:
		a = attribute.NewVec3(n.attribute, domain, collect(ec, n.vectorPort, count, n.vectorValue))
	case FillBoolean:
		a = attribute.NewBool(n.attribute, domain, collect(ec, n.booleanPort, count, n.booleanValue))
	default:
		a = attribute.NewFloat(n.attribute, domain, collect(ec, n.floatPort, count, n.floatValue))
	}
	if err := res.StoreAttribute(a); err != nil {
		ec.Log.Warn("attribute fill failed", zap.String("node", n.ID().Short()), zap.Error(err))
	}
	n.result = res
}

func (n *AttributeFillNode) changed(ec *graph.EvaluationContext) {
	n.calculate(ec)
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *AttributeFillNode) UpdateAttribute(ec *graph.EvaluationContext, name string) {
	if graph.Update(&n.attribute, name) {
		n.changed(ec)
	}
}

func (n *AttributeFillNode) UpdateFloat(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.floatValue, v) {
		n.changed(ec)
	}
}

func (n *AttributeFillNode) UpdateInteger(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.integerValue, v) {
		n.changed(ec)
	}
}

func (n *AttributeFillNode) UpdateVector(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.vectorValue, v) {
		n.changed(ec)
	}
}

func (n *AttributeFillNode) UpdateBoolean(ec *graph.EvaluationContext, v bool) {
	if graph.Update(&n.booleanValue, v) {
		n.changed(ec)
	}
}

func (n *AttributeFillNode) UpdateDomain(ec *graph.EvaluationContext, d TargetDomain) {
	if graph.Update(&n.domain, d) {
		n.changed(ec)
	}
}

func (n *AttributeFillNode) UpdateType(ec *graph.EvaluationContext, t FillType) {
	if graph.Update(&n.fillType, t) {
		n.changed(ec)
	}
}

func (n *AttributeFillNode) GetValueForPort(ec *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, func() { n.calculate(ec) })
}

func (n *AttributeFillNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	changed := true
	switch port {
	case n.geometryPort:
		n.geometry = geometryInput(ec, conn)
	case n.attributePort:
		changed = pull(ec, conn, &n.attribute)
	// A per-element source may change without its single value changing.
	case n.floatPort:
		pull(ec, conn, &n.floatValue)
	case n.integerPort:
		pull(ec, conn, &n.integerValue)
	case n.vectorPort:
		pull(ec, conn, &n.vectorValue)
	case n.booleanPort:
		pull(ec, conn, &n.booleanValue)
	default:
		changed = false
	}
	if changed {
		n.changed(ec)
	}
}

func (n *AttributeFillNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port == n.geometryPort {
		n.geometry = geometry.Empty()
		n.changed(ec)
	}
}

// OnAfterDeserialize recomputes the result, since per-element sources
// yield placeholders while a load is in progress.
func (n *AttributeFillNode) OnAfterDeserialize(ec *graph.EvaluationContext) {
	n.changed(ec)
}

func (n *AttributeFillNode) CustomData() (string, error) {
	return encodeSettings(n.attribute, n.floatValue, n.integerValue, n.vectorValue, n.booleanValue, n.domain, n.fillType)
}

func (n *AttributeFillNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.attribute, &n.floatValue, &n.integerValue, &n.vectorValue, &n.booleanValue, &n.domain, &n.fillType); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// AttributeConvertNode copies an attribute under a new name, converting it
// to the configured domain and type. Auto settings keep the domain and type
// of an existing result attribute, then of the source.
type AttributeConvertNode struct {
	*graph.Base
	geometryResult
	geometry                   *geometry.Data
	attribute, resultAttribute string
	domain                     TargetDomain
	targetType                 TargetType

	geometryPort, attributePort, resultAttributePort *graph.Port
}

func NewAttributeConvertNode(id graph.NodeID) *AttributeConvertNode {
	n := &AttributeConvertNode{Base: graph.NewBase(id, TypeAttributeConvert), geometry: geometry.Empty()}
	n.geometryPort = n.AddPort("Geometry", graph.PortGeometry, graph.Input)
	n.attributePort = n.AddPort("Attribute", graph.PortString, graph.Input)
	n.resultAttributePort = n.AddPort("ResultAttribute", graph.PortString, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *AttributeConvertNode) calculate(log *zap.Logger) {
	res := n.geometry.Clone()
	n.result = res
	if isBlank(n.attribute) || isBlank(n.resultAttribute) {
		return
	}
	src, ok := res.FindAttribute(n.attribute)
	if !ok {
		log.Debug("attribute convert source missing",
			zap.String("node", n.ID().Short()), zap.String("attribute", n.attribute))
		return
	}
	existing, hasExisting := res.FindAttribute(n.resultAttribute)

	domain, ok := n.domain.Domain()
	if !ok {
		domain = src.Domain()
		if hasExisting {
			domain = existing.Domain()
		}
	}
	typ, ok := n.targetType.Type()
	if !ok {
		typ = src.Type()
		if hasExisting {
			typ = existing.Type()
		}
	}

	converted, _ := res.RequestAttribute(n.attribute, typ, domain)
	res.RemoveAttribute(n.resultAttribute)
	if err := res.StoreAttribute(converted.Rename(n.resultAttribute)); err != nil {
		log.Warn("attribute convert failed", zap.String("node", n.ID().Short()), zap.Error(err))
	}
}

func (n *AttributeConvertNode) changed(ec *graph.EvaluationContext) {
	n.calculate(ec.Log)
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *AttributeConvertNode) UpdateAttribute(ec *graph.EvaluationContext, name string) {
	if graph.Update(&n.attribute, name) {
		n.changed(ec)
	}
}

func (n *AttributeConvertNode) UpdateResultAttribute(ec *graph.EvaluationContext, name string) {
	if graph.Update(&n.resultAttribute, name) {
		n.changed(ec)
	}
}

func (n *AttributeConvertNode) UpdateDomain(ec *graph.EvaluationContext, d TargetDomain) {
	if graph.Update(&n.domain, d) {
		n.changed(ec)
	}
}

func (n *AttributeConvertNode) UpdateType(ec *graph.EvaluationContext, t TargetType) {
	if graph.Update(&n.targetType, t) {
		n.changed(ec)
	}
}

func (n *AttributeConvertNode) GetValueForPort(ec *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, func() { n.calculate(ec.Log) })
}

func (n *AttributeConvertNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.geometryPort:
		n.geometry = geometryInput(ec, conn)
		changed = true
	case n.attributePort:
		changed = pull(ec, conn, &n.attribute)
	case n.resultAttributePort:
		changed = pull(ec, conn, &n.resultAttribute)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *AttributeConvertNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port == n.geometryPort {
		n.geometry = geometry.Empty()
		n.changed(ec)
	}
}

func (n *AttributeConvertNode) CustomData() (string, error) {
	return encodeSettings(n.attribute, n.resultAttribute, n.domain, n.targetType)
}

func (n *AttributeConvertNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.attribute, &n.resultAttribute, &n.domain, &n.targetType); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}
