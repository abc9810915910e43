package nodes

import (
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/vmath"
)

// FloatValueNode publishes a constant float.
type FloatValueNode struct {
	*graph.Base
	value float64

	valuePort *graph.Port
}

func NewFloatValueNode(id graph.NodeID) *FloatValueNode {
	n := &FloatValueNode{Base: graph.NewBase(id, TypeFloatValue)}
	n.valuePort = n.AddPort("Value", graph.PortFloat, graph.Output)
	return n
}

func (n *FloatValueNode) Value() float64 { return n.value }

func (n *FloatValueNode) UpdateValue(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.value, v) {
		n.NotifyPortValueChanged(ec, n.valuePort)
	}
}

func (n *FloatValueNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	if port != n.valuePort {
		return nil
	}
	return n.value
}

func (n *FloatValueNode) CustomData() (string, error) { return encodeSettings(n.value) }

func (n *FloatValueNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.value); err != nil {
		return err
	}
	n.NotifyPortValueChanged(ec, n.valuePort)
	return nil
}

// IntegerValueNode publishes a constant integer.
type IntegerValueNode struct {
	*graph.Base
	value int

	valuePort *graph.Port
}

func NewIntegerValueNode(id graph.NodeID) *IntegerValueNode {
	n := &IntegerValueNode{Base: graph.NewBase(id, TypeIntegerValue)}
	n.valuePort = n.AddPort("Value", graph.PortInteger, graph.Output)
	return n
}

func (n *IntegerValueNode) Value() int { return n.value }

func (n *IntegerValueNode) UpdateValue(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.value, v) {
		n.NotifyPortValueChanged(ec, n.valuePort)
	}
}

func (n *IntegerValueNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	if port != n.valuePort {
		return nil
	}
	return n.value
}

func (n *IntegerValueNode) CustomData() (string, error) { return encodeSettings(n.value) }

func (n *IntegerValueNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.value); err != nil {
		return err
	}
	n.NotifyPortValueChanged(ec, n.valuePort)
	return nil
}

// VectorValueNode composes a vector from three floats.
type VectorValueNode struct {
	*graph.Base
	x, y, z float64

	xPort, yPort, zPort, vectorPort *graph.Port
}

func NewVectorValueNode(id graph.NodeID) *VectorValueNode {
	n := &VectorValueNode{Base: graph.NewBase(id, TypeVectorValue)}
	n.xPort = n.AddPort("X", graph.PortFloat, graph.Input)
	n.yPort = n.AddPort("Y", graph.PortFloat, graph.Input)
	n.zPort = n.AddPort("Z", graph.PortFloat, graph.Input)
	n.vectorPort = n.AddPort("Vector", graph.PortVector, graph.Output)
	return n
}

func (n *VectorValueNode) Vector() vmath.Vec3 { return vmath.Vec3{X: n.x, Y: n.y, Z: n.z} }

func (n *VectorValueNode) UpdateX(ec *graph.EvaluationContext, v float64) { n.set(ec, &n.x, v) }
func (n *VectorValueNode) UpdateY(ec *graph.EvaluationContext, v float64) { n.set(ec, &n.y, v) }
func (n *VectorValueNode) UpdateZ(ec *graph.EvaluationContext, v float64) { n.set(ec, &n.z, v) }

func (n *VectorValueNode) set(ec *graph.EvaluationContext, field *float64, v float64) {
	if graph.Update(field, v) {
		n.NotifyPortValueChanged(ec, n.vectorPort)
	}
}

func (n *VectorValueNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	if port != n.vectorPort {
		return nil
	}
	return n.Vector()
}

func (n *VectorValueNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.xPort:
		changed = pull(ec, conn, &n.x)
	case n.yPort:
		changed = pull(ec, conn, &n.y)
	case n.zPort:
		changed = pull(ec, conn, &n.z)
	}
	if changed {
		n.NotifyPortValueChanged(ec, n.vectorPort)
	}
}

func (n *VectorValueNode) CustomData() (string, error) { return encodeSettings(n.x, n.y, n.z) }

func (n *VectorValueNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.x, &n.y, &n.z); err != nil {
		return err
	}
	n.NotifyPortValueChanged(ec, n.vectorPort)
	return nil
}
