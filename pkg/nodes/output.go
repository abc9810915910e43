package nodes

import (
	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/graph"
)

// OutputNode collects the finished geometry, curve and instances of a graph.
type OutputNode struct {
	*graph.Base

	geometryPort, curvePort, instancesPort *graph.Port
}

func NewOutputNode(id graph.NodeID) *OutputNode {
	n := &OutputNode{Base: graph.NewBase(id, TypeOutput)}
	n.geometryPort = n.AddPort("Geometry", graph.PortGeometry, graph.Input)
	n.curvePort = n.AddPort("Curve", graph.PortCurve, graph.Input)
	n.instancesPort = n.AddPort("Instances", graph.PortInstances, graph.Input)
	return n
}

func (n *OutputNode) first(ec *graph.EvaluationContext, p *graph.Port) *graph.Connection {
	if conns := ec.Graph.PortConnections(p.ID); len(conns) > 0 {
		return conns[0]
	}
	return nil
}

// Evaluate pulls the value of every connected input. Unconnected inputs
// yield the empty value of their kind.
func (n *OutputNode) Evaluate(ec *graph.EvaluationContext) graph.Outputs {
	out := graph.Outputs{
		Geometry:  geometryInput(ec, n.first(ec, n.geometryPort)),
		Curve:     curveInput(ec, n.first(ec, n.curvePort)),
		Instances: instancesInput(ec, n.first(ec, n.instancesPort)),
	}
	ec.Log.Debug("output evaluated",
		zap.Int("faces", out.Geometry.FaceCount()),
		zap.Int("curvePoints", out.Curve.Points),
		zap.Int("instances", out.Instances.TotalTransforms()))
	return out
}

func (n *OutputNode) OnPortValueChanged(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	ec.Log.Debug("output input changed", zap.String("port", port.Name))
}
