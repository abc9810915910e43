package nodes

import (
	"iter"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/vmath"
)

// GetPositionNode exposes the vertex positions of its geometry to per
// element consumers. Elements past the vertex count read as the origin, and
// the single value is the origin.
type GetPositionNode struct {
	*graph.Base
	geometry  *geometry.Data
	positions []vmath.Vec3
	dirty     bool

	geometryPort, positionPort *graph.Port
}

func NewGetPositionNode(id graph.NodeID) *GetPositionNode {
	n := &GetPositionNode{Base: graph.NewBase(id, TypeGetPosition), geometry: geometry.Empty(), dirty: true}
	n.geometryPort = n.AddPort("Geometry", graph.PortGeometry, graph.Input)
	n.positionPort = n.AddPort("Position", graph.PortVector, graph.Output)
	return n
}

func (n *GetPositionNode) changed(ec *graph.EvaluationContext) {
	n.dirty = true
	n.NotifyPortValueChanged(ec, n.positionPort)
}

func (n *GetPositionNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	if port != n.positionPort {
		return nil
	}
	return vmath.Zero3
}

func (n *GetPositionNode) GetValuesForPort(_ *graph.EvaluationContext, port *graph.Port, count int) iter.Seq[any] {
	return func(yield func(any) bool) {
		if port != n.positionPort || count <= 0 {
			return
		}
		if n.dirty {
			n.positions = nil
			if n.geometry.SubmeshCount() > 0 {
				n.positions = n.geometry.Positions()
			}
			n.dirty = false
		}
		for i := range count {
			p := vmath.Zero3
			if i < len(n.positions) {
				p = n.positions[i]
			}
			if !yield(p) {
				return
			}
		}
	}
}

func (n *GetPositionNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	if port != n.geometryPort {
		return
	}
	n.geometry = geometryInput(ec, conn)
	n.changed(ec)
}

func (n *GetPositionNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port != n.geometryPort {
		return
	}
	n.geometry = geometry.Empty()
	n.changed(ec)
}
