package nodes

import (
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/vmath"
)

// PropertyNode exposes a graph property on a single output port. One
// implementation serves every property type; the registered type name
// selects the kind.
type PropertyNode struct {
	*graph.Base
	kind       graph.PropertyType
	propertyID graph.PropertyID
	property   *graph.Property

	port *graph.Port
}

func NewPropertyNode(id graph.NodeID, typeName string, kind graph.PropertyType) *PropertyNode {
	n := &PropertyNode{Base: graph.NewBase(id, typeName), kind: kind}
	n.port = n.AddPort("Property", kind.PortType(), graph.Output)
	return n
}

func propertyFactory(typeName string, kind graph.PropertyType) graph.Factory {
	return func(id graph.NodeID) graph.Node { return NewPropertyNode(id, typeName, kind) }
}

// Kind returns the property type this node reads.
func (n *PropertyNode) Kind() graph.PropertyType { return n.kind }

// PropertyID implements graph.PropertyConsumer.
func (n *PropertyNode) PropertyID() graph.PropertyID { return n.propertyID }

// BindProperty implements graph.PropertyConsumer. A nil property clears the
// binding.
func (n *PropertyNode) BindProperty(ec *graph.EvaluationContext, p *graph.Property) {
	n.property = p
	if p == nil {
		n.propertyID = ""
	}
	n.NotifyPortValueChanged(ec, n.port)
}

// SetProperty binds the node to the property with the given id.
func (n *PropertyNode) SetProperty(ec *graph.EvaluationContext, id graph.PropertyID) {
	n.propertyID = id
	n.BindProperty(ec, ec.ResolveProperty(id))
}

// GetValueForPort returns the bound value, or the zero value of the kind.
// Geometry is cloned so consumers can never mutate the property.
func (n *PropertyNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	if port != n.port {
		return nil
	}
	p := n.property
	switch n.kind {
	case graph.PropertyInteger:
		return graph.GetValueOrDefault(p, 0)
	case graph.PropertyFloat:
		return graph.GetValueOrDefault(p, 0.0)
	case graph.PropertyVector:
		return graph.GetValueOrDefault(p, vmath.Zero3)
	case graph.PropertyString:
		return graph.GetValueOrDefault(p, "")
	case graph.PropertyGeometryObject:
		if d := graph.GetValueOrDefault[*geometry.Data](p, nil); d != nil {
			return d.Clone()
		}
		return geometry.Empty()
	case graph.PropertyGeometryCollection:
		src := graph.GetValueOrDefault[[]*geometry.Data](p, nil)
		out := make([]*geometry.Data, 0, len(src))
		for _, d := range src {
			if d != nil {
				out = append(out, d.Clone())
			}
		}
		return out
	}
	return nil
}

func (n *PropertyNode) CustomData() (string, error) {
	return encodeSettings(string(n.propertyID))
}

// SetCustomData restores the property id. Properties are loaded before
// custom data, so the binding resolves right away; a missing property is
// reported by OnAfterDeserialize.
func (n *PropertyNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	var id string
	if err := decodeSettings(data, &id); err != nil {
		return err
	}
	n.propertyID = graph.PropertyID(id)
	n.property = ec.Graph.Property(n.propertyID)
	n.NotifyPortValueChanged(ec, n.port)
	return nil
}

func (n *PropertyNode) OnAfterDeserialize(ec *graph.EvaluationContext) {
	if n.propertyID == "" {
		return
	}
	n.property = ec.ResolveProperty(n.propertyID)
	n.NotifyPortValueChanged(ec, n.port)
}
