package graph

import (
	"fmt"
	"iter"

	"github.com/chazu/geograph/pkg/curve"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/instance"
)

// Node is implemented by every node kind. Concrete nodes embed *Base, which
// supplies identity, ports and no-op defaults, and override what they need.
type Node interface {
	NodeBase() *Base

	// GetValueForPort returns the current value of an output port,
	// computing and caching it on first read.
	GetValueForPort(ec *EvaluationContext, port *Port) any

	// OnPortValueChanged is called when the value arriving at an input
	// port may have changed.
	OnPortValueChanged(ec *EvaluationContext, conn *Connection, port *Port)

	// CustomData returns the node's scalar parameters as a positional
	// JSON array. SetCustomData restores them.
	CustomData() (string, error)
	SetCustomData(ec *EvaluationContext, data string) error
}

// ValuesProvider is implemented by nodes with per-element outputs.
// GetValuesForPort yields exactly count values.
type ValuesProvider interface {
	GetValuesForPort(ec *EvaluationContext, port *Port, count int) iter.Seq[any]
}

// ConnectionCreatedHandler is notified on the input side of a new
// connection, before OnPortValueChanged.
type ConnectionCreatedHandler interface {
	OnConnectionCreated(ec *EvaluationContext, conn *Connection, port *Port)
}

// ConnectionRemovedHandler is notified on both sides of a removed
// connection. Implementations reset the affected cached value to its
// empty or default value.
type ConnectionRemovedHandler interface {
	OnConnectionRemoved(ec *EvaluationContext, conn *Connection, port *Port)
}

// PostDeserializer runs after a full (non-preview) load.
type PostDeserializer interface {
	OnAfterDeserialize(ec *EvaluationContext)
}

// PropertyConsumer is implemented by nodes bound to a graph property.
// BindProperty receives nil when the property is removed.
type PropertyConsumer interface {
	PropertyID() PropertyID
	BindProperty(ec *EvaluationContext, p *Property)
}

// Outputs is the finished product of a graph.
type Outputs struct {
	Geometry  *geometry.Data
	Curve     *curve.Data
	Instances *instance.Data
}

// EmptyOutputs returns Outputs holding the empty value of every kind.
func EmptyOutputs() Outputs {
	return Outputs{Geometry: geometry.Empty(), Curve: curve.Empty(), Instances: instance.Empty()}
}

// OutputEvaluator is implemented by the graph's output node.
type OutputEvaluator interface {
	Evaluate(ec *EvaluationContext) Outputs
}

// Base carries the state shared by every node.
type Base struct {
	id       NodeID
	typeName string
	ports    []*Port
}

// NewBase returns a Base for a node of the given registered type.
func NewBase(id NodeID, typeName string) *Base {
	if id == "" {
		id = NewNodeID()
	}
	return &Base{id: id, typeName: typeName}
}

func (b *Base) NodeBase() *Base  { return b }
func (b *Base) ID() NodeID       { return b.id }
func (b *Base) TypeName() string { return b.typeName }

// Ports returns the node's ports in creation order.
func (b *Base) Ports() []*Port { return b.ports }

// AddPort creates a port with a fresh id. Ports must be created in the
// node constructor; their order is part of the persisted schema.
func (b *Base) AddPort(name string, t PortType, dir Direction) *Port {
	p := &Port{ID: PortID(NewID()), Name: name, Type: t, Direction: dir, Node: b.id}
	b.ports = append(b.ports, p)
	return p
}

// Port returns the port with the given name, or nil.
func (b *Base) Port(name string) *Port {
	for _, p := range b.ports {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// rebindPorts assigns persisted ids to the ports in creation order.
func (b *Base) rebindPorts(ids []string) error {
	if len(ids) != len(b.ports) {
		return fmt.Errorf("%w: node %s (%s) has %d ports, document lists %d",
			ErrPortCount, b.id.Short(), b.typeName, len(b.ports), len(ids))
	}
	for i, p := range b.ports {
		p.ID = PortID(ids[i])
	}
	return nil
}

// NotifyPortValueChanged pushes a change on port to every connected input.
// Propagation is synchronous and depth first.
func (b *Base) NotifyPortValueChanged(ec *EvaluationContext, port *Port) {
	if ec == nil || ec.Graph == nil || port == nil {
		return
	}
	g := ec.Graph
	conns := append([]*Connection(nil), g.PortConnections(port.ID)...)
	for _, c := range conns {
		in := g.Port(c.Input)
		if in == nil || in == port {
			continue
		}
		if n := g.Node(in.Node); n != nil {
			n.OnPortValueChanged(ec, c, in)
		}
	}
}

// NotifyAll pushes a change on every output port.
func (b *Base) NotifyAll(ec *EvaluationContext) {
	for _, p := range b.ports {
		if p.Direction == Output {
			b.NotifyPortValueChanged(ec, p)
		}
	}
}

func (b *Base) GetValueForPort(*EvaluationContext, *Port) any             { return nil }
func (b *Base) OnPortValueChanged(*EvaluationContext, *Connection, *Port) {}
func (b *Base) CustomData() (string, error)                               { return "", nil }
func (b *Base) SetCustomData(*EvaluationContext, string) error            { return nil }
