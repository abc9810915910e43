package graph

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/rng"
)

var (
	ErrUnknownNodeType   = errors.New("unknown node type")
	ErrIncompatiblePorts = errors.New("incompatible ports")
	ErrCycle             = errors.New("connection would create a cycle")
	ErrNodeNotFound      = errors.New("node not found")
	ErrPortNotFound      = errors.New("port not found")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrDirection         = errors.New("connection must run from an output to an input")
	ErrDuplicate         = errors.New("duplicate id")
	ErrPortCount         = errors.New("port count mismatch")
	ErrNoOutput          = errors.New("graph has no output node")
)

// Graph owns every node, port, connection and property of one node graph.
// All cross references are ids resolved through it. A Graph is not safe for
// concurrent use.
type Graph struct {
	ID string

	nodes      []Node
	byID       map[NodeID]Node
	ports      map[PortID]*Port
	conns      []*Connection
	portConns  map[PortID][]*Connection
	properties []*Property

	ec *EvaluationContext
}

// Option configures a new Graph.
type Option func(*Graph)

// WithLogger sets the logger carried by the evaluation context.
func WithLogger(log *zap.Logger) Option {
	return func(g *Graph) {
		if log != nil {
			g.ec.Log = log
		}
	}
}

// WithRand sets the seeded random stack used by stochastic nodes.
func WithRand(r *rng.Rand) Option {
	return func(g *Graph) {
		if r != nil {
			g.ec.Rand = r
		}
	}
}

// WithID sets the graph guid.
func WithID(id string) Option {
	return func(g *Graph) {
		if id != "" {
			g.ID = id
		}
	}
}

// New returns an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		ID:        NewID(),
		byID:      make(map[NodeID]Node),
		ports:     make(map[PortID]*Port),
		portConns: make(map[PortID][]*Connection),
	}
	g.ec = newContext(g, nil, nil)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Context returns the evaluation context shared by all nodes of g.
func (g *Graph) Context() *EvaluationContext { return g.ec }

// AddNode adds n and its ports to the graph.
func (g *Graph) AddNode(n Node) error {
	b := n.NodeBase()
	if _, ok := g.byID[b.ID()]; ok {
		return fmt.Errorf("graph: add node %s: %w", b.ID(), ErrDuplicate)
	}
	for _, p := range b.Ports() {
		if _, ok := g.ports[p.ID]; ok {
			return fmt.Errorf("graph: add node %s: port %s: %w", b.ID(), p.ID, ErrDuplicate)
		}
	}
	g.nodes = append(g.nodes, n)
	g.byID[b.ID()] = n
	for _, p := range b.Ports() {
		g.ports[p.ID] = p
	}
	return nil
}

// RemoveNode disconnects every connection of the node, then removes it.
func (g *Graph) RemoveNode(id NodeID) error {
	n, ok := g.byID[id]
	if !ok {
		return fmt.Errorf("graph: remove node %s: %w", id, ErrNodeNotFound)
	}
	for _, p := range n.NodeBase().Ports() {
		for _, c := range slices.Clone(g.portConns[p.ID]) {
			g.Disconnect(c)
		}
	}
	for _, p := range n.NodeBase().Ports() {
		delete(g.ports, p.ID)
		delete(g.portConns, p.ID)
	}
	delete(g.byID, id)
	g.nodes = slices.DeleteFunc(g.nodes, func(x Node) bool { return x == n })
	return nil
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id NodeID) Node { return g.byID[id] }

// Port returns the port with the given id, or nil.
func (g *Graph) Port(id PortID) *Port { return g.ports[id] }

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []Node { return g.nodes }

// Connections returns every connection in creation order.
func (g *Graph) Connections() []*Connection { return g.conns }

// PortConnections returns the connections attached to a port.
func (g *Graph) PortConnections(id PortID) []*Connection { return g.portConns[id] }

// Connect links an output port to an input port and notifies the input
// node. The ports must belong to this graph, run in opposite directions,
// be type compatible, and must not close a cycle.
func (g *Graph) Connect(out, in *Port) (*Connection, error) {
	if out == nil || in == nil || g.ports[out.ID] != out || g.ports[in.ID] != in {
		return nil, fmt.Errorf("graph: connect: %w", ErrPortNotFound)
	}
	if out.Direction == Input && in.Direction == Output {
		out, in = in, out
	}
	if out.Direction != Output || in.Direction != Input {
		return nil, fmt.Errorf("graph: connect %s -> %s: %w", out.Name, in.Name, ErrDirection)
	}
	if !out.IsCompatibleWith(in) {
		return nil, fmt.Errorf("graph: connect %s (%s) -> %s (%s): %w",
			out.Name, out.Type, in.Name, in.Type, ErrIncompatiblePorts)
	}
	for _, c := range g.portConns[in.ID] {
		if c.Output == out.ID {
			return nil, fmt.Errorf("graph: connect %s -> %s: %w", out.Name, in.Name, ErrDuplicate)
		}
	}
	if g.reaches(in.Node, out.Node) {
		return nil, fmt.Errorf("graph: connect %s -> %s: %w", out.Node.Short(), in.Node.Short(), ErrCycle)
	}

	c := g.link(out, in)
	ec := g.ec
	n := g.byID[in.Node]
	if h, ok := n.(ConnectionCreatedHandler); ok {
		h.OnConnectionCreated(ec, c, in)
	}
	n.OnPortValueChanged(ec, c, in)
	return c, nil
}

// ConnectByName connects the named output of one node to the named input of
// another.
func (g *Graph) ConnectByName(from NodeID, output string, to NodeID, input string) (*Connection, error) {
	src, dst := g.byID[from], g.byID[to]
	if src == nil {
		return nil, fmt.Errorf("graph: connect: node %s: %w", from, ErrNodeNotFound)
	}
	if dst == nil {
		return nil, fmt.Errorf("graph: connect: node %s: %w", to, ErrNodeNotFound)
	}
	out := src.NodeBase().Port(output)
	if out == nil {
		return nil, fmt.Errorf("graph: connect: %s has no port %q: %w", src.NodeBase().TypeName(), output, ErrPortNotFound)
	}
	in := dst.NodeBase().Port(input)
	if in == nil {
		return nil, fmt.Errorf("graph: connect: %s has no port %q: %w", dst.NodeBase().TypeName(), input, ErrPortNotFound)
	}
	return g.Connect(out, in)
}

// link records a connection in both port lists and the graph list without
// notifying anyone.
func (g *Graph) link(out, in *Port) *Connection {
	c := &Connection{Output: out.ID, Input: in.ID, OutputNode: out.Node, InputNode: in.Node}
	g.conns = append(g.conns, c)
	g.portConns[out.ID] = append(g.portConns[out.ID], c)
	g.portConns[in.ID] = append(g.portConns[in.ID], c)
	return c
}

// Disconnect removes c from both endpoints and notifies both nodes.
func (g *Graph) Disconnect(c *Connection) {
	if c == nil || !slices.Contains(g.conns, c) {
		return
	}
	match := func(x *Connection) bool { return x == c }
	g.conns = slices.DeleteFunc(g.conns, match)
	g.portConns[c.Output] = slices.DeleteFunc(g.portConns[c.Output], match)
	g.portConns[c.Input] = slices.DeleteFunc(g.portConns[c.Input], match)

	for _, id := range []PortID{c.Output, c.Input} {
		p := g.ports[id]
		if p == nil {
			continue
		}
		if h, ok := g.byID[p.Node].(ConnectionRemovedHandler); ok {
			h.OnConnectionRemoved(g.ec, c, p)
		}
	}
}

// reaches reports whether to is reachable from from along connections.
func (g *Graph) reaches(from, to NodeID) bool {
	seen := make(map[NodeID]bool)
	stack := []NodeID{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, g.downstream(id)...)
	}
	return false
}

// downstream returns the nodes fed by the outputs of id.
func (g *Graph) downstream(id NodeID) []NodeID {
	n := g.byID[id]
	if n == nil {
		return nil
	}
	var ids []NodeID
	for _, p := range n.NodeBase().Ports() {
		if p.Direction != Output {
			continue
		}
		for _, c := range g.portConns[p.ID] {
			ids = append(ids, c.InputNode)
		}
	}
	return ids
}

// OutputNode returns the first node that produces the graph's outputs.
func (g *Graph) OutputNode() (Node, bool) {
	for _, n := range g.nodes {
		if _, ok := n.(OutputEvaluator); ok {
			return n, true
		}
	}
	return nil, false
}

// Evaluate pulls the output node. During serialization it logs a warning
// and returns empty outputs.
func (g *Graph) Evaluate() (Outputs, error) {
	n, ok := g.OutputNode()
	if !ok {
		return EmptyOutputs(), ErrNoOutput
	}
	if g.ec.IsSerializing() {
		g.ec.Log.Warn("evaluation requested while serializing", zap.String("graph", g.ID))
		return EmptyOutputs(), nil
	}
	g.ec.Log.Debug("evaluating output node", zap.String("node", string(n.NodeBase().ID())))
	return n.(OutputEvaluator).Evaluate(g.ec), nil
}
