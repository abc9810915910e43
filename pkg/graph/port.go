package graph

// Port is a typed attachment point on a node. Its connections are owned by
// the graph; see Graph.PortConnections.
type Port struct {
	ID        PortID
	Name      string
	Type      PortType
	Direction Direction
	Node      NodeID
}

// Connection links an output port to an input port. The node ids are
// cached from the ports when the connection is made.
type Connection struct {
	Output     PortID
	Input      PortID
	OutputNode NodeID
	InputNode  NodeID
}

// IsCompatibleWith reports whether a connection between p and other is
// allowed by type. Ports on the same node are never compatible. An Any
// input accepts every type; otherwise the types must match exactly.
// Direction is checked by the caller.
func (p *Port) IsCompatibleWith(other *Port) bool {
	if p == nil || other == nil || p.Node == other.Node {
		return false
	}
	if p.Type == PortAny && p.Direction == Input || other.Type == PortAny && other.Direction == Input {
		return true
	}
	return p.Type == other.Type
}

// ConvertValue coerces v from one port type to another. Only Integer, Float
// and Boolean convert between each other; every other pair passes v through
// unchanged.
func ConvertValue(v any, from, to PortType) any {
	switch to {
	case PortFloat:
		switch from {
		case PortInteger:
			if i, ok := v.(int); ok {
				return float64(i)
			}
		case PortBoolean:
			if b, ok := v.(bool); ok {
				if b {
					return 1.0
				}
				return 0.0
			}
		}
	case PortInteger:
		switch from {
		case PortFloat:
			if f, ok := v.(float64); ok {
				return int(f)
			}
		case PortBoolean:
			if b, ok := v.(bool); ok {
				if b {
					return 1
				}
				return 0
			}
		}
	case PortBoolean:
		switch from {
		case PortInteger:
			if i, ok := v.(int); ok {
				return i != 0
			}
		case PortFloat:
			if f, ok := v.(float64); ok {
				return f != 0
			}
		}
	}
	return v
}
