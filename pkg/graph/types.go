package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID identifies a node. It is a guid string.
type NodeID string

// PortID identifies a port.
type PortID string

// PropertyID identifies a graph property.
type PropertyID string

// NewID returns a fresh random guid.
func NewID() string {
	return uuid.NewString()
}

// NewNodeID returns a fresh node id.
func NewNodeID() NodeID { return NodeID(NewID()) }

// Short returns the first 8 characters of the id, for logs.
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// PortType is the type of value flowing through a port.
type PortType int

const (
	PortInteger PortType = iota
	PortFloat
	PortVector
	PortBoolean
	PortGeometry
	PortCollection
	PortString
	PortCurve
	PortInstances
	PortAny
)

func (t PortType) String() string {
	switch t {
	case PortInteger:
		return "Integer"
	case PortFloat:
		return "Float"
	case PortVector:
		return "Vector"
	case PortBoolean:
		return "Boolean"
	case PortGeometry:
		return "Geometry"
	case PortCollection:
		return "Collection"
	case PortString:
		return "String"
	case PortCurve:
		return "Curve"
	case PortInstances:
		return "Instances"
	case PortAny:
		return "Any"
	default:
		return fmt.Sprintf("PortType(%d)", int(t))
	}
}

// IsUnmanaged reports whether values of t are plain scalars or vectors.
// It panics on an unknown port type.
func (t PortType) IsUnmanaged() bool {
	switch t {
	case PortInteger, PortFloat, PortVector, PortBoolean:
		return true
	case PortGeometry, PortCollection, PortString, PortCurve, PortInstances, PortAny:
		return false
	}
	panic(fmt.Sprintf("graph: unknown port type %d", int(t)))
}

// Direction is the flow direction of a port.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "Input"
	case Output:
		return "Output"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
