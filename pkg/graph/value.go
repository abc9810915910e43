package graph

import (
	"iter"

	"github.com/chazu/geograph/pkg/vmath"
)

// GetValue reads the value on the output side of conn as a T. The value is
// used directly when it already is a T, otherwise it is coerced with
// ConvertValue. def is returned when conn is nil or the value cannot be
// expressed as a T.
func GetValue[T any](ec *EvaluationContext, conn *Connection, def T) T {
	if ec == nil || ec.Graph == nil || conn == nil {
		return def
	}
	out := ec.Graph.Port(conn.Output)
	if out == nil {
		return def
	}
	n := ec.Graph.Node(out.Node)
	if n == nil {
		return def
	}
	return coerce(n.GetValueForPort(ec, out), out.Type, ec.Graph.Port(conn.Input), def)
}

func coerce[T any](v any, from PortType, in *Port, def T) T {
	if t, ok := v.(T); ok {
		return t
	}
	if in != nil {
		if t, ok := ConvertValue(v, from, in.Type).(T); ok {
			return t
		}
	}
	if to, ok := portTypeOf(def); ok {
		if t, ok := ConvertValue(v, from, to).(T); ok {
			return t
		}
	}
	return def
}

func portTypeOf(v any) (PortType, bool) {
	switch v.(type) {
	case int:
		return PortInteger, true
	case float64:
		return PortFloat, true
	case bool:
		return PortBoolean, true
	case vmath.Vec3:
		return PortVector, true
	case string:
		return PortString, true
	}
	return PortAny, false
}

// GetPortValue reads the first connection of port, or returns def.
func GetPortValue[T any](ec *EvaluationContext, port *Port, def T) T {
	if ec == nil || ec.Graph == nil || port == nil {
		return def
	}
	conns := ec.Graph.PortConnections(port.ID)
	if len(conns) == 0 {
		return def
	}
	return GetValue(ec, conns[0], def)
}

// GetPortValues reads every connection of port in connection order. An
// unconnected port yields a single def.
func GetPortValues[T any](ec *EvaluationContext, port *Port, def T) []T {
	if ec == nil || ec.Graph == nil || port == nil {
		return []T{def}
	}
	conns := ec.Graph.PortConnections(port.ID)
	if len(conns) == 0 {
		return []T{def}
	}
	vals := make([]T, 0, len(conns))
	for _, c := range conns {
		vals = append(vals, GetValue(ec, c, def))
	}
	return vals
}

// GetValues yields count values from the output side of conn. Nodes that
// implement ValuesProvider produce one value per element; every other node
// repeats its single value. An unconnected port repeats def.
func GetValues[T any](ec *EvaluationContext, conn *Connection, count int, def T) iter.Seq[T] {
	return func(yield func(T) bool) {
		if ec == nil || ec.Graph == nil || conn == nil {
			repeat(yield, def, count)
			return
		}
		out := ec.Graph.Port(conn.Output)
		var n Node
		if out != nil {
			n = ec.Graph.Node(out.Node)
		}
		if n == nil {
			repeat(yield, def, count)
			return
		}
		in := ec.Graph.Port(conn.Input)
		vp, ok := n.(ValuesProvider)
		if !ok {
			repeat(yield, coerce(n.GetValueForPort(ec, out), out.Type, in, def), count)
			return
		}
		i := 0
		for v := range vp.GetValuesForPort(ec, out, count) {
			if i >= count {
				return
			}
			if !yield(coerce(v, out.Type, in, def)) {
				return
			}
			i++
		}
		// Short providers are padded so the caller always sees count values.
		repeat(yield, def, count-i)
	}
}

// GetPortValuesN is GetValues over the first connection of port.
func GetPortValuesN[T any](ec *EvaluationContext, port *Port, count int, def T) iter.Seq[T] {
	var conn *Connection
	if ec != nil && ec.Graph != nil && port != nil {
		if conns := ec.Graph.PortConnections(port.ID); len(conns) > 0 {
			conn = conns[0]
		}
	}
	return GetValues(ec, conn, count, def)
}

// Repeat yields v count times. Nodes use it as their GetValuesForPort when
// an output has a single value.
func Repeat(v any, count int) iter.Seq[any] {
	return func(yield func(any) bool) {
		repeat(yield, v, count)
	}
}

func repeat[T any](yield func(T) bool, v T, count int) {
	for range max(count, 0) {
		if !yield(v) {
			return
		}
	}
}

// Equal compares two values the way change guards do: floats and vectors
// within vmath.FloatTolerance, everything else with ==.
func Equal[T comparable](a, b T) bool {
	switch x := any(a).(type) {
	case float64:
		return vmath.Approximately(x, any(b).(float64))
	case vmath.Vec3:
		return vmath.Approximately3(x, any(b).(vmath.Vec3))
	case vmath.Vec2:
		return vmath.Approximately2(x, any(b).(vmath.Vec2))
	}
	return a == b
}

// Update stores v in *field and reports true when it differs from the
// current value. Setters call it before recomputing so that an unchanged
// value never triggers downstream work.
func Update[T comparable](field *T, v T) bool {
	if Equal(*field, v) {
		return false
	}
	*field = v
	return true
}
