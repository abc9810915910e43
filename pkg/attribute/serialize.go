package attribute

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chazu/geograph/pkg/vmath"
)

// Serialized is the persisted form of an attribute. Data holds
// {"n": name, "d": domain, "v": values}; vectors are encoded as arrays.
type Serialized struct {
	Type      string          `json:"type" msgpack:"type"`
	ValueType string          `json:"valueType" msgpack:"valueType"`
	Data      json.RawMessage `json:"data" msgpack:"data"`
}

type payload[V any] struct {
	N string `json:"n"`
	D Domain `json:"d"`
	V []V    `json:"v"`
}

var valueTypeNames = map[Type]string{
	Bool:         "bool",
	Int:          "int",
	Float:        "float",
	ClampedFloat: "float",
	Vec2:         "float2",
	Vec3:         "float3",
}

// Serialize encodes a into its persisted form.
func Serialize(a Attribute) (Serialized, error) {
	s := Serialized{Type: a.Type().String() + "Attribute", ValueType: valueTypeNames[a.Type()]}
	var (
		data []byte
		err  error
	)
	switch typed := a.(type) {
	case *Of[bool]:
		data, err = json.Marshal(payload[bool]{typed.name, typed.domain, nonNil(typed.values)})
	case *Of[int]:
		data, err = json.Marshal(payload[int]{typed.name, typed.domain, nonNil(typed.values)})
	case *Of[float64]:
		data, err = json.Marshal(payload[float64]{typed.name, typed.domain, nonNil(typed.values)})
	case *Of[vmath.Vec2]:
		vs := make([][2]float64, len(typed.values))
		for i, v := range typed.values {
			vs[i] = [2]float64{v.X, v.Y}
		}
		data, err = json.Marshal(payload[[2]float64]{typed.name, typed.domain, vs})
	case *Of[vmath.Vec3]:
		vs := make([][3]float64, len(typed.values))
		for i, v := range typed.values {
			vs[i] = [3]float64{v.X, v.Y, v.Z}
		}
		data, err = json.Marshal(payload[[3]float64]{typed.name, typed.domain, vs})
	default:
		return Serialized{}, fmt.Errorf("attribute: cannot serialize %T", a)
	}
	if err != nil {
		return Serialized{}, fmt.Errorf("attribute: serialize %q: %w", a.Name(), err)
	}
	s.Data = data
	return s, nil
}

// Deserialize decodes a persisted attribute. The type name selects the
// attribute type; an unknown type name is an error.
func Deserialize(s Serialized) (Attribute, error) {
	typ, err := ParseType(strings.TrimSuffix(s.Type, "Attribute"))
	if err != nil {
		return nil, fmt.Errorf("attribute: deserialize: %w", err)
	}
	switch typ {
	case Bool:
		return decode[bool](s.Data, typ)
	case Int:
		return decode[int](s.Data, typ)
	case Float, ClampedFloat:
		return decode[float64](s.Data, typ)
	case Vec2:
		var p payload[[2]float64]
		if err := json.Unmarshal(s.Data, &p); err != nil {
			return nil, fmt.Errorf("attribute: deserialize %s: %w", s.Type, err)
		}
		vs := make([]vmath.Vec2, len(p.V))
		for i, v := range p.V {
			vs[i] = vmath.Vec2{X: v[0], Y: v[1]}
		}
		return NewVec2(p.N, p.D, vs), nil
	default:
		var p payload[[3]float64]
		if err := json.Unmarshal(s.Data, &p); err != nil {
			return nil, fmt.Errorf("attribute: deserialize %s: %w", s.Type, err)
		}
		vs := make([]vmath.Vec3, len(p.V))
		for i, v := range p.V {
			vs[i] = vmath.Vec3{X: v[0], Y: v[1], Z: v[2]}
		}
		return NewVec3(p.N, p.D, vs), nil
	}
}

func decode[T bool | int | float64](data []byte, typ Type) (Attribute, error) {
	var p payload[T]
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("attribute: deserialize %s: %w", typ, err)
	}
	return New(p.N, p.D, typ, p.V), nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
