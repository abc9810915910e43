package attribute

import (
	"fmt"

	"github.com/chazu/geograph/pkg/vmath"
)

// ---------------------------------------------------------------------------
// Element conversion matrix
// ---------------------------------------------------------------------------

// ToBool converts a single element. Vectors are true only when every
// component is nonzero.
func ToBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case float64:
		return x != 0
	case vmath.Vec2:
		return x.X != 0 && x.Y != 0
	case vmath.Vec3:
		return x.X != 0 && x.Y != 0 && x.Z != 0
	}
	return false
}

// ToInt converts a single element of semantic type from. Floats truncate,
// clamped floats map to 1 only when approximately 1, vectors take x.
func ToInt(v any, from Type) int {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int:
		return x
	case float64:
		if from == ClampedFloat {
			if vmath.Approximately(x, 1) {
				return 1
			}
			return 0
		}
		return int(x)
	case vmath.Vec2:
		return int(x.X)
	case vmath.Vec3:
		return int(x.X)
	}
	return 0
}

// ToFloat converts a single element. Vectors take the x component.
func ToFloat(v any) float64 {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int:
		return float64(x)
	case float64:
		return x
	case vmath.Vec2:
		return x.X
	case vmath.Vec3:
		return x.X
	}
	return 0
}

// ToClampedFloat converts a single element and clamps it to [0, 1].
func ToClampedFloat(v any) float64 {
	return vmath.Clamp01(ToFloat(v))
}

// ToVec2 converts a single element. Scalars broadcast, Vec3 drops z.
func ToVec2(v any) vmath.Vec2 {
	switch x := v.(type) {
	case vmath.Vec2:
		return x
	case vmath.Vec3:
		return vmath.Vec2{X: x.X, Y: x.Y}
	}
	f := ToFloat(v)
	return vmath.Vec2{X: f, Y: f}
}

// ToVec3 converts a single element. Scalars broadcast, Vec2 gets z = 0.
func ToVec3(v any) vmath.Vec3 {
	switch x := v.(type) {
	case vmath.Vec3:
		return x
	case vmath.Vec2:
		return vmath.Vec3{X: x.X, Y: x.Y}
	}
	f := ToFloat(v)
	return vmath.Vec3{X: f, Y: f, Z: f}
}

// ConvertElement converts v of semantic type from into the Go representation
// of type to.
func ConvertElement(v any, from, to Type) any {
	switch to {
	case Bool:
		return ToBool(v)
	case Int:
		return ToInt(v, from)
	case Float:
		return ToFloat(v)
	case ClampedFloat:
		return ToClampedFloat(v)
	case Vec2:
		return ToVec2(v)
	case Vec3:
		return ToVec3(v)
	}
	panic(fmt.Sprintf("attribute: unknown type %d", int(to)))
}

// Zero returns the default element of typ.
func Zero(typ Type) any {
	switch typ {
	case Bool:
		return false
	case Int:
		return 0
	case Float, ClampedFloat:
		return 0.0
	case Vec2:
		return vmath.Vec2{}
	case Vec3:
		return vmath.Vec3{}
	}
	panic(fmt.Sprintf("attribute: unknown type %d", int(typ)))
}

// ---------------------------------------------------------------------------
// Attribute conversion
// ---------------------------------------------------------------------------

// Into converts src into a new attribute of type to, keeping name and
// domain. The conversion depends only on the (source, destination) type pair.
func Into(src Attribute, to Type) Attribute {
	if src == nil {
		return NewZero("", Vertex, to, 0)
	}
	from := src.Type()
	n := src.Len()
	switch to {
	case Bool:
		out := make([]bool, n)
		for i := range out {
			out[i] = ToBool(src.At(i))
		}
		return NewBool(src.Name(), src.Domain(), out)
	case Int:
		out := make([]int, n)
		for i := range out {
			out[i] = ToInt(src.At(i), from)
		}
		return NewInt(src.Name(), src.Domain(), out)
	case Float:
		out := make([]float64, n)
		for i := range out {
			out[i] = ToFloat(src.At(i))
		}
		return NewFloat(src.Name(), src.Domain(), out)
	case ClampedFloat:
		out := make([]float64, n)
		for i := range out {
			out[i] = ToClampedFloat(src.At(i))
		}
		return NewClampedFloat(src.Name(), src.Domain(), out)
	case Vec2:
		out := make([]vmath.Vec2, n)
		for i := range out {
			out[i] = ToVec2(src.At(i))
		}
		return NewVec2(src.Name(), src.Domain(), out)
	case Vec3:
		out := make([]vmath.Vec3, n)
		for i := range out {
			out[i] = ToVec3(src.At(i))
		}
		return NewVec3(src.Name(), src.Domain(), out)
	}
	panic(fmt.Sprintf("attribute: unknown type %d", int(to)))
}

// FromValues builds an attribute of type to from a raw value sequence.
func FromValues[T Element](name string, domain Domain, to Type, values []T) Attribute {
	natural := New(name, domain, TypeOf[T](), values)
	if natural.typ == to {
		return natural
	}
	return Into(natural, to)
}

// FromAny builds an attribute of type to from boxed element values.
func FromAny(name string, domain Domain, to Type, from Type, values []any) Attribute {
	a := NewZero(name, domain, to, 0)
	switch typed := a.(type) {
	case *Of[bool]:
		out := make([]bool, len(values))
		for i, v := range values {
			out[i] = ToBool(v)
		}
		typed.Fill(out)
	case *Of[int]:
		out := make([]int, len(values))
		for i, v := range values {
			out[i] = ToInt(v, from)
		}
		typed.Fill(out)
	case *Of[float64]:
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = ToFloat(v)
		}
		typed.Fill(out)
	case *Of[vmath.Vec2]:
		out := make([]vmath.Vec2, len(values))
		for i, v := range values {
			out[i] = ToVec2(v)
		}
		typed.Fill(out)
	case *Of[vmath.Vec3]:
		out := make([]vmath.Vec3, len(values))
		for i, v := range values {
			out[i] = ToVec3(v)
		}
		typed.Fill(out)
	}
	return a
}

// ---------------------------------------------------------------------------
// Aggregation
// ---------------------------------------------------------------------------

// Aggregate builds an attribute in domain to whose i-th value is the mean of
// src's values at groups[i]. Integer means truncate, boolean means are a
// majority vote, and an empty group yields the zero value.
func Aggregate(src Attribute, to Domain, groups [][]int) Attribute {
	switch a := src.(type) {
	case *Of[bool]:
		out := make([]bool, len(groups))
		for i, g := range groups {
			trues := 0
			for _, idx := range g {
				if a.Get(idx) {
					trues++
				}
			}
			out[i] = len(g) > 0 && trues*2 >= len(g)
		}
		return New(a.name, to, a.typ, out)
	case *Of[int]:
		out := make([]int, len(groups))
		for i, g := range groups {
			if len(g) == 0 {
				continue
			}
			sum := 0
			for _, idx := range g {
				sum += a.Get(idx)
			}
			out[i] = sum / len(g)
		}
		return New(a.name, to, a.typ, out)
	case *Of[float64]:
		out := make([]float64, len(groups))
		for i, g := range groups {
			if len(g) == 0 {
				continue
			}
			sum := 0.0
			for _, idx := range g {
				sum += a.Get(idx)
			}
			out[i] = sum / float64(len(g))
		}
		return New(a.name, to, a.typ, out)
	case *Of[vmath.Vec2]:
		out := make([]vmath.Vec2, len(groups))
		for i, g := range groups {
			if len(g) == 0 {
				continue
			}
			var sum vmath.Vec2
			for _, idx := range g {
				sum = sum.Add(a.Get(idx))
			}
			out[i] = sum.MulScalar(1 / float64(len(g)))
		}
		return New(a.name, to, a.typ, out)
	case *Of[vmath.Vec3]:
		out := make([]vmath.Vec3, len(groups))
		for i, g := range groups {
			if len(g) == 0 {
				continue
			}
			var sum vmath.Vec3
			for _, idx := range g {
				sum = sum.Add(a.Get(idx))
			}
			out[i] = sum.MulScalar(1 / float64(len(g)))
		}
		return New(a.name, to, a.typ, out)
	}
	panic(fmt.Sprintf("attribute: cannot aggregate %T", src))
}
