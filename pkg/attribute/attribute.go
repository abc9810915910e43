// Package attribute implements typed, per-domain value columns attached to
// geometry. An attribute has a name, a domain (the topological element class
// its values are indexed by), a semantic type and an ordered sequence of
// values. Attributes convert between types with a fixed conversion matrix;
// conversion between domains needs topology and lives in package geometry.
package attribute

import (
	"fmt"

	"github.com/chazu/geograph/pkg/vmath"
)

// ---------------------------------------------------------------------------
// Domain
// ---------------------------------------------------------------------------

// Domain is the topological element class an attribute is indexed by.
type Domain int

const (
	Vertex Domain = iota
	Edge
	Face
	FaceCorner
)

// Domains lists every domain in declaration order.
var Domains = []Domain{Vertex, Edge, Face, FaceCorner}

func (d Domain) String() string {
	switch d {
	case Vertex:
		return "Vertex"
	case Edge:
		return "Edge"
	case Face:
		return "Face"
	case FaceCorner:
		return "FaceCorner"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// ParseDomain parses the String form of a domain.
func ParseDomain(s string) (Domain, error) {
	for _, d := range Domains {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("attribute: unknown domain %q", s)
}

// ---------------------------------------------------------------------------
// Type
// ---------------------------------------------------------------------------

// Type is the semantic value type of an attribute.
type Type int

const (
	Bool Type = iota
	Int
	Float
	ClampedFloat
	Vec2
	Vec3
)

// Types lists every attribute type in declaration order.
var Types = []Type{Bool, Int, Float, ClampedFloat, Vec2, Vec3}

func (t Type) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case ClampedFloat:
		return "ClampedFloat"
	case Vec2:
		return "Vec2"
	case Vec3:
		return "Vec3"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType parses the String form of a type.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("attribute: unknown type %q", s)
}

// Element is the set of Go types that back attribute values. Float and
// ClampedFloat share float64.
type Element interface {
	bool | int | float64 | vmath.Vec2 | vmath.Vec3
}

// ---------------------------------------------------------------------------
// Attribute
// ---------------------------------------------------------------------------

// Attribute is a named, typed column of values in one domain.
type Attribute interface {
	Name() string
	Domain() Domain
	Type() Type
	Len() int
	// At returns the i-th value boxed in its Go element type.
	At(i int) any
	Clone() Attribute
	// Rename returns a copy with a different name.
	Rename(name string) Attribute
	// WithDomain returns a copy tagged with a different domain. The values
	// are not converted; see geometry.ConvertDomain for that.
	WithDomain(d Domain) Attribute

	appendFrom(src Attribute)
	prependDefaults(n int)
}

// Of is an attribute backed by values of Go type T.
type Of[T Element] struct {
	name   string
	domain Domain
	typ    Type
	values []T
}

var (
	_ Attribute = (*Of[bool])(nil)
	_ Attribute = (*Of[int])(nil)
	_ Attribute = (*Of[float64])(nil)
	_ Attribute = (*Of[vmath.Vec2])(nil)
	_ Attribute = (*Of[vmath.Vec3])(nil)
)

// New creates an attribute of type typ. The values slice is copied. typ must
// be backed by T; ClampedFloat values are clamped to [0, 1].
func New[T Element](name string, domain Domain, typ Type, values []T) *Of[T] {
	if natural := TypeOf[T](); natural != typ && !(natural == Float && typ == ClampedFloat) {
		panic(fmt.Sprintf("attribute: type %s cannot hold %T values", typ, *new(T)))
	}
	a := &Of[T]{name: name, domain: domain, typ: typ}
	a.Fill(values)
	return a
}

func NewBool(name string, domain Domain, values []bool) *Of[bool] {
	return New(name, domain, Bool, values)
}

func NewInt(name string, domain Domain, values []int) *Of[int] {
	return New(name, domain, Int, values)
}

func NewFloat(name string, domain Domain, values []float64) *Of[float64] {
	return New(name, domain, Float, values)
}

// NewClampedFloat clamps every value to [0, 1] on fill.
func NewClampedFloat(name string, domain Domain, values []float64) *Of[float64] {
	return New(name, domain, ClampedFloat, values)
}

func NewVec2(name string, domain Domain, values []vmath.Vec2) *Of[vmath.Vec2] {
	return New(name, domain, Vec2, values)
}

func NewVec3(name string, domain Domain, values []vmath.Vec3) *Of[vmath.Vec3] {
	return New(name, domain, Vec3, values)
}

// NewZero creates an attribute of n default values.
func NewZero(name string, domain Domain, typ Type, n int) Attribute {
	switch typ {
	case Bool:
		return NewBool(name, domain, make([]bool, n))
	case Int:
		return NewInt(name, domain, make([]int, n))
	case Float:
		return NewFloat(name, domain, make([]float64, n))
	case ClampedFloat:
		return NewClampedFloat(name, domain, make([]float64, n))
	case Vec2:
		return NewVec2(name, domain, make([]vmath.Vec2, n))
	case Vec3:
		return NewVec3(name, domain, make([]vmath.Vec3, n))
	}
	panic(fmt.Sprintf("attribute: unknown type %d", int(typ)))
}

// TypeOf returns the attribute type naturally backed by T.
func TypeOf[T Element]() Type {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int:
		return Int
	case float64:
		return Float
	case vmath.Vec2:
		return Vec2
	default:
		return Vec3
	}
}

func (a *Of[T]) Name() string   { return a.name }
func (a *Of[T]) Domain() Domain { return a.domain }
func (a *Of[T]) Type() Type     { return a.typ }
func (a *Of[T]) Len() int       { return len(a.values) }
func (a *Of[T]) At(i int) any   { return a.values[i] }

// Get returns the i-th value, or the zero value when i is out of range.
func (a *Of[T]) Get(i int) T {
	if i < 0 || i >= len(a.values) {
		var zero T
		return zero
	}
	return a.values[i]
}

// Values returns the backing slice. Callers must not retain it across
// mutations of the attribute.
func (a *Of[T]) Values() []T { return a.values }

// Set stores v at index i, clamping for ClampedFloat.
func (a *Of[T]) Set(i int, v T) {
	a.values[i] = a.clamp(v)
}

// Fill replaces the values with a copy of values.
func (a *Of[T]) Fill(values []T) {
	a.values = make([]T, len(values))
	for i, v := range values {
		a.values[i] = a.clamp(v)
	}
}

func (a *Of[T]) clamp(v T) T {
	if a.typ != ClampedFloat {
		return v
	}
	if f, ok := any(v).(float64); ok {
		return any(vmath.Clamp01(f)).(T)
	}
	return v
}

func (a *Of[T]) Clone() Attribute {
	return a.clone()
}

func (a *Of[T]) clone() *Of[T] {
	c := &Of[T]{name: a.name, domain: a.domain, typ: a.typ}
	c.values = append([]T(nil), a.values...)
	return c
}

func (a *Of[T]) Rename(name string) Attribute {
	c := a.clone()
	c.name = name
	return c
}

func (a *Of[T]) WithDomain(d Domain) Attribute {
	c := a.clone()
	c.domain = d
	return c
}

// Yield maps every value through fn.
func (a *Of[T]) Yield(fn func(T) T) []T {
	out := make([]T, len(a.values))
	for i, v := range a.values {
		out[i] = fn(v)
	}
	return out
}

// YieldWith zips a with other element-wise. other is converted to a's type
// first. The result has the length of the longer side; the shorter side
// contributes zero values for its missing tail.
func (a *Of[T]) YieldWith(other Attribute, fn func(self, other T) T) []T {
	var rhs []T
	if other != nil {
		rhs = Into(other, a.typ).(*Of[T]).values
	}
	n := max(len(a.values), len(rhs))
	out := make([]T, n)
	for i := 0; i < n; i++ {
		var x, y T
		if i < len(a.values) {
			x = a.values[i]
		}
		if i < len(rhs) {
			y = rhs[i]
		}
		out[i] = fn(x, y)
	}
	return out
}

func (a *Of[T]) appendFrom(src Attribute) {
	conv := Into(src, a.typ).(*Of[T])
	a.values = append(a.values, conv.values...)
}

func (a *Of[T]) prependDefaults(n int) {
	if n <= 0 {
		return
	}
	a.values = append(make([]T, n), a.values...)
}

func (a *Of[T]) String() string {
	return fmt.Sprintf("%s[%s %s, %d]", a.name, a.domain, a.typ, len(a.values))
}

// Append appends src's values to dst, converting them to dst's type.
func Append(dst, src Attribute) {
	dst.appendFrom(src)
}

// PrependDefaults inserts n zero values before dst's existing values.
func PrependDefaults(dst Attribute, n int) {
	dst.prependDefaults(n)
}

// As returns a as *Of[T], converting it to the natural type of T when its
// type differs. The result is never nil for a non-nil a.
func As[T Element](a Attribute) *Of[T] {
	if typed, ok := a.(*Of[T]); ok {
		return typed
	}
	return Into(a, TypeOf[T]()).(*Of[T])
}
