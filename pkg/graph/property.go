package graph

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/vmath"
)

// PropertyType is the value type of a graph property.
type PropertyType int

const (
	PropertyGeometryObject PropertyType = iota
	PropertyGeometryCollection
	PropertyInteger
	PropertyFloat
	PropertyVector
	PropertyString
)

var propertyTypeNames = map[PropertyType]string{
	PropertyGeometryObject:     "GeometryObject",
	PropertyGeometryCollection: "GeometryCollection",
	PropertyInteger:            "Integer",
	PropertyFloat:              "Float",
	PropertyVector:             "Vector",
	PropertyString:             "String",
}

func (t PropertyType) String() string {
	if s, ok := propertyTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("PropertyType(%d)", int(t))
}

// ParsePropertyType is the inverse of PropertyType.String. Matching ignores
// case.
func ParsePropertyType(s string) (PropertyType, error) {
	for t, name := range propertyTypeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("graph: unknown property type %q", s)
}

// PortType returns the port type a property node of this type exposes.
func (t PropertyType) PortType() PortType {
	switch t {
	case PropertyGeometryObject:
		return PortGeometry
	case PropertyGeometryCollection:
		return PortCollection
	case PropertyInteger:
		return PortInteger
	case PropertyFloat:
		return PortFloat
	case PropertyVector:
		return PortVector
	case PropertyString:
		return PortString
	}
	panic(fmt.Sprintf("graph: unknown property type %d", int(t)))
}

// HasDefault reports whether the type carries an inline default value.
// Geometry backed properties only hold an external reference.
func (t PropertyType) HasDefault() bool {
	return t != PropertyGeometryObject && t != PropertyGeometryCollection
}

// DefaultPropertyValue holds the default of a value-typed property. Only
// the field selected by Type is meaningful.
type DefaultPropertyValue struct {
	Type   PropertyType `json:"type" msgpack:"type"`
	Int    int          `json:"int,omitempty" msgpack:"int,omitempty"`
	Float  float64      `json:"float,omitempty" msgpack:"float,omitempty"`
	Vector vmath.Vec3   `json:"vector" msgpack:"vector"`
	String string       `json:"string,omitempty" msgpack:"string,omitempty"`
}

// Value returns the selected field, or nil for geometry backed types.
func (d DefaultPropertyValue) Value() any {
	switch d.Type {
	case PropertyInteger:
		return d.Int
	case PropertyFloat:
		return d.Float
	case PropertyVector:
		return d.Vector
	case PropertyString:
		return d.String
	}
	return nil
}

// NewDefault builds a DefaultPropertyValue of type t from v. Numeric values
// are converted between int and float64.
func NewDefault(t PropertyType, v any) (DefaultPropertyValue, error) {
	d := DefaultPropertyValue{Type: t}
	if v == nil || !t.HasDefault() {
		return d, nil
	}
	cv, err := coerceProperty(t, v)
	if err != nil {
		return d, err
	}
	switch x := cv.(type) {
	case int:
		d.Int = x
	case float64:
		d.Float = x
	case vmath.Vec3:
		d.Vector = x
	case string:
		d.String = x
	}
	return d, nil
}

// Property is a named, typed input of the whole graph. Value holds the
// bound value: a scalar, vector or string for value types, a
// *geometry.Data or []*geometry.Data for geometry backed types.
type Property struct {
	ID            PropertyID
	ReferenceName string
	DisplayName   string
	Type          PropertyType
	Value         any
	Default       DefaultPropertyValue
}

// NewProperty returns a property with a fresh id and a reference name
// derived from the display name.
func NewProperty(displayName string, t PropertyType) *Property {
	return &Property{
		ID:            PropertyID(NewID()),
		ReferenceName: SanitizeReferenceName(displayName),
		DisplayName:   displayName,
		Type:          t,
		Default:       DefaultPropertyValue{Type: t},
	}
}

// GetValueOrDefault returns the bound value of p, then its default, then
// def, whichever is first expressible as a T.
func GetValueOrDefault[T any](p *Property, def T) T {
	if p == nil {
		return def
	}
	if v, ok := p.Value.(T); ok {
		return v
	}
	if v, ok := p.Default.Value().(T); ok {
		return v
	}
	return def
}

// SanitizeReferenceName turns a display name into an identifier: letters,
// digits and underscores, never starting with a digit.
func SanitizeReferenceName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" {
		return "_"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

func coerceProperty(t PropertyType, v any) (any, error) {
	switch t {
	case PropertyInteger:
		switch x := v.(type) {
		case int:
			return x, nil
		case int64:
			return int(x), nil
		case float64:
			return int(x), nil
		}
	case PropertyFloat:
		switch x := v.(type) {
		case float64:
			return x, nil
		case int:
			return float64(x), nil
		case int64:
			return float64(x), nil
		}
	case PropertyVector:
		if x, ok := v.(vmath.Vec3); ok {
			return x, nil
		}
	case PropertyString:
		if x, ok := v.(string); ok {
			return x, nil
		}
	case PropertyGeometryObject:
		if x, ok := v.(*geometry.Data); ok {
			return x, nil
		}
	case PropertyGeometryCollection:
		if x, ok := v.([]*geometry.Data); ok {
			return x, nil
		}
	}
	return nil, fmt.Errorf("graph: %T is not a valid %s property value", v, t)
}

// AddProperty adds p. The reference name is sanitized and made unique
// within the graph.
func (g *Graph) AddProperty(p *Property) error {
	if p == nil {
		return fmt.Errorf("graph: add property: nil property")
	}
	if p.ID == "" {
		p.ID = PropertyID(NewID())
	}
	if g.Property(p.ID) != nil {
		return fmt.Errorf("graph: add property %s: %w", p.ID, ErrDuplicate)
	}
	ref := SanitizeReferenceName(p.ReferenceName)
	if p.ReferenceName == "" {
		ref = SanitizeReferenceName(p.DisplayName)
	}
	p.ReferenceName = g.uniqueReferenceName(ref)
	p.Default.Type = p.Type
	g.properties = append(g.properties, p)
	return nil
}

func (g *Graph) uniqueReferenceName(ref string) string {
	taken := func(s string) bool {
		return slices.ContainsFunc(g.properties, func(p *Property) bool { return p.ReferenceName == s })
	}
	if !taken(ref) {
		return ref
	}
	for i := 1; ; i++ {
		if s := fmt.Sprintf("%s_%d", ref, i); !taken(s) {
			return s
		}
	}
}

// RemoveProperty removes the property and unbinds every node using it.
func (g *Graph) RemoveProperty(id PropertyID) error {
	i := slices.IndexFunc(g.properties, func(p *Property) bool { return p.ID == id })
	if i < 0 {
		return fmt.Errorf("graph: remove property %s: %w", id, ErrPropertyNotFound)
	}
	g.properties = slices.Delete(g.properties, i, i+1)
	for _, c := range g.consumers(id) {
		c.BindProperty(g.ec, nil)
	}
	return nil
}

// SetPropertyValue binds a new value to the property and notifies every
// node using it.
func (g *Graph) SetPropertyValue(id PropertyID, v any) error {
	p := g.Property(id)
	if p == nil {
		return fmt.Errorf("graph: set property %s: %w", id, ErrPropertyNotFound)
	}
	if v != nil {
		cv, err := coerceProperty(p.Type, v)
		if err != nil {
			return err
		}
		v = cv
	}
	p.Value = v
	g.ec.Log.Debug("property value set",
		zap.String("property", p.ReferenceName), zap.Any("value", v))
	for _, c := range g.consumers(id) {
		c.BindProperty(g.ec, p)
	}
	return nil
}

func (g *Graph) consumers(id PropertyID) []PropertyConsumer {
	var out []PropertyConsumer
	for _, n := range g.nodes {
		if c, ok := n.(PropertyConsumer); ok && c.PropertyID() == id {
			out = append(out, c)
		}
	}
	return out
}

// Property returns the property with the given id, or nil.
func (g *Graph) Property(id PropertyID) *Property {
	for _, p := range g.properties {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindProperty looks a property up by reference name.
func (g *Graph) FindProperty(ref string) *Property {
	for _, p := range g.properties {
		if p.ReferenceName == ref {
			return p
		}
	}
	return nil
}

// Properties returns the properties in insertion order.
func (g *Graph) Properties() []*Property { return g.properties }

// ResolveProperty looks up a property for a consuming node. A missing
// reference is logged and yields nil, which consumers read as the type's
// zero value.
func (ec *EvaluationContext) ResolveProperty(id PropertyID) *Property {
	if id == "" || ec == nil || ec.Graph == nil {
		return nil
	}
	p := ec.Graph.Property(id)
	if p == nil {
		ec.Log.Warn("missing property reference", zap.String("property", string(id)))
	}
	return p
}

// PropertyHashCode combines the id and reference name of every property. It
// does not depend on property order and changes whenever a property is
// added, removed or renamed.
func (g *Graph) PropertyHashCode() uint64 {
	var h uint64
	for _, p := range g.properties {
		h += xxhash.Sum64String(string(p.ID) + "\x00" + p.ReferenceName)
	}
	return h
}
