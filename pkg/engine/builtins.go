package engine

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/google/uuid"

	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/nodes"
	"github.com/chazu/geograph/pkg/vmath"
)

// Values passed between builtins.

// sexpNode refers to a node added to the graph under construction.
type sexpNode struct {
	id   graph.NodeID
	name string
	typ  string
}

func (n *sexpNode) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(node %s %q)", n.typ, n.name)
	}
	return fmt.Sprintf("(node %s %s)", n.typ, n.id.Short())
}
func (n *sexpNode) Type() *zygo.RegisteredType { return nil }

// sexpProperty refers to a graph property.
type sexpProperty struct {
	id  graph.PropertyID
	ref string
}

func (p *sexpProperty) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(property %q)", p.ref)
}
func (p *sexpProperty) Type() *zygo.RegisteredType { return nil }

type sexpVec3 struct {
	vec vmath.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// Keyword arguments.

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

type kwArg struct {
	name  string
	value zygo.Sexp
}

// kwArgs holds a mixed argument list. Keyword pairs keep their source
// order, since setting node inputs is order dependent.
type kwArgs struct {
	kw         []kwArg
	positional []zygo.Sexp
}

func (a kwArgs) get(name string) (zygo.Sexp, bool) {
	for _, kv := range a.kw {
		if kv.name == name {
			return kv.value, true
		}
	}
	return nil, false
}

func parseArgs(args []zygo.Sexp) kwArgs {
	var res kwArgs
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			res.positional = append(res.positional, args[i])
			continue
		}
		var v zygo.Sexp = zygo.SexpNull
		if i+1 < len(args) {
			v = args[i+1]
			i++
		}
		res.kw = append(res.kw, kwArg{name: name, value: v})
	}
	return res
}

// Value extraction.

func describe(s zygo.Sexp) string {
	if s == nil {
		return "nil"
	}
	return fmt.Sprintf("%T (%s)", s, s.SexpString(nil))
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", describe(s))
}

func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == float64(int(v.Val)) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %s", describe(s))
}

func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpInt:
		return v.Val != 0, nil
	}
	return false, fmt.Errorf("expected boolean, got %s", describe(s))
}

// toKeywordString accepts a keyword or a plain string.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %s", describe(s))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

func toVec3(s zygo.Sexp) (vmath.Vec3, error) {
	switch v := s.(type) {
	case *sexpVec3:
		return v.vec, nil
	case *zygo.SexpArray:
		if len(v.Val) == 3 {
			var xyz [3]float64
			for i, e := range v.Val {
				f, err := toFloat64(e)
				if err != nil {
					return vmath.Vec3{}, fmt.Errorf("vec3 component %d: %w", i, err)
				}
				xyz[i] = f
			}
			return vmath.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
		}
	}
	return vmath.Vec3{}, fmt.Errorf("expected vec3, got %s", describe(s))
}

// Graph construction.

var nodeSpace = uuid.MustParse("8f6c2b0e-5d1a-4c5e-9b7f-3a2d1e0c9b8a")

// builder accumulates the graph produced by one evaluation.
type builder struct {
	g      *graph.Graph
	reg    *graph.Registry
	names  map[string]graph.NodeID
	seq    int
	output graph.NodeID
}

func newBuilder(g *graph.Graph, reg *graph.Registry) *builder {
	return &builder{g: g, reg: reg, names: make(map[string]graph.NodeID)}
}

// nextID derives node ids from the build order so the same program always
// yields the same ids.
func (b *builder) nextID(typ string) graph.NodeID {
	b.seq++
	return graph.NodeID(uuid.NewSHA1(nodeSpace, fmt.Appendf(nil, "%s/%d", typ, b.seq)).String())
}

// resolveType accepts "CubePrimitiveNode", "CubePrimitive" or
// :cube-primitive.
func (b *builder) resolveType(name string) (string, error) {
	for _, cand := range []string{name, name + "Node", pascal(name) + "Node"} {
		if b.reg.Has(cand) {
			return cand, nil
		}
	}
	return "", fmt.Errorf("%w: %q", graph.ErrUnknownNodeType, name)
}

func (b *builder) addNode(typeName, name string) (*sexpNode, error) {
	if name != "" {
		if _, dup := b.names[name]; dup {
			return nil, fmt.Errorf("a node named %q already exists", name)
		}
	}
	n, err := b.reg.New(typeName, b.nextID(typeName))
	if err != nil {
		return nil, err
	}
	if err := b.g.AddNode(n); err != nil {
		return nil, err
	}
	id := n.NodeBase().ID()
	if name != "" {
		b.names[name] = id
	}
	return &sexpNode{id: id, name: name, typ: typeName}, nil
}

// toNode accepts a node reference or the name given to a node.
func (b *builder) toNode(s zygo.Sexp) (graph.Node, error) {
	switch v := s.(type) {
	case *sexpNode:
		if n := b.g.Node(v.id); n != nil {
			return n, nil
		}
	case *zygo.SexpStr:
		if id, ok := b.names[v.S]; ok {
			return b.g.Node(id), nil
		}
		return nil, fmt.Errorf("no node named %q", v.S)
	}
	return nil, fmt.Errorf("expected node reference, got %s", describe(s))
}

func (b *builder) toProperty(s zygo.Sexp) (*graph.Property, error) {
	switch v := s.(type) {
	case *sexpProperty:
		if p := b.g.Property(v.id); p != nil {
			return p, nil
		}
	case *zygo.SexpStr:
		if p := b.g.FindProperty(v.S); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("%w: %q", graph.ErrPropertyNotFound, v.S)
	}
	return nil, fmt.Errorf("expected property reference, got %s", describe(s))
}

type propertyBinder interface {
	SetProperty(ec *graph.EvaluationContext, id graph.PropertyID)
}

var (
	ecType   = reflect.TypeFor[*graph.EvaluationContext]()
	vec3Type = reflect.TypeFor[vmath.Vec3]()
)

// setParam assigns a node input by calling its Update<Param> setter, so the
// node clamps the value, recomputes and notifies downstream nodes exactly
// as if an editor had changed it.
func (b *builder) setParam(n graph.Node, param string, s zygo.Sexp) error {
	ec := b.g.Context()
	if param == "property" {
		pb, ok := n.(propertyBinder)
		if !ok {
			return fmt.Errorf("%s does not bind properties", n.NodeBase().TypeName())
		}
		p, err := b.toProperty(s)
		if err != nil {
			return err
		}
		pb.SetProperty(ec, p.ID)
		return nil
	}

	m := reflect.ValueOf(n).MethodByName("Update" + pascal(param))
	if !m.IsValid() || m.Type().NumIn() != 2 || m.Type().In(0) != ecType {
		return fmt.Errorf("%s has no input %q", n.NodeBase().TypeName(), param)
	}
	arg, err := convertArg(m.Type().In(1), s)
	if err != nil {
		return fmt.Errorf("%s: %w", param, err)
	}
	m.Call([]reflect.Value{reflect.ValueOf(ec), arg})
	return nil
}

// convertArg converts s to a setter argument of type t. Enum arguments
// accept their display name as a keyword.
func convertArg(t reflect.Type, s zygo.Sexp) (reflect.Value, error) {
	if t == vec3Type {
		v, err := toVec3(s)
		return reflect.ValueOf(v), err
	}
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int:
		if kw, err := toKeywordString(s); err == nil && t.PkgPath() != "" {
			v, ok := graph.ParseDisplayName(t.Name(), kw)
			if !ok {
				return out, fmt.Errorf("unknown %s %q", t.Name(), kw)
			}
			out.SetInt(int64(v))
			return out, nil
		}
		v, err := toInt(s)
		out.SetInt(int64(v))
		return out, err
	case reflect.Float64:
		v, err := toFloat64(s)
		out.SetFloat(v)
		return out, err
	case reflect.Bool:
		v, err := toBool(s)
		out.SetBool(v)
		return out, err
	case reflect.String:
		v, err := toKeywordString(s)
		out.SetString(v)
		return out, err
	}
	return out, fmt.Errorf("unsupported input type %s", t)
}

// propertyValue converts a DSL value for a property of type t.
func propertyValue(t graph.PropertyType, s zygo.Sexp) (any, error) {
	switch t {
	case graph.PropertyInteger:
		return toInt(s)
	case graph.PropertyFloat:
		return toFloat64(s)
	case graph.PropertyVector:
		return toVec3(s)
	case graph.PropertyString:
		return toKeywordString(s)
	}
	return nil, fmt.Errorf("%s properties take no inline value", t)
}

// ensureOutput returns the graph's output node, adding one on first use.
func (b *builder) ensureOutput() (graph.Node, error) {
	if n := b.g.Node(b.output); n != nil {
		return n, nil
	}
	ref, err := b.addNode(nodes.TypeOutput, "")
	if err != nil {
		return nil, err
	}
	b.output = ref.id
	return b.g.Node(ref.id), nil
}

var errArity = errors.New("wrong number of arguments")

// registerBuiltins installs the DSL builtins into env. They add to the
// graph held by b as the program runs. Source must already be
// preprocessed.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// (node "CubePrimitive" :name "box" :size (vec3 1 2 1))
	env.AddFunction("node", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("node: a type name is required: %w", errArity)
		}
		pa := parseArgs(args[1:])
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("node: unexpected argument %s", describe(pa.positional[0]))
		}
		typ, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: type: %w", err)
		}
		typ, err = b.resolveType(typ)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: %w", err)
		}
		var nodeName string
		if v, ok := pa.get("name"); ok {
			if nodeName, err = toKeywordString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("node: name: %w", err)
			}
		}
		ref, err := b.addNode(typ, nodeName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: %w", err)
		}
		n := b.g.Node(ref.id)
		for _, kv := range pa.kw {
			if kv.name == "name" {
				continue
			}
			if err := b.setParam(n, kv.name, kv.value); err != nil {
				return zygo.SexpNull, fmt.Errorf("node %s: %w", typ, err)
			}
		}
		return ref, nil
	})

	// (ref "box")
	env.AddFunction("ref", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("ref: %w", errArity)
		}
		n, err := b.toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ref: %w", err)
		}
		nodeName, _ := toKeywordString(args[0])
		return &sexpNode{id: n.NodeBase().ID(), name: nodeName, typ: n.NodeBase().TypeName()}, nil
	})

	// (set-input box :size (vec3 2 2 2) :points 12)
	env.AddFunction("set_input", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("set-input: a node is required: %w", errArity)
		}
		pa := parseArgs(args[1:])
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("set-input: unexpected argument %s", describe(pa.positional[0]))
		}
		n, err := b.toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-input: %w", err)
		}
		for _, kv := range pa.kw {
			if err := b.setParam(n, kv.name, kv.value); err != nil {
				return zygo.SexpNull, fmt.Errorf("set-input: %w", err)
			}
		}
		return args[0], nil
	})

	// (connect cube "Result" xform "Input")
	env.AddFunction("connect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("connect: want node port node port: %w", errArity)
		}
		from, err := b.toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("connect: from: %w", err)
		}
		out, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("connect: output port: %w", err)
		}
		to, err := b.toNode(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("connect: to: %w", err)
		}
		in, err := toKeywordString(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("connect: input port: %w", err)
		}
		if _, err := b.g.ConnectByName(from.NodeBase().ID(), out, to.NodeBase().ID(), in); err != nil {
			return zygo.SexpNull, fmt.Errorf("connect: %w", err)
		}
		return args[2], nil
	})

	// (property "Radius" :type :float :default 1.5 :value 2)
	env.AddFunction("property", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("property: a display name is required: %w", errArity)
		}
		pa := parseArgs(args[1:])
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("property: unexpected argument %s", describe(pa.positional[0]))
		}
		display, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("property: name: %w", err)
		}
		typ := graph.PropertyFloat
		if v, ok := pa.get("type"); ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("property: type: %w", err)
			}
			if typ, err = graph.ParsePropertyType(strings.ReplaceAll(s, "-", "")); err != nil {
				return zygo.SexpNull, fmt.Errorf("property: %w", err)
			}
		}
		p := graph.NewProperty(display, typ)
		if v, ok := pa.get("default"); ok {
			dv, err := propertyValue(typ, v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("property: default: %w", err)
			}
			if p.Default, err = graph.NewDefault(typ, dv); err != nil {
				return zygo.SexpNull, fmt.Errorf("property: default: %w", err)
			}
		}
		if err := b.g.AddProperty(p); err != nil {
			return zygo.SexpNull, fmt.Errorf("property: %w", err)
		}
		if v, ok := pa.get("value"); ok {
			pv, err := propertyValue(typ, v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("property: value: %w", err)
			}
			if err := b.g.SetPropertyValue(p.ID, pv); err != nil {
				return zygo.SexpNull, fmt.Errorf("property: value: %w", err)
			}
		}
		return &sexpProperty{id: p.ID, ref: p.ReferenceName}, nil
	})

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: want 3 arguments, got %d: %w", len(args), errArity)
		}
		var xyz [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			xyz[i] = f
		}
		return &sexpVec3{vec: vmath.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
	})

	// (output box "Result")
	env.AddFunction("output", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("output: want node port: %w", errArity)
		}
		n, err := b.toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("output: %w", err)
		}
		portName, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("output: port: %w", err)
		}
		src := n.NodeBase().Port(portName)
		if src == nil || src.Direction != graph.Output {
			return zygo.SexpNull, fmt.Errorf("output: %s has no output %q: %w", n.NodeBase().TypeName(), portName, graph.ErrPortNotFound)
		}
		out, err := b.ensureOutput()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("output: %w", err)
		}
		for _, in := range out.NodeBase().Ports() {
			if in.Direction == graph.Input && in.Type == src.Type {
				if _, err := b.g.Connect(src, in); err != nil {
					return zygo.SexpNull, fmt.Errorf("output: %w", err)
				}
				return args[0], nil
			}
		}
		return zygo.SexpNull, fmt.Errorf("output: %s ports cannot be graph outputs: %w", src.Type, graph.ErrIncompatiblePorts)
	})
}
