package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/nodes"
)

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name, input, expect string
	}{
		{"keyword", `(node "Cube" :size v)`, `(node "Cube" "__kw_size" v)`},
		{"several keywords", `(property "r" :type :float)`, `(property "r" "__kw_type" "__kw_float")`},
		{"keyword in string", `"thing with :keyword inside"`, `"thing with :keyword inside"`},
		{"escaped quote in string", `"a \" :b"`, `"a \" :b"`},
		{"backtick string", "`raw :kw a-b`", "`raw :kw a-b`"},
		{"assignment", `(def x := 10)`, `(def x := 10)`},
		{"kebab identifier", `(set-input box :top-radius 2)`, `(set_input box "__kw_top-radius" 2)`},
		{"minus operator", `(- 10 5)`, `(- 10 5)`},
		{"negative number", `(vec3 -1 0 1)`, `(vec3 -1 0 1)`},
		{"double comment", `;; comment with :keyword`, `// comment with :keyword`},
		{"single comment", "; simple comment\n(x)", "// simple comment\n(x)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, preprocessSource(tt.input))
		})
	}
}

func TestPascal(t *testing.T) {
	assert.Equal(t, "TopRadius", pascal("top-radius"))
	assert.Equal(t, "ControlA", pascal("control-a"))
	assert.Equal(t, "X", pascal("x"))
	assert.Equal(t, "CubePrimitive", pascal("cube_primitive"))
}

func evaluate(t *testing.T, src string) *graph.Graph {
	t.Helper()
	g, evalErrs, err := New().Evaluate(src)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.NotNil(t, g)
	return g
}

func evalErrors(t *testing.T, src string) []EvalError {
	t.Helper()
	g, evalErrs, err := New().Evaluate(src)
	require.NoError(t, err)
	assert.Nil(t, g)
	require.NotEmpty(t, evalErrs)
	return evalErrs
}

func TestBuildAndEvaluateGraph(t *testing.T) {
	g := evaluate(t, `
; a stretched cube moved up
(def box (node "CubePrimitive" :name "box" :size (vec3 2 1 1)))
(def xf (node :transform-geometry :translation (vec3 0 3 0)))
(connect box "Result" xf "Input")
(output xf "Result")
`)
	require.Len(t, g.Nodes(), 3)
	assert.Len(t, g.Connections(), 2)

	out, err := g.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 8, out.Geometry.VertexCount())
	box := out.Geometry.BoundingBox()
	assert.InDelta(t, 1, box.Max.X, 1e-9)
	assert.InDelta(t, 3.5, box.Max.Y, 1e-9)
}

func TestNodesByName(t *testing.T) {
	g := evaluate(t, `
(node "IcospherePrimitiveNode" :name "ball" :subdivisions 0)
(node "TransformGeometry" :name "moved")
(connect "ball" "Result" "moved" "Input")
(set-input (ref "moved") :scale (vec3 2 2 2))
(output "moved" "Result")
`)
	out, err := g.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 12, out.Geometry.VertexCount())
	assert.Greater(t, out.Geometry.BoundingBox().Max.X, 1.5)
}

func TestPropertyBinding(t *testing.T) {
	g := evaluate(t, `
(def r (property "Radius" :type :float :default 0.5))
(def circle (node "CirclePrimitive" :points 6))
(connect (node "FloatProperty" :property r) "Property" circle "Radius")
(output circle "Result")
`)
	p := g.FindProperty("Radius")
	require.NotNil(t, p)
	assert.Equal(t, graph.PropertyFloat, p.Type)
	assert.Equal(t, 0.5, p.Default.Float)

	out, err := g.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 7, out.Geometry.VertexCount())
	assert.InDelta(t, 0.5, out.Geometry.BoundingBox().Max.X, 1e-9)

	require.NoError(t, g.SetPropertyValue(p.ID, 3.0))
	out, err = g.Evaluate()
	require.NoError(t, err)
	assert.InDelta(t, 3, out.Geometry.BoundingBox().Max.X, 1e-9)
}

func TestPropertyValueAndReferenceName(t *testing.T) {
	g := evaluate(t, `
(property "Count" :type :integer :default 2 :value 5)
(property "Shape" :type :geometry-object)
(node "IntegerProperty" :property "Count")
`)
	p := g.FindProperty("Count")
	require.NotNil(t, p)
	assert.Equal(t, 5, p.Value)
	assert.Equal(t, 2, p.Default.Int)

	shape := g.FindProperty("Shape")
	require.NotNil(t, shape)
	assert.Equal(t, graph.PropertyGeometryObject, shape.Type)

	n := g.Nodes()[0].(*nodes.PropertyNode)
	assert.Equal(t, p.ID, n.PropertyID())
	assert.Equal(t, 5, n.GetValueForPort(g.Context(), n.NodeBase().Port("Property")))
}

func TestEnumInputsTakeDisplayNames(t *testing.T) {
	g := evaluate(t, `(node "MathFloat" :operation :square-root :x 16)`)
	n := g.Nodes()[0]
	assert.Equal(t, 4.0, n.GetValueForPort(g.Context(), n.NodeBase().Port("Result")))

	g = evaluate(t, `(node "MathFloat" :operation 2 :x 3 :y 4)`)
	n = g.Nodes()[0]
	assert.Equal(t, 12.0, n.GetValueForPort(g.Context(), n.NodeBase().Port("Result")))
}

func TestVariableReference(t *testing.T) {
	g := evaluate(t, `
(def h 4)
(def cyl (node "CylinderPrimitive" :height h :top-radius 0.5))
(output cyl "Result")
`)
	out, err := g.Evaluate()
	require.NoError(t, err)
	box := out.Geometry.BoundingBox()
	assert.InDelta(t, 4, box.Max.Y-box.Min.Y, 1e-9)
}

func TestOutputIsSharedAndTyped(t *testing.T) {
	g := evaluate(t, `
(def pts (node "CurveToPoints"))
(connect (node "LinePrimitiveCurve" :points 3) "Curve" pts "Curve")
(def c (node "CirclePrimitiveCurve"))
(output pts "Points")
(output c "Curve")
`)
	var outputs int
	for _, n := range g.Nodes() {
		if n.NodeBase().TypeName() == nodes.TypeOutput {
			outputs++
		}
	}
	assert.Equal(t, 1, outputs)

	out, err := g.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 3, out.Geometry.VertexCount())
	assert.Equal(t, 32, out.Curve.Points)
	assert.True(t, out.Instances.IsEmpty())
}

func TestDeterministicNodeIDs(t *testing.T) {
	src := `(connect (node "CubePrimitive") "Result" (node "TransformGeometry") "Input")`
	a, b := evaluate(t, src), evaluate(t, src)
	require.Len(t, a.Nodes(), 2)
	for i := range a.Nodes() {
		assert.Equal(t, a.Nodes()[i].NodeBase().ID(), b.Nodes()[i].NodeBase().ID())
	}
	assert.NotEqual(t, a.Nodes()[0].NodeBase().ID(), a.Nodes()[1].NodeBase().ID())
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"unknown node type", `(node "Teapot")`, "unknown node type"},
		{"unknown input", `(node "CubePrimitive" :colour 3)`, "no input"},
		{"wrong value type", `(node "CubePrimitive" :size 3)`, "expected vec3"},
		{"unknown enum name", `(node "MathFloat" :operation :teleport)`, "unknown MathOperation"},
		{"duplicate name", `(node "CubePrimitive" :name "a") (node "CubePrimitive" :name "a")`, "already exists"},
		{"unknown ref", `(ref "nothing")`, "no node named"},
		{"unknown port", `(connect (node "CubePrimitive") "Nope" (node "TransformGeometry") "Input")`, "port not found"},
		{"incompatible ports", `(connect (node "FloatValue") "Value" (node "CubePrimitive") "Size")`, "incompatible ports"},
		{"output from float", `(output (node "FloatValue") "Value")`, "incompatible ports"},
		{"unknown property", `(node "FloatProperty" :property "missing")`, "property not found"},
		{"property on plain node", `(node "CubePrimitive" :property "x")`, "does not bind properties"},
		{"bad property type", `(property "p" :type :teapot)`, "unknown property type"},
		{"geometry default", `(property "p" :type :geometry-object :default 1)`, "take no inline value"},
		{"vec3 arity", `(vec3 1 2)`, "want 3 arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := evalErrors(t, tt.src)
			assert.Contains(t, errs[0].Message, tt.want)
		})
	}
}

func TestArithmeticFeedsBuiltins(t *testing.T) {
	g := evaluate(t, `
(def n (* 2 4))
(output (node "ConePrimitive" :points n :radius (/ 3.0 2)) "Result")
`)
	out, err := g.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 10, out.Geometry.VertexCount())
	assert.InDelta(t, 1.5, out.Geometry.BoundingBox().Max.X, 1e-9)
	assert.IsType(t, &geometry.Data{}, out.Geometry)
}
