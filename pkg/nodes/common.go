package nodes

import (
	"github.com/chazu/geograph/pkg/curve"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/instance"
	"github.com/chazu/geograph/pkg/vmath"
)

// pull reads the value arriving on conn into *field, falling back to the
// current value, applies the clamps and reports whether the field changed.
func pull[T comparable](ec *graph.EvaluationContext, conn *graph.Connection, field *T, clamps ...func(T) T) bool {
	v := graph.GetValue(ec, conn, *field)
	for _, c := range clamps {
		v = c(v)
	}
	return graph.Update(field, v)
}

func atLeast(lo float64) func(float64) float64 {
	return func(v float64) float64 { return vmath.MinClamped(v, lo) }
}

func between(lo, hi int) func(int) int {
	return func(v int) int { return vmath.ClampInt(v, lo, hi) }
}

func geometryInput(ec *graph.EvaluationContext, conn *graph.Connection) *geometry.Data {
	if d := graph.GetValue[*geometry.Data](ec, conn, nil); d != nil {
		return d
	}
	return geometry.Empty()
}

func curveInput(ec *graph.EvaluationContext, conn *graph.Connection) *curve.Data {
	if c := graph.GetValue[*curve.Data](ec, conn, nil); c != nil {
		return c
	}
	return curve.Empty()
}

func instancesInput(ec *graph.EvaluationContext, conn *graph.Connection) *instance.Data {
	if d := graph.GetValue[*instance.Data](ec, conn, nil); d != nil {
		return d
	}
	return instance.Empty()
}

// collect drains n values of a per-element input into a slice.
func collect[T any](ec *graph.EvaluationContext, port *graph.Port, n int, def T) []T {
	out := make([]T, 0, n)
	for v := range graph.GetPortValuesN(ec, port, n, def) {
		out = append(out, v)
	}
	return out
}
