package nodes

import (
	"iter"
	"math"

	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/vmath"
)

// Apply evaluates op. tolerance is used by Compare and the smooth
// operations, extra by Wrap (upper bound) and Lerp (factor).
func (op MathOperation) Apply(x, y, tolerance, extra float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSubtract:
		return x - y
	case OpMultiply:
		return x * y
	case OpDivide:
		return x / y
	case OpPower:
		return math.Pow(x, y)
	case OpLogarithm:
		return math.Log(x) / math.Log(y)
	case OpSquareRoot:
		return math.Sqrt(x)
	case OpInverseSquareRoot:
		return 1 / math.Sqrt(x)
	case OpAbsolute:
		return math.Abs(x)
	case OpExponent:
		return math.Exp(x)

	case OpMinimum:
		return math.Min(x, y)
	case OpMaximum:
		return math.Max(x, y)
	case OpLessThan:
		return boolFloat(x < y)
	case OpGreaterThan:
		return boolFloat(x > y)
	case OpSign:
		switch {
		case x < 0:
			return -1
		case x == 0:
			return 0
		}
		return 1
	case OpCompare:
		return boolFloat(math.Abs(x-y) < tolerance)
	case OpSmoothMinimum:
		return smoothMin(x, y, tolerance)
	case OpSmoothMaximum:
		return -smoothMin(-x, -y, tolerance)

	case OpRound:
		return math.RoundToEven(x)
	case OpFloor:
		return math.Floor(x)
	case OpCeil:
		return math.Ceil(x)
	case OpTruncate:
		return math.Trunc(x)
	case OpFraction:
		return x - math.Trunc(x)
	case OpModulo:
		return math.Remainder(x, y)
	case OpWrap:
		return wrap(x, y, extra)
	case OpSnap:
		if y == 0 {
			return x
		}
		return math.Round(x/y) * y

	case OpSine:
		return math.Sin(x)
	case OpCosine:
		return math.Cos(x)
	case OpTangent:
		return math.Tan(x)
	case OpArcsine:
		return math.Asin(x)
	case OpArccosine:
		return math.Acos(x)
	case OpArctangent:
		return math.Atan(x)
	case OpAtan2:
		return math.Atan2(x, y)

	case OpToRadians:
		return x * math.Pi / 180
	case OpToDegrees:
		return x * 180 / math.Pi

	case OpLerp:
		return vmath.Lerp(x, y, extra)
	}
	return 0
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// smoothMin is the polynomial smooth minimum with blend radius k.
func smoothMin(a, b, k float64) float64 {
	if k <= 0 {
		return math.Min(a, b)
	}
	h := math.Max(k-math.Abs(a-b), 0) / k
	return math.Min(a, b) - h*h*k*0.25
}

// wrap maps v into [lo, hi).
func wrap(v, lo, hi float64) float64 {
	r := hi - lo
	if r == 0 {
		return lo
	}
	return v - r*math.Floor((v-lo)/r)
}

// MathFloatNode applies a MathOperation to its inputs. Connected inputs
// that produce per-element values make the result per-element too.
type MathFloatNode struct {
	*graph.Base
	x, y, tolerance, extra float64
	operation              MathOperation
	result                 float64

	xPort, yPort, tolerancePort, extraPort, resultPort *graph.Port
}

func NewMathFloatNode(id graph.NodeID) *MathFloatNode {
	n := &MathFloatNode{Base: graph.NewBase(id, TypeMathFloat)}
	n.xPort = n.AddPort("X", graph.PortFloat, graph.Input)
	n.yPort = n.AddPort("Y", graph.PortFloat, graph.Input)
	n.tolerancePort = n.AddPort("Tolerance", graph.PortFloat, graph.Input)
	n.extraPort = n.AddPort("Extra", graph.PortFloat, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortFloat, graph.Output)
	n.calculate()
	return n
}

func (n *MathFloatNode) calculate() {
	n.result = n.operation.Apply(n.x, n.y, n.tolerance, n.extra)
}

func (n *MathFloatNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *MathFloatNode) UpdateX(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.x, v) {
		n.changed(ec)
	}
}

func (n *MathFloatNode) UpdateY(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.y, v) {
		n.changed(ec)
	}
}

func (n *MathFloatNode) UpdateTolerance(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.tolerance, v) {
		n.changed(ec)
	}
}

func (n *MathFloatNode) UpdateExtra(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.extra, v) {
		n.changed(ec)
	}
}

func (n *MathFloatNode) UpdateOperation(ec *graph.EvaluationContext, op MathOperation) {
	if graph.Update(&n.operation, op) {
		n.changed(ec)
	}
}

func (n *MathFloatNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	if port != n.resultPort {
		return nil
	}
	return n.result
}

func (n *MathFloatNode) GetValuesForPort(ec *graph.EvaluationContext, port *graph.Port, count int) iter.Seq[any] {
	return func(yield func(any) bool) {
		if port != n.resultPort || count <= 0 {
			return
		}
		xs := collect(ec, n.xPort, count, n.x)
		ys := collect(ec, n.yPort, count, n.y)
		ts := collect(ec, n.tolerancePort, count, n.tolerance)
		es := collect(ec, n.extraPort, count, n.extra)
		for i := range count {
			if !yield(n.operation.Apply(xs[i], ys[i], ts[i], es[i])) {
				return
			}
		}
	}
}

func (n *MathFloatNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	// A per-element source may change without its single value changing.
	switch port {
	case n.xPort:
		pull(ec, conn, &n.x)
	case n.yPort:
		pull(ec, conn, &n.y)
	case n.tolerancePort:
		pull(ec, conn, &n.tolerance)
	case n.extraPort:
		pull(ec, conn, &n.extra)
	default:
		return
	}
	n.changed(ec)
}

func (n *MathFloatNode) CustomData() (string, error) {
	return encodeSettings(n.x, n.y, n.tolerance, n.extra, n.operation)
}

func (n *MathFloatNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.x, &n.y, &n.tolerance, &n.extra, &n.operation); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// ClampFloatNode clamps its input to [Min, Max].
type ClampFloatNode struct {
	*graph.Base
	input, min, max float64
	result          float64

	inputPort, minPort, maxPort, resultPort *graph.Port
}

func NewClampFloatNode(id graph.NodeID) *ClampFloatNode {
	n := &ClampFloatNode{Base: graph.NewBase(id, TypeClampFloat), max: 1}
	n.inputPort = n.AddPort("Input", graph.PortFloat, graph.Input)
	n.minPort = n.AddPort("Min", graph.PortFloat, graph.Input)
	n.maxPort = n.AddPort("Max", graph.PortFloat, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortFloat, graph.Output)
	n.calculate()
	return n
}

func (n *ClampFloatNode) calculate() {
	n.result = vmath.Clamp(n.input, n.min, n.max)
}

func (n *ClampFloatNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *ClampFloatNode) UpdateInput(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.input, v) {
		n.changed(ec)
	}
}

func (n *ClampFloatNode) UpdateMin(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.min, v) {
		n.changed(ec)
	}
}

func (n *ClampFloatNode) UpdateMax(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.max, v) {
		n.changed(ec)
	}
}

func (n *ClampFloatNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	if port != n.resultPort {
		return nil
	}
	return n.result
}

func (n *ClampFloatNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.inputPort:
		changed = pull(ec, conn, &n.input)
	case n.minPort:
		changed = pull(ec, conn, &n.min)
	case n.maxPort:
		changed = pull(ec, conn, &n.max)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *ClampFloatNode) CustomData() (string, error) {
	return encodeSettings(n.input, n.min, n.max)
}

func (n *ClampFloatNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.input, &n.min, &n.max); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// mapRange maps v from [fromMin, fromMax] onto [toMin, toMax]. A collapsed
// source range maps everything to toMin. With clamp set the result stays
// between the two target bounds whichever is larger.
func mapRange(v, fromMin, fromMax, toMin, toMax float64, clamp bool) float64 {
	if vmath.Approximately(fromMin, fromMax) {
		return toMin
	}
	out := toMin + (v-fromMin)/(fromMax-fromMin)*(toMax-toMin)
	if clamp {
		out = vmath.Clamp(out, min(toMin, toMax), max(toMin, toMax))
	}
	return out
}

// MapRangeFloatNode remaps Value from one range onto another, optionally
// clamping to the target range. Every input may be a per-element source.
type MapRangeFloatNode struct {
	*graph.Base
	value, fromMin, fromMax, toMin, toMax float64
	clamp                                 bool

	valuePort, fromMinPort, fromMaxPort, toMinPort, toMaxPort, resultPort *graph.Port
}

func NewMapRangeFloatNode(id graph.NodeID) *MapRangeFloatNode {
	n := &MapRangeFloatNode{Base: graph.NewBase(id, TypeMapRangeFloat), fromMax: 1, toMax: 1}
	n.valuePort = n.AddPort("Value", graph.PortFloat, graph.Input)
	n.fromMinPort = n.AddPort("FromMin", graph.PortFloat, graph.Input)
	n.fromMaxPort = n.AddPort("FromMax", graph.PortFloat, graph.Input)
	n.toMinPort = n.AddPort("ToMin", graph.PortFloat, graph.Input)
	n.toMaxPort = n.AddPort("ToMax", graph.PortFloat, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortFloat, graph.Output)
	return n
}

func (n *MapRangeFloatNode) changed(ec *graph.EvaluationContext) {
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *MapRangeFloatNode) UpdateValue(ec *graph.EvaluationContext, v float64) {
	n.set(ec, &n.value, v)
}

func (n *MapRangeFloatNode) UpdateFromMin(ec *graph.EvaluationContext, v float64) {
	n.set(ec, &n.fromMin, v)
}

func (n *MapRangeFloatNode) UpdateFromMax(ec *graph.EvaluationContext, v float64) {
	n.set(ec, &n.fromMax, v)
}

func (n *MapRangeFloatNode) UpdateToMin(ec *graph.EvaluationContext, v float64) {
	n.set(ec, &n.toMin, v)
}

func (n *MapRangeFloatNode) UpdateToMax(ec *graph.EvaluationContext, v float64) {
	n.set(ec, &n.toMax, v)
}

func (n *MapRangeFloatNode) set(ec *graph.EvaluationContext, field *float64, v float64) {
	if graph.Update(field, v) {
		n.changed(ec)
	}
}

func (n *MapRangeFloatNode) UpdateClamp(ec *graph.EvaluationContext, v bool) {
	if graph.Update(&n.clamp, v) {
		n.changed(ec)
	}
}

func (n *MapRangeFloatNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	if port != n.resultPort {
		return nil
	}
	return mapRange(n.value, n.fromMin, n.fromMax, n.toMin, n.toMax, n.clamp)
}

func (n *MapRangeFloatNode) GetValuesForPort(ec *graph.EvaluationContext, port *graph.Port, count int) iter.Seq[any] {
	return func(yield func(any) bool) {
		if port != n.resultPort || count <= 0 {
			return
		}
		vs := collect(ec, n.valuePort, count, n.value)
		fromMins := collect(ec, n.fromMinPort, count, n.fromMin)
		fromMaxs := collect(ec, n.fromMaxPort, count, n.fromMax)
		toMins := collect(ec, n.toMinPort, count, n.toMin)
		toMaxs := collect(ec, n.toMaxPort, count, n.toMax)
		for i := range count {
			if !yield(mapRange(vs[i], fromMins[i], fromMaxs[i], toMins[i], toMaxs[i], n.clamp)) {
				return
			}
		}
	}
}

func (n *MapRangeFloatNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	// A per-element source may change without its single value changing.
	switch port {
	case n.valuePort:
		pull(ec, conn, &n.value)
	case n.fromMinPort:
		pull(ec, conn, &n.fromMin)
	case n.fromMaxPort:
		pull(ec, conn, &n.fromMax)
	case n.toMinPort:
		pull(ec, conn, &n.toMin)
	case n.toMaxPort:
		pull(ec, conn, &n.toMax)
	default:
		return
	}
	n.changed(ec)
}

func (n *MapRangeFloatNode) CustomData() (string, error) {
	return encodeSettings(n.value, n.fromMin, n.fromMax, n.toMin, n.toMax, n.clamp)
}

func (n *MapRangeFloatNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.value, &n.fromMin, &n.fromMax, &n.toMin, &n.toMax, &n.clamp); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}
