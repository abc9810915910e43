package nodes

import (
	"iter"

	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/noise"
	"github.com/chazu/geograph/pkg/vmath"
)

// RandomFloatNode produces values in [0, 1) determined by its seed. Per
// element consumers get the first count values of the seeded sequence.
type RandomFloatNode struct {
	*graph.Base
	seed int

	seedPort, valuePort *graph.Port
}

func NewRandomFloatNode(id graph.NodeID) *RandomFloatNode {
	n := &RandomFloatNode{Base: graph.NewBase(id, TypeRandomFloat)}
	n.seedPort = n.AddPort("Seed", graph.PortInteger, graph.Input)
	n.valuePort = n.AddPort("Value", graph.PortFloat, graph.Output)
	return n
}

func (n *RandomFloatNode) UpdateSeed(ec *graph.EvaluationContext, seed int) {
	if graph.Update(&n.seed, seed) {
		n.NotifyPortValueChanged(ec, n.valuePort)
	}
}

func (n *RandomFloatNode) GetValueForPort(ec *graph.EvaluationContext, port *graph.Port) any {
	if port != n.valuePort {
		return nil
	}
	return ec.Rand.FloatSeeded(int64(n.seed))
}

func (n *RandomFloatNode) GetValuesForPort(ec *graph.EvaluationContext, port *graph.Port, count int) iter.Seq[any] {
	return func(yield func(any) bool) {
		if port != n.valuePort || count <= 0 {
			return
		}
		defer ec.Rand.Push(int64(n.seed))()
		for range count {
			if !yield(ec.Rand.Float()) {
				return
			}
		}
	}
}

func (n *RandomFloatNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	if port == n.seedPort && pull(ec, conn, &n.seed) {
		n.NotifyPortValueChanged(ec, n.valuePort)
	}
}

func (n *RandomFloatNode) CustomData() (string, error) { return encodeSettings(n.seed) }

func (n *RandomFloatNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.seed); err != nil {
		return err
	}
	n.NotifyPortValueChanged(ec, n.valuePort)
	return nil
}

// RandomIntegerNode produces integers in [Min, Max) determined by its seed.
// Per element consumers get the first count values of the seeded sequence.
type RandomIntegerNode struct {
	*graph.Base
	seed, min, max int

	seedPort, minPort, maxPort, valuePort *graph.Port
}

func NewRandomIntegerNode(id graph.NodeID) *RandomIntegerNode {
	n := &RandomIntegerNode{Base: graph.NewBase(id, TypeRandomInteger), max: 100}
	n.seedPort = n.AddPort("Seed", graph.PortInteger, graph.Input)
	n.minPort = n.AddPort("Min", graph.PortInteger, graph.Input)
	n.maxPort = n.AddPort("Max", graph.PortInteger, graph.Input)
	n.valuePort = n.AddPort("Value", graph.PortInteger, graph.Output)
	return n
}

func (n *RandomIntegerNode) UpdateSeed(ec *graph.EvaluationContext, v int) { n.set(ec, &n.seed, v) }
func (n *RandomIntegerNode) UpdateMin(ec *graph.EvaluationContext, v int)  { n.set(ec, &n.min, v) }
func (n *RandomIntegerNode) UpdateMax(ec *graph.EvaluationContext, v int)  { n.set(ec, &n.max, v) }

func (n *RandomIntegerNode) set(ec *graph.EvaluationContext, field *int, v int) {
	if graph.Update(field, v) {
		n.NotifyPortValueChanged(ec, n.valuePort)
	}
}

func (n *RandomIntegerNode) GetValueForPort(ec *graph.EvaluationContext, port *graph.Port) any {
	if port != n.valuePort {
		return nil
	}
	return ec.Rand.RangeIntSeeded(n.min, n.max, int64(n.seed))
}

func (n *RandomIntegerNode) GetValuesForPort(ec *graph.EvaluationContext, port *graph.Port, count int) iter.Seq[any] {
	return func(yield func(any) bool) {
		if port != n.valuePort || count <= 0 {
			return
		}
		defer ec.Rand.Push(int64(n.seed))()
		for range count {
			if !yield(ec.Rand.RangeInt(n.min, n.max)) {
				return
			}
		}
	}
}

func (n *RandomIntegerNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.seedPort:
		changed = pull(ec, conn, &n.seed)
	case n.minPort:
		changed = pull(ec, conn, &n.min)
	case n.maxPort:
		changed = pull(ec, conn, &n.max)
	}
	if changed {
		n.NotifyPortValueChanged(ec, n.valuePort)
	}
}

func (n *RandomIntegerNode) CustomData() (string, error) {
	return encodeSettings(n.seed, n.min, n.max)
}

func (n *RandomIntegerNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.seed, &n.min, &n.max); err != nil {
		return err
	}
	n.NotifyPortValueChanged(ec, n.valuePort)
	return nil
}

// NoiseNode samples multi-octave simplex noise at its Position input.
// Per-element results are cached until an input or setting changes. While
// the graph is being saved or loaded it yields zeros without sampling.
type NoiseNode struct {
	*graph.Base
	position    vmath.Vec3
	scale       float64
	octaves     int
	lacunarity  float64
	persistence float64
	noiseType   NoiseType

	floatResults  []float64
	vectorResults []vmath.Vec3
	floatDirty    bool
	vectorDirty   bool

	positionPort, resultPort, resultVectorPort *graph.Port
}

func NewNoiseNode(id graph.NodeID) *NoiseNode {
	n := &NoiseNode{
		Base:        graph.NewBase(id, TypeNoise),
		scale:       1,
		octaves:     4,
		lacunarity:  2,
		persistence: 0.5,
		floatDirty:  true,
		vectorDirty: true,
	}
	n.positionPort = n.AddPort("Position", graph.PortVector, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortFloat, graph.Output)
	n.resultVectorPort = n.AddPort("ResultVector", graph.PortVector, graph.Output)
	return n
}

func (n *NoiseNode) changed(ec *graph.EvaluationContext) {
	n.floatDirty, n.vectorDirty = true, true
	n.NotifyPortValueChanged(ec, n.resultPort)
	n.NotifyPortValueChanged(ec, n.resultVectorPort)
}

func (n *NoiseNode) UpdatePosition(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.position, v) {
		n.changed(ec)
	}
}

func (n *NoiseNode) UpdateScale(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.scale, v) {
		n.changed(ec)
	}
}

func (n *NoiseNode) UpdateOctaves(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.octaves, vmath.ClampInt(v, 1, noise.MaxOctaves)) {
		n.changed(ec)
	}
}

func (n *NoiseNode) UpdateLacunarity(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.lacunarity, vmath.MinClamped(v, noise.MinLacunarity)) {
		n.changed(ec)
	}
}

func (n *NoiseNode) UpdatePersistence(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.persistence, vmath.MinClamped(v, noise.MinPersistence)) {
		n.changed(ec)
	}
}

// UpdateType records which output the node presents. Both outputs are
// sampled the same way whatever the type, so consumers are not notified.
func (n *NoiseNode) UpdateType(_ *graph.EvaluationContext, t NoiseType) {
	n.noiseType = t
}

func (n *NoiseNode) NoiseType() NoiseType { return n.noiseType }

func (n *NoiseNode) sample(p vmath.Vec3) float64 {
	return noise.Simplex3(p, n.scale, n.octaves, n.lacunarity, n.persistence)
}

func (n *NoiseNode) sampleVector(p vmath.Vec3) vmath.Vec3 {
	return noise.Simplex3X3(p, n.scale, n.octaves, n.lacunarity, n.persistence)
}

func (n *NoiseNode) GetValueForPort(ec *graph.EvaluationContext, port *graph.Port) any {
	serializing := ec.IsSerializing()
	if serializing {
		ec.Log.Debug("noise sampling skipped while serializing", zap.String("node", n.ID().Short()))
	}
	switch port {
	case n.resultPort:
		if serializing {
			return 0.0
		}
		return n.sample(n.position)
	case n.resultVectorPort:
		if serializing {
			return vmath.Zero3
		}
		return n.sampleVector(n.position)
	}
	return nil
}

func (n *NoiseNode) GetValuesForPort(ec *graph.EvaluationContext, port *graph.Port, count int) iter.Seq[any] {
	return func(yield func(any) bool) {
		if count <= 0 {
			return
		}
		switch port {
		case n.resultPort:
			if ec.IsSerializing() {
				yieldN(yield, 0.0, count)
				return
			}
			if n.floatDirty || len(n.floatResults) != count {
				positions := collect(ec, n.positionPort, count, n.position)
				n.floatResults = make([]float64, count)
				for i, p := range positions {
					n.floatResults[i] = n.sample(p)
				}
				n.floatDirty = false
			}
			for _, v := range n.floatResults {
				if !yield(v) {
					return
				}
			}
		case n.resultVectorPort:
			if ec.IsSerializing() {
				yieldN(yield, vmath.Zero3, count)
				return
			}
			if n.vectorDirty || len(n.vectorResults) != count {
				positions := collect(ec, n.positionPort, count, n.position)
				n.vectorResults = make([]vmath.Vec3, count)
				for i, p := range positions {
					n.vectorResults[i] = n.sampleVector(p)
				}
				n.vectorDirty = false
			}
			for _, v := range n.vectorResults {
				if !yield(v) {
					return
				}
			}
		}
	}
}

func yieldN(yield func(any) bool, v any, count int) {
	for range count {
		if !yield(v) {
			return
		}
	}
}

func (n *NoiseNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	if port != n.positionPort {
		return
	}
	// A per-element source may change without its single value changing.
	pull(ec, conn, &n.position)
	n.changed(ec)
}

// OnConnectionRemoved falls back to the last position read from the
// connection for every element.
func (n *NoiseNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port == n.positionPort {
		n.changed(ec)
	}
}

func (n *NoiseNode) CustomData() (string, error) {
	return encodeSettings(n.position, n.scale, n.octaves, n.lacunarity, n.persistence, n.noiseType)
}

func (n *NoiseNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.position, &n.scale, &n.octaves, &n.lacunarity, &n.persistence, &n.noiseType); err != nil {
		return err
	}
	n.octaves = vmath.ClampInt(n.octaves, 1, noise.MaxOctaves)
	n.changed(ec)
	return nil
}
