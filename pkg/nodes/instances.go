package nodes

import (
	"github.com/chazu/geograph/pkg/attribute"
	"github.com/chazu/geograph/pkg/curve"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/instance"
	"github.com/chazu/geograph/pkg/tessellate"
	"github.com/chazu/geograph/pkg/vmath"
)

// Point attributes read by GeometryInstanceNode. Rotation is in Euler
// degrees, the same attribute CurveToPointsNode writes.
const (
	AttrInstanceRotation = curve.AttrRotation
	AttrInstanceScale    = "scale"
)

// GeometryInstanceNode places a prototype on every vertex of Points. Each
// point contributes its position plus the rotation and scale vertex
// attributes when present. In collection mode every point picks a
// prototype from Collection at random, seeded by CollectionSamplingSeed.
type GeometryInstanceNode struct {
	*graph.Base
	points, geometry *geometry.Data
	collection       []*geometry.Data
	seed             int
	mode             InstanceMode
	result           *instance.Data
	dirty            bool

	pointsPort, geometryPort, collectionPort, seedPort, resultPort *graph.Port
}

func NewGeometryInstanceNode(id graph.NodeID) *GeometryInstanceNode {
	n := &GeometryInstanceNode{
		Base:     graph.NewBase(id, TypeGeometryInstance),
		points:   geometry.Empty(),
		geometry: geometry.Empty(),
		dirty:    true,
	}
	n.pointsPort = n.AddPort("Points", graph.PortGeometry, graph.Input)
	n.geometryPort = n.AddPort("Geometry", graph.PortGeometry, graph.Input)
	n.collectionPort = n.AddPort("Collection", graph.PortCollection, graph.Input)
	n.seedPort = n.AddPort("CollectionSamplingSeed", graph.PortInteger, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortInstances, graph.Output)
	return n
}

func (n *GeometryInstanceNode) Mode() InstanceMode { return n.mode }

func (n *GeometryInstanceNode) transforms() []instance.Transform {
	positions := geometry.AttributeOrDefault(n.points, geometry.AttrPosition, attribute.Vertex, vmath.Zero3)
	rotations := geometry.AttributeOrDefault(n.points, AttrInstanceRotation, attribute.Vertex, vmath.Zero3)
	scales := geometry.AttributeOrDefault(n.points, AttrInstanceScale, attribute.Vertex, vmath.One3)
	out := make([]instance.Transform, n.points.VertexCount())
	for i := range out {
		out[i] = instance.Transform{
			Translation:   positions.Get(i),
			EulerRotation: rotations.Get(i),
			Scale:         scales.Get(i),
		}
	}
	return out
}

func (n *GeometryInstanceNode) calculate(ec *graph.EvaluationContext) {
	n.dirty = false
	n.result = instance.Empty()
	if n.points.IsEmpty() {
		return
	}
	transforms := n.transforms()

	switch n.mode {
	case InstanceGeometry:
		if n.geometry.IsEmpty() {
			return
		}
		n.result = instance.Single(n.geometry, transforms)
	case InstanceCollection:
		if len(n.collection) == 0 {
			return
		}
		slot := make(map[int]int)
		var prototypes []*geometry.Data
		var grouped [][]instance.Transform

		restore := ec.Rand.Push(int64(n.seed))
		for _, t := range transforms {
			pick := ec.Rand.RangeInt(0, len(n.collection))
			s, ok := slot[pick]
			if !ok {
				s = len(prototypes)
				slot[pick] = s
				prototypes = append(prototypes, n.collection[pick])
				grouped = append(grouped, nil)
			}
			grouped[s] = append(grouped[s], t)
		}
		restore()
		n.result = instance.New(prototypes, grouped)
	}
}

func (n *GeometryInstanceNode) changed(ec *graph.EvaluationContext) {
	n.calculate(ec)
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *GeometryInstanceNode) UpdateMode(ec *graph.EvaluationContext, m InstanceMode) {
	if graph.Update(&n.mode, m) {
		n.changed(ec)
	}
}

func (n *GeometryInstanceNode) UpdateSeed(ec *graph.EvaluationContext, seed int) {
	if graph.Update(&n.seed, seed) {
		n.changed(ec)
	}
}

func (n *GeometryInstanceNode) GetValueForPort(ec *graph.EvaluationContext, port *graph.Port) any {
	if port != n.resultPort {
		return nil
	}
	if n.dirty {
		n.calculate(ec)
	}
	return n.result
}

func (n *GeometryInstanceNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.pointsPort:
		n.points = geometryInput(ec, conn)
		changed = true
	case n.geometryPort:
		n.geometry = geometryInput(ec, conn)
		changed = n.mode == InstanceGeometry
	case n.collectionPort:
		n.collection = append([]*geometry.Data(nil), graph.GetValue[[]*geometry.Data](ec, conn, nil)...)
		changed = n.mode == InstanceCollection
	case n.seedPort:
		changed = pull(ec, conn, &n.seed) && n.mode == InstanceCollection
	}
	if changed {
		n.changed(ec)
	}
}

func (n *GeometryInstanceNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	reset := port == n.pointsPort ||
		port == n.geometryPort && n.mode == InstanceGeometry ||
		port == n.collectionPort && n.mode == InstanceCollection
	switch port {
	case n.pointsPort:
		n.points = geometry.Empty()
	case n.geometryPort:
		n.geometry = geometry.Empty()
	case n.collectionPort:
		n.collection = nil
	}
	if reset {
		n.result = instance.Empty()
		n.NotifyPortValueChanged(ec, n.resultPort)
	}
}

func (n *GeometryInstanceNode) CustomData() (string, error) {
	return encodeSettings(n.seed, n.mode)
}

func (n *GeometryInstanceNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.seed, &n.mode); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// RealizeInstancesNode bakes instanced geometry into a single mesh.
type RealizeInstancesNode struct {
	*graph.Base
	geometryResult
	input *instance.Data

	inputPort *graph.Port
}

func NewRealizeInstancesNode(id graph.NodeID) *RealizeInstancesNode {
	n := &RealizeInstancesNode{Base: graph.NewBase(id, TypeRealizeInstances), input: instance.Empty()}
	n.inputPort = n.AddPort("Instances", graph.PortInstances, graph.Input)
	n.resultPort = n.AddPort("Geometry", graph.PortGeometry, graph.Output)
	return n
}

func (n *RealizeInstancesNode) calculate() {
	n.result = tessellate.Realize(n.input, instance.Identity)
}

func (n *RealizeInstancesNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *RealizeInstancesNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	if port != n.inputPort {
		return
	}
	n.input = instancesInput(ec, conn)
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *RealizeInstancesNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port != n.inputPort {
		return
	}
	n.input = instance.Empty()
	n.result = geometry.Empty()
	n.NotifyPortValueChanged(ec, n.resultPort)
}
