package nodes

import (
	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/kernel"
	"github.com/chazu/geograph/pkg/vmath"
)

var (
	clampRadius = atLeast(geometry.MinCircularGeometryRadius)
	clampHeight = atLeast(geometry.MinGeometryHeight)
	clampPoints = between(geometry.MinCircularGeometryPoints, geometry.MaxCircularGeometryPoints)
)

// geometryResult is the cached Result output shared by the primitive
// nodes. A nil value is computed on first read.
type geometryResult struct {
	result     *geometry.Data
	resultPort *graph.Port
}

func (r *geometryResult) get(port *graph.Port, calculate func()) any {
	if port != r.resultPort {
		return nil
	}
	if r.result == nil {
		calculate()
	}
	return r.result
}

// CirclePrimitiveNode builds a filled circle.
type CirclePrimitiveNode struct {
	*graph.Base
	geometryResult
	radius float64
	points int

	radiusPort, pointsPort *graph.Port
}

func NewCirclePrimitiveNode(id graph.NodeID) *CirclePrimitiveNode {
	n := &CirclePrimitiveNode{Base: graph.NewBase(id, TypeCirclePrimitive), radius: 1, points: 8}
	n.radiusPort = n.AddPort("Radius", graph.PortFloat, graph.Input)
	n.pointsPort = n.AddPort("Points", graph.PortInteger, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *CirclePrimitiveNode) calculate() {
	n.result = geometry.Circle(n.radius, n.points)
}

func (n *CirclePrimitiveNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *CirclePrimitiveNode) UpdateRadius(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.radius, clampRadius(v)) {
		n.changed(ec)
	}
}

func (n *CirclePrimitiveNode) UpdatePoints(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.points, clampPoints(v)) {
		n.changed(ec)
	}
}

func (n *CirclePrimitiveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *CirclePrimitiveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.radiusPort:
		changed = pull(ec, conn, &n.radius, clampRadius)
	case n.pointsPort:
		changed = pull(ec, conn, &n.points, clampPoints)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *CirclePrimitiveNode) CustomData() (string, error) {
	return encodeSettings(n.radius, n.points)
}

func (n *CirclePrimitiveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.radius, &n.points); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// PlanePrimitiveNode builds a subdivided plane in the XZ plane.
type PlanePrimitiveNode struct {
	*graph.Base
	geometryResult
	width, height float64
	subdivisions  int

	widthPort, heightPort, subdivisionsPort *graph.Port
}

func NewPlanePrimitiveNode(id graph.NodeID) *PlanePrimitiveNode {
	n := &PlanePrimitiveNode{Base: graph.NewBase(id, TypePlanePrimitive), width: 1, height: 1}
	n.widthPort = n.AddPort("Width", graph.PortFloat, graph.Input)
	n.heightPort = n.AddPort("Height", graph.PortFloat, graph.Input)
	n.subdivisionsPort = n.AddPort("Subdivisions", graph.PortInteger, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *PlanePrimitiveNode) calculate() {
	n.result = geometry.Plane(vmath.Vec2{X: n.width, Y: n.height}, n.subdivisions)
}

func (n *PlanePrimitiveNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *PlanePrimitiveNode) UpdateWidth(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.width, v) {
		n.changed(ec)
	}
}

func (n *PlanePrimitiveNode) UpdateHeight(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.height, v) {
		n.changed(ec)
	}
}

func (n *PlanePrimitiveNode) UpdateSubdivisions(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.subdivisions, max(v, 0)) {
		n.changed(ec)
	}
}

func (n *PlanePrimitiveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *PlanePrimitiveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.widthPort:
		changed = pull(ec, conn, &n.width)
	case n.heightPort:
		changed = pull(ec, conn, &n.height)
	case n.subdivisionsPort:
		changed = pull(ec, conn, &n.subdivisions, func(v int) int { return max(v, 0) })
	}
	if changed {
		n.changed(ec)
	}
}

func (n *PlanePrimitiveNode) CustomData() (string, error) {
	return encodeSettings(n.width, n.height, n.subdivisions)
}

func (n *PlanePrimitiveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.width, &n.height, &n.subdivisions); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// CubePrimitiveNode builds an axis-aligned box centered on the origin.
type CubePrimitiveNode struct {
	*graph.Base
	geometryResult
	size vmath.Vec3

	sizePort *graph.Port
}

func NewCubePrimitiveNode(id graph.NodeID) *CubePrimitiveNode {
	n := &CubePrimitiveNode{Base: graph.NewBase(id, TypeCubePrimitive), size: vmath.One3}
	n.sizePort = n.AddPort("Size", graph.PortVector, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *CubePrimitiveNode) calculate() {
	n.result = geometry.Cube(n.size)
}

func (n *CubePrimitiveNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *CubePrimitiveNode) UpdateSize(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.size, v) {
		n.changed(ec)
	}
}

func (n *CubePrimitiveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *CubePrimitiveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	if port == n.sizePort && pull(ec, conn, &n.size) {
		n.changed(ec)
	}
}

func (n *CubePrimitiveNode) CustomData() (string, error) { return encodeSettings(n.size) }

func (n *CubePrimitiveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.size); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// ConePrimitiveNode builds a cone standing on the XZ plane.
type ConePrimitiveNode struct {
	*graph.Base
	geometryResult
	radius, height float64
	points         int

	radiusPort, heightPort, pointsPort *graph.Port
}

func NewConePrimitiveNode(id graph.NodeID) *ConePrimitiveNode {
	n := &ConePrimitiveNode{Base: graph.NewBase(id, TypeConePrimitive), radius: 1, height: 2, points: 8}
	n.radiusPort = n.AddPort("Radius", graph.PortFloat, graph.Input)
	n.heightPort = n.AddPort("Height", graph.PortFloat, graph.Input)
	n.pointsPort = n.AddPort("Points", graph.PortInteger, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *ConePrimitiveNode) calculate() {
	n.result = geometry.Cone(n.radius, n.height, n.points)
}

func (n *ConePrimitiveNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *ConePrimitiveNode) UpdateRadius(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.radius, clampRadius(v)) {
		n.changed(ec)
	}
}

func (n *ConePrimitiveNode) UpdateHeight(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.height, clampHeight(v)) {
		n.changed(ec)
	}
}

func (n *ConePrimitiveNode) UpdatePoints(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.points, clampPoints(v)) {
		n.changed(ec)
	}
}

func (n *ConePrimitiveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *ConePrimitiveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.radiusPort:
		changed = pull(ec, conn, &n.radius, clampRadius)
	case n.heightPort:
		changed = pull(ec, conn, &n.height, clampHeight)
	case n.pointsPort:
		changed = pull(ec, conn, &n.points, clampPoints)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *ConePrimitiveNode) CustomData() (string, error) {
	return encodeSettings(n.radius, n.height, n.points)
}

func (n *ConePrimitiveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.radius, &n.height, &n.points); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// CylinderPrimitiveNode builds a capped cylinder, or a frustum when the
// radii differ.
type CylinderPrimitiveNode struct {
	*graph.Base
	geometryResult
	bottomRadius, topRadius, height float64
	points                          int

	bottomRadiusPort, topRadiusPort, heightPort, pointsPort *graph.Port
}

func NewCylinderPrimitiveNode(id graph.NodeID) *CylinderPrimitiveNode {
	n := &CylinderPrimitiveNode{
		Base:         graph.NewBase(id, TypeCylinderPrimitive),
		bottomRadius: 1,
		topRadius:    1,
		height:       2,
		points:       8,
	}
	n.bottomRadiusPort = n.AddPort("BottomRadius", graph.PortFloat, graph.Input)
	n.topRadiusPort = n.AddPort("TopRadius", graph.PortFloat, graph.Input)
	n.heightPort = n.AddPort("Height", graph.PortFloat, graph.Input)
	n.pointsPort = n.AddPort("Points", graph.PortInteger, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *CylinderPrimitiveNode) calculate() {
	n.result = geometry.Cylinder(n.bottomRadius, n.topRadius, n.height, n.points)
}

func (n *CylinderPrimitiveNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *CylinderPrimitiveNode) UpdateBottomRadius(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.bottomRadius, clampRadius(v)) {
		n.changed(ec)
	}
}

func (n *CylinderPrimitiveNode) UpdateTopRadius(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.topRadius, clampRadius(v)) {
		n.changed(ec)
	}
}

func (n *CylinderPrimitiveNode) UpdateHeight(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.height, clampHeight(v)) {
		n.changed(ec)
	}
}

func (n *CylinderPrimitiveNode) UpdatePoints(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.points, clampPoints(v)) {
		n.changed(ec)
	}
}

func (n *CylinderPrimitiveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *CylinderPrimitiveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.bottomRadiusPort:
		changed = pull(ec, conn, &n.bottomRadius, clampRadius)
	case n.topRadiusPort:
		changed = pull(ec, conn, &n.topRadius, clampRadius)
	case n.heightPort:
		changed = pull(ec, conn, &n.height, clampHeight)
	case n.pointsPort:
		changed = pull(ec, conn, &n.points, clampPoints)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *CylinderPrimitiveNode) CustomData() (string, error) {
	return encodeSettings(n.bottomRadius, n.topRadius, n.height, n.points)
}

func (n *CylinderPrimitiveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.bottomRadius, &n.topRadius, &n.height, &n.points); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// IcospherePrimitiveNode builds a subdivided icosahedron projected onto a
// sphere.
type IcospherePrimitiveNode struct {
	*graph.Base
	geometryResult
	radius       float64
	subdivisions int

	radiusPort, subdivisionsPort *graph.Port
}

func NewIcospherePrimitiveNode(id graph.NodeID) *IcospherePrimitiveNode {
	n := &IcospherePrimitiveNode{Base: graph.NewBase(id, TypeIcospherePrimitive), radius: 1, subdivisions: 2}
	n.radiusPort = n.AddPort("Radius", graph.PortFloat, graph.Input)
	n.subdivisionsPort = n.AddPort("Subdivisions", graph.PortInteger, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

var clampSubdivisions = between(0, geometry.MaxIcosphereSubdivisions)

func (n *IcospherePrimitiveNode) calculate() {
	n.result = geometry.Icosphere(n.radius, n.subdivisions)
}

func (n *IcospherePrimitiveNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *IcospherePrimitiveNode) UpdateRadius(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.radius, clampRadius(v)) {
		n.changed(ec)
	}
}

func (n *IcospherePrimitiveNode) UpdateSubdivisions(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.subdivisions, clampSubdivisions(v)) {
		n.changed(ec)
	}
}

func (n *IcospherePrimitiveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *IcospherePrimitiveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.radiusPort:
		changed = pull(ec, conn, &n.radius, clampRadius)
	case n.subdivisionsPort:
		changed = pull(ec, conn, &n.subdivisions, clampSubdivisions)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *IcospherePrimitiveNode) CustomData() (string, error) {
	return encodeSettings(n.radius, n.subdivisions)
}

func (n *IcospherePrimitiveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.radius, &n.subdivisions); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// Rounded cube tessellation limits.
const (
	MinRoundedCubeResolution     = 8
	MaxRoundedCubeResolution     = 256
	DefaultRoundedCubeResolution = 32
)

var clampResolution = between(MinRoundedCubeResolution, MaxRoundedCubeResolution)

// RoundedCubePrimitiveNode builds a box with rounded edges by tessellating
// a signed distance field from the solid modeling kernel.
type RoundedCubePrimitiveNode struct {
	*graph.Base
	geometryResult
	kernel     kernel.Kernel
	size       vmath.Vec3
	radius     float64
	resolution int
	err        error

	sizePort, radiusPort, resolutionPort *graph.Port
}

func NewRoundedCubePrimitiveNode(id graph.NodeID, k kernel.Kernel) *RoundedCubePrimitiveNode {
	n := &RoundedCubePrimitiveNode{
		Base:       graph.NewBase(id, TypeRoundedCubePrimitive),
		kernel:     k,
		size:       vmath.One3,
		radius:     0.1,
		resolution: DefaultRoundedCubeResolution,
	}
	n.sizePort = n.AddPort("Size", graph.PortVector, graph.Input)
	n.radiusPort = n.AddPort("Radius", graph.PortFloat, graph.Input)
	n.resolutionPort = n.AddPort("Resolution", graph.PortInteger, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

// Err returns the kernel error of the last calculation, if any.
func (n *RoundedCubePrimitiveNode) Err() error { return n.err }

func (n *RoundedCubePrimitiveNode) calculate(log *zap.Logger) {
	n.result, n.err = geometry.Empty(), nil
	if n.kernel == nil {
		return
	}
	solid, err := n.kernel.RoundedBox(n.size, n.radius)
	if err == nil {
		n.result, err = n.kernel.ToGeometry(solid, n.resolution)
	}
	if err != nil {
		n.result, n.err = geometry.Empty(), err
		log.Warn("rounded cube tessellation failed",
			zap.String("node", n.ID().Short()), zap.Error(err))
	}
}

func (n *RoundedCubePrimitiveNode) changed(ec *graph.EvaluationContext) {
	n.calculate(ec.Log)
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *RoundedCubePrimitiveNode) UpdateSize(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.size, v) {
		n.changed(ec)
	}
}

func (n *RoundedCubePrimitiveNode) UpdateRadius(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.radius, max(v, 0)) {
		n.changed(ec)
	}
}

func (n *RoundedCubePrimitiveNode) UpdateResolution(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.resolution, clampResolution(v)) {
		n.changed(ec)
	}
}

func (n *RoundedCubePrimitiveNode) GetValueForPort(ec *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, func() { n.calculate(ec.Log) })
}

func (n *RoundedCubePrimitiveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.sizePort:
		changed = pull(ec, conn, &n.size)
	case n.radiusPort:
		changed = pull(ec, conn, &n.radius, func(v float64) float64 { return max(v, 0) })
	case n.resolutionPort:
		changed = pull(ec, conn, &n.resolution, clampResolution)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *RoundedCubePrimitiveNode) CustomData() (string, error) {
	return encodeSettings(n.size, n.radius, n.resolution)
}

func (n *RoundedCubePrimitiveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.size, &n.radius, &n.resolution); err != nil {
		return err
	}
	n.resolution = clampResolution(n.resolution)
	n.changed(ec)
	return nil
}
