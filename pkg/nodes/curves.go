package nodes

import (
	"github.com/chazu/geograph/pkg/curve"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/vmath"
)

// Open curves are configured by point count; the sampled resolution is one
// less.
var (
	clampLinePoints   = between(curve.MinLineCurveResolution+1, curve.MaxCurveResolution+1)
	clampCirclePoints = between(curve.MinCircleCurveResolution, curve.MaxCurveResolution)
	clampBezierPoints = between(curve.MinBezierCurveResolution+1, curve.MaxCurveResolution+1)
	clampHelixPoints  = between(curve.MinHelixCurveResolution+1, curve.MaxCurveResolution+1)
	clampCurveRadius  = atLeast(curve.MinCircularCurveRadius)
)

// curveResult is the cached curve output of the curve nodes. A nil value
// is computed on first read.
type curveResult struct {
	result     *curve.Data
	resultPort *graph.Port
}

func (r *curveResult) get(port *graph.Port, calculate func()) any {
	if port != r.resultPort {
		return nil
	}
	if r.result == nil {
		calculate()
	}
	return r.result
}

// invalidate drops the cached curve and tells consumers to read it again.
func (r *curveResult) invalidate(ec *graph.EvaluationContext, b *graph.Base) {
	r.result = nil
	b.NotifyPortValueChanged(ec, r.resultPort)
}

// LineCurveNode samples a straight line between Start and End.
type LineCurveNode struct {
	*graph.Base
	curveResult
	points     int
	start, end vmath.Vec3

	pointsPort, startPort, endPort *graph.Port
}

func NewLineCurveNode(id graph.NodeID) *LineCurveNode {
	n := &LineCurveNode{Base: graph.NewBase(id, TypeLineCurve), points: 2, end: vmath.Right}
	n.pointsPort = n.AddPort("Points", graph.PortInteger, graph.Input)
	n.startPort = n.AddPort("Start", graph.PortVector, graph.Input)
	n.endPort = n.AddPort("End", graph.PortVector, graph.Input)
	n.resultPort = n.AddPort("Curve", graph.PortCurve, graph.Output)
	return n
}

func (n *LineCurveNode) calculate() {
	n.result = curve.NewLine(n.points-1, n.start, n.end)
}

func (n *LineCurveNode) UpdatePoints(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.points, clampLinePoints(v)) {
		n.invalidate(ec, n.Base)
	}
}

func (n *LineCurveNode) UpdateStart(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.start, v) {
		n.invalidate(ec, n.Base)
	}
}

func (n *LineCurveNode) UpdateEnd(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.end, v) {
		n.invalidate(ec, n.Base)
	}
}

func (n *LineCurveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *LineCurveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.pointsPort:
		changed = pull(ec, conn, &n.points, clampLinePoints)
	case n.startPort:
		changed = pull(ec, conn, &n.start)
	case n.endPort:
		changed = pull(ec, conn, &n.end)
	}
	if changed {
		n.invalidate(ec, n.Base)
	}
}

func (n *LineCurveNode) CustomData() (string, error) {
	return encodeSettings(n.points, n.start, n.end)
}

func (n *LineCurveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.points, &n.start, &n.end); err != nil {
		return err
	}
	n.points = clampLinePoints(n.points)
	n.invalidate(ec, n.Base)
	return nil
}

// CircleCurveNode samples a closed circle in the XZ plane.
type CircleCurveNode struct {
	*graph.Base
	curveResult
	points int
	radius float64

	pointsPort, radiusPort *graph.Port
}

func NewCircleCurveNode(id graph.NodeID) *CircleCurveNode {
	n := &CircleCurveNode{Base: graph.NewBase(id, TypeCircleCurve), points: 32, radius: 1}
	n.pointsPort = n.AddPort("Points", graph.PortInteger, graph.Input)
	n.radiusPort = n.AddPort("Radius", graph.PortFloat, graph.Input)
	n.resultPort = n.AddPort("Curve", graph.PortCurve, graph.Output)
	return n
}

func (n *CircleCurveNode) calculate() {
	n.result = curve.NewCircle(n.points, n.radius)
}

func (n *CircleCurveNode) UpdatePoints(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.points, clampCirclePoints(v)) {
		n.invalidate(ec, n.Base)
	}
}

func (n *CircleCurveNode) UpdateRadius(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.radius, clampCurveRadius(v)) {
		n.invalidate(ec, n.Base)
	}
}

func (n *CircleCurveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *CircleCurveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.pointsPort:
		changed = pull(ec, conn, &n.points, clampCirclePoints)
	case n.radiusPort:
		changed = pull(ec, conn, &n.radius, clampCurveRadius)
	}
	if changed {
		n.invalidate(ec, n.Base)
	}
}

func (n *CircleCurveNode) CustomData() (string, error) {
	return encodeSettings(n.points, n.radius)
}

func (n *CircleCurveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.points, &n.radius); err != nil {
		return err
	}
	n.points = clampCirclePoints(n.points)
	n.radius = clampCurveRadius(n.radius)
	n.invalidate(ec, n.Base)
	return nil
}

// QuadraticBezierCurveNode samples a quadratic Bezier curve.
type QuadraticBezierCurveNode struct {
	*graph.Base
	curveResult
	points              int
	closed              bool
	start, control, end vmath.Vec3

	pointsPort, closedPort, startPort, controlPort, endPort *graph.Port
}

func NewQuadraticBezierCurveNode(id graph.NodeID) *QuadraticBezierCurveNode {
	n := &QuadraticBezierCurveNode{
		Base:    graph.NewBase(id, TypeQuadraticBezierCurve),
		points:  32,
		control: vmath.Right,
		end:     vmath.Forward,
	}
	n.pointsPort = n.AddPort("Points", graph.PortInteger, graph.Input)
	n.closedPort = n.AddPort("IsClosed", graph.PortBoolean, graph.Input)
	n.startPort = n.AddPort("Start", graph.PortVector, graph.Input)
	n.controlPort = n.AddPort("Control", graph.PortVector, graph.Input)
	n.endPort = n.AddPort("End", graph.PortVector, graph.Input)
	n.resultPort = n.AddPort("Curve", graph.PortCurve, graph.Output)
	return n
}

func (n *QuadraticBezierCurveNode) calculate() {
	n.result = curve.NewQuadraticBezier(n.points-1, n.closed, n.start, n.control, n.end)
}

func (n *QuadraticBezierCurveNode) UpdatePoints(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.points, clampBezierPoints(v)) {
		n.invalidate(ec, n.Base)
	}
}

func (n *QuadraticBezierCurveNode) UpdateClosed(ec *graph.EvaluationContext, v bool) {
	if graph.Update(&n.closed, v) {
		n.invalidate(ec, n.Base)
	}
}

func (n *QuadraticBezierCurveNode) UpdateStart(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.start, v) {
		n.invalidate(ec, n.Base)
	}
}

func (n *QuadraticBezierCurveNode) UpdateControl(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.control, v) {
		n.invalidate(ec, n.Base)
	}
}

func (n *QuadraticBezierCurveNode) UpdateEnd(ec *graph.EvaluationContext, v vmath.Vec3) {
	if graph.Update(&n.end, v) {
		n.invalidate(ec, n.Base)
	}
}

func (n *QuadraticBezierCurveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *QuadraticBezierCurveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.pointsPort:
		changed = pull(ec, conn, &n.points, clampBezierPoints)
	case n.closedPort:
		changed = pull(ec, conn, &n.closed)
	case n.startPort:
		changed = pull(ec, conn, &n.start)
	case n.controlPort:
		changed = pull(ec, conn, &n.control)
	case n.endPort:
		changed = pull(ec, conn, &n.end)
	}
	if changed {
		n.invalidate(ec, n.Base)
	}
}

func (n *QuadraticBezierCurveNode) CustomData() (string, error) {
	return encodeSettings(n.points, n.closed, n.start, n.control, n.end)
}

func (n *QuadraticBezierCurveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.points, &n.closed, &n.start, &n.control, &n.end); err != nil {
		return err
	}
	n.points = clampBezierPoints(n.points)
	n.invalidate(ec, n.Base)
	return nil
}

// CubicBezierCurveNode samples a cubic Bezier curve.
type CubicBezierCurveNode struct {
	*graph.Base
	curveResult
	points                         int
	closed                         bool
	start, controlA, controlB, end vmath.Vec3

	pointsPort, closedPort                         *graph.Port
	startPort, controlAPort, controlBPort, endPort *graph.Port
}

func NewCubicBezierCurveNode(id graph.NodeID) *CubicBezierCurveNode {
	n := &CubicBezierCurveNode{
		Base:     graph.NewBase(id, TypeCubicBezierCurve),
		points:   32,
		controlA: vmath.Forward,
		controlB: vmath.Right.Add(vmath.Forward),
		end:      vmath.Right,
	}
	n.pointsPort = n.AddPort("Points", graph.PortInteger, graph.Input)
	n.closedPort = n.AddPort("IsClosed", graph.PortBoolean, graph.Input)
	n.startPort = n.AddPort("Start", graph.PortVector, graph.Input)
	n.controlAPort = n.AddPort("ControlA", graph.PortVector, graph.Input)
	n.controlBPort = n.AddPort("ControlB", graph.PortVector, graph.Input)
	n.endPort = n.AddPort("End", graph.PortVector, graph.Input)
	n.resultPort = n.AddPort("Curve", graph.PortCurve, graph.Output)
	return n
}

func (n *CubicBezierCurveNode) calculate() {
	n.result = curve.NewCubicBezier(n.points-1, n.closed, n.start, n.controlA, n.controlB, n.end)
}

func (n *CubicBezierCurveNode) UpdatePoints(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.points, clampBezierPoints(v)) {
		n.invalidate(ec, n.Base)
	}
}

func (n *CubicBezierCurveNode) UpdateClosed(ec *graph.EvaluationContext, v bool) {
	if graph.Update(&n.closed, v) {
		n.invalidate(ec, n.Base)
	}
}

func (n *CubicBezierCurveNode) UpdateStart(ec *graph.EvaluationContext, v vmath.Vec3) {
	n.set(ec, &n.start, v)
}

func (n *CubicBezierCurveNode) UpdateControlA(ec *graph.EvaluationContext, v vmath.Vec3) {
	n.set(ec, &n.controlA, v)
}

func (n *CubicBezierCurveNode) UpdateControlB(ec *graph.EvaluationContext, v vmath.Vec3) {
	n.set(ec, &n.controlB, v)
}

func (n *CubicBezierCurveNode) UpdateEnd(ec *graph.EvaluationContext, v vmath.Vec3) {
	n.set(ec, &n.end, v)
}

func (n *CubicBezierCurveNode) set(ec *graph.EvaluationContext, field *vmath.Vec3, v vmath.Vec3) {
	if graph.Update(field, v) {
		n.invalidate(ec, n.Base)
	}
}

func (n *CubicBezierCurveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *CubicBezierCurveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.pointsPort:
		changed = pull(ec, conn, &n.points, clampBezierPoints)
	case n.closedPort:
		changed = pull(ec, conn, &n.closed)
	case n.startPort:
		changed = pull(ec, conn, &n.start)
	case n.controlAPort:
		changed = pull(ec, conn, &n.controlA)
	case n.controlBPort:
		changed = pull(ec, conn, &n.controlB)
	case n.endPort:
		changed = pull(ec, conn, &n.end)
	}
	if changed {
		n.invalidate(ec, n.Base)
	}
}

func (n *CubicBezierCurveNode) CustomData() (string, error) {
	return encodeSettings(n.points, n.closed, n.start, n.controlA, n.controlB, n.end)
}

func (n *CubicBezierCurveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.points, &n.closed, &n.start, &n.controlA, &n.controlB, &n.end); err != nil {
		return err
	}
	n.points = clampBezierPoints(n.points)
	n.invalidate(ec, n.Base)
	return nil
}

// HelixCurveNode samples a helix around +Y whose radius goes from
// BottomRadius to TopRadius.
type HelixCurveNode struct {
	*graph.Base
	curveResult
	points                                    int
	topRadius, bottomRadius, rotations, pitch float64

	pointsPort, topRadiusPort, bottomRadiusPort, rotationsPort, pitchPort *graph.Port
}

func NewHelixCurveNode(id graph.NodeID) *HelixCurveNode {
	n := &HelixCurveNode{
		Base:         graph.NewBase(id, TypeHelixCurve),
		points:       64,
		topRadius:    1,
		bottomRadius: 1,
		rotations:    2,
		pitch:        1,
	}
	n.pointsPort = n.AddPort("Points", graph.PortInteger, graph.Input)
	n.topRadiusPort = n.AddPort("TopRadius", graph.PortFloat, graph.Input)
	n.bottomRadiusPort = n.AddPort("BottomRadius", graph.PortFloat, graph.Input)
	n.rotationsPort = n.AddPort("Rotations", graph.PortFloat, graph.Input)
	n.pitchPort = n.AddPort("Pitch", graph.PortFloat, graph.Input)
	n.resultPort = n.AddPort("Curve", graph.PortCurve, graph.Output)
	return n
}

func (n *HelixCurveNode) calculate() {
	n.result = curve.NewHelix(n.points-1, n.rotations, n.pitch, n.topRadius, n.bottomRadius)
}

func (n *HelixCurveNode) UpdatePoints(ec *graph.EvaluationContext, v int) {
	if graph.Update(&n.points, clampHelixPoints(v)) {
		n.invalidate(ec, n.Base)
	}
}

func (n *HelixCurveNode) UpdateTopRadius(ec *graph.EvaluationContext, v float64) {
	n.set(ec, &n.topRadius, clampCurveRadius(v))
}

func (n *HelixCurveNode) UpdateBottomRadius(ec *graph.EvaluationContext, v float64) {
	n.set(ec, &n.bottomRadius, clampCurveRadius(v))
}

func (n *HelixCurveNode) UpdateRotations(ec *graph.EvaluationContext, v float64) {
	n.set(ec, &n.rotations, v)
}

func (n *HelixCurveNode) UpdatePitch(ec *graph.EvaluationContext, v float64) {
	n.set(ec, &n.pitch, v)
}

func (n *HelixCurveNode) set(ec *graph.EvaluationContext, field *float64, v float64) {
	if graph.Update(field, v) {
		n.invalidate(ec, n.Base)
	}
}

func (n *HelixCurveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *HelixCurveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.pointsPort:
		changed = pull(ec, conn, &n.points, clampHelixPoints)
	case n.topRadiusPort:
		changed = pull(ec, conn, &n.topRadius, clampCurveRadius)
	case n.bottomRadiusPort:
		changed = pull(ec, conn, &n.bottomRadius, clampCurveRadius)
	case n.rotationsPort:
		changed = pull(ec, conn, &n.rotations)
	case n.pitchPort:
		changed = pull(ec, conn, &n.pitch)
	}
	if changed {
		n.invalidate(ec, n.Base)
	}
}

func (n *HelixCurveNode) CustomData() (string, error) {
	return encodeSettings(n.points, n.topRadius, n.bottomRadius, n.rotations, n.pitch)
}

func (n *HelixCurveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.points, &n.topRadius, &n.bottomRadius, &n.rotations, &n.pitch); err != nil {
		return err
	}
	n.points = clampHelixPoints(n.points)
	n.invalidate(ec, n.Base)
	return nil
}

// TransformCurveNode moves a curve by translation, Euler rotation (degrees)
// and scale. With ChangeClosed set, the IsClosed input overrides the
// curve's closed flag.
type TransformCurveNode struct {
	*graph.Base
	curveResult
	input                        *curve.Data
	translation, rotation, scale vmath.Vec3
	closed, changeClosed         bool

	inputPort, translationPort, rotationPort, scalePort, closedPort *graph.Port
}

func NewTransformCurveNode(id graph.NodeID) *TransformCurveNode {
	n := &TransformCurveNode{
		Base:  graph.NewBase(id, TypeTransformCurve),
		input: curve.Empty(),
		scale: vmath.One3,
	}
	n.inputPort = n.AddPort("Input", graph.PortCurve, graph.Input)
	n.translationPort = n.AddPort("Translation", graph.PortVector, graph.Input)
	n.rotationPort = n.AddPort("Rotation", graph.PortVector, graph.Input)
	n.scalePort = n.AddPort("Scale", graph.PortVector, graph.Input)
	n.closedPort = n.AddPort("IsClosed", graph.PortBoolean, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortCurve, graph.Output)
	return n
}

func (n *TransformCurveNode) calculate() {
	if n.input.IsEmpty() {
		n.result = curve.Empty()
		return
	}
	n.result = curve.Transform(n.input, n.translation, n.rotation, n.scale)
	if n.changeClosed {
		n.result.Closed = n.closed
	}
}

func (n *TransformCurveNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *TransformCurveNode) UpdateTranslation(ec *graph.EvaluationContext, v vmath.Vec3) {
	n.set(ec, &n.translation, v)
}

func (n *TransformCurveNode) UpdateRotation(ec *graph.EvaluationContext, v vmath.Vec3) {
	n.set(ec, &n.rotation, v)
}

func (n *TransformCurveNode) UpdateScale(ec *graph.EvaluationContext, v vmath.Vec3) {
	n.set(ec, &n.scale, v)
}

func (n *TransformCurveNode) set(ec *graph.EvaluationContext, field *vmath.Vec3, v vmath.Vec3) {
	if graph.Update(field, v) {
		n.changed(ec)
	}
}

func (n *TransformCurveNode) UpdateClosed(ec *graph.EvaluationContext, v bool) {
	if graph.Update(&n.closed, v) {
		n.changed(ec)
	}
}

func (n *TransformCurveNode) UpdateChangeClosed(ec *graph.EvaluationContext, v bool) {
	if graph.Update(&n.changeClosed, v) {
		n.changed(ec)
	}
}

func (n *TransformCurveNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *TransformCurveNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.inputPort:
		n.input = curveInput(ec, conn)
		changed = true
	case n.translationPort:
		changed = pull(ec, conn, &n.translation)
	case n.rotationPort:
		changed = pull(ec, conn, &n.rotation)
	case n.scalePort:
		changed = pull(ec, conn, &n.scale)
	case n.closedPort:
		changed = pull(ec, conn, &n.closed)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *TransformCurveNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port != n.inputPort {
		return
	}
	n.input = curve.Empty()
	n.result = curve.Empty()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *TransformCurveNode) CustomData() (string, error) {
	return encodeSettings(n.translation, n.rotation, n.scale, n.closed, n.changeClosed)
}

func (n *TransformCurveNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	if err := decodeSettings(data, &n.translation, &n.rotation, &n.scale, &n.closed, &n.changeClosed); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}

// CurveToPointsNode converts a curve into a point cloud carrying the curve
// frame as vertex attributes.
type CurveToPointsNode struct {
	*graph.Base
	geometryResult
	input *curve.Data

	inputPort *graph.Port
}

func NewCurveToPointsNode(id graph.NodeID) *CurveToPointsNode {
	n := &CurveToPointsNode{Base: graph.NewBase(id, TypeCurveToPoints), input: curve.Empty()}
	n.inputPort = n.AddPort("Curve", graph.PortCurve, graph.Input)
	n.resultPort = n.AddPort("Points", graph.PortGeometry, graph.Output)
	return n
}

func (n *CurveToPointsNode) calculate() {
	n.result = curve.ToPoints(n.input)
}

func (n *CurveToPointsNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *CurveToPointsNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	if port != n.inputPort {
		return
	}
	n.input = curveInput(ec, conn)
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *CurveToPointsNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	if port != n.inputPort {
		return
	}
	n.input = curve.Empty()
	n.result = geometry.Empty()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

// CurveToGeometryNode sweeps Profile along Source. Without a profile the
// result is the source's point cloud.
type CurveToGeometryNode struct {
	*graph.Base
	geometryResult
	source, profile *curve.Data
	settings        curve.SweepSettings

	sourcePort, profilePort, rotationPort, incrementalRotationPort *graph.Port
}

func NewCurveToGeometryNode(id graph.NodeID) *CurveToGeometryNode {
	n := &CurveToGeometryNode{
		Base:     graph.NewBase(id, TypeCurveToGeometry),
		source:   curve.Empty(),
		profile:  curve.Empty(),
		settings: curve.SweepSettings{CapUVType: curve.CapUVWorld},
	}
	n.sourcePort = n.AddPort("Source", graph.PortCurve, graph.Input)
	n.profilePort = n.AddPort("Profile", graph.PortCurve, graph.Input)
	n.rotationPort = n.AddPort("RotationOffset", graph.PortFloat, graph.Input)
	n.incrementalRotationPort = n.AddPort("IncrementalRotationOffset", graph.PortFloat, graph.Input)
	n.resultPort = n.AddPort("Result", graph.PortGeometry, graph.Output)
	return n
}

func (n *CurveToGeometryNode) Settings() curve.SweepSettings { return n.settings }

func (n *CurveToGeometryNode) calculate() {
	n.result = curve.Sweep(n.source, n.profile, n.settings)
}

func (n *CurveToGeometryNode) changed(ec *graph.EvaluationContext) {
	n.calculate()
	n.NotifyPortValueChanged(ec, n.resultPort)
}

func (n *CurveToGeometryNode) UpdateRotationOffset(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.settings.RotationOffset, v) {
		n.changed(ec)
	}
}

func (n *CurveToGeometryNode) UpdateIncrementalRotationOffset(ec *graph.EvaluationContext, v float64) {
	if graph.Update(&n.settings.IncrementalRotationOffset, v) {
		n.changed(ec)
	}
}

func (n *CurveToGeometryNode) UpdateCloseCaps(ec *graph.EvaluationContext, v bool) {
	n.setFlag(ec, &n.settings.CloseCaps, v)
}

func (n *CurveToGeometryNode) UpdateSeparateMaterialForCaps(ec *graph.EvaluationContext, v bool) {
	n.setFlag(ec, &n.settings.SeparateMaterialForCaps, v)
}

func (n *CurveToGeometryNode) UpdateShadeSmoothCurve(ec *graph.EvaluationContext, v bool) {
	n.setFlag(ec, &n.settings.ShadeSmoothCurve, v)
}

func (n *CurveToGeometryNode) UpdateShadeSmoothCaps(ec *graph.EvaluationContext, v bool) {
	n.setFlag(ec, &n.settings.ShadeSmoothCaps, v)
}

func (n *CurveToGeometryNode) setFlag(ec *graph.EvaluationContext, field *bool, v bool) {
	if graph.Update(field, v) {
		n.changed(ec)
	}
}

func (n *CurveToGeometryNode) UpdateCapUVType(ec *graph.EvaluationContext, t curve.CapUVType) {
	if graph.Update(&n.settings.CapUVType, t) {
		n.changed(ec)
	}
}

func (n *CurveToGeometryNode) GetValueForPort(_ *graph.EvaluationContext, port *graph.Port) any {
	return n.get(port, n.calculate)
}

func (n *CurveToGeometryNode) OnPortValueChanged(ec *graph.EvaluationContext, conn *graph.Connection, port *graph.Port) {
	var changed bool
	switch port {
	case n.sourcePort:
		n.source = curveInput(ec, conn)
		changed = true
	case n.profilePort:
		n.profile = curveInput(ec, conn)
		changed = true
	case n.rotationPort:
		changed = pull(ec, conn, &n.settings.RotationOffset)
	case n.incrementalRotationPort:
		changed = pull(ec, conn, &n.settings.IncrementalRotationOffset)
	}
	if changed {
		n.changed(ec)
	}
}

func (n *CurveToGeometryNode) OnConnectionRemoved(ec *graph.EvaluationContext, _ *graph.Connection, port *graph.Port) {
	switch port {
	case n.sourcePort:
		n.source = curve.Empty()
	case n.profilePort:
		n.profile = curve.Empty()
	default:
		return
	}
	n.changed(ec)
}

func (n *CurveToGeometryNode) CustomData() (string, error) {
	s := n.settings
	return encodeSettings(s.RotationOffset, s.IncrementalRotationOffset,
		s.CloseCaps, s.SeparateMaterialForCaps, s.ShadeSmoothCurve, s.ShadeSmoothCaps, s.CapUVType)
}

func (n *CurveToGeometryNode) SetCustomData(ec *graph.EvaluationContext, data string) error {
	s := &n.settings
	if err := decodeSettings(data, &s.RotationOffset, &s.IncrementalRotationOffset,
		&s.CloseCaps, &s.SeparateMaterialForCaps, &s.ShadeSmoothCurve, &s.ShadeSmoothCaps, &s.CapUVType); err != nil {
		return err
	}
	n.changed(ec)
	return nil
}
