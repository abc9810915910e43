package curve

import (
	"math"

	"github.com/chazu/geograph/pkg/vmath"
)

// sampler evaluates a curve frame at parameter t in [0, 1].
type sampler interface {
	position(t float64) vmath.Vec3
	frame(t float64) (tangent, normal, binormal vmath.Vec3)
}

// generate samples s at count evenly spaced parameters i/divisions.
func generate(typ Type, s sampler, count, divisions int, closed bool) *Data {
	c := &Data{
		Type:     typ,
		Points:   count,
		Closed:   closed,
		Position: make([]vmath.Vec3, count),
		Tangent:  make([]vmath.Vec3, count),
		Normal:   make([]vmath.Vec3, count),
		Binormal: make([]vmath.Vec3, count),
	}
	for i := 0; i < count; i++ {
		t := float64(i) / float64(divisions)
		c.Position[i] = s.position(t)
		c.Tangent[i], c.Normal[i], c.Binormal[i] = s.frame(t)
	}
	return c
}

// ---------------------------------------------------------------------------
// Line
// ---------------------------------------------------------------------------

type lineSampler struct {
	start, end                vmath.Vec3
	tangent, normal, binormal vmath.Vec3
}

func (l lineSampler) position(t float64) vmath.Vec3 { return vmath.Lerp3(l.start, l.end, t) }

func (l lineSampler) frame(float64) (vmath.Vec3, vmath.Vec3, vmath.Vec3) {
	return l.tangent, l.normal, l.binormal
}

// NewLine samples a straight segment with resolution+1 points. The frame is
// constant along the line.
func NewLine(resolution int, start, end vmath.Vec3) *Data {
	resolution = vmath.ClampInt(resolution, MinLineCurveResolution, MaxCurveResolution)
	tangent := vmath.NormalizeSafe(end.Sub(start), vmath.Forward)
	binormal := vmath.NormalizeSafe(tangent.Cross(vmath.Up).Cross(tangent), vmath.Up)
	normal := vmath.NormalizeSafe(binormal.Cross(tangent), vmath.Right)
	s := lineSampler{start: start, end: end, tangent: tangent, normal: normal, binormal: binormal}
	return generate(Line, s, resolution+1, resolution, false)
}

// ---------------------------------------------------------------------------
// Circle
// ---------------------------------------------------------------------------

type circleSampler struct{ radius float64 }

func (c circleSampler) position(t float64) vmath.Vec3 {
	s, co := math.Sincos(2 * math.Pi * t)
	return vmath.Vec3{X: c.radius * co, Z: c.radius * s}
}

func (c circleSampler) frame(t float64) (vmath.Vec3, vmath.Vec3, vmath.Vec3) {
	s, co := math.Sincos(2 * math.Pi * t)
	tangent := vmath.Vec3{X: -s, Z: co}
	normal := vmath.Vec3{X: tangent.Z, Z: -tangent.X}
	return tangent, normal, vmath.Up
}

// NewCircle samples a closed circle of the given radius in the XZ plane with
// resolution points. Normals point outward and binormals up.
func NewCircle(resolution int, radius float64) *Data {
	resolution = vmath.ClampInt(resolution, MinCircleCurveResolution, MaxCurveResolution)
	radius = vmath.MinClamped(radius, MinCircularCurveRadius)
	return generate(Circle, circleSampler{radius: radius}, resolution, resolution, true)
}

// ---------------------------------------------------------------------------
// Bezier
// ---------------------------------------------------------------------------

type quadraticSampler struct{ start, control, end vmath.Vec3 }

func (q quadraticSampler) position(t float64) vmath.Vec3 {
	a := (1 - t) * (1 - t)
	b := t * t
	return q.control.Add(q.start.Sub(q.control).MulScalar(a)).Add(q.end.Sub(q.control).MulScalar(b))
}

func (q quadraticSampler) frame(t float64) (vmath.Vec3, vmath.Vec3, vmath.Vec3) {
	d1 := q.control.Sub(q.start).MulScalar(2 * (1 - t)).Add(q.end.Sub(q.control).MulScalar(2 * t))
	d2 := q.end.Sub(q.control.MulScalar(2)).Add(q.start).MulScalar(2)
	return bezierFrame(d1, d2)
}

type cubicSampler struct{ start, controlA, controlB, end vmath.Vec3 }

func (c cubicSampler) position(t float64) vmath.Vec3 {
	u := 1 - t
	return c.start.MulScalar(u * u * u).
		Add(c.controlA.MulScalar(3 * u * u * t)).
		Add(c.controlB.MulScalar(3 * u * t * t)).
		Add(c.end.MulScalar(t * t * t))
}

func (c cubicSampler) frame(t float64) (vmath.Vec3, vmath.Vec3, vmath.Vec3) {
	u := 1 - t
	d1 := c.controlA.Sub(c.start).MulScalar(3 * u * u).
		Add(c.controlB.Sub(c.controlA).MulScalar(6 * u * t)).
		Add(c.end.Sub(c.controlB).MulScalar(3 * t * t))
	d2 := c.controlB.Sub(c.controlA.MulScalar(2)).Add(c.start).MulScalar(6 * u).
		Add(c.end.Sub(c.controlB.MulScalar(2)).Add(c.controlA).MulScalar(6 * t))
	return bezierFrame(d1, d2)
}

// bezierFrame builds the frame from the first and second derivatives. The
// stored normal is the Frenet binormal and the stored binormal is
// tangent x normal.
func bezierFrame(d1, d2 vmath.Vec3) (vmath.Vec3, vmath.Vec3, vmath.Vec3) {
	tangent := vmath.NormalizeSafe(d1, vmath.Forward)
	curvature := vmath.NormalizeSafe(d2, vmath.Right)
	b := vmath.NormalizeSafe(tangent.Cross(curvature), vmath.Up)
	return tangent, b, tangent.Cross(b)
}

// NewQuadraticBezier samples a quadratic Bezier curve with resolution+1 points.
func NewQuadraticBezier(resolution int, closed bool, start, control, end vmath.Vec3) *Data {
	resolution = vmath.ClampInt(resolution, MinBezierCurveResolution, MaxCurveResolution)
	s := quadraticSampler{start: start, control: control, end: end}
	return generate(QuadraticBezier, s, resolution+1, resolution, closed)
}

// NewCubicBezier samples a cubic Bezier curve with resolution+1 points.
func NewCubicBezier(resolution int, closed bool, start, controlA, controlB, end vmath.Vec3) *Data {
	resolution = vmath.ClampInt(resolution, MinBezierCurveResolution, MaxCurveResolution)
	s := cubicSampler{start: start, controlA: controlA, controlB: controlB, end: end}
	return generate(CubicBezier, s, resolution+1, resolution, closed)
}

// ---------------------------------------------------------------------------
// Helix
// ---------------------------------------------------------------------------

type helixSampler struct {
	angle                   float64
	rise                    float64
	bottomRadius, topRadius float64
}

func (h helixSampler) at(t float64) (radius, sin, cos, a float64) {
	a = t * h.angle
	sin, cos = math.Sincos(a)
	return vmath.Lerp(h.bottomRadius, h.topRadius, t), sin, cos, a
}

func (h helixSampler) position(t float64) vmath.Vec3 {
	r, s, c, a := h.at(t)
	return vmath.Vec3{X: r * c, Y: h.rise * a, Z: r * s}
}

func (h helixSampler) frame(t float64) (vmath.Vec3, vmath.Vec3, vmath.Vec3) {
	r, s, c, _ := h.at(t)
	tangent := vmath.NormalizeSafe(vmath.Vec3{X: -r * s, Y: h.rise, Z: r * c}, vmath.Forward)
	normal := vmath.NormalizeSafe(vmath.Vec3{X: r * c, Z: r * s}, vmath.Right)
	return tangent, normal, tangent.Cross(normal)
}

// NewHelix samples a helix winding rotations times around +Y, rising pitch
// per rotation, with resolution+1 points. The radius goes linearly from
// bottomRadius to topRadius.
func NewHelix(resolution int, rotations, pitch, topRadius, bottomRadius float64) *Data {
	resolution = vmath.ClampInt(resolution, MinHelixCurveResolution, MaxCurveResolution)
	s := helixSampler{
		angle:        rotations * 2 * math.Pi,
		rise:         pitch / (2 * math.Pi),
		topRadius:    vmath.MinClamped(topRadius, MinCircularCurveRadius),
		bottomRadius: vmath.MinClamped(bottomRadius, MinCircularCurveRadius),
	}
	return generate(Helix, s, resolution+1, resolution, false)
}
