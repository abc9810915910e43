package tessellate_test

import (
	"math"
	"testing"

	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/instance"
	"github.com/chazu/geograph/pkg/tessellate"
	"github.com/chazu/geograph/pkg/vmath"
)

// place returns a unit-scale transform at the given translation.
func place(x, y, z float64) instance.Transform {
	return instance.Transform{Translation: vmath.Vec3{X: x, Y: y, Z: z}, Scale: vmath.One3}
}

func TestRealizeEmpty(t *testing.T) {
	out := tessellate.Realize(instance.Empty(), instance.Identity)
	if !out.IsEmpty() {
		t.Errorf("expected empty geometry, got %d vertices", out.VertexCount())
	}
	out = tessellate.Realize(nil, instance.Identity)
	if !out.IsEmpty() {
		t.Error("nil instances should realize to empty geometry")
	}
}

func TestRealizeSinglePrototype(t *testing.T) {
	cube := geometry.Cube(vmath.One3)
	inst := instance.Single(cube, []instance.Transform{place(0, 0, 0), place(10, 0, 0), place(0, 0, 20)})

	out := tessellate.Realize(inst, instance.Identity)
	if got, want := out.VertexCount(), 3*cube.VertexCount(); got != want {
		t.Fatalf("vertices: got %d, want %d", got, want)
	}
	if got, want := out.FaceCount(), 3*cube.FaceCount(); got != want {
		t.Errorf("faces: got %d, want %d", got, want)
	}
	if got := out.SubmeshCount(); got != 3 {
		t.Errorf("submeshes: got %d, want 3", got)
	}

	box := out.BoundingBox()
	if math.Abs(box.Max.X-10.5) > 1e-9 {
		t.Errorf("max x = %f, want 10.5", box.Max.X)
	}
	if math.Abs(box.Max.Z-20.5) > 1e-9 {
		t.Errorf("max z = %f, want 20.5", box.Max.Z)
	}

	// The prototype is not modified by realization.
	if b := cube.BoundingBox(); math.Abs(b.Max.X-0.5) > 1e-9 {
		t.Errorf("prototype moved: max x = %f", b.Max.X)
	}
}

func TestRealizeRootTransform(t *testing.T) {
	inst := instance.Single(geometry.Cube(vmath.One3), []instance.Transform{place(1, 0, 0)})
	root := instance.Transform{Translation: vmath.Vec3{Y: 5}, Scale: vmath.Vec3{X: 2, Y: 2, Z: 2}}

	out := tessellate.Realize(inst, root)
	box := out.BoundingBox()
	// root scale applies to the instance translation: x in [1, 3], y in [4, 6].
	if math.Abs(box.Min.X-1) > 1e-9 || math.Abs(box.Max.X-3) > 1e-9 {
		t.Errorf("x range = [%f, %f], want [1, 3]", box.Min.X, box.Max.X)
	}
	if math.Abs(box.Min.Y-4) > 1e-9 || math.Abs(box.Max.Y-6) > 1e-9 {
		t.Errorf("y range = [%f, %f], want [4, 6]", box.Min.Y, box.Max.Y)
	}
}

func TestRealizeSeveralPrototypes(t *testing.T) {
	cube := geometry.Cube(vmath.One3)
	ico := geometry.Icosahedron()
	inst := instance.New(
		[]*geometry.Data{cube, geometry.Empty(), ico},
		[][]instance.Transform{{place(0, 0, 0)}, {place(1, 1, 1)}, {place(5, 0, 0), place(-5, 0, 0)}},
	)

	out := tessellate.Realize(inst, instance.Identity)
	want := cube.VertexCount() + 2*ico.VertexCount()
	if got := out.VertexCount(); got != want {
		t.Errorf("vertices: got %d, want %d", got, want)
	}
}

func TestRealizeAll(t *testing.T) {
	plain := geometry.Plane(vmath.One2, 0)
	inst := instance.Single(geometry.Cube(vmath.One3), []instance.Transform{place(0, 3, 0)})

	out := tessellate.RealizeAll([]*geometry.Data{plain}, inst, instance.Empty())
	if got, want := out.VertexCount(), plain.VertexCount()+8; got != want {
		t.Errorf("vertices: got %d, want %d", got, want)
	}
}
