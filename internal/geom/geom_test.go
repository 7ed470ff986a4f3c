package geom

import (
	"math"
	"testing"
)

const testEpsilon = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestVec3_Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, want {5 7 9}", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v, want {3 3 3}", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Mid(b); got != (Vec3{2.5, 3.5, 4.5}) {
		t.Errorf("Mid = %v, want {2.5 3.5 4.5}", got)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	if got := x.Cross(y); got != (Vec3{0, 0, 1}) {
		t.Errorf("x cross y = %v, want {0 0 1}", got)
	}
	// Anti-commutative
	if got := y.Cross(x); got != (Vec3{0, 0, -1}) {
		t.Errorf("y cross x = %v, want {0 0 -1}", got)
	}
}

func TestTrianglePlane_UnitNormal(t *testing.T) {
	p, ok := TrianglePlane(Vec3{0, 0, 1}, Vec3{1, 0, 1}, Vec3{0, 1, 1})
	if !ok {
		t.Fatal("expected valid plane")
	}
	if !vecNear(p.Normal(), Vec3{0, 0, 1}, testEpsilon) {
		t.Errorf("normal = %v, want {0 0 1}", p.Normal())
	}
	if math.Abs(p.D-(-1)) > testEpsilon {
		t.Errorf("D = %v, want -1", p.D)
	}
	// Points on the plane have zero distance.
	if d := p.DistanceTo(Vec3{5, -3, 1}); math.Abs(d) > testEpsilon {
		t.Errorf("distance on plane = %v, want 0", d)
	}
	if d := p.DistanceTo(Vec3{0, 0, 3}); math.Abs(d-2) > testEpsilon {
		t.Errorf("distance above plane = %v, want 2", d)
	}
}

func TestTrianglePlane_Degenerate(t *testing.T) {
	// Collinear points span no plane.
	if _, ok := TrianglePlane(Vec3{0, 0, 0}, Vec3{1, 1, 1}, Vec3{2, 2, 2}); ok {
		t.Error("expected degenerate plane for collinear triangle")
	}
	// Coincident points likewise.
	if _, ok := TrianglePlane(Vec3{1, 2, 3}, Vec3{1, 2, 3}, Vec3{4, 5, 6}); ok {
		t.Error("expected degenerate plane for coincident vertices")
	}
}

func TestQuadric_ErrorOnPlane(t *testing.T) {
	var q Quadric
	p, ok := TrianglePlane(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{0, 1, 0})
	if !ok {
		t.Fatal("expected valid plane")
	}
	q.AddPlane(p)

	// Error vanishes on the plane and equals squared distance off it.
	if e := q.Error(Vec3{0.3, 0.7, 0}); e > testEpsilon {
		t.Errorf("on-plane error = %v, want 0", e)
	}
	if e := q.Error(Vec3{0, 0, 2}); math.Abs(e-4) > testEpsilon {
		t.Errorf("off-plane error = %v, want 4", e)
	}
}

func TestQuadric_Minimize_ThreePlanes(t *testing.T) {
	// Three orthogonal planes x=1, y=2, z=3 intersect in a single point,
	// which is the unique zero of the accumulated quadric.
	var q Quadric
	q.AddPlane(Plane{A: 1, D: -1})
	q.AddPlane(Plane{B: 1, D: -2})
	q.AddPlane(Plane{C: 1, D: -3})

	p, ok := q.Minimize()
	if !ok {
		t.Fatal("expected solvable quadric")
	}
	if !vecNear(p, Vec3{1, 2, 3}, testEpsilon) {
		t.Errorf("minimum = %v, want {1 2 3}", p)
	}
	if e := q.Error(p); e > testEpsilon {
		t.Errorf("error at minimum = %v, want 0", e)
	}
}

func TestQuadric_Minimize_Singular(t *testing.T) {
	// A single plane gives a rank-1 block with no unique minimum.
	var q Quadric
	q.AddPlane(Plane{C: 1, D: 0})
	if _, ok := q.Minimize(); ok {
		t.Error("expected singular solve for rank-1 quadric")
	}

	// Two parallel planes are still rank-1.
	q.AddPlane(Plane{C: 1, D: -1})
	if _, ok := q.Minimize(); ok {
		t.Error("expected singular solve for parallel planes")
	}
}

func TestQuadric_Add(t *testing.T) {
	var a, b Quadric
	a.AddPlane(Plane{A: 1, D: -1})
	b.AddPlane(Plane{B: 1, D: -2})

	sum := a
	sum.Add(b)

	var want Quadric
	want.AddPlane(Plane{A: 1, D: -1})
	want.AddPlane(Plane{B: 1, D: -2})
	if sum != want {
		t.Errorf("Add = %v, want %v", sum, want)
	}
}

func TestQuadric_IsZero(t *testing.T) {
	var q Quadric
	if !q.IsZero() {
		t.Error("zero value should report IsZero")
	}
	q.AddPlane(Plane{A: 1})
	if q.IsZero() {
		t.Error("non-empty quadric should not report IsZero")
	}
}
