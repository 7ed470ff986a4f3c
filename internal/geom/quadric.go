package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// quadricDetEpsilon is the determinant threshold below which the 3x3 block
// of a quadric is treated as singular and Minimize reports no solution.
const quadricDetEpsilon = 1e-12

// Quadric is a symmetric 4x4 error matrix stored as its upper triangle in
// row-major order:
//
//	[ q0 q1 q2 q3 ]
//	[ q1 q4 q5 q6 ]
//	[ q2 q5 q7 q8 ]
//	[ q3 q6 q8 q9 ]
//
// It accumulates k*k^T contributions from incident triangle planes
// k = (a, b, c, d) and evaluates the squared-distance error p^T Q p for
// homogeneous points p = (x, y, z, 1). The zero value is the zero quadric.
type Quadric [10]float64

// AddPlane accumulates the outer product k*k^T of the plane k = (A,B,C,D)
// into q. The plane must be unit-normalised (A^2+B^2+C^2 = 1).
func (q *Quadric) AddPlane(p Plane) {
	q[0] += p.A * p.A
	q[1] += p.A * p.B
	q[2] += p.A * p.C
	q[3] += p.A * p.D
	q[4] += p.B * p.B
	q[5] += p.B * p.C
	q[6] += p.B * p.D
	q[7] += p.C * p.C
	q[8] += p.C * p.D
	q[9] += p.D * p.D
}

// Add accumulates r into q. Merging two vertices sums their quadrics; the
// merged error matrix is never re-derived from faces.
func (q *Quadric) Add(r Quadric) {
	for i := range q {
		q[i] += r[i]
	}
}

// IsZero reports whether q has accumulated no plane contributions.
func (q Quadric) IsZero() bool {
	for _, v := range q {
		if v != 0 {
			return false
		}
	}
	return true
}

// Error evaluates p^T Q p for the homogeneous point (v.X, v.Y, v.Z, 1).
// Rounding can drive the quadratic form slightly negative near its
// minimum; callers treat the result as a squared error, so negative
// artifacts are clamped to zero.
func (q Quadric) Error(v Vec3) float64 {
	e := q[0]*v.X*v.X + 2*q[1]*v.X*v.Y + 2*q[2]*v.X*v.Z + 2*q[3]*v.X +
		q[4]*v.Y*v.Y + 2*q[5]*v.Y*v.Z + 2*q[6]*v.Y +
		q[7]*v.Z*v.Z + 2*q[8]*v.Z + q[9]
	if e < 0 {
		return 0
	}
	return e
}

// Minimize solves for the position minimising p^T Q p: the stationary point
// of the quadratic form, found by solving the top-left 3x3 block of Q
// against the negated top-right column. Returns false when the block is
// singular or ill-conditioned (determinant magnitude below epsilon), in
// which case the caller falls back to the midpoint or an endpoint.
func (q Quadric) Minimize() (Vec3, bool) {
	a := mat.NewSymDense(3, []float64{
		q[0], q[1], q[2],
		q[1], q[4], q[5],
		q[2], q[5], q[7],
	})
	if math.Abs(mat.Det(a)) < quadricDetEpsilon {
		return Vec3{}, false
	}
	b := mat.NewVecDense(3, []float64{-q[3], -q[6], -q[8]})
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Vec3{}, false
	}
	return Vec3{x.AtVec(0), x.AtVec(1), x.AtVec(2)}, true
}
