package geom

// planeAreaEpsilon is the minimum cross-product magnitude for a triangle to
// be considered non-degenerate. Triangles below this contribute no plane.
const planeAreaEpsilon = 1e-12

// Plane is a homogeneous plane equation (A, B, C, D) with unit normal,
// satisfying A*x + B*y + C*z + D = 0 for points on the plane.
type Plane struct {
	A, B, C, D float64
}

// TrianglePlane derives the unit-normalised plane through the triangle
// (p0, p1, p2) from two edge vectors via cross product. The second return
// is false for degenerate (zero-area) triangles, which have no well-defined
// plane and must contribute nothing to error quadrics.
func TrianglePlane(p0, p1, p2 Vec3) (Plane, bool) {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	norm := n.Norm()
	if norm < planeAreaEpsilon {
		return Plane{}, false
	}
	n = n.Scale(1 / norm)
	return Plane{A: n.X, B: n.Y, C: n.Z, D: -n.Dot(p0)}, true
}

// Normal returns the unit normal of the plane.
func (p Plane) Normal() Vec3 {
	return Vec3{p.A, p.B, p.C}
}

// DistanceTo returns the signed distance from point v to the plane.
func (p Plane) DistanceTo(v Vec3) float64 {
	return p.A*v.X + p.B*v.Y + p.C*v.Z + p.D
}
