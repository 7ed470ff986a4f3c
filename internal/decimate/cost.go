package decimate

import (
	"github.com/banshee-data/mesh.report/internal/geom"
	"github.com/banshee-data/mesh.report/internal/mesh"
)

// vertexQuadrics accumulates the error quadric of every live vertex from
// its incident face planes. Zero-area faces have no plane and contribute
// nothing.
func vertexQuadrics(m *mesh.Mesh) []geom.Quadric {
	quadrics := make([]geom.Quadric, len(m.Positions))
	for f, alive := range m.FaceAlive {
		if !alive {
			continue
		}
		t := m.Faces[f]
		plane, ok := geom.TrianglePlane(m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]])
		if !ok {
			continue
		}
		for _, v := range t {
			quadrics[v].AddPlane(plane)
		}
	}
	return quadrics
}

// pairCost evaluates the combined quadric Q = Qa + Qb for merging a and b
// and picks the merge position by the fallback ladder:
//
//  1. the stationary point of p^T Q p when the 3x3 block is invertible
//  2. otherwise the cheapest of the midpoint and the two endpoints
//
// Vertices with no accumulated quadric (isolated or only degenerate
// faces) are scored by squared distance to the midpoint, so coincident
// vertices still merge at zero cost.
func pairCost(pa, pb geom.Vec3, qa, qb geom.Quadric) (float64, geom.Vec3) {
	q := qa
	q.Add(qb)

	mid := pa.Mid(pb)
	if q.IsZero() {
		d := pa.Sub(mid)
		return d.Dot(d), mid
	}
	if p, ok := q.Minimize(); ok {
		return q.Error(p), p
	}
	cost, pos := q.Error(mid), mid
	if e := q.Error(pa); e < cost {
		cost, pos = e, pa
	}
	if e := q.Error(pb); e < cost {
		cost, pos = e, pb
	}
	return cost, pos
}
