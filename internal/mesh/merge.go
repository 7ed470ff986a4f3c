package mesh

import "github.com/banshee-data/mesh.report/internal/geom"

// degenerateNormalEpsilon is the squared-magnitude threshold below which a
// face normal is too small to define an orientation.
const degenerateNormalEpsilon = 1e-24

// Merge collapses drop into keep: keep is relocated to p, every live face
// referencing drop is rewritten to reference keep, faces left with a
// repeated vertex are removed, faces left identical to another surviving
// face are removed, and drop leaves the live set. Neighbour adjacency is
// rewired to point at keep.
//
// The returned slice lists the live vertices adjacent to keep after the
// merge, in ascending order, so the caller can re-score their candidate
// pairs.
func (m *Mesh) Merge(keep, drop int, p geom.Vec3) []int {
	m.Positions[keep] = p

	// Vertex sets of keep's surviving faces, used to purge duplicates
	// introduced by the rewrite.
	seen := make(map[[3]int]struct{}, len(m.VertexFaces[keep]))
	for f := range m.VertexFaces[keep] {
		if m.Faces[f][0] == drop || m.Faces[f][1] == drop || m.Faces[f][2] == drop {
			// Shared face; handled below once rewritten.
			continue
		}
		seen[m.faceKey(f)] = struct{}{}
	}

	// Snapshot: killFace and the rewrite both mutate the incident set.
	dropFaces := make([]int, 0, len(m.VertexFaces[drop]))
	for f := range m.VertexFaces[drop] {
		dropFaces = append(dropFaces, f)
	}
	for _, f := range dropFaces {
		if !m.FaceAlive[f] {
			continue
		}
		for i, v := range m.Faces[f] {
			if v == drop {
				m.Faces[f][i] = keep
			}
		}
		t := m.Faces[f]
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			m.killFace(f)
			continue
		}
		key := m.faceKey(f)
		if _, dup := seen[key]; dup {
			m.killFace(f)
			continue
		}
		seen[key] = struct{}{}
		m.VertexFaces[keep][f] = struct{}{}
	}

	// Rewire the neighbourhood of drop onto keep.
	for n := range m.Adjacency[drop] {
		delete(m.Adjacency[n], drop)
		if n != keep && m.VertexAlive[n] {
			m.Adjacency[n][keep] = struct{}{}
			m.Adjacency[keep][n] = struct{}{}
		}
	}
	delete(m.Adjacency[keep], drop)

	m.VertexAlive[drop] = false
	m.liveVertices--
	m.VertexFaces[drop] = make(map[int]struct{})
	m.Adjacency[drop] = make(map[int]struct{})

	return m.Neighbors(keep)
}

// ValidPair reports whether merging a and b at position p preserves the
// orientation of every surviving incident face. A face whose normal would
// reverse direction (negative dot product of old and new normals) marks
// the pair invalid; such collapses fold the surface over itself. Faces
// that the merge removes outright, and faces too degenerate to orient,
// are excluded from the check.
func (m *Mesh) ValidPair(a, b int, p geom.Vec3) bool {
	return m.orientationKept(a, b, p) && m.orientationKept(b, a, p)
}

func (m *Mesh) orientationKept(v, other int, p geom.Vec3) bool {
	for f := range m.VertexFaces[v] {
		t := m.Faces[f]
		if t[0] == other || t[1] == other || t[2] == other {
			continue // becomes degenerate and is removed by the merge
		}
		old := m.faceNormal(f, -1, geom.Vec3{})
		upd := m.faceNormal(f, v, p)
		if old.Dot(old) < degenerateNormalEpsilon || upd.Dot(upd) < degenerateNormalEpsilon {
			continue
		}
		if old.Dot(upd) < 0 {
			return false
		}
	}
	return true
}
