// Package mesh implements the connectivity store for the decimation core:
// vertex/face liveness, incident-face and adjacency sets, the vertex merge
// primitive, the orientation-flip validity check, and the final dense
// compaction of surviving geometry.
//
// A Mesh is owned by a single simplification call. Collapses only remove
// vertices and faces, never add them, so liveness is monotonically
// decreasing over the life of the mesh.
package mesh

import (
	"fmt"
	"sort"

	"github.com/banshee-data/mesh.report/internal/geom"
)

// Mesh holds the live vertices and faces of a triangulated surface along
// with the adjacency structure the collapse loop mutates.
//
// Invariants maintained across merges:
//   - every live face references three distinct live vertices
//   - no two live faces share the same vertex set
//   - VertexFaces and Adjacency are consistent with the live face list
type Mesh struct {
	// Positions holds every vertex position ever built; dead vertices keep
	// their last position but are excluded from output by Compact.
	Positions []geom.Vec3

	// Faces holds vertex index triples. Dead faces keep their last value.
	Faces [][3]int

	// VertexAlive and FaceAlive mark which entries are still part of the
	// mesh. Slots are never reused.
	VertexAlive []bool
	FaceAlive   []bool

	// VertexFaces maps each vertex to the set of live faces incident to it.
	VertexFaces []map[int]struct{}

	// Adjacency maps each vertex to its neighbouring vertex set.
	Adjacency []map[int]struct{}

	liveVertices int
	liveFaces    int
}

// Build validates the input arrays and constructs the connectivity store.
// It fails before any state is created when a face index is out of range,
// a face repeats a vertex, or either array is empty. Faces listing the
// same vertex set as an earlier face, in any order, enter the store dead
// so only the first occurrence survives to output.
func Build(positions []geom.Vec3, faces [][3]int) (*Mesh, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("mesh has no faces")
	}
	n := len(positions)
	for i, f := range faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0,%d)", i, v, n)
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			return nil, fmt.Errorf("face %d: repeated vertex index in %v", i, f)
		}
	}

	m := &Mesh{
		Positions:    append([]geom.Vec3(nil), positions...),
		Faces:        append([][3]int(nil), faces...),
		VertexAlive:  make([]bool, n),
		FaceAlive:    make([]bool, len(faces)),
		VertexFaces:  make([]map[int]struct{}, n),
		Adjacency:    make([]map[int]struct{}, n),
		liveVertices: n,
	}
	for v := range m.VertexAlive {
		m.VertexAlive[v] = true
		m.VertexFaces[v] = make(map[int]struct{})
		m.Adjacency[v] = make(map[int]struct{})
	}
	seen := make(map[[3]int]struct{}, len(faces))
	for i, f := range m.Faces {
		key := m.faceKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		m.FaceAlive[i] = true
		m.liveFaces++
		for j, v := range f {
			m.VertexFaces[v][i] = struct{}{}
			m.Adjacency[v][f[(j+1)%3]] = struct{}{}
			m.Adjacency[v][f[(j+2)%3]] = struct{}{}
		}
	}
	return m, nil
}

// LiveVertexCount returns the number of vertices still part of the mesh.
func (m *Mesh) LiveVertexCount() int { return m.liveVertices }

// LiveFaceCount returns the number of faces still part of the mesh.
func (m *Mesh) LiveFaceCount() int { return m.liveFaces }

// Neighbors returns the live neighbours of v in ascending index order.
// The sorted order keeps downstream candidate generation deterministic.
func (m *Mesh) Neighbors(v int) []int {
	out := make([]int, 0, len(m.Adjacency[v]))
	for n := range m.Adjacency[v] {
		if m.VertexAlive[n] {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// faceNormal computes the (unnormalised) normal of face f with vertex v
// relocated to p. With v < 0 no substitution is applied.
func (m *Mesh) faceNormal(f int, v int, p geom.Vec3) geom.Vec3 {
	var pts [3]geom.Vec3
	for i, idx := range m.Faces[f] {
		if idx == v {
			pts[i] = p
		} else {
			pts[i] = m.Positions[idx]
		}
	}
	return pts[1].Sub(pts[0]).Cross(pts[2].Sub(pts[0]))
}

// killFace removes face f from the live set and from the incident-face
// sets of its vertices.
func (m *Mesh) killFace(f int) {
	if !m.FaceAlive[f] {
		return
	}
	m.FaceAlive[f] = false
	m.liveFaces--
	for _, v := range m.Faces[f] {
		delete(m.VertexFaces[v], f)
	}
}

// faceKey returns the order-independent vertex set of face f, used to
// detect duplicate faces produced by a merge.
func (m *Mesh) faceKey(f int) [3]int {
	k := m.Faces[f]
	if k[0] > k[1] {
		k[0], k[1] = k[1], k[0]
	}
	if k[1] > k[2] {
		k[1], k[2] = k[2], k[1]
	}
	if k[0] > k[1] {
		k[0], k[1] = k[1], k[0]
	}
	return k
}
