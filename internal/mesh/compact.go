package mesh

import "github.com/banshee-data/mesh.report/internal/geom"

// Compact reindexes the surviving vertices and faces into dense, 0-based
// arrays, preserving the relative order of the input. This is the
// mandatory terminal step of a simplification run: the returned arrays
// contain no gaps and no references to dead vertices.
func (m *Mesh) Compact() ([]geom.Vec3, [][3]int) {
	remap := make([]int, len(m.Positions))
	positions := make([]geom.Vec3, 0, m.liveVertices)
	for v, alive := range m.VertexAlive {
		if !alive {
			remap[v] = -1
			continue
		}
		remap[v] = len(positions)
		positions = append(positions, m.Positions[v])
	}

	faces := make([][3]int, 0, m.liveFaces)
	for f, alive := range m.FaceAlive {
		if !alive {
			continue
		}
		t := m.Faces[f]
		faces = append(faces, [3]int{remap[t[0]], remap[t[1]], remap[t[2]]})
	}
	return positions, faces
}
