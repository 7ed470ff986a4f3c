package mesh

import (
	"testing"

	"github.com/banshee-data/mesh.report/internal/geom"
)

// quad is two triangles sharing the edge 1-2.
func quad() ([]geom.Vec3, [][3]int) {
	positions := []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
	}
	faces := [][3]int{
		{0, 1, 2},
		{1, 3, 2},
	}
	return positions, faces
}

func TestBuild_DropsDuplicateFaces(t *testing.T) {
	positions := []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
	}
	faces := [][3]int{
		{0, 1, 2},
		{1, 2, 0}, // rotation of face 0
		{1, 3, 2},
		{2, 3, 1}, // reversal of face 2
	}

	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.LiveFaceCount() != 2 {
		t.Errorf("LiveFaceCount = %d, want 2", m.LiveFaceCount())
	}
	if !m.FaceAlive[0] || !m.FaceAlive[2] {
		t.Error("first occurrences should stay alive")
	}
	if m.FaceAlive[1] || m.FaceAlive[3] {
		t.Error("repeated vertex sets should enter dead")
	}
	if _, ok := m.VertexFaces[0][1]; ok {
		t.Error("dead duplicate listed in VertexFaces")
	}
}

func TestBuild_Validation(t *testing.T) {
	positions, faces := quad()

	if _, err := Build(nil, faces); err == nil {
		t.Error("expected error for empty positions")
	}
	if _, err := Build(positions, nil); err == nil {
		t.Error("expected error for empty faces")
	}
	if _, err := Build(positions, [][3]int{{0, 1, 4}}); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := Build(positions, [][3]int{{0, 1, -1}}); err == nil {
		t.Error("expected error for negative index")
	}
	if _, err := Build(positions, [][3]int{{0, 1, 1}}); err == nil {
		t.Error("expected error for repeated index")
	}
}

func TestBuild_Adjacency(t *testing.T) {
	positions, faces := quad()
	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := m.LiveVertexCount(); got != 4 {
		t.Errorf("LiveVertexCount = %d, want 4", got)
	}
	if got := m.LiveFaceCount(); got != 2 {
		t.Errorf("LiveFaceCount = %d, want 2", got)
	}

	wantNeighbors := map[int][]int{
		0: {1, 2},
		1: {0, 2, 3},
		2: {0, 1, 3},
		3: {1, 2},
	}
	for v, want := range wantNeighbors {
		got := m.Neighbors(v)
		if len(got) != len(want) {
			t.Fatalf("Neighbors(%d) = %v, want %v", v, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("Neighbors(%d) = %v, want %v", v, got, want)
				break
			}
		}
	}

	if len(m.VertexFaces[1]) != 2 {
		t.Errorf("vertex 1 incident faces = %d, want 2", len(m.VertexFaces[1]))
	}
	if len(m.VertexFaces[0]) != 1 {
		t.Errorf("vertex 0 incident faces = %d, want 1", len(m.VertexFaces[0]))
	}
}

func TestMerge_RemovesDegenerateFaces(t *testing.T) {
	positions, faces := quad()
	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Collapsing the shared edge 1-2 degenerates both triangles.
	affected := m.Merge(1, 2, geom.Vec3{X: 0.5, Y: 0.5, Z: 0})

	if m.VertexAlive[2] {
		t.Error("vertex 2 should be dead after merge")
	}
	if got := m.LiveVertexCount(); got != 3 {
		t.Errorf("LiveVertexCount = %d, want 3", got)
	}
	if got := m.LiveFaceCount(); got != 0 {
		t.Errorf("LiveFaceCount = %d, want 0", got)
	}
	if m.Positions[1] != (geom.Vec3{X: 0.5, Y: 0.5, Z: 0}) {
		t.Errorf("survivor position = %v, want {0.5 0.5 0}", m.Positions[1])
	}
	// 0 and 3 remain adjacent to the survivor.
	if len(affected) != 2 || affected[0] != 0 || affected[1] != 3 {
		t.Errorf("affected = %v, want [0 3]", affected)
	}
}

func TestMerge_ReassignsFaces(t *testing.T) {
	// A strip of two triangles joined only at vertex 2.
	positions := []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 1},
		{X: 3, Y: 0, Z: 0},
		{X: 4, Y: 0, Z: 0},
	}
	faces := [][3]int{
		{0, 1, 2},
		{2, 3, 4},
	}
	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// 0 and 4 share no face; both triangles survive with 4 rewritten to 0.
	m.Merge(0, 4, geom.Vec3{X: 2, Y: 0, Z: -1})

	if got := m.LiveFaceCount(); got != 2 {
		t.Errorf("LiveFaceCount = %d, want 2", got)
	}
	if m.Faces[1] != [3]int{2, 3, 0} {
		t.Errorf("face 1 = %v, want [2 3 0]", m.Faces[1])
	}
	if _, ok := m.VertexFaces[0][1]; !ok {
		t.Error("face 1 missing from survivor's incident set")
	}
}

func TestMerge_FoldedQuadPurgesMirroredFace(t *testing.T) {
	// Merging across the diagonal folds both triangles onto the same
	// vertex set; exactly one survives.
	positions, faces := quad()
	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	m.Merge(0, 3, geom.Vec3{X: 0.5, Y: 0.5, Z: 0})

	if got := m.LiveFaceCount(); got != 1 {
		t.Errorf("LiveFaceCount = %d, want 1", got)
	}
}

func TestMerge_PurgesDuplicateFaces(t *testing.T) {
	// Faces (0,1,2) and (3,1,2) collapse onto the same vertex set when 3
	// merges into 0; exactly one must survive.
	positions := []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	faces := [][3]int{
		{0, 1, 2},
		{3, 1, 2},
	}
	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	m.Merge(0, 3, geom.Vec3{X: 0, Y: 0, Z: 0.5})

	if got := m.LiveFaceCount(); got != 1 {
		t.Errorf("LiveFaceCount = %d, want 1", got)
	}
	_, newPositionsFaces := m.Compact()
	if len(newPositionsFaces) != 1 {
		t.Fatalf("compacted faces = %v, want a single face", newPositionsFaces)
	}
}

func TestValidPair_RejectsFlippedOrientation(t *testing.T) {
	positions, faces := quad()
	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Moving vertex 0 across the shared edge reverses face (0,1,2) while
	// face (1,3,2) is untouched by the pair (0,3) only through vertex 3.
	if m.ValidPair(0, 3, geom.Vec3{X: 2, Y: 2, Z: 0}) {
		t.Error("expected flip rejection for a merge crossing the shared edge")
	}

	// The midpoint of the quad keeps both orientations.
	if !m.ValidPair(0, 3, geom.Vec3{X: 0.5, Y: 0.5, Z: 0}) {
		t.Error("expected interior merge position to be valid")
	}
}

func TestValidPair_IgnoresRemovedFaces(t *testing.T) {
	positions, faces := quad()
	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Both faces contain the edge 1-2 and would be removed by the merge,
	// so no orientation survives to reject.
	if !m.ValidPair(1, 2, geom.Vec3{X: 10, Y: 10, Z: 10}) {
		t.Error("expected pair removing all incident faces to be valid")
	}
}

func TestCompact_DenseReindex(t *testing.T) {
	positions, faces := quad()
	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m.Merge(1, 2, geom.Vec3{X: 0.5, Y: 0.5, Z: 0})

	newPositions, newFaces := m.Compact()
	if len(newPositions) != 3 {
		t.Fatalf("compacted vertices = %d, want 3", len(newPositions))
	}
	if len(newFaces) != 0 {
		t.Fatalf("compacted faces = %d, want 0", len(newFaces))
	}
	// Survivors keep input order: 0, 1, 3.
	if newPositions[0] != positions[0] || newPositions[2] != positions[3] {
		t.Errorf("compacted positions out of order: %v", newPositions)
	}
}

func TestCompact_Identity(t *testing.T) {
	positions, faces := quad()
	m, err := Build(positions, faces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	newPositions, newFaces := m.Compact()
	if len(newPositions) != len(positions) || len(newFaces) != len(faces) {
		t.Fatalf("identity compact changed sizes: %d vertices, %d faces", len(newPositions), len(newFaces))
	}
	for i := range newFaces {
		if newFaces[i] != faces[i] {
			t.Errorf("face %d = %v, want %v", i, newFaces[i], faces[i])
		}
	}
}
