// Package decimate implements quadric error metric (QEM) mesh
// simplification: per-vertex error quadrics accumulated from incident
// face planes, a cost-ordered greedy vertex-collapse loop, and an
// optional threshold clustering pass that merges near-coincident
// vertices regardless of connectivity.
//
// The engine runs a single forward pass over one in-memory mesh:
// build connectivity, cluster (when a threshold is set), collapse until
// the target vertex count is reached or no valid collapse remains, then
// compact the survivors into dense output arrays. It is strictly
// sequential; the mesh is owned by the running call and nothing persists
// across calls.
package decimate

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/banshee-data/mesh.report/internal/geom"
	"github.com/banshee-data/mesh.report/internal/mesh"
)

// Options configures a simplification run.
type Options struct {
	// Threshold enables the proximity clustering pass when positive:
	// every vertex pair within this Euclidean distance becomes a merge
	// candidate, adjacent or not. Zero disables clustering.
	Threshold float64

	// Stats, when non-nil, receives counters describing the run.
	Stats *Stats
}

// Stats reports what a simplification run did. The output counts let
// callers detect an unreachable target: OutputVertices above the
// requested count means the engine ran out of valid collapses, which is
// reported rather than treated as failure.
type Stats struct {
	InputVertices  int
	InputFaces     int
	OutputVertices int
	OutputFaces    int

	EdgeCollapses   int
	ProximityMerges int
	StaleSkips      int // heap entries discarded by generation mismatch
	InvalidSkips    int // candidates rejected by the orientation check

	Duration time.Duration
}

// Simplify reduces positions/faces to at most target vertices. Input
// arrays are not modified. The returned arrays are dense and 0-based;
// every face references three distinct live vertices. When target equals
// the input vertex count the mesh is validated and returned unchanged.
//
// Validation failures (empty arrays, out-of-range or repeated face
// indices, target outside [1, len(positions)]) return an error before
// any work is done. Running out of valid collapses above the target is
// not an error; callers inspect the returned vertex count.
func Simplify(positions []geom.Vec3, faces [][3]int, target int, opts Options) ([]geom.Vec3, [][3]int, error) {
	start := time.Now()

	if target < 1 {
		return nil, nil, fmt.Errorf("target vertex count %d: must be at least 1", target)
	}
	if target > len(positions) {
		return nil, nil, fmt.Errorf("target vertex count %d exceeds input vertex count %d", target, len(positions))
	}
	if opts.Threshold < 0 {
		return nil, nil, fmt.Errorf("threshold %v: must be non-negative", opts.Threshold)
	}

	m, err := mesh.Build(positions, faces)
	if err != nil {
		return nil, nil, err
	}

	s := &solver{
		m:        m,
		target:   target,
		quadrics: vertexQuadrics(m),
		gen:      make([]int, len(m.Positions)),
		stats:    opts.Stats,
	}
	if s.stats == nil {
		s.stats = &Stats{}
	}
	s.stats.InputVertices = len(positions)
	s.stats.InputFaces = len(faces)

	if target < m.LiveVertexCount() {
		if opts.Threshold > 0 {
			s.cluster(opts.Threshold)
		}
		s.collapse()
	}

	outPositions, outFaces := m.Compact()
	s.stats.OutputVertices = len(outPositions)
	s.stats.OutputFaces = len(outFaces)
	s.stats.Duration = time.Since(start)
	return outPositions, outFaces, nil
}

// solver holds the mutable state of one run: the connectivity store, the
// per-vertex quadrics, the per-vertex generation counters, and the
// candidate heap shared by the clustering and collapsing stages.
type solver struct {
	m        *mesh.Mesh
	target   int
	quadrics []geom.Quadric
	gen      []int
	heap     candidateHeap
	stats    *Stats
}

// push scores the pair (a, b) against the current quadrics and inserts
// it with the endpoints' current generations.
func (s *solver) push(a, b int) {
	if a > b {
		a, b = b, a
	}
	cost, pos := pairCost(s.m.Positions[a], s.m.Positions[b], s.quadrics[a], s.quadrics[b])
	heap.Push(&s.heap, candidate{
		A: a, B: b,
		Cost: cost, Pos: pos,
		GenA: s.gen[a], GenB: s.gen[b],
	})
}

// pop returns the next fresh, orientation-safe candidate, discarding
// stale entries and permanently dropping candidates that would flip a
// face at the current mesh state. ok is false once the heap is empty.
func (s *solver) pop() (candidate, bool) {
	for s.heap.Len() > 0 {
		c := heap.Pop(&s.heap).(candidate)
		if c.GenA != s.gen[c.A] || c.GenB != s.gen[c.B] {
			s.stats.StaleSkips++
			continue
		}
		if !s.m.ValidPair(c.A, c.B, c.Pos) {
			s.stats.InvalidSkips++
			continue
		}
		return c, true
	}
	return candidate{}, false
}

// apply executes the collapse: the lower index survives, the survivor
// quadric becomes the sum of the pair's quadrics, and both endpoints'
// generations advance so cached candidates invalidate. Returns the
// survivor and the vertices whose pairs need re-scoring.
func (s *solver) apply(c candidate) (int, []int) {
	keep, drop := c.A, c.B
	affected := s.m.Merge(keep, drop, c.Pos)
	s.quadrics[keep].Add(s.quadrics[drop])
	s.gen[keep]++
	s.gen[drop]++
	return keep, affected
}

// cluster is the threshold pass: every live vertex pair within threshold
// is a merge candidate, scored by the same quadric model and drained
// lowest-cost-first, bounded by the same target count. Proximity merges
// run before edge collapses; when they alone reach the target, the
// collapse stage never executes. Discovery uses a uniform grid with cell
// size equal to the threshold, so only the 27-cell neighbourhood of each
// vertex is scanned.
func (s *solver) cluster(threshold float64) {
	grid := newGridIndex(threshold)
	for v, alive := range s.m.VertexAlive {
		if alive {
			grid.insert(v, s.m.Positions[v])
		}
	}

	s.heap = s.heap[:0]
	for v, alive := range s.m.VertexAlive {
		if !alive {
			continue
		}
		for _, u := range grid.near(s.m.Positions[v], threshold, s.m.Positions, s.m.VertexAlive) {
			if u > v {
				s.push(v, u)
			}
		}
	}

	for s.m.LiveVertexCount() > s.target {
		c, ok := s.pop()
		if !ok {
			break
		}
		before := grid.cellOf(s.m.Positions[c.A])
		keep, _ := s.apply(c)
		s.stats.ProximityMerges++

		// A solved merge position can land well away from both endpoints.
		// The grid still lists the survivor under its old cell, so index
		// the new one too or later neighbourhood scans cannot see it.
		if cell := grid.cellOf(s.m.Positions[keep]); cell != before {
			grid.insert(keep, s.m.Positions[keep])
		}

		// The survivor moved; rediscover proximity candidates around its
		// new position.
		for _, u := range grid.near(s.m.Positions[keep], threshold, s.m.Positions, s.m.VertexAlive) {
			if u != keep {
				s.push(keep, u)
			}
		}
	}

	// Leftover proximity candidates do not carry into the edge stage.
	s.heap = s.heap[:0]
}

// collapse is the greedy QEM loop: seed the heap with every mesh edge,
// then repeatedly merge the cheapest valid pair and re-score the
// survivor's neighbourhood, until the target count is reached or no
// valid candidate remains (the mesh cannot shrink further without
// violating validity, and the best achieved count is returned).
func (s *solver) collapse() {
	s.heap = s.heap[:0]
	for v, alive := range s.m.VertexAlive {
		if !alive {
			continue
		}
		for _, u := range s.m.Neighbors(v) {
			if u > v {
				s.push(v, u)
			}
		}
	}

	for s.m.LiveVertexCount() > s.target {
		c, ok := s.pop()
		if !ok {
			break
		}
		keep, affected := s.apply(c)
		s.stats.EdgeCollapses++
		for _, u := range affected {
			s.push(keep, u)
		}
	}
}
