package decimate

import "github.com/banshee-data/mesh.report/internal/geom"

// candidate is one entry of the collapse priority queue: an unordered
// vertex pair (stored with A < B) with its cached cost and merge
// position, tagged with the generation of each endpoint at insertion
// time. A popped candidate whose endpoint generation no longer matches
// is stale and discarded, which keeps invalidation lazy instead of
// requiring in-heap deletion.
type candidate struct {
	A, B       int
	Cost       float64
	Pos        geom.Vec3
	GenA, GenB int
}

// candidateHeap orders candidates by ascending cost, breaking ties on
// ascending (A, B) so equal-cost collapses resolve identically across
// runs.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].Cost != h[j].Cost {
		return h[i].Cost < h[j].Cost
	}
	if h[i].A != h[j].A {
		return h[i].A < h[j].A
	}
	return h[i].B < h[j].B
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) { *h = append(*h, x.(candidate)) }

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
