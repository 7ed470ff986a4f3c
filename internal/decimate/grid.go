package decimate

import (
	"math"
	"sort"

	"github.com/banshee-data/mesh.report/internal/geom"
)

// gridIndex provides near-neighbour queries over vertex positions using a
// regular 3D grid. Cell size matches the clustering threshold so every
// pair within the threshold sits in adjacent cells.
type gridIndex struct {
	cellSize float64
	cells    map[[3]int64][]int
}

func newGridIndex(cellSize float64) *gridIndex {
	return &gridIndex{
		cellSize: cellSize,
		cells:    make(map[[3]int64][]int),
	}
}

func (g *gridIndex) cellOf(p geom.Vec3) [3]int64 {
	return [3]int64{
		int64(math.Floor(p.X / g.cellSize)),
		int64(math.Floor(p.Y / g.cellSize)),
		int64(math.Floor(p.Z / g.cellSize)),
	}
}

func (g *gridIndex) insert(idx int, p geom.Vec3) {
	c := g.cellOf(p)
	g.cells[c] = append(g.cells[c], idx)
}

// near returns the indices within radius of p, searching the 3x3x3 cell
// neighbourhood. Results are sorted ascending so candidate generation
// stays deterministic. Distances are measured against current positions,
// not the positions at insertion time, and an index listed in more than
// one scanned cell is reported once.
func (g *gridIndex) near(p geom.Vec3, radius float64, positions []geom.Vec3, alive []bool) []int {
	c := g.cellOf(p)
	r2 := radius * radius
	var out []int
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				cell := [3]int64{c[0] + dx, c[1] + dy, c[2] + dz}
				for _, idx := range g.cells[cell] {
					if !alive[idx] {
						continue
					}
					d := positions[idx].Sub(p)
					if d.Dot(d) <= r2 {
						out = append(out, idx)
					}
				}
			}
		}
	}
	sort.Ints(out)
	dedup := out[:0]
	for i, idx := range out {
		if i == 0 || idx != out[i-1] {
			dedup = append(dedup, idx)
		}
	}
	return dedup
}
