// Command meshinfo prints summary statistics for an OBJ mesh: vertex
// and face counts, bounding box, and mean edge length. Useful for
// picking decimation targets and clustering thresholds.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/banshee-data/mesh.report/internal/geom"
	"github.com/banshee-data/mesh.report/internal/meshio"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: meshinfo <mesh.obj>")
	}

	positions, faces, err := meshio.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("load mesh: %v", err)
	}

	lo := geom.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := geom.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range positions {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		lo.Z = math.Min(lo.Z, p.Z)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
		hi.Z = math.Max(hi.Z, p.Z)
	}

	var edgeSum float64
	var edgeCount int
	for _, f := range faces {
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			if a < b { // count each edge once per face orientation
				edgeSum += positions[a].Dist(positions[b])
				edgeCount++
			}
		}
	}

	fmt.Printf("vertices: %d\n", len(positions))
	fmt.Printf("faces:    %d\n", len(faces))
	fmt.Printf("bbox min: (%g, %g, %g)\n", lo.X, lo.Y, lo.Z)
	fmt.Printf("bbox max: (%g, %g, %g)\n", hi.X, hi.Y, hi.Z)
	if edgeCount > 0 {
		fmt.Printf("mean edge length: %g\n", edgeSum/float64(edgeCount))
	}
}
