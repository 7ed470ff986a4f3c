// Command decimate reduces a triangulated OBJ mesh to a target vertex
// count using quadric error metric collapse, optionally clustering
// near-coincident vertices first. Beyond the simplified OBJ it can emit
// a wireframe PNG, an interactive scatter page, and a row in the
// pipeline run log.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/banshee-data/mesh.report/internal/config"
	"github.com/banshee-data/mesh.report/internal/decimate"
	"github.com/banshee-data/mesh.report/internal/meshdb"
	"github.com/banshee-data/mesh.report/internal/meshio"
	"github.com/banshee-data/mesh.report/internal/meshplot"
	"github.com/banshee-data/mesh.report/internal/version"
)

var (
	inPath     = flag.String("in", "", "input OBJ file (required)")
	outPath    = flag.String("out", "", "output OBJ file (required)")
	target     = flag.Int("target", 0, "target vertex count (0: use config or half the input)")
	threshold  = flag.Float64("threshold", 0, "proximity clustering threshold (0 disables)")
	configPath = flag.String("config", "", "JSON tuning config; flags override its values")
	pngPath    = flag.String("png", "", "write a wireframe PNG of the result")
	htmlPath   = flag.String("html", "", "write an interactive scatter page of the result")
	dbPath     = flag.String("db", "", "record the run in this SQLite run log")
	showVer    = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()
	if *showVer {
		fmt.Printf("decimate %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}
	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.EmptyTuningConfig()
	if *configPath != "" {
		loaded, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	positions, faces, err := meshio.Load(*inPath)
	if err != nil {
		log.Fatalf("load mesh: %v", err)
	}
	slog.Info("loaded mesh", "path", *inPath, "vertices", len(positions), "faces", len(faces))

	targetCount := cfg.ResolveTarget(len(positions))
	if *target > 0 {
		targetCount = *target
	}
	thresholdValue := cfg.GetThreshold()
	if *threshold > 0 {
		thresholdValue = *threshold
	}

	var stats decimate.Stats
	newPositions, newFaces, err := decimate.Simplify(positions, faces, targetCount, decimate.Options{
		Threshold: thresholdValue,
		Stats:     &stats,
	})
	if err != nil {
		log.Fatalf("simplify: %v", err)
	}
	slog.Info("simplified mesh",
		"vertices", stats.OutputVertices,
		"faces", stats.OutputFaces,
		"edge_collapses", stats.EdgeCollapses,
		"proximity_merges", stats.ProximityMerges,
		"duration", stats.Duration)
	if stats.OutputVertices > targetCount {
		slog.Warn("target not reachable; returning best achieved count",
			"target", targetCount, "achieved", stats.OutputVertices)
	}

	if err := meshio.Save(*outPath, newPositions, newFaces); err != nil {
		log.Fatalf("save mesh: %v", err)
	}

	if path := firstNonEmpty(*pngPath, cfg.GetWireframePNG()); path != "" {
		if err := meshplot.SaveWireframePNG(path, *inPath, newPositions, newFaces); err != nil {
			log.Fatalf("save wireframe: %v", err)
		}
		slog.Info("wrote wireframe", "path", path)
	}
	if path := firstNonEmpty(*htmlPath, cfg.GetScatterHTML()); path != "" {
		if err := meshplot.SaveScatterHTML(path, *inPath, newPositions); err != nil {
			log.Fatalf("save scatter page: %v", err)
		}
		slog.Info("wrote scatter page", "path", path)
	}
	if path := firstNonEmpty(*dbPath, cfg.GetRunLogDB()); path != "" {
		db, err := meshdb.Open(path)
		if err != nil {
			log.Fatalf("open run log: %v", err)
		}
		defer db.Close()
		id, err := db.RecordRun(meshdb.Run{
			Source:          *inPath,
			InputVertices:   stats.InputVertices,
			InputFaces:      stats.InputFaces,
			TargetVertices:  targetCount,
			OutputVertices:  stats.OutputVertices,
			OutputFaces:     stats.OutputFaces,
			Threshold:       thresholdValue,
			EdgeCollapses:   stats.EdgeCollapses,
			ProximityMerges: stats.ProximityMerges,
			DurationMs:      stats.Duration.Milliseconds(),
		})
		if err != nil {
			log.Fatalf("record run: %v", err)
		}
		slog.Info("recorded run", "run_id", id, "db", path)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
