// Package meshio loads and saves triangle meshes as Wavefront OBJ. Only
// vertex positions and triangular faces are carried; normals, texture
// coordinates and other attribute lines are ignored on read and never
// written. The decimation core itself performs no I/O; this package is
// the loader/saver collaborator around it.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/mesh.report/internal/geom"
)

// Parse reads an OBJ document and returns its positions and triangular
// faces. Face vertex references may carry texture/normal suffixes
// ("f 1/1/1 2/2/2 3/3/3"); only the position index is used. Faces with
// more than three vertices are fan-triangulated. Indices are converted
// from OBJ's 1-based convention to 0-based.
func Parse(r io.Reader) ([]geom.Vec3, [][3]int, error) {
	var positions []geom.Vec3
	var faces [][3]int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var v geom.Vec3
			var err error
			if v.X, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return nil, nil, fmt.Errorf("line %d: bad x coordinate %q", lineNo, fields[1])
			}
			if v.Y, err = strconv.ParseFloat(fields[2], 64); err != nil {
				return nil, nil, fmt.Errorf("line %d: bad y coordinate %q", lineNo, fields[2])
			}
			if v.Z, err = strconv.ParseFloat(fields[3], 64); err != nil {
				return nil, nil, fmt.Errorf("line %d: bad z coordinate %q", lineNo, fields[3])
			}
			positions = append(positions, v)
		case "f":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := parseFaceRef(ref, len(positions))
				if err != nil {
					return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx = append(idx, i)
			}
			for i := 1; i+1 < len(idx); i++ {
				faces = append(faces, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read obj: %w", err)
	}
	return positions, faces, nil
}

// parseFaceRef resolves one face vertex reference to a 0-based index.
// Negative OBJ indices count back from the most recent vertex.
func parseFaceRef(ref string, numVertices int) (int, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("bad face reference %q", ref)
	}
	if n < 0 {
		n = numVertices + n + 1
	}
	if n < 1 || n > numVertices {
		return 0, fmt.Errorf("face reference %d out of range [1,%d]", n, numVertices)
	}
	return n - 1, nil
}

// Write emits positions and faces as OBJ, 1-based face indices.
func Write(w io.Writer, positions []geom.Vec3, faces [][3]int) error {
	bw := bufio.NewWriter(w)
	for _, p := range positions {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	for _, f := range faces {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load reads an OBJ file from disk.
func Load(path string) ([]geom.Vec3, [][3]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Save writes an OBJ file to disk.
func Save(path string, positions []geom.Vec3, faces [][3]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create obj: %w", err)
	}
	if err := Write(f, positions, faces); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
