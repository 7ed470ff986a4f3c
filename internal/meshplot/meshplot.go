// Package meshplot renders simplified meshes for visual inspection: a
// static PNG wireframe projection via gonum/plot and an interactive
// scatter page via go-echarts. Both consumers accept the same
// (positions, faces) pair the decimation core produces; neither feeds
// anything back into it.
package meshplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/mesh.report/internal/geom"
)

// SaveWireframePNG draws the mesh projected onto the XY plane, one line
// strip per triangle, and writes it as a PNG.
func SaveWireframePNG(path, title string, positions []geom.Vec3, faces [][3]int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	for _, f := range faces {
		pts := make(plotter.XYs, 0, 4)
		for _, v := range f {
			pts = append(pts, plotter.XY{X: positions[v].X, Y: positions[v].Y})
		}
		// Close the triangle outline.
		pts = append(pts, pts[0])

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to create face outline: %w", err)
		}
		line.Width = vg.Points(1)
		p.Add(line)
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save wireframe plot: %w", err)
	}
	return nil
}
