package meshplot

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/mesh.report/internal/geom"
)

// SaveScatterHTML writes an interactive HTML page plotting the mesh
// vertices projected onto the XY plane, with Z encoded on the colour
// scale. Square axes keep the projection undistorted.
func SaveScatterHTML(path, title string, positions []geom.Vec3) error {
	if len(positions) == 0 {
		return fmt.Errorf("no vertices to plot")
	}

	data := make([]opts.ScatterData, 0, len(positions))
	for _, v := range positions {
		data = append(data, opts.ScatterData{Value: []interface{}{v.X, v.Y, v.Z}})
	}
	pad, zMin, zMax := scatterBounds(positions)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("vertices=%d", len(positions))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(zMin),
			Max:        float32(zMax),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#b5de2b", "#fde725"}},
		}),
	)
	scatter.AddSeries("vertices", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scatter page: %w", err)
	}
	if err := scatter.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}

// scatterBounds computes symmetric XY axis limits and the Z range for
// the colour scale. Isolated vertices still appear in the scatter view,
// so a cloud-only mesh renders something useful too.
func scatterBounds(positions []geom.Vec3) (pad, zMin, zMax float64) {
	maxAbs := 0.0
	zMin, zMax = positions[0].Z, positions[0].Z
	for _, v := range positions {
		for _, c := range []float64{v.X, v.Y} {
			if c > maxAbs {
				maxAbs = c
			}
			if -c > maxAbs {
				maxAbs = -c
			}
		}
		if v.Z < zMin {
			zMin = v.Z
		}
		if v.Z > zMax {
			zMax = v.Z
		}
	}
	pad = maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}
	if zMax == zMin {
		zMax = zMin + 1
	}
	return pad, zMin, zMax
}
