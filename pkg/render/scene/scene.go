// Package scene writes the interactive 3D orbit artifact: a single
// static HTML file embedding the orbits with their real inclinations.
package scene

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/astroplot/orrery/pkg/astro/units"
	"github.com/astroplot/orrery/pkg/catalog"
)

// orbitSamples is the polyline resolution of each 3D orbit.
const orbitSamples = 160

// Write renders the 3D scene for the catalog into w as a standalone
// HTML page.
func Write(w io.Writer, c *catalog.Catalog) error {
	star, err := c.Star()
	if err != nil {
		return err
	}
	planets := c.Planets()
	if len(planets) == 0 {
		return fmt.Errorf("catalog has no planets")
	}

	line3d := charts.NewLine3D()
	line3d.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Solar System 3D",
			Width:           "1200px",
			Height:          "800px",
			BackgroundColor: "#0b0b2a",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Solar System - 3D Orbit View",
			Subtitle: "orbits with real inclinations, distances in AU",
		}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X (AU)", Type: "value"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y (AU)", Type: "value"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z (AU)", Type: "value"}),
		charts.WithGrid3DOpts(opts.Grid3D{
			ViewControl: &opts.ViewControl{AutoRotate: opts.Bool(true)},
		}),
	)

	for _, p := range planets {
		el := p.Elements()

		path := el.SamplePath(orbitSamples)
		orbit := make([]opts.Chart3DData, 0, len(path))
		for _, pt := range path {
			orbit = append(orbit, opts.Chart3DData{
				Value: []interface{}{pt.X, pt.Y, pt.Z},
			})
		}
		line3d.AddSeries(p.Name+" orbit", orbit,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: p.Color}),
		)

		// Body marker at the epoch position, overlaid as a scatter3D
		// series on the same grid.
		pos, _ := el.StateVectors(units.MuYear)
		line3d.MultiSeries = append(line3d.MultiSeries, charts.SingleSeries{
			Name: p.Name,
			Type: "scatter3D",
			Data: []opts.Chart3DData{{Value: []interface{}{pos.X, pos.Y, pos.Z}}},
			ItemStyle: &opts.ItemStyle{Color: p.Color},
		})
	}

	// The star sits at the focus.
	line3d.MultiSeries = append(line3d.MultiSeries, charts.SingleSeries{
		Name: star.Name,
		Type: "scatter3D",
		Data: []opts.Chart3DData{{Value: []interface{}{0.0, 0.0, 0.0}}},
		ItemStyle: &opts.ItemStyle{Color: star.Color},
	})

	if err := line3d.Render(w); err != nil {
		return fmt.Errorf("rendering 3d scene: %w", err)
	}
	return nil
}
