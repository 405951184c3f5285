package render

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/astroplot/orrery/pkg/astro/units"
	"github.com/astroplot/orrery/pkg/catalog"
)

// orbitPathSamples is the polyline resolution for drawn orbits. 180
// points keeps even Mercury's ellipse smooth at dashboard scale.
const orbitPathSamples = 180

// orbitPanel builds one top-down (X/Y plane) orbit chart for the planets
// within limitAU of the star.
func orbitPanel(c *catalog.Catalog, title string, limitAU float64, opts Options) (chart.Chart, error) {
	star, err := c.Star()
	if err != nil {
		return chart.Chart{}, err
	}

	series := make([]chart.Series, 0, len(c.Bodies)*2)
	for _, p := range c.Planets() {
		if p.SemiMajorAxisAU() > limitAU {
			continue
		}
		col := colorFromHex(p.Color)
		el := p.Elements()

		path := el.SamplePath(orbitPathSamples)
		xs := make([]float64, len(path))
		ys := make([]float64, len(path))
		for i, pt := range path {
			xs[i] = pt.X
			ys[i] = pt.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    p.Name + " orbit",
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(col.WithAlpha(160)),
		})

		// Current position at the catalog epoch anomaly.
		pos, _ := el.StateVectors(units.MuYear)
		series = append(series, chart.ContinuousSeries{
			Name:    p.Name,
			XValues: []float64{pos.X},
			YValues: []float64{pos.Y},
			Style:   pointStyle(col),
		})
	}

	if len(series) == 0 {
		return chart.Chart{}, fmt.Errorf("no planets within %.1f AU", limitAU)
	}

	// Star marker at the focus.
	series = append(series, chart.ContinuousSeries{
		Name:    star.Name,
		XValues: []float64{0},
		YValues: []float64{0},
		Style: chart.Style{
			StrokeWidth: 0,
			DotWidth:    9,
			DotColor:    colorFromHex(star.Color),
		},
	})

	opts = opts.withDefaults()
	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 16, Bottom: 24}},
		XAxis: chart.XAxis{
			Name:  "X (AU)",
			Range: &chart.ContinuousRange{Min: -limitAU, Max: limitAU},
		},
		YAxis: chart.YAxis{
			Name:  "Y (AU)",
			Range: &chart.ContinuousRange{Min: -limitAU, Max: limitAU},
		},
		Series: series,
	}
	return ch, nil
}

// WriteOrbitView writes the two-panel orbit artifact: a detailed inner
// system view next to the complete system.
func WriteOrbitView(w io.Writer, c *catalog.Catalog, opts Options) error {
	opts = opts.withDefaults()

	inner, err := orbitPanel(c, "Inner System", 1.8, opts)
	if err != nil {
		return fmt.Errorf("inner system panel: %w", err)
	}
	full, err := orbitPanel(c, "Complete System", outerLimitAU(c), opts)
	if err != nil {
		return fmt.Errorf("complete system panel: %w", err)
	}

	innerImg, err := renderToImage(inner)
	if err != nil {
		return err
	}
	fullImg, err := renderToImage(full)
	if err != nil {
		return err
	}

	return composeGrid(w, 2, []panel{
		{Title: "Inner System (detail)", Image: innerImg},
		{Title: "Complete System", Image: fullImg},
	})
}

// outerLimitAU pads the outermost aphelion by a few percent so the whole
// orbit sits inside the axis range.
func outerLimitAU(c *catalog.Catalog) float64 {
	limit := 1.0
	for _, p := range c.Planets() {
		if aph := p.Elements().Aphelion(); aph > limit {
			limit = aph
		}
	}
	return limit * 1.05
}
