package render

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/astroplot/orrery/pkg/catalog"
)

// barSpec describes one comparison bar chart over the planets.
type barSpec struct {
	Title string
	YName string
	Value func(catalog.Body) float64
}

// The comparison set mirrors the NASA fact sheet: one bar chart per
// physical property.
var comparisonSpecs = []barSpec{
	{"Mass (log10 kg)", "log10(mass kg)", func(b catalog.Body) float64 { return math.Log10(b.Mass) }},
	{"Radius (km)", "radius (km)", func(b catalog.Body) float64 { return b.RadiusKm() }},
	{"Distance from Sun (AU)", "semi-major axis (AU)", func(b catalog.Body) float64 { return b.SemiMajorAxisAU() }},
	{"Orbital Eccentricity", "eccentricity", func(b catalog.Body) float64 { return b.Eccentricity }},
	{"Density (g/cm3)", "density (g/cm3)", func(b catalog.Body) float64 { return b.Density }},
	{"Surface Gravity (m/s2)", "gravity (m/s2)", func(b catalog.Body) float64 { return b.SurfaceGravity }},
	{"Escape Velocity (km/s)", "escape velocity (km/s)", func(b catalog.Body) float64 { return b.EscapeVelocity }},
	{"Mean Temperature (deg C)", "temperature (deg C)", func(b catalog.Body) float64 { return b.MeanTemperatureC }},
}

// comparisonBar builds the bar chart for one spec, one bar per planet in
// the planet's catalog color.
func comparisonBar(c *catalog.Catalog, spec barSpec, opts Options) (chart.BarChart, error) {
	planets := c.Planets()
	if len(planets) == 0 {
		return chart.BarChart{}, fmt.Errorf("catalog has no planets")
	}

	opts = opts.withDefaults()
	bars := make([]chart.Value, 0, len(planets))
	minV, maxV := math.MaxFloat64, -math.MaxFloat64
	for _, p := range planets {
		v := spec.Value(p)
		col := colorFromHex(p.Color)
		bars = append(bars, chart.Value{
			Value: v,
			Label: p.Name,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	// go-chart bar charts want an explicit range when values are
	// negative or nearly equal.
	lo := math.Min(0, minV)
	hi := maxV
	if hi <= lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1

	return chart.BarChart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   opts.Width / (2 * len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 16, Bottom: 18}},
		YAxis: chart.YAxis{
			Name:  spec.YName,
			Range: &chart.ContinuousRange{Min: lo, Max: hi + pad},
		},
		Bars: bars,
	}, nil
}

// WriteComparisonChart writes a single comparison bar chart selected by
// name ("mass", "radius", "distance", "eccentricity", "density",
// "gravity", "escape", "temperature").
func WriteComparisonChart(w io.Writer, c *catalog.Catalog, name string, opts Options) error {
	idx := map[string]int{
		"mass": 0, "radius": 1, "distance": 2, "eccentricity": 3,
		"density": 4, "gravity": 5, "escape": 6, "temperature": 7,
	}
	i, ok := idx[name]
	if !ok {
		return fmt.Errorf("unknown comparison chart %q", name)
	}

	bar, err := comparisonBar(c, comparisonSpecs[i], opts)
	if err != nil {
		return err
	}
	return bar.Render(chart.PNG, w)
}
