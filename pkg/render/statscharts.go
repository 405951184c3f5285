package render

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/astroplot/orrery/pkg/stats"
)

// keplerChart plots orbital period against semi-major axis with the
// fitted power law overlaid. The fit itself is computed in log space;
// the axes stay linear.
func keplerChart(report *stats.Report, opts Options) (chart.Chart, error) {
	if len(report.Rows) == 0 {
		return chart.Chart{}, fmt.Errorf("empty statistics report")
	}
	opts = opts.withDefaults()

	check := report.VerifyKepler()

	series := make([]chart.Series, 0, len(report.Rows)+2)

	// Fitted power law sampled across the axis range.
	minA, maxA := math.MaxFloat64, -math.MaxFloat64
	for _, row := range report.Rows {
		minA = math.Min(minA, row.SemiMajorAxisAU)
		maxA = math.Max(maxA, row.SemiMajorAxisAU)
	}
	fitXs := make([]float64, 0, 64)
	fitYs := make([]float64, 0, 64)
	for i := 0; i < 64; i++ {
		a := minA * math.Pow(maxA/minA, float64(i)/63)
		fitXs = append(fitXs, a)
		fitYs = append(fitYs, math.Pow(10, check.Intercept)*math.Pow(a, check.Slope))
	}
	series = append(series, chart.ContinuousSeries{
		Name:    fmt.Sprintf("fit: T = a^%.3f", check.Slope),
		XValues: fitXs,
		YValues: fitYs,
		Style:   lineStyle(chart.ColorAlternateGray),
	})

	annotations := make([]chart.Value2, 0, len(report.Rows))
	for _, row := range report.Rows {
		series = append(series, chart.ContinuousSeries{
			Name:    row.Name,
			XValues: []float64{row.SemiMajorAxisAU},
			YValues: []float64{row.PeriodYears},
			Style:   pointStyle(colorFromHex(row.Color)),
		})
		annotations = append(annotations, chart.Value2{
			XValue: row.SemiMajorAxisAU,
			YValue: row.PeriodYears,
			Label:  row.Name,
		})
	}
	series = append(series, chart.AnnotationSeries{Annotations: annotations})

	return chart.Chart{
		Title:      "Kepler's Third Law",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 110, Bottom: 24}},
		XAxis: chart.XAxis{
			Name:  "semi-major axis (AU)",
			Range: &chart.ContinuousRange{Min: 0, Max: maxA * 1.1},
		},
		YAxis: chart.YAxis{Name: "orbital period (yr)"},
		Series: series,
	}, nil
}

// WriteKeplerChart writes the third-law verification chart.
func WriteKeplerChart(w io.Writer, report *stats.Report, opts Options) error {
	ch, err := keplerChart(report, opts)
	if err != nil {
		return err
	}
	return ch.Render(chart.PNG, w)
}

// energyChart plots specific orbital energy against semi-major axis.
func energyChart(report *stats.Report, opts Options) (chart.Chart, error) {
	if len(report.Rows) == 0 {
		return chart.Chart{}, fmt.Errorf("empty statistics report")
	}
	opts = opts.withDefaults()

	series := make([]chart.Series, 0, len(report.Rows)+1)
	annotations := make([]chart.Value2, 0, len(report.Rows))
	maxA := 0.0
	minE := 0.0
	for _, row := range report.Rows {
		series = append(series, chart.ContinuousSeries{
			Name:    row.Name,
			XValues: []float64{row.SemiMajorAxisAU},
			YValues: []float64{row.OrbitalEnergy},
			Style:   pointStyle(colorFromHex(row.Color)),
		})
		annotations = append(annotations, chart.Value2{
			XValue: row.SemiMajorAxisAU,
			YValue: row.OrbitalEnergy,
			Label:  row.Name,
		})
		maxA = math.Max(maxA, row.SemiMajorAxisAU)
		minE = math.Min(minE, row.OrbitalEnergy)
	}
	series = append(series, chart.AnnotationSeries{Annotations: annotations})

	return chart.Chart{
		Title:      "Orbital Energy vs Semi-Major Axis",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 110, Bottom: 24}},
		XAxis: chart.XAxis{
			Name:  "semi-major axis (AU)",
			Range: &chart.ContinuousRange{Min: 0, Max: maxA * 1.1},
		},
		YAxis: chart.YAxis{
			Name:  "specific energy (J/kg)",
			Range: &chart.ContinuousRange{Min: minE * 1.1, Max: 0},
		},
		Series: series,
	}, nil
}

// momentumBar builds the specific angular momentum bar chart.
func momentumBar(report *stats.Report, opts Options) (chart.BarChart, error) {
	if len(report.Rows) == 0 {
		return chart.BarChart{}, fmt.Errorf("empty statistics report")
	}
	opts = opts.withDefaults()

	bars := make([]chart.Value, 0, len(report.Rows))
	maxL := 0.0
	for _, row := range report.Rows {
		col := colorFromHex(row.Color)
		bars = append(bars, chart.Value{
			Value: row.AngularMomentum,
			Label: row.Name,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
		maxL = math.Max(maxL, row.AngularMomentum)
	}

	return chart.BarChart{
		Title:      "Specific Angular Momentum",
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   opts.Width / (2 * len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 16, Bottom: 18}},
		YAxis: chart.YAxis{
			Name:  "L (m^2/s)",
			Range: &chart.ContinuousRange{Min: 0, Max: maxL * 1.1},
		},
		Bars: bars,
	}, nil
}

// WriteEnergyChart writes the two-panel energy artifact: specific energy
// scatter next to the angular momentum bars.
func WriteEnergyChart(w io.Writer, report *stats.Report, opts Options) error {
	energy, err := energyChart(report, opts)
	if err != nil {
		return err
	}
	momentum, err := momentumBar(report, opts)
	if err != nil {
		return err
	}

	energyImg, err := renderToImage(energy)
	if err != nil {
		return err
	}
	momentumImg, err := renderToImage(momentum)
	if err != nil {
		return err
	}

	return composeGrid(w, 2, []panel{
		{Title: "Orbital Energy", Image: energyImg},
		{Title: "Angular Momentum", Image: momentumImg},
	})
}
