package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/astroplot/orrery/pkg/catalog"
	"github.com/astroplot/orrery/pkg/astro/units"
)

// Row is the per-planet statistics record: catalog values plus derived
// orbital quantities. Energies and momenta are per unit mass, in SI, as
// fact sheets quote them.
type Row struct {
	Name            string
	Color           string
	SemiMajorAxisAU float64
	PeriodYears     float64
	Eccentricity    float64
	MassKg          float64
	RadiusKm        float64
	OrbitalEnergy   float64 // J/kg
	AngularMomentum float64 // m²/s
	OrbitalSpeed    float64 // m/s, circular-equivalent
}

// Report holds the statistics table for a catalog.
type Report struct {
	Rows []Row
}

// Compute derives the statistics table from a catalog. The closed-form
// expressions stand in for the state-vector sums: E = -GM/2a,
// L = sqrt(GMa(1-e²)), v = sqrt(GM/a).
func Compute(c *catalog.Catalog) (*Report, error) {
	star, err := c.Star()
	if err != nil {
		return nil, err
	}
	planets := c.Planets()
	if len(planets) == 0 {
		return nil, fmt.Errorf("catalog has no planets")
	}

	gm := units.G * star.Mass

	rows := make([]Row, 0, len(planets))
	for _, p := range planets {
		a := p.SemiMajorAxis // meters
		rows = append(rows, Row{
			Name:            p.Name,
			Color:           p.Color,
			SemiMajorAxisAU: p.SemiMajorAxisAU(),
			PeriodYears:     p.PeriodYears(),
			Eccentricity:    p.Eccentricity,
			MassKg:          p.Mass,
			RadiusKm:        p.RadiusKm(),
			OrbitalEnergy:   -gm / (2 * a),
			AngularMomentum: math.Sqrt(gm * a * (1 - p.Eccentricity*p.Eccentricity)),
			OrbitalSpeed:    math.Sqrt(gm / a),
		})
	}

	return &Report{Rows: rows}, nil
}

// Names returns the planet names in row order.
func (r *Report) Names() []string {
	names := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		names[i] = row.Name
	}
	return names
}

// Summary is a mean/stddev pair for one column.
type Summary struct {
	Mean   float64
	StdDev float64
}

// Summarize computes mean and standard deviation of a derived column
// selected by f.
func (r *Report) Summarize(f func(Row) float64) Summary {
	vals := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		vals[i] = f(row)
	}
	return Summary{
		Mean:   stat.Mean(vals, nil),
		StdDev: stat.StdDev(vals, nil),
	}
}

// correlationColumns lists the columns entering the correlation matrix,
// in display order.
var correlationColumns = []struct {
	Label string
	Value func(Row) float64
}{
	{"mass", func(r Row) float64 { return r.MassKg }},
	{"radius", func(r Row) float64 { return r.RadiusKm }},
	{"semi-major axis", func(r Row) float64 { return r.SemiMajorAxisAU }},
	{"period", func(r Row) float64 { return r.PeriodYears }},
	{"eccentricity", func(r Row) float64 { return r.Eccentricity }},
	{"energy", func(r Row) float64 { return r.OrbitalEnergy }},
	{"ang. momentum", func(r Row) float64 { return r.AngularMomentum }},
}

// Correlation holds the pairwise Pearson correlation matrix over the
// planetary properties.
type Correlation struct {
	Labels []string
	Matrix [][]float64
}

// Correlate computes the correlation matrix across the report's columns.
func (r *Report) Correlate() (*Correlation, error) {
	if len(r.Rows) < 3 {
		return nil, fmt.Errorf("need at least 3 planets for a correlation matrix, have %d", len(r.Rows))
	}

	n := len(correlationColumns)
	x := mat.NewDense(len(r.Rows), n, nil)
	labels := make([]string, n)
	for j, col := range correlationColumns {
		labels[j] = col.Label
		for i, row := range r.Rows {
			x.Set(i, j, col.Value(row))
		}
	}

	sym := mat.NewSymDense(n, nil)
	stat.CorrelationMatrix(sym, x, nil)

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = sym.At(i, j)
		}
	}

	return &Correlation{Labels: labels, Matrix: out}, nil
}
