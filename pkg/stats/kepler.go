package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// KeplerCheck is the outcome of verifying Kepler's third law against the
// catalog: the per-planet T²/a³ ratios (identically 1 in yr²/AU³ for an
// ideal solar orbit) and a log-log fit of T against a whose slope is 3/2
// when the law holds.
type KeplerCheck struct {
	Names     []string
	Ratios    []float64 // T²/a³ in yr²/AU³
	MeanRatio float64
	StdDev    float64

	// log10(T) = Intercept + Slope*log10(a)
	Slope     float64
	Intercept float64
}

// VerifyKepler computes the third-law check over the report.
func (r *Report) VerifyKepler() KeplerCheck {
	n := len(r.Rows)
	check := KeplerCheck{
		Names:  make([]string, n),
		Ratios: make([]float64, n),
	}

	logA := make([]float64, n)
	logT := make([]float64, n)
	for i, row := range r.Rows {
		check.Names[i] = row.Name
		check.Ratios[i] = row.PeriodYears * row.PeriodYears /
			math.Pow(row.SemiMajorAxisAU, 3)
		logA[i] = math.Log10(row.SemiMajorAxisAU)
		logT[i] = math.Log10(row.PeriodYears)
	}

	check.MeanRatio = stat.Mean(check.Ratios, nil)
	check.StdDev = stat.StdDev(check.Ratios, nil)
	check.Intercept, check.Slope = stat.LinearRegression(logA, logT, nil, false)

	return check
}
