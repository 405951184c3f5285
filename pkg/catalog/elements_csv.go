package catalog

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/astroplot/orrery/pkg/astro/orbital"
)

// MinorBody is one row of a minor-body element table: designation plus
// Keplerian elements, as published by survey element lists.
type MinorBody struct {
	Designation       string
	Elements          orbital.Elements
	Epoch             float64
	AbsoluteMagnitude float64
	AlbedoEstimate    float64
	DiameterKm        float64
}

// LoadMinorBodies reads a CSV element table. Expected columns:
// designation, a (AU), e, i (deg), node (deg), peri (deg), M (deg),
// then optionally epoch (JD) and absolute magnitude H. Incomplete or
// unparseable rows are skipped with a warning, matching how survey dumps
// are usually consumed.
func LoadMinorBodies(path string) ([]MinorBody, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening element table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // epoch and H columns are optional
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading element table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("element table %s has no data rows", path)
	}

	var bodies []MinorBody
	for i, record := range records[1:] { // skip header
		if len(record) < 7 {
			log.Printf("warning: skipping incomplete row %d", i+1)
			continue
		}
		mb, err := parseMinorBodyRow(record)
		if err != nil {
			log.Printf("warning: failed to parse row %d: %v", i+1, err)
			continue
		}
		bodies = append(bodies, mb)
	}

	return bodies, nil
}

func parseMinorBodyRow(record []string) (MinorBody, error) {
	parseFloat := func(s string) (float64, error) {
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}

	mb := MinorBody{Designation: record[0]}

	a, err := parseFloat(record[1])
	if err != nil {
		return mb, fmt.Errorf("invalid semi-major axis: %w", err)
	}
	e, err := parseFloat(record[2])
	if err != nil {
		return mb, fmt.Errorf("invalid eccentricity: %w", err)
	}
	inc, err := parseFloat(record[3])
	if err != nil {
		return mb, fmt.Errorf("invalid inclination: %w", err)
	}
	node, err := parseFloat(record[4])
	if err != nil {
		return mb, fmt.Errorf("invalid ascending node: %w", err)
	}
	peri, err := parseFloat(record[5])
	if err != nil {
		return mb, fmt.Errorf("invalid perihelion argument: %w", err)
	}
	mean, err := parseFloat(record[6])
	if err != nil {
		return mb, fmt.Errorf("invalid mean anomaly: %w", err)
	}
	mb.Elements = orbital.FromDegrees(a, e, inc, node, peri, mean)

	if len(record) > 7 {
		mb.Epoch, _ = parseFloat(record[7])
		mb.Elements.Epoch = mb.Epoch
	}
	if len(record) > 8 {
		mb.AbsoluteMagnitude, _ = parseFloat(record[8])
	}

	if mb.AbsoluteMagnitude != 0 {
		mb.AlbedoEstimate = 0.1 // assumed albedo for icy bodies
		mb.DiameterKm = EstimateDiameter(mb.AbsoluteMagnitude, mb.AlbedoEstimate)
	}

	return mb, nil
}

// EstimateDiameter estimates a minor body's diameter in km from its
// absolute magnitude H using D = 1329 / sqrt(albedo) * 10^(-H/5).
func EstimateDiameter(h, albedo float64) float64 {
	if albedo <= 0 {
		albedo = 0.1
	}
	return 1329.0 / math.Sqrt(albedo) * math.Pow(10, -h/5.0)
}
