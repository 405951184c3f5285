package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/astroplot/orrery/pkg/render"
	"github.com/astroplot/orrery/pkg/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Orbital statistics and physical law verification",
	Long:  `Compute derived orbital quantities and verify them against Kepler's laws`,
}

var statsKeplerCmd = &cobra.Command{
	Use:   "kepler",
	Short: "Verify Kepler's third law",
	Long: `Check T^2 / a^3 for every planet and fit the log-log period-distance
relation. The chart shows each planet against the fitted power law.`,
	RunE: runStatsKepler,
}

var statsEnergyCmd = &cobra.Command{
	Use:   "energy",
	Short: "Chart specific orbital energy and angular momentum",
	RunE:  runStatsEnergy,
}

var statsCorrelationCmd = &cobra.Command{
	Use:   "correlation",
	Short: "Render the property correlation heatmap",
	Long: `Compute the Pearson correlation matrix across the planetary
properties and render it as an annotated heatmap.`,
	RunE: runStatsCorrelation,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.AddCommand(statsKeplerCmd)
	statsCmd.AddCommand(statsEnergyCmd)
	statsCmd.AddCommand(statsCorrelationCmd)

	statsCmd.PersistentFlags().BoolVar(&statsJSON, "json", false, "Print the computed numbers as JSON")
}

func runStatsKepler(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	report, err := stats.Compute(c)
	if err != nil {
		recordRun("stats kepler", len(c.Bodies), nil, nil, start, err)
		return err
	}
	check := report.VerifyKepler()

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(check); err != nil {
			return err
		}
	} else {
		fmt.Println("Kepler's Third Law: T^2 / a^3 (yr^2 / AU^3)")
		for i, name := range check.Names {
			fmt.Printf("  %-10s %.6f\n", name, check.Ratios[i])
		}
		fmt.Printf("Mean ratio: %.6f (std dev %.2e)\n", check.MeanRatio, check.StdDev)
		fmt.Printf("log-log fit: T = a^%.4f (expected exponent 1.5)\n", check.Slope)
	}

	opts := renderOptions(cfg.Render.Width, cfg.Render.Height)
	path, err := writeArtifact(outName("kepler.png"), func(f *os.File) error {
		return render.WriteKeplerChart(f, report, opts)
	})

	var artifacts []string
	if err == nil {
		artifacts = []string{path}
	}
	recordRun("stats kepler", len(c.Bodies), map[string]any{
		"mean_ratio": check.MeanRatio, "slope": check.Slope,
	}, artifacts, start, err)
	return err
}

func runStatsEnergy(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	report, err := stats.Compute(c)
	if err != nil {
		recordRun("stats energy", len(c.Bodies), nil, nil, start, err)
		return err
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report.Rows); err != nil {
			return err
		}
	} else {
		fmt.Println("Specific orbital energy and angular momentum")
		for _, row := range report.Rows {
			fmt.Printf("  %-10s E = %12.4e J/kg   L = %12.4e m^2/s   v = %6.2f km/s\n",
				row.Name, row.OrbitalEnergy, row.AngularMomentum, row.OrbitalSpeed/1000)
		}
	}

	opts := renderOptions(cfg.Render.Width, cfg.Render.Height)
	path, err := writeArtifact(outName("energy.png"), func(f *os.File) error {
		return render.WriteEnergyChart(f, report, opts)
	})

	var artifacts []string
	if err == nil {
		artifacts = []string{path}
	}
	recordRun("stats energy", len(c.Bodies), nil, artifacts, start, err)
	return err
}

func runStatsCorrelation(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	report, err := stats.Compute(c)
	if err != nil {
		recordRun("stats correlation", len(c.Bodies), nil, nil, start, err)
		return err
	}

	if statsJSON {
		corr, err := report.Correlate()
		if err != nil {
			recordRun("stats correlation", len(c.Bodies), nil, nil, start, err)
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(corr); err != nil {
			return err
		}
	}

	opts := renderOptions(cfg.Render.Width, cfg.Render.Height)
	path, err := writeArtifact(outName("correlation.png"), func(f *os.File) error {
		return render.WriteCorrelationChart(f, report, opts)
	})

	var artifacts []string
	if err == nil {
		artifacts = []string{path}
	}
	recordRun("stats correlation", len(c.Bodies), nil, artifacts, start, err)
	return err
}
