package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the planetary data catalog",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the catalog bodies and their orbital elements",
	RunE:  runCatalogShow,
}

var catalogJSON bool

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogShowCmd)

	catalogShowCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the catalog as JSON")
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	if catalogJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c.Bodies); err != nil {
			return err
		}
		recordRun("catalog show", len(c.Bodies), nil, nil, start, nil)
		return nil
	}

	star, err := c.Star()
	if err != nil {
		return err
	}
	fmt.Printf("%s  (%.4e kg, radius %.0f km)\n\n", star.Name, star.Mass, star.RadiusKm())

	fmt.Printf("%-10s %10s %8s %8s %10s %12s\n",
		"Planet", "a (AU)", "e", "i (deg)", "T (yr)", "Mass (kg)")
	for _, p := range c.Planets() {
		fmt.Printf("%-10s %10.4f %8.5f %8.3f %10.3f %12.4e\n",
			p.Name, p.SemiMajorAxisAU(), p.Eccentricity, p.InclinationDeg,
			p.PeriodYears(), p.Mass)
	}

	recordRun("catalog show", len(c.Bodies), nil, nil, start, nil)
	return nil
}
