package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/astroplot/orrery/pkg/render"
	"github.com/astroplot/orrery/pkg/render/scene"
	"github.com/astroplot/orrery/pkg/stats"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Generate visualization artifacts",
	Long:  `Render orbit maps, comparison dashboards and the 3D scene from the catalog`,
}

var renderOrbitsCmd = &cobra.Command{
	Use:   "orbits",
	Short: "Render the top-down orbit map",
	Long: `Render the two-panel orbit map: a detailed inner system view next to
the complete system, planets placed at their catalog epoch positions.`,
	RunE: runRenderOrbits,
}

var renderCompareCmd = &cobra.Command{
	Use:   "compare [property]",
	Short: "Render one planetary comparison bar chart",
	Long: `Render a bar chart comparing one physical property across the planets.

Properties: mass, radius, distance, eccentricity, density, gravity,
escape, temperature.`,
	Args: cobra.ExactArgs(1),
	RunE: runRenderCompare,
}

var renderDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the combined dashboard PNG",
	Long: `Render the full dashboard: orbit maps, the fact-sheet comparison
charts, Kepler's third law verification and the correlation heatmap
composed into a single PNG.`,
	RunE: runRenderDashboard,
}

var renderScene3DCmd = &cobra.Command{
	Use:   "scene3d",
	Short: "Render the interactive 3D orbit scene",
	Long: `Render the orbits with their real inclinations into a standalone
HTML page with an interactive camera.`,
	RunE: runRenderScene3D,
}

var (
	renderWidth  int
	renderHeight int
	renderOut    string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.AddCommand(renderOrbitsCmd)
	renderCmd.AddCommand(renderCompareCmd)
	renderCmd.AddCommand(renderDashboardCmd)
	renderCmd.AddCommand(renderScene3DCmd)

	renderCmd.PersistentFlags().IntVar(&renderWidth, "width", 0, "Panel width in pixels (default: from config)")
	renderCmd.PersistentFlags().IntVar(&renderHeight, "height", 0, "Panel height in pixels (default: from config)")
	renderCmd.PersistentFlags().StringVar(&renderOut, "out", "", "Output file name (default: per command)")
}

// renderOptions resolves the panel size from flags and config.
func renderOptions(defWidth, defHeight int) render.Options {
	opts := render.Options{Width: renderWidth, Height: renderHeight}
	if opts.Width <= 0 {
		opts.Width = defWidth
	}
	if opts.Height <= 0 {
		opts.Height = defHeight
	}
	return opts
}

func outName(def string) string {
	if renderOut != "" {
		return renderOut
	}
	return def
}

func runRenderOrbits(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	opts := renderOptions(cfg.Render.Width, cfg.Render.Height)
	path, err := writeArtifact(outName("orbits.png"), func(f *os.File) error {
		return render.WriteOrbitView(f, c, opts)
	})

	var artifacts []string
	if err == nil {
		artifacts = []string{path}
	}
	recordRun("render orbits", len(c.Bodies), map[string]any{
		"width": opts.Width, "height": opts.Height,
	}, artifacts, start, err)
	return err
}

func runRenderCompare(cmd *cobra.Command, args []string) error {
	start := time.Now()
	property := args[0]

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	opts := renderOptions(cfg.Render.Width, cfg.Render.Height)
	path, err := writeArtifact(outName(fmt.Sprintf("compare_%s.png", property)), func(f *os.File) error {
		return render.WriteComparisonChart(f, c, property, opts)
	})

	var artifacts []string
	if err == nil {
		artifacts = []string{path}
	}
	recordRun("render compare", len(c.Bodies), map[string]any{
		"property": property, "width": opts.Width, "height": opts.Height,
	}, artifacts, start, err)
	return err
}

func runRenderDashboard(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	report, err := stats.Compute(c)
	if err != nil {
		recordRun("render dashboard", len(c.Bodies), nil, nil, start, err)
		return err
	}

	opts := renderOptions(cfg.Render.DashboardWidth, cfg.Render.DashboardHeight)
	path, err := writeArtifact(outName("dashboard.png"), func(f *os.File) error {
		return render.WriteDashboard(f, c, report, opts)
	})

	var artifacts []string
	if err == nil {
		artifacts = []string{path}
	}
	recordRun("render dashboard", len(c.Bodies), map[string]any{
		"width": opts.Width, "height": opts.Height,
	}, artifacts, start, err)
	return err
}

func runRenderScene3D(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	path, err := writeArtifact(outName("scene3d.html"), func(f *os.File) error {
		return scene.Write(f, c)
	})

	var artifacts []string
	if err == nil {
		artifacts = []string{path}
	}
	recordRun("render scene3d", len(c.Bodies), nil, artifacts, start, err)
	return err
}
