package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/astroplot/orrery/pkg/catalog"
	"github.com/astroplot/orrery/pkg/stats"
)

// panel is one titled cell of a composite image.
type panel struct {
	Title string
	Image image.Image
}

const titleStripHeight = 22

var (
	canvasColor = color.RGBA{R: 0x10, G: 0x10, B: 0x20, A: 0xff}
	labelColor  = color.RGBA{R: 0xe8, G: 0xe8, B: 0xf0, A: 0xff}
)

// drawLabel writes text onto img at the given baseline position.
func drawLabel(img *image.RGBA, x, y int, col color.Color, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// composeGrid lays the panels out in a grid with the given column count,
// each under a title strip, and writes the PNG.
func composeGrid(w io.Writer, cols int, panels []panel) error {
	if len(panels) == 0 {
		return fmt.Errorf("no panels to compose")
	}
	if cols <= 0 {
		cols = 1
	}

	cellW, cellH := 0, 0
	for _, p := range panels {
		b := p.Image.Bounds()
		if b.Dx() > cellW {
			cellW = b.Dx()
		}
		if b.Dy() > cellH {
			cellH = b.Dy()
		}
	}
	cellH += titleStripHeight

	rows := (len(panels) + cols - 1) / cols
	canvas := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(canvasColor), image.Point{}, draw.Src)

	for i, p := range panels {
		cx := (i % cols) * cellW
		cy := (i / cols) * cellH

		drawLabel(canvas, cx+8, cy+15, labelColor, p.Title)

		b := p.Image.Bounds()
		target := image.Rect(cx, cy+titleStripHeight, cx+b.Dx(), cy+titleStripHeight+b.Dy())
		draw.Draw(canvas, target, p.Image, b.Min, draw.Src)
	}

	return png.Encode(w, canvas)
}

// WriteDashboard writes the composite science dashboard: orbit views,
// the fact-sheet comparison charts, the third-law check, angular
// momentum and the correlation heatmap in one labelled grid.
func WriteDashboard(w io.Writer, c *catalog.Catalog, report *stats.Report, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = 620
	}
	if opts.Height <= 0 {
		opts.Height = 420
	}

	panels := make([]panel, 0, 12)
	addChart := func(title string, r renderable, err error) error {
		if err != nil {
			return fmt.Errorf("%s panel: %w", title, err)
		}
		img, err := renderToImage(r)
		if err != nil {
			return fmt.Errorf("%s panel: %w", title, err)
		}
		panels = append(panels, panel{Title: title, Image: img})
		return nil
	}

	inner, err := orbitPanel(c, "Inner System", 1.8, opts)
	if err := addChart("Inner System Orbits", inner, err); err != nil {
		return err
	}
	full, err := orbitPanel(c, "Complete System", outerLimitAU(c), opts)
	if err := addChart("Complete System Orbits", full, err); err != nil {
		return err
	}
	kep, err := keplerChart(report, opts)
	if err := addChart("Kepler's Third Law", kep, err); err != nil {
		return err
	}

	for _, spec := range comparisonSpecs {
		bar, err := comparisonBar(c, spec, opts)
		if err := addChart(spec.Title, bar, err); err != nil {
			return err
		}
	}

	momentum, err := momentumBar(report, opts)
	if err := addChart("Specific Angular Momentum", momentum, err); err != nil {
		return err
	}

	corr, err := report.Correlate()
	if err != nil {
		return fmt.Errorf("correlation panel: %w", err)
	}
	panels = append(panels, panel{
		Title: "Property Correlations",
		Image: correlationHeatmap(corr, opts),
	})

	return composeGrid(w, 3, panels)
}
