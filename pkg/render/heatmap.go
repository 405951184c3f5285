package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/astroplot/orrery/pkg/stats"
)

// correlationHeatmap draws the correlation matrix as an annotated grid.
// go-chart has no heatmap type, so this renders the cells directly: blue
// for -1 through white at 0 to red for +1, with the coefficient printed
// in each cell.
func correlationHeatmap(corr *stats.Correlation, opts Options) image.Image {
	opts = opts.withDefaults()
	n := len(corr.Labels)

	const marginLeft, marginTop = 130, 40
	cell := (opts.Width - marginLeft - 20) / n
	if cellH := (opts.Height - marginTop - 20) / n; cellH < cell {
		cell = cellH
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x0 := marginLeft + j*cell
			y0 := marginTop + i*cell
			rect := image.Rect(x0, y0, x0+cell-1, y0+cell-1)
			draw.Draw(img, rect, image.NewUniform(divergingColor(corr.Matrix[i][j])), image.Point{}, draw.Src)

			label := fmt.Sprintf("%.2f", corr.Matrix[i][j])
			drawLabel(img, x0+cell/2-len(label)*7/2, y0+cell/2+4, color.Black, label)
		}
	}

	for i, l := range corr.Labels {
		// Row labels on the left, column labels across the top.
		drawLabel(img, 6, marginTop+i*cell+cell/2+4, color.Black, l)
		drawLabel(img, marginLeft+i*cell+4, marginTop-8, color.Black, abbreviate(l, cell/7))
	}

	return img
}

// divergingColor maps a correlation in [-1,1] onto a blue-white-red
// scale.
func divergingColor(v float64) color.RGBA {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	if v >= 0 {
		t := uint8(255 * (1 - v))
		return color.RGBA{R: 255, G: t, B: t, A: 255}
	}
	t := uint8(255 * (1 + v))
	return color.RGBA{R: t, G: t, B: 255, A: 255}
}

func abbreviate(s string, max int) string {
	if max < 3 || len(s) <= max {
		return s
	}
	return s[:max-1] + "."
}

// WriteCorrelationChart writes the standalone correlation heatmap.
func WriteCorrelationChart(w io.Writer, report *stats.Report, opts Options) error {
	corr, err := report.Correlate()
	if err != nil {
		return err
	}
	return png.Encode(w, correlationHeatmap(corr, opts))
}
