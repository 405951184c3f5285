// Package render turns catalogs and statistics reports into static PNG
// artifacts. Individual charts are drawn with go-chart; composite
// dashboards are assembled pixel-wise from the rendered panels.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Options sizes the produced artifacts. Zero values fall back to
// defaults suitable for a report-quality PNG.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 900
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	return o
}

// colorFromHex converts a "#RRGGBB" catalog color to a drawing color.
// Unparseable values fall back to gray so a bad color never kills a run.
func colorFromHex(hex string) drawing.Color {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return chart.ColorAlternateGray
	}
	return drawing.ColorFromHex(s)
}

// pointStyle renders markers only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    5,
		DotColor:    col,
	}
}

// lineStyle renders a thin stroke in the given color.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
	}
}

// renderable is satisfied by chart.Chart and chart.BarChart.
type renderable interface {
	Render(chart.RendererProvider, io.Writer) error
}

// renderToImage renders a go-chart chart and decodes it back to an
// image, which the dashboard compositor can place on its canvas.
func renderToImage(r renderable) (image.Image, error) {
	var buf bytes.Buffer
	if err := r.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decoding rendered chart: %w", err)
	}
	return img, nil
}
