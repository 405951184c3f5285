package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroplot/orrery/pkg/catalog"
	"github.com/astroplot/orrery/pkg/stats"
)

// smallOpts keeps render tests fast without changing the code path.
var smallOpts = Options{Width: 400, Height: 300}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func defaultReport(t *testing.T) *stats.Report {
	t.Helper()
	report, err := stats.Compute(defaultCatalog(t))
	require.NoError(t, err)
	return report
}

func decodePNG(t *testing.T, buf *bytes.Buffer) (int, int) {
	t.Helper()
	img, err := png.Decode(buf)
	require.NoError(t, err, "output must be a valid PNG")
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestWriteOrbitView(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOrbitView(&buf, defaultCatalog(t), smallOpts)
	require.NoError(t, err)

	w, h := decodePNG(t, &buf)
	assert.Greater(t, w, smallOpts.Width, "two panels side by side")
	assert.Greater(t, h, 0)
}

func TestWriteComparisonChart(t *testing.T) {
	for _, name := range []string{"mass", "radius", "distance", "temperature"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteComparisonChart(&buf, defaultCatalog(t), name, smallOpts)
			require.NoError(t, err)

			w, h := decodePNG(t, &buf)
			assert.Equal(t, smallOpts.Width, w)
			assert.Equal(t, smallOpts.Height, h)
		})
	}
}

func TestWriteComparisonChart_UnknownName(t *testing.T) {
	var buf bytes.Buffer
	err := WriteComparisonChart(&buf, defaultCatalog(t), "flavor", smallOpts)
	assert.Error(t, err)
}

func TestWriteKeplerChart(t *testing.T) {
	var buf bytes.Buffer
	err := WriteKeplerChart(&buf, defaultReport(t), smallOpts)
	require.NoError(t, err)

	w, h := decodePNG(t, &buf)
	assert.Equal(t, smallOpts.Width, w)
	assert.Equal(t, smallOpts.Height, h)
}

func TestWriteEnergyChart(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEnergyChart(&buf, defaultReport(t), smallOpts)
	require.NoError(t, err)

	w, _ := decodePNG(t, &buf)
	assert.Greater(t, w, smallOpts.Width, "two panels side by side")
}

func TestWriteCorrelationChart(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCorrelationChart(&buf, defaultReport(t), smallOpts)
	require.NoError(t, err)

	w, h := decodePNG(t, &buf)
	assert.Greater(t, w, 0)
	assert.Greater(t, h, 0)
}

func TestWriteDashboard(t *testing.T) {
	c := defaultCatalog(t)
	report, err := stats.Compute(c)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteDashboard(&buf, c, report, Options{Width: 360, Height: 260})
	require.NoError(t, err)

	w, h := decodePNG(t, &buf)
	assert.GreaterOrEqual(t, w, 3*360, "three columns")
	assert.Greater(t, h, 260)
}

func TestColorFromHex(t *testing.T) {
	col := colorFromHex("#ff0000")
	assert.Equal(t, uint8(255), col.R)
	assert.Equal(t, uint8(0), col.G)

	// Bad values fall back instead of failing the render.
	fallback := colorFromHex("not-a-color")
	assert.False(t, fallback.IsZero())
}
