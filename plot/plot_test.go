package plot

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/variable_plots/domain/models"
)

func testChartSpec() models.ChartSpec {
	return models.ChartSpec{
		Variable: "status",
		Bar: models.BarChartSpec{
			Variable:   "status",
			Categories: []string{"active", "churned", "NA"},
			Counts:     []float64{120, 30, 5},
		},
		Traces: models.FacetedLinesSpec{
			Variable: "status",
			Facets: []models.RateFacet{
				{
					Category: "active",
					Periods:  []string{"2024-01", "2024-02", "2024-03"},
					Rates:    []float64{0.8, 0.75, 0.7},
				},
				{
					Category: "churned",
					Periods:  []string{"2024-01", "2024-02", "2024-03"},
					Rates:    []float64{0.2, math.NaN(), 0.3},
				},
			},
			YFormat:        models.YFormatPercent,
			XLabelRotation: models.DefaultLabelRotation,
		},
	}
}

func TestDrawCategoryBar(t *testing.T) {
	png, err := DrawCategoryBar(testChartSpec().Bar)
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	err = os.WriteFile(filepath.Join(t.TempDir(), "bar.png"), png, 0655)
	assert.NoError(t, err)
}

func TestDrawCategoryBarEmpty(t *testing.T) {
	_, err := DrawCategoryBar(models.BarChartSpec{Variable: "status"})
	assert.Error(t, err)
}

func TestDrawRateTraces(t *testing.T) {
	png, err := DrawRateTraces(testChartSpec().Traces)
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	err = os.WriteFile(filepath.Join(t.TempDir(), "traces.png"), png, 0655)
	assert.NoError(t, err)
}

func TestDrawRateTracesAllNaN(t *testing.T) {
	spec := models.FacetedLinesSpec{
		Variable: "status",
		Facets: []models.RateFacet{
			{
				Category: "x",
				Periods:  []string{"1", "2"},
				Rates:    []float64{math.NaN(), math.NaN()},
			},
		},
	}
	_, err := DrawRateTraces(spec)
	assert.Error(t, err)
}

func TestRenderCompositePage(t *testing.T) {
	buf := &bytes.Buffer{}
	err := RenderCompositePage(testChartSpec(), buf)
	assert.NoError(t, err)

	html := buf.String()
	assert.True(t, strings.Contains(html, "active"))
	assert.True(t, strings.Contains(html, "churned"))
	assert.True(t, strings.Contains(html, "2024-03"))
}

func TestCalculateGridStep(t *testing.T) {
	assert.Equal(t, 0.0, calculateGridStep(0))
	assert.Equal(t, 20.0, calculateGridStep(95))
	assert.Equal(t, 200.0, calculateGridStep(950))
}
