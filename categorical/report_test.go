package categorical

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/variable_plots/domain/models"
)

func TestBuildCategoricalReport(t *testing.T) {
	spec, summary, err := BuildCategoricalReport(scenarioRows(), "status", "month", "", 0, "")
	assert.NoError(t, err)

	assert.Equal(t, "status", spec.Variable)
	assert.Equal(t, []string{"A", "NA", "B"}, spec.Bar.Categories)
	assert.Equal(t, []float64{4, 2, 1}, spec.Bar.Counts)

	assert.Equal(t, models.YFormatPercent, spec.Traces.YFormat)
	assert.Equal(t, 30, spec.Traces.XLabelRotation)
	assert.Len(t, spec.Traces.Facets, 3)
	assert.Equal(t, "A", spec.Traces.Facets[0].Category)
	assert.Equal(t, []string{"1", "2"}, spec.Traces.Facets[0].Periods)
	assert.Equal(t, []float64{0.75, 1.0 / 3.0}, spec.Traces.Facets[0].Rates)

	assert.Len(t, summary.Rows, 3)
}

func TestBuildCategoricalReportBinary(t *testing.T) {
	rows := []map[string]interface{}{}
	rows = append(rows, repeatObs("ok", "2024-01", 8)...)
	rows = append(rows, repeatObs("fail", "2024-01", 2)...)
	rows = append(rows, repeatObs("fail", "2024-02", 1)...)

	spec, summary, err := BuildCategoricalReport(rows, "status", "month", "", 0, models.NormalizeByTime)
	assert.NoError(t, err)

	// Bar panel keeps both categories, traces only the minority one.
	assert.Equal(t, []string{"ok", "fail"}, spec.Bar.Categories)
	assert.Len(t, spec.Traces.Facets, 1)
	assert.Equal(t, "fail", spec.Traces.Facets[0].Category)
	assert.Len(t, summary.Rows, 3)
}

func TestBuildCategoricalReportDegenerate(t *testing.T) {
	_, _, err := BuildCategoricalReport(nil, "status", "month", "", 0, "")
	assert.ErrorIs(t, err, ErrDegenerateInput)
}
