package categorical

import (
	"github.com/pivolan/variable_plots/domain/models"
)

// BuildCategoricalReport runs the full pipeline for one variable: the
// global frequency table feeds the bar panel and fixes the category
// order, the rate aggregation fills the trace panel and the summary.
// Pass topK 0 for the default cap and normalizeBy "" for
// NormalizeByTime.
func BuildCategoricalReport(rows []map[string]interface{}, categoryField, timeField, weightField string, topK int, normalizeBy models.NormalizeMode) (models.ChartSpec, models.SummaryTable, error) {
	if normalizeBy == "" {
		normalizeBy = models.NormalizeByTime
	}

	freq, err := ComputeFrequencies(rows, categoryField, weightField)
	if err != nil {
		return models.ChartSpec{}, models.SummaryTable{}, err
	}
	order := Categories(freq)

	chartRows, summary, err := ComputeRatesOverTime(rows, timeField, categoryField, weightField, order, normalizeBy, topK)
	if err != nil {
		return models.ChartSpec{}, models.SummaryTable{}, err
	}

	bar := models.BarChartSpec{
		Variable:   categoryField,
		Categories: order,
		Counts:     make([]float64, len(freq)),
	}
	for i, e := range freq {
		bar.Counts[i] = e.Count
	}

	spec := models.ChartSpec{
		Variable: categoryField,
		Bar:      bar,
		Traces: models.FacetedLinesSpec{
			Variable:       categoryField,
			Facets:         groupFacets(chartRows),
			YFormat:        models.YFormatPercent,
			XLabelRotation: models.DefaultLabelRotation,
		},
	}
	return spec, summary, nil
}

// groupFacets folds long-form rate rows into one facet per category,
// keeping the category order of the rows.
func groupFacets(rows []models.RateRow) []models.RateFacet {
	var facets []models.RateFacet
	index := map[string]int{}
	for _, r := range rows {
		i, ok := index[r.Category]
		if !ok {
			i = len(facets)
			index[r.Category] = i
			facets = append(facets, models.RateFacet{Category: r.Category})
		}
		facets[i].Periods = append(facets[i].Periods, r.Period)
		facets[i].Rates = append(facets[i].Rates, r.Rate)
	}
	return facets
}
