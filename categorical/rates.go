package categorical

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/pivolan/variable_plots/domain/models"
)

// DefaultTopK caps how many highest-frequency categories go into the
// chart-facing rate rows. The summary table is never capped.
const DefaultTopK = 9

// ComputeRatesOverTime builds the long-form rate table and the
// wide-form summary for one categorical variable.
//
// The long-form result covers the full cross-product of categories and
// observed periods; combinations without observations carry count 0.
// Rate is count divided by the period total (NormalizeByTime) or the
// category total (NormalizeByCategory); a zero denominator yields NaN.
//
// The returned rate rows are the chart-facing subset: with exactly two
// categories only the less prevalent one is kept (the other trace is
// its mirror image), and with more than topK categories only the topK
// most frequent are kept. The summary always covers every category and
// always contains an "NA" row, synthesized with zero rates when the
// input had no missing values.
//
// categoryOrder is usually the ComputeFrequencies order; pass nil to
// have it computed internally. Observed categories absent from a
// caller-supplied order are appended in descending frequency order.
func ComputeRatesOverTime(rows []map[string]interface{}, timeField, categoryField, weightField string, categoryOrder []string, normalizeBy models.NormalizeMode, topK int) ([]models.RateRow, models.SummaryTable, error) {
	summary := models.SummaryTable{Variable: categoryField}
	if normalizeBy != models.NormalizeByTime && normalizeBy != models.NormalizeByCategory {
		return nil, summary, errors.Wrapf(ErrInvalidInput, "unknown normalization mode %q", normalizeBy)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	counts := map[string]map[string]float64{}
	periodSet := map[string]bool{}
	catTotals := map[string]float64{}
	for i, row := range rows {
		cat, err := categoryOf(row, categoryField, i)
		if err != nil {
			return nil, summary, err
		}
		period, err := periodOf(row, timeField, i)
		if err != nil {
			return nil, summary, err
		}
		w, err := weightOf(row, weightField, i)
		if err != nil {
			return nil, summary, err
		}
		if counts[cat] == nil {
			counts[cat] = map[string]float64{}
		}
		counts[cat][period] += w
		catTotals[cat] += w
		periodSet[period] = true
	}
	if len(counts) == 0 || len(periodSet) == 0 {
		return nil, summary, errors.Wrap(ErrDegenerateInput, "no categories or time periods observed")
	}

	if categoryOrder == nil {
		freq, err := ComputeFrequencies(rows, categoryField, weightField)
		if err != nil {
			return nil, summary, err
		}
		categoryOrder = Categories(freq)
	}
	order := completeOrder(categoryOrder, catTotals)

	// Period labels are truncated ISO dates, so lexicographic order is
	// chronological.
	periods := make([]string, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	periodTotals := map[string]float64{}
	for _, byPeriod := range counts {
		for p, c := range byPeriod {
			periodTotals[p] += c
		}
	}

	// Full cross-product, zero-filled.
	long := make([]models.RateRow, 0, len(order)*len(periods))
	for _, cat := range order {
		for _, p := range periods {
			count := counts[cat][p]
			denom := periodTotals[p]
			if normalizeBy == models.NormalizeByCategory {
				denom = catTotals[cat]
			}
			rate := math.NaN()
			if denom != 0 {
				rate = count / denom
			}
			long = append(long, models.RateRow{Category: cat, Period: p, Count: count, Rate: rate})
		}
	}

	summary = buildSummary(categoryField, order, periods, counts, catTotals, periodTotals, normalizeBy)

	chartCats := order
	if len(order) == 2 {
		// Binary variable: both traces carry the same information, keep
		// the less prevalent one.
		chartCats = order[1:2]
	} else if len(order) > topK {
		chartCats = order[:topK]
	}
	keep := map[string]bool{}
	for _, c := range chartCats {
		keep[c] = true
	}
	chartRows := make([]models.RateRow, 0, len(chartCats)*len(periods))
	for _, r := range long {
		if keep[r.Category] {
			chartRows = append(chartRows, r)
		}
	}
	return chartRows, summary, nil
}

// completeOrder appends observed categories missing from the supplied
// order, most frequent first, so the cross-product always covers every
// observed category.
func completeOrder(order []string, catTotals map[string]float64) []string {
	listed := map[string]bool{}
	out := make([]string, 0, len(catTotals))
	for _, cat := range order {
		if _, observed := catTotals[cat]; observed && !listed[cat] {
			out = append(out, cat)
			listed[cat] = true
		}
	}
	rest := []string{}
	for cat := range catTotals {
		if !listed[cat] {
			rest = append(rest, cat)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		if catTotals[rest[i]] != catTotals[rest[j]] {
			return catTotals[rest[i]] > catTotals[rest[j]]
		}
		return rest[i] < rest[j]
	})
	return append(out, rest...)
}

func buildSummary(variable string, order, periods []string, counts map[string]map[string]float64, catTotals, periodTotals map[string]float64, normalizeBy models.NormalizeMode) models.SummaryTable {
	total := 0.0
	for _, c := range catTotals {
		total += c
	}

	table := models.SummaryTable{Variable: variable, Periods: periods}
	haveNA := false
	for _, cat := range order {
		if cat == models.MissingCategory {
			haveNA = true
		}
		row := models.SummaryRow{
			Category:    cat,
			GlobalCount: catTotals[cat],
			PeriodRates: make([]float64, len(periods)),
		}
		row.GlobalRate = math.NaN()
		if total != 0 {
			row.GlobalRate = catTotals[cat] / total
		}
		for i, p := range periods {
			denom := periodTotals[p]
			if normalizeBy == models.NormalizeByCategory {
				denom = catTotals[cat]
			}
			if denom == 0 {
				row.PeriodRates[i] = math.NaN()
			} else {
				row.PeriodRates[i] = counts[cat][p] / denom
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if !haveNA {
		// The summary always reports on missing data, even when there
		// is none. Zero rates by convention, not NaN.
		table.Rows = append(table.Rows, models.SummaryRow{
			Category:    models.MissingCategory,
			GlobalCount: 0,
			GlobalRate:  0,
			PeriodRates: make([]float64, len(periods)),
		})
	}
	return table
}
