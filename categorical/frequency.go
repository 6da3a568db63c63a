package categorical

import (
	"sort"

	"github.com/pivolan/variable_plots/domain/models"
)

// ComputeFrequencies aggregates weighted counts of a categorical column
// grouped by value. Missing and empty values count under the "NA"
// category. The result is sorted by descending count; ties keep the
// first-seen order of the input, so the ordering is reproducible.
// weightField may be empty for unweighted rows.
func ComputeFrequencies(rows []map[string]interface{}, categoryField, weightField string) ([]models.FrequencyEntry, error) {
	counts := map[string]float64{}
	seen := []string{}
	for i, row := range rows {
		cat, err := categoryOf(row, categoryField, i)
		if err != nil {
			return nil, err
		}
		w, err := weightOf(row, weightField, i)
		if err != nil {
			return nil, err
		}
		if _, ok := counts[cat]; !ok {
			seen = append(seen, cat)
		}
		counts[cat] += w
	}

	entries := make([]models.FrequencyEntry, 0, len(seen))
	for _, cat := range seen {
		entries = append(entries, models.FrequencyEntry{Category: cat, Count: counts[cat]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries, nil
}

// Categories strips a frequency table down to its category order.
func Categories(entries []models.FrequencyEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Category
	}
	return out
}
