package categorical

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/variable_plots/domain/models"
)

func obs(cat interface{}, period string) map[string]interface{} {
	return map[string]interface{}{"status": cat, "month": period}
}

func repeatObs(cat interface{}, period string, n int) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, obs(cat, period))
	}
	return rows
}

func TestComputeFrequenciesCountsSumToTotal(t *testing.T) {
	rows := []map[string]interface{}{
		{"status": "a", "w": 2.5},
		{"status": "b", "w": 1.0},
		{"status": "a", "w": 0.5},
		{"status": nil, "w": 3.0},
	}
	freq, err := ComputeFrequencies(rows, "status", "w")
	assert.NoError(t, err)

	sum := 0.0
	for _, e := range freq {
		sum += e.Count
	}
	assert.Equal(t, 7.0, sum)
}

func TestComputeFrequenciesRecodesMissing(t *testing.T) {
	rows := []map[string]interface{}{
		{"status": nil},
		{"status": ""},
		{"status": "ok"},
	}
	freq, err := ComputeFrequencies(rows, "status", "")
	assert.NoError(t, err)
	assert.Equal(t, []models.FrequencyEntry{
		{Category: "NA", Count: 2},
		{Category: "ok", Count: 1},
	}, freq)
}

func TestComputeFrequenciesOrderAndTies(t *testing.T) {
	rows := []map[string]interface{}{}
	rows = append(rows, repeatObs("rare1", "1", 2)...)
	rows = append(rows, repeatObs("common", "1", 5)...)
	rows = append(rows, repeatObs("rare2", "1", 2)...)

	freq, err := ComputeFrequencies(rows, "status", "")
	assert.NoError(t, err)
	// Ties keep first-seen input order.
	assert.Equal(t, []string{"common", "rare1", "rare2"}, Categories(freq))
}

func TestComputeFrequenciesMissingField(t *testing.T) {
	rows := []map[string]interface{}{{"other": "x"}}
	_, err := ComputeFrequencies(rows, "status", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeFrequenciesBadWeights(t *testing.T) {
	_, err := ComputeFrequencies([]map[string]interface{}{
		{"status": "a", "w": -1.0},
	}, "status", "w")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeFrequencies([]map[string]interface{}{
		{"status": "a", "w": "lots"},
	}, "status", "w")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeFrequencies([]map[string]interface{}{
		{"status": "a"},
	}, "status", "w")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeFrequenciesStringWeights(t *testing.T) {
	// CSV-sourced rows keep weights as strings.
	freq, err := ComputeFrequencies([]map[string]interface{}{
		{"status": "a", "w": "2.5"},
		{"status": "a", "w": "1.5"},
	}, "status", "w")
	assert.NoError(t, err)
	assert.Equal(t, 4.0, freq[0].Count)
}
