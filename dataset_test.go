package main

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/variable_plots/domain/models"
)

const testCSV = `date,status,amount
2024-01-05,ok,10
2024-01-20,fail,5
2024-02-03,ok,7
2024-02-10,,2
`

func writeTestCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	err := os.WriteFile(path, []byte(testCSV), 0644)
	assert.NoError(t, err)
	return path
}

func TestLoadCSVDataset(t *testing.T) {
	ds, err := loadCSVDataset(writeTestCSV(t), "month")
	assert.NoError(t, err)

	assert.Equal(t, []string{"date", "status", "amount"}, ds.Headers)
	assert.Equal(t, []models.ColumnInfo{
		{Name: "date", Type: "Date"},
		{Name: "status", Type: "String"},
		{Name: "amount", Type: "Int64"},
	}, ds.Columns)

	assert.Len(t, ds.Rows, 4)
	assert.Equal(t, "2024-01", ds.Rows[0]["date_month"])
	assert.Equal(t, "2024-02", ds.Rows[3]["date_month"])
	assert.Equal(t, "", ds.Rows[3]["status"])
}

func TestCSVSourceVariables(t *testing.T) {
	ds, err := loadCSVDataset(writeTestCSV(t), "month")
	assert.NoError(t, err)

	source := newCSVSource(ds, "month")
	variables, err := source.Variables()
	assert.NoError(t, err)
	assert.Equal(t, []models.VariableSpec{
		{CategoryField: "status", TimeField: "date_month"},
	}, variables)
}

func TestRunReportsEndToEnd(t *testing.T) {
	ds, err := loadCSVDataset(writeTestCSV(t), "month")
	assert.NoError(t, err)

	reports, err := runReports(newCSVSource(ds, "month"), 0, models.NormalizeByTime)
	assert.NoError(t, err)
	assert.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, "status", report.Variable)
	assert.Equal(t, []string{"ok", "fail", "NA"}, report.Spec.Bar.Categories)
	assert.Equal(t, []float64{2, 1, 1}, report.Spec.Bar.Counts)
	assert.NotEmpty(t, report.BarPNG)
	assert.NotEmpty(t, report.TracePNG)
	assert.NotEmpty(t, report.PageHTML)

	runDir, err := writeReportFiles(t.TempDir(), []*VariableReport{report})
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(runDir, "status_summary.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(runDir, "status_bar.png"))
	assert.NoError(t, err)
}

func TestUnpackGzipArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv.gz")
	f, err := os.Create(path)
	assert.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(testCSV))
	assert.NoError(t, err)
	assert.NoError(t, gw.Close())
	assert.NoError(t, f.Close())

	dataPath, err := unpackArchive(path)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.csv"), dataPath)

	content, err := os.ReadFile(dataPath)
	assert.NoError(t, err)
	assert.Equal(t, testCSV, string(content))
}

func TestUnpackArchivePassThrough(t *testing.T) {
	path, err := unpackArchive("plain.csv")
	assert.NoError(t, err)
	assert.Equal(t, "plain.csv", path)
}

func TestTruncatePeriod(t *testing.T) {
	ts := time.Date(2024, 3, 17, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "2024", truncatePeriod(ts, "year"))
	assert.Equal(t, "2024-03", truncatePeriod(ts, "month"))
	assert.Equal(t, "2024-03-17", truncatePeriod(ts, "day"))
	assert.Equal(t, "2024-03-17 14", truncatePeriod(ts, "hour"))
}

func TestValueType(t *testing.T) {
	assert.Equal(t, "", valueType(""))
	assert.Equal(t, "Int64", valueType("42"))
	assert.Equal(t, "Float64", valueType("4.2"))
	assert.Equal(t, "Date", valueType("2024-01-05"))
	assert.Equal(t, "DateTime64", valueType("2024-01-05 10:30:00"))
	assert.Equal(t, "String", valueType("hello"))
}
