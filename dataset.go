// dataset.go
package main

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/pivolan/variable_plots/domain/models"
)

// RowSource feeds the aggregation pipeline. One implementation reads a
// CSV into memory, another pre-aggregates in ClickHouse; the report
// builder does not care which.
type RowSource interface {
	Variables() ([]models.VariableSpec, error)
	Rows(v models.VariableSpec) ([]map[string]interface{}, error)
}

type Dataset struct {
	Headers []string
	Columns []models.ColumnInfo
	Rows    []map[string]interface{}
}

const typeSampleLimit = 50000

// Categorical variables with more distinct values than this are noise
// (ids, free text), not categories.
const maxCategoricalCardinality = 1000

var typesWeight = []string{"", "DateTime64", "Date", "Int64", "Float64", "String"}

// loadCSVDataset reads a CSV file (possibly gzip/lz4/zip archived)
// into row maps, detects column types over a sample and derives one
// period-label column per date column, truncated to periodUnit.
func loadCSVDataset(path string, periodUnit string) (*Dataset, error) {
	dataPath, err := unpackArchive(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(dataPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true

	firstRow, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", dataPath)
	}
	analysis := AnalyzeHeaders(firstRow)
	if analysis == nil {
		return nil, errors.New("empty csv header row")
	}

	records := [][]string{}
	if analysis.FirstRowIsData {
		records = append(records, analysis.FirstDataRow)
	}
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		if len(record) != len(analysis.Headers) {
			continue
		}
		records = append(records, record)
	}

	ds := &Dataset{Headers: analysis.Headers}
	for i, name := range analysis.Headers {
		ds.Columns = append(ds.Columns, models.ColumnInfo{
			Name: name,
			Type: detectColumnType(records, i),
		})
	}

	for _, record := range records {
		row := map[string]interface{}{}
		for i, name := range ds.Headers {
			row[name] = record[i]
			if isDateType(ds.Columns[i].Type) {
				label := ""
				if t, _, err := parseDateTime(record[i]); err == nil {
					label = truncatePeriod(t, periodUnit)
				}
				row[periodColumn(name, periodUnit)] = label
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// detectColumnType samples a column and picks the weakest type that
// covers every sampled value, String being the catch-all. Empty values
// do not vote.
func detectColumnType(records [][]string, col int) string {
	weight := 0
	for i, record := range records {
		if i >= typeSampleLimit {
			break
		}
		w := searchStrings(typesWeight, valueType(record[col]))
		if w > weight {
			weight = w
		}
	}
	return typesWeight[weight]
}

func valueType(value string) string {
	if value == "" {
		return ""
	}
	if _, kind, err := parseDateTime(value); err == nil {
		return kind
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return "Int64"
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return "Float64"
	}
	return "String"
}

func searchStrings(a []string, x string) int {
	for i, s := range a {
		if s == x {
			return i
		}
	}
	return -1
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

func parseDateTime(value string) (time.Time, string, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, "DateTime64", nil
		}
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, "Date", nil
	}
	return time.Time{}, "", errors.Errorf("not a date: %q", value)
}

func isDateType(columnType string) bool {
	return columnType == "Date" || columnType == "DateTime64"
}

// truncatePeriod formats a timestamp as an ISO-prefix period label, so
// lexicographic order of labels is chronological.
func truncatePeriod(t time.Time, unit string) string {
	switch unit {
	case "year":
		return t.Format("2006")
	case "day":
		return t.Format("2006-01-02")
	case "hour":
		return t.Format("2006-01-02 15")
	default:
		return t.Format("2006-01")
	}
}

func periodColumn(name, unit string) string {
	return name + "_" + unit
}

// csvSource serves every variable from the same in-memory rows.
type csvSource struct {
	ds         *Dataset
	periodUnit string
}

func newCSVSource(ds *Dataset, periodUnit string) *csvSource {
	return &csvSource{ds: ds, periodUnit: periodUnit}
}

// Variables pairs each usable categorical column with the first date
// column's period labels. Id-like and high-cardinality columns are
// skipped, as are constant ones.
func (s *csvSource) Variables() ([]models.VariableSpec, error) {
	timeField := ""
	for _, col := range s.ds.Columns {
		if isDateType(col.Type) {
			timeField = periodColumn(col.Name, s.periodUnit)
			break
		}
	}
	if timeField == "" {
		return nil, errors.New("no date column found, nothing to bucket over time")
	}

	specs := []models.VariableSpec{}
	for _, col := range s.ds.Columns {
		if col.Type != "String" || excludeColumn(col.Name) {
			continue
		}
		uniq := s.distinctCount(col.Name)
		if uniq < 2 || uniq >= maxCategoricalCardinality {
			continue
		}
		specs = append(specs, models.VariableSpec{
			CategoryField: col.Name,
			TimeField:     timeField,
		})
	}
	return specs, nil
}

func (s *csvSource) distinctCount(name string) int {
	seen := map[interface{}]bool{}
	for _, row := range s.ds.Rows {
		seen[row[name]] = true
	}
	return len(seen)
}

func (s *csvSource) Rows(models.VariableSpec) ([]map[string]interface{}, error) {
	return s.ds.Rows, nil
}
