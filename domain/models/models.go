package models

// MissingCategory is the reserved literal for missing or empty
// categorical values. A genuine data value equal to "NA" merges into
// this sentinel.
const MissingCategory = "NA"

type NormalizeMode string

const (
	// NormalizeByTime divides each (category, period) count by the
	// period total.
	NormalizeByTime NormalizeMode = "time"
	// NormalizeByCategory divides each (category, period) count by the
	// category total across all periods.
	NormalizeByCategory NormalizeMode = "category"
)

// FrequencyEntry is one row of a global frequency table. Count is a sum
// of row weights (plain row count when unweighted).
type FrequencyEntry struct {
	Category string
	Count    float64
}

// RateRow is one cell of the long-form rate table: the weighted count
// of a category inside a time period and that count divided by the
// normalization denominator. Rate is NaN when the denominator is zero.
type RateRow struct {
	Category string
	Period   string
	Count    float64
	Rate     float64
}

// SummaryRow is one category of the wide-form summary. PeriodRates is
// aligned with SummaryTable.Periods.
type SummaryRow struct {
	Category    string
	GlobalCount float64
	GlobalRate  float64
	PeriodRates []float64
}

// SummaryTable is the wide-form summary: one row per category
// (descending global count, NA always present), one rate column per
// observed period in ascending order.
type SummaryTable struct {
	Variable string
	Periods  []string
	Rows     []SummaryRow
}

// BarChartSpec describes the global frequency bar chart: categories on
// X in descending count order, counts on Y.
type BarChartSpec struct {
	Variable   string
	Categories []string
	Counts     []float64
}

// RateFacet is one panel of the faceted trace plot. Rates is aligned
// with Periods; NaN marks a period with no data.
type RateFacet struct {
	Category string
	Periods  []string
	Rates    []float64
}

// FacetedLinesSpec describes the rate-over-time panel: one facet per
// retained category, rate on Y formatted as a percentage, period on X.
type FacetedLinesSpec struct {
	Variable       string
	Facets         []RateFacet
	YFormat        string
	XLabelRotation int
}

const (
	YFormatPercent       = "percent"
	DefaultLabelRotation = 30
	BarPanelWidthShare   = 1
	TracePanelWidthShare = 2
)

// ChartSpec is the composite layout handed to chart rendering: bar
// panel and trace panel side by side, width ratio 1:2.
type ChartSpec struct {
	Variable string
	Bar      BarChartSpec
	Traces   FacetedLinesSpec
}

// ColumnInfo describes a dataset column and its detected type
// (String, Date, DateTime64, Int64, Float64).
type ColumnInfo struct {
	Name string
	Type string
}

// VariableSpec names the fields of one report invocation: which column
// is the categorical variable, which carries the period label and
// which (optionally) the row weight.
type VariableSpec struct {
	CategoryField string
	TimeField     string
	WeightField   string
}
