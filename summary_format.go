package main

import (
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/variable_plots/domain/models"
)

// GenerateSummaryTable renders a summary as an ASCII table with the
// stable schema [variable, category, global_count, global_rate,
// period...], one column per observed period.
func GenerateSummaryTable(summary models.SummaryTable) string {
	t := table.NewWriter()
	t.AppendHeader(summaryHeader(summary))
	for _, row := range summary.Rows {
		t.AppendRow(summaryRow(summary, row))
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateSummaryMarkdown renders the same table for report documents.
func GenerateSummaryMarkdown(summary models.SummaryTable) string {
	t := table.NewWriter()
	t.AppendHeader(summaryHeader(summary))
	for _, row := range summary.Rows {
		t.AppendRow(summaryRow(summary, row))
	}
	return t.RenderMarkdown()
}

func summaryHeader(summary models.SummaryTable) table.Row {
	header := table.Row{"variable", "category", "global_count", "global_rate"}
	for _, p := range summary.Periods {
		header = append(header, p)
	}
	return header
}

func summaryRow(summary models.SummaryTable, row models.SummaryRow) table.Row {
	out := table.Row{
		summary.Variable,
		row.Category,
		formatCount(row.GlobalCount),
		formatRate(row.GlobalRate),
	}
	for _, rate := range row.PeriodRates {
		out = append(out, formatRate(rate))
	}
	return out
}

func formatCount(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatRate(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
