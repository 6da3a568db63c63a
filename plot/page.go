package plot

import (
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/variable_plots/domain/models"
)

// Panel widths follow the composite layout of the chart spec: the bar
// panel takes one share, the trace panel two.
const panelShareWidth = 420

// RenderCompositePage writes the composite report for one variable as
// a self-contained HTML page: the frequency bar panel followed by one
// line chart per retained category, laid out side by side.
func RenderCompositePage(spec models.ChartSpec, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = spec.Variable
	page.SetLayout(components.PageFlexLayout)

	page.AddCharts(compositeBar(spec.Bar))
	for _, facet := range spec.Traces.Facets {
		page.AddCharts(compositeTrace(spec.Traces, facet))
	}
	return page.Render(w)
}

func compositeBar(spec models.BarChartSpec) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  pixels(models.BarPanelWidthShare * panelShareWidth),
			Height: "360px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    spec.Variable,
			Subtitle: "category counts",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 30},
		}),
	)

	data := make([]opts.BarData, 0, len(spec.Counts))
	for _, c := range spec.Counts {
		data = append(data, opts.BarData{Value: c})
	}
	bar.SetXAxis(spec.Categories).AddSeries("count", data)
	return bar
}

func compositeTrace(spec models.FacetedLinesSpec, facet models.RateFacet) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  pixels(models.TracePanelWidthShare * panelShareWidth),
			Height: "360px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    facet.Category,
			Subtitle: spec.Variable + " rate over time",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: float64(spec.XLabelRotation)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			AxisLabel: &opts.AxisLabel{Formatter: "{value} %"},
		}),
	)

	data := make([]opts.LineData, 0, len(facet.Rates))
	for _, rate := range facet.Rates {
		if math.IsNaN(rate) {
			// echarts shows "-" values as gaps.
			data = append(data, opts.LineData{Value: "-"})
			continue
		}
		data = append(data, opts.LineData{Value: math.Round(rate*10000) / 100})
	}
	line.SetXAxis(facet.Periods).AddSeries(facet.Category, data)
	return line
}

func pixels(n int) string {
	return strconv.Itoa(n) + "px"
}
