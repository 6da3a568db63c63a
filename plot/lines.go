package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/variable_plots/domain/models"
)

// DrawRateTraces renders the rate-over-time panel as a PNG: one line
// per retained category over the shared period axis, rates shown as
// percentages. NaN rates mark empty periods and are skipped, leaving a
// gap in that trace.
func DrawRateTraces(spec models.FacetedLinesSpec) ([]byte, error) {
	if len(spec.Facets) == 0 {
		return nil, fmt.Errorf("no traces to draw for %s", spec.Variable)
	}

	periods := spec.Facets[0].Periods
	ticks := make([]chart.Tick, 0, len(periods))
	for i, p := range periods {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p})
	}

	var series []chart.Series
	for i, facet := range spec.Facets {
		xs := []float64{}
		ys := []float64{}
		for j, rate := range facet.Rates {
			if math.IsNaN(rate) {
				continue
			}
			xs = append(xs, float64(j))
			ys = append(ys, rate)
		}
		if len(xs) < 2 {
			// go-chart cannot draw a line through fewer than two
			// points; the period shows up in the HTML page instead.
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    facet.Category,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("not enough points to draw traces for %s", spec.Variable)
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("%s: rate over time", spec.Variable),
		Background: chart.Style{
			FillColor:   drawing.ColorWhite,
			StrokeColor: drawing.ColorFromHex("efefef"),
			StrokeWidth: 1,
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 80,
			},
		},
		Width:  2048,
		Height: 1024,
		XAxis: chart.XAxis{
			Name:  "period",
			Ticks: ticks,
			Style: chart.Style{
				TextRotationDegrees: float64(spec.XLabelRotation),
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(len(periods) - 1),
			},
		},
		YAxis: chart.YAxis{
			Name: "rate",
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.1f%%", vf*100)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}
