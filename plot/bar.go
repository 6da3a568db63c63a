package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/variable_plots/domain/models"
)

// DrawCategoryBar renders the global frequency panel as a PNG: one bar
// per category, already ordered by descending count.
func DrawCategoryBar(spec models.BarChartSpec) ([]byte, error) {
	if len(spec.Categories) == 0 {
		return nil, fmt.Errorf("no categories to draw for %s", spec.Variable)
	}

	bars := make([]chart.Value, 0, len(spec.Categories))
	for i, cat := range spec.Categories {
		bars = append(bars, chart.Value{
			Value: spec.Counts[i],
			Label: cat,
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}

	maxY := findMaxValue(spec.Counts)
	gridStep := calculateGridStep(maxY)
	var ticks []chart.Tick
	if gridStep > 0 {
		top := math.Ceil(maxY/gridStep) * gridStep
		for v := 0.0; v <= top; v += gridStep {
			ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
		}
		maxY = top
	}

	paddingX := paddingForLabels(bars)
	width, height := barChartDimensions(len(bars), 100)

	graph := chart.BarChart{
		Title: fmt.Sprintf("%s: category counts", spec.Variable),
		Background: chart.Style{
			FillColor:   drawing.ColorWhite,
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1,
			Padding: chart.Box{
				Top:    50,
				Bottom: paddingX,
			},
		},
		Height:   height + 50,
		Width:    width + paddingX + 50,
		BarWidth: 60,
		Bars:     bars,
		XAxis: chart.Style{
			StrokeWidth:         2,
			StrokeColor:         chart.ColorBlack,
			TextRotationDegrees: 88,
			FontSize:            17,
		},
		YAxis: chart.YAxis{
			Name: "count",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: maxY,
			},
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: chart.ColorBlack,
				FontSize:    17,
			},
			Ticks: ticks,
			GridMajorStyle: chart.Style{
				StrokeColor:     chart.ColorBlack,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

func findMaxValue(y []float64) float64 {
	max := 0.0
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func paddingForLabels(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}

func barChartDimensions(bars int, minBarWidth float64) (width, height int) {
	if bars <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if bars < 2 {
		x = 10.0
	} else if bars < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)
	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(bars) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}
