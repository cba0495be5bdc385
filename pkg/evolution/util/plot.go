package util

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/algorithms"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/benchmarks"
)

// PlotTour renders the cities of a route as a scatter plot with the closed
// tour drawn over them, as a standalone HTML page.
func PlotTour(w io.Writer, title string, route []benchmarks.City) error {
	if len(route) == 0 {
		return fmt.Errorf("route is empty for %s", title)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "x",
			Type: "value",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "y",
			Type: "value",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	cities := make([]opts.ScatterData, len(route))
	for i, c := range route {
		cities[i] = opts.ScatterData{
			Name:       c.Name,
			Value:      []float64{c.X, c.Y},
			Symbol:     "circle",
			SymbolSize: 10,
		}
	}
	scatter.AddSeries("Cities", cities)

	legs := make([]opts.LineData, 0, len(route)+1)
	for _, c := range route {
		legs = append(legs, opts.LineData{Value: []float64{c.X, c.Y}})
	}
	legs = append(legs, opts.LineData{Value: []float64{route[0].X, route[0].Y}})

	tour := charts.NewLine()
	tour.AddSeries("Tour", legs)
	scatter.Overlap(tour)

	return scatter.Render(w)
}

// PlotConvergence renders best and mean fitness per generation as a line chart.
func PlotConvergence(w io.Writer, title string, history []algorithms.GenerationStats) error {
	if len(history) == 0 {
		return fmt.Errorf("history is empty for %s", title)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "fitness",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	generations := make([]int, len(history))
	best := make([]opts.LineData, len(history))
	mean := make([]opts.LineData, len(history))
	for i, s := range history {
		generations[i] = s.Generation
		best[i] = opts.LineData{Value: chartValue(s.Best)}
		mean[i] = opts.LineData{Value: chartValue(s.Mean)}
	}

	line.SetXAxis(generations).
		AddSeries("Best", best).
		AddSeries("Mean", mean).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	return line.Render(w)
}

// chartValue maps values JSON cannot carry to the echarts missing-value marker.
func chartValue(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	return v
}
