package forecaster

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/aouyang1/go-capacity-forecaster/forecast"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// missing is the echarts placeholder for a gap in a line
const missing = "-"

// LineYearly generates an echart multi-line chart over calendar years. Each slice of y must have
// the same length as years and NaN values are drawn as gaps.
func LineYearly(title, subtitle string, seriesName []string, years []int, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    title,
				Subtitle: subtitle,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				lineData[i] = append(lineData[i], opts.LineData{Value: missing})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(years)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}
	return line
}

// alignYearly spreads values onto the axis years leaving NaN where a year has no value
func alignYearly(axis []int, years []int, values []float64) []float64 {
	idx := make(map[int]int, len(axis))
	for i, yr := range axis {
		idx[yr] = i
	}
	res := make([]float64, len(axis))
	for i := range res {
		res[i] = math.NaN()
	}
	for i, yr := range years {
		if j, exists := idx[yr]; exists {
			res[j] = values[i]
		}
	}
	return res
}

// LineSeriesResult charts the actual values, the fit over the observed years and the forecast
// of a series. The forecast line starts at the last observed year so the two lines join.
func LineSeriesResult(label string, res forecast.SeriesResult) *charts.Line {
	axis := res.AllYears
	actual := alignYearly(axis, res.ActualYears, res.ActualValues)

	fit := make([]float64, len(axis))
	fc := make([]float64, len(axis))
	lastActual := math.MinInt
	if n := len(res.ActualYears); n > 0 {
		lastActual = res.ActualYears[n-1]
	}
	for i, yr := range axis {
		fit[i] = math.NaN()
		fc[i] = math.NaN()
		if yr <= lastActual {
			fit[i] = res.AllPredicted[i]
		}
		if yr >= lastActual {
			fc[i] = res.AllPredicted[i]
		}
	}

	subtitle := fmt.Sprintf("degree %d, r2 %.4f, growth %.1f%%", res.ModelDegree, res.R2Score, res.GrowthPct)
	return LineYearly(label, subtitle, []string{"Actual", "Fit", "Forecast"}, axis, [][]float64{actual, fit, fc})
}

// LineCommissioning charts the reported yearly commissioning against its trend forecast
func LineCommissioning(res forecast.AggregateResult) *charts.Line {
	seen := make(map[int]struct{}, len(res.ActualYears)+len(res.ForecastYears))
	axis := make([]int, 0, len(res.ActualYears)+len(res.ForecastYears))
	for _, years := range [][]int{res.ActualYears, res.ForecastYears} {
		for _, yr := range years {
			if _, exists := seen[yr]; exists {
				continue
			}
			seen[yr] = struct{}{}
			axis = append(axis, yr)
		}
	}
	sort.Ints(axis)

	return LineYearly(
		"Commissioning Trend",
		"yearly commissioned MW",
		[]string{"Actual", "Forecast"},
		axis,
		[][]float64{
			alignYearly(axis, res.ActualYears, res.ActualValues),
			alignYearly(axis, res.ForecastYears, res.ForecastValues),
		},
	)
}

// PlotPredictions uses the Apache Echarts library to render an html page with one chart per
// series followed by the commissioning trend.
func PlotPredictions(w io.Writer, p *Predictions) error {
	if p == nil {
		return ErrUninitialized
	}
	page := components.NewPage()
	for _, label := range p.Labels() {
		res, _ := p.Series(label)
		page.AddCharts(LineSeriesResult(label, res))
	}
	if p.Commissioning != nil {
		page.AddCharts(LineCommissioning(*p.Commissioning))
	}
	return page.Render(w)
}

// PlotFile renders the predictions page to path
func (p *Predictions) PlotFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return PlotPredictions(file, p)
}
