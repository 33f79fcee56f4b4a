package forecast

import (
	"github.com/aouyang1/go-capacity-forecaster/forecast/util"
	"github.com/aouyang1/go-capacity-forecaster/timedataset"
)

const (
	valuePlaces  = 2
	scorePlaces  = 4
	growthPlaces = 1
)

// SeriesResult is the forecast output of one named series. Value fields are rounded to two
// decimals, the score to four and the growth percentage to one. The json keys are consumed by
// the dashboard as is.
type SeriesResult struct {
	ActualYears     []int     `json:"actual_years"`
	ActualValues    []float64 `json:"actual_values"`
	AllYears        []int     `json:"all_years"`
	AllPredicted    []float64 `json:"all_predicted"`
	ForecastYears   []int     `json:"forecast_years"`
	ForecastValues  []float64 `json:"forecast_values"`
	ModelDegree     int       `json:"model_degree"`
	R2Score         float64   `json:"r2_score"`
	LatestActual    float64   `json:"latest_actual_MW"`
	CheckpointValue *float64  `json:"predicted_2025_MW"`
	HorizonValue    float64   `json:"predicted_2030_MW"`
	GrowthPct       float64   `json:"growth_2020_to_2030_pct"`
}

// GrowthPercent returns the percent change from latest to horizon rounded to one decimal, or 0
// when latest is 0.
func GrowthPercent(latest, horizon float64) float64 {
	if latest == 0 {
		return 0
	}
	return util.Round((horizon-latest)/latest*100, growthPlaces)
}

func roundedCopy(vals []float64, places int) []float64 {
	res := make([]float64, len(vals))
	copy(res, vals)
	return util.SliceMap(res, util.Rounder(places))
}

// NewSeriesResult assembles the output record of a series from its actual values, extrapolated
// curve and selected candidate. R2Score carries the penalized score the candidate was selected
// with. None of the inputs are modified.
func NewSeriesResult(series *timedataset.YearlySeries, curve *Curve, cand *Candidate, opt *Options) (SeriesResult, error) {
	opt, err := opt.Validate()
	if err != nil {
		return SeriesResult{}, err
	}
	if cand == nil || curve == nil {
		return SeriesResult{}, ErrUninitialized
	}
	_, lastVal, ok := series.Last()
	if !ok || len(curve.Years) == 0 {
		return SeriesResult{}, ErrNoSeries
	}

	forecastYears, forecastValues := curve.Forecast()

	latest := util.Round(lastVal, valuePlaces)
	horizon := util.Round(curve.Values[len(curve.Values)-1], valuePlaces)

	var checkpoint *float64
	if v, exists := curve.ValueAt(opt.CheckpointYear); exists {
		cp := util.Round(v, valuePlaces)
		checkpoint = &cp
	}

	actual := series.Copy()
	allYears := make([]int, len(curve.Years))
	copy(allYears, curve.Years)

	return SeriesResult{
		ActualYears:     actual.Years,
		ActualValues:    util.SliceMap(actual.Values, util.Rounder(valuePlaces)),
		AllYears:        allYears,
		AllPredicted:    roundedCopy(curve.Values, valuePlaces),
		ForecastYears:   forecastYears,
		ForecastValues:  roundedCopy(forecastValues, valuePlaces),
		ModelDegree:     cand.Degree,
		R2Score:         util.Round(cand.Adjusted, scorePlaces),
		LatestActual:    latest,
		CheckpointValue: checkpoint,
		HorizonValue:    horizon,
		GrowthPct:       GrowthPercent(latest, horizon),
	}, nil
}

// ForecastSeries runs selection, extrapolation and assembly for one yearly series. The selected
// candidate is returned alongside the result for reporting its unrounded fit.
func ForecastSeries(series *timedataset.YearlySeries, opt *Options) (SeriesResult, *Candidate, error) {
	opt, err := opt.Validate()
	if err != nil {
		return SeriesResult{}, nil, err
	}
	cand, err := SelectModel(series, opt)
	if err != nil {
		return SeriesResult{}, nil, err
	}
	curve, err := Extrapolate(cand, series, opt.Horizon)
	if err != nil {
		return SeriesResult{}, nil, err
	}
	res, err := NewSeriesResult(series, curve, cand, opt)
	if err != nil {
		return SeriesResult{}, nil, err
	}
	return res, cand, nil
}
