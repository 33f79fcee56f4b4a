package forecast

import (
	"errors"
	"fmt"

	mat_ "github.com/aouyang1/go-capacity-forecaster/mat"

	"github.com/aouyang1/go-capacity-forecaster/forecast/util"
	"github.com/aouyang1/go-capacity-forecaster/linearmodel"
	"github.com/aouyang1/go-capacity-forecaster/timedataset"
)

var ErrNoValidYears = errors.New("no aggregate rows within the fit year range")

// AggregateResult is the commissioning trend forecast. Actual lists cover every reported year
// while the forecast starts at the first year of the fit range.
type AggregateResult struct {
	ActualYears    []int     `json:"actual_years"`
	ActualValues   []float64 `json:"actual_MW"`
	ForecastYears  []int     `json:"forecast_years"`
	ForecastValues []float64 `json:"forecast_MW"`
}

// PredictAggregate fits a quadratic in the calendar year to yearly totals within
// [StartYear, EndYear] and evaluates it from StartYear through Horizon with negative values
// clamped to 0. Yearly totals are flows rather than cumulative stock so the forecast may fall.
// The fit is the minimum norm least squares solution over the raw year powers, so a window with
// a single row forecasts that value flat and two rows are passed through exactly. Only an empty
// window is an error.
func PredictAggregate(years []int, totals []float64, opt *AggregateOptions) (AggregateResult, error) {
	opt, err := opt.Validate()
	if err != nil {
		return AggregateResult{}, err
	}

	series, err := timedataset.NewYearlySeries(years, totals)
	if err != nil {
		return AggregateResult{}, fmt.Errorf("invalid aggregate series, %w", err)
	}

	fit := series.Restrict(opt.StartYear, opt.EndYear)
	if fit.Len() == 0 {
		return AggregateResult{}, fmt.Errorf("%d-%d, %w", opt.StartYear, opt.EndYear, ErrNoValidYears)
	}

	model, err := linearmodel.NewPolynomialRegression(
		&linearmodel.PolynomialOptions{
			Degree:  AggregateDegree,
			Center:  false,
			MinNorm: true,
		},
	)
	if err != nil {
		return AggregateResult{}, err
	}
	if err := model.Fit(mat_.Years(fit.Years, 0), fit.Values); err != nil {
		return AggregateResult{}, fmt.Errorf("unable to fit commissioning trend, %w", err)
	}

	forecastYears := yearRange(opt.StartYear, opt.Horizon)
	forecastValues, err := model.Predict(mat_.Years(forecastYears, 0))
	if err != nil {
		return AggregateResult{}, err
	}
	util.SliceMap(forecastValues, util.ClampNonNegative)
	util.SliceMap(forecastValues, util.Rounder(valuePlaces))

	return AggregateResult{
		ActualYears:    series.Years,
		ActualValues:   util.SliceMap(series.Values, util.Rounder(valuePlaces)),
		ForecastYears:  forecastYears,
		ForecastValues: forecastValues,
	}, nil
}
