package forecast

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-capacity-forecaster/forecast/util"
	"github.com/aouyang1/go-capacity-forecaster/timedataset"
)

var ErrHorizonBeforeData = errors.New("horizon year is before the first observed year")

// Curve is a model evaluated at every year from the first observed year through the horizon.
// Years after LastActualYear are forecasts.
type Curve struct {
	Years          []int
	Values         []float64
	LastActualYear int
}

// Extrapolate evaluates the candidate from the first year of the series through horizon. Negative
// values are clamped to 0. Values after the last observed year are raised to a running floor
// seeded with the last observed value so the forecast never falls. Values up to the last
// observed year are the unmodified fit.
func Extrapolate(cand *Candidate, series *timedataset.YearlySeries, horizon int) (*Curve, error) {
	if cand == nil {
		return nil, ErrUninitialized
	}
	lastYear, lastVal, ok := series.Last()
	if !ok {
		return nil, ErrNoSeries
	}
	first := series.FirstYear()
	if horizon < first {
		return nil, fmt.Errorf("got horizon %d and first year %d, %w", horizon, first, ErrHorizonBeforeData)
	}

	years := yearRange(first, horizon)
	values, err := cand.Predict(years)
	if err != nil {
		return nil, err
	}
	util.SliceMap(values, util.ClampNonNegative)

	floor := lastVal
	for i, yr := range years {
		if yr <= lastYear {
			continue
		}
		values[i] = max(values[i], floor)
		floor = values[i]
	}

	return &Curve{
		Years:          years,
		Values:         values,
		LastActualYear: lastYear,
	}, nil
}

func yearRange(start, end int) []int {
	if end < start {
		return []int{}
	}
	years := make([]int, 0, end-start+1)
	for yr := start; yr <= end; yr++ {
		years = append(years, yr)
	}
	return years
}

func (c *Curve) split(forecast bool) ([]int, []float64) {
	years := make([]int, 0, len(c.Years))
	values := make([]float64, 0, len(c.Values))
	for i, yr := range c.Years {
		if (yr > c.LastActualYear) != forecast {
			continue
		}
		years = append(years, yr)
		values = append(values, c.Values[i])
	}
	return years, values
}

// History returns the portion of the curve at or before the last observed year
func (c *Curve) History() ([]int, []float64) {
	return c.split(false)
}

// Forecast returns the portion of the curve after the last observed year
func (c *Curve) Forecast() ([]int, []float64) {
	return c.split(true)
}

// ValueAt returns the curve value of a year and whether the year is on the curve
func (c *Curve) ValueAt(year int) (float64, bool) {
	if c == nil || len(c.Years) == 0 {
		return 0, false
	}
	idx := year - c.Years[0]
	if idx < 0 || idx >= len(c.Years) {
		return 0, false
	}
	return c.Values[idx], true
}
