package timedataset

import (
	"errors"
	"fmt"
	"math"
)

var ErrNonIncreasingYears = errors.New("years are not strictly increasing")

// YearlySeries holds one value per calendar year with strictly increasing years.
type YearlySeries struct {
	Years  []int
	Values []float64
}

// NewYearlySeries returns a YearlySeries copying the input years and values
func NewYearlySeries(years []int, values []float64) (*YearlySeries, error) {
	if len(years) != len(values) {
		return nil, fmt.Errorf(
			"years has length of %d, but values has a length of %d, %w",
			len(years), len(values), ErrDatasetLenMismatch,
		)
	}
	for i := 1; i < len(years); i++ {
		if years[i] <= years[i-1] {
			return nil, fmt.Errorf("year %d follows %d at %d, %w", years[i], years[i-1], i, ErrNonIncreasingYears)
		}
	}

	ys := make([]int, len(years))
	vs := make([]float64, len(values))
	copy(ys, years)
	copy(vs, values)
	return &YearlySeries{
		Years:  ys,
		Values: vs,
	}, nil
}

// Len returns the number of years in the series
func (y *YearlySeries) Len() int {
	if y == nil {
		return 0
	}
	return len(y.Years)
}

// FirstYear returns the earliest year or 0 for an empty series
func (y *YearlySeries) FirstYear() int {
	if y.Len() == 0 {
		return 0
	}
	return y.Years[0]
}

// Last returns the latest year and its value. ok is false for an empty series.
func (y *YearlySeries) Last() (year int, value float64, ok bool) {
	if y.Len() == 0 {
		return 0, 0, false
	}
	n := len(y.Years)
	return y.Years[n-1], y.Values[n-1], true
}

// Restrict returns the points with start <= year <= end
func (y *YearlySeries) Restrict(start, end int) *YearlySeries {
	res := &YearlySeries{
		Years:  []int{},
		Values: []float64{},
	}
	if y == nil {
		return res
	}
	for i, yr := range y.Years {
		if yr < start || yr > end {
			continue
		}
		res.Years = append(res.Years, yr)
		res.Values = append(res.Values, y.Values[i])
	}
	return res
}

// Copy returns a deep copy of the series
func (y *YearlySeries) Copy() *YearlySeries {
	ys := make([]int, len(y.Years))
	vs := make([]float64, len(y.Values))
	copy(ys, y.Years)
	copy(vs, y.Values)
	return &YearlySeries{
		Years:  ys,
		Values: vs,
	}
}

// BuildYearly reduces a table column into one value per calendar year. The value of a year is
// the last non-missing sample of that year in day order. Years whose value is missing or not
// positive are dropped since cumulative installed capacity is always positive. Returns
// ErrMissingColumn when the column does not exist.
func BuildYearly(table *CapacityTable, column string) (*YearlySeries, error) {
	vals, exists := table.Column(column)
	if !exists {
		return nil, fmt.Errorf("%q, %w", column, ErrMissingColumn)
	}

	series := &YearlySeries{
		Years:  []int{},
		Values: []float64{},
	}

	curYear := 0
	curVal := math.NaN()
	flush := func() {
		if curYear == 0 || math.IsNaN(curVal) || curVal <= 0 {
			return
		}
		series.Years = append(series.Years, curYear)
		series.Values = append(series.Values, curVal)
	}

	for i, day := range table.Days {
		yr := day.Year()
		if yr != curYear {
			flush()
			curYear = yr
			curVal = math.NaN()
		}
		if !math.IsNaN(vals[i]) {
			curVal = vals[i]
		}
	}
	flush()

	return series, nil
}
