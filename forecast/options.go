// Package forecast selects a polynomial trend per yearly capacity series and extrapolates it
// to a horizon year.
package forecast

import (
	"errors"
	"fmt"
	"io"

	"github.com/aouyang1/go-capacity-forecaster/forecast/util"
)

const (
	DefaultHorizon        = 2030
	DefaultCheckpointYear = 2025
	DefaultMinPoints      = 4

	// DefaultDegreePenalty is subtracted from R^2 for every degree above 1. It is a tuning
	// threshold that keeps quadratics off plateauing series unless they clearly fit better.
	DefaultDegreePenalty = 0.005

	DefaultAggregateStartYear = 2005
	DefaultAggregateEndYear   = 2018

	// AggregateDegree is the fixed polynomial degree of the commissioning trend
	AggregateDegree = 2
)

var (
	ErrNoDegrees          = errors.New("no candidate degrees")
	ErrInvalidDegree      = errors.New("candidate degrees must be at least 1 and strictly increasing")
	ErrNegativePenalty    = errors.New("degree penalty must be non-negative")
	ErrInvalidMinPoints   = errors.New("minimum points must exceed the highest candidate degree")
	ErrInvalidYearRange   = errors.New("start year is after end year")
	ErrHorizonBeforeStart = errors.New("horizon year is before the start year")
)

// Options configures per series model selection and extrapolation
type Options struct {
	// Horizon is the last year of every forecast curve
	Horizon int `json:"horizon"`

	// CheckpointYear is an intermediate year reported alongside the horizon value
	CheckpointYear int `json:"checkpoint_year"`

	// MinPoints is the fewest yearly points a series needs before any model is fit
	MinPoints int `json:"min_points"`

	// Degrees are the candidate polynomial degrees evaluated in increasing order. Ties in the
	// penalized score keep the earlier, lower degree.
	Degrees []int `json:"degrees"`

	// DegreePenalty is subtracted from R^2 once per degree above 1
	DegreePenalty float64 `json:"degree_penalty"`
}

// NewDefaultOptions returns linear vs quadratic selection out to 2030
func NewDefaultOptions() *Options {
	return &Options{
		Horizon:        DefaultHorizon,
		CheckpointYear: DefaultCheckpointYear,
		MinPoints:      DefaultMinPoints,
		Degrees:        []int{1, 2},
		DegreePenalty:  DefaultDegreePenalty,
	}
}

// Validate returns the default options for a nil receiver and checks the rest for consistency
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if len(o.Degrees) == 0 {
		return nil, ErrNoDegrees
	}
	for i, d := range o.Degrees {
		if d < 1 || (i > 0 && d <= o.Degrees[i-1]) {
			return nil, fmt.Errorf("got degrees %v, %w", o.Degrees, ErrInvalidDegree)
		}
	}
	if o.DegreePenalty < 0 {
		return nil, ErrNegativePenalty
	}
	maxDegree := o.Degrees[len(o.Degrees)-1]
	if o.MinPoints <= maxDegree {
		return nil, fmt.Errorf("got %d minimum points for degree %d, %w", o.MinPoints, maxDegree, ErrInvalidMinPoints)
	}
	return o, nil
}

// TablePrint writes the options in a human readable indented form
func (o *Options) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if o == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s%sSeries Forecast:\n", prefix, util.IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sHorizon: %d    Checkpoint: %d\n",
		prefix, util.IndentExpand(indent, indentGrowth+1), o.Horizon, o.CheckpointYear); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sDegrees: %v    Penalty: %.4f    Min Points: %d\n",
		prefix, util.IndentExpand(indent, indentGrowth+1), o.Degrees, o.DegreePenalty, o.MinPoints); err != nil {
		return err
	}
	return nil
}

// AggregateOptions configures the commissioning trend fit
type AggregateOptions struct {
	// StartYear and EndYear bound the years used for fitting, inclusive. The forecast curve
	// starts at StartYear.
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`

	// Horizon is the last year of the forecast curve
	Horizon int `json:"horizon"`
}

// NewDefaultAggregateOptions returns the 2005-2018 fit window extrapolated to 2030
func NewDefaultAggregateOptions() *AggregateOptions {
	return &AggregateOptions{
		StartYear: DefaultAggregateStartYear,
		EndYear:   DefaultAggregateEndYear,
		Horizon:   DefaultHorizon,
	}
}

// Validate returns the default options for a nil receiver and checks the year range
func (a *AggregateOptions) Validate() (*AggregateOptions, error) {
	if a == nil {
		return NewDefaultAggregateOptions(), nil
	}
	if a.StartYear > a.EndYear {
		return nil, fmt.Errorf("got %d to %d, %w", a.StartYear, a.EndYear, ErrInvalidYearRange)
	}
	if a.Horizon < a.StartYear {
		return nil, fmt.Errorf("got horizon %d and start %d, %w", a.Horizon, a.StartYear, ErrHorizonBeforeStart)
	}
	return a, nil
}

// TablePrint writes the options in a human readable indented form
func (a *AggregateOptions) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if a == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s%sCommissioning Trend:\n", prefix, util.IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s%sFit: %d-%d    Horizon: %d    Degree: %d\n",
		prefix, util.IndentExpand(indent, indentGrowth+1), a.StartYear, a.EndYear, a.Horizon, AggregateDegree)
	return err
}
