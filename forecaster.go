// Package forecaster runs the per series capacity forecasts and the commissioning trend over a
// capacity table and analysis report, producing the ordered predictions document.
package forecaster

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aouyang1/go-capacity-forecaster/forecast"
	"github.com/aouyang1/go-capacity-forecaster/report"
	"github.com/aouyang1/go-capacity-forecaster/timedataset"
)

var (
	ErrNoCapacityTable = errors.New("no capacity table or uninitialized")
	ErrUninitialized   = errors.New("uninitialized forecaster")
)

// Skip records a configured series that produced no forecast
type Skip struct {
	Label  string
	Column string
	Err    error
}

// Forecaster forecasts every configured series of a capacity table
type Forecaster struct {
	opt *Options
}

// New creates a new instance of a Forecaster using the provided options. If no options are
// provided a default is used.
func New(opt *Options) (*Forecaster, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize forecaster, %w", err)
	}
	return &Forecaster{opt: opt}, nil
}

// Options returns the validated options of the forecaster
func (f *Forecaster) Options() *Options {
	if f == nil {
		return nil
	}
	return f.opt
}

type seriesOutcome struct {
	res     forecast.SeriesResult
	cand    *forecast.Candidate
	skipErr error
}

// Run forecasts every configured series whose column is present in the table, then the
// commissioning trend when a report is given. Series failures are recorded in the Skipped list
// of the predictions and never abort the run. An invalid report or a failing commissioning trend
// is returned as an error together with the predictions of every series already forecast.
func (f *Forecaster) Run(table *timedataset.CapacityTable, rep *report.AggregateReport) (*Predictions, error) {
	if f == nil || f.opt == nil {
		return nil, ErrUninitialized
	}
	if table == nil {
		return nil, ErrNoCapacityTable
	}

	configs := make([]SeriesConfig, 0, len(f.opt.Series))
	for _, sc := range f.opt.Series {
		if _, exists := table.Column(sc.Column); !exists {
			slog.Debug("column not in capacity table, excluding series", "label", sc.Label, "column", sc.Column)
			continue
		}
		configs = append(configs, sc)
	}

	outcomes := f.runSeries(table, configs)

	preds := NewPredictions()
	for i, sc := range configs {
		out := outcomes[i]
		if out.skipErr != nil {
			slog.Warn("skipping series", "label", sc.Label, "column", sc.Column, "error", out.skipErr.Error())
			preds.Skipped = append(preds.Skipped, Skip{Label: sc.Label, Column: sc.Column, Err: out.skipErr})
			continue
		}
		res := out.res
		eq, err := out.cand.ModelEq()
		if err != nil {
			return nil, fmt.Errorf("unable to describe model of %q, %w", sc.Label, err)
		}
		slog.Info("forecast series",
			"label", sc.Label,
			"model", eq,
			"degree", res.ModelDegree,
			"r2", out.cand.Scores.R2,
			"adjusted_r2", res.R2Score,
			"mse", out.cand.Scores.MSE,
			"mape", out.cand.Scores.MAPE,
			"latest_MW", res.LatestActual,
			"horizon_MW", res.HorizonValue,
			"growth_pct", res.GrowthPct,
		)
		if err := preds.AddSeries(sc.Label, res); err != nil {
			return nil, err
		}
	}

	if rep == nil {
		slog.Warn("no analysis report, skipping commissioning forecast")
		return preds, nil
	}
	if err := rep.Validate(); err != nil {
		return preds, fmt.Errorf("invalid analysis report, %w", err)
	}
	years, totals := rep.Totals()
	agg, err := forecast.PredictAggregate(years, totals, f.opt.Aggregate)
	if err != nil {
		return preds, fmt.Errorf("unable to forecast commissioning trend, %w", err)
	}
	preds.Commissioning = &agg
	slog.Info("forecast commissioning trend",
		"fit_start", f.opt.Aggregate.StartYear,
		"fit_end", f.opt.Aggregate.EndYear,
		"years", len(agg.ForecastYears),
	)
	return preds, nil
}

// runSeries fans the configured series out to at most Parallelization workers. Each worker
// writes only its own slot so the outcome order follows the configuration.
func (f *Forecaster) runSeries(table *timedataset.CapacityTable, configs []SeriesConfig) []seriesOutcome {
	outcomes := make([]seriesOutcome, len(configs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, f.opt.Parallelization)
	for i, sc := range configs {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, sc SeriesConfig) {
			defer func() {
				<-sem
				wg.Done()
			}()
			outcomes[i] = forecastColumn(table, sc, f.opt.Forecast)
		}(i, sc)
	}
	wg.Wait()
	return outcomes
}

func forecastColumn(table *timedataset.CapacityTable, sc SeriesConfig, opt *forecast.Options) seriesOutcome {
	series, err := timedataset.BuildYearly(table, sc.Column)
	if err != nil {
		return seriesOutcome{skipErr: err}
	}
	res, cand, err := forecast.ForecastSeries(series, opt)
	if err != nil {
		return seriesOutcome{skipErr: err}
	}
	return seriesOutcome{res: res, cand: cand}
}
