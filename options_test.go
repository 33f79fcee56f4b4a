package forecaster

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aouyang1/go-capacity-forecaster/forecast"
)

func TestDefaultSeries(t *testing.T) {
	series := DefaultSeries()
	require.Len(t, series, 13)
	assert.Equal(t, SeriesConfig{Label: "DE Solar", Column: "DE_solar_capacity"}, series[0])
	assert.Equal(t, SeriesConfig{Label: "UK Wind Offshore", Column: "GB-UKM_wind_offshore_capacity"}, series[8])
	assert.Equal(t, SeriesConfig{Label: "FR Solar", Column: "FR_solar_capacity"}, series[12])
}

func TestOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *Options
		expected *Options
		err      error
	}{
		"nil": {
			opt:      nil,
			expected: NewDefaultOptions(),
		},
		"no series": {
			opt: &Options{Parallelization: 1},
			err: ErrNoSeriesConfig,
		},
		"empty column": {
			opt: &Options{Series: []SeriesConfig{{Label: "a"}}, Parallelization: 1},
			err: ErrEmptySeriesConfig,
		},
		"duplicate label": {
			opt: &Options{
				Series:          []SeriesConfig{{Label: "a", Column: "x"}, {Label: "a", Column: "y"}},
				Parallelization: 1,
			},
			err: ErrDuplicateLabel,
		},
		"reserved label": {
			opt: &Options{
				Series:          []SeriesConfig{{Label: CommissioningLabel, Column: "x"}},
				Parallelization: 1,
			},
			err: ErrReservedLabel,
		},
		"zero parallelization": {
			opt: &Options{Series: []SeriesConfig{{Label: "a", Column: "x"}}},
			err: ErrInvalidParallelization,
		},
		"invalid forecast": {
			opt: &Options{
				Series:          []SeriesConfig{{Label: "a", Column: "x"}},
				Forecast:        &forecast.Options{MinPoints: 4},
				Parallelization: 1,
			},
			err: forecast.ErrNoDegrees,
		},
		"fills defaults": {
			opt: &Options{
				Series:          []SeriesConfig{{Label: "a", Column: "x"}},
				Parallelization: 2,
			},
			expected: &Options{
				Series:          []SeriesConfig{{Label: "a", Column: "x"}},
				Forecast:        forecast.NewDefaultOptions(),
				Aggregate:       forecast.NewDefaultAggregateOptions(),
				Parallelization: 2,
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestLoadOptions(t *testing.T) {
	input := `{
		"series": [{"label": "DE Solar", "column": "DE_solar_capacity"}],
		"forecast": {"horizon": 2035, "degree_penalty": 0.01},
		"parallelization": 3
	}`
	opt, err := LoadOptions(strings.NewReader(input))
	require.Nil(t, err)

	assert.Equal(t, []SeriesConfig{{Label: "DE Solar", Column: "DE_solar_capacity"}}, opt.Series)
	assert.Equal(t, 2035, opt.Forecast.Horizon)
	assert.Equal(t, 0.01, opt.Forecast.DegreePenalty)
	assert.Equal(t, forecast.DefaultCheckpointYear, opt.Forecast.CheckpointYear)
	assert.Equal(t, []int{1, 2}, opt.Forecast.Degrees)
	assert.Equal(t, forecast.NewDefaultAggregateOptions(), opt.Aggregate)
	assert.Equal(t, 3, opt.Parallelization)

	_, err = LoadOptions(strings.NewReader(`{"parallelization": 0}`))
	assert.ErrorIs(t, err, ErrInvalidParallelization)
}

func TestOptionsTablePrint(t *testing.T) {
	opt := NewDefaultOptions()
	opt.Series = opt.Series[:2]

	var buf bytes.Buffer
	require.Nil(t, opt.TablePrint(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Forecaster Options:\n  Parallelization: 1\n"))
	assert.Contains(t, out, "Horizon: 2030    Checkpoint: 2025")
	assert.Contains(t, out, "Fit: 2005-2018    Horizon: 2030    Degree: 2")
	assert.Contains(t, out, "DE_wind_onshore_capacity")
}
