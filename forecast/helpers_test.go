package forecast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aouyang1/go-capacity-forecaster/timedataset"
)

func mustSeries(t testing.TB, start, end int, fn func(year int) float64) *timedataset.YearlySeries {
	t.Helper()
	years, values := timedataset.GenerateYearly(start, end, fn)
	series, err := timedataset.NewYearlySeries(years, values)
	require.Nil(t, err)
	return series
}

func linearSeries(year int) float64 {
	return 100 + 20*float64(year-2010)
}

// convexSeries falls toward a vertex in 2023 so the quadratic dips after 2020
func convexSeries(year int) float64 {
	d := float64(year - 2023)
	return d*d + 10
}

func slightCurveSeries(year int) float64 {
	d := float64(year - 2010)
	return 100 + 10*d + 0.05*d*d
}
