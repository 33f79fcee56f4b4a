package timedataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateDays returns every UTC midnight from start through end inclusive
func GenerateDays(start, end time.Time) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	t := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for ct := start; !ct.After(end); ct = ct.AddDate(0, 0, 1) {
		t = append(t, ct)
	}
	return t
}

// Series is a mutable helper for composing synthetic capacity columns
type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// MaskWithTimeRange sets every sample outside of [start, end] to NaN
func (s Series) MaskWithTimeRange(start, end time.Time, t []time.Time) Series {
	n := len(s)
	for i := 0; i < n; i++ {
		if t[i].Before(start) || t[i].After(end) {
			s[i] = math.NaN()
		}
	}
	return s
}

// SetConst overrides samples in [start, end) with val
func (s Series) SetConst(t []time.Time, val float64, start, end time.Time) Series {
	n := len(s)
	for i := 0; i < n; i++ {
		if (t[i].After(start) || t[i].Equal(start)) && t[i].Before(end) {
			s[i] = val
		}
	}
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateYearlyTrend evaluates fn at the fractional year of every sample, so a column built
// from a linear fn grows steadily through each year.
func GenerateYearlyTrend(t []time.Time, fn func(year float64) float64) Series {
	y := make([]float64, 0, len(t))
	for _, tPnt := range t {
		yearStart := time.Date(tPnt.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := yearStart.AddDate(1, 0, 0)
		frac := tPnt.Sub(yearStart).Hours() / yearEnd.Sub(yearStart).Hours()
		y = append(y, fn(float64(tPnt.Year())+frac))
	}
	return Series(y)
}

// GenerateNoise draws gaussian noise with the given scale from a seeded source so the
// generated data is reproducible.
func GenerateNoise(n int, scale float64, seed uint64) Series {
	rng := rand.New(rand.NewPCG(seed, seed))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rng.NormFloat64()*scale)
	}
	return Series(y)
}

// GenerateYearly evaluates fn at every year from start through end inclusive
func GenerateYearly(start, end int, fn func(year int) float64) ([]int, []float64) {
	years := make([]int, 0, end-start+1)
	vals := make([]float64, 0, end-start+1)
	for yr := start; yr <= end; yr++ {
		years = append(years, yr)
		vals = append(vals, fn(yr))
	}
	return years, vals
}
