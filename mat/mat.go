// Package mat holds small helpers for building gonum design matrices from year indexed data
package mat

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidDegree  = errors.New("polynomial degree must be at least 1")
	ErrNoObservations = errors.New("no observations to build design matrix")
)

// Vandermonde expands x into the polynomial features [x, x^2, ..., x^degree], one row per
// observation. There is no constant column, the regression fits the intercept itself.
func Vandermonde(x []float64, degree int) (*mat.Dense, error) {
	if degree < 1 {
		return nil, fmt.Errorf("got degree %d, %w", degree, ErrInvalidDegree)
	}
	if len(x) == 0 {
		return nil, ErrNoObservations
	}

	data := make([]float64, 0, len(x)*degree)
	for _, xi := range x {
		for p := 1; p <= degree; p++ {
			data = append(data, math.Pow(xi, float64(p)))
		}
	}
	return mat.NewDense(len(x), degree, data), nil
}

// Years converts integer years into their float representation shifted by offset.
func Years(years []int, offset float64) []float64 {
	x := make([]float64, len(years))
	for i, yr := range years {
		x[i] = float64(yr) - offset
	}
	return x
}
