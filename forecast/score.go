package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrResLenMismatch = errors.New("predicted and actual have different lengths")

// constTol is the relative tolerance a prediction may drift from a constant actual series and
// still count as an exact match.
const constTol = 1e-9

// Scores holds how well a candidate reproduces the series it was trained on
type Scores struct {
	MSE  float64 `json:"mean_squared_error"`
	MAPE float64 `json:"mean_average_percent_error"`
	R2   float64 `json:"r_squared"`
}

// NewScores scores predicted against actual. Pairs where either side is NaN are ignored.
func NewScores(predicted, actual []float64) (*Scores, error) {
	p, a, err := pairs(predicted, actual)
	if err != nil {
		return nil, err
	}
	return &Scores{
		MSE:  mse(p, a),
		MAPE: mape(p, a),
		R2:   rSquared(p, a),
	}, nil
}

// Penalized returns R^2 less penalty for every degree above 1
func (s Scores) Penalized(degree int, penalty float64) float64 {
	return s.R2 - penalty*float64(degree-1)
}

// pairs drops every index where either slice holds NaN
func pairs(predicted, actual []float64) ([]float64, []float64, error) {
	if len(predicted) != len(actual) {
		return nil, nil, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}
	p := make([]float64, 0, len(predicted))
	a := make([]float64, 0, len(actual))
	for i, v := range actual {
		if math.IsNaN(v) || math.IsNaN(predicted[i]) {
			continue
		}
		p = append(p, predicted[i])
		a = append(a, v)
	}
	return p, a, nil
}

// mse is the mean of the squared residuals. 0 is a perfect match.
func mse(p, a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	d := floats.Distance(p, a, 2)
	return d * d / float64(len(a))
}

// mape is the mean of abs((y-yhat)/y), skipping zero actual values
func mape(p, a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var sum float64
	for i, v := range a {
		if v == 0 {
			continue
		}
		sum += math.Abs((v - p[i]) / v)
	}
	return sum / float64(len(a))
}

// rSquared is the coefficient of determination and goes negative for fits worse than the mean.
// An actual series holding a single repeated value has no variance to explain, so it scores
// 1.0 when every prediction matches that value within constTol and 0 otherwise.
func rSquared(p, a []float64) float64 {
	if len(a) == 0 {
		return 1.0
	}
	if lo, hi := floats.Min(a), floats.Max(a); lo == hi {
		tol := constTol * math.Max(math.Abs(lo), 1)
		for _, v := range p {
			if math.Abs(v-lo) > tol {
				return 0
			}
		}
		return 1.0
	}
	return stat.RSquaredFrom(p, a, nil)
}
