package forecast

import (
	"errors"
	"fmt"
	"strings"

	mat_ "github.com/aouyang1/go-capacity-forecaster/mat"

	"github.com/aouyang1/go-capacity-forecaster/linearmodel"
	"github.com/aouyang1/go-capacity-forecaster/timedataset"
)

var (
	ErrInsufficientData = errors.New("insufficient data points to fit")
	ErrNoSeries         = errors.New("no series provided")
	ErrUninitialized    = errors.New("uninitialized candidate")
)

// Candidate is a polynomial fit of one degree over a yearly series
type Candidate struct {
	Degree int
	Model  *linearmodel.PolynomialRegression
	Scores Scores

	// Adjusted is the R^2 less the degree penalty, the quantity used for selection
	Adjusted float64
}

// FitCandidate fits a single polynomial of the given degree over the series and scores it
func FitCandidate(series *timedataset.YearlySeries, degree int, penalty float64) (*Candidate, error) {
	if series == nil {
		return nil, ErrNoSeries
	}
	model, err := linearmodel.NewPolynomialRegression(
		&linearmodel.PolynomialOptions{
			Degree: degree,
			Center: true,
		},
	)
	if err != nil {
		return nil, err
	}

	x := mat_.Years(series.Years, 0)
	if err := model.Fit(x, series.Values); err != nil {
		return nil, err
	}
	predicted, err := model.Predict(x)
	if err != nil {
		return nil, err
	}
	scores, err := NewScores(predicted, series.Values)
	if err != nil {
		return nil, err
	}
	return &Candidate{
		Degree:   degree,
		Model:    model,
		Scores:   *scores,
		Adjusted: scores.Penalized(degree, penalty),
	}, nil
}

// SelectModel fits every candidate degree and keeps the one with the highest penalized R^2. A
// later degree must score strictly higher to replace an earlier one. Series with fewer than
// MinPoints years return ErrInsufficientData.
func SelectModel(series *timedataset.YearlySeries, opt *Options) (*Candidate, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, ErrNoSeries
	}
	if series.Len() < opt.MinPoints {
		return nil, fmt.Errorf("got %d points, need at least %d, %w", series.Len(), opt.MinPoints, ErrInsufficientData)
	}

	var best *Candidate
	for _, degree := range opt.Degrees {
		cand, err := FitCandidate(series, degree, opt.DegreePenalty)
		if err != nil {
			return nil, fmt.Errorf("unable to fit degree %d candidate, %w", degree, err)
		}
		if best == nil || cand.Adjusted > best.Adjusted {
			best = cand
		}
	}
	return best, nil
}

// Predict evaluates the candidate model at each year
func (c *Candidate) Predict(years []int) ([]float64, error) {
	if c == nil || c.Model == nil {
		return nil, ErrUninitialized
	}
	return c.Model.Predict(mat_.Years(years, 0))
}

// ModelEq returns a string representation of the polynomial in the format of
// y ~ b + c1*(x-x0) + c2*(x-x0)^2 + ...
func (c *Candidate) ModelEq() (string, error) {
	if c == nil || c.Model == nil {
		return "", ErrUninitialized
	}

	var sb strings.Builder
	sb.WriteString("y ~ ")
	sb.WriteString(fmt.Sprintf("%.2f", c.Model.Intercept()))

	x := fmt.Sprintf("(x-%.1f)", c.Model.Offset())
	for i, w := range c.Model.Coef() {
		if w == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%+.2f*%s", w, x))
		if p := i + 1; p > 1 {
			sb.WriteString(fmt.Sprintf("^%d", p))
		}
	}
	return sb.String(), nil
}
