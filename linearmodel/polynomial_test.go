package linearmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearRange(start, end int) []float64 {
	x := make([]float64, 0, end-start+1)
	for yr := start; yr <= end; yr++ {
		x = append(x, float64(yr))
	}
	return x
}

func TestPolynomialOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *PolynomialOptions
		err      error
		expected *PolynomialOptions
	}{
		"nil":            {nil, nil, NewDefaultPolynomialOptions()},
		"zero degree":    {&PolynomialOptions{Degree: 0}, ErrInvalidDegree, nil},
		"valid cubic":    {&PolynomialOptions{Degree: 3}, nil, &PolynomialOptions{Degree: 3}},
		"valid center":   {&PolynomialOptions{Degree: 2, Center: true}, nil, &PolynomialOptions{Degree: 2, Center: true}},
		"valid min norm": {&PolynomialOptions{Degree: 2, MinNorm: true}, nil, &PolynomialOptions{Degree: 2, MinNorm: true}},
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

func TestPolynomialRegression(t *testing.T) {
	x := yearRange(2005, 2018)

	testData := map[string]struct {
		degree int
		center bool
		fn     func(float64) float64
		tol    float64
	}{
		"linear centered": {
			degree: 1,
			center: true,
			fn:     func(x float64) float64 { return 20*(x-2010) + 100 },
			tol:    1e-8,
		},
		"quadratic centered": {
			degree: 2,
			center: true,
			fn:     func(x float64) float64 { return 3*(x-2000)*(x-2000) - 7*(x-2000) + 42 },
			tol:    1e-6,
		},
		"quadratic raw years": {
			degree: 2,
			center: false,
			fn:     func(x float64) float64 { return 0.5*(x-2010)*(x-2010) + 10 },
			tol:    1e-2,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			y := make([]float64, len(x))
			for i, xi := range x {
				y[i] = td.fn(xi)
			}

			model, err := NewPolynomialRegression(&PolynomialOptions{Degree: td.degree, Center: td.center})
			require.Nil(t, err)
			require.Nil(t, model.Fit(x, y))
			assert.Len(t, model.Coef(), td.degree)

			future := yearRange(2019, 2030)
			expected := make([]float64, len(future))
			for i, xi := range future {
				expected[i] = td.fn(xi)
			}
			res, err := model.Predict(future)
			require.Nil(t, err)
			assert.InDeltaSlice(t, expected, res, td.tol)

			fitted, err := model.Predict(x)
			require.Nil(t, err)
			assert.InDeltaSlice(t, y, fitted, td.tol)
		})
	}
}

func TestPolynomialRegressionCentering(t *testing.T) {
	x := []float64{2010, 2011, 2012, 2013}
	y := []float64{1, 3, 2, 5}

	model, err := NewPolynomialRegression(&PolynomialOptions{Degree: 1, Center: true})
	require.Nil(t, err)
	require.Nil(t, model.Fit(x, y))

	assert.InDelta(t, 2011.5, model.Offset(), 1e-12)
	// centered intercept equals the mean of y for a linear fit
	assert.InDelta(t, 2.75, model.Intercept(), 1e-9)
	assert.InDeltaSlice(t, []float64{1.1}, model.Coef(), 1e-9)
}

func TestPolynomialRegressionMinNorm(t *testing.T) {
	testData := map[string]struct {
		x        []float64
		y        []float64
		future   []float64
		expected []float64
	}{
		"single observation is constant": {
			x:        []float64{2018},
			y:        []float64{350},
			future:   []float64{2005, 2018, 2030},
			expected: []float64{350, 350, 350},
		},
		"two observations centered is a line": {
			x:        []float64{2017, 2018},
			y:        []float64{100, 120},
			future:   []float64{2016, 2017, 2018, 2020},
			expected: []float64{80, 100, 120, 160},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			model, err := NewPolynomialRegression(&PolynomialOptions{Degree: 2, Center: true, MinNorm: true})
			require.Nil(t, err)
			require.Nil(t, model.Fit(td.x, td.y))

			res, err := model.Predict(td.future)
			require.Nil(t, err)
			assert.InDeltaSlice(t, td.expected, res, 1e-9)
		})
	}
}

func TestPolynomialRegressionErrors(t *testing.T) {
	model, err := NewPolynomialRegression(&PolynomialOptions{Degree: 2, Center: true})
	require.Nil(t, err)

	_, err = model.Predict([]float64{2020})
	assert.ErrorIs(t, err, ErrUntrainedModel)

	assert.ErrorIs(t, model.Fit(nil, nil), ErrNoTrainingMatrix)
	assert.ErrorIs(t, model.Fit([]float64{1, 2, 3}, []float64{1, 2}), ErrTargetLenMismatch)
	assert.ErrorIs(t, model.Fit([]float64{1, 2}, []float64{1, 2}), ErrUnderdetermined)

	_, err = NewPolynomialRegression(&PolynomialOptions{Degree: 0})
	assert.ErrorIs(t, err, ErrInvalidDegree)
}
