package linearmodel

import (
	"fmt"

	mat_ "github.com/aouyang1/go-capacity-forecaster/mat"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PolynomialOptions represents input options to fit a univariate polynomial
type PolynomialOptions struct {
	// Degree is the highest power of x in the fit. Must be at least 1.
	Degree int `json:"degree"`

	// Center shifts x by its training mean before expanding into powers. This does not change
	// the fitted values but keeps x^2 well conditioned when x is a calendar year.
	Center bool `json:"center"`

	// MinNorm accepts fits with fewer observations than coefficients by taking the minimum norm
	// least squares solution. See OLSOptions.MinNorm.
	MinNorm bool `json:"min_norm"`
}

// Validate runs basic validation on polynomial options
func (p *PolynomialOptions) Validate() (*PolynomialOptions, error) {
	if p == nil {
		p = NewDefaultPolynomialOptions()
	}
	if p.Degree < 1 {
		return nil, fmt.Errorf("got degree %d, %w", p.Degree, ErrInvalidDegree)
	}
	return p, nil
}

// NewDefaultPolynomialOptions returns a centered linear fit
func NewDefaultPolynomialOptions() *PolynomialOptions {
	return &PolynomialOptions{
		Degree: 1,
		Center: true,
	}
}

// PolynomialRegression fits y ~ b + c1*(x-offset) + c2*(x-offset)^2 + ... with ordinary least
// squares.
type PolynomialRegression struct {
	opt    *PolynomialOptions
	offset float64
	ols    *OLSRegression
}

// NewPolynomialRegression initializes a polynomial model ready for fitting
func NewPolynomialRegression(opt *PolynomialOptions) (*PolynomialRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	ols, err := NewOLSRegression(&OLSOptions{FitIntercept: true, MinNorm: opt.MinNorm})
	if err != nil {
		return nil, err
	}
	return &PolynomialRegression{
		opt: opt,
		ols: ols,
	}, nil
}

func (p *PolynomialRegression) design(x []float64) (*mat.Dense, error) {
	shifted := make([]float64, len(x))
	copy(shifted, x)
	floats.AddConst(-p.offset, shifted)
	return mat_.Vandermonde(shifted, p.opt.Degree)
}

// Fit the polynomial to the observations x and targets y
func (p *PolynomialRegression) Fit(x, y []float64) error {
	if p == nil || p.opt == nil {
		return ErrNoOptions
	}
	if len(x) == 0 {
		return ErrNoTrainingMatrix
	}
	if len(x) != len(y) {
		return fmt.Errorf("training data has %d rows and target has %d row, %w", len(x), len(y), ErrTargetLenMismatch)
	}

	p.offset = 0
	if p.opt.Center {
		p.offset = stat.Mean(x, nil)
	}

	xMx, err := p.design(x)
	if err != nil {
		return err
	}
	yMx := mat.NewDense(len(y), 1, append([]float64(nil), y...))
	if err := p.ols.Fit(xMx, yMx); err != nil {
		return fmt.Errorf("unable to fit degree %d polynomial, %w", p.opt.Degree, err)
	}
	return nil
}

// Predict evaluates the fitted polynomial at every x
func (p *PolynomialRegression) Predict(x []float64) ([]float64, error) {
	if p == nil || p.opt == nil {
		return nil, ErrNoOptions
	}
	if len(x) == 0 {
		return []float64{}, nil
	}
	xMx, err := p.design(x)
	if err != nil {
		return nil, err
	}
	return p.ols.Predict(xMx)
}

// Offset returns the shift applied to x before expansion
func (p *PolynomialRegression) Offset() float64 {
	if p == nil {
		return 0
	}
	return p.offset
}

// Intercept returns the constant term in the shifted basis
func (p *PolynomialRegression) Intercept() float64 {
	if p == nil {
		return 0
	}
	return p.ols.Intercept()
}

// Coef returns the coefficients of (x-offset)^1 ... (x-offset)^degree
func (p *PolynomialRegression) Coef() []float64 {
	if p == nil {
		return nil
	}
	return p.ols.Coef()
}
