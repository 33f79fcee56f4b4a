package linearmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// rankTol is the relative size, against the largest pivot or singular value, below which a
// direction of the design matrix is treated as zero.
const rankTol = 1e-12

// OLSOptions configures an ordinary least squares fit
type OLSOptions struct {
	// FitIntercept centers every feature column and the target before solving and recovers the
	// constant term from their means.
	FitIntercept bool `json:"fit_intercept"`

	// MinNorm solves through an SVD and returns the smallest coefficient vector among all least
	// squares solutions. Fewer observations than coefficients and rank deficient designs are
	// then accepted instead of returning ErrUnderdetermined or ErrSingularMatrix.
	MinNorm bool `json:"min_norm"`
}

// Validate fills in defaults for a nil set of options
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}
	return o, nil
}

// NewDefaultOLSOptions fits an intercept and requires a full rank design
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// OLSRegression is a linear least squares model solved by QR factorization, or by SVD when
// MinNorm is set.
type OLSRegression struct {
	opt       *OLSOptions
	coef      []float64
	intercept float64
	trained   bool
}

// NewOLSRegression returns an untrained model
func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// Fit solves for the coefficients. x has one row per observation and y is a single column of
// targets.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o == nil || o.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, n := x.Dims()
	if ym, _ := y.Dims(); ym != m {
		return fmt.Errorf("training data has %d rows and target has %d row, %w", m, ym, ErrTargetLenMismatch)
	}

	unknowns := n
	if o.opt.FitIntercept {
		unknowns++
	}
	if m == 0 || (m < unknowns && !o.opt.MinNorm) {
		return fmt.Errorf("got %d observations for %d coefficients, %w", m, unknowns, ErrUnderdetermined)
	}

	a := mat.DenseCopyOf(x)
	b := mat.Col(nil, 0, y)
	means := make([]float64, n)
	var bMean float64
	if o.opt.FitIntercept {
		col := make([]float64, m)
		for j := range means {
			mat.Col(col, j, a)
			means[j] = stat.Mean(col, nil)
			floats.AddConst(-means[j], col)
			a.SetCol(j, col)
		}
		bMean = stat.Mean(b, nil)
		floats.AddConst(-bMean, b)
	}

	var (
		coef []float64
		err  error
	)
	if o.opt.MinNorm {
		coef, err = minNormSolve(a, b)
	} else {
		coef, err = qrSolve(a, b)
	}
	if err != nil {
		return err
	}

	o.coef = coef
	o.intercept = bMean - floats.Dot(means, coef)
	o.trained = true
	return nil
}

// qrSolve returns the least squares solution of a*c = b for a full column rank a
func qrSolve(a *mat.Dense, b []float64) ([]float64, error) {
	var qr mat.QR
	qr.Factorize(a)

	var q, r mat.Dense
	qr.QTo(&q)
	qr.RTo(&r)

	var qtb mat.VecDense
	qtb.MulVec(q.T(), mat.NewVecDense(len(b), b))

	return backSubstitute(&r, &qtb)
}

// backSubstitute solves the leading n×n upper triangle of r against rhs
func backSubstitute(r mat.Matrix, rhs mat.Vector) ([]float64, error) {
	_, n := r.Dims()

	var maxPivot float64
	for i := 0; i < n; i++ {
		maxPivot = math.Max(maxPivot, math.Abs(r.At(i, i)))
	}

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		pivot := r.At(i, i)
		if math.Abs(pivot) <= rankTol*maxPivot {
			return nil, fmt.Errorf("zero pivot at column %d, %w", i, ErrSingularMatrix)
		}
		sum := rhs.AtVec(i)
		for j := i + 1; j < n; j++ {
			sum -= c[j] * r.At(i, j)
		}
		c[i] = sum / pivot
	}
	return c, nil
}

// minNormSolve returns the smallest norm c minimizing |a*c - b|. A design with no usable
// direction yields all zero coefficients.
func minNormSolve(a *mat.Dense, b []float64) ([]float64, error) {
	_, n := a.Dims()
	c := make([]float64, n)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, fmt.Errorf("svd factorization failed, %w", ErrSingularMatrix)
	}
	rank := svd.Rank(rankTol)
	if rank == 0 {
		return c, nil
	}

	var dst mat.Dense
	svd.SolveTo(&dst, mat.NewDense(len(b), 1, b), rank)
	return mat.Col(c, 0, &dst), nil
}

// Predict evaluates the fitted model on every row of x
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o == nil || o.opt == nil {
		return nil, ErrNoOptions
	}
	if !o.trained {
		return nil, ErrUntrainedModel
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	m, n := x.Dims()
	if n != len(o.coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(o.coef), ErrFeatureLenMismatch)
	}

	var res mat.VecDense
	res.MulVec(x, mat.NewVecDense(n, o.Coef()))

	out := make([]float64, m)
	for i := range out {
		out[i] = res.AtVec(i) + o.intercept
	}
	return out, nil
}

// Intercept returns the constant term, 0 when FitIntercept is off
func (o *OLSRegression) Intercept() float64 {
	if o == nil {
		return 0
	}
	return o.intercept
}

// Coef returns a copy of the trained coefficients in feature column order
func (o *OLSRegression) Coef() []float64 {
	if o == nil {
		return nil
	}
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}
