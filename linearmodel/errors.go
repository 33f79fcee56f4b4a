package linearmodel

import "errors"

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrTargetLenMismatch  = errors.New("target length does not match target rows")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrUnderdetermined    = errors.New("fewer observations than model coefficients")
	ErrSingularMatrix     = errors.New("design matrix is rank deficient")
	ErrUntrainedModel     = errors.New("model has not been fit yet")
	ErrInvalidDegree      = errors.New("polynomial degree must be at least 1")
)
