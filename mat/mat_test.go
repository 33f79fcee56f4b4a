package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestVandermonde(t *testing.T) {
	testData := map[string]struct {
		x        []float64
		degree   int
		expected [][]float64
		err      error
	}{
		"zero degree": {
			x:      []float64{1, 2},
			degree: 0,
			err:    ErrInvalidDegree,
		},
		"no observations": {
			degree: 2,
			err:    ErrNoObservations,
		},
		"linear": {
			x:        []float64{-1, 0, 2},
			degree:   1,
			expected: [][]float64{{-1}, {0}, {2}},
		},
		"quadratic": {
			x:        []float64{-1, 0, 2, 3},
			degree:   2,
			expected: [][]float64{{-1, 1}, {0, 0}, {2, 4}, {3, 9}},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			mx, err := Vandermonde(td.x, td.degree)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)

			m, n := mx.Dims()
			assert.Equal(t, len(td.x), m, "m")
			assert.Equal(t, td.degree, n, "n")
			for ri, row := range td.expected {
				assert.Equal(t, row, mat.Row(nil, ri, mx), "row %d", ri)
			}
		})
	}
}

func TestYears(t *testing.T) {
	assert.Equal(t, []float64{-1, 0, 1}, Years([]int{2010, 2011, 2012}, 2011))
	assert.Equal(t, []float64{}, Years(nil, 0))
}
