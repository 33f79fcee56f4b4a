package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndentExpand(t *testing.T) {
	assert.Equal(t, "", IndentExpand("  ", 0))
	assert.Equal(t, "    ", IndentExpand("  ", 2))
}

func TestRound(t *testing.T) {
	testData := map[string]struct {
		x        float64
		places   int
		expected float64
	}{
		"two places":           {x: 1234.5678, places: 2, expected: 1234.57},
		"one place":            {x: 66.66666, places: 1, expected: 66.7},
		"four places":          {x: 0.99874321, places: 4, expected: 0.9987},
		"binary below half":    {x: 2.675, places: 2, expected: 2.67},
		"exact tie to even":    {x: 0.125, places: 2, expected: 0.12},
		"exact tie to even up": {x: 0.375, places: 2, expected: 0.38},
		"negative":             {x: -3.14159, places: 2, expected: -3.14},
		"zero places":          {x: 2.5, places: 0, expected: 2},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, Round(td.x, td.places))
		})
	}

	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
	assert.True(t, math.IsInf(Round(math.Inf(1), 2), 1))
}

func TestSliceMap(t *testing.T) {
	arr := []float64{-1.234, 0, 5.678}
	res := SliceMap(arr, ClampNonNegative)
	assert.Equal(t, []float64{0, 0, 5.678}, res)

	res = SliceMap(res, Rounder(1))
	assert.Equal(t, []float64{0, 0, 5.7}, res)
}
