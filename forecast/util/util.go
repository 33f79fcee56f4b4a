package util

import (
	"math"
	"strconv"
)

func IndentExpand(indent string, growth int) string {
	indentByte := []byte(indent)
	out := make([]byte, 0, len(indent)*growth)
	for i := 0; i < growth; i++ {
		out = append(out, indentByte...)
	}
	return string(out)
}

// SliceMap applies lambda to every element of arr in place and returns arr
func SliceMap(arr []float64, lambda func(float64) float64) []float64 {
	for i, v := range arr {
		arr[i] = lambda(v)
	}
	return arr
}

// Round rounds x to the given number of decimal places, resolving exact ties to even. The
// decimal conversion works on the exact binary value of x so 2.675 rounds to 2.67.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// Rounder returns a SliceMap lambda rounding to places
func Rounder(places int) func(float64) float64 {
	return func(x float64) float64 {
		return Round(x, places)
	}
}

// ClampNonNegative replaces negative values with 0
func ClampNonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
