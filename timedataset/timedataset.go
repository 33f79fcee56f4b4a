// Package timedataset holds the day indexed capacity table consumed by the forecaster and the
// yearly series derived from it.
package timedataset

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMontonic        = errors.New("time feature is not monotonic")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
	ErrMissingColumn      = errors.New("column not present in capacity table")
)

// CapacityTable represents cumulative installed capacity sampled per calendar day with one
// column per country and source combination. Missing samples are stored as NaN.
type CapacityTable struct {
	Days    TimeSlice
	columns map[string][]float64
}

// NewCapacityTable returns a CapacityTable given strictly increasing days and columns of the
// same length. Inputs are copied.
func NewCapacityTable(days []time.Time, columns map[string][]float64) (*CapacityTable, error) {
	if len(days) == 0 {
		return nil, ErrNoTrainingData
	}

	var lastT time.Time
	for i := 0; i < len(days); i++ {
		currT := days[i]
		if i > 0 && !currT.After(lastT) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMontonic)
		}
		lastT = currT
	}

	cols := make(map[string][]float64, len(columns))
	for name, vals := range columns {
		if len(vals) != len(days) {
			return nil, fmt.Errorf(
				"time feature has length of %d, but column %q has a length of %d, %w",
				len(days), name, len(vals), ErrDatasetLenMismatch,
			)
		}
		c := make([]float64, len(vals))
		copy(c, vals)
		cols[name] = c
	}

	d := make([]time.Time, len(days))
	copy(d, days)
	return &CapacityTable{
		Days:    d,
		columns: cols,
	}, nil
}

// Column looks up the raw values of a column. The returned slice must not be modified.
func (c *CapacityTable) Column(name string) ([]float64, bool) {
	if c == nil {
		return nil, false
	}
	vals, exists := c.columns[name]
	return vals, exists
}

// ColumnNames returns the sorted names of every column in the table
func (c *CapacityTable) ColumnNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.columns))
	for name := range c.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of days in the table
func (c *CapacityTable) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Days)
}

// Since returns a copy of the table restricted to days on or after start. The result can be
// empty, in which case ErrNoTrainingData is returned.
func (c *CapacityTable) Since(start time.Time) (*CapacityTable, error) {
	if c == nil {
		return nil, ErrNoTrainingData
	}
	idx := sort.Search(len(c.Days), func(i int) bool {
		return !c.Days[i].Before(start)
	})

	cols := make(map[string][]float64, len(c.columns))
	for name, vals := range c.columns {
		cols[name] = vals[idx:]
	}
	return NewCapacityTable(c.Days[idx:], cols)
}
