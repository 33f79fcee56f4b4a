// Package report reads the plant registry analysis artifact consumed by the commissioning trend
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

var (
	ErrNoCommissioning   = errors.New("report has no yearly commissioning section")
	ErrReportLenMismatch = errors.New("yearly commissioning lists have different lengths")
	ErrNonIncreasingYear = errors.New("yearly commissioning years are not strictly increasing")
)

// YearlyCommissioning lists the plants commissioned per year and their summed capacity in MW
type YearlyCommissioning struct {
	Years      []int     `json:"years"`
	PlantCount []int     `json:"plant_count"`
	TotalMW    []float64 `json:"total_MW"`
}

// AggregateReport is the subset of the analysis report used for forecasting. Other sections of
// the artifact are ignored when loading.
type AggregateReport struct {
	YearlyCommissioning *YearlyCommissioning `json:"yearly_commissioning"`
}

// NewAggregateReport builds a validated report from parallel yearly lists. plantCount may be nil.
func NewAggregateReport(years []int, plantCount []int, totalMW []float64) (*AggregateReport, error) {
	r := &AggregateReport{
		YearlyCommissioning: &YearlyCommissioning{
			Years:      append([]int(nil), years...),
			PlantCount: append([]int(nil), plantCount...),
			TotalMW:    append([]float64(nil), totalMW...),
		},
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the commissioning lists line up year by year
func (r *AggregateReport) Validate() error {
	if r == nil || r.YearlyCommissioning == nil {
		return ErrNoCommissioning
	}
	yc := r.YearlyCommissioning
	if len(yc.Years) != len(yc.TotalMW) {
		return fmt.Errorf(
			"got %d years and %d totals, %w",
			len(yc.Years), len(yc.TotalMW), ErrReportLenMismatch,
		)
	}
	if len(yc.PlantCount) > 0 && len(yc.PlantCount) != len(yc.Years) {
		return fmt.Errorf(
			"got %d years and %d plant counts, %w",
			len(yc.Years), len(yc.PlantCount), ErrReportLenMismatch,
		)
	}
	for i := 1; i < len(yc.Years); i++ {
		if yc.Years[i] <= yc.Years[i-1] {
			return fmt.Errorf("year %d follows %d, %w", yc.Years[i], yc.Years[i-1], ErrNonIncreasingYear)
		}
	}
	return nil
}

// Totals returns the commissioning years and summed capacity
func (r *AggregateReport) Totals() ([]int, []float64) {
	if r == nil || r.YearlyCommissioning == nil {
		return nil, nil
	}
	return r.YearlyCommissioning.Years, r.YearlyCommissioning.TotalMW
}

// Load decodes and validates an analysis report
func Load(rd io.Reader) (*AggregateReport, error) {
	var r AggregateReport
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("unable to decode analysis report, %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadFile reads an analysis report from path
func LoadFile(path string) (*AggregateReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s, %w", path, err)
	}
	return r, nil
}
