package forecaster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/aouyang1/go-capacity-forecaster/forecast"
	"github.com/goccy/go-json"
)

var (
	ErrNoSeriesConfig         = errors.New("no series configured")
	ErrEmptySeriesConfig      = errors.New("series label and column must be set")
	ErrDuplicateLabel         = errors.New("duplicate series label")
	ErrReservedLabel          = errors.New("series label is reserved for the commissioning forecast")
	ErrInvalidParallelization = errors.New("parallelization must be at least 1")
)

// CommissioningLabel is the output key of the commissioning trend forecast
const CommissioningLabel = "commissioning_forecast"

// SeriesConfig maps a display label to the capacity table column it is built from
type SeriesConfig struct {
	Label  string `json:"label"`
	Column string `json:"column"`
}

// DefaultSeries returns the country and source combinations forecast by default in output order
func DefaultSeries() []SeriesConfig {
	return []SeriesConfig{
		{Label: "DE Solar", Column: "DE_solar_capacity"},
		{Label: "DE Wind Onshore", Column: "DE_wind_onshore_capacity"},
		{Label: "DE Wind Offshore", Column: "DE_wind_offshore_capacity"},
		{Label: "DE Bioenergy", Column: "DE_bioenergy_capacity"},
		{Label: "DK Solar", Column: "DK_solar_capacity"},
		{Label: "DK Wind Onshore", Column: "DK_wind_onshore_capacity"},
		{Label: "UK Solar", Column: "GB-UKM_solar_capacity"},
		{Label: "UK Wind Onshore", Column: "GB-UKM_wind_onshore_capacity"},
		{Label: "UK Wind Offshore", Column: "GB-UKM_wind_offshore_capacity"},
		{Label: "CH Solar", Column: "CH_solar_capacity"},
		{Label: "SE Wind Onshore", Column: "SE_wind_onshore_capacity"},
		{Label: "FR Wind Onshore", Column: "FR_wind_onshore_capacity"},
		{Label: "FR Solar", Column: "FR_solar_capacity"},
	}
}

// Options configures a full forecasting run
type Options struct {
	Series    []SeriesConfig             `json:"series"`
	Forecast  *forecast.Options          `json:"forecast"`
	Aggregate *forecast.AggregateOptions `json:"aggregate"`

	// Parallelization bounds how many series are fit concurrently
	Parallelization int `json:"parallelization"`
}

// NewDefaultOptions returns the default series list with linear vs quadratic selection
func NewDefaultOptions() *Options {
	return &Options{
		Series:          DefaultSeries(),
		Forecast:        forecast.NewDefaultOptions(),
		Aggregate:       forecast.NewDefaultAggregateOptions(),
		Parallelization: 1,
	}
}

// Validate returns the default options for a nil receiver, fills unset sections with their
// defaults and checks the series list for unique labels.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if len(o.Series) == 0 {
		return nil, ErrNoSeriesConfig
	}
	seen := make(map[string]struct{}, len(o.Series))
	for _, s := range o.Series {
		if s.Label == "" || s.Column == "" {
			return nil, fmt.Errorf("got %+v, %w", s, ErrEmptySeriesConfig)
		}
		if s.Label == CommissioningLabel {
			return nil, fmt.Errorf("%s, %w", s.Label, ErrReservedLabel)
		}
		if _, exists := seen[s.Label]; exists {
			return nil, fmt.Errorf("%s, %w", s.Label, ErrDuplicateLabel)
		}
		seen[s.Label] = struct{}{}
	}

	fOpt, err := o.Forecast.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid forecast options, %w", err)
	}
	o.Forecast = fOpt

	aOpt, err := o.Aggregate.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid aggregate options, %w", err)
	}
	o.Aggregate = aOpt

	if o.Parallelization < 1 {
		return nil, fmt.Errorf("got %d, %w", o.Parallelization, ErrInvalidParallelization)
	}
	return o, nil
}

// LoadOptions decodes options from json. Fields missing from the input keep their defaults.
func LoadOptions(r io.Reader) (*Options, error) {
	opt := NewDefaultOptions()
	if err := json.NewDecoder(r).Decode(opt); err != nil {
		return nil, fmt.Errorf("unable to decode options, %w", err)
	}
	return opt.Validate()
}

// LoadOptionsFile reads options from a json file
func LoadOptionsFile(path string) (*Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadOptions(f)
}

// TablePrint writes the effective configuration
func (o *Options) TablePrint(w io.Writer) error {
	if o == nil {
		return nil
	}
	prefix := ""
	indent := "  "

	if _, err := fmt.Fprintf(w, "Forecaster Options:\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%sParallelization: %d\n", indent, o.Parallelization); err != nil {
		return err
	}
	if err := o.Forecast.TablePrint(w, prefix, indent, 1); err != nil {
		return err
	}
	if err := o.Aggregate.TablePrint(w, prefix, indent, 1); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%sSeries:\n", indent); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%s\tLabel\tColumn\t\n", indent, indent); err != nil {
		return err
	}
	for _, s := range o.Series {
		if _, err := fmt.Fprintf(tbl, "%s%s\t%s\t%s\t\n", indent, indent, s.Label, s.Column); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
