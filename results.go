package forecaster

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/aouyang1/go-capacity-forecaster/forecast"
	"github.com/goccy/go-json"
)

var ErrDuplicateSeries = errors.New("series label already has a forecast")

// Predictions holds the series forecasts in insertion order followed by the commissioning trend.
// It marshals to a single json object keyed by label.
type Predictions struct {
	labels []string
	series map[string]forecast.SeriesResult

	Commissioning *forecast.AggregateResult

	// Skipped lists configured series that could not be forecast. It is not part of the json
	// document.
	Skipped []Skip
}

func NewPredictions() *Predictions {
	return &Predictions{
		labels: []string{},
		series: make(map[string]forecast.SeriesResult),
	}
}

// AddSeries appends the forecast of a series
func (p *Predictions) AddSeries(label string, res forecast.SeriesResult) error {
	if label == CommissioningLabel {
		return fmt.Errorf("%s, %w", label, ErrReservedLabel)
	}
	if _, exists := p.series[label]; exists {
		return fmt.Errorf("%s, %w", label, ErrDuplicateSeries)
	}
	p.labels = append(p.labels, label)
	p.series[label] = res
	return nil
}

// Labels returns the series labels in output order
func (p *Predictions) Labels() []string {
	if p == nil {
		return nil
	}
	labels := make([]string, len(p.labels))
	copy(labels, p.labels)
	return labels
}

// Series returns the forecast of a label
func (p *Predictions) Series(label string) (forecast.SeriesResult, bool) {
	if p == nil {
		return forecast.SeriesResult{}, false
	}
	res, exists := p.series[label]
	return res, exists
}

// Len returns the number of forecast series
func (p *Predictions) Len() int {
	if p == nil {
		return 0
	}
	return len(p.labels)
}

// MarshalJSON writes one member per series label in order followed by the commissioning
// forecast when present.
func (p *Predictions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeMember := func(first bool, key string, val any) error {
		if !first {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("unable to marshal %s, %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	for i, label := range p.labels {
		if err := writeMember(i == 0, label, p.series[label]); err != nil {
			return nil, err
		}
	}
	if p.Commissioning != nil {
		if err := writeMember(len(p.labels) == 0, CommissioningLabel, p.Commissioning); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a predictions document. Member order of the document is kept.
func (p *Predictions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	res := NewPredictions()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected label, got %v", tok)
		}
		if label == CommissioningLabel {
			var agg forecast.AggregateResult
			if err := dec.Decode(&agg); err != nil {
				return fmt.Errorf("unable to decode %s, %w", label, err)
			}
			res.Commissioning = &agg
			continue
		}
		var sr forecast.SeriesResult
		if err := dec.Decode(&sr); err != nil {
			return fmt.Errorf("unable to decode %s, %w", label, err)
		}
		if err := res.AddSeries(label, sr); err != nil {
			return err
		}
	}
	*p = *res
	return nil
}

// WriteFile writes the indented predictions document to path
func (p *Predictions) WriteFile(path string) error {
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// TablePrint writes a one line summary per series and the skipped series
func (p *Predictions) TablePrint(w io.Writer) error {
	if p == nil {
		return nil
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "Series\tDegree\tR2\tLatest MW\tCheckpoint MW\tHorizon MW\tGrowth %%\t\n"); err != nil {
		return err
	}
	for _, label := range p.labels {
		res := p.series[label]
		checkpoint := "-"
		if res.CheckpointValue != nil {
			checkpoint = fmt.Sprintf("%.2f", *res.CheckpointValue)
		}
		if _, err := fmt.Fprintf(tbl, "%s\t%d\t%.4f\t%.2f\t%s\t%.2f\t%.1f\t\n",
			label, res.ModelDegree, res.R2Score, res.LatestActual, checkpoint, res.HorizonValue, res.GrowthPct,
		); err != nil {
			return err
		}
	}
	if err := tbl.Flush(); err != nil {
		return err
	}
	for _, s := range p.Skipped {
		if _, err := fmt.Fprintf(w, "skipped %s (%s): %v\n", s.Label, s.Column, s.Err); err != nil {
			return err
		}
	}
	return nil
}
