package timedataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrNoDateColumn = errors.New("date column not found in csv header")

// CSVOptions configures how a capacity table is read from csv
type CSVOptions struct {
	DateColumn string `json:"date_column"`
	DateFormat string `json:"date_format"`
	Delimiter  rune   `json:"delimiter"`
}

// NewDefaultCSVOptions returns options for the OPSD capacity timeseries layout
func NewDefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn: "day",
		DateFormat: time.DateOnly,
		Delimiter:  ',',
	}
}

// Validate fills in defaults for unset fields
func (c *CSVOptions) Validate() (*CSVOptions, error) {
	if c == nil {
		c = NewDefaultCSVOptions()
	}
	if c.DateColumn == "" {
		c.DateColumn = "day"
	}
	if c.DateFormat == "" {
		c.DateFormat = time.DateOnly
	}
	if c.Delimiter == 0 {
		c.Delimiter = ','
	}
	return c, nil
}

// LoadCSV reads a capacity table from a csv file
func LoadCSV(filename string, opt *CSVOptions) (*CapacityTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opt)
}

type csvRow struct {
	day  time.Time
	vals []float64
}

// LoadCSVFromReader reads a capacity table where one column holds the day and every other
// column is a numeric capacity. Rows with an unparseable day are dropped, empty or non numeric
// cells become NaN, and rows are sorted by day. Rows sharing a day collapse into one where each
// column holds the value of the last row with a non-missing cell.
func LoadCSVFromReader(r io.Reader, opt *CSVOptions) (*CapacityTable, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.Comma = opt.Delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read csv header, %w", err)
	}

	dateIdx := -1
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(strings.Trim(h, "\""))
		if names[i] == opt.DateColumn {
			dateIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%q, %w", opt.DateColumn, ErrNoDateColumn)
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if dateIdx >= len(record) {
			continue
		}
		day, err := parseDay(record[dateIdx], opt.DateFormat)
		if err != nil {
			continue
		}

		vals := make([]float64, len(names))
		for i := range names {
			vals[i] = math.NaN()
			if i == dateIdx || i >= len(record) {
				continue
			}
			valStr := strings.TrimSpace(strings.Trim(record[i], "\""))
			if valStr == "" {
				continue
			}
			if v, err := strconv.ParseFloat(valStr, 64); err == nil {
				vals[i] = v
			}
		}
		rows = append(rows, csvRow{day: day, vals: vals})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].day.Before(rows[j].day)
	})

	days := make([]time.Time, 0, len(rows))
	cols := make(map[string][]float64, len(names)-1)
	for i, name := range names {
		if i == dateIdx {
			continue
		}
		cols[name] = make([]float64, 0, len(rows))
	}
	for _, row := range rows {
		if n := len(days); n > 0 && days[n-1].Equal(row.day) {
			for i, name := range names {
				if i == dateIdx || math.IsNaN(row.vals[i]) {
					continue
				}
				cols[name][n-1] = row.vals[i]
			}
			continue
		}
		days = append(days, row.day)
		for i, name := range names {
			if i == dateIdx {
				continue
			}
			cols[name] = append(cols[name], row.vals[i])
		}
	}

	return NewCapacityTable(days, cols)
}

func parseDay(s, layout string) (time.Time, error) {
	s = strings.TrimSpace(strings.Trim(s, "\""))
	formats := []string{
		layout,
		time.DateOnly,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	var err error
	for _, f := range formats {
		var day time.Time
		day, err = time.Parse(f, s)
		if err == nil {
			return day.UTC(), nil
		}
	}
	return time.Time{}, err
}
