package timedataset

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	data := `day,DE_solar_capacity,CH_solar_capacity
2001-01-02,10,
not-a-date,99,99
2001-01-01,5,1.5
2001-01-03,,2
2001-01-03,12,x
`
	table, err := LoadCSVFromReader(strings.NewReader(data), nil)
	require.Nil(t, err)

	assert.Equal(t, []string{"CH_solar_capacity", "DE_solar_capacity"}, table.ColumnNames())
	require.Equal(t, 3, table.Len())
	assert.Equal(t, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), table.Days.StartTime())
	assert.Equal(t, time.Date(2001, 1, 3, 0, 0, 0, 0, time.UTC), table.Days.EndTime())

	de, ok := table.Column("DE_solar_capacity")
	require.True(t, ok)
	assert.Equal(t, []float64{5, 10, 12}, de)

	ch, ok := table.Column("CH_solar_capacity")
	require.True(t, ok)
	assert.Equal(t, 1.5, ch[0])
	assert.True(t, math.IsNaN(ch[1]))
	assert.Equal(t, 2.0, ch[2])
}

func TestLoadCSVFromReaderRepeatedDays(t *testing.T) {
	data := `day,a,b,c
2001-01-05,1,10,100
2001-01-04,0.5,,
2001-01-05,,20,
2001-01-05,3,,
2001-01-04,,7,
`
	table, err := LoadCSVFromReader(strings.NewReader(data), nil)
	require.Nil(t, err)
	require.Equal(t, 2, table.Len())

	testData := map[string]struct {
		expected []float64
	}{
		"a": {expected: []float64{0.5, 3}},
		"b": {expected: []float64{7, 20}},
		"c": {expected: []float64{math.NaN(), 100}},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			col, ok := table.Column(name)
			require.True(t, ok)
			require.Len(t, col, len(td.expected))
			for i, v := range td.expected {
				if math.IsNaN(v) {
					assert.True(t, math.IsNaN(col[i]), "day %d", i)
					continue
				}
				assert.Equal(t, v, col[i], "day %d", i)
			}
		})
	}
}

func TestLoadCSVFromReaderErrors(t *testing.T) {
	testData := map[string]struct {
		data string
		opt  *CSVOptions
		err  error
	}{
		"no date column": {
			data: "date,a\n2001-01-01,1\n",
			err:  ErrNoDateColumn,
		},
		"no rows": {
			data: "day,a\n",
			err:  ErrNoTrainingData,
		},
		"custom date column": {
			data: "utc_timestamp;a\n2001-01-01;1\n",
			opt:  &CSVOptions{DateColumn: "utc_timestamp", Delimiter: ';'},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCSVFromReader(strings.NewReader(td.data), td.opt)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}
}
