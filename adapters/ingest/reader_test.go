package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsinsight/ports"
)

func TestReaderFor(t *testing.T) {
	for _, name := range []string{"data.csv", "DATA.CSV", "book.xlsx", "legacy.xls", "payload.json"} {
		_, err := ReaderFor(name)
		assert.NoError(t, err, name)
	}

	_, err := ReaderFor("notes.txt")
	assert.Error(t, err)
}

func TestCSVReader_SingleColumn(t *testing.T) {
	src := strings.NewReader("10.5\n11.2\n9.8\n")

	s, err := (&CSVReader{}).Read(src, ports.ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []float64{10.5, 11.2, 9.8}, s.Values)
	assert.Empty(t, s.Timestamps)
}

func TestCSVReader_HeaderAndDateColumn(t *testing.T) {
	src := strings.NewReader("date,sales\n2024-01-01,100\n2024-01-02,110\n2024-01-03,95\n")

	s, err := (&CSVReader{}).Read(src, ports.ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 110, 95}, s.Values)
	require.Len(t, s.Timestamps, 3)
	assert.Equal(t, 2024, s.Timestamps[0].Year())
}

func TestCSVReader_NamedValueColumn(t *testing.T) {
	src := strings.NewReader("region,revenue,units\nnorth,250.5,3\nsouth,180.0,2\n")

	s, err := (&CSVReader{}).Read(src, ports.ReadOptions{ValueColumn: "revenue"})
	require.NoError(t, err)

	assert.Equal(t, []float64{250.5, 180.0}, s.Values)
}

func TestCSVReader_MissingNamedColumn(t *testing.T) {
	src := strings.NewReader("a,b\n1,2\n")

	_, err := (&CSVReader{}).Read(src, ports.ReadOptions{ValueColumn: "missing"})
	assert.Error(t, err)
}

func TestCSVReader_NonNumericValue(t *testing.T) {
	src := strings.NewReader("value\n10\nabc\n")

	_, err := (&CSVReader{}).Read(src, ports.ReadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not numeric")
}

func TestCSVReader_SkipsEmptyRows(t *testing.T) {
	src := strings.NewReader("10\n\n20\n  \n30\n")

	s, err := (&CSVReader{}).Read(src, ports.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, s.Values)
}

func TestJSONReader_BareArray(t *testing.T) {
	src := strings.NewReader("[1.5, 2.5, 3.5]")

	s, err := (&JSONReader{}).Read(src, ports.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, s.Values)
}

func TestJSONReader_ObjectWithTimestamps(t *testing.T) {
	src := strings.NewReader(`{
		"values": [10, 20],
		"timestamps": ["2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"]
	}`)

	s, err := (&JSONReader{}).Read(src, ports.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, s.Values)
	require.Len(t, s.Timestamps, 2)
}

func TestJSONReader_Malformed(t *testing.T) {
	_, err := (&JSONReader{}).Read(strings.NewReader("{not json"), ports.ReadOptions{})
	assert.Error(t, err)
}

func TestCSVReader_CustomDateFormat(t *testing.T) {
	src := strings.NewReader("date,value\n01/02/2024,5\n01/03/2024,6\n")

	s, err := (&CSVReader{}).Read(src, ports.ReadOptions{DateFormat: "01/02/2006"})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6}, s.Values)
	require.Len(t, s.Timestamps, 2)
	assert.Equal(t, 1, int(s.Timestamps[0].Month()))
}
