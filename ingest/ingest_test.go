package ingest

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/ttpr0/isomap/util"
	"github.com/xuri/excelize/v2"
)

func _LoadFile(t *testing.T, name string) File {
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return File{Name: name, Data: data}
}

func TestReadTableCSV(t *testing.T) {
	file := _LoadFile(t, "route_a.csv")

	table, err := ReadTable(file.Name, file.Data)
	require.NoError(t, err)
	assert.Equal(t, List[string]{"name", "lat", "lon", "stop_number", "address"}, table.Columns)
	require.Equal(t, 2, table.Rows.Length())
	assert.Equal(t, "Market", table.Cell(1, "name"))
	assert.Equal(t, "", table.Cell(1, "address"))
	assert.Equal(t, "", table.Cell(0, "unknown"))
}

func TestReadTableUnsupported(t *testing.T) {
	_, err := ReadTable("stops.json", []byte("{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ReadTable("stops.xls", []byte("not a workbook"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadTableXLSX(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	rows := [][]any{
		{"Lat", "Lon", "Name"},
		{50.01, 10.01, "Central"},
		{},
		{50.02, 10.02},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		if len(row) > 0 {
			require.NoError(t, workbook.SetSheetRow(sheet, cell, &row))
		}
	}
	buffer, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	table, err := ReadTable("Route.XLSX", buffer.Bytes())
	require.NoError(t, err)
	table = NormalizeColumns(table)
	assert.Equal(t, List[string]{"lat", "lon", "name"}, table.Columns)
	require.Equal(t, 2, table.Rows.Length())
	assert.Equal(t, "Central", table.Cell(0, "name"))
	assert.Equal(t, "", table.Cell(1, "name"))

	stops, warnings := ParseStops("Route.XLSX", table)
	assert.Empty(t, warnings)
	require.Equal(t, 2, stops.Length())
	assert.InDelta(t, 50.02, stops[1].Lat, 1e-9)
	assert.Equal(t, "Stop 2", stops[1].Name)
}

func TestNormalizeColumns(t *testing.T) {
	tests := []struct {
		name     string
		columns  List[string]
		expected List[string]
	}{
		{"canonical", List[string]{" LAT ", "Lon", "Name"}, List[string]{"lat", "lon", "name"}},
		{"gtfs", List[string]{"stop_lat", "stop_lon", "stop_name", "stop_code"}, List[string]{"lat", "lon", "name", "stop_number"}},
		{"aliases", List[string]{"Latitude", "lng"}, List[string]{"lat", "lon"}},
		{"alias never overrides", List[string]{"stop_lat", "lat", "lon"}, List[string]{"stop_lat", "lat", "lon"}},
		{"first alias wins", List[string]{"lng", "longitude", "lat"}, List[string]{"lon", "longitude", "lat"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			table := NormalizeColumns(Table{Columns: test.columns})
			assert.Equal(t, test.expected, table.Columns)
		})
	}
}

func TestParseStops(t *testing.T) {
	file := _LoadFile(t, "gtfs_style.csv")
	table, err := ReadTable(file.Name, file.Data)
	require.NoError(t, err)
	table = NormalizeColumns(table)

	stops, warnings := ParseStops(file.Name, table)
	require.Equal(t, 2, stops.Length())
	require.Equal(t, 1, warnings.Length())
	assert.Contains(t, warnings[0].Message, "row 2")

	assert.Equal(t, "Harbour", stops[0].Name)
	assert.Equal(t, "A1", stops[0].StopNumber)
	assert.InDelta(t, 49.5, stops[0].Lat, 1e-9)
	assert.InDelta(t, 8.25, stops[0].Lon, 1e-9)

	// empty cells fall back to the row position
	assert.Equal(t, "Stop 3", stops[1].Name)
	assert.Equal(t, "3", stops[1].StopNumber)
	assert.Equal(t, 2, stops[1].Row)
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		value    string
		limit    float64
		expected float64
		ok       bool
	}{
		{"50.1", 90, 50.1, true},
		{" -8,5 ", 180, -8.5, true},
		{"180", 180, 180, true},
		{"90.5", 90, 0, false},
		{"NaN", 90, 0, false},
		{"", 90, 0, false},
		{"1,000.5", 180, 0, false},
	}
	for _, test := range tests {
		coord, err := ParseCoordinate(test.value, test.limit)
		if !test.ok {
			assert.Error(t, err, test.value)
			continue
		}
		require.NoError(t, err, test.value)
		assert.InDelta(t, test.expected, coord, 1e-9)
	}
}

func TestIngest(t *testing.T) {
	ingestor := NewIngestor(10, time.Minute)
	files := List[File]{
		_LoadFile(t, "route_a.csv"),
		_LoadFile(t, "no_coords.csv"),
		{Name: "notes.txt", Data: []byte("hello")},
		_LoadFile(t, "gtfs_style.csv"),
	}

	parsed, warnings := ingestor.Ingest(files)
	require.Equal(t, 2, parsed.Length())
	assert.Equal(t, "route_a.csv", parsed[0].Name)
	assert.Equal(t, "gtfs_style.csv", parsed[1].Name)
	assert.Equal(t, 3, parsed[1].RowCount)

	sources := NewList[string](warnings.Length())
	for _, warning := range warnings {
		sources.Add(warning.Source)
	}
	assert.Equal(t, List[string]{"no_coords.csv", "notes.txt", "gtfs_style.csv"}, sources)
	assert.Contains(t, warnings[0].Message, "must contain 'lat' and 'lon'")
}

func TestIngestorMemo(t *testing.T) {
	ingestor := NewIngestor(10, 0)
	file := _LoadFile(t, "route_a.csv")

	first, err := ingestor.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 1, ingestor.cache.Len(false))

	renamed := File{Name: "other.csv", Data: file.Data}
	second, err := ingestor.ReadFile(renamed)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, ingestor.cache.Len(false))

	assert.ErrorIs(t, ValidateTable(Table{Columns: List[string]{"lat"}}), ErrMissingColumns)
}
