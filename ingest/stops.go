package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	. "github.com/ttpr0/isomap/structs"
	. "github.com/ttpr0/isomap/util"
)

// Converts the rows of a normalized table into stops.
//
// Rows with unparsable or out-of-range coordinates are skipped with a warning.
// Missing names and stop numbers fall back to "Stop {i+1}" and "{i+1}".
func ParseStops(source string, table Table) (List[Stop], List[Warning]) {
	stops := NewList[Stop](table.Rows.Length())
	warnings := NewList[Warning](0)

	lat_col := table.ColumnIndex("lat")
	lon_col := table.ColumnIndex("lon")
	if lat_col == -1 || lon_col == -1 {
		warnings.Add(NewWarning(source, "%v", ErrMissingColumns))
		return stops, warnings
	}
	name_col := table.ColumnIndex("name")
	number_col := table.ColumnIndex("stop_number")
	address_col := table.ColumnIndex("address")

	for i, row := range table.Rows {
		lat, err := ParseCoordinate(row[lat_col], 90)
		if err != nil {
			warnings.Add(NewWarning(source, "row %v: invalid lat: %v", i+1, err))
			continue
		}
		lon, err := ParseCoordinate(row[lon_col], 180)
		if err != nil {
			warnings.Add(NewWarning(source, "row %v: invalid lon: %v", i+1, err))
			continue
		}
		stops.Add(Stop{
			Lat:        lat,
			Lon:        lon,
			Name:       _CellOr(row, name_col, fmt.Sprintf("Stop %v", i+1)),
			StopNumber: _CellOr(row, number_col, strconv.Itoa(i+1)),
			Address:    _CellOr(row, address_col, ""),
			Row:        i,
		})
	}
	return stops, warnings
}

// Parses a decimal coordinate, a single decimal comma is accepted.
func ParseCoordinate(value string, limit float64) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty value")
	}
	if strings.Count(value, ",") == 1 && !strings.Contains(value, ".") {
		value = strings.Replace(value, ",", ".", 1)
	}
	coord, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", value)
	}
	if math.IsNaN(coord) || coord < -limit || coord > limit {
		return 0, fmt.Errorf("%v out of range [-%v, %v]", coord, limit, limit)
	}
	return coord, nil
}

func _CellOr(row List[string], column int, fallback string) string {
	if column == -1 {
		return fallback
	}
	value := strings.TrimSpace(row[column])
	if value == "" {
		return fallback
	}
	return value
}
