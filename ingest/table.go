package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	. "github.com/ttpr0/isomap/util"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Tabular content of an uploaded file, every row has one cell per column.
type Table struct {
	Columns List[string]
	Rows    List[List[string]]
}

// Returns the position of the column or -1.
func (self Table) ColumnIndex(name string) int {
	for i, column := range self.Columns {
		if column == name {
			return i
		}
	}
	return -1
}

func (self Table) HasColumn(name string) bool {
	return self.ColumnIndex(name) != -1
}

// Returns the cell of the given column, "" if the column does not exist.
func (self Table) Cell(row int, column string) string {
	index := self.ColumnIndex(column)
	if index == -1 {
		return ""
	}
	return self.Rows[row][index]
}

//*******************************************
// readers
//*******************************************

// Parses a file by its lower-cased extension (.csv, .xlsx or .xls).
//
// Excel files are read from their first sheet.
func ReadTable(filename string, data []byte) (Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return _ReadCSVTable(data)
	case ".xlsx":
		return _ReadXLSXTable(data)
	case ".xls":
		return _ReadXLSTable(data)
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func _ReadCSVTable(data []byte) (Table, error) {
	delimiter := DetectDelimiter(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	header, rows, err := ReadCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return Table{}, err
	}
	return Table{Columns: header, Rows: rows}, nil
}

func _ReadXLSXTable(data []byte) (Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.New("workbook has no sheets")
	}
	records, err := file.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return _BuildTable(records)
}

func _ReadXLSTable(data []byte) (table Table, err error) {
	// the xls decoder panics on malformed records
	defer func() {
		if r := recover(); r != nil {
			table, err = Table{}, fmt.Errorf("malformed workbook: %v", r)
		}
	}()
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	if workbook == nil || workbook.NumSheets() == 0 {
		return Table{}, errors.New("workbook has no sheets")
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return Table{}, errors.New("workbook has no sheets")
	}
	records := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		record := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			record = append(record, row.Col(j))
		}
		records = append(records, record)
	}
	return _BuildTable(records)
}

// Builds a table from raw sheet records, the first non-empty record is the header.
func _BuildTable(records [][]string) (Table, error) {
	start := 0
	for start < len(records) && _IsBlank(records[start]) {
		start += 1
	}
	if start == len(records) {
		return Table{}, errors.New("empty sheet")
	}
	header := List[string](records[start])
	rows := NewList[List[string]](len(records) - start)
	for _, record := range records[start+1:] {
		if _IsBlank(record) {
			continue
		}
		row := NewList[string](len(header))
		for i := 0; i < len(header); i++ {
			if i < len(record) {
				row.Add(record[i])
			} else {
				row.Add("")
			}
		}
		rows.Add(row)
	}
	return Table{Columns: header, Rows: rows}, nil
}

func _IsBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

//*******************************************
// column normalization
//*******************************************

var column_aliases = map[string]string{
	"stop_lat":  "lat",
	"latitude":  "lat",
	"stop_lon":  "lon",
	"lng":       "lon",
	"longitude": "lon",
	"stop_name": "name",
	"stop_code": "stop_number",
}

// Trims and lower-cases column names and maps known aliases onto canonical names.
//
// An alias is only applied if the canonical column is not present and was not claimed by an earlier alias.
func NormalizeColumns(table Table) Table {
	columns := NewList[string](table.Columns.Length())
	present := NewDict[string, bool](table.Columns.Length())
	for _, column := range table.Columns {
		name := strings.ToLower(strings.TrimSpace(column))
		columns.Add(name)
		present[name] = true
	}
	for i, column := range columns {
		canonical, ok := column_aliases[column]
		if !ok || present[canonical] {
			continue
		}
		columns[i] = canonical
		present[canonical] = true
	}
	return Table{Columns: columns, Rows: table.Rows}
}
