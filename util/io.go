package util

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8_bom = []byte{0xEF, 0xBB, 0xBF}

// Picks the most frequent of ',', ';' and '\t' in the first line, ',' if none occurs.
func DetectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	delimiter := ','
	best := 0
	for _, d := range []rune{',', ';', '\t'} {
		c := strings.Count(string(line), string(d))
		if c > best {
			delimiter = d
			best = c
		}
	}
	return delimiter
}

// Reads a csv table into its header and rows.
//
// Rows with a different field count than the header are padded or cut to the header length,
// fully empty rows are dropped.
func ReadCSV(reader io.Reader, delimiter rune) (List[string], List[List[string]], error) {
	buffered := bufio.NewReader(reader)
	if head, err := buffered.Peek(len(utf8_bom)); err == nil && bytes.Equal(head, utf8_bom) {
		buffered.Discard(len(utf8_bom))
	}

	csv_reader := csv.NewReader(buffered)
	csv_reader.Comma = delimiter
	csv_reader.FieldsPerRecord = -1
	csv_reader.LazyQuotes = true

	header, err := csv_reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New("empty csv")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	rows := NewList[List[string]](100)
	for {
		record, err := csv_reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv row %v: %w", rows.Length()+1, err)
		}
		if _IsEmptyRecord(record) {
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
	return List[string](header), rows, nil
}

func _IsEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func ReadCSVFromFile(filename string, delimiter rune) (List[string], List[List[string]], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return ReadCSV(file, delimiter)
}
