package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bluele/gcache"
	. "github.com/ttpr0/isomap/structs"
	. "github.com/ttpr0/isomap/util"
	"golang.org/x/exp/slog"
)

var ErrMissingColumns = errors.New("must contain 'lat' and 'lon'")

// Uploaded file.
type File struct {
	Name string
	Data []byte
}

// File whose table passed validation.
type ParsedFile struct {
	Name  string
	Stops List[Stop]
	// number of table rows before coordinate validation
	RowCount int
}

//*******************************************
// ingestor
//*******************************************

type Ingestor struct {
	cache gcache.Cache
}

// Creates an ingestor memoizing up to size parsed tables.
func NewIngestor(size int, expiration time.Duration) *Ingestor {
	builder := gcache.New(max(size, 1)).LRU()
	if expiration > 0 {
		builder = builder.Expiration(expiration)
	}
	return &Ingestor{
		cache: builder.Build(),
	}
}

// Reads and normalizes a file, identical contents are parsed once.
func (self *Ingestor) ReadFile(file File) (Table, error) {
	key := _ContentKey(file)
	if value, err := self.cache.Get(key); err == nil {
		slog.Debug(fmt.Sprintf("using cached table for %v", file.Name))
		return value.(Table), nil
	}
	table, err := ReadTable(file.Name, file.Data)
	if err != nil {
		return Table{}, err
	}
	table = NormalizeColumns(table)
	self.cache.Set(key, table)
	return table, nil
}

// Parses all files in upload order.
//
// Files that cannot be read or lack lat/lon columns are skipped with a warning.
func (self *Ingestor) Ingest(files List[File]) (List[ParsedFile], List[Warning]) {
	parsed := NewList[ParsedFile](files.Length())
	warnings := NewList[Warning](0)
	for _, file := range files {
		table, err := self.ReadFile(file)
		if err != nil {
			slog.Warn(fmt.Sprintf("failed to read %v: %v", file.Name, err))
			warnings.Add(NewWarning(file.Name, "could not read file, skipping: %v", err))
			continue
		}
		if err := ValidateTable(table); err != nil {
			slog.Warn(fmt.Sprintf("%v is missing coordinate columns", file.Name))
			warnings.Add(NewWarning(file.Name, "%v, skipping", err))
			continue
		}
		stops, stop_warnings := ParseStops(file.Name, table)
		warnings = append(warnings, stop_warnings...)
		parsed.Add(ParsedFile{
			Name:     file.Name,
			Stops:    stops,
			RowCount: table.Rows.Length(),
		})
	}
	return parsed, warnings
}

// Checks that a normalized table has both coordinate columns.
func ValidateTable(table Table) error {
	if !table.HasColumn("lat") || !table.HasColumn("lon") {
		return ErrMissingColumns
	}
	return nil
}

func _ContentKey(file File) string {
	sum := sha256.Sum256(file.Data)
	return hex.EncodeToString(sum[:]) + strings.ToLower(filepath.Ext(file.Name))
}
