// Package importer reads ledger exports from disk: debt entries as JSON and
// finance records as JSON or CSV, in whatever charset the exporting tool used.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/daftar/internal/encoding"
	"github.com/MrJamesThe3rd/daftar/internal/finance"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	}

	return "", fmt.Errorf("unknown export format: %s", path)
}

// ReadRecords parses finance records in the given format.
func ReadRecords(format Format, r io.Reader) ([]*finance.Record, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	switch format {
	case FormatJSON:
		return decodeRecords(utf8r)
	case FormatCSV:
		return parseRecordsCSV(utf8r)
	}

	return nil, fmt.Errorf("unknown export format: %s", format)
}
