package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/finance"
	"github.com/MrJamesThe3rd/daftar/internal/reconcile"
)

// FileSource serves entries and finance records loaded from export files. It
// satisfies the same listing contracts as the database stores.
type FileSource struct {
	entries []*debt.Entry
	records []*finance.Record
}

func NewFileSource(entries []*debt.Entry, records []*finance.Record) *FileSource {
	return &FileSource{entries: entries, records: records}
}

// Open loads both files. financePath may be empty when no finance export is
// available; the source then has no records.
func Open(entriesPath, financePath string) (*FileSource, error) {
	entries, err := readEntriesFile(entriesPath)
	if err != nil {
		return nil, err
	}

	if financePath == "" {
		return NewFileSource(entries, nil), nil
	}

	records, err := readRecordsFile(financePath)
	if err != nil {
		return nil, err
	}

	return NewFileSource(entries, records), nil
}

func readEntriesFile(path string) ([]*debt.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open entries: %w", err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return entries, nil
}

func readRecordsFile(path string) ([]*finance.Record, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open finance records: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(format, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return records, nil
}

func (s *FileSource) ListEntries(_ context.Context, filter debt.ListFilter) ([]*debt.Entry, error) {
	var key string
	if filter.DebtorName != nil {
		key = reconcile.Key(*filter.DebtorName)
	}

	var entries []*debt.Entry

	for _, e := range s.entries {
		if filter.BranchID != nil && e.BranchID != *filter.BranchID {
			continue
		}

		if filter.DebtorName != nil && reconcile.Key(e.DebtorName) != key {
			continue
		}

		if filter.UnreturnedOnly && e.IsReturned {
			continue
		}

		entries = append(entries, e)
	}

	return entries, nil
}

func (s *FileSource) ListRecords(_ context.Context, filter finance.ListFilter) ([]*finance.Record, error) {
	var records []*finance.Record

	for _, r := range s.records {
		if filter.Kind != nil && r.Kind != *filter.Kind {
			continue
		}

		if filter.StartDate != nil && r.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && r.Date.After(*filter.EndDate) {
			continue
		}

		records = append(records, r)
	}

	return records, nil
}
