// Package logstore loads intermediate log documents written by the snapshot
// processor and normalizes them into a flat record list.
package logstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Record is one normalized key-value row from an intermediate log document.
// Fields carries the full row as decoded; Key and Value are conveniences for
// the common ItemTable shape. LogMtime is the source document's modification
// time in epoch milliseconds.
type Record struct {
	Key      string
	Value    string
	Fields   map[string]any
	LogMtime int64
	Source   string
}

// Store reads intermediate log documents from a fixed directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string { return s.dir }

// Load reads every *.json document in the store directory and flattens it
// into records. A top-level array yields one record per element; an object
// with an ItemTable array yields one record per table row; any other object
// becomes a single record. Documents that fail to parse are logged and
// skipped; a missing directory yields an empty list.
func (s *Store) Load() []Record {
	var records []Record

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[logstore] reading %s: %v", s.dir, err)
		}
		return records
	}

	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())

		docRecords, err := loadDocument(path, entry.Name())
		if err != nil {
			log.Printf("[logstore] skipping %s: %v", entry.Name(), err)
			continue
		}
		records = append(records, docRecords...)
		files++
	}

	log.Printf("[logstore] loaded %d records from %d documents", len(records), files)
	return records
}

func loadDocument(path, name string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}
	mtime := info.ModTime().UnixMilli()

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	switch v := doc.(type) {
	case []any:
		return recordsFromSlice(v, mtime, name), nil
	case map[string]any:
		if table, ok := v["ItemTable"].([]any); ok {
			return recordsFromSlice(table, mtime, name), nil
		}
		return []Record{recordFromValue(v, mtime, name)}, nil
	default:
		return []Record{recordFromValue(v, mtime, name)}, nil
	}
}

func recordsFromSlice(elems []any, mtime int64, source string) []Record {
	records := make([]Record, 0, len(elems))
	for _, elem := range elems {
		records = append(records, recordFromValue(elem, mtime, source))
	}
	return records
}

func recordFromValue(v any, mtime int64, source string) Record {
	rec := Record{LogMtime: mtime, Source: source}
	fields, ok := v.(map[string]any)
	if !ok {
		rec.Value = fmt.Sprint(v)
		return rec
	}
	rec.Fields = fields
	if k, ok := fields["key"].(string); ok {
		rec.Key = k
	}
	if val, ok := fields["value"].(string); ok {
		rec.Value = val
	}
	return rec
}
