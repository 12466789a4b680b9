// Package registry loads the project reference table for Nametag.
package registry

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadErrorType represents the type of reference-table loading error.
type LoadErrorType string

const (
	// FileNotFound indicates the reference table does not exist or is unreadable.
	FileNotFound LoadErrorType = "FILE_NOT_FOUND"
	// MalformedTable indicates the file could not be parsed as CSV at all.
	MalformedTable LoadErrorType = "MALFORMED_TABLE"
)

// LoadError represents an error that occurred while loading the reference table.
type LoadError struct {
	Type LoadErrorType
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Entry is a single reference-table row: a canonical project name and
// its project identifier.
type Entry struct {
	Name       string
	Identifier string
}

// Table is the name-to-identifier reference mapping. Entries preserve
// the order rows were first seen in the source table, which is the
// iteration order the matcher depends on.
type Table struct {
	entries []Entry
	index   map[string]string
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		entries: []Entry{},
		index:   make(map[string]string),
	}
}

// Add appends a (name, identifier) pair to the table.
// Empty names or identifiers are rejected, and a name that is already
// present keeps its original identifier (first-seen wins).
// It returns true if the entry was added.
func (t *Table) Add(name, identifier string) bool {
	if name == "" || identifier == "" {
		return false
	}
	if _, exists := t.index[name]; exists {
		return false
	}
	t.entries = append(t.entries, Entry{Name: name, Identifier: identifier})
	t.index[name] = identifier
	return true
}

// Entries returns the table rows in first-seen order.
// The returned slice is shared; callers must not modify it.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Lookup returns the identifier for an exactly matching name.
func (t *Table) Lookup(name string) (string, bool) {
	identifier, ok := t.index[name]
	return identifier, ok
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Load reads a reference table from a CSV file.
// The file has a header row, which is skipped. Column 0 holds the
// project identifier and column 2 the project name; both are
// whitespace-trimmed. A UTF-8 byte-order mark on the first cell is
// stripped. Rows with fewer than three columns, an empty identifier,
// or an empty name are skipped silently; a duplicate name keeps the
// identifier from its first occurrence.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Type: FileNotFound,
			Path: path,
			Err:  err,
		}
	}

	// Strip the byte-order mark before CSV parsing sees it, the way
	// an utf-8-sig decoder would.
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	// Rows in the management ledger vary in width; accept any length
	// and filter below.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{
			Type: MalformedTable,
			Path: path,
			Err:  err,
		}
	}

	table := NewTable()
	for i, record := range records {
		if i == 0 {
			// Header row.
			continue
		}
		if len(record) < 3 {
			continue
		}
		identifier := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[2])
		table.Add(name, identifier)
	}

	return table, nil
}
