// Package export writes review tables to local files for offline
// inspection, mirroring the shapes stored in the object store.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skytraxdata/airline-reviews/models"
	"github.com/skytraxdata/airline-reviews/storage"
)

// TableWriter persists one named review table.
type TableWriter interface {
	Write(name string, table *models.Table) error
}

// CSVWriter writes each table to <dir>/<name>.csv using the same
// encoding as the object-store payloads.
type CSVWriter struct {
	dir string
}

// NewCSVWriter ensures dir exists and returns a writer into it.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &CSVWriter{dir: dir}, nil
}

// Write serializes the table to a CSV file.
func (w *CSVWriter) Write(name string, table *models.Table) error {
	body, err := storage.EncodeTable(table)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(w.dir, name+".csv")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// JSONLWriter writes each table to <dir>/<name>.jsonl, one review
// object per line.
type JSONLWriter struct {
	dir string
}

// NewJSONLWriter ensures dir exists and returns a writer into it.
func NewJSONLWriter(dir string) (*JSONLWriter, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &JSONLWriter{dir: dir}, nil
}

// Write serializes the table rows as newline-delimited JSON.
func (w *JSONLWriter) Write(name string, table *models.Table) error {
	path := filepath.Join(w.dir, name+".jsonl")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	buffer := bufio.NewWriter(f)
	encoder := json.NewEncoder(buffer)
	for _, row := range table.Rows {
		if err := encoder.Encode(row); err != nil {
			return fmt.Errorf("encode %s record: %w", name, err)
		}
	}
	if err := buffer.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// DualWriter writes both CSV and JSONL outputs for every table.
type DualWriter struct {
	csv   *CSVWriter
	jsonl *JSONLWriter
}

// NewDualWriter creates CSV and JSONL writers sharing one directory.
func NewDualWriter(dir string) (*DualWriter, error) {
	csvWriter, err := NewCSVWriter(dir)
	if err != nil {
		return nil, err
	}
	jsonlWriter, err := NewJSONLWriter(dir)
	if err != nil {
		return nil, err
	}
	return &DualWriter{csv: csvWriter, jsonl: jsonlWriter}, nil
}

// Write writes the table in both formats.
func (w *DualWriter) Write(name string, table *models.Table) error {
	if err := w.csv.Write(name, table); err != nil {
		return err
	}
	return w.jsonl.Write(name, table)
}

// WriteSet writes every populated slot of a review set, named after its
// category.
func WriteSet(writer TableWriter, set *models.ReviewSet) error {
	for _, category := range models.Categories() {
		table := set.Get(category)
		if table.Empty() {
			continue
		}
		if err := writer.Write(string(category)+"_reviews", table); err != nil {
			return err
		}
	}
	return nil
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
