package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/skytraxdata/airline-reviews/models"
)

// EncodeTable serializes a table as CSV in memory: the canonical columns
// as the header row, then one row per review in table order.
func EncodeTable(table *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeTable parses a CSV payload produced by EncodeTable back into a
// table with the same column set and row count.
func DecodeTable(data []byte) (*models.Table, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("csv payload has no header row")
	}

	table := &models.Table{Columns: records[0]}
	for _, record := range records[1:] {
		row := make(models.Review, len(table.Columns))
		for i, col := range table.Columns {
			row[col] = record[i]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
