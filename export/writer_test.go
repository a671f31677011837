package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/skytraxdata/airline-reviews/models"
)

func seatTable() *models.Table {
	table := models.NewTable(map[string]struct{}{
		"Review ID":  {},
		"Date Flown": {},
	})
	table.Append(
		models.Review{"Review ID": "701", "Date Flown": "May 2024"},
		models.Review{"Review ID": "702", "Date Flown": models.MissingValue},
	)
	return table
}

func TestCSVWriter(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewCSVWriter(dir)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	if err := writer.Write("seat_reviews", seatTable()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "seat_reviews.csv"))
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d csv lines, want header + 2 rows", len(records))
	}
	if !reflect.DeepEqual(records[0], []string{"Date Flown", "Review ID"}) {
		t.Fatalf("header = %v", records[0])
	}
}

func TestJSONLWriter(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewJSONLWriter(dir)
	if err != nil {
		t.Fatalf("NewJSONLWriter: %v", err)
	}

	if err := writer.Write("seat_reviews", seatTable()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "seat_reviews.jsonl"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d jsonl lines, want 2", len(lines))
	}
	var row map[string]string
	if err := json.Unmarshal([]byte(lines[0]), &row); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if row["Review ID"] != "701" {
		t.Fatalf("first row = %v", row)
	}
}

func TestWriteSetSkipsAbsentAndEmptySlots(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewDualWriter(dir)
	if err != nil {
		t.Fatalf("NewDualWriter: %v", err)
	}

	var set models.ReviewSet
	set.Set(models.CategorySeat, seatTable())
	set.Set(models.CategoryLounge, models.NewTable(map[string]struct{}{"Review ID": {}}))

	if err := WriteSet(writer, &set); err != nil {
		t.Fatalf("WriteSet: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	want := []string{"seat_reviews.csv", "seat_reviews.jsonl"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("files = %v, want %v", names, want)
	}
}
