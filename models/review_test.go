package models

import (
	"reflect"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "airline", want: CategoryAirline},
		{input: "seat", want: CategorySeat},
		{input: "lounge", want: CategoryLounge},
		{input: "all", wantErr: true},
		{input: "cargo", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCategory(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveSelector(t *testing.T) {
	all, err := ResolveSelector(SelectorAll)
	if err != nil {
		t.Fatalf("ResolveSelector(all) unexpected error: %v", err)
	}
	if !reflect.DeepEqual(all, Categories()) {
		t.Fatalf("ResolveSelector(all) = %v, want %v", all, Categories())
	}

	single, err := ResolveSelector("seat")
	if err != nil {
		t.Fatalf("ResolveSelector(seat) unexpected error: %v", err)
	}
	if len(single) != 1 || single[0] != CategorySeat {
		t.Fatalf("ResolveSelector(seat) = %v, want [seat]", single)
	}

	if _, err := ResolveSelector("bogus"); err == nil {
		t.Fatalf("ResolveSelector(bogus) expected error")
	}
}

func TestNewTableSortsColumns(t *testing.T) {
	table := NewTable(map[string]struct{}{
		"rating": {},
		"date":   {},
		"seat":   {},
	})

	want := []string{"date", "rating", "seat"}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Fatalf("columns = %v, want %v", table.Columns, want)
	}
	if !table.Empty() {
		t.Fatalf("new table should be empty")
	}
}

func TestTableEmptyNilSafe(t *testing.T) {
	var table *Table
	if !table.Empty() {
		t.Fatalf("nil table should report empty")
	}

	table = &Table{Columns: []string{"date"}}
	table.Append(Review{"date": "May 2024"})
	if table.Empty() {
		t.Fatalf("table with a row should not report empty")
	}
}

func TestReviewSetSlots(t *testing.T) {
	var set ReviewSet
	seat := &Table{Columns: []string{"date"}}

	set.Set(CategorySeat, seat)

	if set.Get(CategorySeat) != seat {
		t.Fatalf("seat slot not populated")
	}
	if set.Get(CategoryAirline) != nil || set.Get(CategoryLounge) != nil {
		t.Fatalf("sibling slots must stay untouched")
	}
}
