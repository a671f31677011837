// Package models defines the data structures shared by the scraper and loader.
package models

import (
	"fmt"
	"sort"
)

// MissingValue marks a canonical column that was absent for a particular review.
const MissingValue = "N/A"

// SelectorAll requests every review category at once.
const SelectorAll = "all"

// Category identifies one review category on the source site.
type Category string

const (
	CategoryAirline Category = "airline"
	CategorySeat    Category = "seat"
	CategoryLounge  Category = "lounge"
)

// Categories returns the closed category set in a fixed order.
func Categories() []Category {
	return []Category{CategoryAirline, CategorySeat, CategoryLounge}
}

// ParseCategory maps a selector string to a known category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAirline, CategorySeat, CategoryLounge:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown review category %q (want airline, seat, or lounge)", s)
}

// ResolveSelector expands a category selector into the categories it names.
func ResolveSelector(selector string) ([]Category, error) {
	if selector == SelectorAll {
		return Categories(), nil
	}
	category, err := ParseCategory(selector)
	if err != nil {
		return nil, err
	}
	return []Category{category}, nil
}

// Review maps column names to cell values. Every review produced by one
// scrape carries exactly the canonical column set of that scrape as its
// key set; absent fields hold MissingValue.
type Review map[string]string

// Table is an ordered sequence of reviews sharing one canonical column set.
// Row order within a page follows the source markup; across pages it
// follows fan-out completion order.
type Table struct {
	Columns []string
	Rows    []Review
}

// NewTable builds an empty table whose columns are the sorted contents of
// the given set.
func NewTable(columns map[string]struct{}) *Table {
	sorted := make([]string, 0, len(columns))
	for col := range columns {
		sorted = append(sorted, col)
	}
	sort.Strings(sorted)
	return &Table{Columns: sorted}
}

// Append adds rows to the table in order.
func (t *Table) Append(rows ...Review) {
	t.Rows = append(t.Rows, rows...)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// ReviewSet holds one optional table per review category. A nil slot
// means that category has not been scraped or downloaded.
type ReviewSet struct {
	Airline *Table
	Seat    *Table
	Lounge  *Table
}

// Get returns the slot for a category.
func (s *ReviewSet) Get(category Category) *Table {
	switch category {
	case CategoryAirline:
		return s.Airline
	case CategorySeat:
		return s.Seat
	case CategoryLounge:
		return s.Lounge
	}
	return nil
}

// Set assigns the slot for a category.
func (s *ReviewSet) Set(category Category, table *Table) {
	switch category {
	case CategoryAirline:
		s.Airline = table
	case CategorySeat:
		s.Seat = table
	case CategoryLounge:
		s.Lounge = table
	}
}
