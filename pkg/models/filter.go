package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SortOrder selects the priority ordering applied to a filtered task list.
// At most one ordering is active; the zero value means "no ordering".
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortHighToLow SortOrder = "high-to-low"
	SortLowToHigh SortOrder = "low-to-high"
)

// Valid reports whether o is a recognized ordering (including none).
func (o SortOrder) Valid() bool {
	return o == SortNone || o == SortHighToLow || o == SortLowToHigh
}

// MarshalJSON serializes SortNone as JSON null so the wire form stays
// { "orderBy": "high-to-low" | "low-to-high" | null }.
func (o SortOrder) MarshalJSON() ([]byte, error) {
	if o == SortNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(o))
}

// UnmarshalJSON accepts null or one of the two ordering strings.
func (o *SortOrder) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = SortNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing sort order: %w", err)
	}
	order := SortOrder(s)
	if !order.Valid() {
		return fmt.Errorf("unknown sort order %q", s)
	}
	*o = order
	return nil
}

// FilterOptions is the normalized, serializable descriptor of a filter
// selection, passed between the filter UI and the filter engine.
//
// DateFrom is an inclusive lower bound normalized to start-of-day and
// DateTo an inclusive upper bound normalized to end-of-day; nil means the
// bound is absent. An empty Tags slice means "no tag filter".
type FilterOptions struct {
	OrderBy  SortOrder  `json:"orderBy" yaml:"order_by"`
	Tags     []string   `json:"tags" yaml:"tags"`
	DateFrom *time.Time `json:"dateFrom" yaml:"date_from,omitempty"`
	DateTo   *time.Time `json:"dateTo" yaml:"date_to,omitempty"`
}

// EmptyFilter returns a descriptor with no criteria active.
func EmptyFilter() FilterOptions {
	return FilterOptions{Tags: []string{}}
}

// IsActive reports whether any filter criterion is set.
func (f FilterOptions) IsActive() bool {
	return f.OrderBy != SortNone || len(f.Tags) > 0 || f.DateFrom != nil || f.DateTo != nil
}

// ActiveCount returns the number of active criteria, counting each
// selected tag individually. Used for the "N filters" badge.
func (f FilterOptions) ActiveCount() int {
	count := len(f.Tags)
	if f.OrderBy != SortNone {
		count++
	}
	if f.DateFrom != nil {
		count++
	}
	if f.DateTo != nil {
		count++
	}
	return count
}
