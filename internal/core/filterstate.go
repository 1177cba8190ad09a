package core

import (
	"time"

	"github.com/tarefalabs/tarefa/pkg/models"
)

// FilterState is the transient, in-progress filter selection backing the
// filter UI. It exists only while the filter picker is open; it is
// reconstructed from the last-applied FilterOptions each time the picker
// opens and discarded on apply or cancel.
//
// Tag selection is kept as a flag per known tag so the picker can render
// every available tag with its checkbox state. The tag universe and its
// order are fixed at construction.
type FilterState struct {
	orderBy  models.SortOrder
	tagOrder []string
	selected map[string]bool
	dateFrom *time.Time
	dateTo   *time.Time
}

// NewFilterState builds the picker state from the caller-supplied tag
// universe and the last-applied filter. Tags present in current are
// pre-selected; a nil current yields the default state (nothing selected,
// no ordering, no date bounds).
func NewFilterState(availableTags []string, current *models.FilterOptions) *FilterState {
	s := &FilterState{
		tagOrder: append([]string(nil), availableTags...),
		selected: make(map[string]bool, len(availableTags)),
	}
	for _, tag := range availableTags {
		s.selected[tag] = false
	}
	if current == nil {
		return s
	}

	s.orderBy = current.OrderBy
	for _, tag := range current.Tags {
		// Tags outside the universe are dropped, matching the picker's
		// behavior of only ever rendering known tags.
		if _, known := s.selected[tag]; known {
			s.selected[tag] = true
		}
	}
	if current.DateFrom != nil {
		from := *current.DateFrom
		s.dateFrom = &from
	}
	if current.DateTo != nil {
		to := *current.DateTo
		s.dateTo = &to
	}
	return s
}

// ToggleTag flips the selection flag for exactly one tag. Toggling a tag
// that is not part of the universe is a no-op, never an error.
func (s *FilterState) ToggleTag(tag string) {
	if _, known := s.selected[tag]; !known {
		return
	}
	s.selected[tag] = !s.selected[tag]
}

// SetPriorityOrder activates the given ordering, or clears it when the
// same ordering is selected twice in a row. At most one ordering is
// active at any time.
func (s *FilterState) SetPriorityOrder(order models.SortOrder) {
	if s.orderBy == order {
		s.orderBy = models.SortNone
		return
	}
	s.orderBy = order
}

// SetDateFrom stores the inclusive lower bound, normalized to start-of-day.
func (s *FilterState) SetDateFrom(d time.Time) {
	from := StartOfDay(d)
	s.dateFrom = &from
}

// SetDateTo stores the inclusive upper bound, normalized to end-of-day.
func (s *FilterState) SetDateTo(d time.Time) {
	to := EndOfDay(d)
	s.dateTo = &to
}

// ClearDateFrom removes the lower bound.
func (s *FilterState) ClearDateFrom() {
	s.dateFrom = nil
}

// ClearDateTo removes the upper bound.
func (s *FilterState) ClearDateTo() {
	s.dateTo = nil
}

// Clear resets the whole selection: no ordering, all tags deselected,
// both date bounds absent. Backs the "clear filters" action.
func (s *FilterState) Clear() {
	s.orderBy = models.SortNone
	for tag := range s.selected {
		s.selected[tag] = false
	}
	s.dateFrom = nil
	s.dateTo = nil
}

// ToFilterOptions collapses the state into the normalized descriptor.
// Selected tags appear in the universe order, so the output is
// deterministic for a given state.
func (s *FilterState) ToFilterOptions() models.FilterOptions {
	opts := models.EmptyFilter()
	opts.OrderBy = s.orderBy
	for _, tag := range s.tagOrder {
		if s.selected[tag] {
			opts.Tags = append(opts.Tags, tag)
		}
	}
	if s.dateFrom != nil {
		from := *s.dateFrom
		opts.DateFrom = &from
	}
	if s.dateTo != nil {
		to := *s.dateTo
		opts.DateTo = &to
	}
	return opts
}

// OrderBy returns the active ordering.
func (s *FilterState) OrderBy() models.SortOrder { return s.orderBy }

// AvailableTags returns the tag universe in display order.
func (s *FilterState) AvailableTags() []string {
	return append([]string(nil), s.tagOrder...)
}

// TagSelected reports the selection flag for a tag.
func (s *FilterState) TagSelected(tag string) bool { return s.selected[tag] }

// DateFrom returns the lower bound, or nil when absent.
func (s *FilterState) DateFrom() *time.Time { return s.dateFrom }

// DateTo returns the upper bound, or nil when absent.
func (s *FilterState) DateTo() *time.Time { return s.dateTo }
