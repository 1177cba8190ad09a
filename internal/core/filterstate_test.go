package core

import (
	"reflect"
	"testing"
	"time"

	"github.com/tarefalabs/tarefa/pkg/models"
)

func TestNewFilterState_Defaults(t *testing.T) {
	s := NewFilterState([]string{"URGENTE", "CASA"}, nil)

	if s.OrderBy() != models.SortNone {
		t.Fatalf("expected no ordering, got %q", s.OrderBy())
	}
	for _, tag := range []string{"URGENTE", "CASA"} {
		if s.TagSelected(tag) {
			t.Fatalf("expected tag %s deselected", tag)
		}
	}
	if s.DateFrom() != nil || s.DateTo() != nil {
		t.Fatal("expected no date bounds")
	}
}

func TestNewFilterState_FromCurrent(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 10, 23, 59, 59, 999_000_000, time.UTC)
	current := &models.FilterOptions{
		OrderBy:  models.SortHighToLow,
		Tags:     []string{"CASA", "DESCONHECIDA"},
		DateFrom: &from,
		DateTo:   &to,
	}

	s := NewFilterState([]string{"URGENTE", "CASA"}, current)

	if s.OrderBy() != models.SortHighToLow {
		t.Fatalf("expected high-to-low, got %q", s.OrderBy())
	}
	if !s.TagSelected("CASA") {
		t.Fatal("expected CASA selected")
	}
	if s.TagSelected("URGENTE") {
		t.Fatal("expected URGENTE deselected")
	}
	// A tag outside the universe is dropped, not added.
	if s.TagSelected("DESCONHECIDA") {
		t.Fatal("expected unknown tag to stay deselected")
	}
	if s.DateFrom() == nil || !s.DateFrom().Equal(from) {
		t.Fatalf("expected dateFrom %v, got %v", from, s.DateFrom())
	}
	if s.DateTo() == nil || !s.DateTo().Equal(to) {
		t.Fatalf("expected dateTo %v, got %v", to, s.DateTo())
	}
}

func TestToggleTag(t *testing.T) {
	s := NewFilterState([]string{"URGENTE", "CASA"}, nil)

	s.ToggleTag("URGENTE")
	if !s.TagSelected("URGENTE") {
		t.Fatal("expected URGENTE selected after toggle")
	}
	if s.TagSelected("CASA") {
		t.Fatal("expected CASA untouched")
	}

	s.ToggleTag("URGENTE")
	if s.TagSelected("URGENTE") {
		t.Fatal("expected URGENTE deselected after second toggle")
	}
}

func TestToggleTag_UnknownIsNoop(t *testing.T) {
	s := NewFilterState([]string{"URGENTE"}, nil)

	s.ToggleTag("NADA")

	opts := s.ToFilterOptions()
	if len(opts.Tags) != 0 {
		t.Fatalf("expected no selected tags, got %v", opts.Tags)
	}
}

func TestSetPriorityOrder_ToggleOff(t *testing.T) {
	s := NewFilterState(nil, nil)

	s.SetPriorityOrder(models.SortHighToLow)
	if s.OrderBy() != models.SortHighToLow {
		t.Fatalf("expected high-to-low, got %q", s.OrderBy())
	}

	// Selecting the same option twice deselects it.
	s.SetPriorityOrder(models.SortHighToLow)
	if s.OrderBy() != models.SortNone {
		t.Fatalf("expected no ordering after re-select, got %q", s.OrderBy())
	}
}

func TestSetPriorityOrder_Switch(t *testing.T) {
	s := NewFilterState(nil, nil)

	s.SetPriorityOrder(models.SortHighToLow)
	s.SetPriorityOrder(models.SortLowToHigh)
	if s.OrderBy() != models.SortLowToHigh {
		t.Fatalf("expected low-to-high, got %q", s.OrderBy())
	}
}

func TestSetDates_Normalize(t *testing.T) {
	s := NewFilterState(nil, nil)
	day := time.Date(2024, 2, 1, 14, 30, 45, 0, time.UTC)

	s.SetDateFrom(day)
	s.SetDateTo(day)

	wantFrom := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, 2, 1, 23, 59, 59, 999_000_000, time.UTC)
	if !s.DateFrom().Equal(wantFrom) {
		t.Fatalf("expected dateFrom normalized to %v, got %v", wantFrom, s.DateFrom())
	}
	if !s.DateTo().Equal(wantTo) {
		t.Fatalf("expected dateTo normalized to %v, got %v", wantTo, s.DateTo())
	}
}

func TestClearDates(t *testing.T) {
	s := NewFilterState(nil, nil)
	s.SetDateFrom(time.Now())
	s.SetDateTo(time.Now())

	s.ClearDateFrom()
	s.ClearDateTo()
	if s.DateFrom() != nil || s.DateTo() != nil {
		t.Fatal("expected both bounds cleared")
	}
}

func TestClear(t *testing.T) {
	s := NewFilterState([]string{"URGENTE", "CASA"}, nil)
	s.SetPriorityOrder(models.SortLowToHigh)
	s.ToggleTag("URGENTE")
	s.SetDateFrom(time.Now())
	s.SetDateTo(time.Now())

	s.Clear()

	got := s.ToFilterOptions()
	want := models.EmptyFilter()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected empty filter after clear, got %+v", got)
	}
}

func TestToFilterOptions_TagOrderDeterministic(t *testing.T) {
	s := NewFilterState([]string{"C", "A", "B"}, nil)
	s.ToggleTag("B")
	s.ToggleTag("C")
	s.ToggleTag("A")

	opts := s.ToFilterOptions()
	// Selected tags come out in universe order, not toggle order.
	want := []string{"C", "A", "B"}
	if !reflect.DeepEqual(opts.Tags, want) {
		t.Fatalf("expected tags %v, got %v", want, opts.Tags)
	}
}

func TestRoundTrip_InitializeToFilterOptions(t *testing.T) {
	from := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 20, 23, 59, 59, 999_000_000, time.UTC)
	original := models.FilterOptions{
		OrderBy:  models.SortLowToHigh,
		Tags:     []string{"CASA", "TRABALHO"},
		DateFrom: &from,
		DateTo:   &to,
	}

	s := NewFilterState([]string{"CASA", "TRABALHO", "URGENTE"}, &original)
	got := s.ToFilterOptions()

	if got.OrderBy != original.OrderBy {
		t.Fatalf("orderBy mismatch: %q vs %q", got.OrderBy, original.OrderBy)
	}
	if !reflect.DeepEqual(got.Tags, original.Tags) {
		t.Fatalf("tags mismatch: %v vs %v", got.Tags, original.Tags)
	}
	if !got.DateFrom.Equal(*original.DateFrom) || !got.DateTo.Equal(*original.DateTo) {
		t.Fatalf("dates mismatch: %v/%v vs %v/%v", got.DateFrom, got.DateTo, original.DateFrom, original.DateTo)
	}
}
