package cli

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseDueDate("2024-02-01T15:30:00Z")
		if err != nil {
			t.Fatalf("parsing due date: %v", err)
		}
		want := time.Date(2024, 2, 1, 15, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("bare date lands at end of day", func(t *testing.T) {
		got, err := parseDueDate("2024-02-01")
		if err != nil {
			t.Fatalf("parsing due date: %v", err)
		}
		if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
			t.Fatalf("expected end-of-day, got %v", got)
		}
		if got.Year() != 2024 || got.Month() != 2 || got.Day() != 1 {
			t.Fatalf("unexpected date: %v", got)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := parseDueDate("01/02/2024"); err == nil {
			t.Fatal("expected error for malformed due date")
		}
	})
}
