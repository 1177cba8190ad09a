// Package core contains the business logic for tarefa: the filter state
// model, the filter application engine, task validation, task lifecycle
// management, and the sync trigger.
package core

import "time"

// StartOfDay returns t truncated to 00:00:00.000 in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns t pushed to 23:59:59.999 in t's location. The bound is
// inclusive, so a task due anywhere within the day compares <= EndOfDay.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999_000_000, t.Location())
}
