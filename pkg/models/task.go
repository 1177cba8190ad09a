package models

import "time"

// Priority represents the urgency level of a task. The values are the
// uppercase Portuguese labels the app has always displayed and stored.
type Priority string

const (
	PriorityLow    Priority = "BAIXA"
	PriorityMedium Priority = "MÉDIA"
	PriorityHigh   Priority = "ALTA"
)

// Rank returns the position of the priority in the total order
// BAIXA < MÉDIA < ALTA. Unknown priorities rank below BAIXA so that
// malformed records sink to the bottom of an ascending sort.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// Valid reports whether p is one of the three known priority levels.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a single to-do item owned by exactly one user account.
// Tasks are partitioned by user in storage and never shared.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate     time.Time `json:"dueDate" yaml:"due_date"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Tags        []string  `json:"tags" yaml:"tags"`
	IsCompleted bool      `json:"isCompleted" yaml:"is_completed"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updated_at"`

	// NeedsSync marks a locally mutated record that has not yet been
	// propagated to the remote system of record. It is set by the edit
	// flow before saving and cleared only by the synchronizer.
	NeedsSync bool `json:"needsSync" yaml:"needs_sync"`
}

// HasAnyTag reports whether the task carries at least one of the given tags.
func (t Task) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range t.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}
