package core

import (
	"sort"
	"time"

	"github.com/tarefalabs/tarefa/pkg/models"
)

// ApplyFilter reduces and orders a task list according to the descriptor.
// Stages run in a fixed order, each narrowing or reordering the previous
// stage's output; a stage with no active criterion is a no-op:
//
//  1. Tag filter: keep tasks sharing at least one tag with filter.Tags
//     (any intersection, not "contains all"). Empty filter.Tags keeps all.
//  2. Date range: keep tasks whose due date lies within the inclusive
//     [DateFrom, DateTo] bounds, each bound applied independently when
//     present. An inverted range therefore yields an empty result, not
//     an error.
//  3. Priority ordering: stable sort by priority rank, ascending for
//     low-to-high and descending for high-to-low. Ties keep the relative
//     order the store returned.
//
// The input slice and its entries are never mutated.
func ApplyFilter(tasks []models.Task, filter models.FilterOptions) []models.Task {
	result := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if !matchesTags(task, filter.Tags) {
			continue
		}
		if !withinDateRange(task, filter.DateFrom, filter.DateTo) {
			continue
		}
		result = append(result, task)
	}

	switch filter.OrderBy {
	case models.SortLowToHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority.Rank() < result[j].Priority.Rank()
		})
	case models.SortHighToLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority.Rank() > result[j].Priority.Rank()
		})
	}

	return result
}

func matchesTags(task models.Task, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	return task.HasAnyTag(tags)
}

func withinDateRange(task models.Task, from, to *time.Time) bool {
	if from != nil && task.DueDate.Before(*from) {
		return false
	}
	if to != nil && task.DueDate.After(*to) {
		return false
	}
	return true
}
