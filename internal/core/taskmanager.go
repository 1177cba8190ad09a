package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tarefalabs/tarefa/pkg/models"
)

// TaskStore is the subset of storage.TaskStore that TaskManager needs.
// Defining it here keeps core independent of the storage package.
type TaskStore interface {
	GetByID(taskID, userID string) (*models.Task, error)
	Save(task models.Task, userID string) error
	ListByUser(userID string) ([]models.Task, error)
	Delete(taskID, userID string) error
}

// EventRecorder is the subset of the observability layer the manager
// needs. A nil recorder disables event recording.
type EventRecorder interface {
	Record(eventType, message string, data map[string]any)
}

// TaskDraft holds the caller-editable fields of a task. Tags may arrive
// raw; the manager normalizes them before validation.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    models.Priority
	Tags        []string
}

// TaskManager defines the interface for the task edit flow: it validates
// drafts, stamps UpdatedAt and the NeedsSync dirty flag, persists through
// the store, and fires the sync trigger after a successful dirty save.
type TaskManager interface {
	CreateTask(userID string, draft TaskDraft) (*models.Task, error)
	UpdateTask(userID, taskID string, draft TaskDraft) (*models.Task, error)
	CompleteTask(userID, taskID string) (*models.Task, error)
	ReopenTask(userID, taskID string) (*models.Task, error)
	DeleteTask(userID, taskID string) error
	GetTask(userID, taskID string) (*models.Task, error)
	ListTasks(userID string, filter models.FilterOptions) ([]models.Task, error)
	AvailableTags(userID string) ([]string, error)
}

type taskManager struct {
	store  TaskStore
	ids    TaskIDGenerator
	sync   SyncNotifier
	events EventRecorder
	now    func() time.Time
}

// NewTaskManager creates a TaskManager with all dependencies injected.
// events may be nil; sync must not be (use NoopSyncNotifier).
func NewTaskManager(store TaskStore, ids TaskIDGenerator, sync SyncNotifier, events EventRecorder) TaskManager {
	return &taskManager{
		store:  store,
		ids:    ids,
		sync:   sync,
		events: events,
		now:    time.Now,
	}
}

// CreateTask validates the draft, assigns an ID, and persists the new task
// marked dirty. The sync trigger fires only after the save succeeded.
func (m *taskManager) CreateTask(userID string, draft TaskDraft) (*models.Task, error) {
	task, err := m.buildTask(draft)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	task.ID, err = m.ids.GenerateTaskID()
	if err != nil {
		return nil, fmt.Errorf("creating task: generating ID: %w", err)
	}

	if err := m.store.Save(*task, userID); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	m.record("task.created", fmt.Sprintf("task %s created", task.ID), map[string]any{
		"task_id": task.ID,
		"user_id": userID,
	})
	m.sync.Notify()
	return task, nil
}

// UpdateTask replaces the editable fields of an existing task. The ID is
// immutable and the completion flag is untouched; UpdatedAt and NeedsSync
// are stamped here, before the save, so a failed save leaves the stored
// record exactly as it was.
func (m *taskManager) UpdateTask(userID, taskID string, draft TaskDraft) (*models.Task, error) {
	existing, err := m.store.GetByID(taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("updating task %s: %w", taskID, err)
	}

	updated, err := m.buildTask(draft)
	if err != nil {
		return nil, fmt.Errorf("updating task %s: %w", taskID, err)
	}
	updated.ID = existing.ID
	updated.IsCompleted = existing.IsCompleted

	if err := m.store.Save(*updated, userID); err != nil {
		return nil, fmt.Errorf("updating task %s: %w", taskID, err)
	}

	m.record("task.updated", fmt.Sprintf("task %s updated", taskID), map[string]any{
		"task_id": taskID,
		"user_id": userID,
	})
	m.sync.Notify()
	return updated, nil
}

// CompleteTask marks the task completed and dirty.
func (m *taskManager) CompleteTask(userID, taskID string) (*models.Task, error) {
	return m.setCompleted(userID, taskID, true, "task.completed")
}

// ReopenTask clears the completion flag. The due date is not revalidated:
// reopening an overdue task is allowed, editing it then requires a new date.
func (m *taskManager) ReopenTask(userID, taskID string) (*models.Task, error) {
	return m.setCompleted(userID, taskID, false, "task.reopened")
}

func (m *taskManager) setCompleted(userID, taskID string, done bool, eventType string) (*models.Task, error) {
	task, err := m.store.GetByID(taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", eventType, taskID, err)
	}

	task.IsCompleted = done
	task.UpdatedAt = m.now()
	task.NeedsSync = true

	if err := m.store.Save(*task, userID); err != nil {
		return nil, fmt.Errorf("%s %s: %w", eventType, taskID, err)
	}

	m.record(eventType, fmt.Sprintf("task %s", taskID), map[string]any{
		"task_id": taskID,
		"user_id": userID,
	})
	m.sync.Notify()
	return task, nil
}

// DeleteTask removes the record from the user's partition.
func (m *taskManager) DeleteTask(userID, taskID string) error {
	if err := m.store.Delete(taskID, userID); err != nil {
		return fmt.Errorf("deleting task %s: %w", taskID, err)
	}
	m.record("task.deleted", fmt.Sprintf("task %s deleted", taskID), map[string]any{
		"task_id": taskID,
		"user_id": userID,
	})
	m.sync.Notify()
	return nil
}

// GetTask returns a single task scoped to the user.
func (m *taskManager) GetTask(userID, taskID string) (*models.Task, error) {
	task, err := m.store.GetByID(taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", taskID, err)
	}
	return task, nil
}

// ListTasks reads the user's tasks and runs them through the filter
// engine. Ordering without an active sort is whatever the store returned.
func (m *taskManager) ListTasks(userID string, filter models.FilterOptions) ([]models.Task, error) {
	tasks, err := m.store.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return ApplyFilter(tasks, filter), nil
}

// AvailableTags returns the sorted union of tags across the user's tasks,
// the tag universe the filter picker offers.
func (m *taskManager) AvailableTags(userID string) ([]string, error) {
	tasks, err := m.store.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("collecting tags: %w", err)
	}

	seen := make(map[string]bool)
	var tags []string
	for _, task := range tasks {
		for _, tag := range task.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// buildTask normalizes and validates a draft into a dirty, timestamped task.
func (m *taskManager) buildTask(draft TaskDraft) (*models.Task, error) {
	tags, err := NormalizeTags(draft.Tags)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Tags:        tags,
		UpdatedAt:   m.now(),
		NeedsSync:   true,
	}
	if err := ValidateTask(task, m.now()); err != nil {
		return nil, err
	}
	return &task, nil
}

func (m *taskManager) record(eventType, message string, data map[string]any) {
	if m.events == nil {
		return
	}
	m.events.Record(eventType, message, data)
}
