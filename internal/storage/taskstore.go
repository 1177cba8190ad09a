// Package storage provides the durable, per-user stores backing tarefa:
// the task store and the last-applied filter store. All files live under
// a base directory, partitioned by user.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tarefalabs/tarefa/pkg/models"
)

// ErrTaskNotFound is returned when a task ID does not exist in the given
// user's partition. A colliding ID owned by another user still yields
// this error: lookups never cross partitions.
var ErrTaskNotFound = errors.New("task not found")

// TaskFile is the on-disk document holding one user's tasks.
type TaskFile struct {
	Version string                 `yaml:"version"`
	Tasks   map[string]models.Task `yaml:"tasks"`
}

// TaskStore defines the interface for per-user task persistence. The
// store performs durable writes only; it never computes UpdatedAt or
// NeedsSync and never triggers synchronization itself.
type TaskStore interface {
	GetByID(taskID, userID string) (*models.Task, error)
	Save(task models.Task, userID string) error
	ListByUser(userID string) ([]models.Task, error)
	ListDirty(userID string) ([]models.Task, error)
	MarkSynced(taskID, userID string) error
	Delete(taskID, userID string) error
}

// fileTaskStore implements TaskStore with one YAML file per user under
// {basePath}/users/{userID}/tasks.yaml. Every operation reads the file,
// applies the change, and writes it back; the storage key is the
// (userID, taskID) composite the directory layout encodes.
type fileTaskStore struct {
	basePath string
}

// NewTaskStore creates a TaskStore rooted at basePath.
func NewTaskStore(basePath string) TaskStore {
	return &fileTaskStore{basePath: basePath}
}

func (s *fileTaskStore) filePath(userID string) string {
	return filepath.Join(s.basePath, "users", userID, "tasks.yaml")
}

// validUserID rejects user IDs that are empty or would escape the users/
// directory when used as a path element.
func validUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user ID must not be empty")
	}
	if strings.ContainsAny(userID, `/\`) || userID == "." || userID == ".." {
		return fmt.Errorf("invalid user ID %q", userID)
	}
	return nil
}

func (s *fileTaskStore) load(userID string) (*TaskFile, error) {
	data, err := os.ReadFile(s.filePath(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return &TaskFile{Version: "1.0", Tasks: make(map[string]models.Task)}, nil
		}
		return nil, fmt.Errorf("reading task file: %w", err)
	}

	var tf TaskFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing task file: %w", err)
	}
	if tf.Tasks == nil {
		tf.Tasks = make(map[string]models.Task)
	}
	return &tf, nil
}

func (s *fileTaskStore) write(userID string, tf *TaskFile) error {
	dir := filepath.Dir(s.filePath(userID))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating user directory: %w", err)
	}
	data, err := yaml.Marshal(tf)
	if err != nil {
		return fmt.Errorf("marshalling task file: %w", err)
	}
	if err := os.WriteFile(s.filePath(userID), data, 0o600); err != nil {
		return fmt.Errorf("writing task file: %w", err)
	}
	return nil
}

// GetByID looks a task up within the given user's partition.
func (s *fileTaskStore) GetByID(taskID, userID string) (*models.Task, error) {
	if err := validUserID(userID); err != nil {
		return nil, fmt.Errorf("getting task %s: %w", taskID, err)
	}
	tf, err := s.load(userID)
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", taskID, err)
	}
	task, exists := tf.Tasks[taskID]
	if !exists {
		return nil, fmt.Errorf("getting task %s for user %s: %w", taskID, userID, ErrTaskNotFound)
	}
	return &task, nil
}

// Save upserts the task under the user's partition, persisting exactly
// the UpdatedAt and NeedsSync values the caller set. On any failure the
// previous file content is left untouched.
func (s *fileTaskStore) Save(task models.Task, userID string) error {
	if err := validUserID(userID); err != nil {
		return fmt.Errorf("saving task: %w", err)
	}
	if task.ID == "" {
		return fmt.Errorf("saving task: ID must not be empty")
	}

	tf, err := s.load(userID)
	if err != nil {
		return fmt.Errorf("saving task %s: %w", task.ID, err)
	}
	tf.Tasks[task.ID] = task
	if err := s.write(userID, tf); err != nil {
		return fmt.Errorf("saving task %s: %w", task.ID, err)
	}
	return nil
}

// ListByUser returns all of the user's tasks sorted by ID. The filter
// engine owns any user-facing ordering.
func (s *fileTaskStore) ListByUser(userID string) ([]models.Task, error) {
	if err := validUserID(userID); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	tf, err := s.load(userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks for user %s: %w", userID, err)
	}

	tasks := make([]models.Task, 0, len(tf.Tasks))
	for _, task := range tf.Tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// ListDirty returns the user's tasks still carrying the NeedsSync flag,
// the work queue for the external synchronizer.
func (s *fileTaskStore) ListDirty(userID string) ([]models.Task, error) {
	tasks, err := s.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	var dirty []models.Task
	for _, task := range tasks {
		if task.NeedsSync {
			dirty = append(dirty, task)
		}
	}
	return dirty, nil
}

// MarkSynced clears the NeedsSync flag on a task. This is the hook the
// synchronizer calls once a record reached the remote system of record.
func (s *fileTaskStore) MarkSynced(taskID, userID string) error {
	if err := validUserID(userID); err != nil {
		return fmt.Errorf("marking task %s synced: %w", taskID, err)
	}
	tf, err := s.load(userID)
	if err != nil {
		return fmt.Errorf("marking task %s synced: %w", taskID, err)
	}
	task, exists := tf.Tasks[taskID]
	if !exists {
		return fmt.Errorf("marking task %s synced for user %s: %w", taskID, userID, ErrTaskNotFound)
	}

	task.NeedsSync = false
	tf.Tasks[taskID] = task
	if err := s.write(userID, tf); err != nil {
		return fmt.Errorf("marking task %s synced: %w", taskID, err)
	}
	return nil
}

// Delete removes the task from the user's partition.
func (s *fileTaskStore) Delete(taskID, userID string) error {
	if err := validUserID(userID); err != nil {
		return fmt.Errorf("deleting task %s: %w", taskID, err)
	}
	tf, err := s.load(userID)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", taskID, err)
	}
	if _, exists := tf.Tasks[taskID]; !exists {
		return fmt.Errorf("deleting task %s for user %s: %w", taskID, userID, ErrTaskNotFound)
	}

	delete(tf.Tasks, taskID)
	if err := s.write(userID, tf); err != nil {
		return fmt.Errorf("deleting task %s: %w", taskID, err)
	}
	return nil
}
