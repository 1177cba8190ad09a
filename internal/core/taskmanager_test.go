package core

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/tarefalabs/tarefa/pkg/models"
)

type fakeStore struct {
	tasks   map[string]models.Task
	saveErr error
	listErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: make(map[string]models.Task)}
}

func (s *fakeStore) GetByID(taskID, userID string) (*models.Task, error) {
	task, ok := s.tasks[userID+"/"+taskID]
	if !ok {
		return nil, fmt.Errorf("task %s for user %s: not found", taskID, userID)
	}
	return &task, nil
}

func (s *fakeStore) Save(task models.Task, userID string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tasks[userID+"/"+task.ID] = task
	return nil
}

func (s *fakeStore) ListByUser(userID string) ([]models.Task, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var tasks []models.Task
	for key, task := range s.tasks {
		if key == userID+"/"+task.ID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *fakeStore) Delete(taskID, userID string) error {
	key := userID + "/" + taskID
	if _, ok := s.tasks[key]; !ok {
		return fmt.Errorf("task %s for user %s: not found", taskID, userID)
	}
	delete(s.tasks, key)
	return nil
}

type fakeIDGen struct {
	next int
}

func (g *fakeIDGen) GenerateTaskID() (string, error) {
	g.next++
	return fmt.Sprintf("TAR-%d", g.next), nil
}

type countingNotifier struct {
	calls int
}

func (n *countingNotifier) Notify() { n.calls++ }

type capturingRecorder struct {
	types []string
}

func (r *capturingRecorder) Record(eventType, message string, data map[string]any) {
	r.types = append(r.types, eventType)
}

func newTestManager(store *fakeStore) (*taskManager, *countingNotifier, *capturingRecorder) {
	notifier := &countingNotifier{}
	recorder := &capturingRecorder{}
	mgr := NewTaskManager(store, &fakeIDGen{}, notifier, recorder).(*taskManager)
	mgr.now = func() time.Time { return time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC) }
	return mgr, notifier, recorder
}

func validDraft() TaskDraft {
	return TaskDraft{
		Title:    "Pagar contas",
		DueDate:  time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC),
		Priority: models.PriorityMedium,
		Tags:     []string{"casa", "urgente"},
	}
}

func TestCreateTask(t *testing.T) {
	store := newFakeStore()
	mgr, notifier, recorder := newTestManager(store)

	task, err := mgr.CreateTask("alice", validDraft())
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	if task.ID != "TAR-1" {
		t.Fatalf("expected generated ID TAR-1, got %s", task.ID)
	}
	if !reflect.DeepEqual(task.Tags, []string{"CASA", "URGENTE"}) {
		t.Fatalf("expected normalized tags, got %v", task.Tags)
	}
	if !task.NeedsSync {
		t.Fatal("new task must be marked dirty")
	}
	if task.UpdatedAt.IsZero() {
		t.Fatal("new task must have UpdatedAt stamped")
	}
	if notifier.calls != 1 {
		t.Fatalf("expected one sync notification, got %d", notifier.calls)
	}
	if len(recorder.types) != 1 || recorder.types[0] != "task.created" {
		t.Fatalf("expected a task.created event, got %v", recorder.types)
	}
	if _, err := store.GetByID("TAR-1", "alice"); err != nil {
		t.Fatalf("task not persisted: %v", err)
	}
}

func TestCreateTask_TrimsTitleAndDescription(t *testing.T) {
	store := newFakeStore()
	mgr, _, _ := newTestManager(store)

	draft := validDraft()
	draft.Title = "  Pagar contas  "
	draft.Description = "  luz e água  "

	task, err := mgr.CreateTask("alice", draft)
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	if task.Title != "Pagar contas" || task.Description != "luz e água" {
		t.Fatalf("expected trimmed fields, got %q / %q", task.Title, task.Description)
	}
}

func TestCreateTask_InvalidDraftDoesNotSaveOrNotify(t *testing.T) {
	store := newFakeStore()
	mgr, notifier, recorder := newTestManager(store)

	draft := validDraft()
	draft.Title = "   "

	if _, err := mgr.CreateTask("alice", draft); err == nil {
		t.Fatal("expected validation error")
	}
	if len(store.tasks) != 0 {
		t.Fatal("invalid draft must not be saved")
	}
	if notifier.calls != 0 {
		t.Fatal("invalid draft must not trigger sync")
	}
	if len(recorder.types) != 0 {
		t.Fatalf("invalid draft must not record events, got %v", recorder.types)
	}
}

func TestCreateTask_SaveFailureSuppressesSync(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	mgr, notifier, _ := newTestManager(store)

	_, err := mgr.CreateTask("alice", validDraft())
	if err == nil || !errors.Is(err, store.saveErr) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
	if notifier.calls != 0 {
		t.Fatal("sync must not fire after a failed save")
	}
}

func TestUpdateTask_PreservesIDAndCompletion(t *testing.T) {
	store := newFakeStore()
	mgr, notifier, _ := newTestManager(store)

	created, err := mgr.CreateTask("alice", validDraft())
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	if _, err := mgr.CompleteTask("alice", created.ID); err != nil {
		t.Fatalf("completing task: %v", err)
	}

	draft := validDraft()
	draft.Title = "Pagar contas de março"
	draft.Priority = models.PriorityHigh

	updated, err := mgr.UpdateTask("alice", created.ID, draft)
	if err != nil {
		t.Fatalf("updating task: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("ID must be immutable: %s vs %s", updated.ID, created.ID)
	}
	if !updated.IsCompleted {
		t.Fatal("update must not change the completion flag")
	}
	if updated.Title != "Pagar contas de março" || updated.Priority != models.PriorityHigh {
		t.Fatalf("editable fields not applied: %+v", updated)
	}
	if !updated.NeedsSync {
		t.Fatal("updated task must be marked dirty")
	}
	if notifier.calls != 3 {
		t.Fatalf("expected sync after create, complete and update, got %d", notifier.calls)
	}
}

func TestUpdateTask_UnknownTask(t *testing.T) {
	mgr, notifier, _ := newTestManager(newFakeStore())

	if _, err := mgr.UpdateTask("alice", "TAR-99", validDraft()); err == nil {
		t.Fatal("expected error for unknown task")
	}
	if notifier.calls != 0 {
		t.Fatal("failed update must not trigger sync")
	}
}

func TestCompleteAndReopen(t *testing.T) {
	store := newFakeStore()
	mgr, _, recorder := newTestManager(store)

	created, err := mgr.CreateTask("alice", validDraft())
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}

	done, err := mgr.CompleteTask("alice", created.ID)
	if err != nil {
		t.Fatalf("completing task: %v", err)
	}
	if !done.IsCompleted || !done.NeedsSync {
		t.Fatalf("expected completed and dirty, got %+v", done)
	}

	reopened, err := mgr.ReopenTask("alice", created.ID)
	if err != nil {
		t.Fatalf("reopening task: %v", err)
	}
	if reopened.IsCompleted {
		t.Fatal("expected reopened task to be incomplete")
	}

	want := []string{"task.created", "task.completed", "task.reopened"}
	if !reflect.DeepEqual(recorder.types, want) {
		t.Fatalf("expected events %v, got %v", want, recorder.types)
	}
}

func TestDeleteTask(t *testing.T) {
	store := newFakeStore()
	mgr, notifier, _ := newTestManager(store)

	created, err := mgr.CreateTask("alice", validDraft())
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}

	if err := mgr.DeleteTask("alice", created.ID); err != nil {
		t.Fatalf("deleting task: %v", err)
	}
	if _, err := store.GetByID(created.ID, "alice"); err == nil {
		t.Fatal("task still present after delete")
	}
	if notifier.calls != 2 {
		t.Fatalf("expected sync after create and delete, got %d", notifier.calls)
	}

	if err := mgr.DeleteTask("alice", "TAR-99"); err == nil {
		t.Fatal("expected error deleting unknown task")
	}
}

func TestListTasks_AppliesFilter(t *testing.T) {
	store := newFakeStore()
	mgr, _, _ := newTestManager(store)

	urgent := validDraft()
	urgent.Tags = []string{"urgente"}
	other := validDraft()
	other.Tags = []string{"casa"}

	if _, err := mgr.CreateTask("alice", urgent); err != nil {
		t.Fatalf("creating task: %v", err)
	}
	if _, err := mgr.CreateTask("alice", other); err != nil {
		t.Fatalf("creating task: %v", err)
	}

	filter := models.EmptyFilter()
	filter.Tags = []string{"URGENTE"}

	got, err := mgr.ListTasks("alice", filter)
	if err != nil {
		t.Fatalf("listing tasks: %v", err)
	}
	if len(got) != 1 || got[0].ID != "TAR-1" {
		t.Fatalf("expected only the urgent task, got %v", got)
	}
}

func TestAvailableTags_SortedUnion(t *testing.T) {
	store := newFakeStore()
	mgr, _, _ := newTestManager(store)

	first := validDraft()
	first.Tags = []string{"trabalho", "casa"}
	second := validDraft()
	second.Tags = []string{"casa", "urgente"}

	if _, err := mgr.CreateTask("alice", first); err != nil {
		t.Fatalf("creating task: %v", err)
	}
	if _, err := mgr.CreateTask("alice", second); err != nil {
		t.Fatalf("creating task: %v", err)
	}

	tags, err := mgr.AvailableTags("alice")
	if err != nil {
		t.Fatalf("collecting tags: %v", err)
	}
	want := []string{"CASA", "TRABALHO", "URGENTE"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
}

func TestTaskManager_NilRecorder(t *testing.T) {
	store := newFakeStore()
	mgr := NewTaskManager(store, &fakeIDGen{}, &countingNotifier{}, nil).(*taskManager)
	mgr.now = func() time.Time { return time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC) }

	if _, err := mgr.CreateTask("alice", validDraft()); err != nil {
		t.Fatalf("creating task with nil recorder: %v", err)
	}
}
