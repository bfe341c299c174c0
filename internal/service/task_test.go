package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/model"
)

// taskFixture wires a store with one user, one group and the services
// under test.
type taskFixture struct {
	store  *memStore
	groups *GroupService
	tasks  *TaskService
	rec    *metrics.InMemoryRecorder
	owner  string
	group  *model.Group
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	store := newMemStore()
	rec := metrics.NewInMemory()
	f := &taskFixture{
		store:  store,
		groups: NewGroupService(store, rec),
		tasks:  NewTaskService(store, rec),
		rec:    rec,
		owner:  "owner-1",
	}

	store.users["owner-1"] = &model.User{ID: "owner-1", Username: "alice", Email: "alice@example.com"}

	group, err := f.groups.CreateGroup(context.Background(), f.owner, "Work")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	f.group = group
	return f
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, CreateTaskInput{
		OwnerID:     f.owner,
		Title:       "Write report",
		Description: "quarterly numbers",
		GroupID:     f.group.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if task.ID == "" {
		t.Error("task should get an ID")
	}
	if task.IsCompleted {
		t.Error("new tasks start incomplete")
	}
	if task.UserID != f.owner || task.GroupID != f.group.ID {
		t.Errorf("unexpected ownership: %+v", task)
	}
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)

	_, err := f.tasks.CreateTask(context.Background(), CreateTaskInput{
		OwnerID: f.owner, Title: "  ", GroupID: f.group.ID,
	})
	if !errors.Is(err, ErrTaskTitleEmpty) {
		t.Errorf("got %v, want ErrTaskTitleEmpty", err)
	}
}

func TestCreateTask_ForeignGroup(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	other, err := f.groups.CreateGroup(ctx, "owner-2", "Private")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	// A group owned by someone else is indistinguishable from a
	// missing one.
	_, err = f.tasks.CreateTask(ctx, CreateTaskInput{
		OwnerID: f.owner, Title: "Sneaky", GroupID: other.ID,
	})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("got %v, want ErrGroupNotFound", err)
	}

	_, err = f.tasks.CreateTask(ctx, CreateTaskInput{
		OwnerID: f.owner, Title: "Lost", GroupID: "no-such-group",
	})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("got %v, want ErrGroupNotFound", err)
	}
}

func TestGetTask_Enrichment(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, CreateTaskInput{
		OwnerID: f.owner, Title: "Write report", GroupID: f.group.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	detail, err := f.tasks.GetTask(ctx, f.owner, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if detail.GroupName != "Work" {
		t.Errorf("GroupName = %q, want Work", detail.GroupName)
	}
	if detail.Username != "alice" {
		t.Errorf("Username = %q, want alice", detail.Username)
	}
}

func TestGetTask_CrossOwnerIsNotFound(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, CreateTaskInput{
		OwnerID: f.owner, Title: "Write report", GroupID: f.group.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := f.tasks.GetTask(ctx, "owner-2", task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}

func TestListTasks_Filters(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	second, err := f.groups.CreateGroup(ctx, f.owner, "Home")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	mk := func(title, groupID string, done bool) {
		task, err := f.tasks.CreateTask(ctx, CreateTaskInput{OwnerID: f.owner, Title: title, GroupID: groupID})
		if err != nil {
			t.Fatalf("CreateTask(%s) failed: %v", title, err)
		}
		if done {
			completed := true
			if _, err := f.tasks.UpdateTask(ctx, f.owner, task.ID, model.TaskPatch{IsCompleted: &completed}); err != nil {
				t.Fatalf("UpdateTask(%s) failed: %v", title, err)
			}
		}
	}
	mk("work-open", f.group.ID, false)
	mk("work-done", f.group.ID, true)
	mk("home-open", second.ID, false)

	all, err := f.tasks.ListTasks(ctx, f.owner, model.TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered list = %d tasks, want 3", len(all))
	}

	completed := true
	done, err := f.tasks.ListTasks(ctx, f.owner, model.TaskFilter{Completed: &completed})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(done) != 1 || done[0].Title != "work-done" {
		t.Errorf("completed filter should match only work-done, got %d", len(done))
	}

	// Filters combine with AND.
	open := false
	byBoth, err := f.tasks.ListTasks(ctx, f.owner, model.TaskFilter{GroupID: &f.group.ID, Completed: &open})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(byBoth) != 1 || byBoth[0].Title != "work-open" {
		t.Errorf("combined filter should match only work-open, got %d", len(byBoth))
	}

	// A filter that belongs to another owner's world yields an empty
	// list, not an error.
	none, err := f.tasks.ListTasks(ctx, "owner-2", model.TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("owner-2 should see no tasks, got %d", len(none))
	}
}

func TestUpdateTask_Partial(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, CreateTaskInput{
		OwnerID: f.owner, Title: "Write report", Description: "numbers", GroupID: f.group.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	completed := true
	updated, err := f.tasks.UpdateTask(ctx, f.owner, task.ID, model.TaskPatch{IsCompleted: &completed})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	if !updated.IsCompleted {
		t.Error("IsCompleted should be true")
	}
	// Untouched fields survive a partial update.
	if updated.Title != "Write report" || updated.Description != "numbers" {
		t.Errorf("partial update clobbered fields: %+v", updated)
	}

	if got := f.rec.Snapshot().TasksCompleted; got != 1 {
		t.Errorf("TasksCompleted = %d, want 1", got)
	}
}

func TestUpdateTask_MoveToForeignGroupLeavesTaskUntouched(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	other, err := f.groups.CreateGroup(ctx, "owner-2", "Private")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	task, err := f.tasks.CreateTask(ctx, CreateTaskInput{
		OwnerID: f.owner, Title: "Write report", GroupID: f.group.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	newTitle := "Renamed"
	_, err = f.tasks.UpdateTask(ctx, f.owner, task.ID, model.TaskPatch{
		Title:   &newTitle,
		GroupID: &other.ID,
	})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("got %v, want ErrGroupNotFound", err)
	}

	// The rejected update must not have applied any field.
	current, err := f.tasks.GetTask(ctx, f.owner, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if current.Title != "Write report" || current.GroupID != f.group.ID {
		t.Errorf("failed update must leave the task unchanged: %+v", current)
	}
}

func TestUpdateTask_EmptyTitle(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, CreateTaskInput{
		OwnerID: f.owner, Title: "Write report", GroupID: f.group.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	blank := "   "
	if _, err := f.tasks.UpdateTask(ctx, f.owner, task.ID, model.TaskPatch{Title: &blank}); !errors.Is(err, ErrTaskTitleEmpty) {
		t.Errorf("got %v, want ErrTaskTitleEmpty", err)
	}
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, CreateTaskInput{
		OwnerID: f.owner, Title: "Write report", GroupID: f.group.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := f.tasks.DeleteTask(ctx, "owner-2", task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("cross-owner delete: got %v, want ErrTaskNotFound", err)
	}

	if err := f.tasks.DeleteTask(ctx, f.owner, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if err := f.tasks.DeleteTask(ctx, f.owner, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second delete: got %v, want ErrTaskNotFound", err)
	}
}
