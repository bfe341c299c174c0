package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// Task service errors.
var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskTitleEmpty = errors.New("task title is required")
)

// TaskStore is the storage surface the task service needs.
// *repository.Repository satisfies it.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	ListTasks(ctx context.Context, ownerID string, filter model.TaskFilter) ([]*model.TaskWithDetails, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*model.TaskWithDetails, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, patch model.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}

// TaskService handles owner-scoped task CRUD and enriched reads.
type TaskService struct {
	store   TaskStore
	metrics metrics.Recorder
}

// NewTaskService creates a new TaskService.
func NewTaskService(store TaskStore, recorder metrics.Recorder) *TaskService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TaskService{
		store:   store,
		metrics: recorder,
	}
}

// CreateTaskInput defines input for creating a task.
type CreateTaskInput struct {
	OwnerID     string
	Title       string
	Description string
	GroupID     string
}

// CreateTask persists a new incomplete task after the repository has
// verified, atomically, that the target group belongs to the owner.
// A group owned by someone else is reported as ErrGroupNotFound.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*model.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleEmpty
	}
	if input.GroupID == "" {
		return nil, ErrGroupNotFound
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:          ulid.Make().String(),
		Title:       input.Title,
		Description: input.Description,
		IsCompleted: false,
		UserID:      input.OwnerID,
		GroupID:     input.GroupID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.metrics.IncTaskCreated()

	return task, nil
}

// ListTasks returns the owner's tasks, enriched with group name and
// username, optionally narrowed by group and completion state.
func (s *TaskService) ListTasks(ctx context.Context, ownerID string, filter model.TaskFilter) ([]*model.TaskWithDetails, error) {
	tasks, err := s.store.ListTasks(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves an owner-scoped task with enrichment.
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (*model.TaskWithDetails, error) {
	task, err := s.store.GetTask(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a partial update. Moving a task to a group the
// owner does not hold fails with ErrGroupNotFound and leaves the task
// untouched.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, patch model.TaskPatch) (*model.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, ErrTaskTitleEmpty
	}

	task, err := s.store.UpdateTask(ctx, ownerID, taskID, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, repository.ErrGroupNotFound):
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if patch.IsCompleted != nil && *patch.IsCompleted {
		s.metrics.IncTaskCompleted()
	}

	return task, nil
}

// DeleteTask removes an owner-scoped task.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := s.store.DeleteTask(ctx, ownerID, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	s.metrics.IncTaskDeleted()

	return nil
}
