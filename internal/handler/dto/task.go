package dto

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
)

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	GroupID     string `json:"group_id"`
}

// UpdateTaskRequest represents a partial task update. Absent fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	GroupID     *string `json:"group_id,omitempty"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsCompleted bool      `json:"is_completed"`
	UserID      string    `json:"user_id"`
	GroupID     string    `json:"group_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskWithDetailsResponse is a task enriched with its group's name and
// the owner's username.
type TaskWithDetailsResponse struct {
	TaskResponse
	GroupName string `json:"group_name"`
	Username  string `json:"username"`
}

// ToTaskResponse converts a Task model to TaskResponse DTO.
func ToTaskResponse(task *model.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		UserID:      task.UserID,
		GroupID:     task.GroupID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskWithDetailsResponse converts an enriched task to its DTO.
func ToTaskWithDetailsResponse(task *model.TaskWithDetails) *TaskWithDetailsResponse {
	return &TaskWithDetailsResponse{
		TaskResponse: *ToTaskResponse(&task.Task),
		GroupName:    task.GroupName,
		Username:     task.Username,
	}
}

// ToTaskListResponse converts a slice of enriched tasks to DTOs.
func ToTaskListResponse(tasks []*model.TaskWithDetails) []TaskWithDetailsResponse {
	responses := make([]TaskWithDetailsResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *ToTaskWithDetailsResponse(task)
	}
	return responses
}
