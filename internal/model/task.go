package model

import "time"

// Task is a unit of work within a group. The owning user of a task is
// always the owner of its group; the service layer enforces this on
// every write.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsCompleted bool      `json:"is_completed"`
	UserID      string    `json:"user_id"`
	GroupID     string    `json:"group_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskWithDetails is a task enriched with its group's name and the
// owner's username, assembled by a join in the repository.
type TaskWithDetails struct {
	Task
	GroupName string `json:"group_name"`
	Username  string `json:"username"`
}

// TaskFilter narrows task listings. Nil fields mean "no constraint";
// set fields combine with logical AND.
type TaskFilter struct {
	GroupID   *string
	Completed *bool
}

// TaskPatch describes a partial task update. Only non-nil fields are
// applied.
type TaskPatch struct {
	Title       *string
	Description *string
	IsCompleted *bool
	GroupID     *string
}
