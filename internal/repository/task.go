package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taskdeck/taskdeck/internal/model"
)

// ErrTaskNotFound covers both truly absent tasks and tasks owned by
// another user, mirroring ErrGroupNotFound.
var ErrTaskNotFound = errors.New("task not found")

// taskDetailColumns is the projection for enriched task reads: every
// task field plus the group name and owner username from the joins.
const taskDetailColumns = `
	t.id, t.title, t.description, t.is_completed, t.user_id, t.group_id,
	t.created_at, t.updated_at, g.name, u.username
`

// CreateTask inserts a task after verifying, in the same transaction,
// that its group exists and is owned by the task's owner. The group row
// is share-locked so a concurrent group delete cannot slip between the
// check and the insert.
func (r *Repository) CreateTask(ctx context.Context, task *model.Task) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var one int
		err := tx.QueryRow(ctx,
			`SELECT 1 FROM groups WHERE id = $1 AND user_id = $2 FOR SHARE`,
			task.GroupID, task.UserID,
		).Scan(&one)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrGroupNotFound
			}
			return fmt.Errorf("failed to check group ownership: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO tasks (id, title, description, is_completed, user_id, group_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			task.ID,
			task.Title,
			task.Description,
			task.IsCompleted,
			task.UserID,
			task.GroupID,
			task.CreatedAt,
			task.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
}

// ListTasks retrieves all tasks owned by ownerID, enriched with group
// name and username. Optional filters narrow by group and completion
// state; both filters combine with AND.
func (r *Repository) ListTasks(ctx context.Context, ownerID string, filter model.TaskFilter) ([]*model.TaskWithDetails, error) {
	query := `
		SELECT ` + taskDetailColumns + `
		FROM tasks t
		JOIN groups g ON t.group_id = g.id
		JOIN users u ON t.user_id = u.id
		WHERE t.user_id = $1
	`
	args := []any{ownerID}
	argIndex := 2

	if filter.GroupID != nil {
		query += fmt.Sprintf(" AND t.group_id = $%d", argIndex)
		args = append(args, *filter.GroupID)
		argIndex++
	}

	if filter.Completed != nil {
		query += fmt.Sprintf(" AND t.is_completed = $%d", argIndex)
		args = append(args, *filter.Completed)
		argIndex++
	}

	query += " ORDER BY t.created_at, t.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*model.TaskWithDetails
	for rows.Next() {
		task, err := scanTaskDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// GetTask retrieves an owner-scoped task with enrichment.
// Returns ErrTaskNotFound if the task is absent or owned by someone else.
func (r *Repository) GetTask(ctx context.Context, ownerID, taskID string) (*model.TaskWithDetails, error) {
	query := `
		SELECT ` + taskDetailColumns + `
		FROM tasks t
		JOIN groups g ON t.group_id = g.id
		JOIN users u ON t.user_id = u.id
		WHERE t.id = $1 AND t.user_id = $2
	`

	task, err := scanTaskDetail(r.pool.QueryRow(ctx, query, taskID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to an owner-scoped task. When the
// patch moves the task to another group, the new group's ownership is
// verified inside the same transaction; on failure the task keeps its
// original group. Returns the updated task.
func (r *Repository) UpdateTask(ctx context.Context, ownerID, taskID string, patch model.TaskPatch) (*model.Task, error) {
	var updated *model.Task

	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var task model.Task
		err := tx.QueryRow(ctx, `
			SELECT id, title, description, is_completed, user_id, group_id, created_at, updated_at
			FROM tasks
			WHERE id = $1 AND user_id = $2
			FOR UPDATE
		`, taskID, ownerID).Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.IsCompleted,
			&task.UserID,
			&task.GroupID,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to get task for update: %w", err)
		}

		if patch.GroupID != nil && *patch.GroupID != task.GroupID {
			var one int
			err := tx.QueryRow(ctx,
				`SELECT 1 FROM groups WHERE id = $1 AND user_id = $2 FOR SHARE`,
				*patch.GroupID, ownerID,
			).Scan(&one)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrGroupNotFound
				}
				return fmt.Errorf("failed to check group ownership: %w", err)
			}
			task.GroupID = *patch.GroupID
		}

		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.IsCompleted != nil {
			task.IsCompleted = *patch.IsCompleted
		}
		task.UpdatedAt = time.Now().UTC()

		_, err = tx.Exec(ctx, `
			UPDATE tasks
			SET title = $2, description = $3, is_completed = $4, group_id = $5, updated_at = $6
			WHERE id = $1
		`,
			task.ID,
			task.Title,
			task.Description,
			task.IsCompleted,
			task.GroupID,
			task.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		updated = &task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteTask removes an owner-scoped task.
// Returns ErrTaskNotFound if the task is absent or owned by someone else.
func (r *Repository) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// scanTaskDetail scans an enriched task row.
func scanTaskDetail(row pgx.Row) (*model.TaskWithDetails, error) {
	var task model.TaskWithDetails
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.IsCompleted,
		&task.UserID,
		&task.GroupID,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.GroupName,
		&task.Username,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
