package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taskdeck/taskdeck/internal/model"
)

// ErrGroupNotFound covers both truly absent groups and groups owned by
// another user. The two cases are indistinguishable on purpose.
var ErrGroupNotFound = errors.New("group not found")

// CreateGroup inserts a new group into the database.
func (r *Repository) CreateGroup(ctx context.Context, group *model.Group) error {
	query := `
		INSERT INTO groups (id, name, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		group.ID,
		group.Name,
		group.UserID,
		group.CreatedAt,
		group.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

// ListGroups retrieves all groups owned by ownerID. Ordering is by
// creation time then ID, so repeated calls return the same order
// absent mutation.
func (r *Repository) ListGroups(ctx context.Context, ownerID string) ([]*model.Group, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM groups
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return groups, nil
}

// GetGroup retrieves a group by ID, scoped to its owner.
// Returns ErrGroupNotFound if the group is absent or owned by someone else.
func (r *Repository) GetGroup(ctx context.Context, ownerID, groupID string) (*model.Group, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM groups
		WHERE id = $1 AND user_id = $2
	`

	group, err := scanGroup(r.pool.QueryRow(ctx, query, groupID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// UpdateGroupName renames an owner-scoped group and bumps updated_at.
func (r *Repository) UpdateGroupName(ctx context.Context, ownerID, groupID, name string) (*model.Group, error) {
	query := `
		UPDATE groups
		SET name = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
		RETURNING id, name, user_id, created_at, updated_at
	`

	group, err := scanGroup(r.pool.QueryRow(ctx, query, groupID, ownerID, name, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return group, nil
}

// DeleteGroup removes an owner-scoped group together with all tasks
// that reference it. Both deletes run in one transaction so no task is
// ever left pointing at a missing group.
func (r *Repository) DeleteGroup(ctx context.Context, ownerID, groupID string) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM tasks WHERE group_id = $1 AND user_id = $2`,
			groupID, ownerID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete group tasks: %w", err)
		}

		result, err := tx.Exec(ctx,
			`DELETE FROM groups WHERE id = $1 AND user_id = $2`,
			groupID, ownerID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}

		if result.RowsAffected() == 0 {
			return ErrGroupNotFound
		}
		return nil
	})
}

// scanGroup scans a group row.
func scanGroup(row pgx.Row) (*model.Group, error) {
	var group model.Group
	err := row.Scan(
		&group.ID,
		&group.Name,
		&group.UserID,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &group, nil
}
