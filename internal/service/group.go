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

// Group service errors.
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrGroupNameEmpty = errors.New("group name is required")
)

// GroupStore is the storage surface the group service needs.
// *repository.Repository satisfies it.
type GroupStore interface {
	CreateGroup(ctx context.Context, group *model.Group) error
	ListGroups(ctx context.Context, ownerID string) ([]*model.Group, error)
	GetGroup(ctx context.Context, ownerID, groupID string) (*model.Group, error)
	UpdateGroupName(ctx context.Context, ownerID, groupID, name string) (*model.Group, error)
	DeleteGroup(ctx context.Context, ownerID, groupID string) error
}

// GroupService handles owner-scoped group CRUD.
type GroupService struct {
	store   GroupStore
	metrics metrics.Recorder
}

// NewGroupService creates a new GroupService.
func NewGroupService(store GroupStore, recorder metrics.Recorder) *GroupService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &GroupService{
		store:   store,
		metrics: recorder,
	}
}

// CreateGroup persists a new group owned by ownerID. Group names need
// not be unique.
func (s *GroupService) CreateGroup(ctx context.Context, ownerID, name string) (*model.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrGroupNameEmpty
	}

	now := time.Now().UTC()
	group := &model.Group{
		ID:        ulid.Make().String(),
		Name:      name,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.metrics.IncGroupCreated()

	return group, nil
}

// ListGroups returns all groups owned by ownerID.
func (s *GroupService) ListGroups(ctx context.Context, ownerID string) ([]*model.Group, error) {
	groups, err := s.store.ListGroups(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// GetGroup retrieves an owner-scoped group.
func (s *GroupService) GetGroup(ctx context.Context, ownerID, groupID string) (*model.Group, error) {
	group, err := s.store.GetGroup(ctx, ownerID, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// UpdateGroup renames an owner-scoped group.
func (s *GroupService) UpdateGroup(ctx context.Context, ownerID, groupID, name string) (*model.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrGroupNameEmpty
	}

	group, err := s.store.UpdateGroupName(ctx, ownerID, groupID, name)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes an owner-scoped group and all of its tasks.
// Deletion cascades rather than rejecting so a group can always be
// cleaned up in one call; the repository runs both deletes atomically.
func (s *GroupService) DeleteGroup(ctx context.Context, ownerID, groupID string) error {
	if err := s.store.DeleteGroup(ctx, ownerID, groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	s.metrics.IncGroupDeleted()

	return nil
}
