package dto

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
)

// CreateGroupRequest represents the request body for creating a group.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// UpdateGroupRequest represents the request body for renaming a group.
type UpdateGroupRequest struct {
	Name string `json:"name"`
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToGroupResponse converts a Group model to GroupResponse DTO.
func ToGroupResponse(group *model.Group) *GroupResponse {
	return &GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		UserID:    group.UserID,
		CreatedAt: group.CreatedAt,
		UpdatedAt: group.UpdatedAt,
	}
}

// ToGroupListResponse converts a slice of Group models to DTOs.
func ToGroupListResponse(groups []*model.Group) []GroupResponse {
	responses := make([]GroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = *ToGroupResponse(group)
	}
	return responses
}
