package service

import (
	"context"
	"sort"
	"sync"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// memStore is an in-memory implementation of UserStore, GroupStore and
// TaskStore with the same scoping semantics as the SQL repository:
// rows belonging to another owner read as not found, group deletion
// cascades to tasks, and task reads are enriched with the group name
// and the owner's username.
type memStore struct {
	mu     sync.Mutex
	users  map[string]*model.User
	groups map[string]*model.Group
	tasks  map[string]*model.Task
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]*model.User),
		groups: make(map[string]*model.Group),
		tasks:  make(map[string]*model.Task),
	}
}

func (s *memStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrUserExists
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memStore) CreateGroup(_ context.Context, group *model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *group
	s.groups[group.ID] = &clone
	return nil
}

func (s *memStore) ListGroups(_ context.Context, ownerID string) ([]*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Group
	for _, g := range s.groups {
		if g.UserID == ownerID {
			clone := *g
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetGroup(_ context.Context, ownerID, groupID string) (*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[groupID]
	if !ok || g.UserID != ownerID {
		return nil, repository.ErrGroupNotFound
	}
	clone := *g
	return &clone, nil
}

func (s *memStore) UpdateGroupName(_ context.Context, ownerID, groupID, name string) (*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[groupID]
	if !ok || g.UserID != ownerID {
		return nil, repository.ErrGroupNotFound
	}
	g.Name = name
	clone := *g
	return &clone, nil
}

func (s *memStore) DeleteGroup(_ context.Context, ownerID, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[groupID]
	if !ok || g.UserID != ownerID {
		return repository.ErrGroupNotFound
	}
	for id, t := range s.tasks {
		if t.GroupID == groupID {
			delete(s.tasks, id)
		}
	}
	delete(s.groups, groupID)
	return nil
}

func (s *memStore) CreateTask(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[task.GroupID]
	if !ok || g.UserID != task.UserID {
		return repository.ErrGroupNotFound
	}
	clone := *task
	s.tasks[task.ID] = &clone
	return nil
}

func (s *memStore) ListTasks(_ context.Context, ownerID string, filter model.TaskFilter) ([]*model.TaskWithDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.TaskWithDetails
	for _, t := range s.tasks {
		if t.UserID != ownerID {
			continue
		}
		if filter.GroupID != nil && t.GroupID != *filter.GroupID {
			continue
		}
		if filter.Completed != nil && t.IsCompleted != *filter.Completed {
			continue
		}
		out = append(out, s.enrich(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetTask(_ context.Context, ownerID, taskID string) (*model.TaskWithDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return nil, repository.ErrTaskNotFound
	}
	return s.enrich(t), nil
}

func (s *memStore) UpdateTask(_ context.Context, ownerID, taskID string, patch model.TaskPatch) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return nil, repository.ErrTaskNotFound
	}
	if patch.GroupID != nil {
		g, ok := s.groups[*patch.GroupID]
		if !ok || g.UserID != ownerID {
			return nil, repository.ErrGroupNotFound
		}
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.IsCompleted != nil {
		t.IsCompleted = *patch.IsCompleted
	}
	if patch.GroupID != nil {
		t.GroupID = *patch.GroupID
	}
	clone := *t
	return &clone, nil
}

func (s *memStore) DeleteTask(_ context.Context, ownerID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return repository.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

// enrich joins group name and username; callers hold the lock.
func (s *memStore) enrich(t *model.Task) *model.TaskWithDetails {
	detail := &model.TaskWithDetails{Task: *t}
	if g, ok := s.groups[t.GroupID]; ok {
		detail.GroupName = g.Name
	}
	if u, ok := s.users[t.UserID]; ok {
		detail.Username = u.Username
	}
	return detail
}
