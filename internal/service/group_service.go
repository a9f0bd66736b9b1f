package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gosimple/slug"

	"github.com/yatube/yatube/internal/audit"
	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/internal/repository"
)

// groupService implements GroupService.
type groupService struct {
	groups repository.GroupRepository
}

// NewGroupService creates a new GroupService instance.
func NewGroupService(groups repository.GroupRepository) GroupService {
	return &groupService{groups: groups}
}

// Create inserts a new group. The slug is derived from the title and must
// be unique across groups.
func (s *groupService) Create(ctx context.Context, actorID string, req *domain.CreateGroupRequest) (*domain.Group, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, &ValidationError{Fields: map[string]string{"title": "group title must not be empty"}}
	}

	group := &domain.Group{
		Slug:        slug.Make(title),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.groups.Create(ctx, group); err != nil {
		if errors.Is(err, repository.ErrGroupExists) {
			return nil, ErrGroupExists
		}
		return nil, err
	}

	audit.Log(ctx, audit.ActionGroupCreate, actorID, group.Slug)
	return group, nil
}

// Update patches a group's title and description. The slug is stable, so
// existing post and feed links keep working.
func (s *groupService) Update(ctx context.Context, actorID, groupSlug string, req *domain.UpdateGroupRequest) (*domain.Group, error) {
	group, err := s.getGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, &ValidationError{Fields: map[string]string{"title": "group title must not be empty"}}
		}
		group.Title = title
	}
	if req.Description != nil {
		group.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionGroupUpdate, actorID, group.Slug)
	return group, nil
}

// Delete removes a group. Its posts stay published, detached from any group.
func (s *groupService) Delete(ctx context.Context, actorID, groupSlug string) error {
	if err := s.groups.Delete(ctx, groupSlug); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	audit.Log(ctx, audit.ActionGroupDelete, actorID, groupSlug)
	return nil
}

// List returns every group.
func (s *groupService) List(ctx context.Context) ([]domain.Group, error) {
	return s.groups.List(ctx)
}

func (s *groupService) getGroup(ctx context.Context, groupSlug string) (*domain.Group, error) {
	group, err := s.groups.GetBySlug(ctx, groupSlug)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

var _ GroupService = (*groupService)(nil)
