package service

import (
	"context"
	"errors"

	"github.com/yatube/yatube/internal/audit"
	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/internal/repository"
)

// followService implements FollowService.
type followService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

// NewFollowService creates a new FollowService instance.
func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) FollowService {
	return &followService{follows: follows, users: users}
}

// Follow creates a follow edge towards the named author. Following
// yourself or an author you already follow is a no-op, so the handler
// route stays idempotent.
func (s *followService) Follow(ctx context.Context, followerID, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return nil
	}

	if err := s.follows.Follow(ctx, followerID, target.ID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFollowing) {
			return nil
		}
		return err
	}

	audit.Log(ctx, audit.ActionFollowCreate, followerID, username)
	return nil
}

// Unfollow removes the follow edge towards the named author if present.
func (s *followService) Unfollow(ctx context.Context, followerID, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}

	if err := s.follows.Unfollow(ctx, followerID, target.ID); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return nil
		}
		return err
	}

	audit.Log(ctx, audit.ActionFollowDelete, followerID, username)
	return nil
}

// IsFollowing checks whether followerID follows the named author.
func (s *followService) IsFollowing(ctx context.Context, followerID, username string) (bool, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return false, err
	}
	return s.follows.IsFollowing(ctx, followerID, target.ID)
}

func (s *followService) resolve(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

var _ FollowService = (*followService)(nil)
