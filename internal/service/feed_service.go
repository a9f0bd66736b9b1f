package service

import (
	"context"
	"errors"

	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/internal/repository"
	"github.com/yatube/yatube/pkg/log"
)

// feedService implements FeedService over the content store and the follow
// graph.
type feedService struct {
	posts   repository.PostRepository
	groups  repository.GroupRepository
	users   repository.UserRepository
	follows repository.FollowRepository
}

// NewFeedService creates a new FeedService instance.
func NewFeedService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
) FeedService {
	return &feedService{
		posts:   posts,
		groups:  groups,
		users:   users,
		follows: follows,
	}
}

// HomePosts returns every post, newest first.
func (s *feedService) HomePosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListAll(ctx)
}

// GroupPosts returns a group and its posts.
func (s *feedService) GroupPosts(ctx context.Context, slug string) (*domain.Group, []domain.Post, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		return nil, nil, err
	}

	posts, err := s.posts.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	return group, posts, nil
}

// AuthorPosts returns the profile feed for username. Follow status is only
// looked up when a viewer identity is supplied.
func (s *feedService) AuthorPosts(ctx context.Context, username, viewerID string) (*ProfileFeed, error) {
	l := log.Ctx(ctx)

	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	posts, err := s.posts.ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.posts.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	feed := &ProfileFeed{
		Author:    *author,
		Posts:     posts,
		PostCount: count,
	}

	if viewerID != "" {
		following, err := s.follows.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			l.Warn().Err(err).Str(log.FieldUsername, username).Msg("failed to resolve follow status")
		} else {
			feed.Following = following
		}
	}

	return feed, nil
}

// FollowedPosts merges the posts of every author the viewer follows into a
// single newest-first sequence.
func (s *feedService) FollowedPosts(ctx context.Context, viewerID string) ([]domain.Post, error) {
	authorIDs, err := s.follows.Following(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.posts.ListByAuthors(ctx, authorIDs)
}

var _ FeedService = (*feedService)(nil)
