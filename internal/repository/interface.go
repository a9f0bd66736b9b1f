package repository

import (
	"context"
	"errors"

	"github.com/yatube/yatube/internal/domain"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrGroupExists      = errors.New("group slug already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrFollowNotFound   = errors.New("follow relationship not found")
	ErrAlreadyFollowing = errors.New("already following")
)

// PostRepository owns persistence for posts. All listings are newest-first,
// ties broken by descending id.
type PostRepository interface {
	Create(ctx context.Context, authorID, text string, groupID *uint, imageKey string) (*domain.Post, error)
	GetByID(ctx context.Context, id uint) (*domain.Post, error)
	Update(ctx context.Context, id uint, text string, groupID *uint, imageKey string) error
	// Delete removes the post and its comments in one transaction.
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]domain.Post, error)
	ListByGroup(ctx context.Context, groupID uint) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []string) ([]domain.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}

// GroupRepository owns persistence for groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetBySlug(ctx context.Context, slug string) (*domain.Group, error)
	Update(ctx context.Context, group *domain.Group) error
	// Delete clears the group reference on its posts and removes the group
	// in one transaction. Posts survive.
	Delete(ctx context.Context, slug string) error
	List(ctx context.Context) ([]domain.Group, error)
}

// CommentRepository owns persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, postID uint, authorID, text string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error)
}

// FollowRepository owns the directed follow edges.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	// Following returns the IDs of every author the follower follows.
	Following(ctx context.Context, followerID string) ([]string, error)
}

// UserRepository reads authors provisioned by the identity system and
// handles account-removal cleanup.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Delete removes the user plus their posts, comments, comments on their
	// posts, and follow edges in both directions, in one transaction.
	Delete(ctx context.Context, id string) error
}
