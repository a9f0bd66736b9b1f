package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yatube/yatube/internal/domain"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrGroupExists   = errors.New("group slug already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrNotOwner      = errors.New("not the post owner")
)

// ValidationError carries per-field messages for a rejected form. Nothing
// is persisted when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ImageFile is an uploaded image streamed through to blob storage.
type ImageFile struct {
	Reader      io.Reader
	ContentType string
	Size        int64
	Filename    string
}

// ProfileFeed is the author page: their posts, post count, and whether the
// viewer already follows them (only meaningful for authenticated viewers).
type ProfileFeed struct {
	Author    domain.User
	Posts     []domain.Post
	PostCount int64
	Following bool
}

// FeedService builds the ordered candidate sequences the Pager slices. It
// owns no state; it is query composition over the content store and the
// follow graph.
type FeedService interface {
	// HomePosts returns every post, newest first.
	HomePosts(ctx context.Context) ([]domain.Post, error)
	// GroupPosts returns a group and its posts; ErrGroupNotFound for an
	// unknown slug.
	GroupPosts(ctx context.Context, slug string) (*domain.Group, []domain.Post, error)
	// AuthorPosts returns the author's profile feed. viewerID may be empty
	// for anonymous viewers, in which case Following is always false.
	AuthorPosts(ctx context.Context, username, viewerID string) (*ProfileFeed, error)
	// FollowedPosts returns the merged newest-first posts of every author
	// the viewer follows.
	FollowedPosts(ctx context.Context, viewerID string) ([]domain.Post, error)
}

// PostDetail is the single-post page: the post, its author's total post
// count, and its comments oldest-first.
type PostDetail struct {
	Post            domain.Post
	AuthorPostCount int64
	Comments        []domain.Comment
}

// PostService owns the post and comment lifecycle.
type PostService interface {
	Create(ctx context.Context, authorID string, form domain.PostForm, image *ImageFile) (*domain.Post, error)
	// Edit rewrites a post. Only the owner may edit; others get ErrNotOwner.
	Edit(ctx context.Context, postID uint, editorID string, form domain.PostForm, image *ImageFile) (*domain.Post, error)
	// Delete removes a post and its comments. Only the owner may delete.
	Delete(ctx context.Context, postID uint, requesterID string) error
	Detail(ctx context.Context, postID uint) (*PostDetail, error)
	AddComment(ctx context.Context, postID uint, authorID, text string) (*domain.Comment, error)
	// Present resolves stored image keys into retrievable URLs for a page
	// of posts.
	Present(ctx context.Context, posts []domain.Post) []domain.PostResponse
}

// FollowService owns the follow graph operations. Both mutations are
// idempotent: repeating them changes nothing after the first application.
type FollowService interface {
	Follow(ctx context.Context, followerID, username string) error
	Unfollow(ctx context.Context, followerID, username string) error
	IsFollowing(ctx context.Context, followerID, username string) (bool, error)
}

// GroupService owns group administration.
type GroupService interface {
	Create(ctx context.Context, actorID string, req *domain.CreateGroupRequest) (*domain.Group, error)
	Update(ctx context.Context, actorID, slug string, req *domain.UpdateGroupRequest) (*domain.Group, error)
	Delete(ctx context.Context, actorID, slug string) error
	List(ctx context.Context) ([]domain.Group, error)
}
