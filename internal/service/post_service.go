package service

import (
	"context"
	"errors"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yatube/yatube/internal/audit"
	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/internal/repository"
	"github.com/yatube/yatube/pkg/log"
	"github.com/yatube/yatube/pkg/storage"
)

// imageURLTTL bounds the lifetime of presigned image URLs embedded in
// responses.
const imageURLTTL = 15 * time.Minute

// imageExtensions maps accepted upload content types to stored extensions.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

// postService implements PostService.
type postService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	comments repository.CommentRepository
	blobs    storage.Storage
}

// NewPostService creates a new PostService instance.
func NewPostService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	comments repository.CommentRepository,
	blobs storage.Storage,
) PostService {
	return &postService{
		posts:    posts,
		groups:   groups,
		comments: comments,
		blobs:    blobs,
	}
}

// Create validates the form, stores the image if one was uploaded, and
// inserts the post.
func (s *postService) Create(ctx context.Context, authorID string, form domain.PostForm, image *ImageFile) (*domain.Post, error) {
	groupID, verr := s.validateForm(ctx, form, image)
	if verr != nil {
		return nil, verr
	}

	imageKey, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, authorID, strings.TrimSpace(form.Text), groupID, imageKey)
	if err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionPostCreate, authorID, postTarget(post.ID))
	return post, nil
}

// Edit rewrites an existing post. Only the owner may edit it, and the
// creation timestamp is preserved.
func (s *postService) Edit(ctx context.Context, postID uint, editorID string, form domain.PostForm, image *ImageFile) (*domain.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editorID {
		return nil, ErrNotOwner
	}

	groupID, verr := s.validateForm(ctx, form, image)
	if verr != nil {
		return nil, verr
	}

	imageKey := post.ImageKey
	if image != nil {
		imageKey, err = s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		s.removeImage(ctx, post.ImageKey)
	}

	if err := s.posts.Update(ctx, postID, strings.TrimSpace(form.Text), groupID, imageKey); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionPostEdit, editorID, postTarget(postID))
	return s.getPost(ctx, postID)
}

// Delete removes a post, its comments, and its stored image.
func (s *postService) Delete(ctx context.Context, postID uint, requesterID string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return ErrNotOwner
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	s.removeImage(ctx, post.ImageKey)
	audit.Log(ctx, audit.ActionPostDelete, requesterID, postTarget(postID))
	return nil
}

// Detail returns the single-post page data.
func (s *postService) Detail(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	count, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:            *post,
		AuthorPostCount: count,
		Comments:        comments,
	}, nil
}

// AddComment validates and stores a comment under an existing post.
func (s *postService) AddComment(ctx context.Context, postID uint, authorID, text string) (*domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Fields: map[string]string{"text": "comment text must not be empty"}}
	}

	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, postID, authorID, strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionCommentCreate, authorID, postTarget(postID))
	return comment, nil
}

// Present maps a page of posts to response DTOs, resolving image keys into
// retrievable URLs.
func (s *postService) Present(ctx context.Context, posts []domain.Post) []domain.PostResponse {
	l := log.Ctx(ctx)

	out := make([]domain.PostResponse, len(posts))
	for i := range posts {
		out[i] = posts[i].ToResponse()
		if posts[i].ImageKey == "" {
			continue
		}
		url, err := s.blobs.GetURL(ctx, posts[i].ImageKey, imageURLTTL)
		if err != nil {
			l.Warn().Err(err).Str("key", posts[i].ImageKey).Msg("failed to resolve image url")
			continue
		}
		out[i].ImageURL = url
	}
	return out
}

func (s *postService) getPost(ctx context.Context, postID uint) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// validateForm checks the text, resolves the optional group slug, and
// checks the image content type. Returns the resolved group id.
func (s *postService) validateForm(ctx context.Context, form domain.PostForm, image *ImageFile) (*uint, *ValidationError) {
	fields := map[string]string{}

	if strings.TrimSpace(form.Text) == "" {
		fields["text"] = "post text must not be empty"
	}

	var groupID *uint
	if form.Group != "" {
		group, err := s.groups.GetBySlug(ctx, form.Group)
		if err != nil {
			fields["group"] = "unknown group: " + form.Group
		} else {
			groupID = &group.ID
		}
	}

	if image != nil {
		if _, ok := imageExtensions[image.ContentType]; !ok {
			fields["image"] = "unsupported image type: " + image.ContentType
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return groupID, nil
}

// storeImage writes the uploaded image to blob storage and returns its key.
func (s *postService) storeImage(ctx context.Context, image *ImageFile) (string, error) {
	if image == nil {
		return "", nil
	}

	key := "posts/" + uuid.New().String() + imageExtensions[image.ContentType]
	if err := s.blobs.Write(ctx, key, image.Reader, image.Size, image.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

// removeImage deletes a stored image, best-effort.
func (s *postService) removeImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str("key", key).Msg("failed to delete image blob")
	}
}

func postTarget(postID uint) string {
	return path.Join("posts", strconv.FormatUint(uint64(postID), 10))
}
