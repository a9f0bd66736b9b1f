package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/internal/cache"
	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/internal/pagination"
	"github.com/yatube/yatube/internal/service"
	pkglog "github.com/yatube/yatube/pkg/log"
	"github.com/yatube/yatube/pkg/middleware"
	"github.com/yatube/yatube/pkg/response"
)

const homeCacheKeyPrefix = "feed:home:page:"

// Handler handles HTTP requests for the publishing platform.
type Handler struct {
	feeds          service.FeedService
	posts          service.PostService
	follows        service.FollowService
	groups         service.GroupService
	pages          cache.PageCache
	authMiddleware *middleware.AuthMiddleware

	pageSize     int
	homeCacheTTL time.Duration
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	feeds service.FeedService,
	posts service.PostService,
	follows service.FollowService,
	groups service.GroupService,
	pages cache.PageCache,
	authMiddleware *middleware.AuthMiddleware,
	pageSize int,
	homeCacheTTL time.Duration,
) *Handler {
	return &Handler{
		feeds:          feeds,
		posts:          posts,
		follows:        follows,
		groups:         groups,
		pages:          pages,
		authMiddleware: authMiddleware,
		pageSize:       pageSize,
		homeCacheTTL:   homeCacheTTL,
	}
}

// RegisterRoutes registers all routes onto the Gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	// Public feeds. OptionalAuth so profile pages can report follow status.
	r.GET("/", h.HomeFeed)
	r.GET("/group/:slug", h.GroupFeed)
	r.GET("/profile/:username", h.authMiddleware.OptionalAuth(), h.ProfileFeed)
	r.GET("/posts/:id", h.PostDetail)

	// Authoring. Anonymous requests are redirected to the login page.
	auth := r.Group("/", h.authMiddleware.RequireAuth())
	{
		auth.GET("/create", h.CreatePostForm)
		auth.POST("/create", h.CreatePost)
		auth.GET("/posts/:id/edit", h.EditPostForm)
		auth.POST("/posts/:id/edit", h.EditPost)
		auth.POST("/posts/:id/delete", h.DeletePost)
		auth.POST("/posts/:id/comment", h.AddComment)

		auth.GET("/follow", h.FollowFeed)
		auth.GET("/profile/:username/follow", h.Follow)
		auth.GET("/profile/:username/unfollow", h.Unfollow)
	}

	// Group administration.
	api := r.Group("/api/v1", h.authMiddleware.RequireAuth())
	{
		api.GET("/groups", h.ListGroups)
		api.POST("/groups", h.CreateGroup)
		api.PATCH("/groups/:slug", h.UpdateGroup)
		api.DELETE("/groups/:slug", h.DeleteGroup)
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "page not found")
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// HomeFeed handles GET /. The rendered page is cached for a short TTL, so
// a freshly published post may take up to that long to appear here.
func (h *Handler) HomeFeed(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	pageNumber := pagination.ParsePageNumber(c.Query("page"))
	key := homeCacheKeyPrefix + strconv.Itoa(pageNumber)

	body, err := h.pages.GetOrRender(ctx, key, h.homeCacheTTL, func() ([]byte, error) {
		posts, err := h.feeds.HomePosts(ctx)
		if err != nil {
			return nil, err
		}
		page := h.presentPage(ctx, posts, pageNumber)
		return json.Marshal(response.Response{Success: true, Data: page})
	})
	if err != nil {
		l.Error().Err(err).Msg("failed to render home feed")
		response.InternalError(c, "failed to load feed")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GroupFeed handles GET /group/:slug.
func (h *Handler) GroupFeed(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	group, posts, err := h.feeds.GroupPosts(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.NotFound(c, "group not found")
			return
		}
		l.Error().Err(err).Str("slug", c.Param("slug")).Msg("failed to load group feed")
		response.InternalError(c, "failed to load feed")
		return
	}

	page := h.presentPage(ctx, posts, pagination.ParsePageNumber(c.Query("page")))
	response.Success(c, gin.H{
		"group": group,
		"posts": page,
	})
}

// ProfileFeed handles GET /profile/:username. For authenticated viewers the
// payload reports whether they already follow the author.
func (h *Handler) ProfileFeed(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	username := c.Param("username")
	feed, err := h.feeds.AuthorPosts(ctx, username, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Str(pkglog.FieldUsername, username).Msg("failed to load profile feed")
		response.InternalError(c, "failed to load feed")
		return
	}

	page := h.presentPage(ctx, feed.Posts, pagination.ParsePageNumber(c.Query("page")))
	response.Success(c, gin.H{
		"author":     feed.Author,
		"post_count": feed.PostCount,
		"following":  feed.Following,
		"posts":      page,
	})
}

// FollowFeed handles GET /follow, the posts of every followed author.
func (h *Handler) FollowFeed(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	posts, err := h.feeds.FollowedPosts(ctx, middleware.GetUserID(c))
	if err != nil {
		l.Error().Err(err).Msg("failed to load follow feed")
		response.InternalError(c, "failed to load feed")
		return
	}

	response.Success(c, h.presentPage(ctx, posts, pagination.ParsePageNumber(c.Query("page"))))
}

// PostDetail handles GET /posts/:id.
func (h *Handler) PostDetail(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	detail, err := h.posts.Detail(ctx, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		l.Error().Err(err).Uint64("post_id", uint64(postID)).Msg("failed to load post")
		response.InternalError(c, "failed to load post")
		return
	}

	presented := h.posts.Present(ctx, []domain.Post{detail.Post})
	response.Success(c, gin.H{
		"post":              presented[0],
		"author_post_count": detail.AuthorPostCount,
		"comments":          detail.Comments,
	})
}

// CreatePostForm handles GET /create, returning the data needed to render
// the authoring form.
func (h *Handler) CreatePostForm(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	groups, err := h.groups.List(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to list groups")
		response.InternalError(c, "failed to load form")
		return
	}

	response.Success(c, gin.H{"groups": groups})
}

// CreatePost handles POST /create. On success the client is redirected to
// the author's profile.
func (h *Handler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	form, image, ok := bindPostForm(c)
	if !ok {
		return
	}
	defer closeImage(image)

	authorID := middleware.GetUserID(c)
	if _, err := h.posts.Create(ctx, authorID, form, image); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			response.ValidationError(c, verr.Fields)
			return
		}
		l.Error().Err(err).Msg("failed to create post")
		response.InternalError(c, "failed to create post")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+middleware.GetUsername(c))
}

// EditPostForm handles GET /posts/:id/edit. Non-owners are bounced to the
// post detail page instead of seeing the form.
func (h *Handler) EditPostForm(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	detail, err := h.posts.Detail(ctx, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		l.Error().Err(err).Uint64("post_id", uint64(postID)).Msg("failed to load post")
		response.InternalError(c, "failed to load post")
		return
	}

	if detail.Post.AuthorID != middleware.GetUserID(c) {
		c.Redirect(http.StatusFound, postPath(postID))
		return
	}

	groups, err := h.groups.List(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to list groups")
		response.InternalError(c, "failed to load form")
		return
	}

	presented := h.posts.Present(ctx, []domain.Post{detail.Post})
	response.Success(c, gin.H{
		"post":   presented[0],
		"groups": groups,
	})
}

// EditPost handles POST /posts/:id/edit.
func (h *Handler) EditPost(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	form, image, ok := bindPostForm(c)
	if !ok {
		return
	}
	defer closeImage(image)

	if _, err := h.posts.Edit(ctx, postID, middleware.GetUserID(c), form, image); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, service.ErrNotOwner):
			c.Redirect(http.StatusFound, postPath(postID))
		default:
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				response.ValidationError(c, verr.Fields)
				return
			}
			l.Error().Err(err).Uint64("post_id", uint64(postID)).Msg("failed to edit post")
			response.InternalError(c, "failed to edit post")
		}
		return
	}

	c.Redirect(http.StatusFound, postPath(postID))
}

// DeletePost handles POST /posts/:id/delete.
func (h *Handler) DeletePost(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(ctx, postID, middleware.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, service.ErrNotOwner):
			c.Redirect(http.StatusFound, postPath(postID))
		default:
			l.Error().Err(err).Uint64("post_id", uint64(postID)).Msg("failed to delete post")
			response.InternalError(c, "failed to delete post")
		}
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+middleware.GetUsername(c))
}

// AddComment handles POST /posts/:id/comment. On success the client is
// redirected back to the post detail page.
func (h *Handler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var form domain.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "invalid comment form")
		return
	}

	if _, err := h.posts.AddComment(ctx, postID, middleware.GetUserID(c), form.Text); err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.As(err, &verr):
			response.ValidationError(c, verr.Fields)
		default:
			l.Error().Err(err).Uint64("post_id", uint64(postID)).Msg("failed to add comment")
			response.InternalError(c, "failed to add comment")
		}
		return
	}

	c.Redirect(http.StatusFound, postPath(postID))
}

// Follow handles GET /profile/:username/follow. Following yourself or an
// author you already follow changes nothing; the redirect is the same.
func (h *Handler) Follow(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	username := c.Param("username")
	if err := h.follows.Follow(ctx, middleware.GetUserID(c), username); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Str(pkglog.FieldUsername, username).Msg("failed to follow")
		response.InternalError(c, "failed to follow")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username)
}

// Unfollow handles GET /profile/:username/unfollow.
func (h *Handler) Unfollow(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	username := c.Param("username")
	if err := h.follows.Unfollow(ctx, middleware.GetUserID(c), username); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Str(pkglog.FieldUsername, username).Msg("failed to unfollow")
		response.InternalError(c, "failed to unfollow")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username)
}

// ListGroups handles GET /api/v1/groups.
func (h *Handler) ListGroups(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	groups, err := h.groups.List(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to list groups")
		response.InternalError(c, "failed to list groups")
		return
	}

	response.Success(c, groups)
}

// CreateGroup handles POST /api/v1/groups. Admin only.
func (h *Handler) CreateGroup(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	if !middleware.IsAdmin(c) {
		response.Forbidden(c, "admin role required")
		return
	}

	var req domain.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	group, err := h.groups.Create(ctx, middleware.GetUserID(c), &req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrGroupExists):
			response.Conflict(c, "group slug already exists")
		case errors.As(err, &verr):
			response.ValidationError(c, verr.Fields)
		default:
			l.Error().Err(err).Msg("failed to create group")
			response.InternalError(c, "failed to create group")
		}
		return
	}

	response.Created(c, group)
}

// UpdateGroup handles PATCH /api/v1/groups/:slug. Admin only.
func (h *Handler) UpdateGroup(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	if !middleware.IsAdmin(c) {
		response.Forbidden(c, "admin role required")
		return
	}

	var req domain.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	group, err := h.groups.Update(ctx, middleware.GetUserID(c), c.Param("slug"), &req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			response.NotFound(c, "group not found")
		case errors.As(err, &verr):
			response.ValidationError(c, verr.Fields)
		default:
			l.Error().Err(err).Str("slug", c.Param("slug")).Msg("failed to update group")
			response.InternalError(c, "failed to update group")
		}
		return
	}

	response.Success(c, group)
}

// DeleteGroup handles DELETE /api/v1/groups/:slug. Admin only. Posts in
// the group survive, detached.
func (h *Handler) DeleteGroup(c *gin.Context) {
	ctx := c.Request.Context()
	l := pkglog.Ctx(ctx)

	if !middleware.IsAdmin(c) {
		response.Forbidden(c, "admin role required")
		return
	}

	if err := h.groups.Delete(ctx, middleware.GetUserID(c), c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.NotFound(c, "group not found")
			return
		}
		l.Error().Err(err).Str("slug", c.Param("slug")).Msg("failed to delete group")
		response.InternalError(c, "failed to delete group")
		return
	}

	c.Status(http.StatusNoContent)
}

// presentPage slices posts into the requested page and resolves image URLs
// for that page only.
func (h *Handler) presentPage(ctx context.Context, posts []domain.Post, pageNumber int) pagination.Page[domain.PostResponse] {
	page := pagination.Paginate(posts, h.pageSize, pageNumber)
	return pagination.Page[domain.PostResponse]{
		Items:       h.posts.Present(ctx, page.Items),
		Number:      page.Number,
		TotalPages:  page.TotalPages,
		HasPrevious: page.HasPrevious,
		HasNext:     page.HasNext,
	}
}

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c, "post not found")
		return 0, false
	}
	return uint(id), true
}

func postPath(postID uint) string {
	return fmt.Sprintf("/posts/%d", postID)
}

// bindPostForm reads the multipart authoring form. A missing image part is
// fine; any other multipart error is a bad request.
func bindPostForm(c *gin.Context) (domain.PostForm, *service.ImageFile, bool) {
	var form domain.PostForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "invalid post form")
		return form, nil, false
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nil, true
		}
		response.BadRequest(c, "invalid image upload")
		return form, nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "invalid image upload")
		return form, nil, false
	}

	return form, &service.ImageFile{
		Reader:      f,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Filename:    fileHeader.Filename,
	}, true
}

func closeImage(image *service.ImageFile) {
	if image == nil {
		return
	}
	if closer, ok := image.Reader.(interface{ Close() error }); ok {
		closer.Close()
	}
}
