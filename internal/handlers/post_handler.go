package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/blogs/backend/internal/middleware"
	"github.com/anonto42/blogs/backend/internal/models"
	"github.com/anonto42/blogs/backend/internal/repositories"
	"github.com/anonto42/blogs/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	blogRepository         repositories.BlogRepository
	postRepository         repositories.PostRepository
	subscriptionRepository repositories.SubscriptionRepository
	postService            *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	blogRepo repositories.BlogRepository,
	postRepo repositories.PostRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	postService *services.PostService,
) *PostHandler {
	return &PostHandler{
		blogRepository:         blogRepo,
		postRepository:         postRepo,
		subscriptionRepository: subscriptionRepo,
		postService:            postService,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/blogs/:slug/posts", h.CreatePost)
	g.GET("/blogs/:slug/posts/:id", h.GetPost)
	g.PUT("/blogs/:slug/posts/:id", h.UpdatePost)
	g.DELETE("/blogs/:slug/posts/:id", h.DeletePost)
}

// CreatePost publishes a new post; subscribers are emailed before the response is sent
func (h *PostHandler) CreatePost(c echo.Context) error {
	_, blog, err := ownedBlog(c, h.blogRepository)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.Publish(c.Request().Context(), blog, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"post": post}})
}

// GetPost returns a post with the viewer's subscription and read state
func (h *PostHandler) GetPost(c echo.Context) error {
	blog, err := blogBySlug(c, h.blogRepository)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetBlogPost(ctx, blog.ID, postID)
	if err != nil {
		return repoError(err, "Post not found")
	}

	var (
		subscription *models.Subscription
		isRead       bool
	)
	if viewer := middleware.CurrentUser(c); viewer != nil {
		subscription, err = h.subscriptionRepository.GetSubscription(ctx, viewer.ID, blog.ID)
		switch {
		case err == nil:
			isRead, err = h.subscriptionRepository.IsRead(ctx, subscription.ID, post.ID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		case !errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"blog":         toBlogResponse(blog),
			"post":         post,
			"subscription": subscription,
			"is_read":      isRead,
		},
	})
}

// UpdatePost edits title and text of a post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	_, blog, err := ownedBlog(c, h.blogRepository)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetBlogPost(ctx, blog.ID, postID)
	if err != nil {
		return repoError(err, "Post not found")
	}
	if err := h.postService.Update(ctx, post, req); err != nil {
		return repoError(err, "Post not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post": post}})
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	_, blog, err := ownedBlog(c, h.blogRepository)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetBlogPost(ctx, blog.ID, postID)
	if err != nil {
		return repoError(err, "Post not found")
	}
	if err := h.postRepository.DeletePost(ctx, post.ID); err != nil {
		return repoError(err, "Post not found")
	}
	return c.NoContent(http.StatusNoContent)
}
