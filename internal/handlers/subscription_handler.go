package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/blogs/backend/internal/models"
	"github.com/anonto42/blogs/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedPath is where mark-as-read redirects to.
const FeedPath = "/api/v1/feed"

// SubscriptionHandler handles subscribe/unsubscribe and read-marking requests
type SubscriptionHandler struct {
	blogRepository         repositories.BlogRepository
	postRepository         repositories.PostRepository
	subscriptionRepository repositories.SubscriptionRepository
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(
	blogRepo repositories.BlogRepository,
	postRepo repositories.PostRepository,
	subscriptionRepo repositories.SubscriptionRepository,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		blogRepository:         blogRepo,
		postRepository:         postRepo,
		subscriptionRepository: subscriptionRepo,
	}
}

// RegisterSubscriptionRoutes registers subscription routes
func (h *SubscriptionHandler) RegisterSubscriptionRoutes(g *echo.Group) {
	g.POST("/blogs/:slug/subscription", h.Subscribe)
	g.DELETE("/blogs/:slug/subscription", h.Unsubscribe)
	g.POST("/posts/:id/read", h.MarkRead)
}

// Subscribe subscribes the viewer to the blog
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	blog, err := blogBySlug(c, h.blogRepository)
	if err != nil {
		return err
	}

	sub := &models.Subscription{OwnerID: user.ID, BlogID: blog.ID}
	if err := h.subscriptionRepository.CreateSubscription(c.Request().Context(), sub); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return fieldError("blog", "already subscribed to this blog")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"subscription": sub}})
}

// Unsubscribe removes the viewer's own subscription to the blog
func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	blog, err := blogBySlug(c, h.blogRepository)
	if err != nil {
		return err
	}

	if err := h.subscriptionRepository.DeleteSubscription(c.Request().Context(), user.ID, blog.ID); err != nil {
		return repoError(err, "Subscription not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkRead adds the post to the viewer's read-set for its blog and redirects to the feed
func (h *SubscriptionHandler) MarkRead(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return repoError(err, "Post not found")
	}
	sub, err := h.subscriptionRepository.GetSubscription(ctx, user.ID, post.BlogID)
	if err != nil {
		return repoError(err, "Subscription not found")
	}
	if err := h.subscriptionRepository.MarkRead(ctx, sub, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusSeeOther, FeedPath)
}
