package handlers

import (
	"net/http"

	"github.com/anonto42/blogs/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository repositories.PostRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository) *FeedHandler {
	return &FeedHandler{postRepository: postRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns posts from every subscribed blog, newest first, each flagged is_read
func (h *FeedHandler) GetFeed(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	posts, total, err := h.postRepository.GetFeed(c.Request().Context(), user.ID, pageOffset(page), PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := checkPage(page, total); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    pageMeta(page, total),
	})
}
