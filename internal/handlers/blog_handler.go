package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/blogs/backend/internal/middleware"
	"github.com/anonto42/blogs/backend/internal/models"
	"github.com/anonto42/blogs/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// BlogHandler handles HTTP requests related to blogs
type BlogHandler struct {
	blogRepository repositories.BlogRepository
	postRepository repositories.PostRepository
}

// BlogResponse is a blog with its owner's public profile
type BlogResponse struct {
	models.Blog
	Owner models.UserCompact `json:"owner"`
}

func toBlogResponse(blog *models.Blog) BlogResponse {
	resp := BlogResponse{Blog: *blog}
	if blog.Owner != nil {
		resp.Owner = blog.Owner.ToCompact()
	}
	return resp
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogRepo repositories.BlogRepository, postRepo repositories.PostRepository) *BlogHandler {
	return &BlogHandler{
		blogRepository: blogRepo,
		postRepository: postRepo,
	}
}

// RegisterBlogRoutes registers blog-related routes
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group) {
	g.GET("/blogs", h.ListBlogs)
	g.POST("/blogs", h.CreateBlog)
	g.GET("/blogs/:slug", h.GetBlog)
	g.PUT("/blogs/:slug", h.UpdateBlog)
	g.DELETE("/blogs/:slug", h.DeleteBlog)
}

// ListBlogs lists all blogs; signed-in viewers also get has_subscription per blog
func (h *BlogHandler) ListBlogs(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var (
		blogs []models.Blog
		total int64
	)
	ctx := c.Request().Context()
	if viewer := middleware.CurrentUser(c); viewer != nil {
		blogs, total, err = h.blogRepository.ListBlogsForViewer(ctx, viewer.ID, pageOffset(page), PageSize)
	} else {
		blogs, total, err = h.blogRepository.ListBlogs(ctx, pageOffset(page), PageSize)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := checkPage(page, total); err != nil {
		return err
	}

	items := make([]BlogResponse, len(blogs))
	for i := range blogs {
		items[i] = toBlogResponse(&blogs[i])
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"blogs": items},
		"meta":    pageMeta(page, total),
	})
}

// GetBlog returns a blog with a page of its posts
func (h *BlogHandler) GetBlog(c echo.Context) error {
	blog, err := blogBySlug(c, h.blogRepository)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	posts, total, err := h.postRepository.ListBlogPosts(c.Request().Context(), blog.ID, pageOffset(page), PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := checkPage(page, total); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"blog": toBlogResponse(blog), "posts": posts},
		"meta":    pageMeta(page, total),
	})
}

// CreateBlog creates the authenticated user's blog
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blog := &models.Blog{OwnerID: user.ID, Name: req.Name}
	if err := h.blogRepository.CreateBlog(c.Request().Context(), blog); err != nil {
		return h.blogWriteError(c, user, err)
	}
	blog.Owner = user

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"blog": toBlogResponse(blog)}})
}

// UpdateBlog renames the blog; its slug follows the new name
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	user, blog, err := ownedBlog(c, h.blogRepository)
	if err != nil {
		return err
	}

	var req models.UpdateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blog.Name = req.Name
	if err := h.blogRepository.UpdateBlog(c.Request().Context(), blog); err != nil {
		return h.blogWriteError(c, user, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"blog": toBlogResponse(blog)}})
}

// DeleteBlog deletes the blog along with its posts and subscriptions
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	_, blog, err := ownedBlog(c, h.blogRepository)
	if err != nil {
		return err
	}

	if err := h.blogRepository.DeleteBlog(c.Request().Context(), blog.ID); err != nil {
		return repoError(err, "Blog not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// blogWriteError reports constraint violations as validation failures on the offending field.
func (h *BlogHandler) blogWriteError(c echo.Context, user *models.User, err error) error {
	switch {
	case errors.Is(err, models.ErrEmptySlug), errors.Is(err, models.ErrSlugTooLong):
		return fieldError("name", err.Error())
	case errors.Is(err, repositories.ErrDuplicate):
		existing, ownerErr := h.blogRepository.GetBlogByOwner(c.Request().Context(), user.ID)
		if ownerErr == nil && c.Request().Method == http.MethodPost && existing != nil {
			return fieldError("owner", "user already has a blog")
		}
		return fieldError("name", "blog with this name already exists")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
