package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/blogs/backend/internal/middleware"
	"github.com/anonto42/blogs/backend/internal/models"
	"github.com/anonto42/blogs/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PageSize is the fixed number of items on every listing page.
const PageSize = 20

// parsePage reads ?page=N. Missing means the first page; anything else that is
// not a positive integer is a 404, as is a page past the end.
func parsePage(c echo.Context) (int, error) {
	raw := c.QueryParam("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Invalid page")
	}
	return page, nil
}

func pageOffset(page int) int {
	return (page - 1) * PageSize
}

// checkPage rejects pages beyond the last one. The first page always exists.
func checkPage(page int, total int64) error {
	if page > 1 && int64(pageOffset(page)) >= total {
		return echo.NewHTTPError(http.StatusNotFound, "Invalid page")
	}
	return nil
}

func pageMeta(page int, total int64) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(PageSize)))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    PageSize,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}

// requireUser returns the authenticated viewer or a 401.
func requireUser(c echo.Context) (*models.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return user, nil
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	return uint(id), nil
}

// repoError turns a repository error into an HTTP error, using notFound as the 404 message.
func repoError(err error, notFound string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// fieldError reports a form-style validation failure on a single field.
func fieldError(field, message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": map[string]string{field: message}})
}

func blogBySlug(c echo.Context, blogs repositories.BlogRepository) (*models.Blog, error) {
	blog, err := blogs.GetBlogBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return nil, repoError(err, "Blog not found")
	}
	return blog, nil
}

// ownedBlog resolves the blog by slug and requires the viewer to own it.
func ownedBlog(c echo.Context, blogs repositories.BlogRepository) (*models.User, *models.Blog, error) {
	user, err := requireUser(c)
	if err != nil {
		return nil, nil, err
	}
	blog, err := blogBySlug(c, blogs)
	if err != nil {
		return nil, nil, err
	}
	if blog.OwnerID != user.ID {
		return nil, nil, echo.NewHTTPError(http.StatusForbidden, "You are not the owner of this blog")
	}
	return user, blog, nil
}
