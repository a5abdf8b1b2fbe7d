package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/socialconnect/backend/internal/middleware"
	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/labstack/echo/v4"
)

const (
	defaultLimit = 20
	maxLimit     = 50
)

// currentUser returns the authenticated user or a 401.
func currentUser(c echo.Context) (*models.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return user, nil
}

func parseIDParam(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+label+" ID")
	}
	return uint(id), nil
}

// httpError renders service errors. Unknown errors never leak their text.
func httpError(err error) error {
	if e, ok := errorx.As(err); ok {
		return echo.NewHTTPError(e.Code.HTTPStatus(), e.Message)
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he
	}
	return echo.NewHTTPError(http.StatusInternalServerError, errorx.Unknown.Message)
}

// bindAndValidate binds the request body into req and runs e.Validator on it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return httpError(err)
	}
	return nil
}

type pagination struct {
	page  int
	limit int
}

func parsePagination(c echo.Context) pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return pagination{page: page, limit: limit}
}

// paginate slices an ordered sequence and builds the response meta block.
func paginate[T any](c echo.Context, items []T) ([]T, echo.Map) {
	p := parsePagination(c)
	totalItems := len(items)
	totalPages := int(math.Ceil(float64(totalItems) / float64(p.limit)))

	start := min((p.page-1)*p.limit, totalItems)
	end := min(start+p.limit, totalItems)

	return items[start:end], echo.Map{
		"currentPage":     p.page,
		"totalPages":      totalPages,
		"totalItems":      totalItems,
		"itemsPerPage":    p.limit,
		"hasNextPage":     p.page < totalPages,
		"hasPreviousPage": p.page > 1,
	}
}

func paginated[T any](c echo.Context, key string, items []T) error {
	page, meta := paginate(c, items)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{key: page},
		"meta":    meta,
	})
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}
