package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

type Pagination struct {
	Page  int
	Limit int
}

// PaginationFromContext reads page/limit query parameters, clamping to sane
// defaults.
func PaginationFromContext(c echo.Context) *Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return &Pagination{
		Page:  page,
		Limit: limit,
	}
}

func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
