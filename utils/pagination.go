package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads the 1-based `page` and `limit` query params,
// falling back to defaults on absence or garbage input.
func ParsePagination(c *gin.Context, defaultLimit int) Pagination {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes the page count for a result set of `count` rows.
func (p Pagination) TotalPages(count int64) int {
	pages := int(count) / p.Limit
	if int(count)%p.Limit != 0 {
		pages++
	}
	return pages
}
