package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/domain"
)

// pageParams reads page/page_size query parameters with sane defaults.
// Usecases clamp out-of-range values, so parsing failures just fall back.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		pageSize = 20
	}
	return page, pageSize
}

func idParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func paginated[T any](items []T, total int64, page, pageSize int) domain.PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return domain.PaginatedResult[T]{
		Data:       items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
