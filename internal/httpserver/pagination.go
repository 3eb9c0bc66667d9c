package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kol-marketplace/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

func listParams(c *gin.Context) domain.ListParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return domain.ListParams{
		Page:      page,
		Limit:     limit,
		SortField: c.Query("sortField"),
		SortOrder: c.Query("sortOrder"),
	}
}

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// paginated writes the list response envelope.
func paginated(c *gin.Context, data interface{}, total int, params domain.ListParams) {
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"pagination": pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}
