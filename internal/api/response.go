package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       any                    `json:"data,omitempty"`
	Errors     []apperrors.FieldError `json:"errors,omitempty"`
	Pagination *Pagination            `json:"pagination,omitempty"`
}

// Pagination describes the page a list endpoint returned.
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	PageSize        int   `json:"pageSize"`
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// newPagination derives the pagination block from the page request and the
// total match count. An empty result set still reports totalPages 0 and no
// navigable pages.
func newPagination(page, limit int, total int64) *Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{
		CurrentPage:     page,
		PageSize:        limit,
		TotalItems:      total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

func respondOK(ctx echo.Context, message string, data any) error {
	return ctx.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func respondCreated(ctx echo.Context, message string, data any) error {
	return ctx.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func respondPage(ctx echo.Context, message string, data any, pagination *Pagination) error {
	return ctx.JSON(http.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// pageParams parses ?page and ?limit with the catalog's defaults: page 1,
// limit 10, limit capped at 100. Malformed values fall back to the defaults.
func pageParams(ctx echo.Context) (page, limit int) {
	page = queryInt(ctx, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = queryInt(ctx, "limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// clampPage pulls an out-of-range page back to the last real page once the
// total is known, so the pagination block stays consistent with the counts.
// An empty result set clamps to page 1.
func clampPage(page, limit int, total int64) int {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func queryInt(ctx echo.Context, name string, fallback int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
