package shared

import (
	"math"
	"net/url"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// PageRequest carries normalized paging parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageRequest reads page/limit query parameters, falling back to the
// defaults (1/10) when absent or non-numeric. Limit is capped at 100.
func ParsePageRequest(query url.Values) PageRequest {
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// PageMeta contains metadata for paginated listings.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta computes listing metadata for a page request and total count.
func NewPageMeta(req PageRequest, total int) PageMeta {
	totalPages := int(math.Ceil(float64(total) / float64(req.Limit)))
	return PageMeta{Total: total, Page: req.Page, Limit: req.Limit, TotalPages: totalPages}
}
