package pagination

import (
	"math"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a page request. SortBy is an API field name, mapped to a column
// through a whitelist so it never reaches SQL verbatim.
type Page struct {
	Page      int    `form:"page" validate:"omitempty,min=1"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// Meta is returned next to every paginated list.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	p.SortOrder = strings.ToLower(strings.TrimSpace(p.SortOrder))
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
	return p
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// OrderClause resolves SortBy against columns and falls back to fallback.
// The id tiebreaker keeps page boundaries stable.
func (p Page) OrderClause(columns map[string]string, fallback string) string {
	col, ok := columns[p.SortBy]
	if !ok {
		col = fallback
	}
	dir := "DESC"
	if strings.EqualFold(p.SortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir + ", id " + dir
}

func NewMeta(p Page, total int64) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}
