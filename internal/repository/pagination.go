package repository

import "strings"

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ListParams carries pagination, sorting and search options for list queries.
type ListParams struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
	Search string
}

// Normalize clamps page/limit and defaults the sort direction.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if strings.ToLower(p.Order) != "asc" {
		p.Order = "desc"
	} else {
		p.Order = "asc"
	}
	return p
}

// Offset returns the row offset for the normalized page/limit.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// orderClause builds an ORDER BY expression, falling back to fallback when
// the requested column is not in the allowed set. Column names never come
// from user input unchecked.
func (p ListParams) orderClause(allowed map[string]bool, fallback string) string {
	col := p.SortBy
	if !allowed[col] {
		col = fallback
	}
	return col + " " + p.Order
}
