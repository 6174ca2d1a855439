package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParams_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       ListParams
		expected ListParams
	}{
		{
			name:     "zero values get defaults",
			in:       ListParams{},
			expected: ListParams{Page: 1, Limit: 20, Order: "desc"},
		},
		{
			name:     "limit is capped",
			in:       ListParams{Page: 2, Limit: 500, Order: "asc"},
			expected: ListParams{Page: 2, Limit: 100, Order: "asc"},
		},
		{
			name:     "negative page resets",
			in:       ListParams{Page: -3, Limit: 10},
			expected: ListParams{Page: 1, Limit: 10, Order: "desc"},
		},
		{
			name:     "order is case insensitive",
			in:       ListParams{Page: 1, Limit: 10, Order: "ASC"},
			expected: ListParams{Page: 1, Limit: 10, Order: "asc"},
		},
		{
			name:     "garbage order falls back to desc",
			in:       ListParams{Page: 1, Limit: 10, Order: "sideways"},
			expected: ListParams{Page: 1, Limit: 10, Order: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Normalize())
		})
	}
}

func TestListParams_Offset(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, ListParams{Page: 3, Limit: 20}.Offset())
}

func TestListParams_OrderClause(t *testing.T) {
	allowed := map[string]bool{"id": true, "created_at": true}

	p := ListParams{SortBy: "created_at", Order: "asc"}.Normalize()
	assert.Equal(t, "created_at asc", p.orderClause(allowed, "id"))

	// Unknown columns never reach the query.
	p = ListParams{SortBy: "password_hash; drop table users"}.Normalize()
	assert.Equal(t, "id desc", p.orderClause(allowed, "id"))
}
