package dto_test

import (
	"gooman/shared/constant"
	"gooman/shared/dto"
	"gooman/shared/model"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2025, 3, 2, 8, 30, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, updatedAt.Format(constant.DateFormat), metadata.UpdatedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		rawQuery       string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			rawQuery: "page=2&limit=20&sort_by=name&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "defaults not applied",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			rawQuery:       "page=-1&limit=abc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "unknown sort direction ignored",
			rawQuery: "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/hotels?"+tt.rawQuery, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group", func(t *testing.T) {
		group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

		where, args := group.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("table qualified equality and in", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Table: "bookings", Field: "user_id", Operator: dto.FilterOperatorEq, Value: "u-1"},
				dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}},
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(bookings.user_id = :user_id AND status IN (:status_0, :status_1) )", where)
		assert.Equal(t, map[string]any{"user_id": "u-1", "status_0": "pending", "status_1": "confirmed"}, args)
	})

	t.Run("nested group", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "is_active", Operator: dto.FilterOperatorEq, Value: true},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{Field: "hotel_id", Operator: dto.FilterIsNotNull},
						dto.Filter{Field: "guide_id", Operator: dto.FilterIsNotNull},
					},
				},
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(is_active = :is_active AND (hotel_id IS NOT NULL OR guide_id IS NOT NULL))", where)
		assert.Equal(t, map[string]any{"is_active": true}, args)
	})
}
