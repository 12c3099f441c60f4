package shared_test

import (
	"context"
	"errors"
	"gooman/shared"
	"gooman/shared/cache/mocks"
	"gooman/shared/constant"
	"gooman/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	truthy, falsy := true, false

	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: &truthy},
		{input: "1", expected: &truthy},
		{input: "T", expected: &truthy},
		{input: "false", expected: &falsy},
		{input: "0", expected: &falsy},
		{input: "yes", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(10, 0))
	assert.Equal(t, 1, shared.CalculateTotalPage(10, 10))
	assert.Equal(t, 2, shared.CalculateTotalPage(11, 10))
}

func TestTransformFields(t *testing.T) {
	type profileUpdate struct {
		FullName string  `db:"full_name"`
		Phone    *string `db:"phone"`
		Language string  `db:"preferred_language"`
		Ignored  string
	}

	phone := "+968 9000 0000"

	fields := shared.TransformFields(profileUpdate{FullName: "Amal", Phone: &phone, Ignored: "x"})

	assert.Equal(t, "Amal", fields["full_name"])
	assert.Equal(t, &phone, fields["phone"])
	assert.NotContains(t, fields, "preferred_language")
	assert.NotContains(t, fields, "Ignored")
	assert.IsType(t, time.Time{}, fields[constant.FieldUpdatedAt])
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b-1", "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "hotels", shared.BuildCacheKey("hotels"))
	assert.Equal(t, "bookings:user-1:mine", shared.BuildCacheKey("bookings", "user-1", "mine"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "rating", SortDir: dto.SortDirDesc}

	first := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "is_active", Operator: dto.FilterOperatorEq, Value: true},
		},
	}

	second := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "is_active", Operator: dto.FilterOperatorEq, Value: false},
		},
	}

	assert.Equal(t, shared.BuildCacheKeyWithQuery("hotels", params, first), shared.BuildCacheKeyWithQuery("hotels", params, first))
	assert.NotEqual(t, shared.BuildCacheKeyWithQuery("hotels", params, first), shared.BuildCacheKeyWithQuery("hotels", params, second))
	assert.Contains(t, shared.BuildCacheKeyWithQuery("hotels", params, first), "hotels:1:10:rating:DESC")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "bookings:user-1*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "bookings:user-1")

	redisCache.EXPECT().Clear(gomock.Any(), "hotels*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "hotels")
}
