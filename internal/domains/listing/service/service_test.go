package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gooman/config"
	"gooman/infras/otel/mocks"
	listingMocks "gooman/internal/domains/listing/mocks"
	"gooman/internal/domains/listing/model"
	"gooman/internal/domains/listing/model/dto"
	"gooman/internal/domains/listing/service"
	cacheMocks "gooman/shared/cache/mocks"
	gDto "gooman/shared/dto"
	"gooman/shared/failure"
)

func newService(t *testing.T) (service.Listing, *listingMocks.MockListing, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := listingMocks.NewMockListing(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func activeOnly(t *testing.T) gomock.Matcher {
	t.Helper()

	return gomock.Cond(func(x any) bool {
		filter, ok := x.(gDto.FilterGroup)
		if !ok {
			return false
		}

		where, args := filter.GetWhereClause()

		return where == "(hotels.is_active = :is_active)" && args["is_active"] == true
	})
}

func TestListingService_GetHotels(t *testing.T) {
	price := 45.5
	active := true

	t.Run("active filter is applied", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().CountHotels(gomock.Any(), activeOnly(t)).Return(2, nil)
		mockRepo.EXPECT().GetHotels(gomock.Any(), gomock.Any(), activeOnly(t)).Return([]model.Hotel{
			{ID: "h-1", Name: "Al Bustan", PricePerNight: 120},
			{ID: "h-2", Name: "Sifawy", PricePerNight: price},
		}, nil)

		res, err := svc.GetHotels(context.Background(), gDto.QueryParams{}, &active)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
		assert.Len(t, res.Hotels, 2)
		assert.Equal(t, "Sifawy", res.Hotels[1].Name)
		assert.Equal(t, price, res.Hotels[1].PricePerNight)
	})

	t.Run("no filter without active", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		emptyGroup := gomock.Cond(func(x any) bool {
			filter, ok := x.(gDto.FilterGroup)

			return ok && len(filter.Filters) == 0
		})

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().CountHotels(gomock.Any(), emptyGroup).Return(0, nil)
		mockRepo.EXPECT().GetHotels(gomock.Any(), gomock.Any(), emptyGroup).Return(nil, nil)

		res, err := svc.GetHotels(context.Background(), gDto.QueryParams{}, nil)

		assert.NoError(t, err)
		assert.Empty(t, res.Hotels)
		assert.NotNil(t, res.Hotels)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		svc, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				cached, _ := value.(*dto.GetHotelsResponse)
				cached.TotalData = 7

				return nil
			})

		res, err := svc.GetHotels(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, nil)

		assert.NoError(t, err)
		assert.Equal(t, 7, res.TotalData)
	})

	t.Run("count error", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().CountHotels(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))

		_, err := svc.GetHotels(context.Background(), gDto.QueryParams{}, nil)

		assert.ErrorContains(t, err, "database error")
	})
}

func TestListingService_GetGuides(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)
	rate := 30.0

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	mockRepo.EXPECT().CountGuides(gomock.Any(), gomock.Any()).Return(3, nil)
	mockRepo.EXPECT().GetGuides(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Guide{
		{ID: "g-1", Name: "Salim", PricePerDay: &rate, Languages: []string{"ar", "en"}},
	}, nil)

	res, err := svc.GetGuides(context.Background(), gDto.QueryParams{Page: 1, Limit: 1}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, []string{"ar", "en"}, res.Guides[0].Languages)
	assert.Equal(t, &rate, res.Guides[0].PricePerDay)
}

func TestListingService_GetExperiences(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	mockRepo.EXPECT().CountExperiences(gomock.Any(), gomock.Any()).Return(1, nil)
	mockRepo.EXPECT().GetExperiences(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("database error"))

	_, err := svc.GetExperiences(context.Background(), gDto.QueryParams{}, nil)

	assert.ErrorContains(t, err, "failed to get listings")
}

func TestListingService_GetHotel(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "listing:hotel:get:h-1", gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().GetHotel(gomock.Any(), gomock.Any()).Return(model.Hotel{ID: "h-1", Name: "Al Bustan"}, nil)

		res, err := svc.GetHotel(context.Background(), "h-1")

		assert.NoError(t, err)
		assert.Equal(t, "Al Bustan", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().GetHotel(gomock.Any(), gomock.Any()).Return(model.Hotel{}, nil)

		_, err := svc.GetHotel(context.Background(), "missing")

		var fail *failure.Failure
		assert.ErrorAs(t, err, &fail)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestListingService_GetGuide(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	mockRepo.EXPECT().GetGuide(gomock.Any(), gomock.Any()).Return(model.Guide{}, errors.New("database error"))

	_, err := svc.GetGuide(context.Background(), "g-1")

	assert.ErrorContains(t, err, "failed to get guide")
}

func TestListingService_GetExperience(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	mockRepo.EXPECT().GetExperience(gomock.Any(), gomock.Any()).
		Return(model.Experience{ID: "e-1", Title: "Wahiba dunes", Price: 25}, nil)

	res, err := svc.GetExperience(context.Background(), "e-1")

	assert.NoError(t, err)
	assert.Equal(t, "Wahiba dunes", res.Title)
	assert.Equal(t, 25.0, res.Price)
}
