package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gooman/config"
	"gooman/infras/otel/mocks"
	userMocks "gooman/internal/domains/user/mocks"
	"gooman/internal/domains/user/model"
	"gooman/internal/domains/user/model/dto"
	"gooman/internal/domains/user/service"
	cacheMocks "gooman/shared/cache/mocks"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	"gooman/shared/failure"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestUserService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.User{
		{ID: "u-1", Email: "a@gooman.om", Role: constant.RoleUser, IsActive: true},
	}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "a@gooman.om", res.Users[0].Email)
}

func TestUserService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "user:get:u-1", gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Role: constant.RoleAdmin}, nil)

		res, err := svc.Get(context.Background(), "u-1")

		assert.NoError(t, err)
		assert.Equal(t, constant.RoleAdmin, res.Role)
		assert.Nil(t, res.LastLogin)
	})

	t.Run("missing", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "u-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	inactive := false
	admin := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	t.Run("deactivate", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &inactive, fields[model.FieldIsActive])
				assert.NotContains(t, fields, model.FieldRole)

				return nil
			})

		err := svc.Update(admin, dto.UpdateUserRequest{IsActive: &inactive}, "u-1")

		assert.NoError(t, err)
	})

	t.Run("empty request", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(admin, dto.UpdateUserRequest{}, "u-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("own account", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(admin, dto.UpdateUserRequest{Role: constant.RoleUser}, "admin-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(admin, dto.UpdateUserRequest{Role: constant.RoleAdmin}, "u-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
