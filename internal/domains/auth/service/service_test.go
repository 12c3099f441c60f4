package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gooman/config"
	"gooman/infras/jwt"
	jwtMocks "gooman/infras/jwt/mocks"
	"gooman/infras/otel/mocks"
	postgresMocks "gooman/infras/postgres/mocks"
	"gooman/internal/domains/auth/model/dto"
	"gooman/internal/domains/auth/service"
	profileMocks "gooman/internal/domains/profile/mocks"
	profileModel "gooman/internal/domains/profile/model"
	userMocks "gooman/internal/domains/user/mocks"
	userModel "gooman/internal/domains/user/model"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	"gooman/shared/failure"
	"gooman/shared/password"
)

type fixture struct {
	svc      service.Auth
	users    *userMocks.MockUser
	profiles *profileMocks.MockProfile
	db       *postgresMocks.MockTransactor
	jwt      *jwtMocks.MockJWT
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		users:    userMocks.NewMockUser(ctrl),
		profiles: profileMocks.NewMockProfile(ctrl),
		db:       postgresMocks.NewMockTransactor(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.users, f.profiles, f.db, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func runTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

var tokenPair = &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Email: "aisha@gooman.om", Password: "secret1", FullName: "Aisha Al Balushi"}

	t.Run("creates user and profile then signs in", func(t *testing.T) {
		f := newFixture(t)

		var insertedUser userModel.User

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, user userModel.User) error {
				insertedUser = user

				return nil
			})
		f.profiles.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, profile profileModel.Profile) error {
				assert.Equal(t, insertedUser.ID, profile.UserID)
				assert.Equal(t, "Aisha Al Balushi", *profile.FullName)

				return nil
			})
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), "aisha@gooman.om", constant.RoleUser).Return(tokenPair, nil)

		res, err := f.svc.Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, insertedUser.ID, res.User.ID)
		assert.Equal(t, "Aisha Al Balushi", res.User.FullName)
		assert.NoError(t, password.Verify("secret1", insertedUser.Password))
		assert.True(t, insertedUser.IsActive)
	})

	t.Run("email taken", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Register(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.EqualError(t, err, dto.MessageAlreadyRegistered)
	})

	t.Run("email taken concurrently", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation, Message: "duplicate key value violates unique constraint \"users_email_key\""})

		_, err := f.svc.Register(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.EqualError(t, err, dto.MessageAlreadyRegistered)
	})

	t.Run("profile insert fails", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.profiles.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Register(context.Background(), req)

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("secret1")
	require.NoError(t, err)

	fullName := "Aisha Al Balushi"
	active := userModel.User{ID: "u-1", Email: "aisha@gooman.om", Password: hashed, Role: constant.RoleUser, IsActive: true}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, userModel.FieldLastLogin)

				return nil
			})
		f.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{UserID: "u-1", FullName: &fullName}, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "u-1", "aisha@gooman.om", constant.RoleUser).Return(tokenPair, nil)

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "aisha@gooman.om", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "refresh", res.RefreshToken)
		assert.Equal(t, fullName, res.User.FullName)
	})

	t.Run("last login failure does not block sign in", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("read only"))
		f.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{}, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair, nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "aisha@gooman.om", Password: "secret1"})

		assert.NoError(t, err)
	})

	tests := []struct {
		name     string
		user     userModel.User
		password string
		wantCode int
		wantMsg  string
	}{
		{name: "wrong password", user: active, password: "secret2", wantCode: http.StatusBadRequest, wantMsg: dto.MessageInvalidCredentials},
		{name: "unknown email", user: userModel.User{}, password: "secret1", wantCode: http.StatusBadRequest, wantMsg: dto.MessageInvalidCredentials},
		{
			name:     "deactivated",
			user:     userModel.User{ID: "u-1", Password: hashed, IsActive: false},
			password: "secret1",
			wantCode: http.StatusForbidden,
			wantMsg:  "user account is deactivated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.user, nil)

			_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "aisha@gooman.om", Password: tt.password})

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates and returns identity", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh").Return(tokenPair, &jwt.Claims{UserID: "u-1"}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Email: "aisha@gooman.om", Role: constant.RoleUser}, nil)
		f.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.NoError(t, err)
		assert.Equal(t, "u-1", res.User.ID)
		assert.Equal(t, "access", res.AccessToken)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any(), gomock.Any()).Return(nil, nil, jwt.ErrRevokedToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "old"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes current token", func(t *testing.T) {
		f := newFixture(t)

		claims := &jwt.Claims{UserID: "u-1"}
		ctx := context.WithValue(context.Background(), constant.ContextKeyClaims, claims)

		f.jwt.EXPECT().Revoke(gomock.Any(), claims).Return(nil)

		assert.NoError(t, f.svc.Logout(ctx))
	})

	t.Run("no session", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Logout(context.Background())

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)
	fullName := "Aisha Al Balushi"

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Email: "aisha@gooman.om", Role: constant.RoleAdmin}, nil)
	f.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{FullName: &fullName}, nil)

	res, err := f.svc.Me(context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1"))

	require.NoError(t, err)
	assert.Equal(t, dto.IdentityResponse{ID: "u-1", Email: "aisha@gooman.om", FullName: fullName, Role: constant.RoleAdmin}, res)
}

func TestAuthService_ChangePassword(t *testing.T) {
	hashed, err := password.Hash("secret1")
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Password: hashed}, nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				newHash, _ := fields[userModel.FieldPassword].(string)
				assert.NoError(t, password.Verify("secret2", newHash))

				return nil
			})

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"})

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Password: hashed}, nil)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "secret2"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
