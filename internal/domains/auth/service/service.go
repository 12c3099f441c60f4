package service

import (
	"context"
	"fmt"
	"gooman/config"
	"gooman/infras/jwt"
	"gooman/infras/otel"
	"gooman/infras/postgres"
	"gooman/internal/domains/auth/model/dto"
	profileModel "gooman/internal/domains/profile/model"
	profileDto "gooman/internal/domains/profile/model/dto"
	profileRepo "gooman/internal/domains/profile/repository"
	userModel "gooman/internal/domains/user/model"
	userDto "gooman/internal/domains/user/model/dto"
	userRepo "gooman/internal/domains/user/repository"
	"gooman/shared"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	"gooman/shared/failure"
	"gooman/shared/password"
	"gooman/shared/timezone"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.SessionResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.SessionResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.SessionResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (dto.IdentityResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo    userRepo.User
	profileRepo profileRepo.Profile
	db          postgres.Transactor
	cfg         *config.Config
	otel        otel.Otel
	jwtService  jwt.JWT
}

func New(
	userRepo userRepo.User,
	profileRepo profileRepo.Profile,
	db postgres.Transactor,
	cfg *config.Config,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		db:          db,
		cfg:         cfg,
		otel:        otel,
		jwtService:  jwt,
	}
}

// Register creates the user and its profile in one transaction and signs the user in.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict(dto.MessageAlreadyRegistered) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := userDto.NewUser(req.Email, hashedPassword)
	profile := profileDto.NewProfile(user.ID, req.Email, req.FullName)

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepo.InsertTx(ctx, tx, user); err != nil {
			return err
		}

		return s.profileRepo.InsertTx(ctx, tx, profile)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		if failure.GetCode(failure.FromPq(err)) == http.StatusConflict {
			return res, failure.Conflict(dto.MessageAlreadyRegistered) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	return s.session(ctx, user, profile)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString(dto.MessageInvalidCredentials) // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString(dto.MessageInvalidCredentials) // nolint:wrapcheck
	}

	if !user.IsActive {
		return res, failure.Forbidden("user account is deactivated") // nolint:wrapcheck
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	if err := s.userRepo.Update(ctx, shared.TransformFields(lastLogin), userFilter(user.ID)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	profile, err := s.profile(ctx, user.ID)
	if err != nil {
		return res, err
	}

	return s.session(ctx, user, profile)
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, claims, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	identity, err := s.Me(context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID))
	if err != nil {
		return res, err
	}

	res.FromTokenPair(tokenPair, identity)

	return res, nil
}

// Logout revokes the access token the request was authenticated with.
func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, ok := ctx.Value(constant.ContextKeyClaims).(*jwt.Claims)
	if !ok || claims == nil {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if err = s.jwtService.Revoke(ctx, claims); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *serviceImpl) Me(ctx context.Context) (res dto.IdentityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.user(ctx, userID)
	if err != nil {
		return res, err
	}

	profile, err := s.profile(ctx, user.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(user, profile)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.user(ctx, userID)
	if err != nil {
		return err
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}
	if err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword), userFilter(user.ID)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) session(ctx context.Context, user userModel.User, profile profileModel.Profile) (res dto.SessionResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	var identity dto.IdentityResponse
	identity.FromModel(user, profile)

	res.FromTokenPair(tokenPair, identity)

	return res, nil
}

func (s *serviceImpl) user(ctx context.Context, userID string) (userModel.User, error) {
	if userID == constant.Empty {
		return userModel.User{}, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, userFilter(userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

// profile returns an empty profile when the user has none.
func (s *serviceImpl) profile(ctx context.Context, userID string) (profileModel.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, shared.FilterByID(userID, profileModel.FieldUserID, profileModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get profile")

		return profile, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func emailFilter(email string) gDto.FilterGroup {
	return shared.FilterByID(email, userModel.FieldEmail, userModel.TableName)
}

func userFilter(id string) gDto.FilterGroup {
	return shared.FilterByID(id, userModel.FieldID, userModel.TableName)
}
