package service

import (
	"context"
	"fmt"
	"gooman/config"
	"gooman/infras/otel"
	"gooman/infras/s3"
	"gooman/internal/domains/profile/model"
	"gooman/internal/domains/profile/model/dto"
	"gooman/internal/domains/profile/repository"
	"gooman/shared"
	"gooman/shared/cache"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	"gooman/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const cacheGetProfile = "profile:get"

var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type Profile interface {
	GetMine(ctx context.Context) (dto.ProfileResponse, error)
	UpdateMine(ctx context.Context, req dto.UpdateProfileRequest) (dto.ProfileResponse, error)
	UploadAvatar(ctx context.Context, req dto.UploadAvatarRequest) (dto.ProfileResponse, error)
}

type serviceImpl struct {
	repo  repository.Profile
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Profile, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Profile {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) GetMine(ctx context.Context) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheGetProfile, user)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for profile")

		return res, nil
	}

	profile, err := s.get(ctx, user)
	if err != nil {
		return res, err
	}

	res.FromModel(profile)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateMine(ctx context.Context, req dto.UpdateProfileRequest) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateProfileRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.update(ctx, user, shared.TransformFields(req))
}

func (s *serviceImpl) UploadAvatar(ctx context.Context, req dto.UploadAvatarRequest) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadAvatar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.get(ctx, user)
	if err != nil {
		return res, err
	}

	fileName := user + "-" + uuid.NewString() + avatarExtensions[req.ContentType]

	url, err := s.s3.PutObject(ctx, s.cfg.External.S3.AvatarDirectory, fileName, req.ContentType, req.Data)
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("failed to upload avatar")

		return res, fmt.Errorf("failed to upload avatar: %w", err)
	}

	res, err = s.update(ctx, user, shared.TransformFields(dto.UpdateAvatarRequest{AvatarURL: url}))
	if err != nil {
		return res, err
	}

	if current.AvatarURL != nil {
		go func(previous string) {
			key := s.s3.ObjectKeyFromURL(previous)
			if key == constant.Empty {
				return
			}

			if err := s.s3.DeleteObject(context.WithoutCancel(ctx), key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to delete previous avatar")
			}
		}(*current.AvatarURL)
	}

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, user string) (model.Profile, error) {
	profile, err := s.repo.Get(ctx, ownFilter(user))
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("failed to get profile")

		return profile, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return profile, failure.NotFound("profile not found") // nolint:wrapcheck
	}

	return profile, nil
}

func (s *serviceImpl) update(ctx context.Context, user string, fields map[string]any) (res dto.ProfileResponse, err error) {
	if err = s.repo.Update(ctx, fields, ownFilter(user)); err != nil {
		log.Error().Err(err).Str("user", user).Msg("failed to update profile")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetProfile, user)); err != nil {
		log.Error().Err(err).Msg("failed to delete profile from cache")
	}

	profile, err := s.get(ctx, user)
	if err != nil {
		return res, err
	}

	res.FromModel(profile)

	return res, nil
}

func ownFilter(user string) gDto.FilterGroup {
	return shared.FilterByID(user, model.FieldUserID, model.TableName)
}
