package service

import (
	"context"
	"fmt"
	"gooman/config"
	"gooman/infras/otel"
	"gooman/internal/domains/listing/model"
	"gooman/internal/domains/listing/model/dto"
	"gooman/internal/domains/listing/repository"
	"gooman/shared"
	"gooman/shared/cache"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	"gooman/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetHotel         = "listing:hotel:get"
	cacheGetAllHotel      = "listing:hotel:gets"
	cacheGetGuide         = "listing:guide:get"
	cacheGetAllGuide      = "listing:guide:gets"
	cacheGetExperience    = "listing:experience:get"
	cacheGetAllExperience = "listing:experience:gets"
)

type Listing interface {
	GetHotels(ctx context.Context, params gDto.QueryParams, active *bool) (dto.GetHotelsResponse, error)
	GetHotel(ctx context.Context, id string) (dto.HotelResponse, error)
	GetGuides(ctx context.Context, params gDto.QueryParams, active *bool) (dto.GetGuidesResponse, error)
	GetGuide(ctx context.Context, id string) (dto.GuideResponse, error)
	GetExperiences(ctx context.Context, params gDto.QueryParams, active *bool) (dto.GetExperiencesResponse, error)
	GetExperience(ctx context.Context, id string) (dto.ExperienceResponse, error)
}

type serviceImpl struct {
	repo  repository.Listing
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Listing, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Listing {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetHotels(ctx context.Context, params gDto.QueryParams, active *bool) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetHotels")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cachedList(ctx, s, cacheGetAllHotel, params, activeFilter(model.TableHotels, active),
		s.repo.CountHotels, s.repo.GetHotels, (*dto.GetHotelsResponse).FromModels)
}

func (s *serviceImpl) GetHotel(ctx context.Context, id string) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cachedGet(ctx, s, cacheGetHotel, model.EntityHotel, id,
		shared.FilterByID(id, model.FieldID, model.TableHotels), s.repo.GetHotel, (*dto.HotelResponse).FromModel)
}

func (s *serviceImpl) GetGuides(ctx context.Context, params gDto.QueryParams, active *bool) (res dto.GetGuidesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetGuides")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cachedList(ctx, s, cacheGetAllGuide, params, activeFilter(model.TableGuides, active),
		s.repo.CountGuides, s.repo.GetGuides, (*dto.GetGuidesResponse).FromModels)
}

func (s *serviceImpl) GetGuide(ctx context.Context, id string) (res dto.GuideResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetGuide")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cachedGet(ctx, s, cacheGetGuide, model.EntityGuide, id,
		shared.FilterByID(id, model.FieldID, model.TableGuides), s.repo.GetGuide, (*dto.GuideResponse).FromModel)
}

func (s *serviceImpl) GetExperiences(ctx context.Context, params gDto.QueryParams, active *bool) (res dto.GetExperiencesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetExperiences")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cachedList(ctx, s, cacheGetAllExperience, params, activeFilter(model.TableExperiences, active),
		s.repo.CountExperiences, s.repo.GetExperiences, (*dto.GetExperiencesResponse).FromModels)
}

func (s *serviceImpl) GetExperience(ctx context.Context, id string) (res dto.ExperienceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetExperience")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cachedGet(ctx, s, cacheGetExperience, model.EntityExperience, id,
		shared.FilterByID(id, model.FieldID, model.TableExperiences), s.repo.GetExperience, (*dto.ExperienceResponse).FromModel)
}

// activeFilter narrows to is_active rows when active is set. Unset returns every row.
func activeFilter(table string, active *bool) gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    table,
		})
	}

	return filter
}

func cachedList[M any, R any](
	ctx context.Context,
	s *serviceImpl,
	prefix string,
	params gDto.QueryParams,
	filter gDto.FilterGroup,
	count func(context.Context, gDto.FilterGroup) (int, error),
	fetch func(context.Context, gDto.QueryParams, gDto.FilterGroup) ([]M, error),
	fill func(*R, []M, int, int),
) (res R, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(prefix, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for listings")

		return res, nil
	}

	total, err := count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to count listings")

		return res, fmt.Errorf("failed to count listings: %w", err)
	}

	models, err := fetch(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to get listings")

		return res, fmt.Errorf("failed to get listings: %w", err)
	}

	fill(&res, models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save listings to cache")
		}
	}()

	return res, nil
}

func cachedGet[M model.Listing, R any](
	ctx context.Context,
	s *serviceImpl,
	prefix, entity, id string,
	filter gDto.FilterGroup,
	get func(context.Context, gDto.FilterGroup) (M, error),
	fill func(*R, M),
) (res R, err error) {
	cacheKey := shared.BuildCacheKey(prefix, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for listing")

		return res, nil
	}

	listing, err := get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get %s: %w", entity, err)
	}

	if listing.ListingID() == constant.Empty {
		return res, failure.NotFound(entity + " not found") // nolint:wrapcheck
	}

	fill(&res, listing)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save listing to cache")
		}
	}()

	return res, nil
}
