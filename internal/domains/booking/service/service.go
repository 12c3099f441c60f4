package service

import (
	"context"
	"errors"
	"fmt"
	"gooman/config"
	"gooman/infras/kafka"
	"gooman/infras/otel"
	"gooman/internal/domains/booking/model"
	"gooman/internal/domains/booking/model/dto"
	"gooman/internal/domains/booking/repository"
	"gooman/shared"
	"gooman/shared/cache"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	"gooman/shared/failure"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = model.CacheKeyBooking
	cacheGetMyBookings = model.CacheKeyMyBookings
)

const errRowLevelSecurity = `new row violates row-level security policy for table "bookings"`

// transitions lists the statuses each status may move to.
var transitions = map[model.Status][]model.Status{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCompleted, model.StatusCancelled},
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
}

type serviceImpl struct {
	repo  repository.Booking
	cfg   *config.Config
	cache cache.RedisCache
	kafka kafka.Client
	otel  otel.Otel
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		kafka: kafka,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if req.UserID != constant.Empty && req.UserID != user {
		log.Warn().Str("user", user).Str("requested", req.UserID).Msg("booking owner does not match token")

		return res, failure.Forbidden(errRowLevelSecurity) // nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		if mapped := failure.FromPq(err); mapped != err {
			return res, mapped // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	s.evictMine(ctx, user)

	go s.publish(context.WithoutCancel(ctx), s.cfg.Kafka.Topics.BookingCreated, booking)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	params.SortBy = constant.FieldCreatedAt
	params.SortDir = gDto.SortDirDesc

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    user,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetMyBookings, user), params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save bookings to cache")
	}

	return res, nil
}

// Get returns a booking owned by the caller. Admins may read any booking. Bookings owned by
// someone else are reported as missing.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	res, err = s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if role != constant.RoleAdmin && res.UserID != user {
		return dto.BookingResponse{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	from, to := model.Status(current.Status), model.Status(req.Status)
	if !slices.Contains(transitions[from], to) {
		return failure.Conflict(fmt.Sprintf("booking cannot move from %s to %s", from, to)) // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	if err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	s.evictMine(ctx, current.UserID)

	go func() {
		booking := model.Booking{
			ID:           current.ID,
			UserID:       current.UserID,
			BookingType:  current.BookingType,
			HotelID:      current.HotelID,
			GuideID:      current.GuideID,
			ExperienceID: current.ExperienceID,
			TotalPrice:   current.TotalPrice,
			Status:       req.Status,
		}

		s.publish(context.WithoutCancel(ctx), s.cfg.Kafka.Topics.BookingStatusChanged, booking)
	}()

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromDetail(booking)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking to cache")
	}

	return res, nil
}

// evictMine drops every cached page of the user's bookings before the write is reported.
func (s *serviceImpl) evictMine(ctx context.Context, user string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetMyBookings, user))
}

func (s *serviceImpl) publish(ctx context.Context, topic string, booking model.Booking) {
	var event dto.Event
	event.FromModel(booking)

	err := s.kafka.Publish(ctx, topic, kafka.Event{Key: booking.ID, Value: event})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Str("topic", topic).Str("booking", booking.ID).Msg("failed to publish booking event")
	}
}
