package booking

import (
	"context"
	"gooman/config"
	"gooman/infras/kafka"
	"gooman/infras/otel"
	"gooman/internal/domains/booking/model"
	"gooman/internal/domains/booking/model/dto"
	"gooman/shared"
	"gooman/shared/cache"
	"gooman/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

// Worker consumes booking events, evicts the cached views of each booking and
// logs a notification line per event.
type Worker struct {
	kafka kafka.Client
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(kafka kafka.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) *Worker {
	return &Worker{
		kafka: kafka,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Run blocks until ctx is cancelled or a consumer fails.
func (w *Worker) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	for _, topic := range []string{w.cfg.Kafka.Topics.BookingCreated, w.cfg.Kafka.Topics.BookingStatusChanged} {
		group.Go(func() error {
			log.Info().Str("topic", topic).Msg("Consuming booking events")

			return w.kafka.Consume(ctx, topic, w.Handle)
		})
	}

	return group.Wait() //nolint:wrapcheck
}

// Handle processes one booking event. Undecodable messages are logged and skipped; cache
// failures are returned so the message is delivered again.
func (w *Worker) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Booking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[dto.Event](msg)
	if err != nil {
		log.Error().Err(err).Int64("offset", msg.Offset).Msg("skipping malformed booking event")

		return nil
	}

	if event.BookingID == constant.Empty {
		log.Warn().Str("topic", msg.Topic).Int64("offset", msg.Offset).Msg("skipping booking event without id")

		return nil
	}

	scope.SetAttributes(map[string]any{
		"booking.id":     event.BookingID,
		"booking.status": event.Status,
		"kafka.topic":    msg.Topic,
	})

	if err = w.cache.Delete(ctx, shared.BuildCacheKey(model.CacheKeyBooking, event.BookingID)); err != nil {
		log.Error().Err(err).Str("booking", event.BookingID).Msg("failed to evict booking")

		return err //nolint:wrapcheck
	}

	mine := shared.BuildCacheKey(model.CacheKeyMyBookings, event.UserID) + constant.Asterix
	if err = w.cache.Clear(ctx, mine); err != nil {
		log.Error().Err(err).Str("user", event.UserID).Msg("failed to evict bookings list")

		return err //nolint:wrapcheck
	}

	log.Info().
		Str("topic", msg.Topic).
		Str("booking", event.BookingID).
		Str("user", event.UserID).
		Str("type", event.BookingType).
		Str("listing", event.ListingID).
		Str("status", event.Status).
		Float64("total_price", event.TotalPrice).
		Msg("booking notification")

	return nil
}
