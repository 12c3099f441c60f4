package booking_test

import (
	"context"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gooman/config"
	kafkaMocks "gooman/infras/kafka/mocks"
	"gooman/infras/otel/mocks"
	"gooman/internal/workers/booking"
	cacheMocks "gooman/shared/cache/mocks"
)

func newWorker(t *testing.T) (*booking.Worker, *kafkaMocks.MockClient, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	kafka := kafkaMocks.NewMockClient(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingCreated = "booking.created"
	cfg.Kafka.Topics.BookingStatusChanged = "booking.status_changed"

	return booking.New(kafka, cfg, cache, mocks.NewOtel()), kafka, cache
}

func TestWorker_Handle(t *testing.T) {
	t.Run("evicts booking views", func(t *testing.T) {
		worker, _, cache := newWorker(t)

		cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)
		cache.EXPECT().Clear(gomock.Any(), "booking:mine:u-1*").Return(nil)

		err := worker.Handle(context.Background(), kafkaGo.Message{
			Topic: "booking.created",
			Value: []byte(`{"booking_id":"b-1","user_id":"u-1","booking_type":"hotel","status":"pending","total_price":240}`),
		})

		assert.NoError(t, err)
	})

	t.Run("malformed payload is skipped", func(t *testing.T) {
		worker, _, _ := newWorker(t)

		err := worker.Handle(context.Background(), kafkaGo.Message{Topic: "booking.created", Value: []byte("not json")})

		assert.NoError(t, err)
	})

	t.Run("event without id is skipped", func(t *testing.T) {
		worker, _, _ := newWorker(t)

		err := worker.Handle(context.Background(), kafkaGo.Message{Topic: "booking.created", Value: []byte(`{"user_id":"u-1"}`)})

		assert.NoError(t, err)
	})

	t.Run("eviction failure is retried", func(t *testing.T) {
		worker, _, cache := newWorker(t)

		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		err := worker.Handle(context.Background(), kafkaGo.Message{Value: []byte(`{"booking_id":"b-1","user_id":"u-1"}`)})

		assert.Error(t, err)
	})

	t.Run("list eviction failure is retried", func(t *testing.T) {
		worker, _, cache := newWorker(t)

		cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)
		cache.EXPECT().Clear(gomock.Any(), "booking:mine:u-1*").Return(errors.New("redis down"))

		err := worker.Handle(context.Background(), kafkaGo.Message{Value: []byte(`{"booking_id":"b-1","user_id":"u-1"}`)})

		assert.EqualError(t, err, "redis down")
	})
}

func TestWorker_Run(t *testing.T) {
	worker, kafka, _ := newWorker(t)

	kafka.EXPECT().Consume(gomock.Any(), "booking.created", gomock.Any()).Return(nil)
	kafka.EXPECT().Consume(gomock.Any(), "booking.status_changed", gomock.Any()).Return(nil)

	assert.NoError(t, worker.Run(context.Background()))
}
