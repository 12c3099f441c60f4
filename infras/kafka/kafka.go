package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gooman/config"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writeTimeout = 10 * time.Second

// Event is a keyed payload published as JSON.
type Event struct {
	Key   string
	Value any
}

func (e Event) toKafkaMessage(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(e.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("marshalling event %q: %w", e.Key, err)
	}

	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(e.Key),
		Value: value,
	}, nil
}

// Decode unmarshals a consumed message value into T.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("decoding message from %s: %w", msg.Topic, err)
	}

	return value, nil
}

// Handler processes one message. The offset is committed only when it returns nil.
type Handler func(ctx context.Context, msg kafkaGo.Message) error

type Client interface {
	Publish(ctx context.Context, topic string, events ...Event) error
	Consume(ctx context.Context, topic string, handler Handler) error
	Close() error
}

type kafkaClient struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
}

// New returns a broker-backed client, or a client that drops events when Kafka is disabled.
func New(config *config.Config) Client {
	if !config.Kafka.Enable || len(config.Kafka.Brokers) == 0 {
		log.Warn().Msg("Kafka disabled, booking events will be dropped")

		return &disabledClient{}
	}

	var mechanism sasl.Mechanism
	if config.Kafka.SASL.Username != "" {
		mechanism = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
		Balancer:               &kafkaGo.Hash{},
		Transport:              &kafkaGo.Transport{SASL: mechanism},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafkaGo.RequireOne,
		WriteTimeout:           writeTimeout,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClient{
		config: config,
		dialer: &kafkaGo.Dialer{DualStack: true, SASLMechanism: mechanism},
		writer: writer,
	}
}

func (k *kafkaClient) Publish(ctx context.Context, topic string, events ...Event) error {
	msgs := make([]kafkaGo.Message, 0, len(events))

	for _, event := range events {
		msg, err := event.toKafkaMessage(topic)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to encode event")

			return err
		}

		msgs = append(msgs, msg)
	}

	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to publish events")

		return fmt.Errorf("publishing to %s: %w", topic, err)
	}

	log.Info().Str("topic", topic).Int("count", len(msgs)).Msg("Published events")

	return nil
}

// Consume blocks until ctx is done, handling messages one at a time.
func (k *kafkaClient) Consume(ctx context.Context, topic string, handler Handler) error {
	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     k.config.Kafka.ConsumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close reader")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}

			return fmt.Errorf("fetching from %s: %w", topic, err)
		}

		if err := handler(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to handle message")

			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit message")
		}
	}
}

func (k *kafkaClient) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("closing kafka writer: %w", err)
	}

	return nil
}

type disabledClient struct{}

func (d *disabledClient) Publish(_ context.Context, topic string, events ...Event) error {
	log.Debug().Str("topic", topic).Int("count", len(events)).Msg("Kafka disabled, events dropped")

	return nil
}

func (d *disabledClient) Consume(ctx context.Context, topic string, _ Handler) error {
	log.Warn().Str("topic", topic).Msg("Kafka disabled, consumer idle")
	<-ctx.Done()

	return nil
}

func (d *disabledClient) Close() error {
	return nil
}
