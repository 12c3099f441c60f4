package config_test

import (
	"gooman/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("APP_TIMEZONE", "Asia/Muscat")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg := config.Get()

	assert.NoError(t, config.Init())
	assert.Same(t, cfg, config.Get())
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "Asia/Muscat", cfg.App.Timezone)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "booking.created", cfg.Kafka.Topics.BookingCreated)
	assert.Equal(t, "booking.status_changed", cfg.Kafka.Topics.BookingStatusChanged)
	assert.Equal(t, "avatars", cfg.External.S3.AvatarDirectory)
}
