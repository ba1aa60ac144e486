package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDriver(t *testing.T) {
	t.Run("UnknownDriver", func(t *testing.T) {
		pub, err := NewFromDriver(context.Background(), "rabbitmq", FactoryOptions{})

		assert.Nil(t, pub)
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})

	t.Run("DriverNameIsTrimmed", func(t *testing.T) {
		pub, err := NewFromDriver(context.Background(), "  kafka  ", FactoryOptions{
			Kafka: KafkaConfig{Brokers: []string{"localhost:9092"}},
		})

		require.NoError(t, err)
		require.NotNil(t, pub)
		assert.NoError(t, pub.Close())
	})

	t.Run("KafkaRequiresBrokers", func(t *testing.T) {
		pub, err := NewFromDriver(context.Background(), "kafka", FactoryOptions{})

		assert.Nil(t, pub)
		assert.Error(t, err)
	})
}
