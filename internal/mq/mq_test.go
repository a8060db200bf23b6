package mq

import (
	"context"
	"testing"
	"time"

	"github.com/carevault/apiserver/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_NoneBackend(t *testing.T) {
	queue, err := Open(context.Background(), config.MQConfig{Backend: "none"})
	require.NoError(t, err)

	id, err := queue.Publish(context.Background(), "events", []byte("{}"), nil)
	assert.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, queue.Close())
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.MQConfig{Backend: "kafka"})
	assert.Error(t, err)
}

func TestNopBackend_SubscribeStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NopBackend{}.Subscribe(ctx, "events", func(context.Context, Message) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHeadersToAttributes(t *testing.T) {
	attrs := headersToAttributes(amqp.Table{
		"event":   "timesheet.reviewed",
		"raw":     []byte("bytes"),
		"attempt": int32(2),
	})

	assert.Equal(t, "timesheet.reviewed", attrs["event"])
	assert.Equal(t, "bytes", attrs["raw"])
	assert.Equal(t, "2", attrs["attempt"])
	assert.Nil(t, headersToAttributes(nil))
}
