package restorelinkdispatcher

import (
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/rabbitmq/schema"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)

type fakePublisher struct {
	key string
	msg amqp091.Publishing
	err error
}

func (p *fakePublisher) PublishWithContext(
	ctx context.Context,
	exchange string,
	key string,
	mandatory bool,
	immediate bool,
	msg amqp091.Publishing,
) error {
	p.key = key
	p.msg = msg
	return p.err
}

func TestDispatchRestoreLink(t *testing.T) {
	channel := &fakePublisher{}
	dispatcher := NewRabbitMQ(logging.NewFakeLogger(), channel, "restore-links", func() time.Time { return NOW })

	err := dispatcher.DispatchRestoreLink(context.Background(), user.RestoreLink{
		Email:     "test@test.test",
		Token:     "token",
		ExpiresAt: NOW.Add(time.Hour),
	})

	require.NoError(t, err)
	require.Equal(t, "restore-links", channel.key)
	require.Equal(t, "3600000", channel.msg.Expiration)
	require.Equal(t, amqp091.Persistent, channel.msg.DeliveryMode)

	message := schema.RestoreLink{}
	require.NoError(t, message.Unmarshal(channel.msg.Body))
	require.Equal(t, "test@test.test", message.Email)
	require.Equal(t, "token", message.Token)
	require.True(t, NOW.Add(time.Hour).Equal(message.ExpiresAt))
}

func TestDispatchRestoreLinkPublishError(t *testing.T) {
	log := logging.NewFakeLogger()
	channel := &fakePublisher{err: errors.New("channel closed")}
	dispatcher := NewRabbitMQ(log, channel, "restore-links", func() time.Time { return NOW })

	err := dispatcher.DispatchRestoreLink(context.Background(), user.RestoreLink{
		Email:     "test@test.test",
		Token:     "token",
		ExpiresAt: NOW.Add(-time.Minute),
	})

	require.Error(t, err)
	require.Equal(t, "1", channel.msg.Expiration)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}
