package restorelinkdispatcher

import (
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/rabbitmq/schema"
	"context"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange string,
		key string,
		mandatory bool,
		immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ publishes restore links to a queue through the default exchange.
// Messages expire together with the token they carry.
type RabbitMQ struct {
	log     logging.Logger
	channel publisher
	queue   string
	now     func() time.Time
}

func NewRabbitMQ(log logging.Logger, channel publisher, queue string, now func() time.Time) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue, now: now}
}

func (s *RabbitMQ) DispatchRestoreLink(ctx context.Context, link user.RestoreLink) error {
	message := schema.RestoreLink{
		Email:     string(link.Email),
		Token:     string(link.Token),
		ExpiresAt: link.ExpiresAt.UTC(),
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	ttl := link.ExpiresAt.Sub(s.now()).Milliseconds()
	if ttl < 1 {
		ttl = 1
	}
	err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Expiration:   strconv.FormatInt(ttl, 10),
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("queue", s.queue))
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("queue", s.queue),
		logging.Entry("email", link.Email),
	)
	return nil
}
