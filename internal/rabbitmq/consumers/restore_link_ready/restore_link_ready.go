package restorelinkready

import (
	"authgate/internal/core/domain/common"
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/rabbitmq/schema"
	"context"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type consumer interface {
	Consume(
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp091.Table,
	) (<-chan amqp091.Delivery, error)
}

// Consumer emails restore links published by the API. Links that expired
// while waiting in the queue are dropped.
type Consumer struct {
	log     logging.Logger
	channel consumer
	queue   string
	sender  user.RestoreLinkSender
	now     func() time.Time
	done    chan struct{}
}

func New(
	log logging.Logger,
	channel consumer,
	queue string,
	sender user.RestoreLinkSender,
	now func() time.Time,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Consumer{
		log:     log,
		channel: channel,
		queue:   queue,
		sender:  sender,
		now:     now,
		done:    make(chan struct{}),
	}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		defer close(c.done)
		for delivery := range deliveries {
			c.handle(context.Background(), delivery)
		}
	}()
	return nil
}

// Done is closed once the delivery channel is drained.
func (c *Consumer) Done() <-chan struct{} {
	return c.done
}

func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	message := &schema.RestoreLink{}
	if err := message.Unmarshal(delivery.Body); err != nil {
		c.log.Error(ctx, "Could not unmarshal restore link.", logging.Entry("err", err))
		c.ack(ctx, delivery)
		return
	}
	if !c.now().Before(message.ExpiresAt) {
		c.log.Warning(
			ctx,
			"Restore link expired before it could be sent, dropping.",
			logging.Entry("email", message.Email),
			logging.Entry("expiresAt", message.ExpiresAt),
		)
		c.ack(ctx, delivery)
		return
	}

	err := c.sender.SendRestoreLink(ctx, user.RestoreLink{
		Email:     common.Email(message.Email),
		Token:     user.RestoreToken(message.Token),
		ExpiresAt: message.ExpiresAt,
	})
	if err != nil && !delivery.Redelivered {
		c.log.Warning(
			ctx,
			"Could not send restore link, message requeued.",
			logging.Entry("email", message.Email),
			logging.Entry("err", err),
		)
		if err := delivery.Nack(false, true); err != nil {
			c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", err))
		}
		return
	}
	if err != nil {
		c.log.Error(
			ctx,
			"Could not send restore link.",
			logging.Entry("email", message.Email),
			logging.Entry("err", err),
		)
	} else {
		c.log.Info(ctx, "Restore link has been sent.", logging.Entry("email", message.Email))
	}
	c.ack(ctx, delivery)
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
