package consumers

import (
	"authgate/internal/app/deps"
	dl "authgate/internal/core/domain/logging"
	restorelinkready "authgate/internal/rabbitmq/consumers/restore_link_ready"
	"context"
	"time"
)

const drainTimeout = 10 * time.Second

func initRestoreLinkReadyConsumer(deps *deps.MailerDeps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.Qos(1, 0, false); err != nil {
		deps.Logger.Error(context.Background(), "Could not set RabbitMQ prefetch.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitMQ.RestoreLinkQueue
	restoreLinkReadyConsumer := restorelinkready.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.RestoreLinkSender,
		deps.Now,
	)
	if err = restoreLinkReadyConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() {
		rabbitmqChannel.Close()
		select {
		case <-restoreLinkReadyConsumer.Done():
		case <-time.After(drainTimeout):
			deps.Logger.Warning(context.Background(), "Consumer did not stop in time.", dl.Entry("queue", queue))
		}
	}
}

func InitConsumers(deps *deps.MailerDeps) func() {
	shutdownRestoreLinkReadyConsumer := initRestoreLinkReadyConsumer(deps)

	return func() {
		shutdownRestoreLinkReadyConsumer()
	}
}
