package main

import (
	"authgate/internal/app/consumers"
	"authgate/internal/app/deps"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitMailerDeps()
	defer shutdownDeps()

	shutdownConsumers := consumers.InitConsumers(deps)
	defer shutdownConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	deps.Logger.Info(context.Background(), "Mailer is stopping gracefully.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
