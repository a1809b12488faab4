package mq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"Habitual/config"
)

const (
	// NotifyExchange carries notification batches from the scheduler
	// and the API server to the dispatch worker.
	NotifyExchange = "habitual.notify"

	// NotifyDispatchQueue is consumed by the worker.
	NotifyDispatchQueue = "notify.dispatch"

	// NotifyDispatchKey routes batches into the dispatch queue.
	NotifyDispatchKey = "notify.dispatch"
)

var (
	conn   *amqp.Connection
	connMu sync.Mutex
)

func Init() error {
	connMu.Lock()
	defer connMu.Unlock()

	url := config.Cfg.GetRabbitMQURL()
	c, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	conn = c

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return declareTopology(ch)
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		NotifyExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		NotifyDispatchQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	return ch.QueueBind(NotifyDispatchQueue, NotifyDispatchKey, NotifyExchange, false, nil)
}

// Connection returns the shared AMQP connection, nil before Init.
func Connection() *amqp.Connection {
	connMu.Lock()
	defer connMu.Unlock()
	return conn
}

func Close(ctx context.Context) error {
	connMu.Lock()
	defer connMu.Unlock()

	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		conn = nil
		return err
	}
}
