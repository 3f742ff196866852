package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"atmosaether/internal/notify"
)

// NotifyPublisher hands contact notifications to the dispatch queue. The
// publish is awaited; delivery itself happens in the worker.
type NotifyPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewNotifyPublisher(conn *amqp.Connection, queueName string) *NotifyPublisher {
	return &NotifyPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *NotifyPublisher) Notify(ctx context.Context, msg notify.ContactMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare notify queue failed: %w", err)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish notification failed: %w", err)
	}
	return nil
}
