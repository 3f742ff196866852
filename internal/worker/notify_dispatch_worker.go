package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"atmosaether/internal/notify"
	"atmosaether/internal/repository"
)

// ContactSender delivers one contact notification to the outside world.
type ContactSender interface {
	Notify(ctx context.Context, msg notify.ContactMessage) error
}

// NotifyDispatchWorker drains the notification queue and performs the
// WhatsApp call. Delivery failures are nacked without requeue: the system
// performs no retries.
type NotifyDispatchWorker struct {
	conn        *amqp.Connection
	sender      ContactSender
	contactRepo *repository.ContactRepository
	queueName   string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewNotifyDispatchWorker(conn *amqp.Connection, sender ContactSender, contactRepo *repository.ContactRepository, queueName string) *NotifyDispatchWorker {
	return &NotifyDispatchWorker{
		conn:        conn,
		sender:      sender,
		contactRepo: contactRepo,
		queueName:   queueName,
	}
}

func (w *NotifyDispatchWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume notify queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var msg notify.ContactMessage
				if err := json.Unmarshal(d.Body, &msg); err != nil {
					log.Printf("worker decode notification failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.sender.Notify(workerCtx, msg); err != nil {
					log.Printf("worker dispatch notification failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if msg.ContactID != 0 {
					if err := w.contactRepo.MarkNotified(msg.ContactID); err != nil {
						log.Printf("worker mark contact notified failed: %v", err)
					}
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *NotifyDispatchWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
