package app

import (
	"context"
	"log"
	"strings"
	"time"

	"atmosaether/internal/model"
	"atmosaether/internal/notify"
	"atmosaether/internal/repository"
)

// NotificationStatus is informational only; it never affects whether the
// submission succeeds.
type NotificationStatus string

const (
	NotificationSent          NotificationStatus = "sent"
	NotificationFailed        NotificationStatus = "failed"
	NotificationNotConfigured NotificationStatus = "not_configured"
)

// ContactNotifier is either the direct WhatsApp sender or the queue
// publisher, depending on deployment.
type ContactNotifier interface {
	Notify(ctx context.Context, msg notify.ContactMessage) error
}

type ContactService struct {
	contactRepo *repository.ContactRepository
	notifier    ContactNotifier
	// deferred means the notifier only queues the message; the dispatch
	// worker flips the notified flag after actual delivery.
	deferred bool
}

type SubmitContactInput struct {
	Name         string
	Email        string
	Organization string
	Message      string
}

type SubmitContactResult struct {
	Contact      *model.ContactSubmission
	Notification NotificationStatus
}

func NewContactService(contactRepo *repository.ContactRepository, notifier ContactNotifier, deferred bool) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		notifier:    notifier,
		deferred:    deferred,
	}
}

// Submit persists the submission, then attempts the notification. The write
// commits regardless of the notification outcome.
func (s *ContactService) Submit(ctx context.Context, input SubmitContactInput) (*SubmitContactResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, ErrInvalidInput
	}

	contact := &model.ContactSubmission{
		Name:         name,
		Email:        email,
		Organization: strings.TrimSpace(input.Organization),
		Message:      message,
		SubmittedAt:  time.Now().UTC(),
	}
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, err
	}

	status := NotificationNotConfigured
	if s.notifier != nil {
		msg := notify.ContactMessage{
			ContactID:    contact.ID,
			Name:         contact.Name,
			Email:        contact.Email,
			Organization: contact.Organization,
			Message:      contact.Message,
			SubmittedAt:  contact.SubmittedAt,
		}
		if err := s.notifier.Notify(ctx, msg); err != nil {
			log.Printf("contact notification failed: %v", err)
			status = NotificationFailed
		} else {
			status = NotificationSent
			if !s.deferred {
				if err := s.contactRepo.MarkNotified(contact.ID); err != nil {
					log.Printf("mark contact notified failed: %v", err)
				} else {
					contact.NotificationSent = true
				}
			}
		}
	}

	return &SubmitContactResult{
		Contact:      contact,
		Notification: status,
	}, nil
}
