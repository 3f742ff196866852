package repository

import (
	"fmt"

	"gorm.io/gorm"

	"atmosaether/internal/model"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(contact *model.ContactSubmission) error {
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("create contact submission failed: %w", err)
	}
	return nil
}

// MarkNotified flips the notification flag on an already-persisted
// submission. Submissions are otherwise immutable.
func (r *ContactRepository) MarkNotified(id uint) error {
	if err := r.db.Model(&model.ContactSubmission{}).Where("id = ?", id).Update("notification_sent", true).Error; err != nil {
		return fmt.Errorf("mark contact notified failed: %w", err)
	}
	return nil
}
