package repository

import (
	"fmt"

	"gorm.io/gorm"

	"atmosaether/internal/model"
)

type ChatTurnRepository struct {
	db *gorm.DB
}

func NewChatTurnRepository(db *gorm.DB) *ChatTurnRepository {
	return &ChatTurnRepository{db: db}
}

func (r *ChatTurnRepository) Create(turn *model.ChatTurn) error {
	if err := r.db.Create(turn).Error; err != nil {
		return fmt.Errorf("create chat turn failed: %w", err)
	}
	return nil
}

// ListRecentByUserID returns up to limit turns, newest first. Callers that
// need chronological order reverse the slice.
func (r *ChatTurnRepository) ListRecentByUserID(userID string, limit int) ([]model.ChatTurn, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var turns []model.ChatTurn
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Limit(limit).Find(&turns).Error; err != nil {
		return nil, fmt.Errorf("list chat turns failed: %w", err)
	}
	return turns, nil
}

func (r *ChatTurnRepository) DeleteByUserID(userID string) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.ChatTurn{}).Error; err != nil {
		return fmt.Errorf("delete chat turns failed: %w", err)
	}
	return nil
}
