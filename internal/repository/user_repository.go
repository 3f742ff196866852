package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"atmosaether/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUserID(userID string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by user_id failed: %w", err)
	}
	return &user, nil
}

// UpdateProfile refreshes the mutable profile fields. Identity fields
// (user_id, email) are never touched after creation.
func (r *UserRepository) UpdateProfile(userID, name, picture string) error {
	updates := map[string]interface{}{
		"name":    name,
		"picture": picture,
	}
	if err := r.db.Model(&model.User{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update user profile failed: %w", err)
	}
	return nil
}
